package core

import (
	"bytes"
	"testing"
	"time"
)

func TestTraceDropsOldestWhenFull(t *testing.T) {
	EnableTrace(2)

	for i := 0; i < 4; i++ {
		publishTrace(TraceRecord{Role: TraceMaster, Addr: byte(i)})
	}

	// Capacity 2, four records published: the two oldest were evicted.
	first := <-traceChan
	second := <-traceChan
	if first.Addr != 2 || second.Addr != 3 {
		t.Errorf("ring kept addrs %d,%d, want 2,3", first.Addr, second.Addr)
	}
	select {
	case r := <-traceChan:
		t.Errorf("unexpected extra record %+v", r)
	default:
	}
}

func TestMasterWriteTraced(t *testing.T) {
	ch := EnableTrace(4)
	startSim(t, 0, simPeer{ackAddr: true, ackData: true})

	payload := []byte{0xB0, 0x01}
	if err := Write(0, 0x3A, payload); err != OK {
		t.Fatalf("Write returned %v", err)
	}

	r := <-ch
	if r.Role != TraceMaster {
		t.Errorf("trace role %d, want master", r.Role)
	}
	if r.Bus != 0 || r.Addr != 0x3A || r.Err != OK {
		t.Errorf("trace header bus=%d addr=%#x err=%v", r.Bus, r.Addr, r.Err)
	}
	if !bytes.Equal(r.Payload(), payload) {
		t.Errorf("trace payload % x, want % x", r.Payload(), payload)
	}
}

func TestSlaveReceptionTraced(t *testing.T) {
	ch := EnableTrace(4)
	sim := setupSlave(t, IPMB, 0x76)

	deliverSlave(sim, []byte{0x42})

	buf := make([]byte, MaxMsgLen)
	if n := SlaveTransfer(1, buf, 100*time.Millisecond); n != 2 {
		t.Fatalf("SlaveTransfer returned %d, want 2", n)
	}

	r := <-ch
	if r.Role != TraceSlave {
		t.Errorf("trace role %d, want slave", r.Role)
	}
	if r.Addr != 0x76 {
		t.Errorf("trace addr %#x, want own address 0x76", r.Addr)
	}
	if !bytes.Equal(r.Payload(), []byte{0x76, 0x42}) {
		t.Errorf("trace payload % x", r.Payload())
	}
}
