package core

// Transaction tracing. Completed transactions can be exported to an optional
// observer, typically a goroutine that frames them onto a debug serial port.
// The interrupt path only ever performs non-blocking channel operations: a
// full ring drops its oldest record to make room for the newest.

// Trace roles.
const (
	TraceMaster uint8 = iota
	TraceSlave
)

// TraceRecord is a compact copy of one completed transaction.
type TraceRecord struct {
	Role uint8
	Bus  BusID
	Addr byte // peer address (master) or own address byte (slave, IPMB)
	Err  Error
	Len  uint8
	Data [MaxMsgLen]byte
}

// Payload returns the valid bytes of the record.
func (r *TraceRecord) Payload() []byte {
	return r.Data[:r.Len]
}

var traceChan chan TraceRecord

// EnableTrace switches tracing on and returns the channel the observer
// drains. capacity bounds memory on the firmware side. Call once during
// startup, before interrupts are live.
func EnableTrace(capacity int) <-chan TraceRecord {
	traceChan = make(chan TraceRecord, capacity)
	return traceChan
}

func publishMasterTrace(ib *busInstance) {
	if traceChan == nil {
		return
	}
	r := TraceRecord{
		Role: TraceMaster,
		Bus:  ib.msg.bus,
		Addr: ib.msg.addr,
		Err:  ib.msg.err,
	}
	if ib.msg.txLen > 0 {
		r.Len = ib.txCnt
		copy(r.Data[:], ib.msg.txData[:ib.txCnt])
	} else {
		r.Len = ib.rxCnt
		copy(r.Data[:], ib.msg.rxData[:ib.rxCnt])
	}
	publishTrace(r)
}

func publishSlaveTrace(ib *busInstance) {
	if traceChan == nil {
		return
	}
	r := TraceRecord{
		Role: TraceSlave,
		Bus:  ib.msg.bus,
		Err:  ib.msg.err,
		Len:  ib.msg.rxLen,
	}
	copy(r.Data[:], ib.msg.rxData[:ib.msg.rxLen])
	if ib.mode == IPMB && ib.msg.rxLen > 0 {
		r.Addr = ib.msg.rxData[0]
	}
	publishTrace(r)
}

// publishTrace inserts a record without blocking, evicting the oldest entry
// when the ring is full.
func publishTrace(r TraceRecord) {
	select {
	case traceChan <- r:
		return
	default:
	}
	select {
	case <-traceChan:
	default:
	}
	select {
	case traceChan <- r:
	default:
	}
}
