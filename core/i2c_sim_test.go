package core

import "sync"

// simPort is a scripted stand-in for the register-level port driver. It
// plays the peripheral and the remote peer at once: the test goroutine (or
// sim.run) sets a status code and invokes HandleIRQ, then inspects the
// control bits and data register the state machine left behind, exactly the
// way the silicon would between interrupts.
type simPort struct {
	mu sync.Mutex

	bus    BusID
	status Status

	control  Control
	data     byte // data register, last written byte
	wrote    bool // data register written since last take
	readByte byte // byte ReadData will return
	ownAddr  byte

	started chan struct{} // signaled when a START is armed

	calls int // every register access, for the no-bus-activity check
}

func newSimPort(bus BusID) *simPort {
	return &simPort{
		bus:     bus,
		started: make(chan struct{}, 1),
	}
}

func (s *simPort) Enable(bus BusID) error { s.bump(); return nil }

func (s *simPort) Status(bus BusID) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.status
}

func (s *simPort) WriteData(bus BusID, b byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.data = b
	s.wrote = true
}

func (s *simPort) ReadData(bus BusID) byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.readByte
}

func (s *simPort) SetControl(bus BusID, bits Control) {
	s.mu.Lock()
	s.calls++
	hadStart := s.control&CtrlStart != 0
	s.control |= bits
	armed := !hadStart && bits&CtrlStart != 0
	s.mu.Unlock()

	if armed {
		select {
		case s.started <- struct{}{}:
		default:
		}
	}
}

func (s *simPort) ClearControl(bus BusID, bits Control) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.control &^= bits
}

func (s *simPort) SetOwnAddress(bus BusID, addr byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.ownAddr = addr
}

func (s *simPort) OwnAddress(bus BusID) byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.ownAddr
}

func (s *simPort) bump() {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
}

// fire delivers one interrupt with the given status code.
func (s *simPort) fire(st Status) {
	s.mu.Lock()
	s.status = st
	s.mu.Unlock()
	HandleIRQ(s.bus)
}

// feed preloads the data register before a receive interrupt.
func (s *simPort) feed(b byte) {
	s.mu.Lock()
	s.readByte = b
	s.mu.Unlock()
}

// take returns the byte the state machine wrote, failing loudly if nothing
// was written since the last take.
func (s *simPort) take() (byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.data, s.wrote
	s.wrote = false
	return b, ok
}

func (s *simPort) ackAsserted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.control&CtrlAck != 0
}

func (s *simPort) stopRequested() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.control&CtrlStop != 0
}

func (s *simPort) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// simPeer scripts the remote device behavior for full transactions.
type simPeer struct {
	ackAddr bool
	ackData bool
	supply  []byte // bytes handed out on a master read
}

// transcript records what the peer observed.
type transcript struct {
	mu    sync.Mutex
	recv  []byte // bytes received from a master write
	acks  []bool // our ACK responses as seen per received read byte
	stops int
}

func (tr *transcript) received() []byte {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	out := make([]byte, len(tr.recv))
	copy(out, tr.recv)
	return out
}

func (tr *transcript) ackPattern() []bool {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	out := make([]bool, len(tr.acks))
	copy(out, tr.acks)
	return out
}

// run plays complete master-mode transactions against the driver until the
// stop channel closes. Each armed START is carried through to the stop
// condition the state machine requests.
func (s *simPort) run(peer simPeer, tr *transcript, stop <-chan struct{}) {
	for {
		select {
		case <-s.started:
		case <-stop:
			return
		}

		s.fire(StatStartSent)
		addr, ok := s.take()
		if !ok {
			continue // state machine did not send an address byte
		}

		if addr&1 == 1 {
			s.runRead(peer, tr)
		} else {
			s.runWrite(peer, tr)
		}

		s.mu.Lock()
		if s.control&CtrlStop != 0 {
			tr.stops++
			s.control &^= CtrlStop // hardware clears STO after the stop
		}
		s.mu.Unlock()
	}
}

func (s *simPort) runWrite(peer simPeer, tr *transcript) {
	if !peer.ackAddr {
		s.fire(StatAddrWriteNack)
		return
	}
	s.fire(StatAddrWriteAck)

	for {
		b, ok := s.take()
		if !ok {
			return // no further byte: transaction finished
		}
		tr.mu.Lock()
		tr.recv = append(tr.recv, b)
		tr.mu.Unlock()

		if !peer.ackData {
			s.fire(StatDataWriteNack)
			return
		}
		s.fire(StatDataWriteAck)
		if s.stopRequested() {
			return
		}
	}
}

func (s *simPort) runRead(peer simPeer, tr *transcript) {
	if !peer.ackAddr {
		s.fire(StatAddrReadNack)
		return
	}
	s.fire(StatAddrReadAck)

	for _, b := range peer.supply {
		ack := s.ackAsserted()
		tr.mu.Lock()
		tr.acks = append(tr.acks, ack)
		tr.mu.Unlock()

		s.feed(b)
		if ack {
			s.fire(StatDataReadAck)
		} else {
			s.fire(StatDataReadNack)
			return
		}
	}
}
