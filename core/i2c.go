// I2C bus driver for an IPMI-managed chassis module.
//
// Each physical interface owns one busInstance. Application tasks drive
// transactions through the blocking API (Write / Read / SlaveTransfer),
// which holds the instance lock for the whole call; the interrupt state
// machine in i2c_isr.go mutates the same instance from interrupt context
// and wakes exactly the goroutine registered for the finished role.
package core

import "time"

const (
	// MaxMsgLen bounds a single transaction payload. IPMB messages never
	// exceed it, and the fixed-size buffers keep the interrupt path free of
	// allocation.
	MaxMsgLen = 32

	// NumBuses is the number of I2C blocks on the part.
	NumBuses = 3
)

// Mode selects how an interface participates on the bus.
type Mode uint8

const (
	// LocalMaster drives a private downstream bus: master write and master
	// read only.
	LocalMaster Mode = iota

	// IPMB participates on the shared management bus: master write plus
	// slave reception with IPMB address framing.
	IPMB
)

// masterLockTimeout bounds how long a master-mode call waits for an ongoing
// transaction on the same interface before giving up with ErrBusy.
const masterLockTimeout = 100 * time.Millisecond

// message is the working state of the single in-flight transaction.
type message struct {
	bus    BusID
	addr   byte // peer 7-bit address
	err    Error
	txData [MaxMsgLen]byte
	txLen  uint8
	rxData [MaxMsgLen]byte
	rxLen  uint8
}

// busInstance holds all mutable state of one physical interface. Task-side
// access is serialized by lock, held for the full duration of each blocking
// call. The interrupt path never takes the lock; it is the only other writer
// and relies on at most one transaction being armed at a time.
type busInstance struct {
	mode Mode
	lock timedLock

	msg   message
	txCnt uint8 // transmit cursor, reset on every START
	rxCnt uint8 // receive cursor, reset on every START

	masterWake wake // raised on master transaction completion
	slaveWake  wake // raised on completed slave reception

	muxHandler MuxHandler
	muxState   int8 // last applied mux value, muxStateUnset initially
}

var buses [NumBuses]busInstance

func init() {
	for i := range buses {
		buses[i].lock = newTimedLock()
		buses[i].masterWake = newWake()
		buses[i].slaveWake = newWake()
		buses[i].muxState = muxStateUnset
	}
}

// Init performs the one-time setup of an interface: hardware enable, lock
// creation and, in IPMB mode, programming of the geographically derived
// slave address. A bad interface id is a boot-time configuration fault with
// no recovery path, so it halts instead of returning an error.
func Init(bus BusID, mode Mode) {
	if int(bus) >= NumBuses {
		panic("i2c: unknown interface " + itoa(int(bus)))
	}

	ib := &buses[bus]
	ib.mode = mode

	port := MustI2CPort()
	if err := port.Enable(bus); err != nil {
		panic("i2c: interface " + itoa(int(bus)) + " enable failed: " + err.Error())
	}

	// Master mode is always available once the block is enabled.
	port.SetControl(bus, CtrlEnable)

	if mode == IPMB {
		// Answer to the slot-derived address and acknowledge being
		// addressed as a slave.
		port.SetOwnAddress(bus, OwnAddress())
		port.SetControl(bus, CtrlAck)
	}

	// Clear a possibly pending state-change flag left from reset.
	port.ClearControl(bus, CtrlInterrupt)
}

// Write transmits data to the peer at addr and blocks until the bus state
// machine reports a terminal condition. The wait is unbounded: a transaction
// that started always ends in an ACK walk-through, a NACK or a bus error.
func Write(bus BusID, addr byte, data []byte) Error {
	// Reject before touching any shared or hardware state.
	if int(bus) >= NumBuses {
		return ErrUnknownBus
	}
	if len(data) >= MaxMsgLen {
		return ErrMsgTooLong
	}

	ib := &buses[bus]
	if !ib.lock.lockTimeout(masterLockTimeout) {
		return ErrBusy
	}
	defer ib.lock.unlock()

	ib.msg.bus = bus
	ib.msg.addr = addr
	ib.msg.err = OK
	copy(ib.msg.txData[:], data)
	ib.msg.txLen = uint8(len(data))
	ib.msg.rxLen = 0
	ib.masterWake.drain()

	port := MustI2CPort()
	// Discard leftover control state, then arm the START condition. From
	// here on the interrupt state machine owns the transaction.
	port.ClearControl(bus, CtrlInterrupt|CtrlStop|CtrlStart|CtrlAck)
	port.SetControl(bus, CtrlEnable|CtrlStart)

	ib.masterWake.wait()
	return ib.msg.err
}

// Read receives exactly len(buf) bytes from the peer at addr and blocks
// until completion. On success the received bytes are copied into buf.
func Read(bus BusID, addr byte, buf []byte) Error {
	if int(bus) >= NumBuses {
		return ErrUnknownBus
	}
	if len(buf) == 0 || len(buf) > MaxMsgLen {
		return ErrMsgTooLong
	}

	ib := &buses[bus]
	if !ib.lock.lockTimeout(masterLockTimeout) {
		return ErrBusy
	}
	defer ib.lock.unlock()

	ib.msg.bus = bus
	ib.msg.addr = addr
	ib.msg.err = OK
	ib.msg.txLen = 0 // no outbound payload: START is sent with the read bit
	ib.msg.rxLen = uint8(len(buf))
	ib.masterWake.drain()

	port := MustI2CPort()
	port.ClearControl(bus, CtrlInterrupt|CtrlStop|CtrlStart|CtrlAck)
	port.SetControl(bus, CtrlEnable|CtrlStart)

	ib.masterWake.wait()
	if ib.msg.err == OK {
		copy(buf, ib.msg.rxData[:ib.msg.rxLen])
	}
	return ib.msg.err
}

// SlaveTransfer registers the caller as the slave-reception listener and
// blocks until another master delivers a complete message or timeout
// elapses. It returns the number of bytes copied into buf; 0 means timeout,
// which is an expected outcome for a listener, not an error. A negative
// timeout waits forever.
func SlaveTransfer(bus BusID, buf []byte, timeout time.Duration) int {
	if int(bus) >= NumBuses {
		return 0
	}
	ib := &buses[bus]

	// Registration step: the wake slot is read under the lock so the call
	// serializes against an in-flight master transaction, matching the
	// locking discipline of the other two operations.
	ib.lock.lock()
	w := ib.slaveWake
	ib.lock.unlock()

	if !w.waitTimeout(timeout) {
		return 0
	}

	ib.lock.lock()
	n := copy(buf, ib.msg.rxData[:ib.msg.rxLen])
	ib.lock.unlock()
	return n
}
