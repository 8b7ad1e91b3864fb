package core

import "time"

// MuxHandler routes the shared electrical bus to a downstream segment. The
// external multiplexer device is not part of this driver; the handler hides
// whatever transaction or pin wiggle it needs.
type MuxHandler func(bus BusID, value int8)

// muxStateUnset marks an interface whose multiplexer state has never been
// applied, forcing the first MuxSetState through to the handler.
const muxStateUnset int8 = -1

// MuxRegister installs (or replaces) the multiplexer handler of an interface
// and resets the last-applied state. A non-zero wait takes the interface
// lock for at most that long; zero executes without synchronization, for
// advisory calls from contexts that cannot block.
func MuxRegister(bus BusID, handler MuxHandler, wait time.Duration) Error {
	if int(bus) >= NumBuses {
		return ErrUnknownBus
	}
	ib := &buses[bus]

	if wait != 0 {
		if !ib.lock.lockTimeout(wait) {
			return ErrBusy
		}
		defer ib.lock.unlock()
	}

	ib.muxHandler = handler
	ib.muxState = muxStateUnset
	return OK
}

// MuxSetState requests a multiplexer routing before a transaction is armed.
// The handler runs only when one is registered and value differs from the
// last applied state; repeated requests for the same routing are free. With
// no handler registered the call is a successful no-op.
func MuxSetState(bus BusID, value int8, wait time.Duration) Error {
	if int(bus) >= NumBuses {
		return ErrUnknownBus
	}
	ib := &buses[bus]

	if wait != 0 {
		if !ib.lock.lockTimeout(wait) {
			return ErrBusy
		}
		defer ib.lock.unlock()
	}

	if ib.muxHandler != nil && value != ib.muxState {
		ib.muxHandler(bus, value)
		ib.muxState = value
	}
	return OK
}
