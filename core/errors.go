package core

// Error is the driver's transaction status code. The values cross the trace
// link byte-for-byte, so their order is wire-stable; new codes go at the end.
type Error uint8

const (
	// OK means the transaction completed as requested.
	OK Error = iota

	// ErrBusy means the interface lock could not be acquired in time.
	ErrBusy

	// ErrMsgTooLong means the payload does not fit the transaction buffer.
	ErrMsgTooLong

	// ErrAddrNackRead means no slave acknowledged its address for a read.
	ErrAddrNackRead

	// ErrSlaveOverrun means bytes were lost while being addressed as a slave.
	ErrSlaveOverrun

	// ErrAddrNackWrite means no slave acknowledged its address for a write.
	ErrAddrNackWrite

	// ErrDataNackWrite means the slave rejected a payload byte.
	ErrDataNackWrite

	// ErrUnknownBus means the interface id does not exist on this part.
	ErrUnknownBus
)

var errNames = [...]string{
	OK:               "ok",
	ErrBusy:          "interface busy",
	ErrMsgTooLong:    "message too long",
	ErrAddrNackRead:  "address not acknowledged (read)",
	ErrSlaveOverrun:  "slave receive overrun",
	ErrAddrNackWrite: "address not acknowledged (write)",
	ErrDataNackWrite: "data not acknowledged (write)",
	ErrUnknownBus:    "unknown interface",
}

// String names the code for logs and panics.
func (e Error) String() string {
	if int(e) < len(errNames) {
		return errNames[e]
	}
	return "error " + itoa(int(e))
}
