package core

// BusID identifies a specific I2C interface (e.g. I2C0, I2C1).
type BusID uint8

// Status is the raw status code reported by an I2C block after every bus
// event. The values follow the legacy NXP serial-controller encoding; the
// interrupt state machine switches on them directly.
type Status uint8

const (
	// Common states
	StatBusError          Status = 0x00 // illegal START or STOP on the bus
	StatStartSent         Status = 0x08 // START condition transmitted
	StatRepeatedStartSent Status = 0x10 // repeated START transmitted
	StatArbitrationLost   Status = 0x38 // arbitration lost in SLA or data

	// Master transmitter
	StatAddrWriteAck  Status = 0x18 // SLA+W sent, ACK received
	StatAddrWriteNack Status = 0x20 // SLA+W sent, NACK received
	StatDataWriteAck  Status = 0x28 // data byte sent, ACK received
	StatDataWriteNack Status = 0x30 // data byte sent, NACK received

	// Master receiver
	StatAddrReadAck  Status = 0x40 // SLA+R sent, ACK received
	StatAddrReadNack Status = 0x48 // SLA+R sent, NACK received
	StatDataReadAck  Status = 0x50 // data byte received, ACK returned
	StatDataReadNack Status = 0x58 // data byte received, NACK returned

	// Slave receiver. Slave transmitter states (0xA8..0xC8) are deliberately
	// not listed: this node never sources data while addressed as a slave and
	// the state machine ignores them.
	StatSlaveAddressed        Status = 0x60 // own SLA+W received, ACK returned
	StatArbLostSlaveAddressed Status = 0x68 // arbitration lost, then addressed
	StatSlaveDataAck          Status = 0x80 // byte received, ACK returned
	StatSlaveDataNack         Status = 0x88 // byte received, NACK returned
	StatSlaveStop             Status = 0xA0 // STOP or repeated START received
)

// Control holds bits of the peripheral control register, shared between the
// set and clear views (CONSET/CONCLR layout).
type Control uint8

const (
	CtrlAck       Control = 1 << 2 // acknowledge the next incoming byte
	CtrlInterrupt Control = 1 << 3 // state-change flag, cleared after service
	CtrlStop      Control = 1 << 4 // transmit STOP (master) or recover (slave)
	CtrlStart     Control = 1 << 5 // transmit START or repeated START
	CtrlEnable    Control = 1 << 6 // interface enable
)

// I2CPortDriver is the register-level interface to the I2C blocks. Target
// code implements it over the real silicon; tests implement it with a
// scripted peripheral. Every method must be callable from interrupt context,
// so implementations must not block.
type I2CPortDriver interface {
	// Enable powers the block, routes its pins and programs the clock rate.
	// Called once per interface during Init.
	Enable(bus BusID) error

	// Status returns the current bus status code.
	Status(bus BusID) Status

	// WriteData places a byte in the data register for transmission.
	WriteData(bus BusID, b byte)

	// ReadData returns the byte most recently received.
	ReadData(bus BusID) byte

	// SetControl asserts control bits (CONSET semantics).
	SetControl(bus BusID, bits Control)

	// ClearControl deasserts control bits (CONCLR semantics).
	ClearControl(bus BusID, bits Control)

	// SetOwnAddress programs the address this node answers to as a slave.
	SetOwnAddress(bus BusID, addr byte)

	// OwnAddress reads back the programmed slave address register. In IPMB
	// mode its contents become the synthetic first byte of a reception.
	OwnAddress(bus BusID) byte
}

// Global singleton used by core code.
var i2cPort I2CPortDriver

// SetI2CPortDriver is called by target-specific code to register its driver.
func SetI2CPortDriver(d I2CPortDriver) {
	i2cPort = d
}

// MustI2CPort returns the configured driver or panics if missing.
func MustI2CPort() I2CPortDriver {
	if i2cPort == nil {
		panic("I2C port driver not configured")
	}
	return i2cPort
}
