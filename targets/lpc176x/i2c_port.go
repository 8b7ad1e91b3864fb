//go:build tinygo

package main

import (
	"errors"

	"gommc/core"
)

// LPCI2CPortDriver implements core.I2CPortDriver over the three fixed-function
// I2C blocks of the LPC176x.
type LPCI2CPortDriver struct{}

// NewLPCI2CPortDriver constructs the driver.
func NewLPCI2CPortDriver() *LPCI2CPortDriver {
	return &LPCI2CPortDriver{}
}

var errUnknownBlock = errors.New("unsupported I2C interface")

// Enable powers the block, routes its pins and programs the SCL dividers.
func (d *LPCI2CPortDriver) Enable(bus core.BusID) error {
	switch bus {
	case 0:
		sysCon.PCONP.SetBits(pconpI2C0)
		// P0.27 SDA0, P0.28 SCL0, function 01
		setPinFunc(0, 27, 1)
		setPinFunc(0, 28, 1)
	case 1:
		sysCon.PCONP.SetBits(pconpI2C1)
		// P0.0 SDA1, P0.1 SCL1, function 11
		setPinFunc(0, 0, 3)
		setPinFunc(0, 1, 3)
		setPinOpenDrain(0, 0)
		setPinOpenDrain(0, 1)
	case 2:
		sysCon.PCONP.SetBits(pconpI2C2)
		// P0.10 SDA2, P0.11 SCL2, function 10
		setPinFunc(0, 10, 2)
		setPinFunc(0, 11, 2)
		setPinOpenDrain(0, 10)
		setPinOpenDrain(0, 11)
	default:
		return errUnknownBlock
	}

	regs := i2cBanks[bus]
	div := uint32(pclkHz) / core.MustBoard().ClockHz()
	regs.SCLH.Set(div / 2)
	regs.SCLL.Set(div - div/2)

	// Known idle state before the core layer takes over.
	regs.CONCLR.Set(uint32(core.CtrlAck | core.CtrlInterrupt | core.CtrlStop | core.CtrlStart | core.CtrlEnable))
	return nil
}

func (d *LPCI2CPortDriver) Status(bus core.BusID) core.Status {
	return core.Status(i2cBanks[bus].STAT.Get())
}

func (d *LPCI2CPortDriver) WriteData(bus core.BusID, b byte) {
	i2cBanks[bus].DAT.Set(uint32(b))
}

func (d *LPCI2CPortDriver) ReadData(bus core.BusID) byte {
	return byte(i2cBanks[bus].DAT.Get())
}

func (d *LPCI2CPortDriver) SetControl(bus core.BusID, bits core.Control) {
	i2cBanks[bus].CONSET.Set(uint32(bits))
}

func (d *LPCI2CPortDriver) ClearControl(bus core.BusID, bits core.Control) {
	i2cBanks[bus].CONCLR.Set(uint32(bits))
}

func (d *LPCI2CPortDriver) SetOwnAddress(bus core.BusID, addr byte) {
	// Bit 0 is the general-call enable, left off.
	i2cBanks[bus].ADR0.Set(uint32(addr))
}

func (d *LPCI2CPortDriver) OwnAddress(bus core.BusID) byte {
	return byte(i2cBanks[bus].ADR0.Get())
}
