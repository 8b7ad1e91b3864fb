//go:build tinygo

package main

import (
	"errors"

	"gommc/core"
)

// LPCGPIODriver implements core.GPIODriver over the FIO register banks.
type LPCGPIODriver struct{}

// NewLPCGPIODriver constructs the driver and powers the GPIO block.
func NewLPCGPIODriver() *LPCGPIODriver {
	sysCon.PCONP.SetBits(pconpGPIO)
	return &LPCGPIODriver{}
}

var errBadPin = errors.New("pin out of range")

func fioPort(pin core.Pin) (*gpioRegs, uint32, error) {
	port := int(pin.Port())
	if port >= len(gpioPorts) {
		return nil, 0, errBadPin
	}
	return gpioPorts[port], 1 << pin.Bit(), nil
}

// ConfigureOutput configures a pin as a digital output.
func (d *LPCGPIODriver) ConfigureOutput(pin core.Pin) error {
	regs, mask, err := fioPort(pin)
	if err != nil {
		return err
	}
	setPinFunc(uint32(pin.Port()), uint32(pin.Bit()), 0)
	regs.FIODIR.SetBits(mask)
	return nil
}

// ConfigureInput configures a pin as a floating digital input. PINMODE value
// 10 disables both pull resistors; the geographic-address sense depends on
// that.
func (d *LPCGPIODriver) ConfigureInput(pin core.Pin) error {
	regs, mask, err := fioPort(pin)
	if err != nil {
		return err
	}
	setPinFunc(uint32(pin.Port()), uint32(pin.Bit()), 0)
	setPinMode(uint32(pin.Port()), uint32(pin.Bit()), 2)
	regs.FIODIR.ClearBits(mask)
	return nil
}

// SetPin sets the pin to high (true) or low (false).
func (d *LPCGPIODriver) SetPin(pin core.Pin, value bool) error {
	regs, mask, err := fioPort(pin)
	if err != nil {
		return err
	}
	if value {
		regs.FIOSET.Set(mask)
	} else {
		regs.FIOCLR.Set(mask)
	}
	return nil
}

// GetPin reads the current pin state.
func (d *LPCGPIODriver) GetPin(pin core.Pin) (bool, error) {
	regs, mask, err := fioPort(pin)
	if err != nil {
		return false, err
	}
	return regs.FIOPIN.Get()&mask != 0, nil
}
