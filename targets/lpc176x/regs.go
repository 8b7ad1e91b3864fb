//go:build tinygo

package main

import (
	"runtime/volatile"
	"unsafe"
)

// Register banks of the LPC176x peripherals this firmware touches. Layouts
// follow the UM10360 user manual; reserved words are padded with blanks.

const (
	i2c0Base = 0x4001C000
	i2c1Base = 0x4005C000
	i2c2Base = 0x400A0000

	gpioBase   = 0x2009C000
	pinConBase = 0x4002C000
	sysConBase = 0x400FC000
	uart0Base  = 0x4000C000

	// APB peripheral clock feeding I2C and UART0. Assumes the boot code
	// left PCLKSEL at the divide-by-four reset default with CCLK at 100MHz.
	pclkHz = 25_000_000
)

type i2cRegs struct {
	CONSET volatile.Register32
	STAT   volatile.Register32
	DAT    volatile.Register32
	ADR0   volatile.Register32
	SCLH   volatile.Register32
	SCLL   volatile.Register32
	CONCLR volatile.Register32
	MMCTRL volatile.Register32
}

type gpioRegs struct {
	FIODIR  volatile.Register32
	_       [3]volatile.Register32
	FIOMASK volatile.Register32
	FIOPIN  volatile.Register32
	FIOSET  volatile.Register32
	FIOCLR  volatile.Register32
}

type pinConRegs struct {
	PINSEL     [11]volatile.Register32
	_          [5]volatile.Register32
	PINMODE    [10]volatile.Register32
	PINMODE_OD [5]volatile.Register32
}

type sysConRegs struct {
	PCONP volatile.Register32
}

type uartRegs struct {
	RBRTHRDLL volatile.Register32 // RBR on read, THR on write, DLL with DLAB
	IERDLM    volatile.Register32
	IIRFCR    volatile.Register32
	LCR       volatile.Register32
	_         volatile.Register32
	LSR       volatile.Register32
}

var (
	i2cBanks = [3]*i2cRegs{
		(*i2cRegs)(unsafe.Pointer(uintptr(i2c0Base))),
		(*i2cRegs)(unsafe.Pointer(uintptr(i2c1Base))),
		(*i2cRegs)(unsafe.Pointer(uintptr(i2c2Base))),
	}

	gpioPorts = [5]*gpioRegs{
		(*gpioRegs)(unsafe.Pointer(uintptr(gpioBase + 0x00))),
		(*gpioRegs)(unsafe.Pointer(uintptr(gpioBase + 0x20))),
		(*gpioRegs)(unsafe.Pointer(uintptr(gpioBase + 0x40))),
		(*gpioRegs)(unsafe.Pointer(uintptr(gpioBase + 0x60))),
		(*gpioRegs)(unsafe.Pointer(uintptr(gpioBase + 0x80))),
	}

	pinCon = (*pinConRegs)(unsafe.Pointer(uintptr(pinConBase)))
	sysCon = (*sysConRegs)(unsafe.Pointer(uintptr(sysConBase + 0xC4)))
	uart0  = (*uartRegs)(unsafe.Pointer(uintptr(uart0Base)))
)

// PCONP power-enable bits.
const (
	pconpUART0 = 1 << 3
	pconpI2C0  = 1 << 7
	pconpGPIO  = 1 << 15
	pconpI2C1  = 1 << 19
	pconpI2C2  = 1 << 26
)

// setPinFunc programs the 2-bit PINSEL function field for port.pin.
func setPinFunc(port, pin, fn uint32) {
	reg := &pinCon.PINSEL[port*2+pin/16]
	shift := (pin % 16) * 2
	v := reg.Get()
	v &^= 3 << shift
	v |= fn << shift
	reg.Set(v)
}

// setPinMode programs the 2-bit PINMODE pull-resistor field for port.pin.
func setPinMode(port, pin, mode uint32) {
	reg := &pinCon.PINMODE[port*2+pin/16]
	shift := (pin % 16) * 2
	v := reg.Get()
	v &^= 3 << shift
	v |= mode << shift
	reg.Set(v)
}

// setPinOpenDrain switches port.pin to open-drain output mode, as the I2C
// alternate functions require on this package.
func setPinOpenDrain(port, pin uint32) {
	pinCon.PINMODE_OD[port].SetBits(1 << pin)
}
