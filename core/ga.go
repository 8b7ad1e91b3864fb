package core

import (
	"sync"
	"time"
)

// PinLevel classifies one geographic-address line.
type PinLevel uint8

const (
	Grounded    PinLevel = 0 // tied to logic ground
	PulledUp    PinLevel = 1 // pulled up to management power
	Unconnected PinLevel = 2 // floating, follows the test line
)

// GAPins names the three location-sense lines and the test-enable line used
// to tell a floating line from one tied to a fixed level.
type GAPins struct {
	Test Pin
	GA0  Pin
	GA1  Pin
	GA2  Pin
}

// ipmblTable maps the ternary pin index to the IPMB-L slave address of the
// slot. The mapping is fixed by the MicroTCA site-numbering assignment
// (address = 0x70 + 2 * site number) and is not arithmetic in the index,
// hence the lookup table.
//
// Index digits: GA0 weight 1, GA1 weight 3, GA2 weight 9;
// grounded = 0, pulled up = 1, unconnected = 2.
var ipmblTable = [27]byte{
	0x70, 0x8A, 0x72, 0x8E, 0x92, 0x90, 0x74, 0x8C, 0x76,
	0x98, 0x9C, 0x9A, 0xA0, 0xA4, 0x88, 0x9E, 0x86, 0x84,
	0x78, 0x94, 0x7A, 0x96, 0x82, 0x80, 0x7C, 0x7E, 0xA2,
}

// gaSettle is the delay between driving the test line and sampling the GA
// lines. An unconnected line needs a few cycles to follow the test level.
const gaSettle = 10 * time.Microsecond

// ResolveGeographicAddress senses the slot position and returns this node's
// IPMB-L slave address. Each GA line is sampled twice, once with the test
// line high and once low; a line whose two samples differ is floating and
// classifies as Unconnected regardless of either raw level. Pin
// configuration failures are boot-time faults and halt.
func ResolveGeographicAddress(pins GAPins) byte {
	gpio := MustGPIO()

	configurePin(gpio.ConfigureOutput, pins.Test)
	configurePin(gpio.ConfigureInput, pins.GA0)
	configurePin(gpio.ConfigureInput, pins.GA1)
	configurePin(gpio.ConfigureInput, pins.GA2)

	setPin(gpio, pins.Test, true)
	time.Sleep(gaSettle)
	high0 := samplePin(gpio, pins.GA0)
	high1 := samplePin(gpio, pins.GA1)
	high2 := samplePin(gpio, pins.GA2)

	setPin(gpio, pins.Test, false)
	time.Sleep(gaSettle)
	ga0 := classify(high0, samplePin(gpio, pins.GA0))
	ga1 := classify(high1, samplePin(gpio, pins.GA1))
	ga2 := classify(high2, samplePin(gpio, pins.GA2))

	index := int(ga0) + 3*int(ga1) + 9*int(ga2)
	if index >= len(ipmblTable) {
		// Unreachable with three ternary digits; fall back to address 0
		// rather than halting a running system.
		return 0
	}
	return ipmblTable[index]
}

// classify turns the two samples of one line into its level. A stable line
// reports its resting level; a changed line follows the test pin and is
// therefore unconnected.
func classify(first, second bool) PinLevel {
	if first != second {
		return Unconnected
	}
	if first {
		return PulledUp
	}
	return Grounded
}

var (
	ownAddrOnce sync.Once
	ownAddr     byte
)

// OwnAddress returns this node's slave address, resolving it on first use
// and caching it for the rest of execution. Every IPMB message carries the
// own address in its header, so the pin dance runs exactly once.
func OwnAddress() byte {
	ownAddrOnce.Do(func() {
		ownAddr = ResolveGeographicAddress(MustBoard().GA)
	})
	return ownAddr
}

func configurePin(configure func(Pin) error, pin Pin) {
	if err := configure(pin); err != nil {
		panic("i2c: GA pin configuration failed: " + err.Error())
	}
}

func setPin(gpio GPIODriver, pin Pin, value bool) {
	if err := gpio.SetPin(pin, value); err != nil {
		panic("i2c: GA test pin drive failed: " + err.Error())
	}
}

func samplePin(gpio GPIODriver, pin Pin) bool {
	v, err := gpio.GetPin(pin)
	if err != nil {
		panic("i2c: GA pin sample failed: " + err.Error())
	}
	return v
}
