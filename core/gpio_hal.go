package core

// Pin identifies a hardware GPIO pin as port*32+pin, matching the flat
// numbering used by the port bit-band registers.
type Pin uint16

// PinAt builds a Pin from a port number and a bit position within the port.
func PinAt(port, pin uint8) Pin {
	return Pin(uint16(port)<<5 | uint16(pin&0x1F))
}

// Port returns the port number of the pin.
func (p Pin) Port() uint8 { return uint8(p >> 5) }

// Bit returns the bit position of the pin within its port.
func (p Pin) Bit() uint8 { return uint8(p & 0x1F) }

// GPIODriver is the abstract GPIO interface that core code uses.
// Platform-specific implementations handle actual hardware control.
type GPIODriver interface {
	// ConfigureOutput configures a pin as a digital output.
	ConfigureOutput(pin Pin) error

	// ConfigureInput configures a pin as a digital input with no pull
	// resistor. The geographic-address lines must float freely so that the
	// unconnected-pin detection works.
	ConfigureInput(pin Pin) error

	// SetPin sets the pin to high (true) or low (false).
	SetPin(pin Pin, value bool) error

	// GetPin reads the current pin state.
	GetPin(pin Pin) (bool, error)
}

// Global singleton used by core code.
var gpioDriver GPIODriver

// SetGPIODriver is called by target-specific code to register its driver.
func SetGPIODriver(d GPIODriver) {
	gpioDriver = d
}

// MustGPIO returns the configured driver or panics if missing.
func MustGPIO() GPIODriver {
	if gpioDriver == nil {
		panic("GPIO driver not configured")
	}
	return gpioDriver
}
