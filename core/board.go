package core

// BoardConfig carries the board-specific topology the driver cannot know on
// its own. Target code fills it in and registers it before calling Init, the
// same way it registers the hardware drivers; the core logic itself stays
// free of compiled-in pin tables.
type BoardConfig struct {
	// GA names the geographic-address sense pins and their test-enable pin.
	GA GAPins

	// I2CClockHz is the bus clock rate programmed during Enable. Zero means
	// the conventional 100 kHz.
	I2CClockHz uint32
}

const defaultI2CClockHz = 100000

var boardConfig *BoardConfig

// SetBoardConfig registers the board description. Called by target-specific
// code before Init.
func SetBoardConfig(cfg *BoardConfig) {
	boardConfig = cfg
}

// MustBoard returns the registered board description or panics if missing.
func MustBoard() *BoardConfig {
	if boardConfig == nil {
		panic("board configuration not registered")
	}
	return boardConfig
}

// ClockHz returns the configured bus clock rate, applying the default.
func (c *BoardConfig) ClockHz() uint32 {
	if c.I2CClockHz == 0 {
		return defaultI2CClockHz
	}
	return c.I2CClockHz
}
