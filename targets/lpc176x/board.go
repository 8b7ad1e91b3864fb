//go:build tinygo

package main

import "gommc/core"

// AFC-style MMC pinout. The geographic-address lines sit on port 1 together
// with their test-enable driver.
var afcBoard = core.BoardConfig{
	GA: core.GAPins{
		Test: core.PinAt(1, 8),
		GA0:  core.PinAt(1, 0),
		GA1:  core.PinAt(1, 1),
		GA2:  core.PinAt(1, 4),
	},
	I2CClockHz: 100000,
}

// Bus assignment on the carrier: the backplane IPMB sits on interface 0, the
// two payload sensor buses on 1 and 2.
const (
	busIPMB    core.BusID = 0
	busSensor1 core.BusID = 1
	busSensor2 core.BusID = 2
)
