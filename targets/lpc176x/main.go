//go:build tinygo

package main

import (
	"device/arm"

	"gommc/core"
	"gommc/link"
)

// NVIC interrupt numbers of the I2C blocks.
const (
	irqI2C0 = 10
	irqI2C1 = 11
	irqI2C2 = 12
)

const (
	debugBaud    = 115200
	traceBacklog = 16
)

func main() {
	core.SetBoardConfig(&afcBoard)
	core.SetGPIODriver(NewLPCGPIODriver())
	core.SetI2CPortDriver(NewLPCI2CPortDriver())

	uart := initUART(debugBaud)

	traces := core.EnableTrace(traceBacklog)
	go forwardTraces(uart, traces)

	core.Init(busIPMB, core.IPMB)
	core.Init(busSensor1, core.LocalMaster)
	core.Init(busSensor2, core.LocalMaster)

	arm.EnableIRQ(irqI2C0)
	arm.EnableIRQ(irqI2C1)
	arm.EnableIRQ(irqI2C2)

	// Drain IPMB requests. The trace hook already mirrors every reception to
	// the host, so this loop only has to keep the slave buffer moving.
	var req [core.MaxMsgLen]byte
	for {
		core.SlaveTransfer(busIPMB, req[:], -1)
	}
}

// forwardTraces frames completed transactions onto the debug UART.
func forwardTraces(uart debugUART, traces <-chan core.TraceRecord) {
	scratch := make([]byte, 0, link.MaxFrameLen)
	for rec := range traces {
		f := link.Frame{
			Role:    rec.Role,
			Bus:     uint8(rec.Bus),
			Addr:    rec.Addr,
			Err:     uint8(rec.Err),
			Payload: rec.Payload(),
		}
		out, err := link.AppendFrame(scratch[:0], &f)
		if err != nil {
			continue
		}
		uart.Write(out)
	}
}

// Vector-table entries for the three I2C blocks.

//export I2C0_IRQHandler
func i2c0IRQ() {
	core.HandleIRQ(0)
}

//export I2C1_IRQHandler
func i2c1IRQ() {
	core.HandleIRQ(1)
}

//export I2C2_IRQHandler
func i2c2IRQ() {
	core.HandleIRQ(2)
}
