//go:build tinygo

package main

// Debug UART on P0.2/P0.3, polled writes only. The trace stream is low
// volume so blocking on THR-empty is acceptable.

const (
	lcrDLAB     = 1 << 7
	lcr8N1      = 0x03
	fcrEnable   = 0x07 // FIFO enable, clear both FIFOs
	lsrTHREmpty = 1 << 5
)

type debugUART struct{}

func initUART(baud uint32) debugUART {
	sysCon.PCONP.SetBits(pconpUART0)
	// P0.2 TXD0, P0.3 RXD0, function 01
	setPinFunc(0, 2, 1)
	setPinFunc(0, 3, 1)

	div := uint32(pclkHz) / (16 * baud)
	uart0.LCR.Set(lcrDLAB | lcr8N1)
	uart0.RBRTHRDLL.Set(div & 0xFF)
	uart0.IERDLM.Set(div >> 8)
	uart0.LCR.Set(lcr8N1)
	uart0.IIRFCR.Set(fcrEnable)
	return debugUART{}
}

// Write sends p one byte at a time, waiting for transmitter holding register
// space. Implements io.Writer so the frame sender can target it directly.
func (debugUART) Write(p []byte) (int, error) {
	for _, b := range p {
		for uart0.LSR.Get()&lsrTHREmpty == 0 {
		}
		uart0.RBRTHRDLL.Set(uint32(b))
	}
	return len(p), nil
}
