// Package monitor decodes the trace frame stream coming off the MMC debug
// UART and renders the transactions as structured log lines.
package monitor

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"gommc/link"
)

// Monitor pumps bytes from a serial port through a frame decoder and logs
// every decoded transaction.
type Monitor struct {
	r   io.Reader
	log *logrus.Entry
	dec link.Decoder

	// Frames counts successfully decoded frames.
	Frames int
}

// New creates a Monitor reading from r and logging to log.
func New(r io.Reader, log *logrus.Entry) *Monitor {
	return &Monitor{r: r, log: log}
}

// Run decodes frames until the reader reports an error. io.EOF is returned
// as-is so a caller draining a capture file can distinguish a clean end.
func (m *Monitor) Run() error {
	buf := make([]byte, 512)
	for {
		n, err := m.r.Read(buf)
		if n > 0 {
			crcBefore := m.dec.CRCErrors
			for _, f := range m.dec.Feed(buf[:n]) {
				m.Frames++
				m.logFrame(&f)
			}
			if m.dec.CRCErrors > crcBefore {
				m.log.WithField("total", m.dec.CRCErrors).Warn("Dropped frame with bad checksum")
			}
		}
		if err != nil {
			return err
		}
	}
}

func (m *Monitor) logFrame(f *link.Frame) {
	fields := logrus.Fields{
		"role": roleName(f.Role),
		"bus":  f.Bus,
		"addr": fmt.Sprintf("%#02x", f.Addr),
		"len":  len(f.Payload),
		"data": fmt.Sprintf("% x", f.Payload),
	}
	if f.Err != 0 {
		fields["code"] = f.Err
		m.log.WithFields(fields).Warn("Transaction failed")
		return
	}
	m.log.WithFields(fields).Info("Transaction")
}

func roleName(role uint8) string {
	switch role {
	case link.RoleMaster:
		return "master"
	case link.RoleSlave:
		return "slave"
	default:
		return "unknown"
	}
}
