// Package link implements the framed byte stream used to export driver
// trace records over a debug serial port. The encoder runs on the firmware
// side and works into a caller-provided buffer; the decoder runs on the host
// and resynchronizes on the sync byte after corruption.
//
// Frame layout:
//
//	sync(0x7E) length role bus addr err payload... crc8
//
// length counts the payload bytes only. The CRC covers everything between
// the sync byte and the CRC itself.
package link

import (
	"errors"

	"github.com/sigurn/crc8"
)

const (
	// SyncByte starts every frame.
	SyncByte = 0x7E

	// MaxPayload matches the driver's transaction buffer.
	MaxPayload = 32

	headerLen  = 5 // length, role, bus, addr, err
	trailerLen = 1 // crc8

	// MaxFrameLen is the worst-case encoded size including the sync byte.
	MaxFrameLen = 1 + headerLen + MaxPayload + trailerLen
)

// Trace roles carried in frames.
const (
	RoleMaster = 0
	RoleSlave  = 1
)

var crcTable *crc8.Table

func init() {
	crcParam := crc8.Params{
		Poly: 0x07,
		Init: 0x00,
		Name: "CRC-8/SMBus",
	}
	crcTable = crc8.MakeTable(crcParam)
}

// Frame is one decoded trace record.
type Frame struct {
	Role    uint8
	Bus     uint8
	Addr    uint8
	Err     uint8
	Payload []byte
}

var ErrPayloadTooLong = errors.New("link: payload exceeds frame capacity")

// AppendFrame encodes f and appends it to dst, returning the extended slice.
// With dst preallocated to MaxFrameLen the call does not allocate, which the
// firmware sender relies on.
func AppendFrame(dst []byte, f *Frame) ([]byte, error) {
	if len(f.Payload) > MaxPayload {
		return dst, ErrPayloadTooLong
	}

	start := len(dst)
	dst = append(dst, SyncByte, byte(len(f.Payload)), f.Role, f.Bus, f.Addr, f.Err)
	dst = append(dst, f.Payload...)
	crc := crc8.Checksum(dst[start+1:], crcTable)
	dst = append(dst, crc)
	return dst, nil
}

// Decoder reassembles frames from an arbitrary chunking of the byte stream.
// It keeps counters instead of returning errors: a debug tap must survive
// line noise and keep decoding whatever follows.
type Decoder struct {
	buf []byte

	// CRCErrors counts frames dropped for checksum mismatch.
	CRCErrors int

	// SkippedBytes counts garbage bytes discarded while hunting for sync.
	SkippedBytes int
}

// Feed consumes the next chunk of the stream and returns all frames
// completed by it. Payload slices are copies, safe to retain.
func (d *Decoder) Feed(p []byte) []Frame {
	d.buf = append(d.buf, p...)

	var frames []Frame
	for {
		f, ok := d.next()
		if !ok {
			return frames
		}
		frames = append(frames, f)
	}
}

// next extracts one frame from the front of the buffer, discarding garbage
// and corrupt frames as it goes.
func (d *Decoder) next() (Frame, bool) {
	for {
		// Hunt for the sync byte.
		i := 0
		for i < len(d.buf) && d.buf[i] != SyncByte {
			i++
		}
		d.SkippedBytes += i
		d.buf = d.buf[i:]

		if len(d.buf) < 2 {
			return Frame{}, false
		}

		plen := int(d.buf[1])
		if plen > MaxPayload {
			// Not a real frame start; skip the false sync byte.
			d.SkippedBytes++
			d.buf = d.buf[1:]
			continue
		}

		total := 1 + headerLen + plen + trailerLen
		if len(d.buf) < total {
			return Frame{}, false
		}

		body := d.buf[1 : total-1]
		if crc8.Checksum(body, crcTable) != d.buf[total-1] {
			d.CRCErrors++
			d.buf = d.buf[1:] // resync past the corrupt sync byte
			continue
		}

		f := Frame{
			Role:    body[1],
			Bus:     body[2],
			Addr:    body[3],
			Err:     body[4],
			Payload: append([]byte(nil), body[headerLen:]...),
		}
		d.buf = d.buf[total:]
		return f, true
	}
}
