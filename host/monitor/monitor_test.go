package monitor

import (
	"bytes"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"gommc/link"
)

func newTestMonitor(r io.Reader) (*Monitor, *test.Hook) {
	logger, hook := test.NewNullLogger()
	return New(r, logrus.NewEntry(logger)), hook
}

func encodeFrames(t *testing.T, frames ...link.Frame) []byte {
	t.Helper()
	var stream []byte
	var err error
	for i := range frames {
		stream, err = link.AppendFrame(stream, &frames[i])
		if err != nil {
			t.Fatal(err)
		}
	}
	return stream
}

func TestRunDecodesStream(t *testing.T) {
	stream := encodeFrames(t,
		link.Frame{Role: link.RoleMaster, Bus: 0, Addr: 0x52, Payload: []byte{1, 2}},
		link.Frame{Role: link.RoleSlave, Bus: 0, Addr: 0x76, Payload: []byte{0x76, 0x18}},
	)

	m, hook := newTestMonitor(bytes.NewReader(stream))
	if err := m.Run(); err != io.EOF {
		t.Fatalf("Run returned %v, want io.EOF", err)
	}
	if m.Frames != 2 {
		t.Fatalf("decoded %d frames, want 2", m.Frames)
	}

	entries := hook.AllEntries()
	if len(entries) != 2 {
		t.Fatalf("logged %d entries, want 2", len(entries))
	}
	if entries[0].Data["role"] != "master" || entries[1].Data["role"] != "slave" {
		t.Errorf("roles logged as %v, %v", entries[0].Data["role"], entries[1].Data["role"])
	}
	if entries[0].Level != logrus.InfoLevel {
		t.Errorf("clean transaction logged at %v", entries[0].Level)
	}
}

func TestRunWarnsOnFailedTransaction(t *testing.T) {
	stream := encodeFrames(t,
		link.Frame{Role: link.RoleMaster, Bus: 1, Addr: 0x40, Err: 5},
	)

	m, hook := newTestMonitor(bytes.NewReader(stream))
	m.Run()

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("nothing logged")
	}
	if entry.Level != logrus.WarnLevel {
		t.Errorf("failed transaction logged at %v, want warning", entry.Level)
	}
	if entry.Data["code"] != uint8(5) {
		t.Errorf("code field = %v, want 5", entry.Data["code"])
	}
}

func TestRunWarnsOnChecksumErrors(t *testing.T) {
	good := encodeFrames(t, link.Frame{Role: link.RoleMaster, Bus: 0, Addr: 0x10, Payload: []byte{9}})
	bad := encodeFrames(t, link.Frame{Role: link.RoleMaster, Bus: 0, Addr: 0x11, Payload: []byte{8}})
	bad[len(bad)-1] ^= 0xFF

	m, hook := newTestMonitor(bytes.NewReader(append(bad, good...)))
	m.Run()

	if m.Frames != 1 {
		t.Fatalf("decoded %d frames, want 1", m.Frames)
	}
	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Message == "Dropped frame with bad checksum" {
			warned = true
		}
	}
	if !warned {
		t.Error("checksum failure not logged")
	}
}
