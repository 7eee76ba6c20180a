// Package hid defines the HidTransport capability the device driver is
// built on, a production implementation backed by github.com/karalabe/hid,
// and the device-discovery scanner that finds the launchpad on the bus.
package hid

import "errors"

// ErrShortWrite is returned when a transport write reports 0 bytes
// written without an error. The source transport's contract leaves this
// unspecified; a 0-byte write is not treated as success here (see
// DESIGN.md's "Open question decisions").
var ErrShortWrite = errors.New("hid: short write (0 bytes)")

// ErrDeviceDisconnected is the typed error HidTransport implementations
// must surface when the underlying HID read fails because the device was
// unplugged. The original transport reports this only via a literal error
// string; Transport implementations are expected to translate that string
// into this sentinel so callers never pattern-match on text.
var ErrDeviceDisconnected = errors.New("hid: device disconnected")

// disconnectErrText is the literal error text the underlying hidapi
// binding reports on physical disconnect.
const disconnectErrText = "hidapi error: hid_read_timeout: device disconnected"

// Transport is the capability the device driver depends on. Production
// code backs it with github.com/karalabe/hid; tests back it with a fake.
type Transport interface {
	// Read performs one read into buf, returning the number of bytes read.
	// In non-blocking mode, a read with nothing available returns (0, nil).
	Read(buf []byte) (int, error)
	// Write sends one output report.
	Write(data []byte) (int, error)
	// SetBlockingMode toggles whether Read blocks waiting for a report.
	SetBlockingMode(blocking bool) error
	// Close releases the underlying OS handle.
	Close() error
}

// VendorID and ProductID identify the launchpad on the USB bus.
const (
	VendorID  = 0x0300
	ProductID = 0x3004
)
