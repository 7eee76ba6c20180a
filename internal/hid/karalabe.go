package hid

import (
	"fmt"

	karalabehid "github.com/karalabe/hid"
)

// karalabeTransport adapts a github.com/karalabe/hid device to Transport.
type karalabeTransport struct {
	dev *karalabehid.Device
}

// OpenPath opens the HID device at path for exclusive use.
func OpenPath(info karalabehid.DeviceInfo) (Transport, error) {
	dev, err := info.Open()
	if err != nil {
		return nil, fmt.Errorf("hid: open %s: %w", info.Path, err)
	}
	return &karalabeTransport{dev: dev}, nil
}

func (t *karalabeTransport) Read(buf []byte) (int, error) {
	n, err := t.dev.Read(buf)
	if err != nil {
		if isDisconnectError(err) {
			return 0, ErrDeviceDisconnected
		}
		return 0, fmt.Errorf("hid: read: %w", err)
	}
	return n, nil
}

func (t *karalabeTransport) Write(data []byte) (int, error) {
	n, err := t.dev.Write(data)
	if err != nil {
		if isDisconnectError(err) {
			return 0, ErrDeviceDisconnected
		}
		return 0, fmt.Errorf("hid: write: %w", err)
	}
	if n == 0 {
		return 0, ErrShortWrite
	}
	return n, nil
}

// SetBlockingMode is a no-op for the karalabe/hid backend: it always
// performs non-blocking reads with a zero-length result when nothing is
// available, matching the driver's non-blocking-read requirement.
func (t *karalabeTransport) SetBlockingMode(blocking bool) error {
	return nil
}

func (t *karalabeTransport) Close() error {
	return t.dev.Close()
}

func isDisconnectError(err error) bool {
	return err != nil && err.Error() == disconnectErrText
}

// Enumerate lists every HID interface exposing the launchpad's vendor and
// product id.
func Enumerate() []karalabehid.DeviceInfo {
	return karalabehid.Enumerate(VendorID, ProductID)
}
