package hid

import (
	"context"
	"errors"
	"time"
)

// RetryInterval is the idle wait between failed discovery attempts.
const RetryInterval = 500 * time.Millisecond

// ErrNoDevice is returned by one discovery attempt when no launchpad
// interface could be opened.
var ErrNoDevice = errors.New("hid: no launchpad device found")

// Enumerator abstracts device enumeration so discovery is testable without
// a real USB bus.
type Enumerator func() []DeviceCandidate

// DeviceCandidate is one enumerated HID interface path, opened lazily.
type DeviceCandidate struct {
	Path string
	Open func() (Transport, error)
}

// DefaultEnumerator lists the launchpad's real HID interfaces via
// github.com/karalabe/hid.
func DefaultEnumerator() []DeviceCandidate {
	infos := Enumerate()
	candidates := make([]DeviceCandidate, len(infos))
	for i, info := range infos {
		info := info
		candidates[i] = DeviceCandidate{
			Path: info.Path,
			Open: func() (Transport, error) { return OpenPath(info) },
		}
	}
	return candidates
}

// tryOnce enumerates the candidate paths afresh (DefaultEnumerator filters
// by the launchpad's vendor and product id), then opens each candidate path
// in turn, returning the first one that succeeds. The vid/pid expose
// multiple logical interfaces; only one is writable, hence the per-path
// probe.
func tryOnce(enumerate Enumerator) (Transport, error) {
	for _, candidate := range enumerate() {
		transport, err := candidate.Open()
		if err == nil {
			return transport, nil
		}
	}
	return nil, ErrNoDevice
}

// Discover blocks until a launchpad HID interface opens successfully,
// retrying every RetryInterval, or returns early if ctx is canceled.
func Discover(ctx context.Context, enumerate Enumerator) (Transport, error) {
	for {
		if transport, err := tryOnce(enumerate); err == nil {
			return transport, nil
		}

		timer := time.NewTimer(RetryInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}
