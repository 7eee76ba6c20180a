// Package device implements the launchpad's device driver: the operations
// built from the wire codec and a HidTransport handle.
package device

import (
	"fmt"
	"io"
	"sync"

	"github.com/choden-dev/ajazz-launchpad/internal/codec"
	"github.com/choden-dev/ajazz-launchpad/internal/hid"
	"github.com/choden-dev/ajazz-launchpad/internal/inputevent"
)

// InputHandler is invoked exactly once per decoded, non-empty input
// report.
type InputHandler func(inputevent.InputEvent)

// Device owns one open HidTransport handle and exposes the launchpad's
// command set built from internal/codec.
type Device struct {
	mu        sync.Mutex
	transport hid.Transport
	handler   InputHandler
}

// New wraps transport, configuring it for non-blocking reads.
func New(transport hid.Transport, handler InputHandler) (*Device, error) {
	if err := transport.SetBlockingMode(false); err != nil {
		return nil, fmt.Errorf("device: set non-blocking mode: %w", err)
	}
	return &Device{transport: transport, handler: handler}, nil
}

// UpdateHandler atomically replaces the input handler. No in-flight event
// is lost: ReadInput always reads handler under the same lock it uses to
// decode and dispatch.
func (d *Device) UpdateHandler(h InputHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handler = h
}

func (d *Device) write(report []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, err := d.transport.Write(report)
	return err
}

// Refresh flushes pending display changes to the screen.
func (d *Device) Refresh() error {
	buf := codec.EncodeRefresh()
	return d.write(buf[:])
}

// WakeScreen wakes the device's display.
func (d *Device) WakeScreen() error {
	buf := codec.EncodeWakeScreen()
	return d.write(buf[:])
}

// ClearAllImages removes every display-zone image.
func (d *Device) ClearAllImages() error {
	buf := codec.EncodeClearAllImages()
	return d.write(buf[:])
}

// SetBrightness clamps b to 0 when it is outside 0..=100, then writes the
// clamped value. The wire byte always matches the clamped value.
func (d *Device) SetBrightness(b int) error {
	clamped := byte(b)
	if b < 0 || b > 100 {
		clamped = 0
	}
	buf := codec.EncodeSetBrightness(clamped)
	return d.write(buf[:])
}

// ClearDisplayZoneImage clears the image bound to zone.
func (d *Device) ClearDisplayZoneImage(zone codec.DisplayZone) error {
	id, err := zone.WireID()
	if err != nil {
		return err
	}
	buf := codec.EncodeClearZoneImage(id)
	return d.write(buf[:])
}

// SetBackgroundImage uploads the full-screen boot logo image in two
// phases: an initiation report carrying the total size, then one data
// packet per 1024-byte chunk. The result is the result of the final
// write; an intermediate write failure is not retried.
func (d *Device) SetBackgroundImage(size uint32, r io.Reader) error {
	init := codec.EncodeInitiateBackgroundImage(size)
	if err := d.write(init[:]); err != nil {
		return fmt.Errorf("device: initiate background image: %w", err)
	}
	return d.uploadChunks(r)
}

// SetDisplayZoneImage uploads an image into a single display zone, using
// the same two-phase chunked protocol as SetBackgroundImage.
func (d *Device) SetDisplayZoneImage(zone codec.DisplayZone, size uint32, r io.Reader) error {
	id, err := zone.WireID()
	if err != nil {
		return err
	}
	init := codec.EncodeInitiateZoneImage(size, id)
	if err := d.write(init[:]); err != nil {
		return fmt.Errorf("device: initiate zone image: %w", err)
	}
	return d.uploadChunks(r)
}

func (d *Device) uploadChunks(r io.Reader) error {
	chunk := make([]byte, codec.ImageChunkSize)
	var lastErr error
	for {
		n, err := r.Read(chunk)
		if n > 0 {
			padded := chunk
			if n < len(chunk) {
				padded = make([]byte, len(chunk))
				copy(padded, chunk[:n])
			}
			packet := codec.EncodeImageDataPacket(padded)
			lastErr = d.write(packet[:])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("device: read image stream: %w", err)
		}
	}
	return lastErr
}

// ReadInput performs one non-blocking read. An all-zero buffer means no
// input is available and the handler is not invoked. A disconnect error
// is propagated unchanged so the control loop can reinitialize.
func (d *Device) ReadInput() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var buf [codec.InputReportSize]byte
	n, err := d.transport.Read(buf[:])
	if err != nil {
		return err
	}
	if n == 0 {
		return nil
	}

	if codec.IsEmptyReport(buf) {
		return nil
	}

	event := codec.DecodeInputReport(buf)
	if d.handler != nil {
		d.handler(event)
	}
	return nil
}

// Close releases the underlying HID handle.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.transport.Close()
}
