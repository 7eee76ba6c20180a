package codec

import (
	"bytes"

	"github.com/choden-dev/ajazz-launchpad/internal/inputevent"
)

// InputReportSize is the fixed length of the launchpad's input report.
const InputReportSize = 13

var inputPrefix = []byte{'A', 'C', 'K', 0, 0, 'O', 'K', 0, 0}

// knob action codes, indexed by knob number (1..4).
var knobClockwise = map[byte]int{0xA1: 1, 0x51: 2, 0x91: 3, 0x71: 4}
var knobCounterClockwise = map[byte]int{0xA0: 1, 0x50: 2, 0x90: 3, 0x70: 4}
var knobPressed = map[byte]int{0x37: 1, 0x35: 2, 0x33: 3, 0x36: 4}

// DecodeInputReport maps a 13-byte input report to its typed InputEvent.
// An all-zero buffer and any pattern absent from the table both decode to
// inputevent.Unknown; callers must additionally treat the all-zero case as
// "no event available" rather than a real Unknown press (see the device
// driver's Device.ReadInput).
func DecodeInputReport(report [InputReportSize]byte) inputevent.InputEvent {
	if report == ([InputReportSize]byte{}) {
		return inputevent.Unknown
	}
	if !bytes.Equal(report[0:9], inputPrefix) {
		return inputevent.Unknown
	}
	p1, p2 := report[9], report[10]

	switch {
	case p1 >= 0x01 && p1 <= 0x0A && p2 == 0x01:
		return inputevent.Button(int(p1), inputevent.Pressed)
	case p1 >= 0x01 && p1 <= 0x0A && p2 == 0x00:
		return inputevent.Button(int(p1), inputevent.Released)
	case p1 >= 0x40 && p1 <= 0x43 && p2 == 0x00:
		return inputevent.TouchscreenZone(int(p1) - 0x40 + 1)
	case p1 == 0x39 && p2 == 0x00:
		return inputevent.TouchscreenSwipe(inputevent.SwipeLeft)
	case p1 == 0x38 && p2 == 0x00:
		return inputevent.TouchscreenSwipe(inputevent.SwipeRight)
	case p2 == 0x00:
		if idx, ok := knobClockwise[p1]; ok {
			return inputevent.Knob(idx, inputevent.Clockwise)
		}
		if idx, ok := knobCounterClockwise[p1]; ok {
			return inputevent.Knob(idx, inputevent.CounterClockwise)
		}
	case p2 == 0x01:
		if idx, ok := knobPressed[p1]; ok {
			return inputevent.Knob(idx, inputevent.KnobPressed)
		}
	}
	return inputevent.Unknown
}

// IsEmptyReport reports whether buf is the all-zero "no data available"
// sentinel the transport returns when a non-blocking read finds nothing.
func IsEmptyReport(report [InputReportSize]byte) bool {
	return report == ([InputReportSize]byte{})
}
