package codec

import (
	"testing"

	"github.com/choden-dev/ajazz-launchpad/internal/inputevent"
)

func TestZoneBijection(t *testing.T) {
	zones := []DisplayZone{
		Button1, Button2, Button3, Button4, Button5,
		Button6, Button7, Button8, Button9, Button10,
		Touchscreen1, Touchscreen2, Touchscreen3, Touchscreen4,
	}
	seen := make(map[byte]DisplayZone)
	for _, z := range zones {
		id, err := z.WireID()
		if err != nil {
			t.Fatalf("WireID(%v): %v", z, err)
		}
		if other, ok := seen[id]; ok {
			t.Fatalf("wire id %d assigned to both %v and %v", id, other, z)
		}
		seen[id] = z

		back, err := ZoneFromWireID(id)
		if err != nil {
			t.Fatalf("ZoneFromWireID(%d): %v", id, err)
		}
		if back != z {
			t.Fatalf("round-trip mismatch: %v -> %d -> %v", z, id, back)
		}
	}
}

func TestButton6To10WireIDs(t *testing.T) {
	want := map[DisplayZone]byte{
		Button6: 6, Button7: 7, Button8: 8, Button9: 9, Button10: 10,
	}
	for z, id := range want {
		got, err := z.WireID()
		if err != nil || got != id {
			t.Fatalf("%v.WireID() = %d, %v; want %d", z, got, err, id)
		}
		back, err := ZoneFromWireID(id)
		if err != nil || back != z {
			t.Fatalf("ZoneFromWireID(%d) = %v, %v; want %v", id, back, err, z)
		}
	}
}

func TestSetBrightnessBuffer(t *testing.T) {
	buf := EncodeSetBrightness(30)
	want := []byte{0x00, 0x43, 0x52, 0x54, 0x00, 0x00, 0x4C, 0x49, 0x47, 0x00, 0x00}
	for i, b := range want {
		if buf[i] != b {
			t.Fatalf("byte %d = 0x%02X, want 0x%02X", i, buf[i], b)
		}
	}
	if buf[11] != 0x1E {
		t.Fatalf("brightness byte = 0x%02X, want 0x1E", buf[11])
	}
	for i := 12; i < CommandReportSize; i++ {
		if buf[i] != 0 {
			t.Fatalf("byte %d = 0x%02X, want 0 (zero padding)", i, buf[i])
		}
	}
}

func TestInitiateZoneImageBuffer(t *testing.T) {
	zoneID, err := Button7.WireID()
	if err != nil {
		t.Fatal(err)
	}
	buf := EncodeInitiateZoneImage(0x20, zoneID)
	prefix := []byte{0x00, 'C', 'R', 'T', 0, 0}
	for i, b := range prefix {
		if buf[i] != b {
			t.Fatalf("byte %d = 0x%02X, want 0x%02X", i, buf[i], b)
		}
	}
	size := []byte{0x00, 0x00, 0x00, 0x20}
	for i, b := range size {
		if buf[9+i] != b {
			t.Fatalf("size byte %d = 0x%02X, want 0x%02X", i, buf[9+i], b)
		}
	}
	if buf[13] != 0x07 {
		t.Fatalf("zone byte = 0x%02X, want 0x07", buf[13])
	}
}

func TestDecodeInputReportTable(t *testing.T) {
	mk := func(p1, p2 byte) [InputReportSize]byte {
		var r [InputReportSize]byte
		copy(r[0:9], inputPrefix)
		r[9] = p1
		r[10] = p2
		return r
	}

	for i := 1; i <= 10; i++ {
		got := DecodeInputReport(mk(byte(i), 0x01))
		want := inputevent.Button(i, inputevent.Pressed)
		if got != want {
			t.Fatalf("button %d pressed: got %v want %v", i, got, want)
		}
		got = DecodeInputReport(mk(byte(i), 0x00))
		want = inputevent.Button(i, inputevent.Released)
		if got != want {
			t.Fatalf("button %d released: got %v want %v", i, got, want)
		}
	}

	for i := 1; i <= 4; i++ {
		got := DecodeInputReport(mk(byte(0x40+i-1), 0x00))
		want := inputevent.TouchscreenZone(i)
		if got != want {
			t.Fatalf("zone %d: got %v want %v", i, got, want)
		}
	}

	if got := DecodeInputReport(mk(0x39, 0x00)); got != inputevent.TouchscreenSwipe(inputevent.SwipeLeft) {
		t.Fatalf("swipe left: got %v", got)
	}
	if got := DecodeInputReport(mk(0x38, 0x00)); got != inputevent.TouchscreenSwipe(inputevent.SwipeRight) {
		t.Fatalf("swipe right: got %v", got)
	}

	cw := map[byte]int{0xA1: 1, 0x51: 2, 0x91: 3, 0x71: 4}
	for code, idx := range cw {
		if got := DecodeInputReport(mk(code, 0x00)); got != inputevent.Knob(idx, inputevent.Clockwise) {
			t.Fatalf("knob %d clockwise: got %v", idx, got)
		}
	}
	ccw := map[byte]int{0xA0: 1, 0x50: 2, 0x90: 3, 0x70: 4}
	for code, idx := range ccw {
		if got := DecodeInputReport(mk(code, 0x00)); got != inputevent.Knob(idx, inputevent.CounterClockwise) {
			t.Fatalf("knob %d counter-clockwise: got %v", idx, got)
		}
	}
	pressed := map[byte]int{0x37: 1, 0x35: 2, 0x33: 3, 0x36: 4}
	for code, idx := range pressed {
		if got := DecodeInputReport(mk(code, 0x01)); got != inputevent.Knob(idx, inputevent.KnobPressed) {
			t.Fatalf("knob %d pressed: got %v", idx, got)
		}
	}
}

func TestDecodeInputReportUnknownAndEmpty(t *testing.T) {
	var empty [InputReportSize]byte
	if got := DecodeInputReport(empty); got != inputevent.Unknown {
		t.Fatalf("all-zero report decoded to %v, want Unknown", got)
	}
	if !IsEmptyReport(empty) {
		t.Fatal("IsEmptyReport(all-zero) = false")
	}

	var garbage [InputReportSize]byte
	copy(garbage[0:9], inputPrefix)
	garbage[9] = 0xFE
	garbage[10] = 0xFE
	if got := DecodeInputReport(garbage); got != inputevent.Unknown {
		t.Fatalf("unrecognized pattern decoded to %v, want Unknown", got)
	}
}
