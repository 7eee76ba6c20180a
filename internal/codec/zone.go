// Package codec packs and unpacks the launchpad's fixed-size HID report
// buffers and decodes its 13-byte input reports.
package codec

import "fmt"

// DisplayZone identifies one of the fourteen addressable screen regions.
type DisplayZone int

const (
	Button1 DisplayZone = iota + 1
	Button2
	Button3
	Button4
	Button5
	Button6
	Button7
	Button8
	Button9
	Button10
	Touchscreen1
	Touchscreen2
	Touchscreen3
	Touchscreen4
)

var zoneToWire = map[DisplayZone]byte{
	Button1:  11,
	Button2:  12,
	Button3:  13,
	Button4:  14,
	Button5:  15,
	Button6:  6,
	Button7:  7,
	Button8:  8,
	Button9:  9,
	Button10: 10,

	Touchscreen1: 1,
	Touchscreen2: 2,
	Touchscreen3: 3,
	Touchscreen4: 4,
}

var wireToZone = func() map[byte]DisplayZone {
	m := make(map[byte]DisplayZone, len(zoneToWire))
	for z, id := range zoneToWire {
		m[id] = z
	}
	return m
}()

// WireID returns the one-byte wire identifier for z.
func (z DisplayZone) WireID() (byte, error) {
	id, ok := zoneToWire[z]
	if !ok {
		return 0, fmt.Errorf("codec: unknown display zone %d", int(z))
	}
	return id, nil
}

// ZoneFromWireID recovers the DisplayZone for a wire byte, the inverse of
// WireID. The mapping is bijective over the fourteen defined zones.
func ZoneFromWireID(id byte) (DisplayZone, error) {
	z, ok := wireToZone[id]
	if !ok {
		return 0, fmt.Errorf("codec: unknown wire zone id %d", id)
	}
	return z, nil
}

func (z DisplayZone) String() string {
	switch z {
	case Button1, Button2, Button3, Button4, Button5, Button6, Button7, Button8, Button9, Button10:
		return fmt.Sprintf("Button%d", int(z))
	case Touchscreen1, Touchscreen2, Touchscreen3, Touchscreen4:
		return fmt.Sprintf("Touchscreen%d", int(z)-int(Touchscreen1)+1)
	default:
		return fmt.Sprintf("DisplayZone(%d)", int(z))
	}
}
