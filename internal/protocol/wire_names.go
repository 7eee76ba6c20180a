package protocol

import (
	"fmt"

	"github.com/choden-dev/ajazz-launchpad/internal/codec"
	"github.com/choden-dev/ajazz-launchpad/internal/inputevent"
)

// InputIDName renders the wire-level name for an InputEvent, e.g.
// "BUTTON_1_PRESSED", "KNOB_1_CLOCKWISE", matching the named constants
// clients use on the wire.
func InputIDName(e inputevent.InputEvent) (string, error) {
	switch e.Kind {
	case inputevent.KindButton:
		edge := "PRESSED"
		if e.ButtonEdge == inputevent.Released {
			edge = "RELEASED"
		}
		return fmt.Sprintf("BUTTON_%d_%s", e.ButtonIndex, edge), nil
	case inputevent.KindKnob:
		var action string
		switch e.KnobAction {
		case inputevent.Clockwise:
			action = "CLOCKWISE"
		case inputevent.CounterClockwise:
			action = "COUNTER_CLOCKWISE"
		case inputevent.KnobPressed:
			action = "PRESSED"
		}
		return fmt.Sprintf("KNOB_%d_%s", e.KnobIndex, action), nil
	case inputevent.KindTouchscreenZone:
		return fmt.Sprintf("TOUCHSCREEN_%d_PRESSED", e.ZoneIndex), nil
	case inputevent.KindTouchscreenSwipe:
		if e.Swipe == inputevent.SwipeLeft {
			return "SWIPE_LEFT", nil
		}
		return "SWIPE_RIGHT", nil
	default:
		return "", fmt.Errorf("protocol: Unknown has no wire name")
	}
}

// ParseInputID parses a wire-level InputId name back into an InputEvent.
// An unrecognized name maps to inputevent.Unknown — per the original
// protocol's INPUT_ACTION_UNSPECIFIED case, an unspecified/unknown input
// id is not itself a conversion failure (only a bad Key value is).
func ParseInputID(name string) inputevent.InputEvent {
	for idx := 1; idx <= 10; idx++ {
		if name == fmt.Sprintf("BUTTON_%d_PRESSED", idx) {
			return inputevent.Button(idx, inputevent.Pressed)
		}
		if name == fmt.Sprintf("BUTTON_%d_RELEASED", idx) {
			return inputevent.Button(idx, inputevent.Released)
		}
	}
	for idx := 1; idx <= 4; idx++ {
		if name == fmt.Sprintf("KNOB_%d_CLOCKWISE", idx) {
			return inputevent.Knob(idx, inputevent.Clockwise)
		}
		if name == fmt.Sprintf("KNOB_%d_COUNTER_CLOCKWISE", idx) {
			return inputevent.Knob(idx, inputevent.CounterClockwise)
		}
		if name == fmt.Sprintf("KNOB_%d_PRESSED", idx) {
			return inputevent.Knob(idx, inputevent.KnobPressed)
		}
		if name == fmt.Sprintf("TOUCHSCREEN_%d_PRESSED", idx) {
			return inputevent.TouchscreenZone(idx)
		}
	}
	switch name {
	case "SWIPE_LEFT":
		return inputevent.TouchscreenSwipe(inputevent.SwipeLeft)
	case "SWIPE_RIGHT":
		return inputevent.TouchscreenSwipe(inputevent.SwipeRight)
	}
	return inputevent.Unknown
}

// DisplayZoneName renders the wire-level name for a DisplayZone, e.g.
// "BUTTON_2", "TOUCHSCREEN_3".
func DisplayZoneName(z codec.DisplayZone) string {
	switch {
	case z >= codec.Button1 && z <= codec.Button10:
		return fmt.Sprintf("BUTTON_%d", int(z-codec.Button1)+1)
	case z >= codec.Touchscreen1 && z <= codec.Touchscreen4:
		return fmt.Sprintf("TOUCHSCREEN_%d", int(z-codec.Touchscreen1)+1)
	default:
		return z.String()
	}
}

var zoneNames = func() map[string]codec.DisplayZone {
	m := make(map[string]codec.DisplayZone)
	zones := []codec.DisplayZone{
		codec.Button1, codec.Button2, codec.Button3, codec.Button4, codec.Button5,
		codec.Button6, codec.Button7, codec.Button8, codec.Button9, codec.Button10,
		codec.Touchscreen1, codec.Touchscreen2, codec.Touchscreen3, codec.Touchscreen4,
	}
	for _, z := range zones {
		m[DisplayZoneName(z)] = z
	}
	return m
}()

// ParseDisplayZoneName parses a wire-level DisplayZone name.
func ParseDisplayZoneName(name string) (codec.DisplayZone, error) {
	z, ok := zoneNames[name]
	if !ok {
		return 0, fmt.Errorf("protocol: unknown display zone name %q", name)
	}
	return z, nil
}
