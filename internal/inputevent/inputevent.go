// Package inputevent defines the typed events decoded from the launchpad's
// HID input reports.
package inputevent

import "fmt"

// Edge is a button transition direction.
type Edge int

const (
	Pressed Edge = iota
	Released
)

func (e Edge) String() string {
	if e == Pressed {
		return "Pressed"
	}
	return "Released"
}

// KnobAction is a rotary-encoder action.
type KnobAction int

const (
	Clockwise KnobAction = iota
	CounterClockwise
	KnobPressed
)

func (a KnobAction) String() string {
	switch a {
	case Clockwise:
		return "Clockwise"
	case CounterClockwise:
		return "CounterClockwise"
	case KnobPressed:
		return "Pressed"
	default:
		return "Unknown"
	}
}

// SwipeDirection is a touchscreen swipe gesture direction.
type SwipeDirection int

const (
	SwipeLeft SwipeDirection = iota
	SwipeRight
)

func (d SwipeDirection) String() string {
	if d == SwipeLeft {
		return "Left"
	}
	return "Right"
}

// Kind discriminates the InputEvent variant.
type Kind int

const (
	KindButton Kind = iota
	KindKnob
	KindTouchscreenZone
	KindTouchscreenSwipe
	KindUnknown
)

// InputEvent is the tagged union decoded from one 13-byte input report.
// Exactly one field set is meaningful, selected by Kind.
type InputEvent struct {
	Kind Kind

	// Button: Index is 1..10.
	ButtonIndex int
	ButtonEdge  Edge

	// Knob: Index is 1..4.
	KnobIndex  int
	KnobAction KnobAction

	// TouchscreenZone: Index is 1..4.
	ZoneIndex int

	// TouchscreenSwipe.
	Swipe SwipeDirection
}

// Unknown is the event returned for any unrecognized 13-byte pattern.
var Unknown = InputEvent{Kind: KindUnknown}

func Button(index int, edge Edge) InputEvent {
	return InputEvent{Kind: KindButton, ButtonIndex: index, ButtonEdge: edge}
}

func Knob(index int, action KnobAction) InputEvent {
	return InputEvent{Kind: KindKnob, KnobIndex: index, KnobAction: action}
}

func TouchscreenZone(index int) InputEvent {
	return InputEvent{Kind: KindTouchscreenZone, ZoneIndex: index}
}

func TouchscreenSwipe(dir SwipeDirection) InputEvent {
	return InputEvent{Kind: KindTouchscreenSwipe, Swipe: dir}
}

// Identifier band bases: each kind (and, for buttons and knobs, each
// edge/action) gets a disjoint band so the packed id stays a single byte.
// Buttons and knobs run 1..10/1..4 above their base, zones 1..4; pressed
// buttons sit at 0, released buttons at 100, and the remaining bases are
// spaced 10 apart from 120.
const (
	idBandButtonPressed  = 0
	idBandButtonReleased = 100
	idBandKnobClockwise  = 120
	idBandKnobCounter    = 130
	idBandKnobPressed    = 140
	idBandZone           = 150
	idSwipeLeft          = 160
	idSwipeRight         = 161
)

// ID returns a stable identifier suitable for use as a binding-table or
// config-store key. It packs kind, edge/action, and index into a single
// byte (0..255), matching the data model's button_id domain. Unknown has
// no valid id; callers must not bind it.
func (e InputEvent) ID() (uint16, error) {
	switch e.Kind {
	case KindButton:
		base := uint16(idBandButtonPressed)
		if e.ButtonEdge == Released {
			base = idBandButtonReleased
		}
		return base + uint16(e.ButtonIndex), nil
	case KindKnob:
		var base uint16
		switch e.KnobAction {
		case Clockwise:
			base = idBandKnobClockwise
		case CounterClockwise:
			base = idBandKnobCounter
		case KnobPressed:
			base = idBandKnobPressed
		}
		return base + uint16(e.KnobIndex), nil
	case KindTouchscreenZone:
		return idBandZone + uint16(e.ZoneIndex), nil
	case KindTouchscreenSwipe:
		if e.Swipe == SwipeLeft {
			return idSwipeLeft, nil
		}
		return idSwipeRight, nil
	default:
		return 0, fmt.Errorf("inputevent: Unknown has no binding identifier")
	}
}

func (e InputEvent) String() string {
	switch e.Kind {
	case KindButton:
		return fmt.Sprintf("Button{%d,%s}", e.ButtonIndex, e.ButtonEdge)
	case KindKnob:
		return fmt.Sprintf("Knob{%d,%s}", e.KnobIndex, e.KnobAction)
	case KindTouchscreenZone:
		return fmt.Sprintf("TouchscreenZone{%d}", e.ZoneIndex)
	case KindTouchscreenSwipe:
		return fmt.Sprintf("TouchscreenSwipe{%s}", e.Swipe)
	default:
		return "Unknown"
	}
}
