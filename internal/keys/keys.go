// Package keys models synthetic keystrokes and the sequences bound to
// input events, along with the text encoding used to persist and transmit
// them.
package keys

import "fmt"

// Key names the fixed enumeration of named keystrokes, mirroring the
// original protocol's key set.
type Key int

const (
	Add Key = iota
	Alt
	Backspace
	CapsLock
	Control
	Decimal
	Delete
	Divide
	DownArrow
	End
	Escape
	F1
	F2
	F3
	F4
	F5
	F6
	F7
	F8
	F9
	F10
	F11
	F12
	F13
	F14
	F15
	F16
	F17
	F18
	F19
	F20
	Help
	Home
	LControl
	LeftArrow
	LShift
	MediaNextTrack
	MediaPlayPause
	MediaPrevTrack
	Meta
	Multiply
	Numpad0
	Numpad1
	Numpad2
	Numpad3
	Numpad4
	Numpad5
	Numpad6
	Numpad7
	Numpad8
	Numpad9
	Option
	PageDown
	PageUp
	RControl
	Return
	RightArrow
	RShift
	Shift
	Space
	Subtract
	Tab
	UpArrow
	VolumeDown
	VolumeMute
	VolumeUp
)

var keyNames = map[Key]string{
	Add: "Add", Alt: "Alt", Backspace: "Backspace", CapsLock: "CapsLock",
	Control: "Control", Decimal: "Decimal", Delete: "Delete", Divide: "Divide",
	DownArrow: "DownArrow", End: "End", Escape: "Escape",
	F1: "F1", F2: "F2", F3: "F3", F4: "F4", F5: "F5", F6: "F6", F7: "F7",
	F8: "F8", F9: "F9", F10: "F10", F11: "F11", F12: "F12", F13: "F13",
	F14: "F14", F15: "F15", F16: "F16", F17: "F17", F18: "F18", F19: "F19", F20: "F20",
	Help: "Help", Home: "Home", LControl: "LControl", LeftArrow: "LeftArrow",
	LShift: "LShift", MediaNextTrack: "MediaNextTrack", MediaPlayPause: "MediaPlayPause",
	MediaPrevTrack: "MediaPrevTrack", Meta: "Meta", Multiply: "Multiply",
	Numpad0: "Numpad0", Numpad1: "Numpad1", Numpad2: "Numpad2", Numpad3: "Numpad3",
	Numpad4: "Numpad4", Numpad5: "Numpad5", Numpad6: "Numpad6", Numpad7: "Numpad7",
	Numpad8: "Numpad8", Numpad9: "Numpad9", Option: "Option", PageDown: "PageDown",
	PageUp: "PageUp", RControl: "RControl", Return: "Return", RightArrow: "RightArrow",
	RShift: "RShift", Shift: "Shift", Space: "Space", Subtract: "Subtract",
	Tab: "Tab", UpArrow: "UpArrow", VolumeDown: "VolumeDown",
	VolumeMute: "VolumeMute", VolumeUp: "VolumeUp",
}

var namesToKey = func() map[string]Key {
	m := make(map[string]Key, len(keyNames))
	for k, n := range keyNames {
		m[n] = k
	}
	return m
}()

// Keystroke is a tagged variant: exactly one of Named, Unicode, or Other is
// meaningful, selected by Kind.
type Keystroke struct {
	Kind KeystrokeKind

	Named   Key
	Unicode rune
	Other   uint32
}

type KeystrokeKind int

const (
	KindNamed KeystrokeKind = iota
	KindUnicode
	KindOther
)

func NamedKey(k Key) Keystroke     { return Keystroke{Kind: KindNamed, Named: k} }
func UnicodeKey(r rune) Keystroke  { return Keystroke{Kind: KindUnicode, Unicode: r} }
func OtherKey(code uint32) Keystroke { return Keystroke{Kind: KindOther, Other: code} }

func (k Keystroke) String() string {
	switch k.Kind {
	case KindNamed:
		name, ok := keyNames[k.Named]
		if !ok {
			return fmt.Sprintf("Unsupported key format %d", int(k.Named))
		}
		return name
	case KindUnicode:
		return fmt.Sprintf("Unicode(%c)", k.Unicode)
	case KindOther:
		return fmt.Sprintf("Other(%d)", k.Other)
	default:
		return fmt.Sprintf("Unsupported key format %d", int(k.Kind))
	}
}

// ParseKey parses one textual keystroke name back into a Keystroke.
func ParseKey(s string) (Keystroke, error) {
	if k, ok := namesToKey[s]; ok {
		return NamedKey(k), nil
	}
	if inner, ok := unwrap(s, "Unicode("); ok {
		rs := []rune(inner)
		if len(rs) != 1 {
			return Keystroke{}, fmt.Errorf("keys: invalid Unicode keystroke %q", s)
		}
		return UnicodeKey(rs[0]), nil
	}
	if inner, ok := unwrap(s, "Other("); ok {
		var code uint32
		if _, err := fmt.Sscanf(inner, "%d", &code); err != nil {
			return Keystroke{}, fmt.Errorf("keys: invalid Other keystroke %q: %w", s, err)
		}
		return OtherKey(code), nil
	}
	return Keystroke{}, fmt.Errorf("keys: unrecognized keystroke %q", s)
}

func unwrap(s, prefix string) (string, bool) {
	if len(s) < len(prefix)+1 || s[:len(prefix)] != prefix || s[len(s)-1] != ')' {
		return "", false
	}
	return s[len(prefix) : len(s)-1], true
}

// Sequence is an ordered list of keystrokes. Ordering is preserved through
// persistence and playback.
type Sequence []Keystroke
