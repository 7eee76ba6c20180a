// Package executor provides the KeyExecutor capability: injecting a
// keystroke sequence into the host OS.
package executor

import (
	"fmt"
	"sync"

	"github.com/go-vgo/robotgo"

	"github.com/choden-dev/ajazz-launchpad/internal/keys"
)

// robotgoKeyNames maps the named keystroke enumeration to robotgo's key
// identifiers (robotgo.KeyTap takes the same lowercase names documented by
// its README, e.g. "a", "f1", "up", "space").
var robotgoKeyNames = map[keys.Key]string{
	keys.Add:            "add",
	keys.Alt:             "alt",
	keys.Backspace:       "backspace",
	keys.CapsLock:        "capslock",
	keys.Control:         "ctrl",
	keys.Decimal:         "decimal",
	keys.Delete:          "delete",
	keys.Divide:          "divide",
	keys.DownArrow:       "down",
	keys.End:             "end",
	keys.Escape:          "escape",
	keys.F1:              "f1",
	keys.F2:              "f2",
	keys.F3:              "f3",
	keys.F4:              "f4",
	keys.F5:              "f5",
	keys.F6:              "f6",
	keys.F7:              "f7",
	keys.F8:              "f8",
	keys.F9:              "f9",
	keys.F10:             "f10",
	keys.F11:             "f11",
	keys.F12:             "f12",
	keys.F13:             "f13",
	keys.F14:             "f14",
	keys.F15:             "f15",
	keys.F16:             "f16",
	keys.F17:             "f17",
	keys.F18:             "f18",
	keys.F19:             "f19",
	keys.F20:             "f20",
	keys.Help:            "help",
	keys.Home:            "home",
	keys.LControl:        "lctrl",
	keys.LeftArrow:       "left",
	keys.LShift:          "lshift",
	keys.MediaNextTrack:  "audio_next",
	keys.MediaPlayPause:  "audio_play",
	keys.MediaPrevTrack:  "audio_prev",
	keys.Meta:            "cmd",
	keys.Multiply:        "multiply",
	keys.Numpad0:         "num0",
	keys.Numpad1:         "num1",
	keys.Numpad2:         "num2",
	keys.Numpad3:         "num3",
	keys.Numpad4:         "num4",
	keys.Numpad5:         "num5",
	keys.Numpad6:         "num6",
	keys.Numpad7:         "num7",
	keys.Numpad8:         "num8",
	keys.Numpad9:         "num9",
	keys.Option:          "alt",
	keys.PageDown:        "pagedown",
	keys.PageUp:          "pageup",
	keys.RControl:        "rctrl",
	keys.Return:          "enter",
	keys.RightArrow:      "right",
	keys.RShift:          "rshift",
	keys.Shift:           "shift",
	keys.Space:           "space",
	keys.Subtract:        "subtract",
	keys.Tab:             "tab",
	keys.UpArrow:         "up",
	keys.VolumeDown:      "audio_vol_down",
	keys.VolumeMute:      "audio_mute",
	keys.VolumeUp:        "audio_vol_up",
}

// RobotgoExecutor is the production KeyExecutor backed by
// github.com/go-vgo/robotgo. It holds an exclusive lock across one
// sequence injection so the sequence is delivered as an atomic unit.
type RobotgoExecutor struct {
	mu sync.Mutex
}

// NewRobotgo returns a ready-to-use production executor.
func NewRobotgo() *RobotgoExecutor {
	return &RobotgoExecutor{}
}

// Execute taps every keystroke in seq in order. An empty sequence is a
// no-op.
func (e *RobotgoExecutor) Execute(seq keys.Sequence) error {
	if len(seq) == 0 {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, k := range seq {
		switch k.Kind {
		case keys.KindNamed:
			name, ok := robotgoKeyNames[k.Named]
			if !ok {
				return fmt.Errorf("executor: %s", k.String())
			}
			robotgo.KeyTap(name)
		case keys.KindUnicode:
			robotgo.TypeStr(string(k.Unicode))
		case keys.KindOther:
			return fmt.Errorf("executor: %s", k.String())
		}
	}
	return nil
}
