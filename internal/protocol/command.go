// Package protocol implements the discriminated-union command message
// carried over the IPC transport: a schema-driven encode/decode plus
// validation.
package protocol

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/choden-dev/ajazz-launchpad/internal/codec"
	"github.com/choden-dev/ajazz-launchpad/internal/inputevent"
	"github.com/choden-dev/ajazz-launchpad/internal/keys"
)

// CommandKind discriminates the Command variant.
type CommandKind byte

const (
	KeyConfig CommandKind = iota
	SetDisplayZoneImage
	ClearDisplayZoneImage
	ClearAllDisplayZoneImages
	SetBootLogo
	SetBrightness

	invalidKind CommandKind = 0xFF
)

// Exact error strings clients match against.
var (
	ErrNoCommandFound       = errors.New("no command found")
	ErrFailedToConvert      = errors.New("Failed to convert command")
	ErrBrightnessOutOfRange = errors.New("Brightness value was not in the range 0 to 100!")
)

// Command is the decoded TopLevel message: exactly one variant is
// meaningful, selected by Kind.
type Command struct {
	Kind CommandKind

	// KeyConfig
	InputEvent inputevent.InputEvent
	Actions    keys.Sequence

	// SetDisplayZoneImage / ClearDisplayZoneImage
	Zone codec.DisplayZone
	Path string

	// ClearAllDisplayZoneImages
	Unpersist bool

	// SetBootLogo reuses Path.

	// SetBrightness
	Brightness int
}

func writeString(buf *bytes.Buffer, s string) {
	var length [2]byte
	binary.BigEndian.PutUint16(length[:], uint16(len(s)))
	buf.Write(length[:])
	buf.WriteString(s)
}

func readString(r *bytes.Reader) (string, error) {
	var length [2]byte
	if _, err := io.ReadFull(r, length[:]); err != nil {
		return "", err
	}
	n := binary.BigEndian.Uint16(length[:])
	data := make([]byte, n)
	if _, err := io.ReadFull(r, data); err != nil {
		return "", err
	}
	return string(data), nil
}

// Encode serializes cmd for transmission over the IPC transport.
func Encode(cmd Command) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte(byte(cmd.Kind))

	switch cmd.Kind {
	case KeyConfig:
		name, err := InputIDName(cmd.InputEvent)
		if err != nil {
			name = "" // Unknown: still encodable, decodes back to Unknown
		}
		writeString(&buf, name)
		writeString(&buf, keys.EncodeSequence(cmd.Actions))
	case SetDisplayZoneImage:
		writeString(&buf, DisplayZoneName(cmd.Zone))
		writeString(&buf, cmd.Path)
	case ClearDisplayZoneImage:
		writeString(&buf, DisplayZoneName(cmd.Zone))
	case ClearAllDisplayZoneImages:
		if cmd.Unpersist {
			buf.WriteByte(1)
		} else {
			buf.WriteByte(0)
		}
	case SetBootLogo:
		writeString(&buf, cmd.Path)
	case SetBrightness:
		var b [2]byte
		binary.BigEndian.PutUint16(b[:], uint16(cmd.Brightness))
		buf.Write(b[:])
	default:
		return nil, fmt.Errorf("protocol: encode: %w", ErrNoCommandFound)
	}
	return buf.Bytes(), nil
}

// Decode parses a wire message into a Command and validates it.
// An unrecognized variant tag yields ErrNoCommandFound. A structurally
// malformed payload yields ErrFailedToConvert. An out-of-range brightness
// yields ErrBrightnessOutOfRange.
func Decode(data []byte) (Command, error) {
	if len(data) == 0 {
		return Command{}, ErrNoCommandFound
	}
	r := bytes.NewReader(data)
	tagByte, _ := r.ReadByte()
	kind := CommandKind(tagByte)

	switch kind {
	case KeyConfig:
		name, err := readString(r)
		if err != nil {
			return Command{}, fmt.Errorf("%w: %v", ErrFailedToConvert, err)
		}
		actionsText, err := readString(r)
		if err != nil {
			return Command{}, fmt.Errorf("%w: %v", ErrFailedToConvert, err)
		}
		actions, err := keys.DecodeSequence(actionsText)
		if err != nil {
			return Command{}, fmt.Errorf("%w: %v", ErrFailedToConvert, err)
		}
		return Command{Kind: kind, InputEvent: ParseInputID(name), Actions: actions}, nil

	case SetDisplayZoneImage:
		zoneName, err := readString(r)
		if err != nil {
			return Command{}, fmt.Errorf("%w: %v", ErrFailedToConvert, err)
		}
		path, err := readString(r)
		if err != nil {
			return Command{}, fmt.Errorf("%w: %v", ErrFailedToConvert, err)
		}
		zone, err := ParseDisplayZoneName(zoneName)
		if err != nil {
			return Command{}, fmt.Errorf("%w: %v", ErrFailedToConvert, err)
		}
		return Command{Kind: kind, Zone: zone, Path: path}, nil

	case ClearDisplayZoneImage:
		zoneName, err := readString(r)
		if err != nil {
			return Command{}, fmt.Errorf("%w: %v", ErrFailedToConvert, err)
		}
		zone, err := ParseDisplayZoneName(zoneName)
		if err != nil {
			return Command{}, fmt.Errorf("%w: %v", ErrFailedToConvert, err)
		}
		return Command{Kind: kind, Zone: zone}, nil

	case ClearAllDisplayZoneImages:
		flag, err := r.ReadByte()
		if err != nil {
			return Command{}, fmt.Errorf("%w: %v", ErrFailedToConvert, err)
		}
		return Command{Kind: kind, Unpersist: flag != 0}, nil

	case SetBootLogo:
		path, err := readString(r)
		if err != nil {
			return Command{}, fmt.Errorf("%w: %v", ErrFailedToConvert, err)
		}
		return Command{Kind: kind, Path: path}, nil

	case SetBrightness:
		var b [2]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return Command{}, fmt.Errorf("%w: %v", ErrFailedToConvert, err)
		}
		brightness := int(binary.BigEndian.Uint16(b[:]))
		if brightness < 0 || brightness > 100 {
			return Command{}, ErrBrightnessOutOfRange
		}
		return Command{Kind: kind, Brightness: brightness}, nil

	default:
		return Command{}, ErrNoCommandFound
	}
}
