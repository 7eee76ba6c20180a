package keys

import (
	"fmt"
	"strings"
)

// EncodeSequence renders a Sequence as the bracketed comma-separated text
// format used by the config store and the command protocol, e.g.
// "[Add,Backspace]".
func EncodeSequence(seq Sequence) string {
	parts := make([]string, len(seq))
	for i, k := range seq {
		parts[i] = k.String()
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// DecodeSequence parses the text produced by EncodeSequence back into a
// Sequence, preserving order.
func DecodeSequence(s string) (Sequence, error) {
	if len(s) < 2 || s[0] != '[' || s[len(s)-1] != ']' {
		return nil, fmt.Errorf("keys: malformed sequence %q", s)
	}
	inner := s[1 : len(s)-1]
	if inner == "" {
		return Sequence{}, nil
	}

	fields := splitTopLevel(inner)
	seq := make(Sequence, 0, len(fields))
	for _, f := range fields {
		k, err := ParseKey(f)
		if err != nil {
			return nil, err
		}
		seq = append(seq, k)
	}
	return seq, nil
}

// splitTopLevel splits on commas that are not inside a Unicode(...)/Other(...)
// wrapper, since a Unicode rune could itself be a comma. Wrappers never
// nest, so depth is only ever 0 or 1; a Unicode rune that is itself a
// parenthesis therefore cannot unbalance it.
func splitTopLevel(s string) []string {
	var fields []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '(':
			depth = 1
		case ')':
			depth = 0
		case ',':
			if depth == 0 {
				fields = append(fields, s[start:i])
				start = i + 1
			}
		}
	}
	fields = append(fields, s[start:])
	return fields
}
