package breakdown

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrTextTooLong is returned under the Reject policy.
var ErrTextTooLong = errors.New("breakdown text too long")

const (
	MaxLabelBytes = 255
	MaxNoteBytes  = 127
)

// TextPolicy decides what happens to labels and notes longer than
// MaxLabelBytes and MaxNoteBytes.
type TextPolicy string

const (
	// Truncate cuts overlong text on a UTF-8 boundary.
	Truncate TextPolicy = "truncate"
	// Reject fails the row with ErrTextTooLong.
	Reject TextPolicy = "reject"
	// Unbounded keeps text as given.
	Unbounded TextPolicy = "unbounded"
)

// ParseTextPolicy maps a configuration value to a policy. The empty string
// selects Truncate.
func ParseTextPolicy(s string) (TextPolicy, error) {
	switch p := TextPolicy(s); p {
	case "":
		return Truncate, nil
	case Truncate, Reject, Unbounded:
		return p, nil
	default:
		return "", fmt.Errorf("unknown text policy %q", s)
	}
}

func (p TextPolicy) apply(field, s string, max int) (string, error) {
	if len(s) <= max {
		return s, nil
	}
	switch p {
	case Unbounded:
		return s, nil
	case Reject:
		return "", fmt.Errorf("%w: %s is %d bytes, limit %d", ErrTextTooLong, field, len(s), max)
	default:
		return truncate(s, max), nil
	}
}

func truncate(s string, max int) string {
	n := max
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
