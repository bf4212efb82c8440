package ledger

import (
	"errors"
	"fmt"
	"strings"
)

const maxCoinhouseTagLength = 32

var (
	// ErrEmptyCoinhouseTag is returned when a coinhouse tag is empty or whitespace only.
	ErrEmptyCoinhouseTag = errors.New("coinhouse tag must not be empty")

	// ErrCoinhouseTagTooLong is returned when a coinhouse tag exceeds the length limit.
	ErrCoinhouseTagTooLong = fmt.Errorf("coinhouse tag must not exceed %d characters", maxCoinhouseTagLength)
)

// CoinhouseTag is the validated, case-insensitive identifier of a coinhouse.
// The tag is normalized to lower case on construction, so equality with ==
// compares canonical forms.
type CoinhouseTag struct {
	canonical string
}

// NewCoinhouseTag validates and normalizes a raw tag.
func NewCoinhouseTag(raw string) (CoinhouseTag, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return CoinhouseTag{}, ErrEmptyCoinhouseTag
	}

	if len(trimmed) > maxCoinhouseTagLength {
		return CoinhouseTag{}, ErrCoinhouseTagTooLong
	}

	return CoinhouseTag{canonical: strings.ToLower(trimmed)}, nil
}

// String returns the canonical (lower-cased) tag.
func (t CoinhouseTag) String() string {
	return t.canonical
}

// IsZero reports whether the tag is the invalid zero value.
func (t CoinhouseTag) IsZero() bool {
	return t.canonical == ""
}

// MarshalText serializes the tag in its canonical form.
func (t CoinhouseTag) MarshalText() ([]byte, error) {
	return []byte(t.canonical), nil
}

// UnmarshalText parses and normalizes a raw tag.
func (t *CoinhouseTag) UnmarshalText(text []byte) error {
	parsed, err := NewCoinhouseTag(string(text))
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}
