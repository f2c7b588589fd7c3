package gemtext

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrInvalidUTF8 is returned when a line's text or link target is not valid
// UTF-8.
var ErrInvalidUTF8 = errors.New("invalid utf-8")

// LineType is to determine the semantic meaning of a Line.
type LineType int

// LineType constants for every gemtext line kind.
const (
	noLine LineType = iota // 0 value should never be seen by user
	Text
	Link
	Heading
	UnorderedListItem
	Quote
	PreformattingToggle
	PreformattedText
)

// Slice is a pair of byte offsets within a single line's raw bytes.
// It is never valid against any other line.
type Slice struct {
	Start, End int
}

// Len returns how many bytes the slice spans.
func (s Slice) Len() int { return s.End - s.Start }

func (s Slice) within(buf []byte) bool {
	return 0 <= s.Start && s.Start <= s.End && s.End <= len(buf)
}

// Line represents a single classified gemtext line.
//
// A Line owns its raw bytes, including any line terminator; text and link
// target are offsets into them.
type Line struct {
	Type LineType

	// Level is the heading level, the count of leading '#' bytes; not clamped.
	Level int

	raw       []byte
	text      Slice
	target    Slice
	hasText   bool
	hasTarget bool
}

// LineError is returned when a line could not be classified.
type LineError struct {
	Line []byte // raw line bytes
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("gemtext: line %q: %v", e.Line, e.Err)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *LineError) Unwrap() error { return e.Err }

// Raw returns the line's bytes as read, including any terminator.
// The returned bytes must not be modified.
func (line Line) Raw() []byte { return line.raw }

// HasText returns true if the line carries display text.
// Link lines only have text when a name followed the target.
func (line Line) HasText() bool { return line.hasText }

// Text returns the line's display text, or the empty string if it has none:
// - Text, Quote, UnorderedListItem, Heading, PreformattedText: line content
// - Link: the link name
// - PreformattingToggle: any alt text following the fence
func (line Line) Text() string {
	if !line.hasText {
		return ""
	}
	return string(line.raw[line.text.Start:line.text.End])
}

// TextBytes is like Text, but returns a window into the raw line bytes.
func (line Line) TextBytes() []byte {
	if !line.hasText {
		return nil
	}
	return line.raw[line.text.Start:line.text.End]
}

// Target returns a Link line's target URL, which may be relative; it is empty
// for all other line types.
func (line Line) Target() string {
	if !line.hasTarget {
		return ""
	}
	return string(line.raw[line.target.Start:line.target.End])
}

// TextSlice returns the offsets of the line's text within Raw().
func (line Line) TextSlice() (Slice, bool) { return line.text, line.hasText }

// TargetSlice returns the offsets of the line's link target within Raw().
func (line Line) TargetSlice() (Slice, bool) { return line.target, line.hasTarget }

// setText validates and records the text slice.
func (line *Line) setText(s Slice) error {
	if !s.within(line.raw) {
		return fmt.Errorf("text slice %v out of range", s)
	}
	if !utf8.Valid(line.raw[s.Start:s.End]) {
		return ErrInvalidUTF8
	}
	line.text, line.hasText = s, true
	return nil
}

func (line *Line) setTarget(s Slice) error {
	if !s.within(line.raw) {
		return fmt.Errorf("target slice %v out of range", s)
	}
	if !utf8.Valid(line.raw[s.Start:s.End]) {
		return ErrInvalidUTF8
	}
	line.target, line.hasTarget = s, true
	return nil
}
