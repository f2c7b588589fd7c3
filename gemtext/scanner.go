package gemtext

// Scanner classifies gemtext lines one at a time. Its only state is whether a
// preformatted block is currently open, which is toggled by fence lines.
//
// The zero value is ready to scan the start of a document.
//
// It is not safe to use Scanner from parallel goroutines.
type Scanner struct {
	pre bool
}

// Line markers recognized at the start of a line.
const (
	fenceMarker   = "```"
	linkMarker    = "=>"
	headingMarker = '#'
	listMarker    = "* "
	quoteMarker   = '>'
)

// Preformatted returns true if a preformatted block is currently open.
func (sc *Scanner) Preformatted() bool { return sc.pre }

// Reset clears the receiver state, preparing it to scan a new document.
func (sc *Scanner) Reset() { sc.pre = false }

// ScanLine classifies a single raw line, which should include its terminator,
// unless it is the final unterminated line of the stream.
//
// The returned Line retains raw; the caller must not modify it afterwards.
//
// Any non-nil error is a *LineError, and applies to this line only; the
// receiver state is still advanced, so scanning may continue with the next
// line.
func (sc *Scanner) ScanLine(raw []byte) (line Line, err error) {
	line.raw = raw
	defer func() {
		if err != nil {
			err = &LineError{Line: raw, Err: err}
		}
	}()

	var pos int

	// fences take priority even inside a preformatted block, which they close
	if hasPrefix(raw, fenceMarker) {
		sc.pre = !sc.pre
		line.Type = PreformattingToggle
		pos = len(fenceMarker)
		skipInlineWhitespace(raw, &pos)
		if text := sliceToLineEnd(raw, &pos); text.Len() > 0 {
			err = line.setText(text)
		}
		return line, err
	}

	if sc.pre {
		line.Type = PreformattedText
		return line, line.setText(sliceToLineEnd(raw, &pos))
	}

	switch {
	case hasPrefix(raw, linkMarker):
		line.Type = Link
		pos = len(linkMarker)
		return line, scanLink(&line, pos)

	case len(raw) > 0 && raw[0] == headingMarker:
		line.Type = Heading
		line.Level = countMarkerRun(raw, &pos, headingMarker)
		skipInlineWhitespace(raw, &pos)
		return line, line.setText(sliceToLineEnd(raw, &pos))

	case hasPrefix(raw, listMarker):
		line.Type = UnorderedListItem
		pos = len(listMarker)
		return line, line.setText(sliceToLineEnd(raw, &pos))

	case len(raw) > 0 && raw[0] == quoteMarker:
		// no whitespace skip: any space after the marker is quoted content
		line.Type = Quote
		pos = 1
		return line, line.setText(sliceToLineEnd(raw, &pos))

	default:
		line.Type = Text
		return line, line.setText(sliceToLineEnd(raw, &pos))
	}
}

// scanLink parses the target and optional name of a link line, starting
// after its marker.
//
// An empty target, from a marker followed only by whitespace, is accepted.
func scanLink(line *Line, pos int) error {
	raw := line.raw
	skipInlineWhitespace(raw, &pos)
	if err := line.setTarget(sliceToWhitespace(raw, &pos)); err != nil {
		return err
	}
	if atLineEnd(raw, pos) {
		return nil
	}
	// a name follows even if it is only trailing whitespace, leaving it empty
	skipInlineWhitespace(raw, &pos)
	return line.setText(sliceToLineEnd(raw, &pos))
}
