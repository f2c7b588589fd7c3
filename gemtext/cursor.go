package gemtext

// Cursor primitives all take a line buffer and a position within it. None of
// them panic when running off the end of buf; they report len(buf) instead,
// leaving the caller to decide whether that means truncation.

// advanceToLineEnd scans for a "\n" or "\r\n" terminator, returning the offset
// where line content ends, and moving pos past the terminator.
// If no terminator is found, it returns len(buf) and pos becomes len(buf).
func advanceToLineEnd(buf []byte, pos *int) (end int) {
	for i := *pos; i < len(buf); i++ {
		switch buf[i] {
		case '\n':
			*pos = i + 1
			return i
		case '\r':
			if j := i + 1; j < len(buf) && buf[j] == '\n' {
				*pos = j + 1
				return i
			}
		}
	}
	*pos = len(buf)
	return len(buf)
}

// advanceToWhitespace moves pos up to the next tab, space, CR, or LF byte,
// returning its offset without consuming it.
func advanceToWhitespace(buf []byte, pos *int) (end int) {
	i := *pos
	for ; i < len(buf); i++ {
		if isWhitespace(buf[i]) {
			break
		}
	}
	*pos = i
	return i
}

// skipInlineWhitespace consumes a run of tab and space bytes; never CR or LF.
func skipInlineWhitespace(buf []byte, pos *int) {
	i := *pos
	for i < len(buf) && isInlineSpace(buf[i]) {
		i++
	}
	*pos = i
}

// countMarkerRun consumes a run of marker bytes, returning how many.
func countMarkerRun(buf []byte, pos *int, marker byte) (n int) {
	i := *pos
	for i < len(buf) && buf[i] == marker {
		i++
	}
	n = i - *pos
	*pos = i
	return n
}

// LineContent returns buf up to its first "\n" or "\r\n" line terminator, or
// all of buf if it has none.
func LineContent(buf []byte) []byte {
	pos := 0
	return buf[:advanceToLineEnd(buf, &pos)]
}

func sliceToLineEnd(buf []byte, pos *int) Slice {
	start := *pos
	end := advanceToLineEnd(buf, pos)
	return Slice{start, end}
}

func sliceToWhitespace(buf []byte, pos *int) Slice {
	start := *pos
	end := advanceToWhitespace(buf, pos)
	return Slice{start, end}
}

// atLineEnd returns true if pos is at a line terminator or past the end of buf.
func atLineEnd(buf []byte, pos int) bool {
	if pos >= len(buf) {
		return true
	}
	switch buf[pos] {
	case '\n':
		return true
	case '\r':
		return pos+1 < len(buf) && buf[pos+1] == '\n'
	}
	return false
}

func isInlineSpace(c byte) bool { return c == ' ' || c == '\t' }

func isWhitespace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n':
		return true
	}
	return false
}

func hasPrefix(buf []byte, prefix string) bool {
	if len(buf) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		if buf[i] != prefix[i] {
			return false
		}
	}
	return true
}
