package gemtext

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// MarkString returns the gemtext line, without terminator, that would scan
// back into the receiver's type and content.
func (line Line) MarkString() string {
	var sb strings.Builder
	line.justWriteMark(&sb)
	return sb.String()
}

// AppendMark appends the receiver's gemtext line, without terminator, to into.
func (line Line) AppendMark(into []byte) []byte {
	var aw appendWriter
	aw.buf = into
	line.justWriteMark(&aw)
	return aw.buf
}

// WriteMarkInto writes the receiver's gemtext line, without terminator.
func (line Line) WriteMarkInto(into io.Writer) (n int64, err error) {
	if sw, ok := into.(io.StringWriter); ok {
		return line.writeMark(sw)
	}
	var buf bytes.Buffer
	buf.Grow(64)
	if n, err = line.writeMark(&buf); err != nil {
		return 0, err
	}
	return buf.WriteTo(into)
}

type resetStringWriter interface {
	io.StringWriter
	Reset()
}

func (line Line) justWriteMark(into resetStringWriter) {
	if _, err := line.writeMark(into); err != nil {
		into.Reset()
		into.WriteString("!ERROR(")
		into.WriteString(err.Error())
		into.WriteString(")")
	}
}

func (line Line) writeMark(into io.StringWriter) (n int64, err error) {
	writeString := func(s string) {
		if err == nil {
			var m int
			m, err = into.WriteString(s)
			n += int64(m)
		}
	}

	switch line.Type {
	case Text, PreformattedText:
		writeString(line.Text())

	case Link:
		writeString(linkMarker)
		writeString(" ")
		writeString(line.Target())
		if line.hasText {
			writeString(" ")
			writeString(line.Text())
		}

	case Heading:
		if line.Level < 1 {
			return 0, fmt.Errorf("invalid Heading level %v", line.Level)
		}
		writeString(strings.Repeat(string(headingMarker), line.Level))
		writeString(" ")
		writeString(line.Text())

	case UnorderedListItem:
		writeString(listMarker)
		writeString(line.Text())

	case Quote:
		writeString(string(quoteMarker))
		writeString(line.Text())

	case PreformattingToggle:
		writeString(fenceMarker)
		writeString(line.Text())

	default:
		return 0, fmt.Errorf("invalid line type %v", line.Type)
	}
	return n, err
}

type appendWriter struct {
	buf  []byte
	orig []byte
}

func (aw *appendWriter) Reset() {
	if buf := aw.orig; buf != nil {
		aw.buf = buf
	}
}

func (aw *appendWriter) Write(p []byte) (n int, err error) {
	if aw.orig == nil {
		aw.orig = aw.buf
	}
	aw.buf = append(aw.buf, p...)
	return len(p), nil
}

func (aw *appendWriter) WriteString(s string) (n int, err error) {
	if aw.orig == nil {
		aw.orig = aw.buf
	}
	aw.buf = append(aw.buf, s...)
	return len(s), nil
}
