package gemutil

import (
	"bytes"
	"io"
)

// LineBuffer buffers writes, passing them on to To only in whole line chunks.
// Example use:
//
// 	var buf LineBuffer
// 	buf.To = os.Stdout
// 	for line, err := range lines.All() {
// 		fmt.Fprintf(&buf, "%v\n", line)
// 		buf.FlushLines()
// 	}
// 	buf.Flush()
type LineBuffer struct {
	To io.Writer
	bytes.Buffer
}

// Flush writes all buffered bytes, including any partial final line.
func (buf *LineBuffer) Flush() error {
	_, err := buf.WriteTo(buf.To)
	return err
}

// FlushLines writes buffered bytes through the last newline, retaining any
// partial line after it.
func (buf *LineBuffer) FlushLines() error {
	b := buf.Bytes()
	i := bytes.LastIndexByte(b, '\n')
	if i < 0 {
		return nil
	}
	m, err := buf.To.Write(b[:i+1])
	buf.Next(m)
	return err
}

// ErrWriter wraps a writer, latching its first error, and refusing any
// further writes after it.
type ErrWriter struct {
	io.Writer
	Err error
}

// Write passes through to Writer if Err is nil, retaining any returned error.
func (ew *ErrWriter) Write(p []byte) (n int, err error) {
	if ew.Err == nil {
		n, ew.Err = ew.Writer.Write(p)
	}
	return n, ew.Err
}

// PrefixWriter returns a writer that prepends prefix to every line written
// through it. The caller SHOULD close it to flush any partial final line.
func PrefixWriter(prefix string, w io.Writer) *Prefixer {
	p := &Prefixer{Prefix: prefix}
	p.buf.To = w
	return p
}

// Prefixer is the writer returned by PrefixWriter; its Prefix may be changed
// between writes.
type Prefixer struct {
	Prefix string

	// Skip suppresses the prefix of the next line only.
	Skip bool

	buf LineBuffer
}

// Close flushes any partial final line.
func (p *Prefixer) Close() error { return p.buf.Flush() }

func (p *Prefixer) Write(b []byte) (n int, err error) {
	for len(b) > 0 {
		if i := p.buf.Len() - 1; i < 0 || p.buf.Bytes()[i] == '\n' {
			if p.Skip {
				p.Skip = false
			} else {
				p.buf.WriteString(p.Prefix)
			}
		}
		line := b
		if i := bytes.IndexByte(b, '\n'); i >= 0 {
			line = b[:i+1]
		}
		b = b[len(line):]
		m, _ := p.buf.Write(line)
		n += m
	}
	return n, p.buf.FlushLines()
}

// WriteLines calls next with a line buffering writer until it returns false,
// flushing whole lines after every call. Iteration also stops early once a
// write to to fails, returning that error.
func WriteLines(to io.Writer, next func(w io.Writer) bool) error {
	ew, _ := to.(*ErrWriter)
	if ew == nil {
		ew = &ErrWriter{Writer: to}
	}
	var buf LineBuffer
	buf.To = ew
	for ew.Err == nil && next(&buf) {
		buf.FlushLines()
	}
	buf.Flush()
	return ew.Err
}
