package gemtext

import (
	"bufio"
	"io"
	"iter"
)

// Lines is a lazy, forward-only sequence of classified lines read from a
// buffered byte stream. It owns the stream for its lifetime.
//
// Example usage:
//
//	lines := gemtext.NewLines(os.Stdin)
//	for line, err := range lines.All() {
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Printf("%v\n", line)
//	}
//
// It is not safe to use Lines from parallel goroutines.
type Lines struct {
	src  LineReader
	orig io.Reader
	sc   Scanner
	done bool
}

// LineReader is a buffered byte stream that can read through a delimiter,
// like bufio.Reader.
type LineReader interface {
	io.Reader
	ReadBytes(delim byte) ([]byte, error)
}

// NewLines returns a sequence over r, which is wrapped in a bufio.Reader
// unless it already implements LineReader. Scanner state starts outside any
// preformatted block.
func NewLines(r io.Reader) *Lines {
	lr, ok := r.(LineReader)
	if !ok {
		lr = bufio.NewReader(r)
	}
	return &Lines{src: lr, orig: r}
}

// Next reads and classifies the next line.
//
// It returns io.EOF, and no line, once the stream has no more bytes. A final
// line without a terminator is still returned, followed by io.EOF on the next
// call.
//
// A *LineError applies to the returned step only, and scanning may continue.
// Any other error is a read error from the underlying stream, returned
// unchanged with no line; bytes of a partial line read before it are dropped.
func (ls *Lines) Next() (Line, error) {
	if ls.done {
		return Line{}, io.EOF
	}
	raw, err := ls.src.ReadBytes('\n')
	if len(raw) == 0 {
		if err == nil {
			err = io.EOF
		}
		if err == io.EOF {
			ls.done = true
		}
		return Line{}, err
	}
	if err == io.EOF {
		ls.done = true
	} else if err != nil {
		return Line{}, err
	}
	return ls.sc.ScanLine(raw)
}

// All returns an iterator over the remaining lines. Iteration ends at the end
// of the stream, or after yielding the first error.
func (ls *Lines) All() iter.Seq2[Line, error] {
	return func(yield func(Line, error) bool) {
		for {
			line, err := ls.Next()
			if err == io.EOF {
				return
			}
			if !yield(line, err) || err != nil {
				return
			}
		}
	}
}

// Preformatted returns true if the last line scanned left a preformatted
// block open.
func (ls *Lines) Preformatted() bool { return ls.sc.Preformatted() }

// Close closes the underlying stream, if it is an io.Closer.
func (ls *Lines) Close() error {
	ls.done = true
	if cl, ok := ls.orig.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}
