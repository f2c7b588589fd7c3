package gemini

import (
	"bufio"
	"io"
	"unicode/utf8"

	"github.com/jcorbin/gmi/gemtext"
)

// Response represents a Gemini response, once its status line has been read.
// The body is streamed on demand from the same connection.
type Response struct {
	Status StatusCode // e.g. 20

	// Meta is the text after the status code: a MIME type for success, a
	// prompt for input, a URL for redirects, or an error message.
	Meta string

	// Body reads the rest of the stream, starting right after the status
	// line. It is the caller's responsibility to close Body.
	Body *Body
}

// Body is the response body stream.
type Body struct {
	br     *bufio.Reader
	closer io.Closer
}

// Read reads body bytes.
func (b *Body) Read(p []byte) (int, error) { return b.br.Read(p) }

// ReadBytes reads body bytes through the next delim byte, like
// bufio.Reader.ReadBytes.
func (b *Body) ReadBytes(delim byte) ([]byte, error) { return b.br.ReadBytes(delim) }

// WriteTo copies the remaining body into w.
func (b *Body) WriteTo(w io.Writer) (int64, error) { return b.br.WriteTo(w) }

// Close closes the underlying stream, if it is an io.Closer.
func (b *Body) Close() error {
	if b.closer == nil {
		return nil
	}
	cl := b.closer
	b.closer = nil
	return cl.Close()
}

// Lines returns a gemtext line sequence over the body.
// Closing the sequence closes the body.
func (b *Body) Lines() *gemtext.Lines { return gemtext.NewLines(b) }

var _ gemtext.LineReader = (*Body)(nil)

// ReadResponse reads a status line from r, returning a Response whose Body
// continues reading r immediately after it.
// Header format: <2 digit status><SP><meta><CRLF|LF>
//
// The reader r is wrapped in a bufio.Reader unless it already is one. If r
// implements io.Closer, closing Body closes it.
//
// Any malformed status line is returned as a *HeaderError, and no Response.
// Other read errors are returned unchanged.
func ReadResponse(r io.Reader) (*Response, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}

	line, err := br.ReadBytes('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}

	status, meta, err := parseHeader(line)
	if err != nil {
		return nil, &HeaderError{Line: line, Err: err}
	}

	body := &Body{br: br}
	if cl, ok := r.(io.Closer); ok {
		body.closer = cl
	}
	return &Response{
		Status: status,
		Meta:   meta,
		Body:   body,
	}, nil
}

func parseHeader(line []byte) (status StatusCode, meta string, err error) {
	pos := 0
	next := func() (byte, error) {
		if pos >= len(line) {
			return 0, ErrUnexpectedEOF
		}
		b := line[pos]
		pos++
		return b, nil
	}
	digit := func() (StatusCode, error) {
		b, err := next()
		if err != nil {
			return 0, err
		}
		if b < '0' || b > '9' {
			return 0, ErrBadHeader
		}
		return StatusCode(b - '0'), nil
	}

	tens, err := digit()
	if err != nil {
		return 0, "", err
	}
	ones, err := digit()
	if err != nil {
		return 0, "", err
	}
	if status = 10*tens + ones; !status.Valid() {
		return 0, "", ErrBadHeader
	}

	if sp, err := next(); err != nil {
		return 0, "", err
	} else if sp != ' ' {
		return 0, "", ErrBadHeader
	}

	text := gemtext.LineContent(line[pos:])
	if !utf8.Valid(text) {
		return 0, "", ErrInvalidUTF8
	}
	return status, string(text), nil
}
