package gemini

import (
	"errors"
	"fmt"

	"github.com/jcorbin/gmi/gemtext"
)

// Errors returned when decoding a response header.
var (
	ErrBadHeader     = errors.New("bad header")
	ErrUnexpectedEOF = errors.New("unexpected EOF")
	ErrInvalidUTF8   = gemtext.ErrInvalidUTF8
)

// Errors returned when building a request.
var (
	ErrBadScheme      = errors.New("bad scheme")
	ErrBadHost        = errors.New("bad host")
	ErrRequestTooLong = errors.New("request exceeds 1024 length")
)

// HeaderError is returned by ReadResponse when the status line is malformed.
// Once one is returned, the stream state is undefined, and the connection
// must be discarded.
type HeaderError struct {
	Line []byte // the status line bytes read, if any
	Err  error  // one of ErrBadHeader, ErrUnexpectedEOF, or ErrInvalidUTF8
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("gemini: %v in status line %q", e.Err, e.Line)
}

// Unwrap returns the underlying error for error chain inspection.
func (e *HeaderError) Unwrap() error { return e.Err }

// ShouldDiscardConnection returns true if err leaves a response stream in an
// undefined state: any header or I/O error. Only a nil error or a body
// *gemtext.LineError leaves the stream usable.
func ShouldDiscardConnection(err error) bool {
	if err == nil {
		return false
	}
	var lerr *gemtext.LineError
	return !errors.As(err, &lerr)
}
