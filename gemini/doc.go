// Package gemini implements the client side of the Gemini protocol: writing a
// request line, decoding the response status line, and handing the rest of
// the stream to a gemtext line sequence.
//
// Basic usage:
//
//	resp, err := gemini.Fetch(ctx, "gemini://example.org/")
//	if err != nil {
//		return err
//	}
//	defer resp.Body.Close()
//	if resp.Status.Category() != gemini.CategorySuccess {
//		return fmt.Errorf("%v: %v", resp.Status, resp.Meta)
//	}
//	lines := resp.Body.Lines()
//	for line, err := range lines.All() {
//		...
//	}
//
// ReadResponse may also be used directly on any already established stream.
//
// # Errors
//
// A malformed status line is returned as a *HeaderError wrapping one of
// ErrBadHeader, ErrUnexpectedEOF, or ErrInvalidUTF8. After any such error the
// stream is in an undefined state and must be discarded; see
// ShouldDiscardConnection.
//
// # Certificates
//
// Certificate verification is up to the Client's TLSConfig; nothing in this
// package silently skips it.
package gemini
