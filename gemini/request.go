package gemini

import (
	"fmt"
	"io"
	"net"
	"net/url"
)

// Lists Gemini related URI schemes and ports.
const (
	SchemeGemini = "gemini"
	DefaultPort  = "1965"
)

// MaxRequestLength is the longest URL, in bytes, that a request may carry.
const MaxRequestLength = 1024

// ParseRequestURL parses and checks an absolute gemini URL.
func ParseRequestURL(rawurl string) (*url.URL, error) {
	u, err := url.Parse(rawurl)
	if err != nil {
		return nil, err
	}
	if err := checkRequestURL(u); err != nil {
		return nil, err
	}
	return u, nil
}

func checkRequestURL(u *url.URL) error {
	if u.Scheme != SchemeGemini {
		return fmt.Errorf("%w %q", ErrBadScheme, u.Scheme)
	}
	if u.Hostname() == "" {
		return ErrBadHost
	}
	return nil
}

// WriteRequest writes a request line for u into w: <absolute-url><CRLF>
func WriteRequest(w io.Writer, u *url.URL) error {
	if err := checkRequestURL(u); err != nil {
		return err
	}
	s := u.String()
	if len(s) > MaxRequestLength {
		return ErrRequestTooLong
	}
	_, err := io.WriteString(w, s+"\r\n")
	return err
}

// hostPort returns the address to dial for u, using DefaultPort if u has none.
func hostPort(u *url.URL) string {
	port := u.Port()
	if port == "" {
		port = DefaultPort
	}
	return net.JoinHostPort(u.Hostname(), port)
}
