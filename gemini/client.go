package gemini

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"time"
)

// Client sends one Gemini request per call to Do; it does not pool or reuse
// connections, nor follow redirects.
type Client struct {
	// TLSConfig determines how the server certificate is verified.
	// If nil, Go's default verification against the system roots is used,
	// with the URL host as ServerName.
	//
	// A copy is made per request; ServerName is filled in from the URL when
	// empty.
	TLSConfig *tls.Config

	// Dialer is used to open the TCP connection. If nil, a zero net.Dialer
	// is used.
	Dialer *net.Dialer

	// DialContext, if non-nil, replaces TLS dialing entirely; it must return
	// an established, secured connection to addr.
	DialContext func(ctx context.Context, network, addr string) (net.Conn, error)

	// Logger receives debug records of requests and response headers.
	// If nil, nothing is logged.
	Logger *slog.Logger
}

// Fetch a resource from a Gemini server with the given URL, using a zero
// Client.
func Fetch(ctx context.Context, rawurl string) (*Response, error) {
	var c Client
	return c.Do(ctx, rawurl)
}

// Do sends a request for rawurl, and reads the response status line.
//
// Any context deadline applies to dialing, and is set as the connection
// deadline, covering reads of the returned Body too.
//
// On success, the caller must close Response.Body, which closes the
// connection. On failure, the connection has already been closed.
func (c *Client) Do(ctx context.Context, rawurl string) (_ *Response, rerr error) {
	u, err := ParseRequestURL(rawurl)
	if err != nil {
		return nil, err
	}
	addr := hostPort(u)

	conn, err := c.dial(ctx, addr, u.Hostname())
	if err != nil {
		return nil, fmt.Errorf("gemini: dial %v: %w", addr, err)
	}
	defer func() {
		if rerr != nil {
			conn.Close()
		}
	}()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	} else {
		conn.SetDeadline(time.Time{})
	}

	c.debug("gemini request", "url", u.String(), "addr", addr)
	if err := WriteRequest(conn, u); err != nil {
		return nil, err
	}

	resp, err := ReadResponse(conn)
	if err != nil {
		return nil, err
	}
	c.debug("gemini response", "url", u.String(), "status", int(resp.Status), "meta", resp.Meta)
	return resp, nil
}

func (c *Client) dial(ctx context.Context, addr, host string) (net.Conn, error) {
	if c.DialContext != nil {
		return c.DialContext(ctx, "tcp", addr)
	}

	var conf *tls.Config
	if c.TLSConfig != nil {
		conf = c.TLSConfig.Clone()
	} else {
		conf = &tls.Config{}
	}
	if conf.ServerName == "" {
		conf.ServerName = host
	}
	if conf.MinVersion == 0 {
		conf.MinVersion = tls.VersionTLS12
	}

	dialer := tls.Dialer{NetDialer: c.Dialer, Config: conf}
	return dialer.DialContext(ctx, "tcp", addr)
}

func (c *Client) debug(msg string, args ...any) {
	if c.Logger != nil {
		c.Logger.Debug(msg, args...)
	}
}
