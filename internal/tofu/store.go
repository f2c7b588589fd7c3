// Package tofu implements trust on first use certificate pinning: the first
// certificate seen from a host is recorded, and later connections to that
// host must present the same one.
package tofu

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"crypto/tls"
	"crypto/x509"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/jcorbin/gmi/internal/gemutil"
)

// ErrNoCertificate is returned when a peer presents no certificate at all.
var ErrNoCertificate = errors.New("no peer certificate")

// MismatchError is returned when a host presents a certificate different from
// the one pinned for it.
type MismatchError struct {
	Host string
	Want string
	Got  string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("tofu: certificate for %v changed: pinned %v, got %v", e.Host, e.Want, e.Got)
}

// Fingerprint returns the hex encoded SHA-256 of a certificate's DER bytes.
func Fingerprint(cert *x509.Certificate) string {
	sum := sha256.Sum256(cert.Raw)
	return hex.EncodeToString(sum[:])
}

// Store holds pinned certificate fingerprints by host name.
// It is safe for concurrent use.
type Store struct {
	Path string

	mu    sync.Mutex
	hosts map[string]string
	dirty bool
}

// Load reads a known hosts file; a missing file yields an empty store that
// will be created by Save.
func Load(path string) (*Store, error) {
	st := &Store{Path: path, hosts: make(map[string]string)}
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return st, nil
	} else if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := st.readFrom(f); err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	return st, nil
}

func (st *Store) readFrom(r io.Reader) error {
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		fields := strings.Fields(string(line))
		if len(fields) != 2 {
			return fmt.Errorf("line %v: expected <host> <fingerprint>", n)
		}
		st.hosts[fields[0]] = fields[1]
	}
	return sc.Err()
}

// Save writes the store back to Path if any host was pinned since it was
// loaded.
func (st *Store) Save() error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if !st.dirty {
		return nil
	}
	hosts := make([]string, 0, len(st.hosts))
	for host := range st.hosts {
		hosts = append(hosts, host)
	}
	sort.Strings(hosts)
	if err := os.MkdirAll(filepath.Dir(st.Path), 0o700); err != nil {
		return err
	}
	err := gemutil.WriteFileAtomic(st.Path, func(w io.Writer) error {
		return gemutil.WriteLines(w, func(w io.Writer) bool {
			if len(hosts) == 0 {
				return false
			}
			fmt.Fprintf(w, "%v %v\n", hosts[0], st.hosts[hosts[0]])
			hosts = hosts[1:]
			return true
		})
	})
	if err == nil {
		st.dirty = false
	}
	return err
}

// Lookup returns the fingerprint pinned for host, if any.
func (st *Store) Lookup(host string) (string, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	fp, ok := st.hosts[host]
	return fp, ok
}

// Verify pins cert for host if it has not been seen before, and otherwise
// returns a *MismatchError unless cert matches the pinned fingerprint.
func (st *Store) Verify(host string, cert *x509.Certificate) error {
	got := Fingerprint(cert)
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.hosts == nil {
		st.hosts = make(map[string]string)
	}
	want, known := st.hosts[host]
	if !known {
		st.hosts[host] = got
		st.dirty = true
		return nil
	}
	if want != got {
		return &MismatchError{Host: host, Want: want, Got: got}
	}
	return nil
}

// VerifyConnection verifies the leaf certificate of a completed handshake;
// it has the signature of tls.Config.VerifyConnection.
func (st *Store) VerifyConnection(cs tls.ConnectionState) error {
	if len(cs.PeerCertificates) == 0 {
		return ErrNoCertificate
	}
	return st.Verify(cs.ServerName, cs.PeerCertificates[0])
}

// TLSConfig returns a client configuration that skips certificate authority
// verification in favor of the store's pins.
func (st *Store) TLSConfig() *tls.Config {
	return &tls.Config{
		InsecureSkipVerify: true,
		VerifyConnection:   st.VerifyConnection,
	}
}
