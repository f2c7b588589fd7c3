// Package config loads the TOML settings shared by the command line tools.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Trust names a server certificate policy.
type Trust string

// Trust policies; Insecure must always be chosen explicitly.
const (
	TrustTOFU     Trust = "tofu"
	TrustSystem   Trust = "system"
	TrustInsecure Trust = "insecure"
)

// UnmarshalText accepts only the known policy names.
func (t *Trust) UnmarshalText(b []byte) error {
	switch v := Trust(b); v {
	case TrustTOFU, TrustSystem, TrustInsecure:
		*t = v
		return nil
	default:
		return fmt.Errorf("invalid trust policy %q, want one of tofu, system, insecure", b)
	}
}

// Set implements flag.Value.
func (t *Trust) Set(s string) error { return t.UnmarshalText([]byte(s)) }

func (t Trust) String() string { return string(t) }

// Duration is a time.Duration written as a string like "30s".
type Duration time.Duration

// UnmarshalText parses a time.ParseDuration string.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalText formats the duration like time.Duration.String.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Config holds tool settings.
type Config struct {
	Timeout    Duration `toml:"timeout"`
	Trust      Trust    `toml:"trust"`
	KnownHosts string   `toml:"known_hosts"`
}

// Default returns the settings used absent any configuration file.
func Default() Config {
	return Config{
		Timeout:    Duration(30 * time.Second),
		Trust:      TrustTOFU,
		KnownHosts: defaultKnownHosts(),
	}
}

func defaultKnownHosts() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "known_hosts"
	}
	return filepath.Join(dir, "gmi", "known_hosts")
}

// DefaultPath returns the configuration file read when none is named.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "gmi", "config.toml")
}

// ParseError describes a configuration file that could not be decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	var strict *toml.StrictMissingError
	if errors.As(e.Err, &strict) {
		return fmt.Sprintf("config %v: %v", e.Path, strict.String())
	}
	return fmt.Sprintf("config %v: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads path over the Default settings. A missing file is not an error
// unless required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !required {
		return cfg, nil
	} else if err != nil {
		return cfg, fmt.Errorf("reading config file %v: %w", path, err)
	}
	err = Decode(bytes.NewReader(data), &cfg)
	if err != nil {
		err = &ParseError{Path: path, Err: err}
	}
	return cfg, err
}

// Decode reads TOML from r into cfg, retaining any field that r does not set.
// Unknown keys are an error.
func Decode(r io.Reader, cfg *Config) error {
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

// LocalName is the configuration file searched for by FindLocal.
const LocalName = ".gmi.toml"

// FindLocal looks for a LocalName file in the working directory and each of
// its parents, returning the first path found, or "" if there is none.
func FindLocal() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		path := filepath.Join(wd, LocalName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			return "", nil
		}
		wd = parent
	}
}
