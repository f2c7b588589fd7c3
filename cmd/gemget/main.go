// Command gemget fetches a single Gemini URL, logging the response header
// and writing its body to stdout or a file.
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"mime"
	"os"
	"time"

	"github.com/zeebo/xxh3"

	"github.com/jcorbin/gmi/gemini"
	"github.com/jcorbin/gmi/gemtext"
	"github.com/jcorbin/gmi/internal/config"
	"github.com/jcorbin/gmi/internal/gemutil"
	"github.com/jcorbin/gmi/internal/render"
	"github.com/jcorbin/gmi/internal/tofu"
)

type options struct {
	outPath string
	html    bool
	lines   bool
	sum     bool
}

func main() {
	logOut := gemutil.PrefixWriter("gemget: ", os.Stderr)
	defer logOut.Close()
	log.SetOutput(logOut)
	log.SetFlags(0)

	var (
		opts       options
		configPath string
		trust      config.Trust
		timeout    time.Duration
		verbose    bool
	)
	flag.StringVar(&configPath, "config", "", "read settings from a TOML `file`")
	flag.Var(&trust, "trust", "certificate policy: tofu, system, or insecure")
	flag.DurationVar(&timeout, "timeout", 0, "request timeout, including reading the body")
	flag.StringVar(&opts.outPath, "o", "", "write output atomically to `file` instead of stdout")
	flag.BoolVar(&opts.html, "html", false, "render a gemtext body as HTML")
	flag.BoolVar(&opts.lines, "lines", false, "print classified gemtext lines instead of the body")
	flag.BoolVar(&opts.sum, "sum", false, "log an xxh3 digest of the body")
	flag.BoolVar(&verbose, "v", false, "enable debug logging")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: gemget [flags] URL\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		logOut.Close()
		os.Exit(2)
	}
	rawurl := flag.Arg(0)

	if err := func() error {
		cfg, err := loadConfig(configPath)
		if err != nil {
			return err
		}
		flag.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "trust":
				cfg.Trust = trust
			case "timeout":
				cfg.Timeout = config.Duration(timeout)
			}
		})

		client, save, err := newClient(cfg)
		if err != nil {
			return err
		}
		if verbose {
			client.Logger = slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelDebug}))
		}

		ctx := context.Background()
		if cfg.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, time.Duration(cfg.Timeout))
			defer cancel()
		}

		err = fetch(ctx, client, rawurl, opts, os.Stdout)
		if serr := save(); err == nil {
			err = serr
		}
		return err
	}(); err != nil {
		log.Print(err)
		logOut.Close()
		os.Exit(1)
	}
}

// loadConfig reads the named file, or else the nearest local one, or else
// the user's.
func loadConfig(path string) (config.Config, error) {
	if path != "" {
		return config.Load(path, true)
	}
	local, err := config.FindLocal()
	if err != nil {
		return config.Config{}, err
	}
	if local != "" {
		return config.Load(local, true)
	}
	return config.Load(config.DefaultPath(), false)
}

// newClient builds a client for the configured trust policy; save persists
// any certificate pins it made.
func newClient(cfg config.Config) (client *gemini.Client, save func() error, err error) {
	client = &gemini.Client{}
	save = func() error { return nil }
	switch cfg.Trust {
	case config.TrustSystem:
	case config.TrustInsecure:
		client.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	default:
		store, err := tofu.Load(cfg.KnownHosts)
		if err != nil {
			return nil, nil, err
		}
		client.TLSConfig = store.TLSConfig()
		save = store.Save
	}
	return client, save, nil
}

// StatusError is returned for any response that is not a success.
type StatusError struct {
	Status gemini.StatusCode
	Meta   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%v response: %v", e.Status.Category(), e.Meta)
}

// fetch requests rawurl, and writes its body, as selected by opts, to out.
func fetch(ctx context.Context, client *gemini.Client, rawurl string, opts options, out io.Writer) error {
	resp, err := client.Do(ctx, rawurl)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	log.Printf("%02d %v", int(resp.Status), resp.Meta)
	if resp.Status.Category() != gemini.CategorySuccess {
		return &StatusError{resp.Status, resp.Meta}
	}
	if (opts.html || opts.lines) && !isGemtext(resp.Meta) {
		return fmt.Errorf("cannot classify %q content as gemtext", resp.Meta)
	}

	var (
		body   io.Reader = resp.Body
		hasher *xxh3.Hasher
	)
	if opts.sum {
		hasher = xxh3.New()
		body = io.TeeReader(body, hasher)
	}

	write := func(w io.Writer) error {
		switch {
		case opts.html:
			return writeHTML(w, rawurl, body)
		case opts.lines:
			return writeLines(w, body)
		default:
			_, err := io.Copy(w, body)
			return err
		}
	}
	if opts.outPath != "" {
		err = gemutil.WriteFileAtomic(opts.outPath, write)
	} else {
		err = write(out)
	}

	if err == nil && hasher != nil {
		log.Printf("xxh3 %016x", hasher.Sum64())
	}
	return err
}

// isGemtext reports whether a success meta names gemtext; an empty meta
// defaults to it.
func isGemtext(meta string) bool {
	if meta == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(meta)
	return err == nil && mediaType == "text/gemini"
}

// nextLine returns the next line that classifies, logging and skipping any
// that do not.
func nextLine(lines *gemtext.Lines) (gemtext.Line, error) {
	for {
		line, err := lines.Next()
		var lineErr *gemtext.LineError
		if errors.As(err, &lineErr) {
			log.Printf("skipping line: %v", err)
			continue
		}
		return line, err
	}
}

func writeLines(w io.Writer, r io.Reader) error {
	lines := gemtext.NewLines(r)
	var readErr error
	if err := gemutil.WriteLines(w, func(w io.Writer) bool {
		line, err := nextLine(lines)
		if err != nil {
			if err != io.EOF {
				readErr = err
			}
			return false
		}
		fmt.Fprintf(w, "%v\n", line)
		return true
	}); err != nil {
		return err
	}
	return readErr
}

func writeHTML(w io.Writer, title string, r io.Reader) error {
	lines := gemtext.NewLines(r)
	var all []gemtext.Line
	for {
		line, err := nextLine(lines)
		if err == io.EOF {
			break
		} else if err != nil {
			return err
		}
		all = append(all, line)
	}
	return render.HTML(w, title, all)
}
