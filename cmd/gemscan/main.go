// Command gemscan classifies gemtext read from stdin, printing one numbered
// entry per line.
package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/jcorbin/gmi/gemtext"
	"github.com/jcorbin/gmi/internal/gemutil"
)

func main() {
	var (
		in      = os.Stdin
		out     = &gemutil.ErrWriter{Writer: os.Stdout}
		verbose bool
	)

	flag.BoolVar(&verbose, "v", false, "enable verbose output")
	flag.Parse()

	logOut := gemutil.PrefixWriter("> log: ", out)
	defer logOut.Close()
	log.SetOutput(logOut)
	log.SetFlags(0)

	if err := scan(in, out, verbose); err != nil {
		log.Printf("scan error: %v", err)
		logOut.Close()
		os.Exit(1)
	}
}

// scan writes an entry for every line read from in. Line errors are
// reported inline, and scanning continues past them; a read error stops it.
func scan(in io.Reader, out io.Writer, verbose bool) error {
	lines := gemtext.NewLines(in)
	defer lines.Close()

	var (
		n       int
		scanErr error
	)
	if err := gemutil.WriteLines(out, func(w io.Writer) bool {
		line, err := lines.Next()
		if err == io.EOF {
			return false
		}
		n++

		width, _ := fmt.Fprintf(w, "%v. ", n)
		itemOut := gemutil.PrefixWriter(strings.Repeat(" ", width), w)
		itemOut.Skip = true
		defer itemOut.Close()

		if err != nil {
			fmt.Fprintf(itemOut, "!ERROR %v\n", err)
			var lineErr *gemtext.LineError
			if !errors.As(err, &lineErr) {
				scanErr = err
				return false
			}
		} else if verbose {
			fmt.Fprintf(itemOut, "%+v\n", line)
		} else {
			fmt.Fprintf(itemOut, "%v\n", line)
		}

		if raw := line.Raw(); verbose && len(raw) > 0 {
			io.WriteString(itemOut, "```hexdump\n")
			dumper := hex.Dumper(itemOut)
			dumper.Write(raw)
			dumper.Close()
			io.WriteString(itemOut, "```\n")
		}
		return true
	}); err != nil {
		return fmt.Errorf("write error: %w", err)
	}
	return scanErr
}
