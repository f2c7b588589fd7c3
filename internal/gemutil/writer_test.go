package gemutil_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/jcorbin/gmi/internal/gemutil"
)

func TestPrefixWriter(t *testing.T) {
	var out bytes.Buffer
	pw := PrefixWriter("> ", &out)

	io.WriteString(pw, "hello\nwor")
	assert.Equal(t, "> hello\n", out.String(), "only whole lines should be flushed")

	io.WriteString(pw, "ld\n\nagain")
	assert.Equal(t, "> hello\n> world\n> \n", out.String())

	pw.Prefix = "# "
	require.NoError(t, pw.Close())
	assert.Equal(t, "> hello\n> world\n> \n> again", out.String(), "close should flush the partial line")
}

func TestPrefixWriter_Skip(t *testing.T) {
	var out bytes.Buffer
	out.WriteString("1. ")
	pw := PrefixWriter("   ", &out)
	pw.Skip = true
	io.WriteString(pw, "first\nsecond\n")
	require.NoError(t, pw.Close())
	assert.Equal(t, "1. first\n   second\n", out.String())
}

type failWriter struct {
	n   int
	err error
}

func (fw *failWriter) Write(p []byte) (int, error) {
	if fw.n <= 0 {
		return 0, fw.err
	}
	fw.n--
	return len(p), nil
}

func TestWriteLines(t *testing.T) {
	var out bytes.Buffer
	i := 0
	err := WriteLines(&out, func(w io.Writer) bool {
		if i >= 3 {
			return false
		}
		i++
		fmt.Fprintf(w, "%v. line\n", i)
		return true
	})
	require.NoError(t, err)
	assert.Equal(t, "1. line\n2. line\n3. line\n", out.String())

	errFull := errors.New("disk full")
	calls := 0
	err = WriteLines(&failWriter{n: 1, err: errFull}, func(w io.Writer) bool {
		calls++
		fmt.Fprintf(w, "line\n")
		return true
	})
	assert.Equal(t, errFull, err)
	assert.Equal(t, 2, calls, "iteration should stop after the first write error")
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "page.gmi")

	require.NoError(t, WriteFileAtomic(name, func(w io.Writer) error {
		_, err := io.WriteString(w, "# first\n")
		return err
	}))
	b, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, "# first\n", string(b))

	errHalf := errors.New("half written")
	err = WriteFileAtomic(name, func(w io.Writer) error {
		io.WriteString(w, "# sec")
		return errHalf
	})
	assert.Equal(t, errHalf, err)
	b, err = os.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, "# first\n", string(b), "failed write should leave the file intact")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files should remain")
}
