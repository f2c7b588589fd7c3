package gemtext_test

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/jcorbin/gmi/gemtext"
)

func TestLines_empty(t *testing.T) {
	lines := NewLines(strings.NewReader(""))
	line, err := lines.Next()
	assert.Equal(t, io.EOF, err, "empty read should end the sequence")
	assert.Equal(t, Line{}, line, "no line expected")

	_, err = lines.Next()
	assert.Equal(t, io.EOF, err, "sequence should stay ended")

	n := 0
	for range NewLines(strings.NewReader("")).All() {
		n++
	}
	assert.Equal(t, 0, n, "no items expected from empty stream")
}

func TestLines_unterminatedFinalLine(t *testing.T) {
	lines := NewLines(strings.NewReader("first\r\nlast"))

	line, err := lines.Next()
	require.NoError(t, err)
	assert.Equal(t, "first", line.Text())

	line, err = lines.Next()
	require.NoError(t, err, "partial final line should be yielded")
	assert.Equal(t, Text, line.Type)
	assert.Equal(t, "last", line.Text())

	_, err = lines.Next()
	assert.Equal(t, io.EOF, err)
}

func TestLines_errorsAffectOneStep(t *testing.T) {
	lines := NewLines(strings.NewReader("ok\nbad \xff\n# fine\n"))

	var types []LineType
	var errs int
	for {
		line, err := lines.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			assert.ErrorIs(t, err, ErrInvalidUTF8)
			errs++
			continue
		}
		types = append(types, line.Type)
	}
	assert.Equal(t, 1, errs, "expected one bad line")
	assert.Equal(t, []LineType{Text, Heading}, types)
}

func TestLines_All_stopsAtError(t *testing.T) {
	lines := NewLines(strings.NewReader("ok\nbad \xff\n# fine\n"))
	var n int
	var last error
	for _, err := range lines.All() {
		n++
		last = err
	}
	assert.Equal(t, 2, n, "iteration should stop after the first error")
	assert.ErrorIs(t, last, ErrInvalidUTF8)

	line, err := lines.Next()
	require.NoError(t, err, "sequence should be resumable after All stops")
	assert.Equal(t, Heading, line.Type)
}

func TestLines_preformattedState(t *testing.T) {
	lines := NewLines(bufio.NewReader(strings.NewReader("```\n=> a b\n```\n=> a b\n")))
	var got []LineType
	for line, err := range lines.All() {
		require.NoError(t, err)
		got = append(got, line.Type)
	}
	assert.Equal(t, []LineType{
		PreformattingToggle,
		PreformattedText,
		PreformattingToggle,
		Link,
	}, got)
	assert.False(t, lines.Preformatted())
}

var errBroken = errors.New("broken pipe")

type brokenReader struct {
	data   string
	closed bool
}

func (br *brokenReader) Read(p []byte) (int, error) {
	if br.data == "" {
		return 0, errBroken
	}
	n := copy(p, br.data)
	br.data = br.data[n:]
	return n, nil
}

func (br *brokenReader) Close() error {
	br.closed = true
	return nil
}

func TestLines_readError(t *testing.T) {
	src := &brokenReader{data: "one\ntw"}
	lines := NewLines(src)

	line, err := lines.Next()
	require.NoError(t, err)
	assert.Equal(t, "one", line.Text())

	line, err = lines.Next()
	assert.Equal(t, errBroken, err, "read errors should surface unchanged")
	assert.Equal(t, Line{}, line, "the partial \"tw\" line should be dropped")

	require.NoError(t, lines.Close())
	assert.True(t, src.closed, "close should reach the underlying stream")

	_, err = lines.Next()
	assert.Equal(t, io.EOF, err, "closed sequence should be over")
}
