package gemutil

import (
	"io"

	"github.com/google/renameio"
)

// WriteFileAtomic calls write with a pending temporary file next to filename,
// then atomically replaces filename with it if write succeeded.
// On any error the temporary file is removed, and filename is left as it was.
func WriteFileAtomic(filename string, write func(w io.Writer) error) (rerr error) {
	pf, err := renameio.TempFile("", filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := pf.Cleanup(); rerr == nil {
			rerr = cerr
		}
	}()
	if err := write(pf); err != nil {
		return err
	}
	return pf.CloseAtomicallyReplace()
}
