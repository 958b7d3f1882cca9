package fs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// TempFilePrefix marks in-progress output files. The watch worker ignores them.
const TempFilePrefix = "lineage-tmp-"

// WriteAtomic streams fill into a temp file next to filename, then renames it
// over filename. When fill or any later step fails, the temp file is removed
// and an existing filename is left as it was.
func WriteAtomic(filename string, perm os.FileMode, fill func(w io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(filename), TempFilePrefix+filepath.Base(filename)+"-*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", filename, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = fill(tmp); err != nil {
		return fmt.Errorf("write %s: %w", filename, err)
	}
	if err = tmp.Chmod(perm); err != nil {
		return fmt.Errorf("chmod %s: %w", tmp.Name(), err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("replace %s: %w", filename, err)
	}
	return nil
}

// WriteFileAtomic is WriteAtomic for an in-memory payload.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	return WriteAtomic(filename, perm, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}
