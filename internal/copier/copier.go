// Package copier copies files into the destination tree without ever
// replacing an existing file.
package copier

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// tempPattern names in-flight copies. Anything matching it under a
// destination tree is left over from a killed run.
const tempPattern = ".nerja-*.tmp"

type Status int

const (
	StatusCopied Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusCopied:
		return "copied"
	case StatusSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Outcome is the result of one Copy call.
type Outcome struct {
	Status Status
	Bytes  int64
	Err    error
}

func Copied(n int64) Outcome { return Outcome{Status: StatusCopied, Bytes: n} }
func Skipped() Outcome { return Outcome{Status: StatusSkipped} }
func Failed(err error) Outcome { return Outcome{Status: StatusFailed, Err: err} }

func (o Outcome) String() string {
	switch o.Status {
	case StatusCopied:
		return fmt.Sprintf("copied %d bytes", o.Bytes)
	case StatusFailed:
		return fmt.Sprintf("failed: %v", o.Err)
	default:
		return "skipped: already exists"
	}
}

// Copy writes from into to. Missing parent directories are created. If to
// exists the call is a no-op reported as skipped. Data lands in a temp file
// next to to and is published whole, so an interrupted run never leaves a
// truncated file under the final name.
func Copy(from, to string) Outcome {
	destDir := filepath.Dir(to)
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return Failed(fmt.Errorf("create %s: %w", destDir, err))
	}

	if _, err := os.Lstat(to); err == nil {
		return Skipped()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return Failed(err)
	}

	src, err := os.Open(from)
	if err != nil {
		return Failed(err)
	}
	defer src.Close()

	srcInfo, err := src.Stat()
	if err != nil {
		return Failed(err)
	}

	tmpFile, err := os.CreateTemp(destDir, tempPattern)
	if err != nil {
		return Failed(err)
	}
	defer os.Remove(tmpFile.Name())

	if err := tmpFile.Chmod(srcInfo.Mode().Perm()); err != nil {
		_ = tmpFile.Close()
		return Failed(err)
	}

	n, err := io.Copy(tmpFile, src)
	if err != nil {
		_ = tmpFile.Close()
		return Failed(err)
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		return Failed(err)
	}
	if err := tmpFile.Close(); err != nil {
		return Failed(err)
	}

	return publish(tmpFile.Name(), to, n)
}

// publish moves tmpPath to destPath unless destPath appeared meanwhile.
// A hard link fails with ErrExist instead of clobbering; filesystems
// without links fall back to check-then-rename.
func publish(tmpPath, destPath string, n int64) Outcome {
	err := os.Link(tmpPath, destPath)
	if err == nil {
		return Copied(n)
	}
	if errors.Is(err, fs.ErrExist) {
		return Skipped()
	}

	if _, statErr := os.Lstat(destPath); statErr == nil {
		return Skipped()
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return Failed(err)
	}
	return Copied(n)
}

// RemoveStale deletes leftover temp files under root and returns how many
// were removed. A missing root is not an error.
func RemoveStale(root string) (int, error) {
	removed := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == root {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if ok, _ := filepath.Match(tempPattern, d.Name()); !ok {
			return nil
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		removed++
		return nil
	})
	return removed, err
}
