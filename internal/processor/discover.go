package processor

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"nerja/internal/classify"
)

// DirLister walks a directory tree in lexical order. Directories are not
// yielded; every other entry is, with Regular set for plain files.
type DirLister struct {
	// Skip lists absolute directories that are not descended into,
	// typically a target directory nested inside the source root.
	Skip []string
}

// NewDirLister returns a lister that never descends into the category
// directories of target, so a target inside the source tree is not
// harvested again.
func NewDirLister(target string) DirLister {
	if target == "" {
		return DirLister{}
	}
	return DirLister{Skip: []string{
		filepath.Join(target, classify.CategoryWidescreen),
		filepath.Join(target, classify.CategoryNormal),
	}}
}

func (l DirLister) Entries(root string) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			yield(Entry{Path: root}, err)
			return
		}

		skip := l.within(absRoot)
		fsys := os.DirFS(absRoot)
		_ = fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, walkErr error) error {
			fullPath := filepath.Join(absRoot, filepath.FromSlash(path))
			if walkErr != nil {
				if !yield(Entry{Path: fullPath, RelPath: path}, walkErr) {
					return fs.SkipAll
				}
				return nil
			}
			if d.IsDir() {
				if path != "." && skipped(fullPath, skip) {
					return fs.SkipDir
				}
				return nil
			}

			entry := Entry{
				Path:    fullPath,
				RelPath: path,
				Regular: d.Type().IsRegular(),
			}
			if !yield(entry, nil) {
				return fs.SkipAll
			}
			return nil
		})
	}
}

// within keeps the skip directories that lie strictly inside root. A root
// that is itself a skip directory, or below one, is walked in full.
func (l DirLister) within(root string) []string {
	var out []string
	for _, s := range l.Skip {
		if abs, err := filepath.Abs(s); err == nil && abs != root && isWithin(abs, root) {
			out = append(out, abs)
		}
	}
	return out
}

func skipped(dir string, skip []string) bool {
	for _, s := range skip {
		if isWithin(dir, s) {
			return true
		}
	}
	return false
}

// CountEntries drains one listing to size a progress bar.
func CountEntries(l Lister, root string) int {
	n := 0
	for _, err := range l.Entries(root) {
		if err == nil {
			n++
		}
	}
	return n
}

func isWithin(path string, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return true
}
