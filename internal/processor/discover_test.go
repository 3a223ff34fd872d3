package processor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirListerYieldsFilesInLexicalOrder(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"b.jpg":       "b",
		"a/z.png":     "z",
		"a/deep/y.jp": "y",
	})
	require.NoError(t, os.Symlink(filepath.Join(root, "b.jpg"), filepath.Join(root, "c.jpg")))

	var rels []string
	var regular []bool
	for entry, err := range (DirLister{}).Entries(root) {
		require.NoError(t, err)
		rels = append(rels, entry.RelPath)
		regular = append(regular, entry.Regular)
		assert.Equal(t, filepath.Join(root, filepath.FromSlash(entry.RelPath)), entry.Path)
	}

	assert.Equal(t, []string{"a/deep/y.jp", "a/z.png", "b.jpg", "c.jpg"}, rels)
	assert.Equal(t, []bool{true, true, true, false}, regular)
}

func TestDirListerSkipsConfiguredDirs(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"keep/a.jpg":       "a",
		"out/normal/b.jpg": "b",
	})

	lister := DirLister{Skip: []string{filepath.Join(root, "out", "normal")}}
	assert.Equal(t, 1, CountEntries(lister, root))
}

func TestDirListerWalksRootBelowSkipDir(t *testing.T) {
	out := t.TempDir()
	root := filepath.Join(out, "widescreen", "incoming")
	writeFiles(t, root, map[string]string{
		"top.jpg":      "t",
		"sub/deep.jpg": "d",
	})

	assert.Equal(t, 2, CountEntries(NewDirLister(out), root))
	assert.Equal(t, 2, CountEntries(NewDirLister(out), filepath.Join(out, "widescreen")))
}

func TestDirListerStopsEarly(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"a.jpg": "a", "b.jpg": "b", "c.jpg": "c"})

	n := 0
	for range (DirLister{}).Entries(root) {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestIsWithin(t *testing.T) {
	assert.True(t, isWithin("/a/b", "/a"))
	assert.True(t, isWithin("/a", "/a"))
	assert.False(t, isWithin("/ab", "/a"))
	assert.False(t, isWithin("/x/y", "/a"))
}
