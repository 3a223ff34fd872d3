// Package naming computes destination paths for harvested images.
//
// Two policies exist. Structural naming mirrors the source tree under a
// category directory. Content naming flattens files to the hex SHA-256 of
// their bytes, which deduplicates identical images for free. When a content
// name cannot be produced, or it is taken by a different file, a random
// UUID name is drawn instead.
package naming

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MaxAttempts bounds the random-name retry loop.
const MaxAttempts = 10

type Strategy int

const (
	Structural Strategy = iota
	ContentHash
)

func (s Strategy) String() string {
	if s == ContentHash {
		return "content-hash"
	}
	return "structural"
}

// Method records which rule produced a Resolution.
type Method int

const (
	MethodStructural Method = iota
	MethodContent
	MethodRandom
)

func (m Method) String() string {
	switch m {
	case MethodContent:
		return "content"
	case MethodRandom:
		return "random"
	default:
		return "structural"
	}
}

type Source struct {
	Path    string
	RelPath string
}

type Resolution struct {
	Path   string
	Method Method
	// Deduplicated is set when a content name already exists with the
	// same size as the source; the copy will be skipped.
	Deduplicated bool
	// Degraded is set when every random draw collided and Path is the
	// last draw, which exists already.
	Degraded bool
}

type Resolver struct {
	Root     string
	Strategy Strategy
	Attempts int
	Logger   zerolog.Logger

	newID func() (string, error)
	hash  func(path string) (string, error)
}

func NewResolver(root string, strategy Strategy, logger zerolog.Logger) *Resolver {
	return &Resolver{
		Root:     root,
		Strategy: strategy,
		Attempts: MaxAttempts,
		Logger:   logger,
		newID:    randomID,
		hash:     HashFile,
	}
}

// Resolve never fails: every problem degrades to a random name and, at
// worst, a warning. It never points at an existing file unless that file
// is the intended dedup target or the retry budget is exhausted.
func (r *Resolver) Resolve(src Source, category string) Resolution {
	dir := filepath.Join(r.Root, category)
	if r.Strategy == Structural {
		return Resolution{Path: filepath.Join(dir, filepath.FromSlash(src.RelPath)), Method: MethodStructural}
	}

	ext := strings.ToLower(filepath.Ext(src.Path))
	digest, err := r.hash(src.Path)
	if err != nil {
		r.Logger.Warn().Err(err).Str("path", src.Path).Msg("content hash failed, using random name")
		return r.random(dir, ext)
	}

	dest := filepath.Join(dir, digest+ext)
	same, exists, err := sameSize(src.Path, dest)
	switch {
	case err != nil:
		r.Logger.Warn().Err(err).Str("path", dest).Msg("cannot inspect content-named destination, using random name")
		return r.random(dir, ext)
	case !exists:
		return Resolution{Path: dest, Method: MethodContent}
	case same:
		return Resolution{Path: dest, Method: MethodContent, Deduplicated: true}
	default:
		r.Logger.Warn().Str("path", src.Path).Str("dest", dest).Msg("content name taken by a different file, using random name")
		return r.random(dir, ext)
	}
}

func (r *Resolver) random(dir, ext string) Resolution {
	attempts := r.Attempts
	if attempts <= 0 {
		attempts = MaxAttempts
	}

	var dest string
	for attempt := 1; attempt <= attempts; attempt++ {
		id, err := r.newID()
		if err != nil {
			r.Logger.Warn().Err(err).Int("attempt", attempt).Msg("random name generation failed")
			continue
		}
		dest = filepath.Join(dir, id+ext)
		if !exists(dest) {
			return Resolution{Path: dest, Method: MethodRandom}
		}
	}

	r.Logger.Warn().Int("attempts", attempts).Str("path", dest).Msg("random names exhausted, proceeding with last candidate")
	return Resolution{Path: dest, Method: MethodRandom, Degraded: true}
}

func randomID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func sameSize(src, dest string) (same bool, found bool, err error) {
	destInfo, err := os.Stat(dest)
	if errors.Is(err, fs.ErrNotExist) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	srcInfo, err := os.Stat(src)
	if err != nil {
		return false, true, err
	}
	return destInfo.Mode().IsRegular() && destInfo.Size() == srcInfo.Size(), true, nil
}
