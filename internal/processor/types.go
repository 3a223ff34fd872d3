package processor

import (
	"iter"
	"sort"

	"github.com/rs/zerolog"

	"nerja/internal/classify"
	"nerja/internal/naming"
)

// DefaultExtensions are the file extensions treated as images.
var DefaultExtensions = []string{"jpg", "jpeg", "png"}

type Options struct {
	Root   string
	Target string // empty: report only

	Policy     classify.Policy
	Naming     naming.Strategy
	RatioStep  uint64
	Extensions []string

	Lister Lister
	Prober Prober
	Logger zerolog.Logger
}

// Entry is one filesystem object yielded by a Lister.
type Entry struct {
	Path    string
	RelPath string
	Regular bool
}

// Lister yields the entries below root, recursively. Errors are yielded
// alongside a zero Entry and do not end the sequence.
type Lister interface {
	Entries(root string) iter.Seq2[Entry, error]
}

// Prober reads image dimensions.
type Prober interface {
	Dimensions(path string) (width, height int, err error)
}

// Stats are the counters for one scan. Only Run mutates them.
type Stats struct {
	Files        int
	Images       int
	HD           int
	Landscape    int
	Portrait     int
	Square       int
	Suitable     int
	Unsuitable   int
	Skipped      int
	Copied       int
	Failed       int
	Deduplicated int
	Degraded     int
	Bytes        int64
	Ratios       map[string]struct{}
}

func newStats() Stats {
	return Stats{Ratios: make(map[string]struct{})}
}

// SortedRatios returns the distinct reduced ratios seen, widest first.
func (s Stats) SortedRatios() []string {
	out := make([]string, 0, len(s.Ratios))
	for r := range s.Ratios {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := ratioValue(out[i]), ratioValue(out[j])
		if ri != rj {
			return ri > rj
		}
		return out[i] < out[j]
	})
	return out
}

// ProgressUpdate carries deltas for the progress sink.
type ProgressUpdate struct {
	FilesDelta   int
	ImagesDelta  int
	HDDelta      int
	CopiedDelta  int
	SkippedDelta int
	FailedDelta  int
	BytesDelta   int64
	Warning      string
}
