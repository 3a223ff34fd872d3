// Package processor runs a scan: it lists the source tree, probes image
// dimensions, classifies each image and copies qualifying landscape images
// into the target tree.
package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"nerja/internal/classify"
	"nerja/internal/copier"
	"nerja/internal/naming"
	"nerja/internal/ratio"
	"nerja/pkg/imgutil"
)

// Run processes entries one at a time, in the order the Lister yields them.
// Per-file problems are logged and counted; the only error returned is
// ctx's, in which case the stats gathered so far are returned too. ctx is
// checked between files, never in the middle of a copy.
func Run(ctx context.Context, opts Options, updates chan<- ProgressUpdate) (Stats, error) {
	s := newScan(opts, updates)
	s.removeStale()

	for entry, err := range s.lister.Entries(opts.Root) {
		if ctx != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return s.stats, ctxErr
			}
		}
		if err != nil {
			s.warn(fmt.Sprintf("cannot read %s: %v", entry.Path, err))
			s.opts.Logger.Warn().Err(err).Str("path", entry.Path).Msg("walk error")
			continue
		}
		s.send(s.process(entry))
	}

	return s.stats, nil
}

type scan struct {
	opts     Options
	stats    Stats
	lister   Lister
	prober   Prober
	reducer  *ratio.Reducer
	resolver *naming.Resolver
	exts     map[string]bool
	updates  chan<- ProgressUpdate
}

func newScan(opts Options, updates chan<- ProgressUpdate) *scan {
	s := &scan{
		opts:    opts,
		stats:   newStats(),
		lister:  opts.Lister,
		prober:  opts.Prober,
		reducer: ratio.NewReducer(),
		exts:    extensionSet(opts.Extensions),
		updates: updates,
	}
	if s.opts.Policy == (classify.Policy{}) {
		s.opts.Policy = classify.DefaultPolicy()
	}
	if s.lister == nil {
		s.lister = NewDirLister(opts.Target)
	}
	if s.prober == nil {
		s.prober = imgutil.Probe{}
	}
	if opts.Target != "" {
		s.resolver = naming.NewResolver(opts.Target, opts.Naming, opts.Logger)
	}
	return s
}

func (s *scan) process(entry Entry) ProgressUpdate {
	upd := ProgressUpdate{FilesDelta: 1}
	s.stats.Files++

	if !entry.Regular || !s.exts[extOf(entry.Path)] {
		return upd
	}
	s.stats.Images++
	upd.ImagesDelta = 1

	log := s.opts.Logger.With().Str("path", entry.Path).Logger()

	w, h, err := s.prober.Dimensions(entry.Path)
	if err != nil || w <= 0 || h <= 0 {
		log.Warn().Err(err).Msg("dimensions unavailable")
		w, h = 0, 0
	}

	res := s.opts.Policy.Classify(uint64(w), uint64(h))
	if !res.HD {
		return upd
	}
	s.stats.HD++
	upd.HDDelta = 1

	switch res.Orientation {
	case classify.Portrait:
		s.stats.Portrait++
		return upd
	case classify.Square:
		s.stats.Square++
		return upd
	case classify.Unknown:
		return upd
	}
	s.stats.Landscape++

	step := s.opts.RatioStep
	r := s.reducer.Reduce(ratio.Quantize(uint64(w), step), ratio.Quantize(uint64(h), step))
	s.stats.Ratios[r.String()] = struct{}{}

	widescreen := s.opts.Policy.IsWidescreen(r)
	if widescreen {
		s.stats.Suitable++
	} else {
		s.stats.Unsuitable++
	}
	log.Debug().Int("width", w).Int("height", h).Stringer("ratio", r).Bool("widescreen", widescreen).Msg("landscape")

	if s.resolver == nil {
		return upd
	}

	dest := s.resolver.Resolve(naming.Source{Path: entry.Path, RelPath: entry.RelPath}, classify.Category(widescreen))
	if dest.Degraded {
		s.stats.Degraded++
		upd.Warning = fmt.Sprintf("no free name for %s", entry.RelPath)
	}
	if dest.Deduplicated {
		s.stats.Deduplicated++
	}

	out := copier.Copy(entry.Path, dest.Path)
	switch out.Status {
	case copier.StatusCopied:
		s.stats.Copied++
		s.stats.Bytes += out.Bytes
		upd.CopiedDelta = 1
		upd.BytesDelta = out.Bytes
		log.Debug().Str("dest", dest.Path).Stringer("method", dest.Method).Int64("bytes", out.Bytes).Msg("copied")
	case copier.StatusSkipped:
		s.stats.Skipped++
		upd.SkippedDelta = 1
		log.Debug().Str("dest", dest.Path).Msg("skipped, already exists")
	default:
		s.stats.Failed++
		upd.FailedDelta = 1
		upd.Warning = fmt.Sprintf("copy %s: %v", entry.RelPath, out.Err)
		log.Warn().Err(out.Err).Str("dest", dest.Path).Msg("copy failed")
	}
	return upd
}

// removeStale clears temp files a killed run left in the category trees.
func (s *scan) removeStale() {
	if s.resolver == nil {
		return
	}
	for _, category := range []string{classify.CategoryWidescreen, classify.CategoryNormal} {
		dir := filepath.Join(s.opts.Target, category)
		n, err := copier.RemoveStale(dir)
		if err != nil {
			s.opts.Logger.Warn().Err(err).Str("dir", dir).Msg("cannot clear stale temp files")
		}
		if n > 0 {
			s.opts.Logger.Info().Int("removed", n).Str("dir", dir).Msg("cleared stale temp files")
		}
	}
}

func (s *scan) warn(msg string) {
	s.send(ProgressUpdate{Warning: msg})
}

func (s *scan) send(upd ProgressUpdate) {
	if s.updates != nil {
		s.updates <- upd
	}
}

func extensionSet(exts []string) map[string]bool {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	set := make(map[string]bool, len(exts))
	for _, ext := range exts {
		set[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}
	return set
}

func extOf(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

func ratioValue(s string) float64 {
	var num, den uint64
	if _, err := fmt.Sscanf(s, "%d:%d", &num, &den); err != nil {
		return 0
	}
	return ratio.Ratio{Num: num, Den: den}.Float()
}
