package domain

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"tagsweep.dev/pkg/tagsweep/internal/adapter"
	m "tagsweep.dev/pkg/tagsweep/internal/model"
)

// MatchConfig scopes the usage search.
type MatchConfig struct {
	// Root is the repository tree the search runs over; occurrence paths
	// are stored relative to it.
	Root m.Path
	// Separator qualifies variant references, e.g. "::".
	Separator string
	// ExcludeDirs names root-level directories whose hits never count:
	// the reports directory and build output.
	ExcludeDirs []string
	// Parallel caps concurrent search invocations. Values below 1 run
	// sequentially.
	Parallel int
	// Timeout bounds one search invocation; zero leaves the adapter's
	// own limit in charge.
	Timeout time.Duration
}

// Matcher cross-references every (type, variant) pair of an inventory
// against the repository tree and assembles the usage report.
type Matcher interface {
	Match(ctx context.Context, inv m.Inventory, cfg MatchConfig) ([]m.UsageRecord, error)
}

type matcher struct {
	fs     adapter.SourceFSAdapter
	search adapter.SearchAdapter
}

// NewMatcher constructs a Matcher backed by the provided filesystem and
// search adapters.
func NewMatcher(fs adapter.SourceFSAdapter, search adapter.SearchAdapter) Matcher {
	return &matcher{fs: fs, search: search}
}

type matchJob struct {
	item    m.EnumItem
	variant m.Variant
	index   int
}

// Match produces exactly one record per (type, variant) pair in inventory
// traversal order. Variants are searched in parallel; records land in an
// index-addressed slice so scheduling never disturbs record order. Any
// search failure aborts the whole run: a partial report is never returned.
func (ma *matcher) Match(ctx context.Context, inv m.Inventory, cfg MatchConfig) ([]m.UsageRecord, error) {
	rootAbs, err := ma.fs.AbsPath(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", cfg.Root, err)
	}

	var jobs []matchJob

	for _, item := range inv.Items {
		for _, variant := range item.Variants {
			jobs = append(jobs, matchJob{item: item, variant: variant, index: len(jobs)})
		}
	}

	records := make([]m.UsageRecord, len(jobs))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(cfg.Parallel, 1))

	for _, job := range jobs {
		job := job
		group.Go(func() error {
			record, err := ma.matchVariant(groupCtx, rootAbs, job.item, job.variant, cfg)
			if err != nil {
				return err
			}

			records[job.index] = record

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return records, nil
}

// matchVariant searches one qualified reference pattern and filters the raw
// matches into occurrences. A pattern with no surviving matches yields a
// record with an empty occurrence list, which is meaningful (dead variant),
// not an error.
func (ma *matcher) matchVariant(ctx context.Context, rootAbs m.Path, item m.EnumItem, variant m.Variant, cfg MatchConfig) (m.UsageRecord, error) {
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	pattern := item.Name + cfg.Separator + variant.Name

	matches, err := ma.search.Search(ctx, pattern, cfg.Root)
	if err != nil {
		return m.UsageRecord{}, fmt.Errorf("search %q: %w", pattern, err)
	}

	declAbs, err := ma.fs.AbsPath(ma.fs.JoinPath(string(rootAbs), string(item.Path)))
	if err != nil {
		return m.UsageRecord{}, fmt.Errorf("resolve definition site %s: %w", item.Path, err)
	}

	occurrences := make([]m.Occurrence, 0, len(matches))

	for _, match := range matches {
		occurrence, ok := ma.filterMatch(rootAbs, declAbs, pattern, cfg, match)
		if ok {
			occurrences = append(occurrences, occurrence)
		}
	}

	return m.UsageRecord{
		Domain:      item.Module,
		EventType:   item.Name,
		Variant:     variant.Name,
		Occurrences: occurrences,
	}, nil
}

// filterMatch resolves one raw match and decides whether it counts as
// usage. The definition site never counts; matches that cannot be made
// relative to the root, or that land in an excluded directory, are skipped.
func (ma *matcher) filterMatch(rootAbs, declAbs m.Path, pattern string, cfg MatchConfig, match adapter.RawMatch) (m.Occurrence, bool) {
	abs, err := ma.fs.AbsPath(match.Path)
	if err != nil {
		slog.Debug("unresolvable match path, skipping", "path", match.Path, "pattern", pattern, "error", err)
		return m.Occurrence{}, false
	}

	if abs == declAbs {
		return m.Occurrence{}, false
	}

	rel, err := ma.fs.RelPath(rootAbs, abs)
	if err != nil || strings.HasPrefix(string(rel), "..") {
		slog.Debug("match outside repository root, skipping", "path", match.Path, "pattern", pattern)
		return m.Occurrence{}, false
	}

	slashed := strings.ReplaceAll(string(rel), "\\", "/")
	if underExcludedDir(slashed, cfg.ExcludeDirs) {
		return m.Occurrence{}, false
	}

	return m.Occurrence{
		Path:     m.Path(slashed),
		Line:     match.Line,
		LineText: strings.TrimSpace(match.Text),
	}, true
}

// underExcludedDir reports whether rel lives under one of the excluded
// root-relative directories.
func underExcludedDir(rel string, excluded []string) bool {
	for _, dir := range excluded {
		dir = strings.Trim(strings.ReplaceAll(dir, "\\", "/"), "/")
		if dir == "" || dir == "." {
			continue
		}

		dir = strings.TrimPrefix(dir, "./")
		if rel == dir || strings.HasPrefix(rel, dir+"/") {
			return true
		}
	}

	return false
}
