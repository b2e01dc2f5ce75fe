package domain

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"tagsweep.dev/pkg/tagsweep/internal/adapter"
	m "tagsweep.dev/pkg/tagsweep/internal/model"
)

// ScanConfig carries the conventions that identify qualifying declarations.
// An explicit config object (instead of package-level path constants) keeps
// every component runnable against synthetic trees in tests.
type ScanConfig struct {
	// Base is the directory holding the declaration sources.
	Base m.Path
	// Root is the repository root; inventory paths are stored relative
	// to it so the usage phase can resolve definition sites.
	Root m.Path
	// Suffix is the qualifying type-name suffix, e.g. "Event".
	Suffix string
	// Extension is the source file extension, e.g. ".rs".
	Extension string
	// IndexFile is the directory index filename dropped during module
	// derivation, e.g. "mod.rs".
	IndexFile string
	// Separator joins module segments and qualifies variant references,
	// e.g. "::".
	Separator string
	// Exclude holds glob patterns for paths to skip during the walk, on
	// top of the fixed "tests" segment exclusion.
	Exclude []string
}

// testsSegment is the conventional test-only directory name excluded from
// extraction.
const testsSegment = "tests"

// Extractor builds the enum inventory from a source tree.
type Extractor interface {
	Extract(ctx context.Context, cfg ScanConfig) (m.Inventory, error)
}

type extractor struct {
	fs adapter.SourceFSAdapter
}

// NewExtractor constructs an Extractor backed by the provided filesystem
// adapter.
func NewExtractor(fs adapter.SourceFSAdapter) Extractor {
	return &extractor{fs: fs}
}

// Extract walks cfg.Base and assembles the inventory in traversal order.
// Extraction problems inside a single file truncate that declaration but
// never abort the walk; read errors do, since they would leave the
// inventory silently incomplete.
func (e *extractor) Extract(ctx context.Context, cfg ScanConfig) (m.Inventory, error) {
	excludes, err := compileExcludes(cfg.Exclude)
	if err != nil {
		return m.Inventory{}, err
	}

	rootAbs, err := e.fs.AbsPath(cfg.Root)
	if err != nil {
		return m.Inventory{}, fmt.Errorf("resolve root %s: %w", cfg.Root, err)
	}

	baseRel, err := e.rootRelative(rootAbs, cfg.Base)
	if err != nil {
		return m.Inventory{}, err
	}

	inventory := m.Inventory{Base: baseRel, Items: []m.EnumItem{}}

	walkErr := e.fs.WalkFiles(cfg.Base, func(path m.Path) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !e.shouldScan(cfg, excludes, path) {
			return nil
		}

		data, err := e.fs.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		relPath, err := e.rootRelative(rootAbs, path)
		if err != nil {
			return err
		}

		inventory.Items = append(inventory.Items, e.extractFile(cfg, baseRel, relPath, string(data))...)

		return nil
	})
	if walkErr != nil {
		return m.Inventory{}, fmt.Errorf("walk %s: %w", cfg.Base, walkErr)
	}

	slog.Debug("inventory extracted", "base", cfg.Base, "items", len(inventory.Items), "variants", inventory.VariantCount())

	return inventory, nil
}

func (e *extractor) shouldScan(cfg ScanConfig, excludes []glob.Glob, path m.Path) bool {
	if filepath.Ext(string(path)) != cfg.Extension {
		return false
	}

	slashed := filepath.ToSlash(string(path))
	for _, segment := range strings.Split(slashed, "/") {
		if segment == testsSegment {
			return false
		}
	}

	for _, pattern := range excludes {
		if pattern.Match(slashed) {
			return false
		}
	}

	return true
}

func (e *extractor) rootRelative(rootAbs, path m.Path) (m.Path, error) {
	abs, err := e.fs.AbsPath(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}

	rel, err := e.fs.RelPath(rootAbs, abs)
	if err != nil {
		return "", fmt.Errorf("relativize %s: %w", path, err)
	}

	return m.Path(filepath.ToSlash(string(rel))), nil
}

// extractFile scans one file's text for qualifying declarations. baseRel
// and relPath are both root-relative; relPath is recorded on each item.
func (e *extractor) extractFile(cfg ScanConfig, baseRel, relPath m.Path, text string) []m.EnumItem {
	lines := strings.Split(text, "\n")

	var items []m.EnumItem

	for idx, line := range lines {
		name, ok := locateDeclaration(line)
		if !ok {
			continue
		}

		if !strings.HasSuffix(name, cfg.Suffix) {
			continue
		}

		definition, endIndex, err := collectBlock(lines, idx)
		if err != nil {
			slog.Warn("enum block never closed, keeping truncated span", "path", relPath, "line", idx+1, "name", name)
		}

		items = append(items, m.EnumItem{
			Kind:       m.KindEnum,
			Name:       name,
			Module:     deriveModule(cfg, baseRel, relPath),
			Path:       relPath,
			StartLine:  idx + 1,
			Doc:        collectLeadingDoc(lines, idx),
			Definition: definition,
			Variants:   segmentVariants(lines, idx, endIndex),
		})
	}

	return items
}

// deriveModule turns a file location into its logical module path: the
// path relative to base, with the index file dropped or the extension
// stripped, joined with the scope separator.
func deriveModule(cfg ScanConfig, baseRel, relPath m.Path) string {
	rel := filepath.ToSlash(string(relPath))
	if r, err := filepath.Rel(string(baseRel), rel); err == nil && !strings.HasPrefix(r, "..") {
		rel = filepath.ToSlash(r)
	}

	parts := strings.Split(rel, "/")
	last := len(parts) - 1

	if parts[last] == cfg.IndexFile {
		parts = parts[:last]
	} else {
		parts[last] = strings.TrimSuffix(parts[last], cfg.Extension)
	}

	kept := make([]string, 0, len(parts))

	for _, part := range parts {
		if part != "" && part != "." {
			kept = append(kept, part)
		}
	}

	return strings.Join(kept, cfg.Separator)
}

func compileExcludes(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))

	for _, pattern := range patterns {
		compiled, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compile exclude pattern %q: %w", pattern, err)
		}

		globs = append(globs, compiled)
	}

	return globs, nil
}
