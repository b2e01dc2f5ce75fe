package domain

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"tagsweep.dev/pkg/tagsweep/internal/adapter"
	"tagsweep.dev/pkg/tagsweep/internal/controller"
	m "tagsweep.dev/pkg/tagsweep/internal/model"
)

// ScanArgs contains the arguments for building the inventory.
type ScanArgs struct {
	Scan    ScanConfig
	Reports m.Path
	Format  adapter.Format
}

// AuditArgs contains the arguments for the full two-phase audit.
type AuditArgs struct {
	ScanArgs

	Parallel      int
	SearchTimeout time.Duration
}

// ViewArgs contains the arguments for rendering persisted artifacts.
type ViewArgs struct {
	Reports m.Path
	Format  adapter.Format
}

// Workflow drives the extraction and usage-matching pipeline end to end.
type Workflow interface {
	Scan(ctx context.Context, args ScanArgs) error
	Audit(ctx context.Context, args AuditArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.ReportStore
	controller.UI
	Extractor
	Matcher
}

// NewWorkflow creates a Workflow instance with the provided dependencies.
func NewWorkflow(
	store adapter.ReportStore,
	ui controller.UI,
	extractor Extractor,
	matcher Matcher,
) Workflow {
	return &workflow{
		ReportStore: store,
		UI:          ui,
		Extractor:   extractor,
		Matcher:     matcher,
	}
}

// Scan runs phase one only: extract the inventory, persist it, and show a
// per-file summary.
func (w *workflow) Scan(ctx context.Context, args ScanArgs) error {
	inventory, err := w.extractAndSave(ctx, args)
	if err != nil {
		return err
	}

	return w.DisplayInventorySummary(ctx, inventory)
}

// Audit runs both phases sequentially. Extraction fully completes and the
// inventory is persisted before any search starts; if matching fails the
// usage artifact is not written at all.
func (w *workflow) Audit(ctx context.Context, args AuditArgs) error {
	inventory, err := w.extractAndSave(ctx, args.ScanArgs)
	if err != nil {
		return err
	}

	w.DisplayMatchingInfo(ctx, inventory.VariantCount(), max(args.Parallel, 1))

	records, err := w.Match(ctx, inventory, MatchConfig{
		Root:        args.Scan.Root,
		Separator:   args.Scan.Separator,
		ExcludeDirs: usageExcludeDirs(args.Scan.Root, args.Reports),
		Parallel:    args.Parallel,
		Timeout:     args.SearchTimeout,
	})
	if err != nil {
		slog.Error("usage matching aborted", "error", err)
		return fmt.Errorf("match usage: %w", err)
	}

	if err := w.SaveUsage(args.Reports, args.Format, records); err != nil {
		slog.Error("failed to save usage report", "reports", args.Reports, "error", err)
		return fmt.Errorf("save usage report: %w", err)
	}

	return w.DisplayUsageSummary(ctx, records)
}

// View reloads previously persisted usage records and renders the summary
// without re-scanning.
func (w *workflow) View(ctx context.Context, args ViewArgs) error {
	records, err := w.LoadUsage(args.Reports, args.Format)
	if err != nil {
		return fmt.Errorf("load usage report: %w", err)
	}

	return w.DisplayUsageSummary(ctx, records)
}

func (w *workflow) extractAndSave(ctx context.Context, args ScanArgs) (m.Inventory, error) {
	inventory, err := w.Extract(ctx, args.Scan)
	if err != nil {
		slog.Error("inventory extraction failed", "base", args.Scan.Base, "error", err)
		return m.Inventory{}, fmt.Errorf("extract inventory: %w", err)
	}

	if err := w.SaveInventory(args.Reports, args.Format, inventory); err != nil {
		slog.Error("failed to save inventory", "reports", args.Reports, "error", err)
		return m.Inventory{}, fmt.Errorf("save inventory: %w", err)
	}

	return inventory, nil
}

// usageExcludeDirs lists root-relative directories whose hits never count
// as usage: the tool's own reports directory and Cargo build output. A
// reports directory outside the root needs no entry; those matches are
// already dropped as out-of-root.
func usageExcludeDirs(root, reports m.Path) []string {
	rootAbs, rootErr := filepath.Abs(string(root))
	reportsAbs, reportsErr := filepath.Abs(string(reports))

	if rootErr == nil && reportsErr == nil {
		if rel, err := filepath.Rel(rootAbs, reportsAbs); err == nil && !strings.HasPrefix(rel, "..") {
			return []string{filepath.ToSlash(rel), "target"}
		}
	}

	return []string{"target"}
}
