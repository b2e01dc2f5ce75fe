// Package controller provides output adapters for displaying audit results.
package controller

import (
	"context"

	m "tagsweep.dev/pkg/tagsweep/internal/model"
)

// UI defines the interface for displaying scan and audit summaries.
// Implementations can use different output methods.
type UI interface {
	DisplayInventorySummary(ctx context.Context, inv m.Inventory) error
	DisplayUsageSummary(ctx context.Context, records []m.UsageRecord) error
	DisplayMatchingInfo(ctx context.Context, variants, workers int)
}
