package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackzampolin/echo/internal/soundscape"
)

// Orchestrator drives the per-unit loop: analyze, normalize, merge. Units
// are processed strictly in ascending order; the merger's carry state has
// a single linear history and recency is defined by unit order.
type Orchestrator struct {
	runner *Runner
	logger *slog.Logger
}

// NewOrchestrator creates an orchestrator around a runner.
func NewOrchestrator(runner *Runner, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{runner: runner, logger: logger}
}

// RunPages analyzes every page in order and returns the merged sequence:
// exactly one result per page, in input order, each tagged with its 1-based
// page. A page whose analysis fails becomes a raw fallback entry and the
// run continues; only context cancellation aborts the whole run.
func (o *Orchestrator) RunPages(ctx context.Context, runID string, pages []string) ([]soundscape.PageResult, error) {
	merger := soundscape.NewMerger()
	results := make([]soundscape.PageResult, 0, len(pages))

	for i, text := range pages {
		page := i + 1

		raw, _, err := o.runner.Analyze(ctx, text, Meta{RunID: runID, Page: page})
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			o.logger.Warn("page analysis failed", "page", page, "error", err)
			// Contain the failure in this page's record; raw carries the
			// failure reason so it stays observable downstream.
			raw = fmt.Sprintf("analysis failed: %v", err)
		}

		merged := merger.Merge(soundscape.Normalize(raw, page))
		if verr := soundscape.ValidateResult(merged); verr != nil {
			o.logger.Warn("merged record failed schema validation", "page", page, "error", verr)
		}
		results = append(results, merged)

		o.logger.Info("page analyzed", "page", page, "parsed", !merged.Unparsed())
	}

	return results, nil
}

// RunText analyzes a single text unit. No merging applies and no page tag
// is set; a client failure is returned as an error because there is no
// later unit to continue to.
func (o *Orchestrator) RunText(ctx context.Context, runID string, text string) (soundscape.PageResult, error) {
	raw, _, err := o.runner.Analyze(ctx, text, Meta{RunID: runID})
	if err != nil {
		return soundscape.PageResult{}, fmt.Errorf("analysis failed: %w", err)
	}
	return soundscape.Normalize(raw, 0), nil
}
