package enrich

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spotsheet/spotsheet/internal/model"
	"github.com/spotsheet/spotsheet/internal/table"
)

// Stats tracks the running counts of an enrichment run.
type Stats struct {
	Updated int
	Failed  int
	Skipped int
}

// Progress is invoked after each row, with the row's final state and the
// running counts so far.
type Progress func(index int, row model.Row, stats Stats)

// Runner drives the sequential enrichment loop: one request per row with a
// non-empty URL, merging returned fields into the row only when present.
// One failed row never halts the loop.
type Runner struct {
	source   Source
	progress Progress
}

// NewRunner creates a Runner over the given source. progress may be nil.
func NewRunner(source Source, progress Progress) *Runner {
	return &Runner{source: source, progress: progress}
}

// Run enriches every row of the table in place, strictly in order. It
// returns the final counts; the only error is context cancellation.
func (r *Runner) Run(ctx context.Context, t *table.Table) (Stats, error) {
	runID := uuid.New().String()
	log := zap.L().With(zap.String("run_id", runID))
	log.Info("enrichment run starting", zap.Int("rows", t.Len()))

	var stats Stats
	for i := 0; i < t.Len(); i++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		row, err := t.Row(i)
		if err != nil {
			return stats, err
		}

		if strings.TrimSpace(row.URL) == "" {
			stats.Skipped++
			r.report(i, row, stats)
			continue
		}

		filled, err := r.source.Fill(ctx, []string{row.URL})
		switch {
		case err != nil:
			stats.Failed++
			log.Warn("row enrichment failed",
				zap.Int("row", i),
				zap.String("url", row.URL),
				zap.Error(err),
			)
		case len(filled) == 0 || row.MergeFrom(filled[0]) == 0:
			// A response with no usable fields counts as a failure, but the
			// row's existing values stay untouched.
			stats.Failed++
		default:
			stats.Updated++
			if err := t.Replace(i, row); err != nil {
				return stats, err
			}
		}

		r.report(i, row, stats)
	}

	log.Info("enrichment run complete",
		zap.Int("updated", stats.Updated),
		zap.Int("failed", stats.Failed),
		zap.Int("skipped", stats.Skipped),
	)
	return stats, nil
}

func (r *Runner) report(i int, row model.Row, stats Stats) {
	if r.progress != nil {
		r.progress(i, row, stats)
	}
}
