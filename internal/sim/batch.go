package sim

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/san-kum/rigidsim/internal/body"
)

// Job is one independent run of a batch.
type Job struct {
	Name   string
	State  body.State
	Loads  body.Loads
	Config Config
	Terms  int
}

// Batch runs independent jobs concurrently. Each job is still a serial
// replay; only distinct jobs overlap.
type Batch struct {
	logger  *zap.Logger
	limit   int
	metrics func() []Metric
}

// NewBatch returns a batch running at most limit jobs at once; limit < 1
// means no limit. Every job gets its own metrics from DefaultMetrics.
func NewBatch(logger *zap.Logger, limit int) *Batch {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Batch{logger: logger, limit: limit, metrics: DefaultMetrics}
}

// Run returns the results in job order. The first failing job cancels the
// others.
func (b *Batch) Run(ctx context.Context, jobs []Job) ([]*Result, error) {
	results := make([]*Result, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	if b.limit > 0 {
		g.SetLimit(b.limit)
	}

	for i, job := range jobs {
		g.Go(func() error {
			s := New(body.New(body.WithTerms(job.Terms)), b.logger.With(zap.String("job", job.Name)))
			for _, m := range b.metrics() {
				s.AddMetric(m)
			}

			res, err := s.Run(ctx, job.State, job.Loads, job.Config)
			if err != nil {
				return fmt.Errorf("%s: %w", job.Name, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
