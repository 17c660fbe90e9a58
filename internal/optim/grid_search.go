// Package optim sweeps scenario parameters over a grid and picks the
// combination that minimises a run metric.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/rigidsim/internal/sim"
)

// ErrUnknownMetric reports a metric name no run produces.
var ErrUnknownMetric = errors.New("optim: unknown metric")

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("%d parameters but %d ranges", len(params), len(ranges))
	}
	for i, r := range ranges {
		if len(r) == 0 {
			return nil, fmt.Errorf("parameter %s has no values", params[i])
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges}, nil
}

// ParseParam parses "name=v1,v2,..." into a parameter name and its values.
func ParseParam(s string) (string, []float64, error) {
	name, list, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return "", nil, fmt.Errorf("parameter %q: want name=v1,v2,...", s)
	}
	var vals []float64
	for _, field := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return "", nil, fmt.Errorf("parameter %s: %w", name, err)
		}
		vals = append(vals, v)
	}
	return name, vals, nil
}

// Points returns every combination of the grid, the last parameter varying
// fastest.
func (g *GridSearch) Points() []map[string]float64 {
	points := []map[string]float64{{}}
	for i, name := range g.paramNames {
		next := make([]map[string]float64, 0, len(points)*len(g.ranges[i]))
		for _, p := range points {
			for _, v := range g.ranges[i] {
				q := make(map[string]float64, len(p)+1)
				for k, pv := range p {
					q[k] = pv
				}
				q[name] = v
				next = append(next, q)
			}
		}
		points = next
	}
	return points
}

// Trial is one evaluated grid point.
type Trial struct {
	Params map[string]float64
	Value  float64
}

// Search builds a job for every grid point, runs them through batch and
// returns the trials in grid order together with the index of the one with
// the smallest value of metric. The metric name is checked against
// sim.DefaultMetrics before any job is built.
func (g *GridSearch) Search(
	ctx context.Context,
	batch *sim.Batch,
	build func(params map[string]float64) (sim.Job, error),
	metricName string,
) ([]Trial, int, error) {
	if !knownMetric(metricName) {
		return nil, -1, fmt.Errorf("%q: %w", metricName, ErrUnknownMetric)
	}

	points := g.Points()
	jobs := make([]sim.Job, len(points))
	for i, p := range points {
		job, err := build(p)
		if err != nil {
			return nil, -1, fmt.Errorf("grid point %v: %w", p, err)
		}
		jobs[i] = job
	}

	results, err := batch.Run(ctx, jobs)
	if err != nil {
		return nil, -1, err
	}

	trials := make([]Trial, len(points))
	best, bestVal := -1, math.Inf(1)
	for i, res := range results {
		val, ok := res.Metrics[metricName]
		if !ok {
			return nil, -1, fmt.Errorf("%q missing from %s: %w", metricName, jobs[i].Name, ErrUnknownMetric)
		}
		trials[i] = Trial{Params: points[i], Value: val}
		if val < bestVal {
			best, bestVal = i, val
		}
	}
	return trials, best, nil
}

func knownMetric(name string) bool {
	for _, m := range sim.DefaultMetrics() {
		if m.Name() == name {
			return true
		}
	}
	return false
}
