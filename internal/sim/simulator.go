package sim

import (
	"context"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/linalg"
)

type Simulator struct {
	integrator *body.Integrator
	metrics    []Metric
	observers  []Observer
	logger     *zap.Logger
}

// New returns a simulator driving integrator. A nil logger discards logs.
func New(integrator *body.Integrator, logger *zap.Logger) *Simulator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Simulator{
		integrator: integrator,
		metrics:    make([]Metric, 0),
		observers:  make([]Observer, 0),
		logger:     logger,
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run replays cfg.Steps integrator steps from x0 under loads. The context
// is checked between steps; on cancellation the partial result is
// returned together with ctx.Err().
func (s *Simulator) Run(ctx context.Context, x0 body.State, loads body.Loads, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}
	if err := x0.Validate(); err != nil {
		return nil, err
	}

	dt := cfg.Dt()
	result := &Result{
		States:    make([]body.State, 0, cfg.Steps+1),
		Snapshots: make([]*linalg.Matrix, 0, cfg.Steps),
		Times:     make([]float64, 0, cfg.Steps+1),
		Metrics:   make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	log := s.logger.With(zap.Int("steps", cfg.Steps), zap.Float64("dt", dt))
	log.Debug("run started", zap.Int("points", x0.Cloud.Cols()), zap.Float64("mass", x0.Mass))

	s.record(result, x0.Clone(), 0)

	_, err := s.integrator.Replay(x0, loads, dt, cfg.Steps, func(i int, st body.State) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		t := float64(i+1) * dt
		if cfg.ValidateState && !isFinite(st) {
			return SimError{Time: t, Step: i, Message: "invalid state (NaN/Inf)"}
		}

		result.StepsTaken++
		result.Snapshots = append(result.Snapshots, st.Cloud.Clone())
		s.record(result, st, t)
		return nil
	})

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	if err != nil {
		log.Warn("run stopped", zap.Int("taken", result.StepsTaken), zap.Error(err))
		return result, err
	}
	log.Debug("run completed", zap.Any("metrics", result.Metrics))
	return result, nil
}

func (s *Simulator) record(r *Result, st body.State, t float64) {
	for _, m := range s.metrics {
		m.Observe(st, t)
	}
	for _, obs := range s.observers {
		obs.OnStep(st, t)
	}
	r.States = append(r.States, st)
	r.Times = append(r.Times, t)
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if cfg.Steps < 1 {
		return fmt.Errorf("steps must be at least 1, got %d", cfg.Steps)
	}
	return nil
}

func isFinite(s body.State) bool {
	for _, v := range []linalg.Vec3{s.Centre, s.Velocity, s.Angle, s.AngularVelocity} {
		for _, c := range v.Array() {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return false
			}
		}
	}
	return true
}
