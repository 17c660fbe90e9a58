package sim

import (
	"fmt"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/linalg"
	"github.com/san-kum/rigidsim/internal/metrics"
)

type Metric interface {
	Name() string
	Observe(s body.State, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s body.State, t float64)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(s body.State, t float64)

func (f ObserverFunc) OnStep(s body.State, t float64) { f(s, t) }

type Config struct {
	Duration      float64
	Steps         int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{Duration: 1.0, Steps: 100, ValidateState: true}
}

// Dt returns the fixed timestep.
func (c Config) Dt() float64 { return c.Duration / float64(c.Steps) }

// Result holds a run. States and Times start with the initial state;
// Snapshots holds the point cloud after each step only.
type Result struct {
	States     []body.State
	Snapshots  []*linalg.Matrix
	Times      []float64
	Metrics    map[string]float64
	StepsTaken int
}

// Final returns the last recorded state.
func (r *Result) Final() body.State {
	return r.States[len(r.States)-1]
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}

// DefaultMetrics returns a fresh set of the standard run metrics.
func DefaultMetrics() []Metric {
	return []Metric{
		metrics.NewEnergy(),
		metrics.NewEnergyDrift(),
		metrics.NewDisplacement(),
		metrics.NewPeakSpin(),
	}
}
