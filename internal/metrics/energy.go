package metrics

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/rigidsim/internal/body"
)

// KineticEnergy returns ½m|v|² + ½ω·Iω.
func KineticEnergy(s body.State) float64 {
	e := 0.5 * s.Mass * s.Velocity.Dot(s.Velocity)
	if s.Inertia != nil {
		iw, err := s.Inertia.MulVec(s.AngularVelocity)
		if err == nil {
			e += 0.5 * s.AngularVelocity.Dot(iw)
		}
	}
	return e
}

// Energy reports the mean kinetic energy over the observed states.
type Energy struct {
	name    string
	samples []float64
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(s body.State, t float64) {
	e.samples = append(e.samples, KineticEnergy(s))
}

func (e *Energy) Value() float64 {
	if len(e.samples) == 0 {
		return 0
	}
	return stat.Mean(e.samples, nil)
}

func (e *Energy) Reset() {
	e.samples = e.samples[:0]
}

// EnergyDrift reports the relative change of kinetic energy between the
// first and the latest observed state.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	currentEnergy float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (d *EnergyDrift) Name() string { return d.name }

func (d *EnergyDrift) Observe(s body.State, t float64) {
	e := KineticEnergy(s)
	if d.samples == 0 {
		d.initialEnergy = e
	}
	d.currentEnergy = e
	d.samples++
}

func (d *EnergyDrift) Value() float64 {
	if d.samples == 0 || d.initialEnergy == 0 {
		return 0
	}
	return math.Abs(d.currentEnergy-d.initialEnergy) / math.Abs(d.initialEnergy)
}

func (d *EnergyDrift) Reset() {
	d.initialEnergy, d.currentEnergy, d.samples = 0, 0, 0
}
