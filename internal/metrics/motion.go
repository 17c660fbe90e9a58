package metrics

import (
	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/linalg"
)

// Displacement reports how far the centre of mass moved from the first
// observed state.
type Displacement struct {
	name    string
	origin  linalg.Vec3
	current linalg.Vec3
	samples int
}

func NewDisplacement() *Displacement {
	return &Displacement{name: "displacement"}
}

func (d *Displacement) Name() string { return d.name }

func (d *Displacement) Observe(s body.State, t float64) {
	if d.samples == 0 {
		d.origin = s.Centre
	}
	d.current = s.Centre
	d.samples++
}

func (d *Displacement) Value() float64 {
	return d.current.Sub(d.origin).Norm()
}

func (d *Displacement) Reset() {
	d.origin, d.current, d.samples = linalg.Vec3{}, linalg.Vec3{}, 0
}

// PeakSpin reports the largest angular speed observed.
type PeakSpin struct {
	name string
	peak float64
}

func NewPeakSpin() *PeakSpin {
	return &PeakSpin{name: "peak_spin"}
}

func (p *PeakSpin) Name() string { return p.name }

func (p *PeakSpin) Observe(s body.State, t float64) {
	if w := s.AngularVelocity.Norm(); w > p.peak {
		p.peak = w
	}
}

func (p *PeakSpin) Value() float64 { return p.peak }

func (p *PeakSpin) Reset() { p.peak = 0 }
