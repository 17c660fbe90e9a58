package body

import (
	"fmt"

	"github.com/san-kum/rigidsim/internal/inertia"
	"github.com/san-kum/rigidsim/internal/linalg"
)

// Translate advances the centre of mass g and velocity v of a body of the
// given mass under net force f over timestep h. The velocity is updated
// first and the new velocity moves the centre.
func Translate(mass, h float64, f, g, v linalg.Vec3) (linalg.Vec3, linalg.Vec3) {
	accel := f.Div(mass)
	newV := accel.Scale(h).Add(v)
	newG := newV.Scale(h).Add(g)
	return newG, newV
}

// Rotate advances the angles teta and angular velocity tetap under forces
// f applied at points a, taking moments about g. i is the 3×3 inertia
// tensor. f and a must have the same length.
func Rotate(h float64, f, a []linalg.Vec3, g linalg.Vec3, i *linalg.Matrix, teta, tetap linalg.Vec3) (linalg.Vec3, linalg.Vec3, error) {
	if len(f) != len(a) {
		return linalg.Vec3{}, linalg.Vec3{}, fmt.Errorf("%d forces and %d application points: %w", len(f), len(a), ErrInvalidArgument)
	}

	var torque linalg.Vec3
	for k := range f {
		torque = torque.Add(linalg.Moment(f[k], a[k], g))
	}

	inv, err := linalg.Inverse(i)
	if err != nil {
		return linalg.Vec3{}, linalg.Vec3{}, err
	}
	alpha, err := inv.MulVec(torque)
	if err != nil {
		return linalg.Vec3{}, linalg.Vec3{}, err
	}

	newTetap := tetap.Add(alpha.Scale(h))
	newTeta := teta.Add(newTetap.Scale(h))
	return newTeta, newTetap, nil
}

// Transform applies r·(p − pivot) + pivot to every column p of cloud.
func Transform(cloud, r *linalg.Matrix, pivot linalg.Vec3) (*linalg.Matrix, error) {
	out := linalg.NewMatrix(cloud.Rows(), cloud.Cols())
	for j := 0; j < cloud.Cols(); j++ {
		p, err := cloud.Column(j)
		if err != nil {
			return nil, err
		}
		q, err := r.MulVec(p.Sub(pivot))
		if err != nil {
			return nil, err
		}
		q = q.Add(pivot)
		_ = out.Set(0, j, q.X)
		_ = out.Set(1, j, q.Y)
		_ = out.Set(2, j, q.Z)
	}
	return out, nil
}

// Integrator advances rigid-body states with a fixed timestep.
type Integrator struct {
	terms int
}

// Option configures an Integrator.
type Option func(*Integrator)

// WithTerms sets the number of Taylor terms used for the rotation sine and
// cosine. Non-positive values are ignored.
func WithTerms(n int) Option {
	return func(in *Integrator) {
		if n > 0 {
			in.terms = n
		}
	}
}

func New(opts ...Option) *Integrator {
	in := &Integrator{terms: linalg.DefaultTerms}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Terms returns the configured series length.
func (in *Integrator) Terms() int { return in.terms }

// Step advances s by h under loads. A state that fails Validate is
// rejected before any work. On failure the returned state is the zero
// State; s itself is never modified.
func (in *Integrator) Step(s State, loads Loads, h float64) (State, error) {
	if err := s.Validate(); err != nil {
		return State{}, err
	}
	newG, newV := Translate(s.Mass, h, loads.NetForce(), s.Centre, s.Velocity)

	forces, points := loads.Flatten()
	newTeta, newTetap, err := Rotate(h, forces, points, s.Centre, s.Inertia, s.Angle, s.AngularVelocity)
	if err != nil {
		return State{}, err
	}

	newI, err := inertia.Relocate(s.Inertia, s.Mass, s.Centre, newG)
	if err != nil {
		return State{}, err
	}

	r := linalg.Rotation(newTeta, in.terms)
	newW, err := Transform(s.Cloud, r, newG)
	if err != nil {
		return State{}, err
	}

	return State{
		Cloud:           newW,
		Mass:            s.Mass,
		Inertia:         newI,
		Centre:          newG,
		Velocity:        newV,
		Angle:           newTeta,
		AngularVelocity: newTetap,
	}, nil
}

// Replay runs steps sequential calls to Step, feeding each output into the
// next call, and hands every new state to fn in order. It returns the last
// state. A failing step is reported as a *StepError; an error from fn
// stops the replay and is returned as is.
func (in *Integrator) Replay(s State, loads Loads, h float64, steps int, fn func(i int, s State) error) (State, error) {
	for i := 0; i < steps; i++ {
		next, err := in.Step(s, loads, h)
		if err != nil {
			return s, &StepError{Step: i, Wrapped: err}
		}
		s = next
		if fn != nil {
			if err := fn(i, s); err != nil {
				return s, err
			}
		}
	}
	return s, nil
}

// Trace replays steps steps of length totalTime/steps and returns a copy of
// the point cloud after each one, in call order.
func (in *Integrator) Trace(s State, loads Loads, totalTime float64, steps int) ([]*linalg.Matrix, error) {
	if steps < 1 {
		return nil, fmt.Errorf("step count %d: %w", steps, ErrInvalidArgument)
	}
	h := totalTime / float64(steps)
	snaps := make([]*linalg.Matrix, 0, steps)
	_, err := in.Replay(s, loads, h, steps, func(_ int, st State) error {
		snaps = append(snaps, st.Cloud.Clone())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snaps, nil
}
