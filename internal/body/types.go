package body

import (
	"fmt"

	"github.com/san-kum/rigidsim/internal/inertia"
	"github.com/san-kum/rigidsim/internal/linalg"
)

// State is the full kinematic state of a rigid body.
type State struct {
	Cloud           *linalg.Matrix // 3×N, one column per material point
	Mass            float64
	Inertia         *linalg.Matrix // 3×3
	Centre          linalg.Vec3
	Velocity        linalg.Vec3
	Angle           linalg.Vec3
	AngularVelocity linalg.Vec3
}

// NewState builds a resting state from a point cloud, deriving the centre
// of mass and the inertia tensor from its points.
func NewState(cloud *linalg.Matrix, mass float64) (State, error) {
	g, ten, err := inertia.FromCloud(cloud, mass)
	if err != nil {
		return State{}, err
	}
	return State{
		Cloud:   cloud.Clone(),
		Mass:    mass,
		Inertia: ten,
		Centre:  g,
	}, nil
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	c := s
	if s.Cloud != nil {
		c.Cloud = s.Cloud.Clone()
	}
	if s.Inertia != nil {
		c.Inertia = s.Inertia.Clone()
	}
	return c
}

// Validate checks the shapes the integrator relies on.
func (s State) Validate() error {
	if s.Cloud == nil || s.Cloud.Rows() != 3 {
		return fmt.Errorf("cloud must be 3xN: %w", ErrInvalidArgument)
	}
	if s.Inertia == nil {
		return fmt.Errorf("missing inertia tensor: %w", ErrInvalidArgument)
	}
	if r, c := s.Inertia.Dims(); r != 3 || c != 3 {
		return fmt.Errorf("inertia tensor is %dx%d: %w", r, c, inertia.ErrInvalidDimension)
	}
	if s.Mass <= 0 {
		return fmt.Errorf("mass must be positive, got %g: %w", s.Mass, ErrInvalidArgument)
	}
	return nil
}

// Loads groups forces with their application points. Forces[g][k] acts at
// Points[g][k]; each group is one source such as gravity or a push.
type Loads struct {
	Forces [][]linalg.Vec3
	Points [][]linalg.Vec3
}

// Add appends a group and returns the extended loads.
func (l Loads) Add(forces, points []linalg.Vec3) Loads {
	l.Forces = append(l.Forces[:len(l.Forces):len(l.Forces)], forces)
	l.Points = append(l.Points[:len(l.Points):len(l.Points)], points)
	return l
}

// NetForce sums every force of every group.
func (l Loads) NetForce() linalg.Vec3 {
	var f linalg.Vec3
	for _, group := range l.Forces {
		f = f.Add(linalg.Sum(group...))
	}
	return f
}

// Flatten concatenates the groups into parallel force and point slices,
// preserving order.
func (l Loads) Flatten() ([]linalg.Vec3, []linalg.Vec3) {
	var forces, points []linalg.Vec3
	for _, group := range l.Forces {
		forces = append(forces, group...)
	}
	for _, group := range l.Points {
		points = append(points, group...)
	}
	return forces, points
}
