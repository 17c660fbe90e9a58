// Package inertia computes mass properties of discretized rigid bodies.
package inertia

import (
	"errors"
	"fmt"

	"github.com/san-kum/rigidsim/internal/linalg"
)

// ErrInvalidDimension indicates an inertia tensor that is not 3×3.
var ErrInvalidDimension = errors.New("inertia: tensor must be 3x3")

// Centre returns the arithmetic mean of points. points must not be empty.
func Centre(points []linalg.Vec3) linalg.Vec3 {
	return linalg.Sum(points...).Div(float64(len(points)))
}

// Tensor returns the inertia tensor of points about the origin of their
// coordinates, each point carrying totalMass/len(points).
func Tensor(points []linalg.Vec3, totalMass float64) *linalg.Matrix {
	m := totalMass / float64(len(points))
	var a, b, c, d, e, f float64
	for _, p := range points {
		a += m * (p.Y*p.Y + p.Z*p.Z)
		b += m * (p.X*p.X + p.Z*p.Z)
		c += m * (p.X*p.X + p.Y*p.Y)
		d += m * p.Y * p.Z
		e += m * p.X * p.Z
		f += m * p.X * p.Y
	}
	return linalg.NewMatrixFrom([][]float64{
		{a, -f, -e},
		{-f, b, -d},
		{-e, -d, c},
	})
}

// Relocate moves tensor i of a body of the given mass from reference point
// o to reference point a using the parallel-axis theorem. The displacement
// is linalg.Distance(o, a).
func Relocate(i *linalg.Matrix, mass float64, o, a linalg.Vec3) (*linalg.Matrix, error) {
	if r, c := i.Dims(); r != 3 || c != 3 {
		return nil, fmt.Errorf("relocate %dx%d tensor: %w", r, c, ErrInvalidDimension)
	}
	d := linalg.Distance(o, a)
	shift := linalg.NewMatrixFrom([][]float64{
		{mass * (d.Y*d.Y + d.Z*d.Z), -mass * d.X * d.Y, -mass * d.X * d.Z},
		{-mass * d.X * d.Y, mass * (d.X*d.X + d.Z*d.Z), -mass * d.Y * d.Z},
		{-mass * d.X * d.Z, -mass * d.Y * d.Z, mass * (d.X*d.X + d.Y*d.Y)},
	})
	return i.Add(shift)
}

// Points returns the columns of a 3×N cloud.
func Points(cloud *linalg.Matrix) ([]linalg.Vec3, error) {
	if cloud.Rows() != 3 {
		return nil, fmt.Errorf("cloud has %d rows: %w", cloud.Rows(), linalg.ErrDimensionMismatch)
	}
	pts := make([]linalg.Vec3, cloud.Cols())
	for j := range pts {
		p, err := cloud.Column(j)
		if err != nil {
			return nil, err
		}
		pts[j] = p
	}
	return pts, nil
}

// FromCloud returns the centre of mass and inertia tensor of a 3×N cloud of
// the given total mass.
func FromCloud(cloud *linalg.Matrix, mass float64) (linalg.Vec3, *linalg.Matrix, error) {
	pts, err := Points(cloud)
	if err != nil {
		return linalg.Vec3{}, nil, err
	}
	return Centre(pts), Tensor(pts, mass), nil
}
