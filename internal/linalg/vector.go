package linalg

import (
	"fmt"
	"math"
)

// Vec3 is a 3-component vector. It is a value type: every operation returns
// a new vector and never modifies its receiver.
type Vec3 struct {
	X, Y, Z float64
}

// V is shorthand for Vec3{x, y, z}.
func V(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }

// Zero returns the null vector.
func Zero() Vec3 { return Vec3{} }

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Mul multiplies componentwise.
func (v Vec3) Mul(o Vec3) Vec3      { return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Div divides every component by s. The caller must ensure s != 0; the
// result is IEEE Inf/NaN otherwise.
func (v Vec3) Div(s float64) Vec3 { return Vec3{v.X / s, v.Y / s, v.Z / s} }

func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{v.Y*o.Z - v.Z*o.Y, v.Z*o.X - v.X*o.Z, v.X*o.Y - v.Y*o.X}
}

// Norm returns the Euclidean length.
func (v Vec3) Norm() float64 { return math.Sqrt(v.Dot(v)) }

// Array returns the components as X, Y, Z.
func (v Vec3) Array() [3]float64 { return [3]float64{v.X, v.Y, v.Z} }

func (v Vec3) String() string {
	return fmt.Sprintf("X: %g, Y: %g, Z: %g", v.X, v.Y, v.Z)
}

// Cross returns u × v.
func Cross(u, v Vec3) Vec3 { return u.Cross(v) }

// Distance returns the componentwise absolute difference |u - v|. It is not
// a norm: each axis keeps its own displacement magnitude.
func Distance(u, v Vec3) Vec3 {
	return Vec3{math.Abs(u.X - v.X), math.Abs(u.Y - v.Y), math.Abs(u.Z - v.Z)}
}

// Moment returns the torque of force f applied at point a about pivot g,
// (a - g) × f.
func Moment(f, a, g Vec3) Vec3 {
	return a.Sub(g).Cross(f)
}

// Sum adds all vectors, in order.
func Sum(vs ...Vec3) Vec3 {
	var s Vec3
	for _, v := range vs {
		s = s.Add(v)
	}
	return s
}
