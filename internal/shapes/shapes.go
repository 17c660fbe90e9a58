// Package shapes generates point clouds for primitive solids. Every
// generator returns a 3×N matrix with one column per material point.
package shapes

import (
	"math"

	"github.com/san-kum/rigidsim/internal/linalg"
)

// Box fills the box spanned by origin and origin+size with an n×n×n grid.
func Box(n int, size, origin linalg.Vec3) *linalg.Matrix {
	if n < 1 {
		n = 1
	}
	step := linalg.Zero()
	if n > 1 {
		step = size.Div(float64(n - 1))
	}
	pts := make([]linalg.Vec3, 0, n*n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				offset := linalg.V(float64(i), float64(j), float64(k)).Mul(step)
				pts = append(pts, origin.Add(offset))
			}
		}
	}
	return linalg.Columns(pts)
}

// Disc fills a disc of the given radius in the plane z = centre.Z. Ring k
// of rings carries 6k points; the centre is ring 0.
func Disc(radius float64, centre linalg.Vec3, rings int) *linalg.Matrix {
	return linalg.Columns(discPoints(radius, centre, rings))
}

// Cylinder stacks layers discs from base up to base.Z+height.
func Cylinder(radius, height float64, base linalg.Vec3, rings, layers int) *linalg.Matrix {
	if layers < 1 {
		layers = 1
	}
	var pts []linalg.Vec3
	for l := 0; l < layers; l++ {
		z := 0.0
		if layers > 1 {
			z = height * float64(l) / float64(layers-1)
		}
		pts = append(pts, discPoints(radius, base.Add(linalg.V(0, 0, z)), rings)...)
	}
	return linalg.Columns(pts)
}

// DiscSize returns the number of points Disc produces.
func DiscSize(rings int) int {
	if rings < 1 {
		return 1
	}
	return 1 + 3*rings*(rings-1)
}

func discPoints(radius float64, centre linalg.Vec3, rings int) []linalg.Vec3 {
	pts := make([]linalg.Vec3, 0, DiscSize(rings))
	pts = append(pts, centre)
	for k := 1; k < rings; k++ {
		r := radius * float64(k) / float64(rings-1)
		count := 6 * k
		for p := 0; p < count; p++ {
			a := wrap(2 * math.Pi * float64(p) / float64(count))
			pts = append(pts, centre.Add(linalg.V(
				r*linalg.Cosine(a, linalg.DefaultTerms),
				r*linalg.Sine(a, linalg.DefaultTerms),
				0,
			)))
		}
	}
	return pts
}

// wrap maps x into [-π, π], where the truncated series are accurate.
func wrap(x float64) float64 {
	for x > math.Pi {
		x -= 2 * math.Pi
	}
	for x < -math.Pi {
		x += 2 * math.Pi
	}
	return x
}
