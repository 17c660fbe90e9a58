// Package linalg provides the small dense linear-algebra kernel used by the
// rigid-body integrator.
//
//   - [Vec3]: immutable 3-component vector with cross product and moments
//   - [Matrix]: owned, row-major, bounds-checked dense matrix
//   - [Determinant], [Cofactor], [Transpose], [Inverse]: recursive
//     cofactor-expansion algebra
//   - [Sine], [Cosine]: truncated Taylor series used to build rotations
//
// Determinant and inverse use Laplace expansion, which is O(n!). The kernel
// is only meant for the 3×3 and 4×4 matrices of rigid-body mechanics.
//
// # Example
//
//	m := linalg.NewMatrixFrom([][]float64{{1, -1, 2}, {1, 6, 1}, {2, 0, -1}})
//	inv, err := linalg.Inverse(m)
//	if errors.Is(err, linalg.ErrSingularMatrix) {
//	    // no inverse
//	}
package linalg
