package linalg

import "errors"

// Domain errors for matrix operations.
var (
	// ErrOutOfRange indicates a row or column index outside the matrix bounds.
	ErrOutOfRange = errors.New("linalg: index out of range")

	// ErrDimensionMismatch indicates operands with incompatible shapes.
	ErrDimensionMismatch = errors.New("linalg: dimension mismatch")

	// ErrSingularMatrix indicates a matrix whose determinant is exactly zero.
	ErrSingularMatrix = errors.New("linalg: singular matrix")
)
