package linalg

import "fmt"

// Transpose returns the c×r matrix with rows and columns swapped.
func Transpose(m *Matrix) *Matrix {
	t := alloc(m.cols, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			t.set(j, i, m.at(i, j))
		}
	}
	return t
}

// SubMatrix returns m without the given row and column. The remaining
// entries keep their relative order.
func SubMatrix(m *Matrix, row, col int) *Matrix {
	sub := alloc(m.rows-1, m.cols-1)
	si := 0
	for i := 0; i < m.rows; i++ {
		if i == row {
			continue
		}
		sj := 0
		for j := 0; j < m.cols; j++ {
			if j == col {
				continue
			}
			sub.set(si, sj, m.at(i, j))
			sj++
		}
		si++
	}
	return sub
}

// sign returns (-1)^(i+j).
func sign(i, j int) float64 {
	if (i+j)%2 == 0 {
		return 1
	}
	return -1
}

// Determinant computes det(m) by Laplace expansion along the first row.
// m must be square; Determinant panics otherwise.
func Determinant(m *Matrix) float64 {
	if m.rows != m.cols {
		panic(fmt.Sprintf("linalg: determinant of non-square %dx%d matrix", m.rows, m.cols))
	}
	return laplace(m)
}

func laplace(m *Matrix) float64 {
	if m.rows == 1 {
		return m.at(0, 0)
	}
	var det float64
	for j := 0; j < m.cols; j++ {
		det += sign(0, j) * m.at(0, j) * laplace(SubMatrix(m, 0, j))
	}
	return det
}

// Cofactor returns the matrix of cofactors (-1)^(i+j)·det(SubMatrix(m,i,j)).
// A non-square matrix yields ErrDimensionMismatch and a matrix whose
// determinant is exactly zero yields ErrSingularMatrix.
func Cofactor(m *Matrix) (*Matrix, error) {
	if !m.IsSquare() {
		return nil, fmt.Errorf("cofactor of %dx%d matrix: %w", m.rows, m.cols, ErrDimensionMismatch)
	}
	if Determinant(m) == 0 {
		return nil, fmt.Errorf("cofactor of %dx%d matrix: %w", m.rows, m.cols, ErrSingularMatrix)
	}
	return cofactor(m), nil
}

func cofactor(m *Matrix) *Matrix {
	c := alloc(m.rows, m.cols)
	if m.rows == 1 {
		c.set(0, 0, 1)
		return c
	}
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			c.set(i, j, sign(i, j)*laplace(SubMatrix(m, i, j)))
		}
	}
	return c
}

// Inverse returns Transpose(Cofactor(m))·(1/det(m)).
func Inverse(m *Matrix) (*Matrix, error) {
	com, err := Cofactor(m)
	if err != nil {
		return nil, err
	}
	return Transpose(com).Scale(1 / Determinant(m)), nil
}
