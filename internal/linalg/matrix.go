package linalg

import (
	"fmt"
	"strconv"
	"strings"
)

// Matrix is a dense row-major matrix of float64 entries. A Matrix owns its
// storage: every operation that produces a matrix allocates a new one, and
// Clone is the only way to share contents.
type Matrix struct {
	rows, cols int
	data       []float64
}

// NewMatrix returns a zero-filled r×c matrix. It panics if r or c is
// smaller than 1.
func NewMatrix(r, c int) *Matrix {
	if r < 1 || c < 1 {
		panic(fmt.Sprintf("linalg: invalid matrix shape %dx%d", r, c))
	}
	return alloc(r, c)
}

// alloc skips the shape check; SubMatrix may legitimately produce 0×0.
func alloc(r, c int) *Matrix {
	return &Matrix{rows: r, cols: c, data: make([]float64, r*c)}
}

// NewMatrixFrom copies rows into a new matrix. Every row must have the
// length of the first one.
func NewMatrixFrom(rows [][]float64) *Matrix {
	if len(rows) == 0 {
		panic("linalg: no rows")
	}
	m := NewMatrix(len(rows), len(rows[0]))
	for i, row := range rows {
		if len(row) != m.cols {
			panic(fmt.Sprintf("linalg: row %d has %d entries, want %d", i, len(row), m.cols))
		}
		copy(m.data[i*m.cols:(i+1)*m.cols], row)
	}
	return m
}

// Identity returns the n×n identity matrix.
func Identity(n int) *Matrix {
	m := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}

// Columns builds a 3×N matrix whose columns are the given points.
func Columns(points []Vec3) *Matrix {
	m := NewMatrix(3, len(points))
	for j, p := range points {
		m.data[j] = p.X
		m.data[m.cols+j] = p.Y
		m.data[2*m.cols+j] = p.Z
	}
	return m
}

func (m *Matrix) Rows() int        { return m.rows }
func (m *Matrix) Cols() int        { return m.cols }
func (m *Matrix) Dims() (int, int) { return m.rows, m.cols }
func (m *Matrix) IsSquare() bool   { return m.rows == m.cols }

func (m *Matrix) at(i, j int) float64 { return m.data[i*m.cols+j] }

func (m *Matrix) set(i, j int, v float64) { m.data[i*m.cols+j] = v }

func (m *Matrix) check(i, j int) error {
	if i < 0 || i >= m.rows {
		return fmt.Errorf("row %d not in [0,%d): %w", i, m.rows, ErrOutOfRange)
	}
	if j < 0 || j >= m.cols {
		return fmt.Errorf("column %d not in [0,%d): %w", j, m.cols, ErrOutOfRange)
	}
	return nil
}

// At returns the entry at row i, column j.
func (m *Matrix) At(i, j int) (float64, error) {
	if err := m.check(i, j); err != nil {
		return 0, err
	}
	return m.at(i, j), nil
}

// Set stores v at row i, column j.
func (m *Matrix) Set(i, j int, v float64) error {
	if err := m.check(i, j); err != nil {
		return err
	}
	m.set(i, j, v)
	return nil
}

// Row returns a copy of row i.
func (m *Matrix) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.rows {
		return nil, fmt.Errorf("row %d not in [0,%d): %w", i, m.rows, ErrOutOfRange)
	}
	row := make([]float64, m.cols)
	copy(row, m.data[i*m.cols:(i+1)*m.cols])
	return row, nil
}

// Column returns column j of a 3-row matrix as a vector.
func (m *Matrix) Column(j int) (Vec3, error) {
	if m.rows != 3 {
		return Vec3{}, fmt.Errorf("column vector needs 3 rows, have %d: %w", m.rows, ErrDimensionMismatch)
	}
	if err := m.check(0, j); err != nil {
		return Vec3{}, err
	}
	return Vec3{m.at(0, j), m.at(1, j), m.at(2, j)}, nil
}

// RawRows returns a copy of the entries as a slice of rows.
func (m *Matrix) RawRows() [][]float64 {
	out := make([][]float64, m.rows)
	for i := range out {
		out[i] = make([]float64, m.cols)
		copy(out[i], m.data[i*m.cols:(i+1)*m.cols])
	}
	return out
}

// Clone returns a deep copy of m.
func (m *Matrix) Clone() *Matrix {
	c := alloc(m.rows, m.cols)
	copy(c.data, m.data)
	return c
}

// CopyFrom replaces the shape and contents of m with a copy of src.
func (m *Matrix) CopyFrom(src *Matrix) {
	m.rows, m.cols = src.rows, src.cols
	m.data = make([]float64, len(src.data))
	copy(m.data, src.data)
}

// Equal reports whether both matrices have the same shape and entries.
func (m *Matrix) Equal(o *Matrix) bool {
	if m.rows != o.rows || m.cols != o.cols {
		return false
	}
	for i := range m.data {
		if m.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

// Add returns m + o. Both operands must have the same shape.
func (m *Matrix) Add(o *Matrix) (*Matrix, error) {
	if m.rows != o.rows || m.cols != o.cols {
		return nil, fmt.Errorf("add %dx%d and %dx%d: %w", m.rows, m.cols, o.rows, o.cols, ErrDimensionMismatch)
	}
	r := alloc(m.rows, m.cols)
	for i := range m.data {
		r.data[i] = m.data[i] + o.data[i]
	}
	return r, nil
}

// Mul returns the product m·o. It requires m.Cols() == o.Rows().
func (m *Matrix) Mul(o *Matrix) (*Matrix, error) {
	if m.cols != o.rows {
		return nil, fmt.Errorf("multiply %dx%d by %dx%d: %w", m.rows, m.cols, o.rows, o.cols, ErrDimensionMismatch)
	}
	r := alloc(m.rows, o.cols)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < o.cols; j++ {
			var sum float64
			for k := 0; k < m.cols; k++ {
				sum += m.at(i, k) * o.at(k, j)
			}
			r.set(i, j, sum)
		}
	}
	return r, nil
}

// Scale returns m·s.
func (m *Matrix) Scale(s float64) *Matrix {
	r := alloc(m.rows, m.cols)
	for i, v := range m.data {
		r.data[i] = v * s
	}
	return r
}

// MulVec returns m·v for a 3×3 matrix.
func (m *Matrix) MulVec(v Vec3) (Vec3, error) {
	if m.rows != 3 || m.cols != 3 {
		return Vec3{}, fmt.Errorf("multiply %dx%d by 3-vector: %w", m.rows, m.cols, ErrDimensionMismatch)
	}
	return Vec3{
		m.at(0, 0)*v.X + m.at(0, 1)*v.Y + m.at(0, 2)*v.Z,
		m.at(1, 0)*v.X + m.at(1, 1)*v.Y + m.at(1, 2)*v.Z,
		m.at(2, 0)*v.X + m.at(2, 1)*v.Y + m.at(2, 2)*v.Z,
	}, nil
}

// String renders one row per line, entries separated by spaces.
func (m *Matrix) String() string {
	var b strings.Builder
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.FormatFloat(m.at(i, j), 'g', 6, 64))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
