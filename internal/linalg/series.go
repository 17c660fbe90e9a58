package linalg

// DefaultTerms is the number of Taylor terms used when no count is given.
const DefaultTerms = 10

// Cosine approximates cos(x) with the first n terms of its Taylor series
// around 0. It does not call into the math package, so the result depends
// only on float64 arithmetic.
func Cosine(x float64, n int) float64 {
	var sum float64
	term := 1.0
	x2 := x * x
	for k := 0; k < n; k++ {
		sum += term
		term *= -x2 / float64((2*k+1)*(2*k+2))
	}
	return sum
}

// Sine approximates sin(x) with the first n terms of its Taylor series.
func Sine(x float64, n int) float64 {
	var sum float64
	term := x
	x2 := x * x
	for k := 0; k < n; k++ {
		sum += term
		term *= -x2 / float64((2*k+2)*(2*k+3))
	}
	return sum
}

// RotationX returns the rotation of angle a about the X axis.
func RotationX(a float64, terms int) *Matrix {
	c, s := Cosine(a, terms), Sine(a, terms)
	return NewMatrixFrom([][]float64{
		{1, 0, 0},
		{0, c, -s},
		{0, s, c},
	})
}

// RotationY returns the rotation of angle a about the Y axis.
func RotationY(a float64, terms int) *Matrix {
	c, s := Cosine(a, terms), Sine(a, terms)
	return NewMatrixFrom([][]float64{
		{c, 0, s},
		{0, 1, 0},
		{-s, 0, c},
	})
}

// RotationZ returns the rotation of angle a about the Z axis.
func RotationZ(a float64, terms int) *Matrix {
	c, s := Cosine(a, terms), Sine(a, terms)
	return NewMatrixFrom([][]float64{
		{c, -s, 0},
		{s, c, 0},
		{0, 0, 1},
	})
}

// Rotation composes Rz·Ry·Rx for the given angles: X is applied first and
// Z last.
func Rotation(angles Vec3, terms int) *Matrix {
	zy, _ := RotationZ(angles.Z, terms).Mul(RotationY(angles.Y, terms))
	r, _ := zy.Mul(RotationX(angles.X, terms))
	return r
}
