package linalg

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/mat"
)

const tol = 1e-9

func sample() *Matrix {
	return NewMatrixFrom([][]float64{
		{1, -1, 2},
		{1, 6, 1},
		{2, 0, -1},
	})
}

func assertClose(t *testing.T, got, want *Matrix, eps float64) {
	t.Helper()
	if got.Rows() != want.Rows() || got.Cols() != want.Cols() {
		t.Fatalf("expected %dx%d, got %dx%d", want.Rows(), want.Cols(), got.Rows(), got.Cols())
	}
	for i := 0; i < got.Rows(); i++ {
		for j := 0; j < got.Cols(); j++ {
			if math.Abs(got.at(i, j)-want.at(i, j)) > eps {
				t.Errorf("entry (%d,%d): expected %.9f, got %.9f", i, j, want.at(i, j), got.at(i, j))
			}
		}
	}
}

func TestVectorArithmetic(t *testing.T) {
	u, v := V(1, 2, 3), V(4, 5, 6)

	tests := []struct {
		name string
		got  Vec3
		want Vec3
	}{
		{"add", u.Add(v), V(5, 7, 9)},
		{"sub", u.Sub(v), V(-3, -3, -3)},
		{"mul", u.Mul(v), V(4, 10, 18)},
		{"scale", u.Scale(2), V(2, 4, 6)},
		{"div", v.Div(2), V(2, 2.5, 3)},
		{"cross", Cross(u, v), V(-3, 6, -3)},
		{"distance", Distance(u, v), V(3, 3, 3)},
		{"distance is not signed", Distance(v, u), V(3, 3, 3)},
		{"zero", Zero(), V(0, 0, 0)},
		{"sum", Sum(u, v, V(1, 1, 1)), V(6, 8, 10)},
	}

	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, tt.got)
		}
	}

	if u != V(1, 2, 3) {
		t.Errorf("operations must not modify the receiver, got %v", u)
	}
}

func TestMoment(t *testing.T) {
	f := V(0, 0, 10)
	a := V(2, 0, 0)
	g := V(1, 0, 0)

	got := Moment(f, a, g)
	want := V(0, -10, 0)
	if got != want {
		t.Errorf("expected %v, got %v", want, got)
	}

	if m := Moment(f, g, g); m != Zero() {
		t.Errorf("force at pivot should have no moment, got %v", m)
	}
}

func TestMatrixBounds(t *testing.T) {
	m := NewMatrix(2, 3)

	for _, idx := range [][2]int{{-1, 0}, {2, 0}, {0, -1}, {0, 3}} {
		if _, err := m.At(idx[0], idx[1]); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("At(%d,%d): expected ErrOutOfRange, got %v", idx[0], idx[1], err)
		}
		if err := m.Set(idx[0], idx[1], 1); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Set(%d,%d): expected ErrOutOfRange, got %v", idx[0], idx[1], err)
		}
	}

	if _, err := m.Row(5); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Row(5): expected ErrOutOfRange, got %v", err)
	}

	if err := m.Set(1, 2, 7); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	v, err := m.At(1, 2)
	if err != nil || v != 7 {
		t.Errorf("expected 7, got %v (%v)", v, err)
	}
}

func TestMatrixValueSemantics(t *testing.T) {
	m := sample()
	c := m.Clone()
	_ = c.Set(0, 0, 100)

	if v, _ := m.At(0, 0); v != 1 {
		t.Errorf("clone must not alias the original, got %v", v)
	}

	row, _ := m.Row(0)
	row[0] = 42
	if v, _ := m.At(0, 0); v != 1 {
		t.Errorf("Row must return a copy, got %v", v)
	}

	dst := NewMatrix(1, 1)
	dst.CopyFrom(m)
	if !dst.Equal(m) {
		t.Error("CopyFrom should replace shape and contents")
	}
	_ = m.Set(2, 2, 9)
	if dst.Equal(m) {
		t.Error("CopyFrom must deep copy")
	}
}

func TestMatrixAddMul(t *testing.T) {
	a := NewMatrixFrom([][]float64{{1, 2, 3}, {4, 5, 6}})
	b := NewMatrixFrom([][]float64{{7, 8}, {9, 10}, {11, 12}})

	p, err := a.Mul(b)
	if err != nil {
		t.Fatalf("mul failed: %v", err)
	}
	assertClose(t, p, NewMatrixFrom([][]float64{{58, 64}, {139, 154}}), 0)

	if _, err := a.Mul(a); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
	if _, err := a.Add(b); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}

	s, err := a.Add(a)
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	assertClose(t, s, a.Scale(2), 0)
}

func TestMulVec(t *testing.T) {
	v, err := sample().MulVec(V(1, 1, 1))
	if err != nil {
		t.Fatalf("mulvec failed: %v", err)
	}
	if v != V(2, 8, 1) {
		t.Errorf("expected (2,8,1), got %v", v)
	}

	if _, err := NewMatrix(3, 2).MulVec(V(1, 1, 1)); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestTransposeAndSubMatrix(t *testing.T) {
	a := NewMatrixFrom([][]float64{{1, 2, 3}, {4, 5, 6}})
	assertClose(t, Transpose(a), NewMatrixFrom([][]float64{{1, 4}, {2, 5}, {3, 6}}), 0)

	sub := SubMatrix(sample(), 1, 0)
	assertClose(t, sub, NewMatrixFrom([][]float64{{-1, 2}, {0, -1}}), 0)
}

func TestDeterminantIdentity(t *testing.T) {
	for n := 1; n <= 5; n++ {
		if d := Determinant(Identity(n)); d != 1 {
			t.Errorf("det(I%d): expected 1, got %v", n, d)
		}
	}
}

func TestDeterminantMatchesGonum(t *testing.T) {
	cases := [][][]float64{
		{{1, -1, 2}, {1, 6, 1}, {2, 0, -1}},
		{{2, 0, 0}, {0, 3, 0}, {0, 0, 4}},
		{{4, 3}, {6, 3}},
		{{1, 2, 3, 4}, {5, 6, 7, 8}, {2, 6, 4, 8}, {3, 1, 1, 2}},
	}

	for _, rows := range cases {
		m := NewMatrixFrom(rows)
		n := len(rows)
		flat := make([]float64, 0, n*n)
		for _, r := range rows {
			flat = append(flat, r...)
		}
		want := mat.Det(mat.NewDense(n, n, flat))
		if got := Determinant(m); math.Abs(got-want) > tol {
			t.Errorf("det %v: expected %v, got %v", rows, want, got)
		}
	}

	if d := Determinant(sample()); d != -33 {
		t.Errorf("expected -33, got %v", d)
	}
}

func TestDeterminantNonSquarePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for non-square matrix")
		}
	}()
	Determinant(NewMatrix(2, 3))
}

func TestCofactor(t *testing.T) {
	com, err := Cofactor(sample())
	if err != nil {
		t.Fatalf("cofactor failed: %v", err)
	}
	want := NewMatrixFrom([][]float64{
		{-6, 3, -12},
		{-1, -5, -2},
		{-13, 1, 7},
	})
	assertClose(t, com, want, tol)

	singular := NewMatrixFrom([][]float64{{1, 2}, {2, 4}})
	if _, err := Cofactor(singular); !errors.Is(err, ErrSingularMatrix) {
		t.Errorf("expected ErrSingularMatrix, got %v", err)
	}
	if _, err := Inverse(singular); !errors.Is(err, ErrSingularMatrix) {
		t.Errorf("expected ErrSingularMatrix, got %v", err)
	}
}

func TestCofactorNonSquare(t *testing.T) {
	m := NewMatrixFrom([][]float64{{1, 2, 3}, {4, 5, 6}})
	if _, err := Cofactor(m); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch from Cofactor, got %v", err)
	}
	if _, err := Inverse(m); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("expected ErrDimensionMismatch from Inverse, got %v", err)
	}
}

func TestCofactorOneByOne(t *testing.T) {
	com, err := Cofactor(NewMatrixFrom([][]float64{{4}}))
	if err != nil {
		t.Fatalf("cofactor failed: %v", err)
	}
	assertClose(t, com, NewMatrixFrom([][]float64{{1}}), tol)

	inv, err := Inverse(NewMatrixFrom([][]float64{{4}}))
	if err != nil {
		t.Fatalf("inverse failed: %v", err)
	}
	assertClose(t, inv, NewMatrixFrom([][]float64{{0.25}}), tol)
}

func TestInverse(t *testing.T) {
	m := sample()
	inv, err := Inverse(m)
	if err != nil {
		t.Fatalf("inverse failed: %v", err)
	}

	left, _ := inv.Mul(m)
	right, _ := m.Mul(inv)
	assertClose(t, left, Identity(3), tol)
	assertClose(t, right, Identity(3), tol)

	back, err := Inverse(inv)
	if err != nil {
		t.Fatalf("second inverse failed: %v", err)
	}
	assertClose(t, back, m, 1e-6)

	var g mat.Dense
	if err := g.Inverse(mat.NewDense(3, 3, []float64{1, -1, 2, 1, 6, 1, 2, 0, -1})); err != nil {
		t.Fatalf("gonum inverse failed: %v", err)
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(inv.at(i, j)-g.At(i, j)) > tol {
				t.Errorf("entry (%d,%d): expected %v, got %v", i, j, g.At(i, j), inv.at(i, j))
			}
		}
	}

	one, err := Inverse(NewMatrixFrom([][]float64{{4}}))
	if err != nil {
		t.Fatalf("1x1 inverse failed: %v", err)
	}
	if v, _ := one.At(0, 0); v != 0.25 {
		t.Errorf("expected 0.25, got %v", v)
	}
}

func TestSeries(t *testing.T) {
	for _, x := range []float64{0, 0.1, -0.5, 1, 2, math.Pi / 2} {
		if got := Cosine(x, DefaultTerms); math.Abs(got-math.Cos(x)) > 1e-12 {
			t.Errorf("cos(%v): expected %v, got %v", x, math.Cos(x), got)
		}
		if got := Sine(x, DefaultTerms); math.Abs(got-math.Sin(x)) > 1e-12 {
			t.Errorf("sin(%v): expected %v, got %v", x, math.Sin(x), got)
		}
	}

	if got := Cosine(0.3, 1); got != 1 {
		t.Errorf("one-term cosine: expected 1, got %v", got)
	}
	if got := Sine(0.3, 1); got != 0.3 {
		t.Errorf("one-term sine: expected 0.3, got %v", got)
	}
	if got := Sine(0.3, 0); got != 0 {
		t.Errorf("zero-term sine: expected 0, got %v", got)
	}
}

func TestRotationMatchesMathgl(t *testing.T) {
	angles := V(0.1, -0.4, 0.7)
	r := Rotation(angles, 15)

	want := mgl64.Rotate3DZ(angles.Z).Mul3(mgl64.Rotate3DY(angles.Y)).Mul3(mgl64.Rotate3DX(angles.X))
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(r.at(i, j)-want.At(i, j)) > 1e-12 {
				t.Errorf("entry (%d,%d): expected %v, got %v", i, j, want.At(i, j), r.at(i, j))
			}
		}
	}

	if d := Determinant(r); math.Abs(d-1) > 1e-12 {
		t.Errorf("rotation should preserve volume, det = %v", d)
	}
}

func TestColumns(t *testing.T) {
	m := Columns([]Vec3{V(1, 2, 3), V(4, 5, 6)})
	if r, c := m.Dims(); r != 3 || c != 2 {
		t.Fatalf("expected 3x2, got %dx%d", r, c)
	}
	p, err := m.Column(1)
	if err != nil || p != V(4, 5, 6) {
		t.Errorf("expected (4,5,6), got %v (%v)", p, err)
	}
}

func BenchmarkDeterminant5(b *testing.B) {
	m := NewMatrix(5, 5)
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			m.set(i, j, float64((i*7+j*3)%11)-5)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Determinant(m)
	}
}

func BenchmarkInverse3(b *testing.B) {
	m := sample()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Inverse(m); err != nil {
			b.Fatal(err)
		}
	}
}
