package shapes

import (
	"math"
	"testing"

	"github.com/san-kum/rigidsim/internal/inertia"
	"github.com/san-kum/rigidsim/internal/linalg"
)

func centre(t *testing.T, m *linalg.Matrix) linalg.Vec3 {
	t.Helper()
	pts, err := inertia.Points(m)
	if err != nil {
		t.Fatalf("points failed: %v", err)
	}
	return inertia.Centre(pts)
}

func near(a, b linalg.Vec3) bool {
	return linalg.Distance(a, b).Norm() < 1e-6
}

func TestBox(t *testing.T) {
	m := Box(3, linalg.V(2, 4, 6), linalg.V(1, 1, 1))
	if r, c := m.Dims(); r != 3 || c != 27 {
		t.Fatalf("expected 3x27, got %dx%d", r, c)
	}
	if g := centre(t, m); !near(g, linalg.V(2, 3, 4)) {
		t.Errorf("expected centre (2,3,4), got %v", g)
	}

	last, _ := m.Column(26)
	if last != linalg.V(3, 5, 7) {
		t.Errorf("expected far corner (3,5,7), got %v", last)
	}

	if single := Box(0, linalg.V(1, 1, 1), linalg.Zero()); single.Cols() != 1 {
		t.Errorf("expected a single point, got %d", single.Cols())
	}
}

func TestDisc(t *testing.T) {
	c := linalg.V(1, -2, 0.5)
	m := Disc(2, c, 4)

	if m.Cols() != DiscSize(4) || m.Cols() != 37 {
		t.Fatalf("expected 37 points, got %d", m.Cols())
	}
	if g := centre(t, m); !near(g, c) {
		t.Errorf("expected centre %v, got %v", c, g)
	}

	for j := 0; j < m.Cols(); j++ {
		p, _ := m.Column(j)
		if p.Z != c.Z {
			t.Errorf("point %d left the disc plane: %v", j, p)
		}
		if r := math.Hypot(p.X-c.X, p.Y-c.Y); r > 2+1e-6 {
			t.Errorf("point %d outside radius: %v", j, r)
		}
	}
}

func TestCylinder(t *testing.T) {
	m := Cylinder(1, 3, linalg.Zero(), 3, 4)
	if m.Cols() != 4*DiscSize(3) {
		t.Fatalf("expected %d points, got %d", 4*DiscSize(3), m.Cols())
	}
	if g := centre(t, m); !near(g, linalg.V(0, 0, 1.5)) {
		t.Errorf("expected centre (0,0,1.5), got %v", g)
	}
}

func TestWrap(t *testing.T) {
	for _, x := range []float64{0, 3, 4, 7, -4, -10} {
		w := wrap(x)
		if w < -math.Pi || w > math.Pi {
			t.Errorf("wrap(%v) = %v out of range", x, w)
		}
		if math.Abs(math.Sin(w)-math.Sin(x)) > 1e-9 {
			t.Errorf("wrap(%v) changed the angle", x)
		}
	}
}
