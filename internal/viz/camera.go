package viz

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/rigidsim/internal/linalg"
)

const maxPitch = 1.5

// Camera orbits a target point with Z up.
type Camera struct {
	Target     linalg.Vec3
	Distance   float64
	Yaw, Pitch float64
	FOV        float64 // radians
	Near, Far  float64
}

func NewCamera() *Camera {
	return &Camera{
		Distance: 10,
		Yaw:      math.Pi / 4,
		Pitch:    0.4,
		FOV:      math.Pi / 4,
		Near:     0.1,
		Far:      1000,
	}
}

func (c *Camera) Orbit(dyaw, dpitch float64) {
	c.Yaw += dyaw
	c.Pitch = math.Max(-maxPitch, math.Min(maxPitch, c.Pitch+dpitch))
}

func (c *Camera) ZoomIn()  { c.Distance = math.Max(c.Near*2, c.Distance/1.2) }
func (c *Camera) ZoomOut() { c.Distance = math.Min(c.Far/2, c.Distance*1.2) }

// Eye returns the camera position.
func (c *Camera) Eye() linalg.Vec3 {
	cp := math.Cos(c.Pitch)
	dir := linalg.V(cp*math.Cos(c.Yaw), cp*math.Sin(c.Yaw), math.Sin(c.Pitch))
	return c.Target.Add(dir.Scale(c.Distance))
}

// Fit aims the camera at the centroid of cloud and backs off far enough to
// keep every point in view.
func (c *Camera) Fit(cloud *linalg.Matrix) {
	n := cloud.Cols()
	var sum linalg.Vec3
	for j := 0; j < n; j++ {
		p, _ := cloud.Column(j)
		sum = sum.Add(p)
	}
	c.Target = sum.Div(float64(n))

	radius := 0.0
	for j := 0; j < n; j++ {
		p, _ := cloud.Column(j)
		radius = math.Max(radius, p.Sub(c.Target).Norm())
	}
	if radius == 0 {
		radius = 1
	}
	c.Distance = 1.5 * radius / math.Sin(c.FOV/2)
}

func toGL(v linalg.Vec3) mgl64.Vec3 { return mgl64.Vec3{v.X, v.Y, v.Z} }

// Projector maps world points to sub-pixels of a w×h viewport.
type Projector struct {
	view, proj mgl64.Mat4
	w, h       int
	near       float64
}

func (c *Camera) Projector(w, h int) Projector {
	aspect := float64(w) / float64(h)
	return Projector{
		view: mgl64.LookAtV(toGL(c.Eye()), toGL(c.Target), mgl64.Vec3{0, 0, 1}),
		proj: mgl64.Perspective(c.FOV, aspect, c.Near, c.Far),
		w:    w,
		h:    h,
		near: c.Near,
	}
}

// Project returns the screen position and depth of p. ok is false when p
// lies behind the near plane or outside the viewport.
func (pr Projector) Project(p linalg.Vec3) (x, y int, depth float64, ok bool) {
	obj := toGL(p)
	eye := pr.view.Mul4x1(obj.Vec4(1))
	if -eye.Z() < pr.near {
		return 0, 0, 0, false
	}
	win := mgl64.Project(obj, pr.view, pr.proj, 0, 0, pr.w, pr.h)
	x = int(math.Round(win.X()))
	y = pr.h - 1 - int(math.Round(win.Y()))
	return x, y, -eye.Z(), x >= 0 && x < pr.w && y >= 0 && y < pr.h
}
