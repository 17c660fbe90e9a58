package analysis

import (
	"fmt"
	"strings"

	"github.com/san-kum/rigidsim/internal/body"
)

type Point struct{ X, Y float64 }

// Phase pairs the angle and the angular velocity about one axis (0, 1 or 2)
// for every state.
func Phase(states []body.State, axis int) ([]Point, error) {
	if axis < 0 || axis > 2 {
		return nil, fmt.Errorf("axis %d out of range [0, 2]", axis)
	}
	pts := make([]Point, len(states))
	for i, s := range states {
		pts[i] = Point{X: s.Angle.Array()[axis], Y: s.AngularVelocity.Array()[axis]}
	}
	return pts, nil
}

// PhaseASCII plots points on a width×height grid with 10% padding and
// draws the axes where they cross the view.
func PhaseASCII(points []Point, width, height int) string {
	if len(points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX, rangeY = maxX-minX, maxY-minY

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	col := func(x float64) int { return int((x - minX) / rangeX * float64(width-1)) }
	row := func(y float64) int { return height - 1 - int((y-minY)/rangeY*float64(height-1)) }

	for _, p := range points {
		grid[row(p.Y)][col(p.X)] = '•'
	}

	if minX <= 0 && maxX >= 0 {
		c := col(0)
		for r := range grid {
			if grid[r][c] == ' ' {
				grid[r][c] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		r := row(0)
		for c := range grid[r] {
			if grid[r][c] == ' ' {
				grid[r][c] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, r := range grid {
		sb.WriteString(string(r))
		sb.WriteByte('\n')
	}
	return sb.String()
}
