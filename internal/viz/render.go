package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/rigidsim/internal/linalg"
)

// DrawCloud projects every column of cloud onto c and returns how many
// points landed on the canvas.
func DrawCloud(c *Canvas, cloud *linalg.Matrix, cam *Camera) int {
	w, h := c.Size()
	pr := cam.Projector(w, h)
	drawn := 0
	for j := 0; j < cloud.Cols(); j++ {
		p, _ := cloud.Column(j)
		if x, y, _, ok := pr.Project(p); ok {
			c.Set(x, y)
			drawn++
		}
	}
	return drawn
}

// DrawAxes draws the world axes of the given length from origin.
func DrawAxes(c *Canvas, origin linalg.Vec3, length float64, cam *Camera) {
	w, h := c.Size()
	pr := cam.Projector(w, h)
	x0, y0, _, ok := pr.Project(origin)
	if !ok {
		return
	}
	for _, axis := range []linalg.Vec3{linalg.V(length, 0, 0), linalg.V(0, length, 0), linalg.V(0, 0, length)} {
		if x1, y1, _, ok := pr.Project(origin.Add(axis)); ok {
			c.DrawLine(x0, y0, x1, y1)
		}
	}
}

// Frame renders a single cloud on a fresh w×h canvas with the camera fitted
// to it.
func Frame(cloud *linalg.Matrix, w, h int) string {
	c := NewCanvas(w, h)
	cam := NewCamera()
	cam.Fit(cloud)
	DrawCloud(c, cloud, cam)
	return c.String()
}

// Plot charts one series with asciigraph.
func Plot(series []float64, caption string, height, width int) string {
	if len(series) == 0 {
		return ""
	}
	return asciigraph.Plot(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// PlotMany charts several series on shared axes.
func PlotMany(series [][]float64, caption string, height, width int) string {
	if len(series) == 0 {
		return ""
	}
	colors := []asciigraph.AnsiColor{asciigraph.Red, asciigraph.Green, asciigraph.Blue}
	return asciigraph.PlotMany(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(colors[:min(len(series), len(colors))]...),
	)
}

// RenderMatrix lays out m in a bordered panel with aligned columns.
func RenderMatrix(title string, m *linalg.Matrix, theme Theme) string {
	st := theme.styles()
	cells := make([][]string, m.Rows())
	width := 0
	for i := 0; i < m.Rows(); i++ {
		row, _ := m.Row(i)
		cells[i] = make([]string, len(row))
		for j, v := range row {
			cells[i][j] = fmt.Sprintf("%.6g", v)
			width = max(width, lipgloss.Width(cells[i][j]))
		}
	}

	var b strings.Builder
	for i, row := range cells {
		for j, s := range row {
			if j > 0 {
				b.WriteString("  ")
			}
			b.WriteString(st.value.Render(fmt.Sprintf("%*s", width, s)))
		}
		if i < len(cells)-1 {
			b.WriteByte('\n')
		}
	}

	body := b.String()
	if title != "" {
		body = st.accent.Render(title) + "\n" + body
	}
	return st.panel.Render(body)
}

// RenderVector prints a labelled vector on one line.
func RenderVector(label string, v linalg.Vec3, theme Theme) string {
	st := theme.styles()
	return st.label.Render(label) + st.value.Render(fmt.Sprintf("(%.6g, %.6g, %.6g)", v.X, v.Y, v.Z))
}
