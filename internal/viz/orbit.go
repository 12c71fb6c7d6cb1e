package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/BjoB/gros/internal/trajectory"
)

// OrbitPlot renders the x-y projection of a trajectory with the central
// singularity and the horizon circle at r=rs. Width and height are in
// character cells.
func OrbitPlot(ds *trajectory.Dataset, width, height int) string {
	points := ds.Points()
	if len(points) == 0 {
		return "(empty trajectory)\n"
	}

	subW := float64(width * 2)
	subH := float64(height * 4)

	// World bounds: the trajectory plus the horizon sphere, padded, and
	// symmetric so the attractor sits at the plot center.
	extent := ds.Rs()
	for _, p := range points {
		extent = math.Max(extent, math.Max(math.Abs(p.X), math.Abs(p.Y)))
	}
	extent *= 1.1
	if extent == 0 {
		extent = 1
	}

	// Uniform scale; braille sub-pixels are roughly square at 2x4 per cell.
	scale := math.Min(subW, subH) / (2 * extent)

	toPixel := func(x, y float64) (int, int) {
		px := int(subW/2 + x*scale)
		py := int(subH/2 - y*scale)
		return px, py
	}

	c := NewCanvas(width, height)

	cx, cy := toPixel(0, 0)
	c.Set(cx, cy)
	c.DrawCircle(cx, cy, int(ds.Rs()*scale))

	prevX, prevY := toPixel(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		px, py := toPixel(p.X, p.Y)
		c.DrawLine(prevX, prevY, px, py)
		prevX, prevY = px, py
	}

	var b strings.Builder
	b.WriteString(c.String())
	last := points[len(points)-1]
	fmt.Fprintf(&b, "rs=%g m  points=%d  tau=[%g, %g] s\n",
		ds.Rs(), ds.Size(), points[0].Tau, last.Tau)
	return b.String()
}
