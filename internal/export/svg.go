// Package export renders trajectory datasets to standalone SVG documents.
package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/BjoB/gros/internal/trajectory"
)

const (
	backgroundColor = "#0a0a14"
	trajectoryColor = "skyblue"
	horizonColor    = "darkviolet"
)

// TrajectorySVG draws the x-y projection of a trajectory as a polyline with
// the horizon disk at the center. Width and height are in pixels.
func TrajectorySVG(ds *trajectory.Dataset, width, height int) string {
	points := ds.Points()

	extent := ds.Rs()
	for _, p := range points {
		extent = math.Max(extent, math.Max(math.Abs(p.X), math.Abs(p.Y)))
	}
	extent *= 1.1
	if extent == 0 {
		extent = 1
	}

	scale := math.Min(float64(width), float64(height)) / (2 * extent)
	toPixel := func(x, y float64) (float64, float64) {
		return float64(width)/2 + x*scale, float64(height)/2 - y*scale
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, backgroundColor)

	cx, cy := toPixel(0, 0)
	hr := ds.Rs() * scale
	if hr < 1 {
		hr = 1
	}
	fmt.Fprintf(&b, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" opacity="0.8"><title>black hole</title></circle>
`, cx, cy, hr, horizonColor)

	if len(points) > 1 {
		b.WriteString(`<polyline fill="none" stroke="` + trajectoryColor + `" stroke-width="1.5" points="`)
		for i, p := range points {
			if i > 0 {
				b.WriteByte(' ')
			}
			px, py := toPixel(p.X, p.Y)
			fmt.Fprintf(&b, "%.1f,%.1f", px, py)
		}
		b.WriteString("\"/>\n")
	}

	b.WriteString("</svg>\n")
	return b.String()
}
