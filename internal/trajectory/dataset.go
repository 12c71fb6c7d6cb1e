// Package trajectory accumulates integration samples into a rendering-ready
// dataset of Cartesian trajectory points.
package trajectory

import (
	"fmt"

	"github.com/BjoB/gros/internal/integrators"
	"github.com/BjoB/gros/internal/metric"
	"github.com/BjoB/gros/internal/transforms"
)

// RowLen is the number of fields of a bulk trajectory row
// [tau, t, r, theta, phi].
const RowLen = 5

// Point is one rendering-ready trajectory sample: proper time, coordinate
// time and the Cartesian position.
type Point struct {
	Tau float64
	T   float64
	X   float64
	Y   float64
	Z   float64
}

// Dataset is an ordered sequence of trajectory points, insertion order equal
// to increasing proper time, together with the Schwarzschild radius of the
// generating metric. Once handed to a rendering collaborator it is treated
// as read-only.
type Dataset struct {
	rs     float64
	points []Point
}

// NewEmpty creates a dataset to be filled incrementally via Append.
func NewEmpty(rs float64) *Dataset {
	return &Dataset{rs: rs}
}

// New creates a dataset from bulk rows of [tau, t, r, theta, phi], converting
// each spatial part to Cartesian. It fails with metric.ErrValidation if any
// row does not have exactly 5 fields or proper time decreases between rows.
func New(rows [][]float64, rs float64) (*Dataset, error) {
	d := &Dataset{
		rs:     rs,
		points: make([]Point, 0, len(rows)),
	}
	for i, row := range rows {
		if len(row) != RowLen {
			return nil, fmt.Errorf("%w: row %d has %d fields, want %d",
				metric.ErrValidation, i, len(row), RowLen)
		}
		if err := d.push(row[0], row[1], row[2], row[3], row[4]); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return d, nil
}

// Append converts the spatial position of an 8-component state to Cartesian
// and appends one point. It fails with metric.ErrValidation if the state is
// not 8 components long or tau precedes the last appended sample.
func (d *Dataset) Append(tau float64, s metric.State) error {
	if len(s) != metric.StateDim {
		return fmt.Errorf("%w: state has %d components, want %d",
			metric.ErrValidation, len(s), metric.StateDim)
	}
	return d.push(tau, s.T(), s.R(), s.Theta(), s.Phi())
}

func (d *Dataset) push(tau, t, r, theta, phi float64) error {
	if n := len(d.points); n > 0 && tau < d.points[n-1].Tau {
		return fmt.Errorf("%w: proper time %g precedes last sample %g",
			metric.ErrValidation, tau, d.points[len(d.points)-1].Tau)
	}
	x, y, z := transforms.SphericalToCartesian(r, theta, phi)
	d.points = append(d.points, Point{Tau: tau, T: t, X: x, Y: y, Z: z})
	return nil
}

// FromPoints rebuilds a dataset from already-converted Cartesian points,
// e.g. when loading a stored run. Points must be ordered by proper time.
func FromPoints(points []Point, rs float64) *Dataset {
	return &Dataset{rs: rs, points: points}
}

// Size returns the number of points.
func (d *Dataset) Size() int { return len(d.points) }

// Rs returns the Schwarzschild radius of the generating metric, needed by
// renderers to draw the horizon boundary.
func (d *Dataset) Rs() float64 { return d.rs }

// Points returns the ordered samples. The slice is owned by the dataset and
// must not be modified.
func (d *Dataset) Points() []Point { return d.points }

// Collect drains a geodesic iterator into a dataset. On an integration
// failure the points produced so far are returned together with the error.
func Collect(g *integrators.Geodesic) (*Dataset, error) {
	d := NewEmpty(g.Rs())
	for g.Next() {
		if err := d.Append(g.Tau(), g.State()); err != nil {
			return d, err
		}
	}
	return d, g.Err()
}

// Record integrates a full trajectory for the given metric and returns the
// dataset, mirroring the one-call path from metric construction to
// renderable samples.
func Record(m *metric.Schwarzschild, stepSize, properTimeEnd float64, opts ...integrators.GeodesicOption) (*Dataset, error) {
	opts = append(opts, integrators.WithProperTimeEnd(properTimeEnd))
	g, err := integrators.NewGeodesic(m, stepSize, opts...)
	if err != nil {
		return nil, err
	}
	return Collect(g)
}
