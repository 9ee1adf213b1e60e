package galvo

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/fogleman/pt/pt"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SweepParams describes a uniform grid of commanded angle pairs.
type SweepParams struct {
	MinAngle float64
	MaxAngle float64
	// Steps per axis; the grid traces Steps*Steps angle pairs.
	Steps int
}

// SweepPoint is one traced grid cell.
type SweepPoint struct {
	XAngle, YAngle float64
	// Landing point on the focus plane, relative to the zero-angle
	// reference point.
	Point pt.Vector
}

// SweepResult holds the traced grid and the zero-angle reference the
// points are reported against.
type SweepResult struct {
	Reference pt.Vector
	Points    []SweepPoint
}

// Sweep traces every angle pair on the grid and reports landing points
// relative to the zero-angle reference point.
func Sweep(g *Galvanometer, ray pt.Ray, params SweepParams) (SweepResult, error) {
	if params.Steps < 2 {
		return SweepResult{}, fmt.Errorf("%w: sweep needs at least 2 steps per axis", ErrInvalidParameter)
	}
	if !finite(params.MinAngle, params.MaxAngle) || params.MinAngle >= params.MaxAngle {
		return SweepResult{}, fmt.Errorf("%w: sweep angle range must be finite and increasing", ErrInvalidParameter)
	}
	ref, err := g.TraceRay(ray, 0, 0)
	if err != nil {
		return SweepResult{}, fmt.Errorf("reference trace: %w", err)
	}
	angles := floats.Span(make([]float64, params.Steps), params.MinAngle, params.MaxAngle)
	result := SweepResult{
		Reference: ref.Point,
		Points:    make([]SweepPoint, 0, params.Steps*params.Steps),
	}
	for _, x := range angles {
		for _, y := range angles {
			tr, err := g.TraceRay(ray, x, y)
			if err != nil {
				return SweepResult{}, fmt.Errorf("trace(%v, %v): %w", x, y, err)
			}
			result.Points = append(result.Points, SweepPoint{
				XAngle: x,
				YAngle: y,
				Point:  tr.Point.Sub(ref.Point),
			})
		}
	}
	return result, nil
}

// SpotMetrics summarizes the landing point distribution on the focus plane.
type SpotMetrics struct {
	// Centroid of the relative landing points.
	Centroid pt.Vector
	// RMSRadius is the root mean square distance from the centroid.
	RMSRadius float64
}

// Metrics computes the spot centroid and RMS radius of the swept points.
func (r SweepResult) Metrics() SpotMetrics {
	if len(r.Points) == 0 {
		return SpotMetrics{}
	}
	xs := make([]float64, len(r.Points))
	ys := make([]float64, len(r.Points))
	zs := make([]float64, len(r.Points))
	for i, p := range r.Points {
		xs[i], ys[i], zs[i] = p.Point.X, p.Point.Y, p.Point.Z
	}
	centroid := V(stat.Mean(xs, nil), stat.Mean(ys, nil), stat.Mean(zs, nil))
	sq := make([]float64, len(r.Points))
	for i, p := range r.Points {
		d := p.Point.Sub(centroid)
		sq[i] = d.Dot(d)
	}
	return SpotMetrics{
		Centroid:  centroid,
		RMSRadius: math.Sqrt(stat.Mean(sq, nil)),
	}
}

// WriteCSV writes the commanded angles and relative landing points.
func (r SweepResult) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"x_angle", "y_angle", "X", "Y", "Z"}); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, p := range r.Points {
		rec := []string{
			formatFloat(p.XAngle),
			formatFloat(p.YAngle),
			formatFloat(p.Point.X),
			formatFloat(p.Point.Y),
			formatFloat(p.Point.Z),
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("writing csv record: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
