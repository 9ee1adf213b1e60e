package galvo

import (
	"fmt"

	"github.com/fogleman/pt/pt"
)

// LensModel selects the direction-bending law applied at the field lens.
type LensModel int

const (
	// LensFieldFlattening bends rays so the tangent of the exit angle is
	// K times the incidence angle, matching an f-theta style scan lens.
	LensFieldFlattening LensModel = iota
	// LensSnell applies the standard vector form of Snell's law with K as
	// the refractive index ratio.
	LensSnell
)

// DefaultLensK is the field-flattening coefficient used when none is
// configured.
const DefaultLensK = -1.0

// Galvanometer traces a single ray through a two-mirror beam-steering
// assembly followed by a refractive field element onto a flat focus plane.
//
// An instance holds the current ray between Reflect/Refract/Scan calls, so
// it must not be shared across goroutines. Concurrent scanning should use
// one instance per goroutine, or call TraceRay, which never touches the
// stored ray.
type Galvanometer struct {
	FocusDistance float64
	GalvoGap      float64
	Layout        OpticalLayout
	LensModel     LensModel
	LensK         float64
	// Optional per-axis command-to-optical angle correction.
	Calibration *Calibration

	ray    pt.Ray
	raySet bool
}

// NewGalvanometer builds a pipeline over the reference bench layout with
// the field-flattening lens.
func NewGalvanometer(focusDistance, galvoGap float64) (*Galvanometer, error) {
	if !finite(focusDistance, galvoGap) {
		return nil, fmt.Errorf("%w: non-finite galvanometer geometry", ErrInvalidParameter)
	}
	if focusDistance < 0 {
		return nil, fmt.Errorf("%w: focus distance must not be negative", ErrInvalidParameter)
	}
	if galvoGap < 0 {
		return nil, fmt.Errorf("%w: galvo gap must not be negative", ErrInvalidParameter)
	}
	return &Galvanometer{
		FocusDistance: focusDistance,
		GalvoGap:      galvoGap,
		Layout:        ReferenceLayout(galvoGap),
		LensModel:     LensFieldFlattening,
		LensK:         DefaultLensK,
	}, nil
}

// SetRay stores the live ray subsequent pipeline calls operate on.
func (g *Galvanometer) SetRay(ray pt.Ray) {
	g.ray = ray
	g.raySet = true
}

func (g *Galvanometer) currentRay() (pt.Ray, error) {
	if !g.raySet {
		return pt.Ray{}, fmt.Errorf("%w: no ray set", ErrInvalidPipelineState)
	}
	return g.ray, nil
}

// Reflect folds the current ray off a mirror plane and stores the result.
func (g *Galvanometer) Reflect(normal, point pt.Vector) (pt.Ray, error) {
	ray, err := g.currentRay()
	if err != nil {
		return pt.Ray{}, err
	}
	out, err := Reflect(ray, Surface{Point: point, Normal: normal})
	if err != nil {
		return pt.Ray{}, err
	}
	g.ray = out
	return out, nil
}

// Refract bends the current ray at a lens plane using the pipeline's lens
// model and stores the result.
func (g *Galvanometer) Refract(normal, point pt.Vector, k float64) (pt.Ray, error) {
	ray, err := g.currentRay()
	if err != nil {
		return pt.Ray{}, err
	}
	out, err := refractWith(ray, Surface{Point: point, Normal: normal}, g.LensModel, k)
	if err != nil {
		return pt.Ray{}, err
	}
	g.ray = out
	return out, nil
}

func refractWith(ray pt.Ray, s Surface, model LensModel, k float64) (pt.Ray, error) {
	if model == LensSnell {
		return RefractSnell(ray, s, k)
	}
	return Refract(ray, s, k)
}

// Scan reflects the current ray off both scan mirrors in order, rotating
// each mirror's nominal normal about its rotation axis first, and stores
// the result.
func (g *Galvanometer) Scan(p1, p2, n1, n2, axis1, axis2 pt.Vector, xAngle, yAngle float64) (pt.Ray, error) {
	ray, err := g.currentRay()
	if err != nil {
		return pt.Ray{}, err
	}
	out, err := ScanRay(ray,
		ScanMirror{Position: p1, Normal: n1, RotationAxis: axis1},
		ScanMirror{Position: p2, Normal: n2, RotationAxis: axis2},
		xAngle, yAngle)
	if err != nil {
		return pt.Ray{}, err
	}
	g.ray = out
	return out, nil
}

// ScanRay runs the two-mirror deflection: mirror X first, then mirror Y,
// with mirror Y seeing mirror X's output ray.
func ScanRay(ray pt.Ray, mirrorX, mirrorY ScanMirror, xAngle, yAngle float64) (pt.Ray, error) {
	if !finite(xAngle, yAngle) {
		return pt.Ray{}, fmt.Errorf("%w: non-finite scan angle", ErrInvalidParameter)
	}
	sx, err := mirrorX.rotated(xAngle)
	if err != nil {
		return pt.Ray{}, fmt.Errorf("mirror X: %w", err)
	}
	sy, err := mirrorY.rotated(yAngle)
	if err != nil {
		return pt.Ray{}, fmt.Errorf("mirror Y: %w", err)
	}
	out, err := Reflect(ray, sx)
	if err != nil {
		return pt.Ray{}, fmt.Errorf("mirror X: %w", err)
	}
	out, err = Reflect(out, sy)
	if err != nil {
		return pt.Ray{}, fmt.Errorf("mirror Y: %w", err)
	}
	return out, nil
}

// TraceResult is the outcome of one full pass through the bench.
type TraceResult struct {
	// Point is where the ray lands on the focus plane.
	Point pt.Vector
	// Path holds the ray origin and every surface hit through to the
	// focus plane, for plotting and export.
	Path []pt.Vector
}

// TraceRay passes a ray through the whole bench: fold mirrors, the scan
// pair, the field lens, and finally the focus plane intersection. It reads
// only the pipeline configuration, never the stored ray, so it is safe to
// call from multiple goroutines sharing one configured instance.
func (g *Galvanometer) TraceRay(ray pt.Ray, xAngle, yAngle float64) (TraceResult, error) {
	if !finite(xAngle, yAngle) {
		return TraceResult{}, fmt.Errorf("%w: non-finite scan angle", ErrInvalidParameter)
	}
	xAngle, yAngle = g.Calibration.Apply(xAngle, yAngle)

	cur := ray
	path := []pt.Vector{ray.Origin}
	var err error
	for i, fold := range g.Layout.FoldMirrors {
		if cur, err = Reflect(cur, fold); err != nil {
			return TraceResult{}, fmt.Errorf("fold mirror %d: %w", i+1, err)
		}
		path = append(path, cur.Origin)
	}

	sx, err := g.Layout.MirrorX.rotated(xAngle)
	if err != nil {
		return TraceResult{}, fmt.Errorf("mirror X: %w", err)
	}
	if cur, err = Reflect(cur, sx); err != nil {
		return TraceResult{}, fmt.Errorf("mirror X: %w", err)
	}
	path = append(path, cur.Origin)

	sy, err := g.Layout.MirrorY.rotated(yAngle)
	if err != nil {
		return TraceResult{}, fmt.Errorf("mirror Y: %w", err)
	}
	if cur, err = Reflect(cur, sy); err != nil {
		return TraceResult{}, fmt.Errorf("mirror Y: %w", err)
	}
	path = append(path, cur.Origin)

	if cur, err = refractWith(cur, g.Layout.Lens, g.LensModel, g.LensK); err != nil {
		return TraceResult{}, fmt.Errorf("field lens: %w", err)
	}
	path = append(path, cur.Origin)

	hit, err := g.Layout.FocusPlane(g.FocusDistance).Intersect(cur)
	if err != nil {
		return TraceResult{}, fmt.Errorf("focus plane: %w", err)
	}
	path = append(path, hit)
	return TraceResult{Point: hit, Path: path}, nil
}

// Trace runs the full pass against the current ray and returns the landing
// point on the focus plane. The stored ray is not advanced, so repeated
// Trace calls with identical angles are deterministic.
func (g *Galvanometer) Trace(xAngle, yAngle float64) (pt.Vector, error) {
	ray, err := g.currentRay()
	if err != nil {
		return pt.Vector{}, err
	}
	res, err := g.TraceRay(ray, xAngle, yAngle)
	if err != nil {
		return pt.Vector{}, err
	}
	return res.Point, nil
}
