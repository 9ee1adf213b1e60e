package galvo

import (
	"fmt"
	"math"

	"github.com/fogleman/pt/pt"
)

// Surface is an infinite implicit plane given by a point and a normal.
// Mirror and lens surfaces are re-derived per trace call; nothing is
// clipped to a finite aperture.
type Surface struct {
	Point  pt.Vector
	Normal pt.Vector
}

// Denominators smaller than this count as a ray parallel to the surface.
const parallelEps = 1e-10

// intersect returns the hit point and the unit surface normal.
func (s Surface) intersect(ray pt.Ray) (pt.Vector, pt.Vector, error) {
	n, err := unit(s.Normal, "surface normal")
	if err != nil {
		return pt.Vector{}, pt.Vector{}, err
	}
	denom := ray.Direction.Dot(n)
	if math.Abs(denom) < parallelEps {
		return pt.Vector{}, pt.Vector{}, fmt.Errorf("%w: ray parallel to surface", ErrDegenerateGeometry)
	}
	t := s.Point.Sub(ray.Origin).Dot(n) / denom
	if t < 0 {
		return pt.Vector{}, pt.Vector{}, fmt.Errorf("%w: surface behind ray origin", ErrDegenerateGeometry)
	}
	return ray.Position(t), n, nil
}

// Intersect returns the point where the ray crosses the surface.
func (s Surface) Intersect(ray pt.Ray) (pt.Vector, error) {
	hit, _, err := s.intersect(ray)
	return hit, err
}

// Reflect advances the ray to the surface and folds its direction about the
// surface normal.
func Reflect(ray pt.Ray, s Surface) (pt.Ray, error) {
	hit, n, err := s.intersect(ray)
	if err != nil {
		return pt.Ray{}, err
	}
	d := ray.Direction.Normalize()
	out := d.Sub(n.MulScalar(2 * d.Dot(n)))
	return pt.Ray{Origin: hit, Direction: out}, nil
}

// Refract advances the ray to the surface and bends its direction with the
// field-flattening law used by the scan lens: the tangent of the exit angle
// equals k times the incidence angle in radians. The surface normal must
// face the incident beam. Exact normal incidence passes through undeviated.
func Refract(ray pt.Ray, s Surface, k float64) (pt.Ray, error) {
	if !finite(k) {
		return pt.Ray{}, fmt.Errorf("%w: non-finite lens coefficient", ErrInvalidParameter)
	}
	hit, n, err := s.intersect(ray)
	if err != nil {
		return pt.Ray{}, err
	}
	d := ray.Direction.Normalize()
	cosI := -d.Dot(n)
	if cosI <= 0 {
		return pt.Ray{}, fmt.Errorf("%w: refracting surface normal must face the incident ray", ErrDegenerateGeometry)
	}
	theta := 0.0
	if cosI < 1 {
		theta = math.Acos(cosI)
	}
	tangent := d.Add(n.MulScalar(cosI))
	if theta == 0 || tangent.Length() < parallelEps {
		return pt.Ray{Origin: hit, Direction: d}, nil
	}
	scale := 1 / math.Sqrt(1+k*k*theta*theta)
	out := n.MulScalar(-scale).Add(tangent.Normalize().MulScalar(k * theta * scale))
	return pt.Ray{Origin: hit, Direction: out.Normalize()}, nil
}

// RefractSnell advances the ray to the surface and bends its direction with
// the standard vector form of Snell's law, where eta is the ratio of the
// incident to the transmitted refractive index. A total internal reflection
// condition is surfaced as an error rather than clamped away.
func RefractSnell(ray pt.Ray, s Surface, eta float64) (pt.Ray, error) {
	if !finite(eta) || eta <= 0 {
		return pt.Ray{}, fmt.Errorf("%w: refractive index ratio must be positive and finite", ErrInvalidParameter)
	}
	hit, n, err := s.intersect(ray)
	if err != nil {
		return pt.Ray{}, err
	}
	d := ray.Direction.Normalize()
	cosI := -d.Dot(n)
	if cosI <= 0 {
		return pt.Ray{}, fmt.Errorf("%w: refracting surface normal must face the incident ray", ErrDegenerateGeometry)
	}
	sin2T := eta * eta * (1 - cosI*cosI)
	if sin2T > 1 {
		return pt.Ray{}, fmt.Errorf("%w: total internal reflection", ErrDegenerateGeometry)
	}
	out := d.MulScalar(eta).Add(n.MulScalar(eta*cosI - math.Sqrt(1-sin2T)))
	return pt.Ray{Origin: hit, Direction: out.Normalize()}, nil
}
