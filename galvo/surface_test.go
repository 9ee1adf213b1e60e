package galvo

import (
	"math"
	"testing"

	"github.com/fogleman/pt/pt"
	"github.com/stretchr/testify/assert"
)

func mustRay(t *testing.T, ox, oy, oz, dx, dy, dz float64) pt.Ray {
	t.Helper()
	r, err := NewRay(V(ox, oy, oz), V(dx, dy, dz))
	assert.NoError(t, err)
	return r
}

func TestIntersect(t *testing.T) {
	assert := assert.New(t)
	s := Surface{Point: V(0, 5, 0), Normal: V(0, 1, 0)}

	hit, err := s.Intersect(mustRay(t, 0, 0, 0, 0, 1, 0))
	assert.NoError(err)
	assertVecClose(t, V(0, 5, 0), hit, 1e-12)

	// Oblique approach still lands on the plane.
	hit, err = s.Intersect(mustRay(t, 0, 0, 0, 1, 1, 0))
	assert.NoError(err)
	assertVecClose(t, V(5, 5, 0), hit, 1e-12)
}

func TestIntersectDegenerate(t *testing.T) {
	assert := assert.New(t)
	s := Surface{Point: V(0, 5, 0), Normal: V(0, 1, 0)}

	_, err := s.Intersect(mustRay(t, 0, 0, 0, 1, 0, 0))
	assert.ErrorIs(err, ErrDegenerateGeometry, "parallel ray")

	_, err = s.Intersect(mustRay(t, 0, 10, 0, 0, 1, 0))
	assert.ErrorIs(err, ErrDegenerateGeometry, "surface behind origin")

	_, err = s.Intersect(pt.Ray{Origin: V(0, 0, 0), Direction: V(0, 1, 0)})
	assert.NoError(err)

	zero := Surface{Point: V(0, 5, 0), Normal: V(0, 0, 0)}
	_, err = zero.Intersect(mustRay(t, 0, 0, 0, 0, 1, 0))
	assert.ErrorIs(err, ErrDegenerateGeometry, "zero normal")
}

func TestReflect(t *testing.T) {
	// The first fold mirror of the reference bench turns a +Y beam into +Z.
	out, err := Reflect(mustRay(t, 0, 0, 0, 0, 1, 0), Surface{Point: V(0, 20, 0), Normal: V(0, 1, -1)})
	assert.NoError(t, err)
	assertVecClose(t, V(0, 20, 0), out.Origin, 1e-12)
	assertVecClose(t, V(0, 0, 1), out.Direction, 1e-12)
}

func TestReflectNormalizesDirection(t *testing.T) {
	// A non-unit incoming direction still yields a unit reflected one.
	out, err := Reflect(pt.Ray{Origin: V(0, 0, 0), Direction: V(0, 3, 0)}, Surface{Point: V(0, 5, 0), Normal: V(0, 1, 0)})
	assert.NoError(t, err)
	assert.InDelta(t, 1.0, out.Direction.Length(), 1e-12)
	assertVecClose(t, V(0, -1, 0), out.Direction, 1e-12)
}

func TestReflectInvolution(t *testing.T) {
	// Two parallel mirrors with identical normals restore the direction.
	in := mustRay(t, 0, 0, 0, 1, 1, 0)
	first, err := Reflect(in, Surface{Point: V(0, 5, 0), Normal: V(0, 1, 0)})
	assert.NoError(t, err)
	second, err := Reflect(first, Surface{Point: V(0, 0, 0), Normal: V(0, 1, 0)})
	assert.NoError(t, err)
	assertVecClose(t, in.Direction, second.Direction, 1e-12)
}

func TestReflectDegenerate(t *testing.T) {
	assert := assert.New(t)

	_, err := Reflect(mustRay(t, 0, 0, 0, 0, 1, 0), Surface{Point: V(0, 5, 0), Normal: V(0, 0, 0)})
	assert.ErrorIs(err, ErrDegenerateGeometry)

	_, err = Reflect(mustRay(t, 0, 0, 0, 1, 0, 0), Surface{Point: V(0, 5, 0), Normal: V(0, 1, 0)})
	assert.ErrorIs(err, ErrDegenerateGeometry)
}

func TestRefractNormalIncidence(t *testing.T) {
	// Straight into the lens: the ray advances but is not bent.
	in := mustRay(t, 0, 5, 0, 0, -1, 0)
	out, err := Refract(in, Surface{Point: V(0, 0, 0), Normal: V(0, 1, 0)}, -1)
	assert.NoError(t, err)
	assertVecClose(t, V(0, 0, 0), out.Origin, 1e-12)
	assertVecClose(t, V(0, -1, 0), out.Direction, 1e-12)
}

func TestRefractFieldFlattening(t *testing.T) {
	// 45 degree incidence with k=-1; values pinned to the reference
	// implementation of the bending law.
	d := V(1, -1, 0).Normalize()
	out, err := Refract(pt.Ray{Origin: V(0, 1, 0), Direction: d}, Surface{Point: V(0, 0, 0), Normal: V(0, 1, 0)}, -1)
	assert.NoError(t, err)
	assertVecClose(t, V(1, 0, 0), out.Origin, 1e-12)
	assertVecClose(t, V(-0.6176678248388561, -0.7864391000953833, 0), out.Direction, 1e-9)
	assert.InDelta(t, 1.0, out.Direction.Length(), 1e-12)
}

func TestRefractNormalMustFaceBeam(t *testing.T) {
	d := V(1, -1, 0).Normalize()
	_, err := Refract(pt.Ray{Origin: V(0, 1, 0), Direction: d}, Surface{Point: V(0, 0, 0), Normal: V(0, -1, 0)}, -1)
	assert.ErrorIs(t, err, ErrDegenerateGeometry)
}

func TestRefractInvalidCoefficient(t *testing.T) {
	in := mustRay(t, 0, 5, 0, 0, -1, 0)
	_, err := Refract(in, Surface{Point: V(0, 0, 0), Normal: V(0, 1, 0)}, math.NaN())
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestRefractSnell(t *testing.T) {
	// Air into glass (eta = 1/1.5) at 45 degrees bends toward the normal.
	d := V(1, -1, 0).Normalize()
	out, err := RefractSnell(pt.Ray{Origin: V(0, 1, 0), Direction: d}, Surface{Point: V(0, 0, 0), Normal: V(0, 1, 0)}, 1/1.5)
	assert.NoError(t, err)
	assertVecClose(t, V(1, 0, 0), out.Origin, 1e-12)
	assertVecClose(t, V(0.4714045207910317, -0.881917103688197, 0), out.Direction, 1e-9)
}

func TestRefractSnellUnityRatio(t *testing.T) {
	d := V(1, -1, 0).Normalize()
	out, err := RefractSnell(pt.Ray{Origin: V(0, 1, 0), Direction: d}, Surface{Point: V(0, 0, 0), Normal: V(0, 1, 0)}, 1)
	assert.NoError(t, err)
	assertVecClose(t, d, out.Direction, 1e-12)
}

func TestRefractSnellTotalInternalReflection(t *testing.T) {
	// Glass into air at 60 degrees: eta*sin(60) > 1, no transmitted ray.
	d := V(math.Sin(pt.Radians(60)), -math.Cos(pt.Radians(60)), 0)
	_, err := RefractSnell(pt.Ray{Origin: V(0, 1, 0), Direction: d}, Surface{Point: V(0, 0, 0), Normal: V(0, 1, 0)}, 1.5)
	assert.ErrorIs(t, err, ErrDegenerateGeometry)
}

func TestRefractSnellInvalidRatio(t *testing.T) {
	in := mustRay(t, 0, 5, 0, 0, -1, 0)
	_, err := RefractSnell(in, Surface{Point: V(0, 0, 0), Normal: V(0, 1, 0)}, -2)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}
