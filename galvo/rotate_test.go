package galvo

import (
	"math"
	"testing"

	"github.com/fogleman/pt/pt"
	"github.com/stretchr/testify/assert"
)

func assertVecClose(t *testing.T, want, got pt.Vector, tol float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, "X of %v vs %v", want, got)
	assert.InDelta(t, want.Y, got.Y, tol, "Y of %v vs %v", want, got)
	assert.InDelta(t, want.Z, got.Z, tol, "Z of %v vs %v", want, got)
}

func TestRotateVectorPreservesMagnitude(t *testing.T) {
	assert := assert.New(t)
	vectors := []pt.Vector{V(1, 0, 0), V(1, 2, 3), V(-4, 0.5, 2), V(0, 0, 7)}
	axes := []pt.Vector{V(1, 0, 0), V(0, 1, 0), V(0, 0, 1), V(1, 1, 1), V(-2, 3, 0.5)}
	angles := []float64{0, 15, 90, 123.4, -77, 360}
	for _, v := range vectors {
		for _, axis := range axes {
			for _, angle := range angles {
				got, err := RotateVector(v, axis, angle)
				assert.NoError(err)
				assert.InDelta(v.Length(), got.Length(), 1e-9)
			}
		}
	}
}

func TestRotateVectorIdentity(t *testing.T) {
	v := V(3, -2, 0.5)
	got, err := RotateVector(v, V(1, 1, 1), 0)
	assert.NoError(t, err)
	assert.Equal(t, v, got)
}

func TestRotateVectorKnown(t *testing.T) {
	tests := []struct {
		name   string
		v      pt.Vector
		axis   pt.Vector
		angle  float64
		expect pt.Vector
	}{
		{"x_about_z", V(1, 0, 0), V(0, 0, 1), 90, V(0, 1, 0)},
		{"x_about_y", V(1, 0, 0), V(0, 1, 0), 90, V(0, 0, -1)},
		{"y_about_x", V(0, 1, 0), V(1, 0, 0), 90, V(0, 0, 1)},
		{"axis_not_unit", V(1, 0, 0), V(0, 0, 5), 90, V(0, 1, 0)},
		{"half_turn", V(1, 2, 0), V(0, 0, 1), 180, V(-1, -2, 0)},
		{"magnitude_kept", V(2, 0, 0), V(0, 1, 0), 90, V(0, 0, -2)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := RotateVector(test.v, test.axis, test.angle)
			assert.NoError(t, err)
			assertVecClose(t, test.expect, got, 1e-12)
		})
	}
}

func TestRotateVectorDegenerate(t *testing.T) {
	assert := assert.New(t)

	_, err := RotateVector(V(1, 0, 0), V(0, 0, 0), 45)
	assert.ErrorIs(err, ErrDegenerateGeometry)

	_, err = RotateVector(V(1, 0, 0), V(0, 0, 1), math.NaN())
	assert.ErrorIs(err, ErrInvalidParameter)

	_, err = RotateVector(V(math.Inf(1), 0, 0), V(0, 0, 1), 45)
	assert.ErrorIs(err, ErrInvalidParameter)
}

func TestRotateNormalOrder(t *testing.T) {
	// X rotation by 0 is a no-op, so this must match a pure Y rotation.
	got, err := RotateNormal(V(1, 0, 0), [3]float64{0, 90, 0})
	assert.NoError(t, err)
	assertVecClose(t, V(0, 0, -1), got, 1e-12)

	viaRodrigues, err := RotateVector(V(1, 0, 0), V(0, 1, 0), 90)
	assert.NoError(t, err)
	assertVecClose(t, viaRodrigues, got, 1e-12)
}

func TestRotateNormalSequence(t *testing.T) {
	// X by 90 sends (0,1,0) to (0,0,1); Y by 90 sends that to (1,0,0);
	// Z by 90 closes the cycle.
	got, err := RotateNormal(V(0, 1, 0), [3]float64{90, 90, 90})
	assert.NoError(t, err)
	assertVecClose(t, V(0, 1, 0), got, 1e-12)
}

func TestRotateNormalNormalizesInput(t *testing.T) {
	got, err := RotateNormal(V(0, 0, 2), [3]float64{0, 0, 0})
	assert.NoError(t, err)
	assertVecClose(t, V(0, 0, 1), got, 1e-12)
}

func TestRotateNormalDegenerate(t *testing.T) {
	_, err := RotateNormal(V(0, 0, 0), [3]float64{10, 20, 30})
	assert.ErrorIs(t, err, ErrDegenerateGeometry)

	_, err = RotateNormal(V(1, 0, 0), [3]float64{math.NaN(), 0, 0})
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestTranslatePositionComposes(t *testing.T) {
	p := V(1, 2, 3)
	a := V(10, -5, 0.5)
	b := V(-3, 4, 2)

	stepwise := TranslatePosition(TranslatePosition(p, a), b)
	combined := TranslatePosition(p, a.Add(b))
	assert.Equal(t, combined, stepwise)

	swapped := TranslatePosition(TranslatePosition(p, b), a)
	assert.Equal(t, stepwise, swapped)
}
