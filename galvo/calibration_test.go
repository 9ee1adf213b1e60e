package galvo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalibrationNilPassthrough(t *testing.T) {
	var c *Calibration
	x, y := c.Apply(3.5, -2)
	assert.Equal(t, 3.5, x)
	assert.Equal(t, -2.0, y)
}

func TestCalibrationIdentityTable(t *testing.T) {
	c := NewCalibration(
		map[float64]float64{-10: -10, 0: 0, 10: 10},
		nil,
	)
	x, y := c.Apply(5, 7)
	assert.InDelta(t, 5.0, x, 1e-12)
	assert.Equal(t, 7.0, y, "uncalibrated axis passes through")
}

func TestCalibrationInterpolates(t *testing.T) {
	c := NewCalibration(
		map[float64]float64{0: 0, 10: 20},
		map[float64]float64{0: 0, 10: 5},
	)
	x, y := c.Apply(5, 5)
	assert.InDelta(t, 10.0, x, 1e-12)
	assert.InDelta(t, 2.5, y, 1e-12)
}

func TestTraceAppliesCalibration(t *testing.T) {
	ray := mustRay(t, 0, 0, 0, 1, 0, 0)

	calibrated := canonicalScanner(t)
	calibrated.Calibration = NewCalibration(map[float64]float64{-10: -5, 0: 0, 10: 5}, nil)
	got, err := calibrated.TraceRay(ray, 10, 0)
	assert.NoError(t, err)

	plain := canonicalScanner(t)
	want, err := plain.TraceRay(ray, 5, 0)
	assert.NoError(t, err)

	assertVecClose(t, want.Point, got.Point, 1e-12)
}
