package galvo

import (
	"sort"

	lin "github.com/sgreben/piecewiselinear"
)

// Calibration corrects commanded angles for per-axis galvo nonlinearity.
// Each table maps a commanded angle in degrees to the optical angle the
// mirror actually reaches, interpolated piecewise-linearly between measured
// points. A nil Calibration or an empty table leaves the axis uncorrected.
type Calibration struct {
	xFunc, yFunc lin.Function
	hasX, hasY   bool
}

// NewCalibration builds a calibration from measured command-to-optical
// angle tables.
func NewCalibration(x, y map[float64]float64) *Calibration {
	c := &Calibration{}
	if len(x) > 0 {
		c.xFunc = tableFunc(x)
		c.hasX = true
	}
	if len(y) > 0 {
		c.yFunc = tableFunc(y)
		c.hasY = true
	}
	return c
}

func tableFunc(table map[float64]float64) lin.Function {
	xs := make([]float64, 0, len(table))
	for k := range table {
		xs = append(xs, k)
	}
	sort.Float64s(xs)
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = table[x]
	}
	return lin.Function{X: xs, Y: ys}
}

// Apply maps commanded angles to corrected optical angles.
func (c *Calibration) Apply(xAngle, yAngle float64) (float64, float64) {
	if c == nil {
		return xAngle, yAngle
	}
	if c.hasX {
		xAngle = c.xFunc.At(xAngle)
	}
	if c.hasY {
		yAngle = c.yFunc.At(yAngle)
	}
	return xAngle, yAngle
}
