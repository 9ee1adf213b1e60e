package galvo

import (
	"fmt"
	"math"

	"github.com/fogleman/pt/pt"
	"gonum.org/v1/gonum/mat"
)

// RotateVector rotates v about axis by angleDeg degrees using Rodrigues'
// rotation formula. The axis is normalized internally; v keeps its
// magnitude (the rotation is an orthogonal transform).
func RotateVector(v, axis pt.Vector, angleDeg float64) (pt.Vector, error) {
	if !finite(angleDeg) {
		return pt.Vector{}, fmt.Errorf("%w: non-finite rotation angle", ErrInvalidParameter)
	}
	if !finiteVector(v) {
		return pt.Vector{}, fmt.Errorf("%w: vector has non-finite components", ErrInvalidParameter)
	}
	k, err := unit(axis, "rotation axis")
	if err != nil {
		return pt.Vector{}, err
	}
	if angleDeg == 0 {
		return v, nil
	}
	theta := pt.Radians(angleDeg)
	cos := math.Cos(theta)
	sin := math.Sin(theta)
	return v.MulScalar(cos).
		Add(k.Cross(v).MulScalar(sin)).
		Add(k.MulScalar(k.Dot(v) * (1 - cos))), nil
}

// axisRotation builds the rotation matrix about one of the canonical basis
// axes (0 = X, 1 = Y, 2 = Z).
func axisRotation(axis int, theta float64) *mat.Dense {
	c, s := math.Cos(theta), math.Sin(theta)
	switch axis {
	case 0:
		return mat.NewDense(3, 3, []float64{
			1, 0, 0,
			0, c, -s,
			0, s, c,
		})
	case 1:
		return mat.NewDense(3, 3, []float64{
			c, 0, s,
			0, 1, 0,
			-s, 0, c,
		})
	default:
		return mat.NewDense(3, 3, []float64{
			c, -s, 0,
			s, c, 0,
			0, 0, 1,
		})
	}
}

// RotateNormal rotates a normal vector about the canonical X, Y and Z axes
// in that order, by the respective angles in degrees. The X->Y->Z order is
// a fixed convention and is not commutative. The input is normalized to a
// unit normal first.
//
// Sign convention is right-handed: RotateNormal(V(1,0,0), [3]float64{0, 90, 0})
// lands on (0, 0, -1).
func RotateNormal(normal pt.Vector, anglesDeg [3]float64) (pt.Vector, error) {
	if !finite(anglesDeg[0], anglesDeg[1], anglesDeg[2]) {
		return pt.Vector{}, fmt.Errorf("%w: non-finite rotation angle", ErrInvalidParameter)
	}
	n, err := unit(normal, "normal vector")
	if err != nil {
		return pt.Vector{}, err
	}
	cur := mat.NewVecDense(3, []float64{n.X, n.Y, n.Z})
	for axis, deg := range anglesDeg {
		next := mat.NewVecDense(3, nil)
		next.MulVec(axisRotation(axis, pt.Radians(deg)), cur)
		cur = next
	}
	return V(cur.AtVec(0), cur.AtVec(1), cur.AtVec(2)), nil
}

// TranslatePosition shifts a position by a translation vector.
func TranslatePosition(position, translation pt.Vector) pt.Vector {
	return position.Add(translation)
}
