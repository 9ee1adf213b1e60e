package galvo

import (
	"errors"
	"fmt"
	"math"

	"github.com/fogleman/pt/pt"
)

// Error taxonomy for the tracing pipeline. Every failure is detected at the
// point of computation and returned immediately; nothing is clamped or
// recovered internally.
var (
	// ErrDegenerateGeometry covers zero-length normals and rotation axes,
	// rays parallel to a surface, surfaces behind the ray origin, and
	// total internal reflection.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
	// ErrInvalidPipelineState means scan/refract/trace ran before a ray
	// was set.
	ErrInvalidPipelineState = errors.New("invalid pipeline state")
	// ErrInvalidParameter covers non-finite or out-of-range inputs.
	ErrInvalidParameter = errors.New("invalid parameter")
)

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func finiteVector(v pt.Vector) bool {
	return finite(v.X, v.Y, v.Z)
}

// unit normalizes v, rejecting zero-length and non-finite input.
func unit(v pt.Vector, what string) (pt.Vector, error) {
	if !finiteVector(v) {
		return pt.Vector{}, fmt.Errorf("%w: %s has non-finite components", ErrInvalidParameter, what)
	}
	if v.Length() == 0 {
		return pt.Vector{}, fmt.Errorf("%w: zero-length %s", ErrDegenerateGeometry, what)
	}
	return v.Normalize(), nil
}
