package galvo

import (
	"fmt"

	"github.com/fogleman/pt/pt"
)

// NewRay builds a ray from an origin and a direction. The direction is
// normalized so that repeated reflection and refraction stay numerically
// stable regardless of the caller's magnitude convention.
func NewRay(origin, direction pt.Vector) (pt.Ray, error) {
	if !finiteVector(origin) {
		return pt.Ray{}, fmt.Errorf("%w: ray origin has non-finite components", ErrInvalidParameter)
	}
	dir, err := unit(direction, "ray direction")
	if err != nil {
		return pt.Ray{}, err
	}
	return pt.Ray{Origin: origin, Direction: dir}, nil
}
