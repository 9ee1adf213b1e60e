package galvo

import (
	"github.com/fogleman/pt/pt"
)

// ScanMirror is a rotatable mirror: a nominal surface plus the axis its
// galvanometer rotates it about.
type ScanMirror struct {
	Position     pt.Vector
	Normal       pt.Vector
	RotationAxis pt.Vector
}

// rotated returns the mirror surface with its nominal normal rotated by the
// commanded angle in degrees.
func (m ScanMirror) rotated(angleDeg float64) (Surface, error) {
	n, err := unit(m.Normal, "mirror normal")
	if err != nil {
		return Surface{}, err
	}
	rn, err := RotateVector(n, m.RotationAxis, angleDeg)
	if err != nil {
		return Surface{}, err
	}
	return Surface{Point: m.Position, Normal: rn}, nil
}

// OpticalLayout fixes the bench geometry: optional fold mirrors ahead of
// the scan pair, the X and Y scan mirrors, and the field lens. The focus
// plane is derived from the lens.
//
// All surface normals and the beam folding convention come from the bench
// this package was validated against; refracting surfaces must have their
// normal facing the incident beam.
type OpticalLayout struct {
	FoldMirrors []Surface
	MirrorX     ScanMirror
	MirrorY     ScanMirror
	Lens        Surface
}

// FocusPlane returns the plane focusDistance downstream of the field lens,
// perpendicular to the lens normal. Downstream means against the lens
// normal, since the normal faces the incoming beam.
func (l OpticalLayout) FocusPlane(focusDistance float64) Surface {
	n := l.Lens.Normal.Normalize()
	return Surface{
		Point:  l.Lens.Point.Sub(n.MulScalar(focusDistance)),
		Normal: l.Lens.Normal,
	}
}

// ReferenceLayout reproduces the multi-axis bench the pinned regression
// fixtures were measured on: two fixed fold mirrors lift the beam from the
// source, the scan mirrors sit gap apart along X, and the field lens faces
// the descending beam.
func ReferenceLayout(gap float64) OpticalLayout {
	return OpticalLayout{
		FoldMirrors: []Surface{
			{Point: V(0, 20, 0), Normal: V(0, 1, -1)},
			{Point: V(0, 20, 200), Normal: V(0, 1, -1)},
		},
		MirrorX: ScanMirror{Position: V(0, 180, 200), Normal: V(-1, 1, 0), RotationAxis: V(0, 0, 1)},
		MirrorY: ScanMirror{Position: V(gap, 180, 200), Normal: V(1, 0, 1), RotationAxis: V(0, 1, 0)},
		Lens:    Surface{Point: V(gap, 180, 170), Normal: V(0, 0, 1)},
	}
}

// CanonicalLayout is the minimal two-mirror bench: mirror X at the origin
// folds a +X beam to +Y, mirror Y sits gap further along and folds it to
// +Z, and the field lens sits immediately after mirror Y.
func CanonicalLayout(gap float64) OpticalLayout {
	return OpticalLayout{
		MirrorX: ScanMirror{Position: V(0, 0, 0), Normal: V(-1, 1, 0), RotationAxis: V(0, 0, 1)},
		MirrorY: ScanMirror{Position: V(0, gap, 0), Normal: V(0, 1, -1), RotationAxis: V(1, 0, 0)},
		Lens:    Surface{Point: V(0, gap, 0), Normal: V(0, 0, -1)},
	}
}
