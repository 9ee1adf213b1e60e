package config

import (
	"fmt"
	"math"
	"strings"
)

// Validation helper functions
func validateFinite(field string, value float64) []ValidationError {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return []ValidationError{{
			Field:   field,
			Message: "must be finite",
		}}
	}
	return nil
}

func validateNonNegative(field string, value float64) []ValidationError {
	if math.IsNaN(value) || value < 0 {
		return []ValidationError{{
			Field:   field,
			Message: "must be non-negative",
		}}
	}
	return nil
}

func validateNonZeroVector(field string, vec [3]float64) []ValidationError {
	length := math.Sqrt(vec[0]*vec[0] + vec[1]*vec[1] + vec[2]*vec[2])
	if math.IsNaN(length) || length == 0 {
		return []ValidationError{{
			Field:   field,
			Message: "must have non-zero length",
		}}
	}
	return nil
}

func validateAngleRange(field string, angle float64) []ValidationError {
	if math.IsNaN(angle) || angle < -180 || angle > 180 {
		return []ValidationError{{
			Field:   field,
			Message: "angle must be between -180 and 180 degrees",
		}}
	}
	return nil
}

// ValidationError represents a structured validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// FormatValidationErrors renders all errors as one readable block
func FormatValidationErrors(errs []ValidationError) string {
	if len(errs) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Validation Errors:\n")
	for _, err := range errs {
		fmt.Fprintf(&b, "  %s\n", err.Error())
	}
	return b.String()
}

// Validate checks the whole configuration and returns every problem found.
func (c *ScannerConfig) Validate() []ValidationError {
	var errs []ValidationError

	errs = append(errs, validateNonNegative("geometry.focus_distance", c.Geometry.FocusDistance)...)
	errs = append(errs, validateNonNegative("geometry.galvo_gap", c.Geometry.GalvoGap)...)

	errs = append(errs, validateNonZeroVector("beam.direction", c.Beam.Direction)...)
	for i, v := range c.Beam.Origin {
		errs = append(errs, validateFinite(fmt.Sprintf("beam.origin[%d]", i), v)...)
	}

	switch c.Lens.Model {
	case "", LensModelFieldFlattening:
		errs = append(errs, validateFinite("lens.k", c.Lens.K)...)
	case LensModelSnell:
		if !(c.Lens.K > 0) || math.IsInf(c.Lens.K, 0) {
			errs = append(errs, ValidationError{
				Field:   "lens.k",
				Message: "snell model needs a positive finite index ratio",
			})
		}
	default:
		errs = append(errs, ValidationError{
			Field:   "lens.model",
			Message: fmt.Sprintf("unknown model %q", c.Lens.Model),
		})
	}

	if c.Layout != nil {
		for i, fold := range c.Layout.FoldMirrors {
			errs = append(errs, validateNonZeroVector(fmt.Sprintf("layout.fold_mirrors[%d].normal", i), fold.Normal)...)
		}
		errs = append(errs, validateNonZeroVector("layout.mirror_x.normal", c.Layout.MirrorX.Normal)...)
		errs = append(errs, validateNonZeroVector("layout.mirror_x.rotation_axis", c.Layout.MirrorX.RotationAxis)...)
		errs = append(errs, validateNonZeroVector("layout.mirror_y.normal", c.Layout.MirrorY.Normal)...)
		errs = append(errs, validateNonZeroVector("layout.mirror_y.rotation_axis", c.Layout.MirrorY.RotationAxis)...)
		errs = append(errs, validateNonZeroVector("layout.lens.normal", c.Layout.Lens.Normal)...)
	}

	if c.Sweep.Steps != 0 {
		if c.Sweep.Steps < 2 {
			errs = append(errs, ValidationError{
				Field:   "sweep.steps",
				Message: "must be at least 2",
			})
		}
		errs = append(errs, validateAngleRange("sweep.min_angle", c.Sweep.MinAngle)...)
		errs = append(errs, validateAngleRange("sweep.max_angle", c.Sweep.MaxAngle)...)
		if c.Sweep.MinAngle >= c.Sweep.MaxAngle {
			errs = append(errs, ValidationError{
				Field:   "sweep.min_angle",
				Message: "must be less than sweep.max_angle",
			})
		}
	}

	return errs
}
