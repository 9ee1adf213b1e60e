package config

// ScannerConfig is the complete configuration for one galvo scanner bench.
type ScannerConfig struct {
	Metadata    Metadata    `yaml:"metadata"`
	Geometry    Geometry    `yaml:"geometry"`
	Beam        Beam        `yaml:"beam"`
	Lens        Lens        `yaml:"lens"`
	Layout      *Layout     `yaml:"layout,omitempty"`
	Sweep       Sweep       `yaml:"sweep"`
	Calibration Calibration `yaml:"calibration"`
}

type Metadata struct {
	Timestamp string `yaml:"timestamp"` // YYYY-MM-DD HH:MM:SS in UTC
	GitCommit string `yaml:"git_commit"`
}

type Geometry struct {
	// Distance from the field lens to the focus plane.
	FocusDistance float64 `yaml:"focus_distance"`
	// Separation between the X and Y scan mirrors.
	GalvoGap float64 `yaml:"galvo_gap"`
}

type Beam struct {
	Origin    [3]float64 `yaml:"origin"`
	Direction [3]float64 `yaml:"direction"`
}

type Lens struct {
	// Model is "field_flattening" (k bends the exit tangent) or "snell"
	// (k is a refractive index ratio).
	Model string  `yaml:"model"`
	K     float64 `yaml:"k"`
}

type Mirror struct {
	Position     [3]float64 `yaml:"position"`
	Normal       [3]float64 `yaml:"normal"`
	RotationAxis [3]float64 `yaml:"rotation_axis"`
}

type Plane struct {
	Point  [3]float64 `yaml:"point"`
	Normal [3]float64 `yaml:"normal"`
}

// Layout overrides the built-in reference bench geometry.
type Layout struct {
	FoldMirrors []Plane `yaml:"fold_mirrors,omitempty"`
	MirrorX     Mirror  `yaml:"mirror_x"`
	MirrorY     Mirror  `yaml:"mirror_y"`
	Lens        Plane   `yaml:"lens"`
}

type Sweep struct {
	MinAngle float64 `yaml:"min_angle"`
	MaxAngle float64 `yaml:"max_angle"`
	Steps    int     `yaml:"steps"`
}

// Calibration holds per-axis command-to-optical angle tables in degrees.
type Calibration struct {
	X map[float64]float64 `yaml:"x,omitempty"`
	Y map[float64]float64 `yaml:"y,omitempty"`
}

const (
	LensModelFieldFlattening = "field_flattening"
	LensModelSnell           = "snell"
)

// Default returns the configuration of the reference bench the regression
// fixtures were measured on.
func Default() *ScannerConfig {
	return &ScannerConfig{
		Geometry: Geometry{
			FocusDistance: 165,
			GalvoGap:      13.05,
		},
		Beam: Beam{
			Origin:    [3]float64{0, 0, 0},
			Direction: [3]float64{0, 1, 0},
		},
		Lens: Lens{
			Model: LensModelFieldFlattening,
			K:     -1,
		},
		Sweep: Sweep{
			MinAngle: -11,
			MaxAngle: 11,
			Steps:    23,
		},
	}
}
