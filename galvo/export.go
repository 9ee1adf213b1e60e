package galvo

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fogleman/pt/pt"
)

// JSON schema types for external viewers.
type PointJSON struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
	Name string  `json:"name,omitempty"`
}

type PathJSON struct {
	Points []PointJSON `json:"points"`
	Name   string      `json:"name,omitempty"`
	Color  string      `json:"color,omitempty"`
}

type SpotJSON struct {
	XAngle float64   `json:"xAngle"`
	YAngle float64   `json:"yAngle"`
	Point  PointJSON `json:"point"`
}

// ScanJSON is the document written for one sweep: the relative focus-plane
// spots plus any traced beam paths.
type ScanJSON struct {
	Reference PointJSON  `json:"reference"`
	Spots     []SpotJSON `json:"spots"`
	BeamPaths []PathJSON `json:"beamPaths,omitempty"`
}

func VectorToJSON(v pt.Vector) PointJSON {
	return PointJSON{X: v.X, Y: v.Y, Z: v.Z}
}

// TraceToPathJSON converts one traced pass into a named viewer path.
func TraceToPathJSON(res TraceResult, name string) PathJSON {
	points := make([]PointJSON, len(res.Path))
	for i, v := range res.Path {
		points[i] = VectorToJSON(v)
	}
	return PathJSON{Points: points, Name: name}
}

// SaveScanToJSON writes a sweep and optional traced paths to a JSON file.
func SaveScanToJSON(filename string, sweep SweepResult, traces []TraceResult) error {
	doc := ScanJSON{
		Reference: VectorToJSON(sweep.Reference),
		Spots:     make([]SpotJSON, len(sweep.Points)),
	}
	for i, p := range sweep.Points {
		doc.Spots[i] = SpotJSON{
			XAngle: p.XAngle,
			YAngle: p.YAngle,
			Point:  VectorToJSON(p.Point),
		}
	}
	for i, tr := range traces {
		doc.BeamPaths = append(doc.BeamPaths, TraceToPathJSON(tr, fmt.Sprintf("trace_%d", i)))
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling scan document: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("writing scan document: %w", err)
	}
	return nil
}
