package galvo

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSaveScanToJSON(t *testing.T) {
	assert := assert.New(t)
	g := canonicalScanner(t)
	ray := mustRay(t, 0, 0, 0, 1, 0, 0)

	sweep, err := Sweep(g, ray, SweepParams{MinAngle: -2, MaxAngle: 2, Steps: 3})
	assert.NoError(err)
	trace, err := g.TraceRay(ray, 0, 0)
	assert.NoError(err)

	path := filepath.Join(t.TempDir(), "scan.json")
	assert.NoError(SaveScanToJSON(path, sweep, []TraceResult{trace}))

	data, err := os.ReadFile(path)
	assert.NoError(err)

	var doc ScanJSON
	assert.NoError(json.Unmarshal(data, &doc))
	assert.Len(doc.Spots, 9)
	assert.Len(doc.BeamPaths, 1)
	assert.Equal("trace_0", doc.BeamPaths[0].Name)
	assert.Len(doc.BeamPaths[0].Points, len(trace.Path))
	assert.InDelta(10.0, doc.Reference.Y, 1e-9)
}
