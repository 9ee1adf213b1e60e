package main

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fogleman/pt/pt"

	"github.com/laserforge/go-galvo-scanner/galvo"
	galvoConfig "github.com/laserforge/go-galvo-scanner/galvo/config"
	galvoExperiment "github.com/laserforge/go-galvo-scanner/galvo/experiment"
)

var CLI struct {
	Trace TraceCmd `cmd:"" help:"Trace one commanded angle pair to the focus plane"`
	Sweep SweepCmd `cmd:"" help:"Trace a grid of angle pairs and report the focus plane distribution"`
}

func saveImage(filename string, i image.Image) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, i)
}

func vec3(a [3]float64) pt.Vector {
	return galvo.V(a[0], a[1], a[2])
}

func mirror(m galvoConfig.Mirror) galvo.ScanMirror {
	return galvo.ScanMirror{
		Position:     vec3(m.Position),
		Normal:       vec3(m.Normal),
		RotationAxis: vec3(m.RotationAxis),
	}
}

func plane(p galvoConfig.Plane) galvo.Surface {
	return galvo.Surface{Point: vec3(p.Point), Normal: vec3(p.Normal)}
}

// buildScanner maps a config file onto a configured pipeline and its
// input ray.
func buildScanner(path string) (*galvo.Galvanometer, pt.Ray, *galvoConfig.ScannerConfig, error) {
	cfg, err := galvoConfig.LoadFromFile(path, galvoConfig.LoadOptions{
		ValidateImmediately: true,
		ApplyDefaults:       true,
	})
	if err != nil {
		return nil, pt.Ray{}, nil, err
	}

	g, err := galvo.NewGalvanometer(cfg.Geometry.FocusDistance, cfg.Geometry.GalvoGap)
	if err != nil {
		return nil, pt.Ray{}, nil, err
	}
	if cfg.Lens.Model == galvoConfig.LensModelSnell {
		g.LensModel = galvo.LensSnell
	}
	g.LensK = cfg.Lens.K
	if cfg.Layout != nil {
		layout := galvo.OpticalLayout{
			MirrorX: mirror(cfg.Layout.MirrorX),
			MirrorY: mirror(cfg.Layout.MirrorY),
			Lens:    plane(cfg.Layout.Lens),
		}
		for _, fold := range cfg.Layout.FoldMirrors {
			layout.FoldMirrors = append(layout.FoldMirrors, plane(fold))
		}
		g.Layout = layout
	}
	if len(cfg.Calibration.X) > 0 || len(cfg.Calibration.Y) > 0 {
		g.Calibration = galvo.NewCalibration(cfg.Calibration.X, cfg.Calibration.Y)
	}

	ray, err := galvo.NewRay(vec3(cfg.Beam.Origin), vec3(cfg.Beam.Direction))
	if err != nil {
		return nil, pt.Ray{}, nil, err
	}
	return g, ray, cfg, nil
}

type TraceCmd struct {
	Config string  `arg:"" name:"config" help:"scanner config file"`
	XAngle float64 `name:"x" default:"0" help:"mirror X angle in degrees"`
	YAngle float64 `name:"y" default:"0" help:"mirror Y angle in degrees"`
}

func (c TraceCmd) Run() error {
	g, ray, _, err := buildScanner(c.Config)
	if err != nil {
		return err
	}
	res, err := g.TraceRay(ray, c.XAngle, c.YAngle)
	if err != nil {
		return err
	}
	fmt.Printf("focus point: {%g, %g, %g}\n", res.Point.X, res.Point.Y, res.Point.Z)
	return nil
}

type SweepCmd struct {
	Config   string `arg:"" name:"config" help:"scanner config file"`
	PlotSize int    `name:"plot-size" default:"800" help:"spot diagram size in points"`
	SkipPlot bool   `name:"skip-plot" help:"don't render the spot diagram"`
}

func (c SweepCmd) Run() error {
	g, ray, cfg, err := buildScanner(c.Config)
	if err != nil {
		return err
	}

	run, err := galvoExperiment.Create()
	if err != nil {
		return err
	}
	if err := run.CopyConfigFile(c.Config); err != nil {
		return err
	}

	result, err := galvo.Sweep(g, ray, galvo.SweepParams{
		MinAngle: cfg.Sweep.MinAngle,
		MaxAngle: cfg.Sweep.MaxAngle,
		Steps:    cfg.Sweep.Steps,
	})
	if err != nil {
		return err
	}

	if err := result.WriteCSV(run.FilePath("points.csv")); err != nil {
		return err
	}
	if err := galvo.SaveScanToJSON(run.FilePath("scan.json"), result, nil); err != nil {
		return err
	}

	metrics := result.Metrics()
	fmt.Printf("traced %d points\n", len(result.Points))
	fmt.Printf("reference point: {%g, %g, %g}\n", result.Reference.X, result.Reference.Y, result.Reference.Z)
	fmt.Printf("spot centroid:   {%g, %g, %g}\n", metrics.Centroid.X, metrics.Centroid.Y, metrics.Centroid.Z)
	fmt.Printf("rms spot radius: %g\n", metrics.RMSRadius)

	if !c.SkipPlot {
		img, err := galvo.PlotSpotDiagram(result, g.Layout.FocusPlane(g.FocusDistance), c.PlotSize, c.PlotSize)
		if err != nil {
			return err
		}
		if err := saveImage(run.FilePath("spots.png"), img); err != nil {
			return err
		}
	}

	fmt.Printf("results written to %s\n", run.Path)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI)
	err := ctx.Run()
	if err != nil {
		log.Fatal(err)
	}
}
