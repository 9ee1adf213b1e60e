package galvo

import (
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"path"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/fogleman/gg"
	"github.com/fogleman/pt/pt"
)

// Point2D is a projected position in a surface's in-plane coordinates.
type Point2D struct {
	X, Y float64
}

func (p Point2D) Translate(x, y float64) Point2D {
	return Point2D{p.X + x, p.Y + y}
}

func (p Point2D) Scale(s float64) Point2D {
	return Point2D{p.X * s, p.Y * s}
}

// projection carries an in-plane basis so 3D points can be flattened onto a
// surface.
type projection struct {
	surface Surface
	u, v    pt.Vector
}

func newProjection(s Surface) projection {
	n := s.Normal.Normalize()
	u := perpendicular(n).Normalize()
	v := u.Cross(n).Normalize()
	return projection{surface: s, u: u, v: v}
}

func perpendicular(a pt.Vector) pt.Vector {
	if a.X == 0 && a.Y == 0 {
		if a.Z == 0 {
			return pt.Vector{}
		}
		return V(0, 1, 0)
	}
	return V(-a.Y, a.X, 0).Normalize()
}

// project flattens an absolute 3D position onto the surface.
func (p projection) project(point pt.Vector) Point2D {
	return p.projectOffset(point.Sub(p.surface.Point))
}

// projectOffset flattens a displacement that already lies in the surface.
func (p projection) projectOffset(d pt.Vector) Point2D {
	return Point2D{X: d.Dot(p.u), Y: d.Dot(p.v)}
}

// PlotSpotDiagram renders the sweep's relative landing points in the focus
// plane's coordinates and returns the decoded image.
func PlotSpotDiagram(result SweepResult, focusPlane Surface, xSize, ySize int) (image.Image, error) {
	p := plot.New()
	p.Title.Text = "Focus plane spot distribution"
	p.X.Label.Text = "X position"
	p.Y.Label.Text = "Y position"
	p.Add(plotter.NewGrid())

	proj := newProjection(focusPlane)
	pts := make(plotter.XYs, len(result.Points))
	for i, sp := range result.Points {
		pp := proj.projectOffset(sp.Point)
		pts[i].X = pp.X
		pts[i].Y = pp.Y
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	scatter.GlyphStyle.Radius = vg.Points(1.5)
	p.Add(scatter)

	tmpdir, err := os.MkdirTemp("", "galvoscan")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpdir)

	out := path.Join(tmpdir, "spots.png")
	if err := p.Save(font.Length(xSize), font.Length(ySize), out); err != nil {
		return nil, err
	}
	f, err := os.Open(out)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}

// BeamPathView renders traced ray paths projected onto a viewing plane,
// typically a side elevation of the bench.
type BeamPathView struct {
	XSize int
	YSize int
	Plane Surface
}

func (v BeamPathView) boundingBox(proj projection, results []TraceResult) (xMin, xMax, yMin, yMax float64) {
	xMin, yMin = math.Inf(1), math.Inf(1)
	xMax, yMax = math.Inf(-1), math.Inf(-1)
	for _, res := range results {
		for _, hit := range res.Path {
			pp := proj.project(hit)
			xMin = math.Min(xMin, pp.X)
			xMax = math.Max(xMax, pp.X)
			yMin = math.Min(yMin, pp.Y)
			yMax = math.Max(yMax, pp.Y)
		}
	}
	return
}

// Plot draws every traced path as a polyline through its surface hits.
func (v BeamPathView) Plot(results []TraceResult) (image.Image, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: nothing to plot", ErrInvalidParameter)
	}
	proj := newProjection(v.Plane)
	xMin, xMax, yMin, yMax := v.boundingBox(proj, results)
	xSpan := xMax - xMin
	ySpan := yMax - yMin
	if xSpan == 0 {
		xSpan = 1
	}
	if ySpan == 0 {
		ySpan = 1
	}
	scale := math.Min(float64(v.XSize)/xSpan, float64(v.YSize)/ySpan)

	transform := func(p Point2D) Point2D {
		return p.Translate(-xMin, -yMin).Scale(scale)
	}

	c := gg.NewContext(v.XSize, v.YSize)
	c.SetRGB(1, 1, 1)
	c.Clear()
	c.SetRGB(0, 0, 0)
	c.SetLineWidth(1)
	for _, res := range results {
		for i := 0; i < len(res.Path)-1; i++ {
			p1 := transform(proj.project(res.Path[i]))
			p2 := transform(proj.project(res.Path[i+1]))
			c.DrawLine(p1.X, p1.Y, p2.X, p2.Y)
			c.Stroke()
		}
		end := transform(proj.project(res.Point))
		c.DrawCircle(end.X, end.Y, 2)
		c.Fill()
	}
	return c.Image(), nil
}
