package raster

import (
	"image"
	"image/color"
	"sort"

	"github.com/fogleman/gg"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"

	"skelplot/internal/mathutil"
	"skelplot/internal/postprocess"
	"skelplot/internal/scene"
)

// Options controls the camera and styling of a skeleton render.
type Options struct {
	Size        int     // output width and height in pixels
	Supersample int     // render at Size*Supersample, then downsample
	Azimuth     float64 // degrees
	Elevation   float64 // degrees
	LabelSize   float64 // points
	DPI         float64
	MarkerSize  float64 // scatter radius in output pixels
	LineWidth   float64 // bone width in output pixels
	Background  color.Color
}

// DefaultOptions mirrors a default matplotlib 3D figure.
func DefaultOptions() Options {
	return Options{
		Size:        640,
		Supersample: 2,
		Azimuth:     mathutil.DefaultAzimuth,
		Elevation:   mathutil.DefaultElevation,
		LabelSize:   6,
		DPI:         100,
		MarkerSize:  3,
		LineWidth:   1.5,
		Background:  color.White,
	}
}

var (
	axisColor  = color.NRGBA{0xb0, 0xb0, 0xb0, 0xff}
	labelColor = color.Black
)

// Render draws a scene: axis box, bones, chain overlays, the height-shaded
// scatter and joint labels.
func Render(s *scene.Scene, opts Options) (*image.NRGBA, error) {
	if opts.Size <= 0 {
		return nil, errors.Errorf("raster: invalid size %d", opts.Size)
	}
	if opts.Supersample <= 0 {
		opts.Supersample = 1
	}
	if opts.DPI <= 0 {
		opts.DPI = 100
	}

	ss := float64(opts.Supersample)
	renderSize := opts.Size * opts.Supersample
	margin := 16 * ss
	proj := newProjector(s.Bounds, mathutil.ViewMatrix(opts.Azimuth, opts.Elevation), renderSize, margin)

	dc := gg.NewContext(renderSize, renderSize)
	if opts.Background != nil {
		dc.SetColor(opts.Background)
		dc.Clear()
	}

	drawAxisBox(dc, proj, s.Bounds, ss)

	dc.SetLineWidth(opts.LineWidth * ss)
	for i, seg := range s.Segments {
		x0, y0, _ := proj.project(seg.From)
		x1, y1, _ := proj.project(seg.To)
		dc.SetColor(Cycle(i))
		dc.DrawLine(x0, y0, x1, y1)
		dc.Stroke()
	}

	drawChains(dc, proj, s.Chains, opts.LineWidth*2*ss)
	drawScatter(dc, proj, s, opts.MarkerSize*ss)

	if opts.LabelSize > 0 {
		dc.SetFontFace(labelFace(opts.LabelSize, opts.DPI*ss))
		dc.SetColor(labelColor)
		for _, l := range s.Labels {
			x, y, _ := proj.project(l.Pos)
			dc.DrawString(l.Name, x, y)
		}
	}

	rgba := toRGBA(dc.Image())
	if opts.Supersample > 1 {
		return postprocess.Downsample(rgba, opts.Size), nil
	}
	return postprocess.Unpremultiply(rgba), nil
}

func drawAxisBox(dc *gg.Context, proj projector, b scene.Bounds, ss float64) {
	pts := corners(b)
	dc.SetColor(axisColor)
	dc.SetLineWidth(ss)
	for _, e := range boxEdges() {
		x0, y0, _ := proj.project(pts[e[0]])
		x1, y1, _ := proj.project(pts[e[1]])
		dc.DrawLine(x0, y0, x1, y1)
		dc.Stroke()
	}
}

func drawChains(dc *gg.Context, proj projector, chains []scene.Polyline, width float64) {
	dc.SetLineWidth(width)
	for i, c := range chains {
		if len(c.Points) < 2 {
			continue
		}
		r, g, b := Cycle(len(Tab10) - 1 - i%len(Tab10)).RGB255()
		dc.SetColor(color.NRGBA{r, g, b, 0x99})
		for k, p := range c.Points {
			x, y, _ := proj.project(p)
			if k == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.Stroke()
	}
}

// drawScatter paints markers far to near, colored by shade over the
// scatter's own range.
func drawScatter(dc *gg.Context, proj projector, s *scene.Scene, radius float64) {
	type dot struct {
		x, y, depth float64
		c           color.Color
	}
	lo, hi := s.ShadeRange()
	dots := make([]dot, len(s.Scatter))
	for i, m := range s.Scatter {
		x, y, d := proj.project(m.Pos)
		dots[i] = dot{x, y, d, Viridis.At(Normalize(m.Shade, lo, hi))}
	}
	sort.SliceStable(dots, func(i, j int) bool { return dots[i].depth < dots[j].depth })

	for _, d := range dots {
		dc.SetColor(d.c)
		dc.DrawCircle(d.x, d.y, radius)
		dc.Fill()
	}
}

func toRGBA(img image.Image) *image.RGBA {
	if r, ok := img.(*image.RGBA); ok {
		return r
	}
	dst := image.NewRGBA(img.Bounds())
	draw.Draw(dst, dst.Bounds(), img, img.Bounds().Min, draw.Src)
	return dst
}
