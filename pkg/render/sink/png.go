package sink

import (
	"bytes"
	"image/color"
	"math"

	"github.com/gogpu/gg"

	"github.com/matzehuels/truchet/pkg/core/draw"
	"github.com/matzehuels/truchet/pkg/core/geometry"
	"github.com/matzehuels/truchet/pkg/errors"
	"github.com/matzehuels/truchet/pkg/render"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	svgOpts []SVGOption
	scale   float64
	rsvg    bool
}

// WithPNGSVGOptions passes options through to the SVG renderer used by
// [WithRSVG].
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// WithScale sets the PNG scale factor (default 1.0).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) {
		if s > 0 {
			r.scale = s
		}
	}
}

// WithRSVG rasterizes via rsvg-convert instead of in process.
func WithRSVG() PNGOption {
	return func(r *pngRenderer) { r.rsvg = true }
}

// RenderPNG renders the scene as PNG.
func RenderPNG(s render.Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1}
	for _, opt := range opts {
		opt(&r)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if r.rsvg {
		return render.ToPNG(RenderSVG(s, r.svgOpts...), r.scale)
	}

	w := int(math.Round(float64(s.Width) * r.scale))
	h := int(math.Round(float64(s.Height) * r.scale))
	dc := gg.NewContext(w, h)
	defer dc.Close()

	p := painter{dc: dc, scene: s, scale: r.scale, colors: map[string]color.NRGBA{}}
	bg, err := p.color(s.Background)
	if err != nil {
		return nil, err
	}
	dc.ClearWithColor(gg.FromColor(bg))

	dc.SetLineCap(gg.LineCapRound)
	for i, in := range s.Instructions {
		if err := p.paint(in); err != nil {
			code := errors.GetCode(err)
			if code == "" {
				code = errors.ErrCodeInternal
			}
			return nil, errors.Wrap(code, err, "instruction %d (%s)", i, in.Kind)
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// painter draws instructions onto a gg context. Points are projected into
// device space by hand and the context matrix stays at identity, because
// DrawArc only transforms the arc centre.
type painter struct {
	dc     *gg.Context
	scene  render.Scene
	scale  float64
	colors map[string]color.NRGBA
}

func (p *painter) project(pt geometry.Point) geometry.Point {
	return p.scene.Project(pt).Times(p.scale)
}

func (p *painter) color(s string) (color.NRGBA, error) {
	if c, ok := p.colors[s]; ok {
		return c, nil
	}
	c, err := render.ParseColor(s)
	if err != nil {
		return color.NRGBA{}, err
	}
	p.colors[s] = c
	return c, nil
}

// angles returns the device-space start and end angles of a wedge or arc.
func (p *painter) angles(in draw.Instruction) (c geometry.Point, a1, a2 float64) {
	c = p.project(in.Center)
	start := p.project(in.Start).Minus(c)
	end := p.project(in.End).Minus(c)
	return c, math.Atan2(start.Y, start.X), math.Atan2(end.Y, end.X)
}

func (p *painter) paint(in draw.Instruction) error {
	switch in.Kind {
	case draw.KindWedge:
		col, err := p.color(in.Fill)
		if err != nil {
			return err
		}
		c, a1, a2 := p.angles(in)
		start := p.project(in.Start)
		p.dc.MoveTo(c.X, c.Y)
		p.dc.LineTo(start.X, start.Y)
		p.dc.DrawArc(c.X, c.Y, in.Radius*p.scale, a1, a2)
		p.dc.ClosePath()
		p.dc.SetColor(col)
		return p.dc.Fill()

	case draw.KindArc:
		col, err := p.color(in.Stroke)
		if err != nil {
			return err
		}
		c, a1, a2 := p.angles(in)
		p.dc.DrawArc(c.X, c.Y, in.Radius*p.scale, a1, a2)
		p.dc.SetLineWidth(in.StrokeWidth * p.scale)
		p.dc.SetColor(col)
		return p.dc.Stroke()

	case draw.KindDot:
		col, err := p.color(in.Fill)
		if err != nil {
			return err
		}
		c := p.project(in.Center)
		p.dc.DrawCircle(c.X, c.Y, in.Radius*p.scale)
		p.dc.SetColor(col)
		return p.dc.Fill()
	}
	return errors.New(errors.ErrCodeUnsupported, "unknown instruction kind %q", in.Kind)
}
