package sink

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/truchet/pkg/core/draw"
	"github.com/matzehuels/truchet/pkg/core/geometry"
	"github.com/matzehuels/truchet/pkg/render"
)

// DefaultPrecision is the number of decimals written for SVG coordinates.
const DefaultPrecision = 2

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	precision int
}

// WithPrecision sets the number of decimals written for coordinates.
func WithPrecision(p int) SVGOption {
	return func(r *svgRenderer) {
		if p >= 0 {
			r.precision = p
		}
	}
}

// RenderSVG renders the scene as an SVG document. Output is a pure function of
// the scene and options.
func RenderSVG(s render.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{precision: DefaultPrecision}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(s.Width, s.Height)
	canvas.Rect(0, 0, s.Width, s.Height, "fill:"+s.Background)

	c := s.Center()
	canvas.Gtransform(fmt.Sprintf("translate(%s,%s) rotate(%s)", r.num(c.X), r.num(c.Y), r.num(s.Rotation)))
	for _, in := range s.Instructions {
		r.instruction(canvas, in)
	}
	canvas.Gend()
	canvas.End()
	return buf.Bytes()
}

func (r svgRenderer) instruction(canvas *svg.SVG, in draw.Instruction) {
	switch in.Kind {
	case draw.KindWedge:
		d := fmt.Sprintf("M %s L %s %s Z", r.pt(in.Center), r.pt(in.Start), r.arcTo(in))
		canvas.Path(d, "fill:"+in.Fill+";stroke:none")
	case draw.KindArc:
		d := fmt.Sprintf("M %s %s", r.pt(in.Start), r.arcTo(in))
		style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%s", in.Stroke, r.num(in.StrokeWidth))
		if in.RoundCap {
			style += ";stroke-linecap:round"
		}
		canvas.Path(d, style)
	case draw.KindDot:
		canvas.Path(r.circle(in.Center, in.Radius), "fill:"+in.Fill)
	}
}

func (r svgRenderer) arcTo(in draw.Instruction) string {
	return fmt.Sprintf("A %s,%s 0 %d %d %s",
		r.num(in.Radius), r.num(in.Radius), flag(in.LargeArc), flag(in.Sweep), r.pt(in.End))
}

// circle writes a full circle as two half arcs; svgo's Circle only takes
// integer coordinates.
func (r svgRenderer) circle(c geometry.Point, radius float64) string {
	left := geometry.Pt(c.X-radius, c.Y)
	right := geometry.Pt(c.X+radius, c.Y)
	rr := r.num(radius)
	return fmt.Sprintf("M %s A %s,%s 0 1 0 %s A %s,%s 0 1 0 %s Z",
		r.pt(left), rr, rr, r.pt(right), rr, rr, r.pt(left))
}

func (r svgRenderer) pt(p geometry.Point) string {
	return r.num(p.X) + "," + r.num(p.Y)
}

func (r svgRenderer) num(v float64) string {
	s := strconv.FormatFloat(v, 'f', r.precision, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}
