// Package sink turns a [render.Scene] into a finished file.
//
// # Formats
//
//   - SVG: [RenderSVG], written with github.com/ajstarks/svgo
//   - PNG: [RenderPNG], rasterized in process with github.com/gogpu/gg
//   - PDF: [RenderPDF], SVG converted by rsvg-convert
//   - JSON: [RenderJSON], the raw instruction list plus canvas metadata
//
// Every sink paints the same picture: a full-canvas background rectangle,
// then the instructions in order, rotated about the origin and moved to the
// canvas centre. Instruction order is painter's order, so a later wedge masks
// the arcs beneath it.
//
// # SVG Output
//
//	svg := sink.RenderSVG(scene, sink.WithPrecision(3))
//
// All coordinates stay in pattern space inside a single
// translate(cx,cy) rotate(deg) group, so the file mirrors the instruction
// list one path per instruction.
//
// # PNG Output
//
//	png, err := sink.RenderPNG(scene, sink.WithScale(2))
//
// Colours must be keywords or hex (see [render.ParseColor]). Pass
// [WithRSVG] to rasterize the SVG through rsvg-convert instead, which gives
// output identical to the PDF path.
//
// # PDF Output
//
//	pdf, err := sink.RenderPDF(scene)
//
// Requires librsvg:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [render.Scene]: github.com/matzehuels/truchet/pkg/render.Scene
// [render.ParseColor]: github.com/matzehuels/truchet/pkg/render.ParseColor
package sink
