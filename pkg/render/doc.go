// Package render holds what the Truchet renderers share: the [Scene] handed
// over by the pipeline, colour parsing, and SVG format conversion.
//
// # Scenes
//
// A [Scene] is the complete input to a renderer. Its instructions are in
// pattern space, centred on the origin; renderers place them on the canvas
// with [Scene.Project], which rotates about the origin and then translates to
// the canvas centre. The SVG sink expresses the same mapping as a group
// transform.
//
//	scene := render.Scene{Width: 2000, Height: 2000, Rotation: 30, ...}
//	svg, err := sink.RenderSVG(scene)
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert SVG to other formats using the external
// rsvg-convert tool (from librsvg). The PDF sink always uses it; the PNG sink
// rasterizes in process and only falls back to [ToPNG] when asked.
//
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Colours
//
// [ParseColor] accepts the CSS colour keywords the generator offers and hex
// notation (#rgb, #rgba, #rrggbb, #rrggbbaa). SVG output passes colour
// strings through untouched; raster output needs them parsed.
package render
