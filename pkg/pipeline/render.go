package pipeline

import (
	"fmt"

	"github.com/matzehuels/truchet/pkg/render"
	"github.com/matzehuels/truchet/pkg/render/sink"
)

// Render generates output artifacts in the requested formats. JSON output
// embeds p so the scene can be regenerated.
func Render(scene render.Scene, p Params, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, err
	}

	svgOpts := []sink.SVGOption{sink.WithPrecision(opts.Precision)}
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(scene, svgOpts...)
		case FormatPNG:
			pngOpts := []sink.PNGOption{sink.WithScale(opts.Scale), sink.WithPNGSVGOptions(svgOpts...)}
			if opts.RSVG {
				pngOpts = append(pngOpts, sink.WithRSVG())
			}
			data, err = sink.RenderPNG(scene, pngOpts...)
		case FormatPDF:
			data, err = sink.RenderPDF(scene, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(scene, sink.WithJSONSeed(p.Seed), sink.WithJSONParams(p))
		default:
			return nil, fmt.Errorf("unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
