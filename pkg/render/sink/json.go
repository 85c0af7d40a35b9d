package sink

import (
	"encoding/json"

	"github.com/matzehuels/truchet/pkg/core/draw"
	"github.com/matzehuels/truchet/pkg/render"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	seed   uint64
	params any
	indent bool
}

// WithJSONSeed records the seed the scene was generated from.
func WithJSONSeed(seed uint64) JSONOption { return func(r *jsonRenderer) { r.seed = seed } }

// WithJSONParams records the resolved generation parameters, so the output
// can be regenerated exactly.
func WithJSONParams(p any) JSONOption { return func(r *jsonRenderer) { r.params = p } }

// WithJSONCompact disables indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.indent = false } }

type jsonOutput struct {
	Width        int                `json:"width"`
	Height       int                `json:"height"`
	Rotation     float64            `json:"rotation"`
	Background   string             `json:"background"`
	Seed         uint64             `json:"seed,omitempty"`
	Params       any                `json:"params,omitempty"`
	Counts       map[draw.Kind]int  `json:"counts"`
	Instructions []draw.Instruction `json:"instructions"`
}

// RenderJSON exports the scene's instruction list with its canvas metadata.
// Coordinates are in pattern space, centred on the origin and unrotated.
func RenderJSON(s render.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{indent: true}
	for _, opt := range opts {
		opt(&r)
	}

	ins := s.Instructions
	if ins == nil {
		ins = []draw.Instruction{}
	}
	out := jsonOutput{
		Width:        s.Width,
		Height:       s.Height,
		Rotation:     s.Rotation,
		Background:   s.Background,
		Seed:         r.seed,
		Params:       r.params,
		Counts:       draw.Count(ins),
		Instructions: ins,
	}
	if r.indent {
		return json.MarshalIndent(out, "", "  ")
	}
	return json.Marshal(out)
}
