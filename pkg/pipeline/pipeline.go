// Package pipeline provides the Truchet generation pipeline.
//
// This package implements the complete resolve → generate → render pipeline
// used by both the CLI and the HTTP server. By centralizing this logic, the
// two entry points produce byte-identical artifacts for the same options.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Resolve: Fill unset generation parameters from the seed ([ResolveParams])
//  2. Generate: Build the hexagon grid, subdivide it and plan the arcs ([Generate])
//  3. Render: Produce output in various formats (SVG, PNG, PDF, JSON) ([Render])
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Seed:    7,
//	    Formats: []string{"svg", "png"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	params, err := pipeline.ResolveParams(opts)
//	scene, stats, err := pipeline.Generate(ctx, params)
//	artifacts, err := pipeline.Render(scene, params, opts)
package pipeline

import (
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/truchet/pkg/cache"
	"github.com/matzehuels/truchet/pkg/core/subdivide"
	"github.com/matzehuels/truchet/pkg/errors"
	"github.com/matzehuels/truchet/pkg/render"
	"github.com/matzehuels/truchet/pkg/render/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels. The hexagon is
	// sized from the width alone.
	DefaultWidth = 2000

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 2000

	// DefaultBorder is the default margin between the hexagon and the canvas
	// edge, in pixels.
	DefaultBorder = 150.0

	// DefaultRotation is the default rotation of the pattern about the
	// canvas centre, in degrees.
	DefaultRotation = 30.0

	// DefaultForeground is the default line colour.
	DefaultForeground = "black"

	// DefaultBackground is the default background colour.
	DefaultBackground = "white"

	// DefaultSeed is the default random seed for reproducibility. Seed 0 is
	// reserved and selects it.
	DefaultSeed = uint64(42)

	// MaxDepthLimit bounds MaxDepth. Depth d produces up to 6·4^d leaves.
	MaxDepthLimit = 8

	// MaxCanvasSize bounds the canvas width and height in pixels.
	MaxCanvasSize = 16384

	// DefaultScale is the default PNG scale factor.
	DefaultScale = 1.0

	// MaxScale bounds the PNG scale factor.
	MaxScale = 8.0

	// MaxRasterSize bounds each side of a rasterized PNG (canvas side times
	// scale) in pixels.
	MaxRasterSize = 16384

	// MaxPrecision bounds the number of SVG coordinate decimals.
	MaxPrecision = 8
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ContentTypes maps formats to MIME types.
var ContentTypes = map[string]string{
	FormatSVG:  "image/svg+xml",
	FormatPNG:  "image/png",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline. Generation parameters
// left unset are drawn from the seed by [ResolveParams]; the pointer fields
// are pointers because zero is a meaningful explicit value for them.
//
// This struct supports JSON and TOML serialization for config files and API
// requests.
type Options struct {
	// Canvas
	Width      int      `json:"width,omitempty" toml:"width"`
	Height     int      `json:"height,omitempty" toml:"height"`
	Border     *float64 `json:"border,omitempty" toml:"border"`
	Rotation   *float64 `json:"rotation,omitempty" toml:"rotation"`
	Foreground string   `json:"foreground,omitempty" toml:"foreground"`
	Background string   `json:"background,omitempty" toml:"background"`

	// Generation. Seed 0 selects DefaultSeed.
	Seed         uint64  `json:"seed,omitempty" toml:"seed"`
	MinDepth     *int    `json:"min_depth,omitempty" toml:"min_depth"`
	MaxDepth     int     `json:"max_depth,omitempty" toml:"max_depth"`
	SplitChance  *int    `json:"split_chance,omitempty" toml:"split_chance"`
	MinLines     int     `json:"min_lines,omitempty" toml:"min_lines"`
	LineSpacing  float64 `json:"line_spacing,omitempty" toml:"line_spacing"`
	StrokeWeight float64 `json:"stroke_weight,omitempty" toml:"stroke_weight"`
	Parallel     bool    `json:"parallel,omitempty" toml:"parallel"`

	// Render
	Formats   []string `json:"formats,omitempty" toml:"formats"`
	Precision int      `json:"precision,omitempty" toml:"precision"`
	Scale     float64  `json:"scale,omitempty" toml:"scale"`
	RSVG      bool     `json:"rsvg,omitempty" toml:"rsvg"`
	Refresh   bool     `json:"refresh,omitempty" toml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Int returns a pointer to v, for the optional Options fields.
func Int(v int) *int { return &v }

// Float returns a pointer to v, for the optional Options fields.
func Float(v float64) *float64 { return &v }

// Result contains the outputs of a pipeline run.
type Result struct {
	// Params are the fully resolved generation parameters.
	Params Params

	// Scene is the generated instruction list with its canvas.
	Scene render.Scene

	// SceneHash is the content hash of the serialized scene.
	SceneHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Leaves       int
	Instructions int
	Levels       []subdivide.LevelStats
	GenerateTime time.Duration
	RenderTime   time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	SceneHit  bool // Whether the scene came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateColor checks that a colour can be rendered by every sink.
func ValidateColor(name, value string) error {
	if _, err := render.ParseColor(value); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidColor, err, "invalid %s colour", name)
	}
	return nil
}

// ParseFormats splits a comma-separated format list, trimming blanks and
// dropping duplicates.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks explicit values and applies defaults for the
// full pipeline. Generation parameters that are randomized stay unset; see
// [ResolveParams]. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.SetCanvasDefaults()
	o.SetRenderDefaults()
	if err := o.ValidateCanvas(); err != nil {
		return err
	}
	if err := o.ValidateGeneration(); err != nil {
		return err
	}
	if err := o.ValidateRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetCanvasDefaults sets default values for the canvas.
func (o *Options) SetCanvasDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Border == nil {
		o.Border = Float(DefaultBorder)
	}
	if o.Rotation == nil {
		o.Rotation = Float(DefaultRotation)
	}
	if o.Foreground == "" {
		o.Foreground = DefaultForeground
	}
	if o.Background == "" {
		o.Background = DefaultBackground
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Precision == 0 {
		o.Precision = sink.DefaultPrecision
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
}

// ValidateCanvas checks the canvas size, border and colours.
func (o *Options) ValidateCanvas() error {
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "canvas size must be positive, got %dx%d", o.Width, o.Height)
	}
	if o.Width > MaxCanvasSize || o.Height > MaxCanvasSize {
		return errors.New(errors.ErrCodeInvalidConfig,
			"canvas size must be at most %dx%d, got %dx%d", MaxCanvasSize, MaxCanvasSize, o.Width, o.Height)
	}
	border := o.borderOrDefault()
	if border < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "border must not be negative, got %g", border)
	}
	if float64(o.Width) <= 2*border {
		return errors.New(errors.ErrCodeInvalidConfig,
			"width (%d) must exceed twice the border (%g)", o.Width, border)
	}
	if err := ValidateColor("foreground", o.Foreground); err != nil {
		return err
	}
	return ValidateColor("background", o.Background)
}

// ValidateGeneration checks the explicitly set generation parameters.
func (o *Options) ValidateGeneration() error {
	if o.MinDepth != nil && *o.MinDepth < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "min depth must not be negative, got %d", *o.MinDepth)
	}
	if o.MaxDepth < 0 || o.MaxDepth > MaxDepthLimit {
		return errors.New(errors.ErrCodeInvalidConfig, "max depth must be within 1-%d, got %d", MaxDepthLimit, o.MaxDepth)
	}
	if o.MinDepth != nil && o.MaxDepth > 0 && *o.MinDepth >= o.MaxDepth {
		return errors.New(errors.ErrCodeInvalidConfig,
			"min depth (%d) must be less than max depth (%d)", *o.MinDepth, o.MaxDepth)
	}
	if o.SplitChance != nil && (*o.SplitChance < 0 || *o.SplitChance > 100) {
		return errors.New(errors.ErrCodeInvalidConfig, "split chance must be within 0-100, got %d", *o.SplitChance)
	}
	if o.MinLines < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "min lines must not be negative, got %d", o.MinLines)
	}
	if o.LineSpacing < 0 || o.StrokeWeight < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "line spacing and stroke weight must not be negative")
	}
	return nil
}

// ValidateRender checks the output formats, SVG precision and PNG scale.
// The scale is bounded so the raster stays within MaxRasterSize per side.
func (o *Options) ValidateRender() error {
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Precision < 0 || o.Precision > MaxPrecision {
		return errors.New(errors.ErrCodeInvalidConfig, "precision must be within 0-%d, got %d", MaxPrecision, o.Precision)
	}
	if o.Scale < 0 || o.Scale > MaxScale {
		return errors.New(errors.ErrCodeInvalidConfig, "scale must be within 0-%g, got %g", MaxScale, o.Scale)
	}
	scale := o.Scale
	if scale == 0 {
		scale = DefaultScale
	}
	if side := float64(max(o.Width, o.Height)) * scale; side > MaxRasterSize {
		return errors.New(errors.ErrCodeInvalidConfig,
			"raster side %g px exceeds %d px; lower the canvas size or scale", side, MaxRasterSize)
	}
	return nil
}

func (o *Options) borderOrDefault() float64 {
	if o.Border == nil {
		return DefaultBorder
	}
	return *o.Border
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG, FormatPDF:
		opts.Precision = o.Precision
	case FormatPNG:
		opts.Scale = o.Scale
		if o.RSVG {
			opts.Precision = o.Precision
			opts.Format = "png+rsvg"
		}
	}
	return opts
}
