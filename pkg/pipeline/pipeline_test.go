package pipeline

import (
	"slices"
	"testing"

	"github.com/matzehuels/truchet/pkg/errors"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s, want INVALID_FORMAT", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"svg", []string{"svg"}},
		{"svg,png", []string{"svg", "png"}},
		{" SVG , pdf,,svg ", []string{"svg", "pdf"}},
		{"", nil},
	}
	for _, tt := range tests {
		if got := ParseFormats(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("ParseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}

	if o.Width != DefaultWidth || o.Height != DefaultHeight {
		t.Errorf("canvas = %dx%d, want %dx%d", o.Width, o.Height, DefaultWidth, DefaultHeight)
	}
	if o.Border == nil || *o.Border != DefaultBorder {
		t.Errorf("Border = %v, want %v", o.Border, DefaultBorder)
	}
	if o.Rotation == nil || *o.Rotation != DefaultRotation {
		t.Errorf("Rotation = %v, want %v", o.Rotation, DefaultRotation)
	}
	if o.Foreground != "black" || o.Background != "white" {
		t.Errorf("colours = %s on %s, want black on white", o.Foreground, o.Background)
	}
	if o.Seed != DefaultSeed {
		t.Errorf("Seed = %d, want %d", o.Seed, DefaultSeed)
	}
	if !slices.Equal(o.Formats, []string{FormatSVG}) {
		t.Errorf("Formats = %v, want [svg]", o.Formats)
	}
	// randomized parameters stay unset
	if o.MinDepth != nil || o.MaxDepth != 0 || o.SplitChance != nil || o.MinLines != 0 {
		t.Error("generation parameters should not receive defaults")
	}

	// Idempotent
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call error: %v", err)
	}
}

func TestValidateAndSetDefaultsKeepsExplicitZero(t *testing.T) {
	o := Options{Border: Float(0), Rotation: Float(0), MinDepth: Int(0), SplitChance: Int(0), MaxDepth: 2}
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if *o.Border != 0 || *o.Rotation != 0 || *o.MinDepth != 0 || *o.SplitChance != 0 {
		t.Error("explicit zero values were overwritten")
	}
}

func TestResolveParamsZeroBorder(t *testing.T) {
	p, err := ResolveParams(Options{Seed: 3, Width: 300, Height: 300, Border: Float(0), MaxDepth: 2})
	if err != nil {
		t.Fatal(err)
	}
	if p.Border != 0 {
		t.Errorf("Border = %v, want 0", p.Border)
	}
}

func TestValidateRenderLimits(t *testing.T) {
	o := Options{Width: MaxCanvasSize, Height: MaxCanvasSize}
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Errorf("largest canvas at scale 1 should pass: %v", err)
	}
	o = Options{Width: MaxRasterSize / 8, Height: MaxRasterSize / 8, Scale: MaxScale}
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Errorf("largest scale within the raster limit should pass: %v", err)
	}
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"border too wide", Options{Width: 300, Border: Float(150)}, errors.ErrCodeInvalidConfig},
		{"default border too wide", Options{Width: 300}, errors.ErrCodeInvalidConfig},
		{"negative border", Options{Border: Float(-1)}, errors.ErrCodeInvalidConfig},
		{"width too large", Options{Width: MaxCanvasSize + 1}, errors.ErrCodeInvalidConfig},
		{"height too large", Options{Height: MaxCanvasSize + 1}, errors.ErrCodeInvalidConfig},
		{"huge canvas", Options{Width: 1 << 20, Height: 1 << 20, Scale: 1000}, errors.ErrCodeInvalidConfig},
		{"scale too large", Options{Scale: MaxScale + 1}, errors.ErrCodeInvalidConfig},
		{"negative scale", Options{Scale: -1}, errors.ErrCodeInvalidConfig},
		{"raster too large", Options{Width: 4000, Height: 4000, Scale: 8}, errors.ErrCodeInvalidConfig},
		{"precision too large", Options{Precision: MaxPrecision + 1}, errors.ErrCodeInvalidConfig},
		{"negative precision", Options{Precision: -1}, errors.ErrCodeInvalidConfig},
		{"negative width", Options{Width: -10}, errors.ErrCodeInvalidConfig},
		{"depth above limit", Options{MaxDepth: MaxDepthLimit + 1}, errors.ErrCodeInvalidConfig},
		{"min not below max", Options{MinDepth: Int(3), MaxDepth: 3}, errors.ErrCodeInvalidConfig},
		{"negative min depth", Options{MinDepth: Int(-1)}, errors.ErrCodeInvalidConfig},
		{"split chance too high", Options{SplitChance: Int(101)}, errors.ErrCodeInvalidConfig},
		{"negative min lines", Options{MinLines: -2}, errors.ErrCodeInvalidConfig},
		{"negative spacing", Options{LineSpacing: -1}, errors.ErrCodeInvalidConfig},
		{"bad foreground", Options{Foreground: "blurple"}, errors.ErrCodeInvalidColor},
		{"bad background", Options{Background: "#12"}, errors.ErrCodeInvalidColor},
		{"bad format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %s, want %s (%v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	o := Options{Precision: 3, Scale: 2}
	if k := o.ArtifactKeyOpts(FormatJSON); k.Precision != 0 || k.Scale != 0 {
		t.Errorf("json key should ignore precision and scale: %+v", k)
	}
	if k := o.ArtifactKeyOpts(FormatSVG); k.Precision != 3 {
		t.Errorf("svg key should carry precision: %+v", k)
	}
	if k := o.ArtifactKeyOpts(FormatPNG); k.Scale != 2 {
		t.Errorf("png key should carry scale: %+v", k)
	}
	o.RSVG = true
	if k := o.ArtifactKeyOpts(FormatPNG); k.Format == FormatPNG {
		t.Error("rsvg png should be keyed apart from in-process png")
	}
}
