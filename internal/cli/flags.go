package cli

import (
	"math/rand/v2"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/truchet/pkg/pipeline"
)

// patternFlags holds the generation and canvas flags shared by generate and
// params. Only flags the user changed override the config file.
type patternFlags struct {
	seed         uint64
	random       bool
	width        int
	height       int
	border       float64
	rotation     float64
	foreground   string
	background   string
	minDepth     int
	maxDepth     int
	splitChance  int
	minLines     int
	lineSpacing  float64
	strokeWeight float64
	parallel     bool
}

// register adds the flags to cmd.
func (f *patternFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Uint64VarP(&f.seed, "seed", "s", pipeline.DefaultSeed, "random seed (0 selects the default)")
	fs.BoolVar(&f.random, "random", false, "use a random seed")
	fs.IntVar(&f.width, "width", pipeline.DefaultWidth, "canvas width in pixels")
	fs.IntVar(&f.height, "height", pipeline.DefaultHeight, "canvas height in pixels")
	fs.Float64Var(&f.border, "border", pipeline.DefaultBorder, "margin between hexagon and canvas edge")
	fs.Float64Var(&f.rotation, "rotation", pipeline.DefaultRotation, "rotation about the canvas centre in degrees")
	fs.StringVar(&f.foreground, "fg", pipeline.DefaultForeground, "line colour")
	fs.StringVar(&f.background, "bg", pipeline.DefaultBackground, "background colour")
	fs.IntVar(&f.minDepth, "min-depth", 0, "minimum subdivision depth (random if unset)")
	fs.IntVar(&f.maxDepth, "max-depth", 0, "maximum subdivision depth (random if unset)")
	fs.IntVar(&f.splitChance, "split-chance", 0, "split probability in percent (random if unset)")
	fs.IntVar(&f.minLines, "min-lines", 0, "lines on the deepest triangles (random if unset)")
	fs.Float64Var(&f.lineSpacing, "line-spacing", 0, "distance between arcs (derived if unset)")
	fs.Float64Var(&f.strokeWeight, "stroke", 0, "arc stroke width (derived if unset)")
	fs.BoolVar(&f.parallel, "parallel", false, "plan sectors concurrently")
}

// apply overlays the changed flags onto opts.
func (f *patternFlags) apply(fs *pflag.FlagSet, opts *pipeline.Options) {
	set := func(name string, fn func()) {
		if fs.Changed(name) {
			fn()
		}
	}
	set("seed", func() { opts.Seed = f.seed })
	set("width", func() { opts.Width = f.width })
	set("height", func() { opts.Height = f.height })
	set("border", func() { opts.Border = pipeline.Float(f.border) })
	set("rotation", func() { opts.Rotation = pipeline.Float(f.rotation) })
	set("fg", func() { opts.Foreground = f.foreground })
	set("bg", func() { opts.Background = f.background })
	set("min-depth", func() { opts.MinDepth = pipeline.Int(f.minDepth) })
	set("max-depth", func() { opts.MaxDepth = f.maxDepth })
	set("split-chance", func() { opts.SplitChance = pipeline.Int(f.splitChance) })
	set("min-lines", func() { opts.MinLines = f.minLines })
	set("line-spacing", func() { opts.LineSpacing = f.lineSpacing })
	set("stroke", func() { opts.StrokeWeight = f.strokeWeight })
	set("parallel", func() { opts.Parallel = f.parallel })

	if f.random {
		opts.Seed = randomSeed()
	}
}

// options loads the config file and overlays the changed flags.
func (c *CLI) options(cmd *cobra.Command, f *patternFlags) (pipeline.Options, error) {
	opts, path, err := loadConfig(c.configPath)
	if err != nil {
		return opts, err
	}
	if path != "" {
		c.Logger.Debug("loaded config", "path", path)
	}
	f.apply(cmd.Flags(), &opts)
	return opts, nil
}

// randomSeed returns a non-zero seed; zero selects the default seed.
func randomSeed() uint64 {
	for {
		if s := rand.Uint64(); s != 0 {
			return s
		}
	}
}
