package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/truchet/pkg/pipeline"
	"github.com/matzehuels/truchet/pkg/render"
)

// generateOpts holds the output flags of the generate command.
type generateOpts struct {
	output    string
	formats   string
	precision int
	scale     float64
	rsvg      bool
	noCache   bool
	random    bool
}

// generateCommand creates the generate command, which resolves parameters,
// builds the pattern and writes one file per requested format.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		pf   patternFlags
		opts generateOpts
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a Truchet triangle pattern",
		Long: `Generate a Truchet triangle pattern and write it to disk.

Parameters that are not given explicitly are drawn from the seed, so the same
seed always produces the same picture. Flags override values from the config
file.`,
		Example: `  truchet generate
  truchet generate --seed 7 -f svg,png
  truchet generate --max-depth 4 --fg "#264653" --bg "#e9c46a" -o art/hex`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			popts, err := c.options(cmd, &pf)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("format") || len(popts.Formats) == 0 {
				popts.Formats = pipeline.ParseFormats(opts.formats)
			}
			if cmd.Flags().Changed("precision") {
				popts.Precision = opts.precision
			}
			if cmd.Flags().Changed("scale") {
				popts.Scale = opts.scale
			}
			if cmd.Flags().Changed("rsvg") {
				popts.RSVG = opts.rsvg
			}
			opts.random = pf.random
			return c.runGenerate(cmd, popts, opts)
		},
	}

	pf.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", defaultOutput, "output file (single format) or base path")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", pipeline.FormatSVG, "output format(s): svg, png, pdf, json (comma-separated)")
	cmd.Flags().IntVar(&opts.precision, "precision", 0, "decimal places for SVG coordinates (default 2)")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.rsvg, "rsvg", false, "rasterize PNG with rsvg-convert")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the scene and artifact cache")

	return cmd
}

func (c *CLI) runGenerate(cmd *cobra.Command, popts pipeline.Options, opts generateOpts) error {
	ctx := cmd.Context()

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts.SetRenderDefaults()
	if needsConverter(popts) && !render.HasConverter() {
		printWarning("rsvg-convert not found; PDF and --rsvg PNG output need it")
	}
	sw := startStopwatch(c.Logger)
	spin := newSpinner(os.Stderr, "Resolving parameters...")
	runner.OnStage = spin.stage(popts.Formats)
	spin.start(ctx)
	result, err := runner.Execute(ctx, popts)
	if err != nil {
		spin.fail("Generation failed")
		return err
	}
	spin.stop()

	paths := outputPaths(opts.output, popts.Formats)
	for _, format := range popts.Formats {
		path := paths[format]
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	sw.done("wrote pattern", "seed", result.Params.Seed, "files", len(paths))

	printSuccess("Seed %s", StyleNumber.Render(fmt.Sprint(result.Params.Seed)))
	printStats(result.Stats, result.CacheInfo)
	printDetail("triangles per level: %s", levelProfile(result.Stats.Levels))
	printDetail("formats: %s", formatList(popts.Formats))
	for _, format := range popts.Formats {
		printFile(paths[format])
	}
	if opts.random {
		printNewline()
		printNextStep("Reproduce", fmt.Sprintf("%s generate --seed %d", appName, result.Params.Seed))
	}
	return nil
}

// needsConverter reports whether any requested output goes through rsvg-convert.
func needsConverter(opts pipeline.Options) bool {
	return slices.Contains(opts.Formats, pipeline.FormatPDF) ||
		(opts.RSVG && slices.Contains(opts.Formats, pipeline.FormatPNG))
}

// outputPaths maps each format to its file path. A single format with an
// output that already carries its extension is written as given; otherwise
// the extension is replaced with the format.
func outputPaths(output string, formats []string) map[string]string {
	if output == "" {
		output = defaultOutput
	}
	ext := strings.TrimPrefix(filepath.Ext(output), ".")
	base := output
	if pipeline.ValidFormats[strings.ToLower(ext)] {
		base = strings.TrimSuffix(output, filepath.Ext(output))
	}

	paths := make(map[string]string, len(formats))
	for _, f := range formats {
		if len(formats) == 1 && strings.EqualFold(ext, f) {
			paths[f] = output
			continue
		}
		paths[f] = base + "." + f
	}
	return paths
}

// formatList renders formats for display.
func formatList(formats []string) string {
	s := slices.Clone(formats)
	slices.Sort(s)
	return strings.Join(s, ", ")
}
