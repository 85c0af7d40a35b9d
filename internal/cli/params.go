package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/truchet/pkg/pipeline"
)

// paramsCommand creates the params command, which prints the parameters a
// seed resolves to without generating anything.
func (c *CLI) paramsCommand() *cobra.Command {
	var (
		pf     patternFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "params",
		Short: "Print the resolved generation parameters",
		Example: `  truchet params --seed 7
  truchet params --seed 7 --max-depth 3 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.options(cmd, &pf)
			if err != nil {
				return err
			}
			p, err := pipeline.ResolveParams(opts)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(p)
			}
			printParams(p)
			return nil
		},
	}

	pf.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	return cmd
}

func printParams(p pipeline.Params) {
	fmt.Fprintln(stdout, StyleTitle.Render("Parameters"))
	printKeyValue("seed", strconv.FormatUint(p.Seed, 10))
	printKeyValue("canvas", fmt.Sprintf("%d×%d", p.Width, p.Height))
	printKeyValue("border", formatFloat(p.Border))
	printKeyValue("rotation", formatFloat(p.Rotation)+"°")
	printKeyValue("colors", p.Foreground+" on "+p.Background)
	printKeyValue("min depth", strconv.Itoa(p.MinDepth))
	printKeyValue("max depth", strconv.Itoa(p.MaxDepth))
	printKeyValue("split", strconv.Itoa(p.SplitChance)+"%")
	printKeyValue("min lines", strconv.Itoa(p.MinLines))
	printKeyValue("max lines", formatFloat(p.MaxLines))
	printKeyValue("spacing", formatFloat(p.LineSpacing))
	printKeyValue("stroke", formatFloat(p.StrokeWeight))
}

// formatFloat prints v with at most two decimals.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
