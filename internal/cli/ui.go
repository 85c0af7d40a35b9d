package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/truchet/pkg/core/subdivide"
	"github.com/matzehuels/truchet/pkg/pipeline"
)

// Human-facing output goes to stdout; structured logs go to the logger.
var stdout io.Writer = os.Stdout

var (
	colorAccent = lipgloss.Color("36")
	colorOK     = lipgloss.Color("35")
	colorWarn   = lipgloss.Color("220")
	colorFail   = lipgloss.Color("167")
	colorLink   = lipgloss.Color("75")
	colorText   = lipgloss.Color("255")
	colorMuted  = lipgloss.Color("245")
	colorFaint  = lipgloss.Color("240")
)

// Shared styles.
var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleLink    = lipgloss.NewStyle().Foreground(colorLink).Underline(true)
	StyleDim     = lipgloss.NewStyle().Foreground(colorFaint)
	StyleValue   = lipgloss.NewStyle().Foreground(colorText)
	StyleNumber  = lipgloss.NewStyle().Foreground(colorAccent)
	StyleWarning = lipgloss.NewStyle().Foreground(colorWarn)
)

var (
	styleKey     = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
	styleCached  = lipgloss.NewStyle().Foreground(colorOK)
	styleCommand = lipgloss.NewStyle().Foreground(colorLink)
	styleSpinner = lipgloss.NewStyle().Foreground(colorAccent)
)

// marker is a coloured status glyph that starts a line.
type marker struct {
	glyph string
	style lipgloss.Style
}

var (
	markOK   = marker{"✓", lipgloss.NewStyle().Foreground(colorOK)}
	markFail = marker{"✗", lipgloss.NewStyle().Foreground(colorFail)}
	markWarn = marker{"!", lipgloss.NewStyle().Foreground(colorWarn)}
	markInfo = marker{"›", lipgloss.NewStyle().Foreground(colorMuted)}
)

func (m marker) println(msg string) {
	fmt.Fprintln(stdout, m.style.Render(m.glyph)+" "+msg)
}

func printSuccess(format string, args ...any) { markOK.println(fmt.Sprintf(format, args...)) }
func printError(format string, args ...any) { markFail.println(fmt.Sprintf(format, args...)) }
func printInfo(format string, args ...any) { markInfo.println(fmt.Sprintf(format, args...)) }

func printWarning(format string, args ...any) {
	markWarn.println(StyleWarning.Render(fmt.Sprintf(format, args...)))
}

// printDetail prints an indented, dimmed line under a status line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output file.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render("→")+" "+StyleValue.Render(path))
}

// printKeyValue prints one row of an aligned table.
func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printStats prints the size of a pattern and where its scene and outputs
// came from, e.g. "96 triangles · 412 shapes · scene cached · output fresh".
func printStats(stats pipeline.Stats, info pipeline.CacheInfo) {
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d triangles", stats.Leaves)),
		StyleDim.Render(fmt.Sprintf("%d shapes", stats.Instructions)),
		cacheLabel("scene", info.SceneHit),
		cacheLabel("output", info.RenderHit),
	}
	fmt.Fprintln(stdout, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

func cacheLabel(what string, hit bool) string {
	if hit {
		return styleCached.Render(what + " cached")
	}
	return StyleDim.Render(what + " fresh")
}

// levelProfile lists the triangles present at each subdivision level, from
// the six hexagon triangles down to the deepest split, e.g. "6 → 20 → 48".
func levelProfile(levels []subdivide.LevelStats) string {
	if len(levels) == 0 {
		return "-"
	}
	counts := make([]string, len(levels))
	for i, l := range levels {
		counts[i] = strconv.Itoa(l.Split + l.Leaves)
	}
	return strings.Join(counts, " → ")
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(stdout)
}
