package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/relviz/pkg/model"
)

// uiOut receives status output. Rendered artifacts go to the command's
// own writer instead, so that `relviz render > out.dot` stays clean.
var uiOut io.Writer = os.Stdout

// Palette, by role.
var (
	colorAccent  = lipgloss.Color("36")  // teal: titles, selection
	colorOK      = lipgloss.Color("35")  // green
	colorWarn    = lipgloss.Color("220") // amber
	colorFail    = lipgloss.Color("167") // soft red
	colorCommand = lipgloss.Color("75")  // light blue
	colorWhite   = lipgloss.Color("255")
	colorGray    = lipgloss.Color("245")
	colorDim     = lipgloss.Color("240")
)

// Exported styles are shared with the type browser.
var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorAccent)
	StyleDim       = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue     = lipgloss.NewStyle().Foreground(colorWhite)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorWarn)
)

var (
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorAccent)
	styleCommand     = lipgloss.NewStyle().Foreground(colorCommand)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

// statusIcon pairs a glyph with its color.
type statusIcon struct {
	glyph string
	style lipgloss.Style
}

var (
	iconSuccess = statusIcon{"✓", lipgloss.NewStyle().Foreground(colorOK)}
	iconError   = statusIcon{"✗", lipgloss.NewStyle().Foreground(colorFail)}
	iconWarning = statusIcon{"!", lipgloss.NewStyle().Foreground(colorWarn)}
	iconInfo    = statusIcon{"›", lipgloss.NewStyle().Foreground(colorGray)}
)

const (
	iconArrow  = "→"
	iconCached = "cached"
	iconFresh  = "fresh"
)

func printStatus(icon statusIcon, msg string) {
	fmt.Fprintln(uiOut, icon.style.Render(icon.glyph)+" "+msg)
}

func printSuccess(format string, args ...any) {
	printStatus(iconSuccess, fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	printStatus(iconError, fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	printStatus(iconWarning, StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	printStatus(iconInfo, fmt.Sprintf(format, args...))
}

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(path string) {
	fmt.Fprintln(uiOut, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Fprintln(uiOut, styleKey.Render(key)+" "+StyleValue.Render(value))
}

// printStats prints a one-line graph summary such as
// "3 vertices · 1 edges · 1 clusters · fresh".
func printStats(s model.Stats, cached bool) {
	parts := []string{
		fmt.Sprintf("%d vertices", s.Vertices),
		fmt.Sprintf("%d edges", s.Edges-s.Hidden),
	}
	if s.Clusters > 0 {
		parts = append(parts, fmt.Sprintf("%d clusters", s.Clusters))
	}
	status := StyleDim.Render(iconFresh)
	if cached {
		status = iconSuccess.style.Render(iconCached)
	}

	sep := StyleDim.Render(" · ")
	fmt.Fprintln(uiOut, "  "+StyleDim.Render(strings.Join(parts, " · "))+sep+status)
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(uiOut, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}
