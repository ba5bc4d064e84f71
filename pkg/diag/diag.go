// Package diag builds the CLI logger and renders front end errors for the
// terminal.
package diag

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/raymyers/cfront/pkg/codegen"
	"github.com/raymyers/cfront/pkg/parser"
)

var (
	colorError = lipgloss.Color("#EF4444")
	colorMuted = lipgloss.Color("#6B7280")
	colorFg    = lipgloss.Color("#F9FAFB")
)

// styles are bound to a renderer so color detection follows the destination
// writer rather than stdout.
type styles struct {
	label   lipgloss.Style
	message lipgloss.Style
	crumb   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		label:   r.NewStyle().Bold(true).Foreground(colorError),
		message: r.NewStyle().Foreground(colorFg),
		crumb:   r.NewStyle().Foreground(colorMuted).Italic(true),
	}
}

// NewLogger returns a text logger writing to w at the named level
// (debug, info, warn or error).
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// Render writes err as a headline followed by the breadcrumb trail the parser
// attached, outermost construct first. Code generation errors show the
// location of the offending node instead.
func Render(w io.Writer, err error) {
	if err == nil {
		return
	}
	s := newStyles(lipgloss.NewRenderer(w))

	cause := parser.Cause(err)
	var crumbs []string
	for _, c := range parser.Trail(err) {
		crumbs = append(crumbs, "in "+c)
	}

	var located *codegen.Error
	if errors.As(cause, &located) {
		cause = located.Err
		crumbs = append(crumbs, "at "+located.Pos.String())
	}

	fmt.Fprintf(w, "%s %s\n", s.label.Render("error:"), s.message.Render(cause.Error()))
	for i, c := range crumbs {
		fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", i+1), s.crumb.Render(c))
	}
}
