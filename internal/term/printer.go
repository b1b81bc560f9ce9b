// Package term prints the life grid to a terminal, one glyph per week,
// wrapped at the column count chosen by the layout planner.
package term

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
)

// Glyphs stay distinct without colour, so piped output still reads.
const (
	GlyphPast    = "■"
	GlyphCurrent = "▣"
	GlyphFuture  = "□"
)

// Printer writes frames to Out. It implements engine.Renderer.
type Printer struct {
	Out io.Writer

	past    lipgloss.Style
	current lipgloss.Style
	future  lipgloss.Style
}

// NewPrinter picks the colour profile from w: a file or a pipe gets plain text.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		Out:     w,
		past:    r.NewStyle().Foreground(lipgloss.Color("240")),
		current: r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		future:  r.NewStyle().Foreground(lipgloss.Color("252")),
	}
}

// Render prints frame and logs write failures.
func (p *Printer) Render(frame engine.Frame) {
	if err := p.Print(frame); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompTerm,
			config.LogKeyError, err)
	}
}

// Print writes the grid followed by a one-line summary. An empty frame
// prints nothing.
func (p *Printer) Print(frame engine.Frame) error {
	if frame.Empty() {
		return nil
	}

	cols := max(frame.Layout.Columns, 1)
	var b strings.Builder
	for i, state := range frame.Weeks.States {
		switch {
		case i == 0:
		case i%cols == 0:
			b.WriteByte('\n')
		default:
			b.WriteByte(' ')
		}
		b.WriteString(p.cell(state))
	}
	b.WriteByte('\n')

	if frame.Weeks.HasCurrent() {
		fmt.Fprintf(&b, config.MsgPrintSummary, frame.Weeks.Current+1, frame.Weeks.Total, frame.Layout.Columns)
	} else {
		fmt.Fprintf(&b, config.MsgPrintNoCurrent, frame.Weeks.Total, frame.Layout.Columns)
	}

	_, err := io.WriteString(p.Out, b.String())
	return err
}

func (p *Printer) cell(s engine.WeekState) string {
	switch s {
	case engine.WeekPast:
		return p.past.Render(GlyphPast)
	case engine.WeekCurrent:
		return p.current.Render(GlyphCurrent)
	default:
		return p.future.Render(GlyphFuture)
	}
}
