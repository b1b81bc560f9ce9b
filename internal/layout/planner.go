// Package layout fits the life grid into a container of known width.
//
// The planner walks an ordered list of candidate column counts, largest
// yearly multiple first, and keeps the first one whose row fits the width
// with a cell size between the configured bounds. Cells shrink before the
// column count does, so a 52-column "one row per year" grid is kept as long
// as the cells stay readable.
package layout

import (
	"errors"
	"log/slog"
	"math"
	"slices"

	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// ErrLayoutUnfittable reports that no candidate fitted and the fallback was used.
var ErrLayoutUnfittable = errors.New(config.ErrLayoutUnfittable)

// GridLayout is the geometry handed to the renderer. Sizes are in pixels.
type GridLayout struct {
	Columns    int
	Rows       int
	CellSize   float64
	Gap        float64
	TotalWidth float64

	// Fitted is false when the planner fell back to the last candidate
	// because nothing fitted the available width.
	Fitted bool
}

// TotalHeight returns the height of all rows including inner gaps.
func (g GridLayout) TotalHeight() float64 {
	if g.Rows <= 0 {
		return 0
	}
	return float64(g.Rows)*g.CellSize + float64(g.Rows-1)*g.Gap
}

// CellOrigin returns the top-left corner of cell i relative to the grid origin.
func (g GridLayout) CellOrigin(i int) (x, y float64) {
	if g.Columns <= 0 {
		return 0, 0
	}
	step := g.CellSize + g.Gap
	return float64(i%g.Columns) * step, float64(i/g.Columns) * step
}

// Err returns ErrLayoutUnfittable for a fallback layout.
func (g GridLayout) Err() error {
	if g.Fitted {
		return nil
	}
	return ErrLayoutUnfittable
}

// Planner chooses columns, cell size and gap for a grid.
type Planner struct {
	MaxCell    float64
	MinCell    float64
	GapRatio   float64
	Tolerance  float64
	Candidates []int
}

// DefaultPlanner returns a planner configured with the application defaults.
func DefaultPlanner() Planner {
	return Planner{
		MaxCell:    config.MaxCellSize,
		MinCell:    config.MinCellSize,
		GapRatio:   config.GapRatio,
		Tolerance:  config.FitTolerance,
		Candidates: Candidates(config.CandidateBase, config.CandidateLimit, config.CandidateTail),
	}
}

// Candidates lists limit, limit-base, ..., base followed by the tail values
// that are not already present.
func Candidates(base, limit int, tail []int) []int {
	var out []int
	if base > 0 {
		for n := (limit / base) * base; n >= base; n -= base {
			out = append(out, n)
		}
	}
	for _, n := range tail {
		if n > 0 && !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	return out
}

// Plan picks the first candidate whose row fits available pixels.
//
// Each candidate is first tried at the maximum cell size. When that row is
// too wide the cell size is solved so that c*size + (c-1)*ratio*size equals
// the available width; the candidate is rejected if that size drops below
// the minimum or the row still overflows by more than the tolerance.
// When nothing fits, the last candidate is returned at the minimum cell size
// with Fitted set to false so something is always drawn. The browser version
// of the grid fell back to 52 columns at the minimum size instead; the last
// candidate is kept here because it overflows the least.
func (p Planner) Plan(totalWeeks int, available float64) GridLayout {
	candidates := p.Candidates
	if len(candidates) == 0 {
		candidates = Candidates(config.CandidateBase, config.CandidateLimit, config.CandidateTail)
	}

	var (
		columns   int
		size, gap float64
	)
	for _, c := range candidates {
		columns = c
		size = p.MaxCell
		gap = size * p.GapRatio
		total := rowWidth(c, size, gap)

		if total > available {
			size = available / (float64(c) + float64(c-1)*p.GapRatio)
			if size > p.MaxCell {
				size = p.MaxCell
			}
			if size < p.MinCell {
				continue
			}
			gap = size * p.GapRatio
			total = rowWidth(c, size, gap)
			if total > available+p.Tolerance {
				continue
			}
		}

		return newLayout(totalWeeks, columns, size, gap, true)
	}

	size = p.MinCell
	gap = size * p.GapRatio
	slog.Debug(config.MsgLayoutFallback,
		config.LogKeyComponent, config.CompLayout,
		config.LogKeyWidth, available,
		config.LogKeyColumns, columns,
		config.LogKeyCellSize, size)
	return newLayout(totalWeeks, columns, size, gap, false)
}

func newLayout(totalWeeks, columns int, size, gap float64, fitted bool) GridLayout {
	rows := 0
	if columns > 0 && totalWeeks > 0 {
		rows = int(math.Ceil(float64(totalWeeks) / float64(columns)))
	}
	return GridLayout{
		Columns:    columns,
		Rows:       rows,
		CellSize:   size,
		Gap:        gap,
		TotalWidth: rowWidth(columns, size, gap),
		Fitted:     fitted,
	}
}

func rowWidth(columns int, size, gap float64) float64 {
	if columns <= 0 {
		return 0
	}
	return float64(columns)*size + float64(columns-1)*gap
}
