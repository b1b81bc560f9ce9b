package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/layout"
)

func TestCandidates_Order(t *testing.T) {
	got := layout.Candidates(52, 520, []int{26, 13, 4, 2, 1})

	want := []int{520, 468, 416, 364, 312, 260, 208, 156, 104, 52, 26, 13, 4, 2, 1}
	assert.Equal(t, want, got)
}

func TestCandidates_TailDeduplicated(t *testing.T) {
	got := layout.Candidates(4, 12, []int{8, 4, 2, 1})

	assert.Equal(t, []int{12, 8, 4, 2, 1}, got)
}

func TestPlan(t *testing.T) {
	p := layout.DefaultPlanner()

	tests := []struct {
		name        string
		width       float64
		wantColumns int
		wantSize    float64
		wantFitted  bool
	}{
		{"Yearly rows with shrunk cells", 1040, 52, 1040 / 62.2, true},
		{"Two years per row on wide screens", 2000, 104, 2000 / 124.6, true},
		{"Yearly rows at max size", 1300, 52, 20, true},
		{"Half-year rows when 52 is too tight", 700, 26, 20, true},
		{"Fallback on a sliver", 10, 1, config.MinCellSize, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := p.Plan(4174, tt.width)

			assert.Equal(t, tt.wantColumns, g.Columns)
			assert.InDelta(t, tt.wantSize, g.CellSize, 1e-9)
			assert.InDelta(t, g.CellSize*config.GapRatio, g.Gap, 1e-9)
			assert.Equal(t, tt.wantFitted, g.Fitted)

			wantWidth := float64(g.Columns)*g.CellSize + float64(g.Columns-1)*g.Gap
			assert.InDelta(t, wantWidth, g.TotalWidth, 1e-9)
			if g.Fitted {
				assert.LessOrEqual(t, g.TotalWidth, tt.width+config.FitTolerance)
				assert.NoError(t, g.Err())
			} else {
				assert.ErrorIs(t, g.Err(), layout.ErrLayoutUnfittable)
			}
		})
	}
}

func TestPlan_Rows(t *testing.T) {
	g := layout.DefaultPlanner().Plan(4174, 1040)

	require.Equal(t, 52, g.Columns)
	assert.Equal(t, 81, g.Rows) // 80 full rows plus 14 weeks
	assert.InDelta(t, 81*g.CellSize+80*g.Gap, g.TotalHeight(), 1e-9)
}

// TestPlan_MonotonicColumns shrinks the width step by step: the chosen column
// count must never grow back.
func TestPlan_MonotonicColumns(t *testing.T) {
	p := layout.DefaultPlanner()

	prev := p.Plan(4174, 8000).Columns
	for w := 8000.0; w >= 1; w -= 7 {
		got := p.Plan(4174, w).Columns
		require.LessOrEqual(t, got, prev, "width %.0f", w)
		prev = got
	}
}

func TestPlan_Idempotent(t *testing.T) {
	p := layout.DefaultPlanner()

	assert.Equal(t, p.Plan(4174, 1234.5), p.Plan(4174, 1234.5))
}

func TestPlan_EmptyCandidatesUseDefaults(t *testing.T) {
	p := layout.Planner{MaxCell: 20, MinCell: 12, GapRatio: 0.2, Tolerance: 0.01}

	assert.Equal(t, 52, p.Plan(100, 1040).Columns)
}

func TestGridLayout_CellOrigin(t *testing.T) {
	g := layout.GridLayout{Columns: 52, CellSize: 10, Gap: 2}

	x, y := g.CellOrigin(0)
	assert.Zero(t, x)
	assert.Zero(t, y)

	x, y = g.CellOrigin(53)
	assert.Equal(t, 12.0, x)
	assert.Equal(t, 12.0, y)
}

// TestPlan_ToleranceRejectsShrunkRow makes the solved row overshoot the
// available width: the candidate must be skipped, not accepted.
func TestPlan_ToleranceRejectsShrunkRow(t *testing.T) {
	p := layout.Planner{MaxCell: 20, MinCell: 4, GapRatio: 0.2, Candidates: []int{52, 26}}

	p.Tolerance = 0.5
	g := p.Plan(4174, 700)
	require.Equal(t, 52, g.Columns, "within tolerance the shrunk yearly row is kept")
	assert.InDelta(t, 700/62.2, g.CellSize, 1e-9)

	p.Tolerance = -1
	g = p.Plan(4174, 700)
	assert.Equal(t, 26, g.Columns)
	assert.InDelta(t, 20, g.CellSize, 1e-9)
	assert.True(t, g.Fitted)
}

func TestPlan_ToleranceFallback(t *testing.T) {
	p := layout.Planner{MaxCell: 20, MinCell: 4, GapRatio: 0.2, Tolerance: -1, Candidates: []int{52}}

	g := p.Plan(4174, 700)

	assert.False(t, g.Fitted)
	assert.Equal(t, 52, g.Columns)
	assert.InDelta(t, 4, g.CellSize, 1e-9, "fallback uses the minimum cell size")
	assert.InDelta(t, 0.8, g.Gap, 1e-9)
	assert.ErrorIs(t, g.Err(), layout.ErrLayoutUnfittable)
}
