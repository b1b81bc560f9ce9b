package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
)

// Week colours. Past weeks are filled dark, the current one is highlighted.
var (
	colorPast    = color.NRGBA{R: 0x3c, G: 0x3c, B: 0x3c, A: 0xff}
	colorCurrent = color.NRGBA{R: 0xe5, G: 0x48, B: 0x4d, A: 0xff}
	colorFuture  = color.NRGBA{R: 0xd8, G: 0xd8, B: 0xd8, A: 0xff}
)

func stateColor(s engine.WeekState) color.Color {
	switch s {
	case engine.WeekPast:
		return colorPast
	case engine.WeekCurrent:
		return colorCurrent
	default:
		return colorFuture
	}
}

// GridView draws one square per week of a Frame and reports its width so the
// dispatcher can re-plan the layout. It implements engine.Renderer.
//
// All fields are owned by the fyne main goroutine; Render hops onto it.
type GridView struct {
	widget.BaseWidget

	// OnResize is called with the new width whenever the widget is laid out
	// at a different width.
	OnResize func(width float32)

	frame     engine.Frame
	cells     []*canvas.Rectangle
	content   *fyne.Container
	lastWidth float32
}

// NewGridView creates an empty grid.
func NewGridView() *GridView {
	g := &GridView{content: container.NewWithoutLayout()}
	g.ExtendBaseWidget(g)
	return g
}

// Render schedules frame to be drawn on the UI goroutine.
func (g *GridView) Render(frame engine.Frame) {
	fyne.Do(func() { g.apply(frame) })
}

// Frame returns the frame currently on screen.
func (g *GridView) Frame() engine.Frame {
	return g.frame
}

// apply replaces the drawn frame. A new frame always repaints every cell.
func (g *GridView) apply(frame engine.Frame) {
	g.frame = frame
	total := len(frame.Weeks.States)

	for len(g.cells) < total {
		g.cells = append(g.cells, canvas.NewRectangle(colorFuture))
	}

	objects := make([]fyne.CanvasObject, total)
	for i, state := range frame.Weeks.States {
		cell := g.cells[i]
		cell.FillColor = stateColor(state)
		objects[i] = cell
	}
	g.content.Objects = objects

	g.placeCells(g.Size().Width)
	g.Refresh()
}

// offset centres the grid horizontally in width.
func (g *GridView) offset(width float32) float32 {
	extra := float64(width) - g.frame.Layout.TotalWidth
	if extra <= 0 {
		return 0
	}
	return float32(extra / 2)
}

func (g *GridView) placeCells(width float32) {
	l := g.frame.Layout
	size := fyne.NewSquareSize(float32(l.CellSize))
	left := g.offset(width)

	for i, obj := range g.content.Objects {
		x, y := l.CellOrigin(i)
		obj.Resize(size)
		obj.Move(fyne.NewPos(left+float32(x), float32(y)))
	}
}

// CreateRenderer implements fyne.Widget.
func (g *GridView) CreateRenderer() fyne.WidgetRenderer {
	return &gridRenderer{grid: g}
}

type gridRenderer struct {
	grid *GridView
}

func (r *gridRenderer) Layout(size fyne.Size) {
	g := r.grid
	g.content.Resize(size)
	g.placeCells(size.Width)

	if size.Width != g.lastWidth {
		g.lastWidth = size.Width
		if g.OnResize != nil {
			g.OnResize(size.Width)
		}
	}
}

func (r *gridRenderer) MinSize() fyne.Size {
	l := r.grid.frame.Layout
	return fyne.NewSize(float32(l.CellSize), float32(l.TotalHeight()))
}

func (r *gridRenderer) Refresh() {
	r.Layout(r.grid.Size())
	r.grid.content.Refresh()
}

func (r *gridRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.grid.content}
}

func (r *gridRenderer) Destroy() {}
