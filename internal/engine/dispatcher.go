package engine

import (
	"errors"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/layout"
)

// Dispatcher maps external triggers (field edits, blur, resize, timer) to a
// full pipeline run. It owns the State and is its only writer.
//
// Every run resolves, persists, classifies, plans and renders to completion
// while holding the lock, so triggers coming from timers and from the UI
// goroutine are serialized.
type Dispatcher struct {
	mu sync.Mutex

	state    State
	store    SettingsStore
	renderer Renderer
	clock    Clock
	planner  layout.Planner
	loc      *time.Location
	width    float64
	last     Frame
}

// NewDispatcher restores the state from store. Nothing is rendered until the
// first trigger.
func NewDispatcher(store SettingsStore, renderer Renderer, clock Clock, planner layout.Planner, loc *time.Location) *Dispatcher {
	if clock == nil {
		clock = RealClock{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Dispatcher{
		state:    LoadState(store),
		store:    store,
		renderer: renderer,
		clock:    clock,
		planner:  planner,
		loc:      loc,
		width:    config.DefaultGridWidth,
	}
}

// LoadState reads the persisted date pair and lifespan.
func LoadState(store SettingsStore) State {
	if store == nil {
		return NewState("", "", config.DefaultLifespanYears)
	}
	birthday, _ := store.Get(config.PrefBirthday)
	endDate, _ := store.Get(config.PrefEndDate)

	years := config.DefaultLifespanYears
	if raw, ok := store.Get(config.PrefLifespan); ok {
		if n, err := strconv.Atoi(raw); err == nil {
			years = n
		}
	}
	return NewState(birthday, endDate, years)
}

// State returns a copy of the current state.
func (d *Dispatcher) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// LastFrame returns the last rendered frame.
func (d *Dispatcher) LastFrame() Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}

// SetLocation changes the timezone used to turn dates into instants and re-renders.
func (d *Dispatcher) SetLocation(loc *time.Location) (Frame, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if loc == nil {
		loc = time.UTC
	}
	d.loc = loc
	return d.run()
}

// BirthdayChanged handles an edit of the birthday field.
func (d *Dispatcher) BirthdayChanged(raw string) (Frame, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.SetBirthday(raw)
	return d.run()
}

// EndDateInput records a keystroke in the end date field. Nothing is rendered
// until EndDateBlur commits it.
func (d *Dispatcher) EndDateInput(raw string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.ProposeEndDate(raw)
	slog.Debug(config.MsgEndDateProposed,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyValue, raw)
}

// EndDateBlur commits a pending end date edit and re-renders.
func (d *Dispatcher) EndDateBlur() (Frame, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.CommitEndDate()
	return d.run()
}

// LifespanChanged derives the end date from a number of years.
func (d *Dispatcher) LifespanChanged(years int) (Frame, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.SetLifespan(years)
	return d.run()
}

// Resized re-plans the layout for a new container width.
// A non-positive width keeps the previous one.
func (d *Dispatcher) Resized(width float64) (Frame, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if width > 0 {
		d.width = width
	}
	return d.run()
}

// Refresh re-runs the pipeline with unchanged inputs; the clock may have
// moved the current week.
func (d *Dispatcher) Refresh() (Frame, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.run()
}

// run executes the pipeline. The caller holds d.mu.
func (d *Dispatcher) run() (Frame, error) {
	start := time.Now()
	next, frame, err := Recompute(d.state, Env{
		Now:      d.clock.Now(),
		Width:    d.width,
		Location: d.loc,
		Planner:  d.planner,
	})
	if err != nil {
		if errors.Is(err, ErrInvalidDateFormat) {
			slog.Debug(config.MsgNoRender,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyBirthday, d.state.Birthday)
		}
		return Frame{}, err
	}

	if d.state.Mode == ModeManual && next.Mode == ModeDerived {
		slog.Info(config.MsgEndDateReset,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyEndDate, d.state.EndDate)
	}
	d.state = next
	d.persist(frame)
	d.last = frame

	if d.renderer != nil {
		d.renderer.Render(frame)
	}

	slog.Debug(config.MsgRecomputed,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyMode, frame.Mode.String(),
		config.LogKeyTotal, frame.Weeks.Total,
		config.LogKeyCurrent, frame.Weeks.Current,
		config.LogKeyColumns, frame.Layout.Columns,
		config.LogKeyCellSize, frame.Layout.CellSize,
		config.LogKeyDuration, time.Since(start).Milliseconds())
	return frame, nil
}

// persist stores the resolved pair, never a half-typed end date.
func (d *Dispatcher) persist(frame Frame) {
	if d.store == nil {
		return
	}
	d.store.Set(config.PrefBirthday, frame.Birthday)
	d.store.Set(config.PrefEndDate, frame.EndDate)
	d.store.Set(config.PrefLifespan, strconv.Itoa(d.state.LifespanYears))
}
