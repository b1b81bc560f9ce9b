package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
	"github.com/tartampluch/go-lifeweeks/internal/layout"
)

func newTestDispatcher(store engine.SettingsStore, r engine.Renderer) *engine.Dispatcher {
	clock := MockClock{CurrentTime: date(2024, 1, 1)}
	return engine.NewDispatcher(store, r, clock, layout.DefaultPlanner(), time.UTC)
}

func TestDispatcher_BirthdayChanged_PersistsAndRenders(t *testing.T) {
	store := engine.NewMemoryStore()
	renderer := new(MockRenderer)
	renderer.On("Render", mock.AnythingOfType("engine.Frame")).Once()

	d := newTestDispatcher(store, renderer)
	frame, err := d.BirthdayChanged("1990-01-01")

	require.NoError(t, err)
	assert.Equal(t, "2070-01-01", frame.EndDate)
	assert.Equal(t, 4174, frame.Weeks.Total)

	v, _ := store.Get(config.PrefBirthday)
	assert.Equal(t, "1990-01-01", v)
	v, _ = store.Get(config.PrefEndDate)
	assert.Equal(t, "2070-01-01", v)
	v, _ = store.Get(config.PrefLifespan)
	assert.Equal(t, "80", v)

	renderer.AssertExpectations(t)
}

func TestDispatcher_InvalidBirthday_NoRenderNoPersist(t *testing.T) {
	store := new(MockStore)
	store.On("Get", mock.Anything).Return("", false)
	renderer := new(MockRenderer)

	d := newTestDispatcher(store, renderer)
	frame, err := d.BirthdayChanged("1990-13-01")

	assert.ErrorIs(t, err, engine.ErrInvalidDateFormat)
	assert.True(t, frame.Empty())
	renderer.AssertNotCalled(t, "Render", mock.Anything)
	store.AssertNotCalled(t, "Set", mock.Anything, mock.Anything)
}

func TestDispatcher_InvalidBirthday_KeepsLastFrame(t *testing.T) {
	d := newTestDispatcher(engine.NewMemoryStore(), nil)

	good, err := d.BirthdayChanged("1990-01-01")
	require.NoError(t, err)

	_, err = d.BirthdayChanged("garbage")
	require.Error(t, err)
	assert.Equal(t, good, d.LastFrame())
}

func TestDispatcher_EndDateTwoPhase(t *testing.T) {
	renderer := new(MockRenderer)
	renderer.On("Render", mock.Anything)
	d := newTestDispatcher(engine.NewMemoryStore(), renderer)

	_, err := d.BirthdayChanged("1990-01-01")
	require.NoError(t, err)

	d.EndDateInput("2060-01-01")
	assert.True(t, d.State().Pending())
	renderer.AssertNumberOfCalls(t, "Render", 1)

	frame, err := d.EndDateBlur()
	require.NoError(t, err)
	assert.Equal(t, "2060-01-01", frame.EndDate)
	assert.Equal(t, engine.ModeManual, frame.Mode)
	renderer.AssertNumberOfCalls(t, "Render", 2)
}

func TestDispatcher_EndDateBeforeBirthdayReverts(t *testing.T) {
	d := newTestDispatcher(engine.NewMemoryStore(), nil)
	_, err := d.BirthdayChanged("1990-01-01")
	require.NoError(t, err)

	d.EndDateInput("1980-01-01")
	frame, err := d.EndDateBlur()

	require.NoError(t, err)
	assert.Equal(t, "2070-01-01", frame.EndDate)
	assert.Equal(t, engine.ModeDerived, frame.Mode)
}

func TestDispatcher_BirthdayPastManualEnd(t *testing.T) {
	d := newTestDispatcher(engine.NewMemoryStore(), nil)
	_, err := d.BirthdayChanged("1990-01-01")
	require.NoError(t, err)
	d.EndDateInput("2060-01-01")
	_, err = d.EndDateBlur()
	require.NoError(t, err)

	frame, err := d.BirthdayChanged("2065-01-01")

	require.NoError(t, err)
	assert.Equal(t, "2145-01-01", frame.EndDate)
	assert.Equal(t, engine.ModeDerived, frame.Mode)
}

func TestDispatcher_LifespanChanged(t *testing.T) {
	store := engine.NewMemoryStore()
	d := newTestDispatcher(store, nil)
	_, err := d.BirthdayChanged("1990-01-01")
	require.NoError(t, err)

	frame, err := d.LifespanChanged(90)

	require.NoError(t, err)
	assert.Equal(t, "2080-01-01", frame.EndDate)
	v, _ := store.Get(config.PrefLifespan)
	assert.Equal(t, "90", v)
}

func TestDispatcher_Resized(t *testing.T) {
	d := newTestDispatcher(engine.NewMemoryStore(), nil)
	_, err := d.BirthdayChanged("1990-01-01")
	require.NoError(t, err)

	frame, err := d.Resized(700)
	require.NoError(t, err)
	assert.Equal(t, 26, frame.Layout.Columns)

	frame, err = d.Resized(0)
	require.NoError(t, err)
	assert.Equal(t, 26, frame.Layout.Columns, "non-positive widths keep the previous width")
}

func TestDispatcher_RestoresManualEndDate(t *testing.T) {
	store := engine.NewMemoryStore()
	store.Set(config.PrefBirthday, "1990-01-01")
	store.Set(config.PrefEndDate, "2060-01-01")
	store.Set(config.PrefLifespan, "80")

	d := newTestDispatcher(store, nil)
	frame, err := d.Refresh()

	require.NoError(t, err)
	assert.Equal(t, "2060-01-01", frame.EndDate)
	assert.Equal(t, engine.ModeManual, frame.Mode)
}

func TestDispatcher_RefreshIdempotent(t *testing.T) {
	d := newTestDispatcher(engine.NewMemoryStore(), nil)
	_, err := d.BirthdayChanged("1990-01-01")
	require.NoError(t, err)

	f1, err := d.Refresh()
	require.NoError(t, err)
	f2, err := d.Refresh()
	require.NoError(t, err)

	assert.Equal(t, f1, f2)
}

func TestRenderers_FanOut(t *testing.T) {
	var got []int
	rs := engine.Renderers{
		engine.RendererFunc(func(f engine.Frame) { got = append(got, 1) }),
		nil,
		engine.RendererFunc(func(f engine.Frame) { got = append(got, 2) }),
	}

	rs.Render(engine.Frame{})

	assert.Equal(t, []int{1, 2}, got)
}

func TestDispatcher_ResizeWhileTyping(t *testing.T) {
	store := engine.NewMemoryStore()
	d := newTestDispatcher(store, nil)
	_, err := d.BirthdayChanged("1990-01-01")
	require.NoError(t, err)

	d.EndDateInput("2060-01-01")
	_, err = d.Resized(900)
	require.NoError(t, err)

	v, _ := store.Get(config.PrefEndDate)
	assert.Equal(t, "2070-01-01", v, "pending text is not persisted")

	frame, err := d.EndDateBlur()
	require.NoError(t, err)
	assert.Equal(t, "2060-01-01", frame.EndDate)
	assert.Equal(t, engine.ModeManual, frame.Mode)
}

func TestDispatcher_ResizeWhileTypingKeepsManualEnd(t *testing.T) {
	store := engine.NewMemoryStore()
	d := newTestDispatcher(store, nil)
	_, err := d.BirthdayChanged("1990-01-01")
	require.NoError(t, err)

	d.EndDateInput("2060-01-01")
	_, err = d.EndDateBlur()
	require.NoError(t, err)

	tests := []struct {
		name  string
		draft string
		width float64
	}{
		{"Valid draft", "2065-06-01", 900},
		{"Half typed draft", "2065-0", 901},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d.EndDateInput(tt.draft)
			frame, err := d.Resized(tt.width)
			require.NoError(t, err)

			assert.Equal(t, "2060-01-01", frame.EndDate)
			assert.Equal(t, engine.ModeManual, frame.Mode)
			v, _ := store.Get(config.PrefEndDate)
			assert.Equal(t, "2060-01-01", v)
			assert.Equal(t, tt.draft, d.State().Draft())
		})
	}

	frame, err := d.EndDateBlur()
	require.NoError(t, err)
	assert.Equal(t, "2070-01-01", frame.EndDate, "a committed half-typed date falls back to derived")
	assert.Equal(t, engine.ModeDerived, frame.Mode)
}
