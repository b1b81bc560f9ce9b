package ui

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
	"github.com/tartampluch/go-lifeweeks/internal/layout"
	"github.com/tartampluch/go-lifeweeks/internal/server"
)

// LifeWeeksApp holds the UI state, preferences, and background services.
type LifeWeeksApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Importer   *engine.Importer
	Clock      engine.Clock
	Dispatcher *engine.Dispatcher
	Grid       *GridView

	Tray desktop.App
	Menu *fyne.Menu

	TrayStatusItem   *fyne.MenuItem
	TrayShowItem     *fyne.MenuItem
	TraySettingsItem *fyne.MenuItem

	SupportedLanguages []string

	// Main window widgets
	birthdayEntry *DateEntry
	endEntry      *DateEntry
	lifespanEntry *NumericalEntry
	statusLabel   *widget.Label
	gridScroll    fyne.CanvasObject

	settingsWindow fyne.Window
	resize         *engine.Debouncer

	// Feed server lifecycle; replaced when the port or toggle changes.
	feedMu     sync.Mutex
	Server     *server.FeedServer
	feedCancel context.CancelFunc
}

// NewLifeWeeksApp constructs the application and wires the pipeline:
// fyne preferences as the store, the grid widget plus status, tray and
// feed as renderers.
func NewLifeWeeksApp(a fyne.App, ctx context.Context, importer *engine.Importer) *LifeWeeksApp {
	a.SetIcon(theme.HistoryIcon())

	app := &LifeWeeksApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Importer:           importer,
		Clock:              engine.RealClock{},
		Grid:               NewGridView(),
		SupportedLanguages: config.SupportedLanguages,
		resize:             engine.NewDebouncer(config.ResizeDebounce),
	}

	// The clock is read through the app so tests can swap it after construction.
	clock := engine.ClockFunc(func() time.Time { return app.Clock.Now() })
	loc := engine.LoadLocation(app.Preferences.StringWithFallback(config.PrefTimezone, config.DefaultTimezone))

	app.Dispatcher = engine.NewDispatcher(
		NewPreferenceStore(app.Preferences),
		engine.Renderers{app.Grid, engine.RendererFunc(app.onFrame)},
		clock,
		layout.DefaultPlanner(),
		loc,
	)
	app.Grid.OnResize = app.onGridResize
	return app
}

// Run launches the services and blocks in the fyne event loop.
func (app *LifeWeeksApp) Run() {
	app.SetupI18n()
	app.ShowMainWindow()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayNotSupported, config.LogKeyComponent, config.CompUI)
	}

	app.restartFeed()
	app.redraw()

	go app.backgroundWorker()
	app.App.Run()

	app.resize.Stop()
}

// setupTrayMenu constructs the system tray menu.
func (app *LifeWeeksApp) setupTrayMenu() {
	app.TrayStatusItem = fyne.NewMenuItem(config.FallbackTrayLabel, app.ShowMainWindow)
	app.TrayShowItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuShow), app.ShowMainWindow)
	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), app.ShowSettingsWindow)

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayStatusItem,
		fyne.NewMenuItemSeparator(),
		app.TrayShowItem,
		app.TraySettingsItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *LifeWeeksApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayShowItem.Label = app.GetMsg(config.TKeyMenuShow)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
	app.Menu.Refresh()
}

// backgroundWorker re-runs the pipeline on a fixed schedule so the current
// week moves forward while the app stays open.
func (app *LifeWeeksApp) backgroundWorker() {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	ticker := time.NewTicker(config.RefreshInterval)
	defer ticker.Stop()

	log.Info(config.MsgWorkerStart, config.LogKeyInterval, config.RefreshInterval)

	for {
		select {
		case <-app.Ctx.Done():
			log.Info(config.MsgWorkerStop)
			return
		case <-ticker.C:
			app.redraw()
		}
	}
}

// redraw re-runs the pipeline with unchanged inputs.
func (app *LifeWeeksApp) redraw() {
	if _, err := app.Dispatcher.Refresh(); err != nil {
		slog.Debug(config.MsgNoRender,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
	}
}

// onGridResize debounces width changes coming from the grid layout.
func (app *LifeWeeksApp) onGridResize(width float32) {
	w := app.availableWidth(width)
	app.resize.Trigger(func() {
		if _, err := app.Dispatcher.Resized(w); err != nil {
			slog.Debug(config.MsgNoRender,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyWidth, w,
				config.LogKeyError, err)
		}
	})
}

// availableWidth prefers the grid width, then the window canvas, then the default.
func (app *LifeWeeksApp) availableWidth(gridWidth float32) float64 {
	if gridWidth > 0 {
		return float64(gridWidth)
	}
	if app.Window != nil {
		if w := app.Window.Canvas().Size().Width; w > 0 {
			return float64(w)
		}
	}
	return config.DefaultGridWidth
}

// onFrame is the renderer for everything that is not the grid itself:
// status text, tray label, date fields and the calendar feed.
func (app *LifeWeeksApp) onFrame(frame engine.Frame) {
	status := app.statusText(frame)
	tray := app.trayText(frame)

	fyne.Do(func() {
		if app.statusLabel != nil {
			app.statusLabel.SetText(status)
		}
		if app.endEntry != nil && !app.isFocused(app.endEntry) {
			app.endEntry.SetTextSilently(frame.EndDate)
		}
		if app.gridScroll != nil {
			app.gridScroll.Refresh()
		}
		if app.Menu != nil && app.TrayStatusItem != nil {
			app.TrayStatusItem.Label = tray
			app.Menu.Refresh()
		}
	})

	app.publishFeed(frame)
}

func (app *LifeWeeksApp) isFocused(obj fyne.Focusable) bool {
	if app.Window == nil {
		return false
	}
	return app.Window.Canvas().Focused() == obj
}

// statusText describes where now sits in the grid.
func (app *LifeWeeksApp) statusText(frame engine.Frame) string {
	w := frame.Weeks
	switch {
	case frame.Empty():
		return app.Localize(config.TKeyStatusEmpty, nil, config.FallbackStatusNone)
	case w.Current < 0:
		return app.Localize(config.TKeyStatusUnborn,
			map[string]any{"Total": w.Total},
			fmt.Sprintf(config.FallbackStatusNew, w.Total))
	case w.Current >= w.Total:
		return app.Localize(config.TKeyStatusDone,
			map[string]any{"Total": w.Total},
			fmt.Sprintf(config.FallbackStatusDone, w.Total))
	default:
		left := w.Total - w.Current - 1
		return app.Localize(config.TKeyStatusWeek,
			map[string]any{"Week": w.Current + 1, "Total": w.Total, "Left": left},
			fmt.Sprintf(config.FallbackStatus, w.Current+1, w.Total, left))
	}
}

// trayText is the short label shown at the top of the tray menu.
func (app *LifeWeeksApp) trayText(frame engine.Frame) string {
	if !frame.Weeks.HasCurrent() {
		return app.Localize(config.TKeyTrayIdle, nil, config.FallbackTrayLabel)
	}
	week := frame.Weeks.Current + 1
	return app.Localize(config.TKeyTrayStatus,
		map[string]any{"Week": week, "Total": frame.Weeks.Total},
		fmt.Sprintf(config.FallbackEvtWeek, week, frame.Weeks.Total))
}

// summaries localizes the feed event titles.
func (app *LifeWeeksApp) summaries() engine.Summaries {
	return engine.Summaries{
		Year: func(age int) string {
			return app.Localize(config.TKeyEvtYear,
				map[string]any{"Age": age},
				fmt.Sprintf(config.FallbackEvtYear, age))
		},
		Week: func(week, total int) string {
			return app.Localize(config.TKeyEvtWeek,
				map[string]any{"Week": week, "Total": total},
				fmt.Sprintf(config.FallbackEvtWeek, week, total))
		},
	}
}
