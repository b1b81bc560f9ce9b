package ui

import (
	"context"
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
	"github.com/tartampluch/go-lifeweeks/internal/server"
)

// restartFeed stops the running feed server, if any, and starts a new one
// when the feed is enabled in the preferences.
func (app *LifeWeeksApp) restartFeed() {
	app.feedMu.Lock()
	defer app.feedMu.Unlock()

	if app.feedCancel != nil {
		app.feedCancel()
		app.feedCancel = nil
		app.Server = nil
	}

	if !app.Preferences.BoolWithFallback(config.PrefFeedEnabled, config.DefaultFeedState) {
		return
	}

	port := app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort)
	srv := server.NewFeedServer(port)
	ctx, cancel := context.WithCancel(app.Ctx)
	app.Server = srv
	app.feedCancel = cancel

	go func() {
		if err := srv.Start(ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyPort, port,
				config.LogKeyError, err)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, port)))
		}
	}()
}

// publishFeed renders frame into the running feed server.
func (app *LifeWeeksApp) publishFeed(frame engine.Frame) {
	app.feedMu.Lock()
	srv := app.Server
	app.feedMu.Unlock()
	if srv == nil {
		return
	}

	data, err := engine.BuildCalendar(frame, app.Clock.Now(), app.summaries())
	if err != nil {
		slog.Error(config.ErrFeedBuild,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		return
	}
	srv.Update(data)
}
