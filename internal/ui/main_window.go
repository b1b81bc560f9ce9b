package ui

import (
	"errors"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
	"github.com/zalando/go-keyring"
)

// ShowMainWindow opens the grid window, or focuses it when already built.
func (app *LifeWeeksApp) ShowMainWindow() {
	if app.Window != nil {
		app.Window.Show()
		app.Window.RequestFocus()
		return
	}

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window = w

	w.SetContent(app.buildMainContent())
	w.Resize(fyne.NewSize(config.MainWindowWidth, config.MainWindowHeight))
	w.SetCloseIntercept(func() {
		// Keep running in the tray when there is one.
		if app.Tray != nil {
			w.Hide()
			return
		}
		app.App.Quit()
	})
	w.Show()
}

// buildMainContent lays out the input form above the scrolling grid and
// binds every field to its dispatcher trigger.
func (app *LifeWeeksApp) buildMainContent() fyne.CanvasObject {
	state := app.Dispatcher.State()

	app.birthdayEntry = NewDateEntry()
	app.birthdayEntry.SetText(state.Birthday)
	app.birthdayEntry.Validator = app.validateDate
	app.birthdayEntry.OnChanged = app.onBirthdayChanged

	app.endEntry = NewDateEntry()
	app.endEntry.SetText(state.EndDate)
	app.endEntry.Validator = app.validateDate
	app.endEntry.OnChanged = app.Dispatcher.EndDateInput
	app.endEntry.OnBlur = app.onEndDateBlur
	app.endEntry.OnSubmitted = func(string) { app.onEndDateBlur() }

	app.lifespanEntry = NewNumericalEntry()
	app.lifespanEntry.SetText(strconv.Itoa(state.LifespanYears))
	app.lifespanEntry.Validator = app.validateLifespan
	app.lifespanEntry.OnChanged = app.onLifespanChanged

	years := container.NewBorder(nil, nil, nil, widget.NewLabel(app.GetMsg(config.TKeyLblYears)), app.lifespanEntry)

	form := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblBirthday), app.birthdayEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblEndDate), app.endEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblLifespan), years),
	)

	btnImport := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnImport), theme.AccountIcon(), app.importBirthday)

	app.statusLabel = widget.NewLabel(app.statusText(engine.Frame{}))
	app.statusLabel.Alignment = fyne.TextAlignCenter
	app.statusLabel.TextStyle = fyne.TextStyle{Bold: true}

	top := container.NewVBox(
		container.NewBorder(nil, nil, nil, btnImport, form),
		app.statusLabel,
	)

	scroll := container.NewVScroll(app.Grid)
	app.gridScroll = scroll

	return container.NewBorder(container.NewPadded(top), nil, nil, nil, container.NewPadded(scroll))
}

func (app *LifeWeeksApp) onBirthdayChanged(raw string) {
	if _, err := app.Dispatcher.BirthdayChanged(raw); err != nil {
		// Half-typed dates land here on every keystroke; the last grid stays.
		slog.Debug(config.MsgNoRender,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyBirthday, raw)
	}
}

func (app *LifeWeeksApp) onEndDateBlur() {
	if _, err := app.Dispatcher.EndDateBlur(); err != nil {
		slog.Debug(config.MsgNoRender,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
	}
}

func (app *LifeWeeksApp) onLifespanChanged(string) {
	years, ok := app.lifespanEntry.IntValue()
	if !ok || years < config.MinLifespanYears || years > config.MaxLifespanYears {
		return
	}
	if _, err := app.Dispatcher.LifespanChanged(years); err != nil {
		slog.Debug(config.MsgNoRender,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
	}
}

func (app *LifeWeeksApp) validateDate(s string) error {
	if !engine.IsValidDate(s) {
		return errors.New(app.GetMsg(config.TKeyErrDate))
	}
	return nil
}

func (app *LifeWeeksApp) validateLifespan(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < config.MinLifespanYears || n > config.MaxLifespanYears {
		return errors.New(app.GetMsg(config.TKeyErrLifespan))
	}
	return nil
}

// importBirthday reads the birthday from the configured vCard URL, or asks
// for a local file when no URL is set.
func (app *LifeWeeksApp) importBirthday() {
	src := app.loadImportSource()
	if src.URL != "" {
		go app.runImport(src)
		return
	}

	d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil || r == nil {
			return
		}
		path := r.URI().Path()
		_ = r.Close()
		go app.runImport(engine.ImportSource{Path: path})
	}, app.Window)
	d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
	d.Show()
}

// loadImportSource assembles the remote source from preferences and keyring.
func (app *LifeWeeksApp) loadImportSource() engine.ImportSource {
	src := engine.ImportSource{
		URL:  app.Preferences.String(config.PrefCardURL),
		User: app.Preferences.String(config.PrefUsername),
	}
	if src.User != "" {
		if p, err := keyring.Get(config.KeyringService, src.User); err == nil {
			src.Pass = p
		} else {
			slog.Debug(config.MsgPassFail,
				config.LogKeyComponent, config.CompUI,
				config.LogKeyUser, src.User,
				config.LogKeyError, err)
		}
	}
	return src
}

// runImport fetches the birthday and feeds it through the birthday field,
// so it takes the same path as a typed date.
func (app *LifeWeeksApp) runImport(src engine.ImportSource) {
	if app.Importer == nil {
		return
	}
	date, err := app.Importer.ImportBirthday(app.Ctx, src)
	if err != nil {
		slog.Error(config.ErrImportFailed,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyURL, src.URL,
			config.LogKeyFile, src.Path,
			config.LogKeyError, err)
		fyne.Do(func() {
			if app.Window != nil {
				dialog.ShowError(errors.New(app.GetMsg(config.TKeyErrImport)), app.Window)
			}
		})
		return
	}

	slog.Info(config.MsgImported,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyBirthday, date)

	fyne.Do(func() {
		if app.birthdayEntry != nil {
			app.birthdayEntry.SetText(date)
		} else {
			app.onBirthdayChanged(date)
		}
	})
	app.App.SendNotification(fyne.NewNotification(config.AppName,
		app.Localize(config.TKeyNotifImported, map[string]any{"Date": date}, date)))
}
