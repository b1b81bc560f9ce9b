package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
	"github.com/zalando/go-keyring"
)

// settingsWidgets holds references to UI elements to simplify data retrieval during save.
type settingsWidgets struct {
	langSelect *widget.Select
	tzEntry    *widget.SelectEntry
	checkFeed  *widget.Check
	entryPort  *NumericalEntry
	urlEntry   *widget.Entry
	userEntry  *widget.Entry
	passEntry  *widget.Entry
}

// ShowSettingsWindow displays the preferences dialog.
func (app *LifeWeeksApp) ShowSettingsWindow() {
	if app.settingsWindow != nil {
		app.settingsWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgSettingsOpen, config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.settingsWindow = w

	sw := app.newSettingsWidgets()

	// --- General ---
	itemLang := widget.NewFormItem(app.GetMsg(config.TKeyLblLanguage), sw.langSelect)
	itemTZ := widget.NewFormItem(app.GetMsg(config.TKeyLblTimezone), sw.tzEntry)
	itemTZ.HintText = app.GetMsg(config.TKeyHelpTimezone)
	generalCard := widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", widget.NewForm(itemLang, itemTZ))

	// --- Feed ---
	itemPort := widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.entryPort)
	itemPort.HintText = app.GetMsg(config.TKeyHelpPort)
	feedCard := widget.NewCard(app.GetMsg(config.TKeyLblFeed), "",
		container.NewVBox(sw.checkFeed, widget.NewForm(itemPort)))

	// --- Import ---
	itemURL := widget.NewFormItem(app.GetMsg(config.TKeyLblURL), sw.urlEntry)
	itemURL.HintText = app.GetMsg(config.TKeyHelpURL)
	importCard := widget.NewCard(app.GetMsg(config.TKeyLblImport), "", widget.NewForm(
		itemURL,
		widget.NewFormItem(app.GetMsg(config.TKeyLblUser), sw.userEntry),
		widget.NewFormItem(app.GetMsg(config.TKeyLblPass), sw.passEntry),
	))

	// --- Actions ---
	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), func() {
		if sw.checkFeed.Checked {
			if err := sw.entryPort.Validate(); err != nil {
				dialog.ShowError(err, w)
				return
			}
		}
		app.saveSettings(sw)
		w.Close()
	})
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), w.Close)

	footer := widget.NewLabel(fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version))
	footer.Alignment = fyne.TextAlignCenter
	footer.TextStyle = fyne.TextStyle{Italic: true}

	content := container.NewPadded(container.NewVBox(
		generalCard,
		feedCard,
		importCard,
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footer,
	))

	w.SetContent(content)
	w.Resize(fyne.NewSize(config.SettingsWindowWidth, content.MinSize().Height))
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.settingsWindow = nil })
	w.Show()
}

// newSettingsWidgets builds the inputs pre-filled from preferences and keyring.
func (app *LifeWeeksApp) newSettingsWidgets() *settingsWidgets {
	sw := &settingsWidgets{}

	sw.langSelect = widget.NewSelect(app.SupportedLanguages, nil)
	sw.langSelect.SetSelected(app.Preferences.StringWithFallback(config.PrefLanguage, config.DefaultLanguage))

	sw.tzEntry = widget.NewSelectEntry([]string{config.TimezoneUTC, config.TimezoneLocal})
	sw.tzEntry.SetText(app.Preferences.StringWithFallback(config.PrefTimezone, config.DefaultTimezone))

	sw.checkFeed = widget.NewCheck(app.GetMsg(config.TKeyLblEnableFeed), nil)
	sw.checkFeed.SetChecked(app.Preferences.BoolWithFallback(config.PrefFeedEnabled, config.DefaultFeedState))

	sw.entryPort = NewNumericalEntry()
	sw.entryPort.SetText(app.Preferences.StringWithFallback(config.PrefServerPort, config.DefaultPort))
	sw.entryPort.Validator = app.validatePort

	sw.urlEntry = widget.NewEntry()
	sw.urlEntry.SetPlaceHolder(config.PlaceholderURL)
	sw.urlEntry.SetText(app.Preferences.String(config.PrefCardURL))

	sw.userEntry = widget.NewEntry()
	sw.userEntry.SetText(app.Preferences.String(config.PrefUsername))

	sw.passEntry = widget.NewPasswordEntry()
	if user := sw.userEntry.Text; user != "" {
		if pwd, err := keyring.Get(config.KeyringService, user); err == nil {
			sw.passEntry.SetText(pwd)
		}
	}
	return sw
}

func (app *LifeWeeksApp) validatePort(s string) error {
	if s == "" {
		return errors.New(app.GetMsg(config.TKeyErrPortReq))
	}
	port, err := strconv.Atoi(s)
	if err != nil {
		return errors.New(app.GetMsg(config.TKeyErrPortNum))
	}
	if port < config.MinPort || port > config.MaxPort {
		return errors.New(app.GetMsg(config.TKeyErrPortRange))
	}
	return nil
}

// saveSettings persists the preferences and applies them: localizer, tray
// labels, feed server and timezone. The timezone change re-renders the grid.
func (app *LifeWeeksApp) saveSettings(sw *settingsWidgets) {
	slog.Info(config.MsgSettingsSave,
		config.LogKeyComponent, config.CompUISet,
		config.LogKeyLang, sw.langSelect.Selected)

	if sw.langSelect.Selected != "" {
		app.Preferences.SetString(config.PrefLanguage, sw.langSelect.Selected)
	}

	tz := sw.tzEntry.Text
	if tz == "" {
		tz = config.DefaultTimezone
	}
	app.Preferences.SetString(config.PrefTimezone, tz)

	app.Preferences.SetBool(config.PrefFeedEnabled, sw.checkFeed.Checked)
	if sw.entryPort.Text != "" {
		app.Preferences.SetString(config.PrefServerPort, sw.entryPort.Text)
	}

	app.Preferences.SetString(config.PrefCardURL, sw.urlEntry.Text)
	app.Preferences.SetString(config.PrefUsername, sw.userEntry.Text)
	if sw.userEntry.Text != "" && sw.passEntry.Text != "" {
		if err := keyring.Set(config.KeyringService, sw.userEntry.Text, sw.passEntry.Text); err != nil {
			slog.Error(config.MsgKeyringFail,
				config.LogKeyComponent, config.CompUISet,
				config.LogKeyError, err)
		}
	}

	app.UpdateLocalizer()
	app.RefreshTrayMenu()
	app.restartFeed()

	if _, err := app.Dispatcher.SetLocation(engine.LoadLocation(tz)); err != nil {
		slog.Debug(config.MsgNoRender,
			config.LogKeyComponent, config.CompUISet,
			config.LogKeyError, err)
	}
}
