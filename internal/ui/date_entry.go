package ui

import (
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
)

// DateEntry is a single-line Entry for YYYY-MM-DD dates that reports when it
// loses focus, which is when a pending end date edit gets committed.
type DateEntry struct {
	widget.Entry

	OnBlur func()
}

// NewDateEntry creates an empty date field.
func NewDateEntry() *DateEntry {
	e := &DateEntry{}
	e.ExtendBaseWidget(e)
	e.SetPlaceHolder(config.PlaceholderDate)
	return e
}

// FocusLost forwards to the embedded Entry then fires OnBlur.
func (e *DateEntry) FocusLost() {
	e.Entry.FocusLost()
	if e.OnBlur != nil {
		e.OnBlur()
	}
}

// SetTextSilently replaces the text without firing OnChanged.
func (e *DateEntry) SetTextSilently(text string) {
	if e.Text == text {
		return
	}
	cb := e.OnChanged
	e.OnChanged = nil
	e.SetText(text)
	e.OnChanged = cb
}

// Valid reports whether the text is a real calendar date.
func (e *DateEntry) Valid() bool {
	return engine.IsValidDate(e.Text)
}
