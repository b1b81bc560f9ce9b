package ui

import "fyne.io/fyne/v2"

// PreferenceStore persists the dispatcher state in the fyne preferences.
type PreferenceStore struct {
	prefs fyne.Preferences
}

// NewPreferenceStore wraps p.
func NewPreferenceStore(p fyne.Preferences) *PreferenceStore {
	return &PreferenceStore{prefs: p}
}

// Get returns the stored value; an empty string counts as absent.
func (s *PreferenceStore) Get(key string) (string, bool) {
	v := s.prefs.String(key)
	return v, v != ""
}

// Set stores value under key.
func (s *PreferenceStore) Set(key, value string) {
	s.prefs.SetString(key, value)
}
