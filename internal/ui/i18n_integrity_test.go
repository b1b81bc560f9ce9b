package ui_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lifeweeks/internal/config"
)

var translationKeys = []string{
	config.TKeyWinTitle,
	config.TKeyWinSettings,
	config.TKeyMenuShow,
	config.TKeyMenuSettings,
	config.TKeyTrayStatus,
	config.TKeyTrayIdle,
	config.TKeyStatusWeek,
	config.TKeyStatusDone,
	config.TKeyStatusUnborn,
	config.TKeyStatusEmpty,
	config.TKeyLblBirthday,
	config.TKeyLblEndDate,
	config.TKeyLblLifespan,
	config.TKeyLblYears,
	config.TKeyLblLanguage,
	config.TKeyLblTimezone,
	config.TKeyHelpTimezone,
	config.TKeyLblGeneral,
	config.TKeyLblFeed,
	config.TKeyLblEnableFeed,
	config.TKeyLblPort,
	config.TKeyHelpPort,
	config.TKeyLblImport,
	config.TKeyLblURL,
	config.TKeyHelpURL,
	config.TKeyLblUser,
	config.TKeyLblPass,
	config.TKeyBtnImport,
	config.TKeyBtnSave,
	config.TKeyBtnCancel,
	config.TKeyLblFooter,
	config.TKeyEvtYear,
	config.TKeyEvtWeek,
	config.TKeyNotifImported,
	config.TKeyErrImport,
	config.TKeyErrPortReq,
	config.TKeyErrPortNum,
	config.TKeyErrPortRange,
	config.TKeyErrDate,
	config.TKeyErrLifespan,
}

func loadLocale(t *testing.T, lang string) map[string]string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join("locales", "active."+lang+".json"))
	require.NoErrorf(t, err, "Must load active.%s.json", lang)

	var m map[string]string
	require.NoError(t, json.Unmarshal(content, &m), "JSON must be a flat string map")
	return m
}

// TestI18nIntegrity checks every key from config against every supported
// language, and the reverse.
func TestI18nIntegrity(t *testing.T) {
	defined := make(map[string]bool, len(translationKeys))
	for _, k := range translationKeys {
		defined[k] = true
	}

	for _, lang := range config.SupportedLanguages {
		t.Run(lang, func(t *testing.T) {
			locale := loadLocale(t, lang)

			for _, k := range translationKeys {
				assert.NotEmptyf(t, locale[k], "Key %q is missing in active.%s.json", k, lang)
			}
			for k := range locale {
				assert.Truef(t, defined[k], "Key %q in active.%s.json is not defined in config", k, lang)
			}
		})
	}
}
