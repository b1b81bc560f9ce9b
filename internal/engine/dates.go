package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// IsValidDate reports whether s is a real calendar date written as YYYY-MM-DD.
// The parsed date must format back to exactly s, which rejects overflowing
// inputs such as "2023-02-29" as well as unpadded or padded variants.
func IsValidDate(s string) bool {
	t, err := time.Parse(config.DateLayout, s)
	if err != nil {
		return false
	}
	return t.Format(config.DateLayout) == s
}

// ParseDate returns midnight of the date s in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if !IsValidDate(s) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(config.DateLayout, s, loc)
}

// FormatDate renders t in the canonical YYYY-MM-DD form.
func FormatDate(t time.Time) string {
	return t.Format(config.DateLayout)
}

// AddYears shifts t by n years keeping month and day.
// Feb 29 on a non-leap target year normalizes to Mar 1, as time.Date does.
func AddYears(t time.Time, n int) time.Time {
	return time.Date(t.Year()+n, t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// LoadLocation resolves the timezone preference used to turn dates into
// instants. Unknown names fall back to UTC.
func LoadLocation(name string) *time.Location {
	if name == "" {
		name = config.DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		slog.Warn(config.ErrTimezone,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyTimezone, name,
			config.LogKeyError, err)
		return time.UTC
	}
	return loc
}
