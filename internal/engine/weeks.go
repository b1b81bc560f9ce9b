package engine

import (
	"fmt"
	"time"

	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// WeekState classifies one week relative to now.
type WeekState int

const (
	WeekPast WeekState = iota
	WeekCurrent
	WeekFuture
)

// String returns the state name.
func (s WeekState) String() string {
	switch s {
	case WeekPast:
		return "past"
	case WeekCurrent:
		return "current"
	case WeekFuture:
		return "future"
	default:
		return "unknown"
	}
}

// Weeks is the classified week sequence of a life.
type Weeks struct {
	// Start is the birthday instant; week i starts at Start + i*7 days.
	Start time.Time

	// Total is the number of full weeks between birthday and end date.
	Total int

	// Current is the index of the week containing now. It may lie outside
	// [0, Total) when now is before the birthday or after the end date.
	Current int

	// States holds one entry per week index.
	States []WeekState
}

// Classify splits [birthday, end) into 7-day buckets and marks each bucket as
// past, current or future relative to now.
// Week boundaries come from elapsed duration, not from calendar weeks.
// Spans are counted in whole seconds so they do not saturate like
// time.Duration beyond about 292 years.
func Classify(birthday, end, now time.Time) (Weeks, error) {
	total := elapsedWeeks(birthday, end)
	if total <= 0 {
		return Weeks{}, fmt.Errorf("%w: %d weeks", ErrNonPositiveLifespan, total)
	}

	current := elapsedWeeks(birthday, now)
	states := make([]WeekState, total)
	for i := range states {
		switch {
		case i < current:
			states[i] = WeekPast
		case i == current:
			states[i] = WeekCurrent
		default:
			states[i] = WeekFuture
		}
	}

	return Weeks{Start: birthday, Total: total, Current: current, States: states}, nil
}

// HasCurrent reports whether now falls inside the grid.
func (w Weeks) HasCurrent() bool {
	return w.Current >= 0 && w.Current < w.Total
}

// Lived returns the number of past weeks.
func (w Weeks) Lived() int {
	return min(max(w.Current, 0), w.Total)
}

// Remaining returns the number of weeks that are not past, current included.
func (w Weeks) Remaining() int {
	return w.Total - w.Lived()
}

// StartOf returns the first instant of week i.
func (w Weeks) StartOf(i int) time.Time {
	sec := w.Start.Unix() + int64(i)*secondsPerWeek
	return time.Unix(sec, int64(w.Start.Nanosecond())).In(w.Start.Location())
}

const secondsPerWeek = int64(config.WeekDuration / time.Second)

// elapsedWeeks returns the number of full weeks from start to t, rounding
// toward negative infinity so a birthday one day in the future yields -1
// rather than 0.
func elapsedWeeks(start, t time.Time) int {
	sec := t.Unix() - start.Unix()
	if t.Nanosecond() < start.Nanosecond() {
		sec--
	}
	q := sec / secondsPerWeek
	if sec%secondsPerWeek != 0 && sec < 0 {
		q--
	}
	return int(q)
}
