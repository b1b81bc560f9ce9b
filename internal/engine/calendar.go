package engine

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// Summaries lets the UI inject localized event titles into the feed.
// Nil fields fall back to the English formats in config.
type Summaries struct {
	Year func(age int) string
	Week func(week, total int) string
}

func (s Summaries) year(age int) string {
	if s.Year != nil {
		return s.Year(age)
	}
	return fmt.Sprintf(config.FallbackEvtYear, age)
}

func (s Summaries) week(week, total int) string {
	if s.Week != nil {
		return s.Week(week, total)
	}
	return fmt.Sprintf(config.FallbackEvtWeek, week, total)
}

// BuildCalendar renders a frame as an iCalendar feed: one all-day event per
// birthday anniversary before the end date, plus a week-long event for the
// current week when now falls inside the grid.
func BuildCalendar(frame Frame, now time.Time, summaries Summaries) ([]byte, error) {
	if frame.Empty() {
		return []byte(config.StubVCalendar), nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	born := frame.Weeks.Start
	end := frame.Weeks.StartOf(frame.Weeks.Total)
	uidBase := uidFor(frame.Birthday, frame.EndDate)

	for age := 1; ; age++ {
		day := AddYears(born, age)
		if !day.Before(end) {
			break
		}
		event := newDayEvent(fmt.Sprintf(config.FormatUID, uidBase, config.UIDKindYear, age, config.ICalDomain),
			summaries.year(age), day, day.AddDate(0, 0, 1))
		event.Props.Set(dtStampProp)
		cal.Children = append(cal.Children, event.Component)
	}

	if w := frame.Weeks; w.HasCurrent() {
		start := w.StartOf(w.Current)
		event := newDayEvent(fmt.Sprintf(config.FormatUID, uidBase, config.UIDKindWeek, w.Current, config.ICalDomain),
			summaries.week(w.Current+1, w.Total), start, start.AddDate(0, 0, config.DaysPerWeek))
		event.Props.Set(dtStampProp)
		cal.Children = append(cal.Children, event.Component)
	}

	if len(cal.Children) == 0 {
		return []byte(config.StubVCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Debug(config.MsgFeedBuilt,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyEvents, len(cal.Children),
		config.LogKeySizeBytes, buf.Len())
	return buf.Bytes(), nil
}

func newDayEvent(uid, summary string, start, end time.Time) *ical.Event {
	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, uid)
	event.Props.SetText(config.PropSummary, summary)

	dtStart := ical.NewProp(config.PropDTStart)
	dtStart.SetDate(start)
	event.Props.Set(dtStart)

	dtEnd := ical.NewProp(config.PropDTEnd)
	dtEnd.SetDate(end)
	event.Props.Set(dtEnd)
	return event
}

// uidFor derives a stable UID prefix so calendar clients update events in
// place across refreshes.
func uidFor(birthday, endDate string) string {
	input := fmt.Sprintf(config.FormatHashInput, birthday, endDate, config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash[:config.UIDHashLength])
}
