package engine

import (
	"time"

	"github.com/tartampluch/go-lifeweeks/internal/config"
)

// EndDateMode records who set the end date last.
type EndDateMode int

const (
	// ModeDerived means the end date is birthday + lifespan years.
	ModeDerived EndDateMode = iota
	// ModeManual means the user typed the end date and it passed validation.
	ModeManual
)

// String returns the mode name used in logs.
func (m EndDateMode) String() string {
	switch m {
	case ModeDerived:
		return "derived"
	case ModeManual:
		return "manual"
	default:
		return "unknown"
	}
}

// Resolve computes the effective end date for a birthday.
//
// The raw end date is kept only when mode is ModeManual, it is a valid date
// and it falls strictly after the birthday. In every other case the end date
// is recomputed as birthday + years and the mode reverts to ModeDerived.
// An invalid birthday returns ErrInvalidDateFormat and nothing is resolved.
func Resolve(birthday, endRaw string, mode EndDateMode, years int, loc *time.Location) (string, EndDateMode, error) {
	born, err := ParseDate(birthday, loc)
	if err != nil {
		return "", mode, err
	}
	if years < config.MinLifespanYears {
		years = config.DefaultLifespanYears
	}

	derived := FormatDate(AddYears(born, years))
	if mode == ModeDerived {
		return derived, ModeDerived, nil
	}

	end, err := ParseDate(endRaw, loc)
	if err != nil || !end.After(born) {
		return derived, ModeDerived, nil
	}
	return endRaw, ModeManual, nil
}

// State is the only mutable input of the grid pipeline: the date pair, the
// lifespan used to derive the end date, and the end date mode.
//
// End date edits follow a two-phase commit: ProposeEndDate stores the raw
// value as a draft while the user types, CommitEndDate (on blur) promotes it
// to a manual override. EndDate and Mode always hold the committed value, so
// a draft never reaches Resolve. Resolve still rejects a committed value that
// is invalid or not after the birthday.
type State struct {
	Birthday      string
	EndDate       string
	Mode          EndDateMode
	LifespanYears int

	draft   string
	pending bool
}

// NewState restores a state from persisted values. A stored end date that
// differs from the derived one can only come from a manual edit, so it starts
// in ModeManual; Resolve demotes it if it no longer holds.
func NewState(birthday, endDate string, years int) State {
	if years < config.MinLifespanYears {
		years = config.DefaultLifespanYears
	}
	s := State{Birthday: birthday, EndDate: endDate, LifespanYears: years}
	if endDate == "" {
		return s
	}
	if born, err := ParseDate(birthday, time.UTC); err == nil && endDate != FormatDate(AddYears(born, years)) {
		s.Mode = ModeManual
	}
	return s
}

// SetBirthday replaces the birthday. The end date is re-resolved on the next run.
func (s *State) SetBirthday(raw string) {
	s.Birthday = raw
}

// ProposeEndDate stores a raw end date typed by the user without committing it.
func (s *State) ProposeEndDate(raw string) {
	s.draft = raw
	s.pending = true
}

// CommitEndDate promotes a pending edit to a manual override.
// It returns false when there was nothing to commit.
func (s *State) CommitEndDate() bool {
	if !s.pending {
		return false
	}
	s.EndDate = s.draft
	s.Mode = ModeManual
	s.draft = ""
	s.pending = false
	return true
}

// Pending reports whether an end date edit awaits commit.
func (s State) Pending() bool {
	return s.pending
}

// Draft returns the uncommitted end date text, if any.
func (s State) Draft() string {
	return s.draft
}

// SetLifespan switches to a derived end date of the given number of years.
func (s *State) SetLifespan(years int) {
	if years >= config.MinLifespanYears && years <= config.MaxLifespanYears {
		s.LifespanYears = years
	}
	s.draft = ""
	s.pending = false
	s.Mode = ModeDerived
}

// Resolve returns a copy of s with the effective end date and mode.
func (s State) Resolve(loc *time.Location) (State, error) {
	end, mode, err := Resolve(s.Birthday, s.EndDate, s.Mode, s.LifespanYears, loc)
	if err != nil {
		return s, err
	}
	s.EndDate = end
	s.Mode = mode
	return s, nil
}
