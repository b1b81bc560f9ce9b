package engine

import (
	"time"

	"github.com/tartampluch/go-lifeweeks/internal/layout"
)

// Frame is everything a renderer needs for one paint.
type Frame struct {
	Birthday string
	EndDate  string
	Mode     EndDateMode
	Weeks    Weeks
	Layout   layout.GridLayout
}

// Empty reports whether there is nothing to draw.
func (f Frame) Empty() bool {
	return f.Weeks.Total == 0
}

// Env holds the inputs of a recompute that do not belong to the user state.
type Env struct {
	Now      time.Time
	Width    float64
	Location *time.Location
	Planner  layout.Planner
}

// Recompute runs the whole pipeline from scratch: resolve the end date,
// classify the weeks, plan the layout. It has no side effects; the same
// inputs always give the same state and frame.
//
// An invalid birthday returns ErrInvalidDateFormat with s unchanged and an
// empty frame. A pending end date draft is carried over untouched; only the
// committed end date is resolved.
func Recompute(s State, env Env) (State, Frame, error) {
	resolved, err := s.Resolve(env.Location)
	if err != nil {
		return s, Frame{}, err
	}

	born, err := ParseDate(resolved.Birthday, env.Location)
	if err != nil {
		return s, Frame{}, err
	}
	end, err := ParseDate(resolved.EndDate, env.Location)
	if err != nil {
		return s, Frame{}, err
	}

	weeks, err := Classify(born, end, env.Now)
	if err != nil {
		return resolved, Frame{}, err
	}

	return resolved, Frame{
		Birthday: resolved.Birthday,
		EndDate:  resolved.EndDate,
		Mode:     resolved.Mode,
		Weeks:    weeks,
		Layout:   env.Planner.Plan(weeks.Total, env.Width),
	}, nil
}
