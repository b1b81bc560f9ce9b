package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		birthday string
		endRaw   string
		mode     engine.EndDateMode
		years    int
		wantEnd  string
		wantMode engine.EndDateMode
	}{
		{"Derived from empty", "1990-01-01", "", engine.ModeDerived, 80, "2070-01-01", engine.ModeDerived},
		{"Derived ignores raw value", "1990-01-01", "2050-01-01", engine.ModeDerived, 80, "2070-01-01", engine.ModeDerived},
		{"Manual kept", "1990-01-01", "2050-06-15", engine.ModeManual, 80, "2050-06-15", engine.ModeManual},
		{"Manual before birthday", "1990-01-01", "1980-01-01", engine.ModeManual, 80, "2070-01-01", engine.ModeDerived},
		{"Manual equal to birthday", "1990-01-01", "1990-01-01", engine.ModeManual, 80, "2070-01-01", engine.ModeDerived},
		{"Manual overflowing date", "1990-01-01", "2050-02-30", engine.ModeManual, 80, "2070-01-01", engine.ModeDerived},
		{"Manual empty", "1990-01-01", "", engine.ModeManual, 80, "2070-01-01", engine.ModeDerived},
		{"Custom lifespan", "1990-01-01", "", engine.ModeDerived, 90, "2080-01-01", engine.ModeDerived},
		{"Non-positive lifespan uses default", "1990-01-01", "", engine.ModeDerived, 0, "2070-01-01", engine.ModeDerived},
		{"Leapling", "2000-02-29", "", engine.ModeDerived, 80, "2080-02-29", engine.ModeDerived},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			end, mode, err := engine.Resolve(tt.birthday, tt.endRaw, tt.mode, tt.years, time.UTC)

			require.NoError(t, err)
			assert.Equal(t, tt.wantEnd, end)
			assert.Equal(t, tt.wantMode, mode)
		})
	}
}

func TestResolve_InvalidBirthday(t *testing.T) {
	_, _, err := engine.Resolve("1990-02-30", "2070-01-01", engine.ModeManual, 80, time.UTC)

	assert.ErrorIs(t, err, engine.ErrInvalidDateFormat)
}

func TestState_TwoPhaseCommit(t *testing.T) {
	s := engine.NewState("1990-01-01", "", 80)
	assert.Equal(t, engine.ModeDerived, s.Mode)

	// Nothing pending: blur is a no-op.
	assert.False(t, s.CommitEndDate())

	s.ProposeEndDate("2060-01-01")
	assert.True(t, s.Pending())
	assert.Equal(t, engine.ModeDerived, s.Mode, "typing alone must not lock the end date")

	assert.True(t, s.CommitEndDate())
	assert.False(t, s.Pending())
	assert.Equal(t, engine.ModeManual, s.Mode)

	resolved, err := s.Resolve(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, "2060-01-01", resolved.EndDate)
	assert.Equal(t, engine.ModeManual, resolved.Mode)
}

func TestState_BirthdayAfterManualEndForcesDerived(t *testing.T) {
	s := engine.NewState("1990-01-01", "2060-01-01", 80)
	require.Equal(t, engine.ModeManual, s.Mode)

	s.SetBirthday("2065-01-01")
	resolved, err := s.Resolve(time.UTC)

	require.NoError(t, err)
	assert.Equal(t, "2145-01-01", resolved.EndDate)
	assert.Equal(t, engine.ModeDerived, resolved.Mode)
}

func TestState_SetLifespan(t *testing.T) {
	s := engine.NewState("1990-01-01", "2060-01-01", 80)
	s.ProposeEndDate("2061-01-01")

	s.SetLifespan(90)

	assert.Equal(t, 90, s.LifespanYears)
	assert.Equal(t, engine.ModeDerived, s.Mode)
	assert.False(t, s.Pending())

	s.SetLifespan(-3)
	assert.Equal(t, 90, s.LifespanYears, "out of range lifespans are ignored")
}

func TestNewState_ModeFromPersistedValues(t *testing.T) {
	assert.Equal(t, engine.ModeDerived, engine.NewState("1990-01-01", "2070-01-01", 80).Mode)
	assert.Equal(t, engine.ModeManual, engine.NewState("1990-01-01", "2060-01-01", 80).Mode)
	assert.Equal(t, engine.ModeDerived, engine.NewState("", "2060-01-01", 80).Mode)
	assert.Equal(t, 80, engine.NewState("1990-01-01", "", 0).LifespanYears)
}

func TestEndDateMode_String(t *testing.T) {
	assert.Equal(t, "derived", engine.ModeDerived.String())
	assert.Equal(t, "manual", engine.ModeManual.String())
	assert.Equal(t, "unknown", engine.EndDateMode(42).String())
}
