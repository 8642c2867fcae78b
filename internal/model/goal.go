package model

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/daykeep/daykeep/internal/apperr"
)

// Goal is a tracked habit spanning a fixed range of consecutive calendar
// days. All days are materialized at creation; insertion order is
// chronological order. Goals are removed whole, never partially.
type Goal struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	UseCoins    bool       `json:"useCoins"`
	Coins       int        `json:"coins"`
	Days        []*GoalDay `json:"days"`

	now Clock
}

// CreateGoalDTO carries the goal creation parameters.
type CreateGoalDTO struct {
	// Date is the first tracked day, format yyyy-MM-dd.
	Date        string `json:"date"`
	Description string `json:"description"`
	UseCoins    bool   `json:"useCoins"`
	Coins       int    `json:"coins,omitempty"`
	Days        int    `json:"days"`
}

// NewGoal builds a goal from params, materializing params.Days entries of
// consecutive dates starting at params.Date, each classified against the
// clock's today.
func NewGoal(now Clock, params CreateGoalDTO) (*Goal, error) {
	if params.Days <= 0 {
		return nil, apperr.New("Invalid goal", "A goal needs at least one day.")
	}
	if params.UseCoins && params.Coins <= 0 {
		return nil, apperr.New("Invalid goal", "A coin-backed goal needs a positive coin cost.")
	}
	start, err := ParseDate(params.Date)
	if err != nil {
		return nil, apperr.New("Invalid goal", fmt.Sprintf("Date %q is not a valid yyyy-MM-dd date.", params.Date))
	}

	goal := &Goal{
		ID:          uuid.New().String(),
		Description: params.Description,
		UseCoins:    params.UseCoins,
		Coins:       params.Coins,
		Days:        make([]*GoalDay, params.Days),
		now:         now,
	}
	for i := range goal.Days {
		goal.Days[i] = NewGoalDay(now, i+1, FormatDate(start.AddDate(0, 0, i)))
	}
	return goal, nil
}

// Day returns the day with the exact date string, or nil.
func (g *Goal) Day(date string) *GoalDay {
	for _, day := range g.Days {
		if day.Date == date {
			return day
		}
	}
	return nil
}

// TodayDay returns the day whose date is the clock's today, or nil when
// the goal's range does not include today.
func (g *Goal) TodayDay() *GoalDay {
	return g.Day(todayOf(g.now))
}

// CompleteDay completes the day at the given date. The goal must contain
// both that date and today's date; the day's own completion rules apply
// beyond that.
func (g *Goal) CompleteDay(date string, isBought bool, note string) error {
	day := g.Day(date)
	if day == nil {
		return apperr.New("Day not found", fmt.Sprintf("The goal has no day at %s.", date))
	}
	todayDay := g.TodayDay()
	if todayDay == nil {
		return apperr.New("Day not found", "The goal has no day for today.")
	}
	return day.Complete(todayDay, isBought, note)
}

// UpdateDayNote replaces the note of a resolved day. Days still pending
// cannot carry notes.
func (g *Goal) UpdateDayNote(date string, note string) error {
	day := g.Day(date)
	if day == nil {
		return apperr.New("Day not found", fmt.Sprintf("The goal has no day at %s.", date))
	}
	if day.Status != GoalDayStatusSuccess && day.Status != GoalDayStatusError {
		return apperr.New("Day not resolved", "Notes can only be added to completed or missed days.")
	}
	return day.UpdateNote(note)
}

// SyncDays re-derives every day's status against the current today.
// Callers run this on launch or resume, before reading any
// status-dependent value, so days that crossed into the past while the
// app was not running are corrected.
func (g *Goal) SyncDays() {
	for _, day := range g.Days {
		day.Sync()
	}
}

// Clone returns a deep value copy sharing the same clock.
func (g *Goal) Clone() *Goal {
	c := *g
	c.Days = make([]*GoalDay, len(g.Days))
	for i, day := range g.Days {
		c.Days[i] = day.Clone()
	}
	return &c
}

// CloneGoals deep-copies a goal list, preserving order.
func CloneGoals(goals []*Goal) []*Goal {
	out := make([]*Goal, len(goals))
	for i, g := range goals {
		out[i] = g.Clone()
	}
	return out
}
