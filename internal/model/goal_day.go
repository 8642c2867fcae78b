package model

import (
	"github.com/google/uuid"

	"github.com/daykeep/daykeep/internal/apperr"
)

// GoalDayStatus is the tracking state of a single day.
type GoalDayStatus string

const (
	// GoalDayStatusSuccess marks a completed day. Terminal: no operation
	// reverses it.
	GoalDayStatusSuccess GoalDayStatus = "success"
	// GoalDayStatusError marks a day that passed without completion.
	GoalDayStatusError GoalDayStatus = "error"
	// GoalDayStatusPending marks a day still in the future.
	GoalDayStatusPending GoalDayStatus = "pending"
	// GoalDayStatusPendingToday marks the current day, awaiting completion.
	GoalDayStatusPendingToday GoalDayStatus = "pending_today"
)

// Valid reports whether s is one of the four known statuses.
func (s GoalDayStatus) Valid() bool {
	switch s {
	case GoalDayStatusSuccess, GoalDayStatusError, GoalDayStatusPending, GoalDayStatusPendingToday:
		return true
	}
	return false
}

// GoalDay is one calendar day's tracking record within a Goal.
// ID, Count and Date never change after creation; Status, IsBought and
// Note evolve through Sync, Complete and UpdateNote.
type GoalDay struct {
	ID       string        `json:"id"`
	Count    int           `json:"count"`
	Date     string        `json:"date"`
	Status   GoalDayStatus `json:"status"`
	IsBought bool          `json:"isBought"`
	Note     string        `json:"note,omitempty"`

	now Clock
}

// NewGoalDay creates the day with ordinal count at the given yyyy-MM-dd
// date, deriving its status from the clock's today: past dates start as
// Error, today as PendingToday, future dates as Pending.
func NewGoalDay(now Clock, count int, date string) *GoalDay {
	return &GoalDay{
		ID:     uuid.New().String(),
		Count:  count,
		Date:   date,
		Status: statusFor(now, date),
		now:    now,
	}
}

func statusFor(now Clock, date string) GoalDayStatus {
	today := todayOf(now)
	switch {
	case date < today:
		return GoalDayStatusError
	case date == today:
		return GoalDayStatusPendingToday
	default:
		return GoalDayStatusPending
	}
}

// Sync re-derives the status against the current today. Success days are
// never touched. Future days keep Pending; no regression case exists for
// them.
func (d *GoalDay) Sync() {
	if d.Status == GoalDayStatusSuccess {
		return
	}
	today := todayOf(d.now)
	switch {
	case d.Date < today:
		d.Status = GoalDayStatusError
	case d.Date == today:
		d.Status = GoalDayStatusPendingToday
	}
}

// Complete marks the day as achieved. Only today or yesterday can be
// completed; the day must still be PendingToday or Error; coins never buy
// a past day; and yesterday can only be fixed while today's day (supplied
// by the caller from the same goal) is still PendingToday.
func (d *GoalDay) Complete(todayDay *GoalDay, isBought bool, note string) error {
	if !d.IsToday() && !d.IsYesterday() {
		return apperr.New("Day cannot be completed", "Only today or yesterday can be completed.")
	}
	if d.Status == GoalDayStatusSuccess {
		return apperr.New("Day already completed", "")
	}
	if d.Status != GoalDayStatusPendingToday && d.Status != GoalDayStatusError {
		return apperr.New("Day cannot be completed", "The day is not in a completable state.")
	}
	if isBought && d.IsYesterday() {
		return apperr.New("Coins cannot buy past days", "Bought completions are only allowed for the current day.")
	}
	if d.IsYesterday() {
		if todayDay == nil || todayDay.Status != GoalDayStatusPendingToday {
			return apperr.New("Yesterday can no longer be changed", "Today's day is already resolved.")
		}
	}

	d.Status = GoalDayStatusSuccess
	d.IsBought = isBought
	d.Note = note
	return nil
}

// UpdateNote replaces the day's note. Submitting the identical text is
// rejected so a stale form resubmission surfaces instead of silently
// passing.
func (d *GoalDay) UpdateNote(note string) error {
	if note == d.Note {
		return apperr.New("Note unchanged", "The new note is identical to the current one.")
	}
	d.Note = note
	return nil
}

// IsToday reports whether the day's date is the clock's current date.
func (d *GoalDay) IsToday() bool {
	return d.Date == todayOf(d.now)
}

// IsYesterday reports whether the day's date is one day before today.
func (d *GoalDay) IsYesterday() bool {
	return d.Date == yesterdayOf(d.now)
}

// IsPending reports whether the day is still in the future.
func (d *GoalDay) IsPending() bool {
	return d.Status == GoalDayStatusPending
}

// IsYesterdayError reports whether the day was missed yesterday and is
// still eligible for the fix-yesterday exception.
func (d *GoalDay) IsYesterdayError() bool {
	return d.Status == GoalDayStatusError && d.IsYesterday()
}

// ShouldReadOnly reports whether the day is fully resolved: completed, or
// missed longer ago than yesterday. Read-only days are presented for
// viewing, never offered for completion.
func (d *GoalDay) ShouldReadOnly() bool {
	if d.Status == GoalDayStatusSuccess {
		return true
	}
	return d.Status == GoalDayStatusError && !d.IsYesterday()
}

// Clone returns a value copy sharing the same clock.
func (d *GoalDay) Clone() *GoalDay {
	c := *d
	return &c
}
