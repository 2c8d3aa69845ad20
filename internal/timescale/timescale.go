package timescale

import (
	"time"

	"horizon-cli/internal/model"
)

// Classify derives the time bucket for a due timestamp (milliseconds since
// epoch, nil = no due date) relative to now. Calendar boundaries are taken in
// now's location. Rules are evaluated in order:
//
//  1. completed                      -> Completed
//  2. no due date                    -> Someday
//  3. due day before today           -> Overdue
//  4. due day is today               -> Today
//  5. due day <= upcoming Sunday     -> ThisWeek
//  6. due day <= last day of month   -> ThisMonth
//  7. otherwise                      -> Later
func Classify(dueTS *int64, completed bool, now time.Time) model.Timescale {
	if completed {
		return model.TimescaleCompleted
	}
	if dueTS == nil {
		return model.TimescaleSomeday
	}

	today := dateOf(now)
	dueDate := dateOf(time.UnixMilli(*dueTS).In(now.Location()))

	switch {
	case dueDate.Before(today):
		return model.TimescaleOverdue
	case dueDate.Equal(today):
		return model.TimescaleToday
	}

	endOfWeek := today.AddDate(0, 0, 7-isoWeekday(today))
	if !dueDate.After(endOfWeek) {
		return model.TimescaleThisWeek
	}

	endOfMonth := time.Date(today.Year(), today.Month(), daysInMonth(today.Year(), today.Month()), 0, 0, 0, 0, today.Location())
	if !dueDate.After(endOfMonth) {
		return model.TimescaleThisMonth
	}

	return model.TimescaleLater
}

// Refresh recomputes and stores the entry's cached timescale.
func Refresh(e *model.Entry, now time.Time) {
	e.Timescale = Classify(e.DueTS, e.IsCompleted, now)
}

// dateOf truncates to local midnight so comparisons are calendar-day based.
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// isoWeekday maps Monday=1 .. Sunday=7.
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

func daysInMonth(y int, m time.Month) int {
	// Day 0 of next month is last day of this month.
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
