package timescale

import (
	"testing"
	"time"

	"horizon-cli/internal/model"
)

func msPtr(t time.Time) *int64 {
	ms := t.UnixMilli()
	return &ms
}

func TestClassifyBuckets(t *testing.T) {
	// Monday 2024-06-10, noon UTC.
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

	day := func(y int, m time.Month, d int) *int64 {
		return msPtr(time.Date(y, m, d, 9, 0, 0, 0, time.UTC))
	}

	cases := []struct {
		name      string
		due       *int64
		completed bool
		want      model.Timescale
	}{
		{"yesterday is overdue", day(2024, 6, 9), false, model.TimescaleOverdue},
		{"same day is today", day(2024, 6, 10), false, model.TimescaleToday},
		{"upcoming sunday is this week", day(2024, 6, 16), false, model.TimescaleThisWeek},
		{"next monday is this month", day(2024, 6, 17), false, model.TimescaleThisMonth},
		{"last day of june is this month", day(2024, 6, 30), false, model.TimescaleThisMonth},
		{"july is later", day(2024, 7, 5), false, model.TimescaleLater},
		{"no due date is someday", nil, false, model.TimescaleSomeday},
		{"completed wins over due date", day(2024, 6, 9), true, model.TimescaleCompleted},
		{"completed without due date", nil, true, model.TimescaleCompleted},
	}

	for _, tc := range cases {
		if got := Classify(tc.due, tc.completed, now); got != tc.want {
			t.Fatalf("%s: got %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestClassifySundayEndsItsOwnWeek(t *testing.T) {
	// On a Sunday the ISO weekday is 7, so the week window ends that same day.
	now := time.Date(2024, 6, 16, 8, 0, 0, 0, time.UTC)

	if got := Classify(msPtr(time.Date(2024, 6, 16, 23, 0, 0, 0, time.UTC)), false, now); got != model.TimescaleToday {
		t.Fatalf("due today: got %s", got)
	}
	if got := Classify(msPtr(time.Date(2024, 6, 17, 1, 0, 0, 0, time.UTC)), false, now); got != model.TimescaleThisMonth {
		t.Fatalf("due monday after sunday: got %s, want ThisMonth", got)
	}
}

func TestClassifyMonthBoundaryAcrossYear(t *testing.T) {
	// December rolls into January; end-of-month must still resolve.
	now := time.Date(2024, 12, 2, 10, 0, 0, 0, time.UTC)

	if got := Classify(msPtr(time.Date(2024, 12, 31, 10, 0, 0, 0, time.UTC)), false, now); got != model.TimescaleThisMonth {
		t.Fatalf("dec 31: got %s, want ThisMonth", got)
	}
	if got := Classify(msPtr(time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC)), false, now); got != model.TimescaleLater {
		t.Fatalf("jan 2: got %s, want Later", got)
	}
}

func TestRefreshStoresDerivedValue(t *testing.T) {
	now := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	e := model.Entry{Status: model.StatusBacklog}

	Refresh(&e, now)
	if e.Timescale != model.TimescaleSomeday {
		t.Fatalf("no due date: got %s", e.Timescale)
	}

	e.DueTS = msPtr(now)
	Refresh(&e, now)
	if e.Timescale != model.TimescaleToday {
		t.Fatalf("due now: got %s", e.Timescale)
	}

	e.IsCompleted = true
	Refresh(&e, now)
	if e.Timescale != model.TimescaleCompleted {
		t.Fatalf("completed: got %s", e.Timescale)
	}
}
