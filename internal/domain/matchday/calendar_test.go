package matchday

import (
	"errors"
	"testing"
	"time"
)

func TestCalendar_WindowFromFriday(t *testing.T) {
	cal := DefaultCalendar()
	now := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

	slots := cal.Window(now, 2)
	want := []Date{
		NewDate(2026, 10, 20),
		NewDate(2026, 10, 22),
		NewDate(2026, 10, 27),
		NewDate(2026, 10, 29),
	}
	if len(slots) != len(want) {
		t.Fatalf("expected %d slots, got %d", len(want), len(slots))
	}
	for i, slot := range slots {
		if slot.Date != want[i] {
			t.Fatalf("slot %d: got %s want %s", i, slot.Date, want[i])
		}
		if !slot.IsOpen || slot.IsPublished {
			t.Fatalf("slot %d: expected open and unpublished", i)
		}
		expectedDeadline := time.Date(want[i].Year, want[i].Month, want[i].Day, 12, 0, 0, 0, time.UTC)
		if !slot.Deadline.Equal(expectedDeadline) {
			t.Fatalf("slot %d: deadline %v want %v", i, slot.Deadline, expectedDeadline)
		}
	}
}

func TestCalendar_WindowIncludesTodayOnMatchDay(t *testing.T) {
	cal := DefaultCalendar()

	before := time.Date(2026, 10, 20, 11, 59, 59, 0, time.UTC)
	slots := cal.Window(before, 1)
	if len(slots) != 2 || slots[0].Date != NewDate(2026, 10, 20) {
		t.Fatalf("expected today first, got %+v", slots)
	}
	if !slots[0].IsOpen {
		t.Fatalf("expected today open strictly before noon")
	}

	after := time.Date(2026, 10, 20, 12, 0, 1, 0, time.UTC)
	slots = cal.Window(after, 1)
	if slots[0].Date != NewDate(2026, 10, 20) {
		t.Fatalf("expected today still enumerated after deadline, got %s", slots[0].Date)
	}
	if slots[0].IsOpen || !slots[0].IsPublished {
		t.Fatalf("expected today closed after noon")
	}
	if !slots[1].IsOpen {
		t.Fatalf("expected next match still open")
	}
}

func TestCalendar_DeadlineTransition(t *testing.T) {
	cal := DefaultCalendar()
	date := NewDate(2026, 10, 22)
	deadline := cal.Deadline(date)

	if !cal.IsOpen(date, deadline.Add(-time.Nanosecond)) {
		t.Fatalf("expected open just before deadline")
	}
	if cal.IsOpen(date, deadline) {
		t.Fatalf("expected closed exactly at deadline")
	}
	if cal.IsOpen(date, deadline.Add(time.Minute)) {
		t.Fatalf("expected closed after deadline")
	}
}

func TestCalendar_RespectsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*60*60)
	cal, err := NewCalendar([]time.Weekday{time.Tuesday, time.Thursday}, 12, loc)
	if err != nil {
		t.Fatalf("new calendar: %v", err)
	}

	// Monday 20:00 UTC is already Tuesday 03:00 in UTC+7.
	now := time.Date(2026, 10, 19, 20, 0, 0, 0, time.UTC)
	slots := cal.Window(now, 1)
	if slots[0].Date != NewDate(2026, 10, 20) {
		t.Fatalf("expected Tuesday first, got %s", slots[0].Date)
	}
	if got := slots[0].Deadline.UTC(); !got.Equal(time.Date(2026, 10, 20, 5, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected deadline in UTC: %v", got)
	}
}

func TestCalendar_Validate(t *testing.T) {
	cal := DefaultCalendar()

	if err := cal.Validate(NewDate(2026, 10, 20)); err != nil {
		t.Fatalf("expected tuesday valid: %v", err)
	}
	if err := cal.Validate(NewDate(2026, 10, 21)); !errors.Is(err, ErrNotMatchDay) {
		t.Fatalf("expected ErrNotMatchDay for wednesday, got %v", err)
	}
	if err := cal.Validate(Date{}); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate for zero date, got %v", err)
	}
}

func TestCalendar_Recent(t *testing.T) {
	cal := DefaultCalendar()
	now := time.Date(2026, 10, 22, 10, 0, 0, 0, time.UTC)

	got := cal.Recent(now, 7)
	want := []Date{NewDate(2026, 10, 15), NewDate(2026, 10, 20)}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("recent[%d]: got %s want %s", i, got[i], want[i])
		}
	}
}

func TestNewCalendar_RejectsBadInput(t *testing.T) {
	if _, err := NewCalendar(nil, 12, time.UTC); err == nil {
		t.Fatalf("expected error without weekdays")
	}
	if _, err := NewCalendar([]time.Weekday{time.Monday, time.Monday}, 12, time.UTC); err == nil {
		t.Fatalf("expected error for duplicate weekday")
	}
	if _, err := NewCalendar([]time.Weekday{time.Monday}, 24, time.UTC); err == nil {
		t.Fatalf("expected error for deadline hour 24")
	}
}

func TestParseDateAndWeekday(t *testing.T) {
	d, err := ParseDate("2026-10-20")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	if d.String() != "2026-10-20" || d.Weekday() != time.Tuesday {
		t.Fatalf("unexpected parsed date %s (%s)", d, d.Weekday())
	}
	if _, err := ParseDate("20/10/2026"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}

	wd, err := ParseWeekday("thu")
	if err != nil || wd != time.Thursday {
		t.Fatalf("expected thursday, got %v err=%v", wd, err)
	}
	if _, err := ParseWeekday("someday"); err == nil {
		t.Fatalf("expected error for unknown weekday")
	}
}

func TestCalendar_NextDeadline(t *testing.T) {
	cal := DefaultCalendar()

	date, deadline := cal.NextDeadline(time.Date(2026, time.October, 20, 11, 0, 0, 0, time.UTC))
	if date != NewDate(2026, time.October, 20) {
		t.Fatalf("expected same-day deadline, got %s", date)
	}
	if !deadline.Equal(time.Date(2026, time.October, 20, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected deadline: %s", deadline)
	}

	date, _ = cal.NextDeadline(time.Date(2026, time.October, 20, 12, 0, 0, 0, time.UTC))
	if date != NewDate(2026, time.October, 22) {
		t.Fatalf("expected thursday after deadline passed, got %s", date)
	}
}
