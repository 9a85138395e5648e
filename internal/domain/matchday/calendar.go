package matchday

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

const (
	DefaultDeadlineHour = 12
	DefaultWindowWeeks  = 2
)

var ErrNotMatchDay = errors.New("date is not a match day")

// Calendar knows the recurring match weekdays and the daily deadline hour.
// Availability closes and teams are published at the deadline.
type Calendar struct {
	weekdays     []time.Weekday
	deadlineHour int
	loc          *time.Location
}

// Slot is one upcoming match date as seen at a given instant.
type Slot struct {
	Date     Date
	Deadline time.Time
	IsOpen   bool
	// IsPublished is a hint derived from the clock only; the team sheet is authoritative.
	IsPublished bool
}

func NewCalendar(weekdays []time.Weekday, deadlineHour int, loc *time.Location) (Calendar, error) {
	if len(weekdays) == 0 {
		return Calendar{}, fmt.Errorf("at least one match weekday is required")
	}
	if deadlineHour < 0 || deadlineHour > 23 {
		return Calendar{}, fmt.Errorf("deadline hour must be within 0..23, got %d", deadlineHour)
	}
	if loc == nil {
		loc = time.UTC
	}

	days := make([]time.Weekday, 0, len(weekdays))
	for _, wd := range weekdays {
		if wd < time.Sunday || wd > time.Saturday {
			return Calendar{}, fmt.Errorf("invalid weekday %d", wd)
		}
		if slices.Contains(days, wd) {
			return Calendar{}, fmt.Errorf("duplicate match weekday %s", wd)
		}
		days = append(days, wd)
	}
	slices.Sort(days)

	return Calendar{weekdays: days, deadlineHour: deadlineHour, loc: loc}, nil
}

// DefaultCalendar plays on Tuesdays and Thursdays with a noon UTC deadline.
func DefaultCalendar() Calendar {
	cal, _ := NewCalendar([]time.Weekday{time.Tuesday, time.Thursday}, DefaultDeadlineHour, time.UTC)
	return cal
}

func ParseWeekday(raw string) (time.Weekday, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		name := strings.ToLower(wd.String())
		if value == name || value == name[:3] {
			return wd, nil
		}
	}
	return 0, fmt.Errorf("invalid weekday %q", raw)
}

func (c Calendar) Weekdays() []time.Weekday {
	return append([]time.Weekday(nil), c.weekdays...)
}

func (c Calendar) DeadlineHour() int {
	return c.deadlineHour
}

func (c Calendar) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

func (c Calendar) IsMatchDay(d Date) bool {
	if d.IsZero() {
		return false
	}
	return slices.Contains(c.weekdays, d.Weekday())
}

// Validate rejects zero dates and dates that do not fall on a match weekday.
func (c Calendar) Validate(d Date) error {
	if d.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidDate)
	}
	if !c.IsMatchDay(d) {
		return fmt.Errorf("%w: %s is a %s", ErrNotMatchDay, d, d.Weekday())
	}
	return nil
}

func (c Calendar) Deadline(d Date) time.Time {
	return time.Date(d.Year, d.Month, d.Day, c.deadlineHour, 0, 0, 0, c.Location())
}

func (c Calendar) IsOpen(d Date, now time.Time) bool {
	return now.Before(c.Deadline(d))
}

// Today is the calendar day of now in the calendar's location.
func (c Calendar) Today(now time.Time) Date {
	return DateOf(now.In(c.Location()))
}

// Window lists the match dates of the next weeks, starting with today when today is a match day.
func (c Calendar) Window(now time.Time, weeks int) []Slot {
	if weeks <= 0 || len(c.weekdays) == 0 {
		return []Slot{}
	}

	want := weeks * len(c.weekdays)
	out := make([]Slot, 0, want)
	day := c.Today(now)
	for i := 0; len(out) < want && i < 7*(weeks+1); i++ {
		if c.IsMatchDay(day) {
			deadline := c.Deadline(day)
			open := now.Before(deadline)
			out = append(out, Slot{
				Date:        day,
				Deadline:    deadline,
				IsOpen:      open,
				IsPublished: !open,
			})
		}
		day = day.AddDays(1)
	}

	return out
}

// Recent lists match dates from the last days (today included) whose deadline has passed, oldest first.
func (c Calendar) Recent(now time.Time, days int) []Date {
	if days < 0 {
		days = 0
	}

	today := c.Today(now)
	out := make([]Date, 0, days/3+1)
	for offset := days; offset >= 0; offset-- {
		day := today.AddDays(-offset)
		if !c.IsMatchDay(day) {
			continue
		}
		if now.Before(c.Deadline(day)) {
			continue
		}
		out = append(out, day)
	}

	return out
}

// NextDeadline returns the first match-day deadline strictly after now.
func (c Calendar) NextDeadline(now time.Time) (Date, time.Time) {
	day := c.Today(now)
	for i := 0; i < 8; i++ {
		if c.IsMatchDay(day) {
			if deadline := c.Deadline(day); deadline.After(now) {
				return day, deadline
			}
		}
		day = day.AddDays(1)
	}
	return Date{}, time.Time{}
}
