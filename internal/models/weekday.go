package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DayOfWeek is the recurrence-model day numbering: Monday=1 ... Sunday=7.
// It never equals time.Weekday for Sunday, so always convert through
// Native and DayOfWeekFrom.
type DayOfWeek int

const (
	Monday DayOfWeek = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// Native converts to Go's calendar numbering (Sunday=0 ... Saturday=6).
func (d DayOfWeek) Native() time.Weekday {
	if d == Sunday {
		return time.Sunday
	}
	return time.Weekday(d)
}

// DayOfWeekFrom converts Go's calendar numbering into the recurrence numbering.
func DayOfWeekFrom(w time.Weekday) DayOfWeek {
	if w == time.Sunday {
		return Sunday
	}
	return DayOfWeek(w)
}

// Valid reports whether d is within 1..7.
func (d DayOfWeek) Valid() bool {
	return d >= Monday && d <= Sunday
}

func (d DayOfWeek) String() string {
	if !d.Valid() {
		return fmt.Sprintf("DayOfWeek(%d)", int(d))
	}
	return d.Native().String()
}

// Short returns the three letter abbreviation, e.g. "Mon".
func (d DayOfWeek) Short() string {
	if !d.Valid() {
		return "???"
	}
	return d.Native().String()[:3]
}

var dayNames = map[string]DayOfWeek{
	"mon":       Monday,
	"monday":    Monday,
	"tue":       Tuesday,
	"tuesday":   Tuesday,
	"wed":       Wednesday,
	"wednesday": Wednesday,
	"thu":       Thursday,
	"thursday":  Thursday,
	"fri":       Friday,
	"friday":    Friday,
	"sat":       Saturday,
	"saturday":  Saturday,
	"sun":       Sunday,
	"sunday":    Sunday,
}

// ParseDayOfWeek accepts English day names ("mon", "Monday") or the
// recurrence numbers 1-7.
func ParseDayOfWeek(s string) (DayOfWeek, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if d, ok := dayNames[s]; ok {
		return d, nil
	}
	num, err := strconv.Atoi(s)
	if err == nil && DayOfWeek(num).Valid() {
		return DayOfWeek(num), nil
	}
	return 0, fmt.Errorf("invalid day of week: %q", s)
}
