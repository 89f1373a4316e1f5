// Package calendar answers date membership questions against the
// institutional calendar: academic periods and non-working days.
//
// All comparisons happen at day granularity after converting instants to
// local calendar dates in the calendar's location.
package calendar

import (
	"time"

	"github.com/julianstephens/tutorly/internal/models"
)

// Calendar converts instants to local dates in a single location.
type Calendar struct {
	loc *time.Location
}

// New returns a Calendar for loc. A nil loc uses the system default time zone.
func New(loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.Local
	}
	return &Calendar{loc: loc}
}

// Location returns the calendar's time zone.
func (c *Calendar) Location() *time.Location {
	return c.loc
}

// DateOf returns midnight of t's local calendar date.
func (c *Calendar) DateOf(t time.Time) time.Time {
	y, m, d := t.In(c.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.loc)
}

// IsDateInPeriod reports whether date falls within the inclusive start and
// end dates of any period.
func (c *Calendar) IsDateInPeriod(date time.Time, periods []models.Period) bool {
	_, ok := c.PeriodForDate(date, periods)
	return ok
}

// PeriodForDate returns the first period containing date.
func (c *Calendar) PeriodForDate(date time.Time, periods []models.Period) (models.Period, bool) {
	day := c.DateOf(date)
	for _, p := range periods {
		if !day.Before(c.DateOf(p.Start)) && !day.After(c.DateOf(p.End)) {
			return p, true
		}
	}
	return models.Period{}, false
}

// IsDateNonWorking reports whether date equals the local date of any
// non-working day.
func (c *Calendar) IsDateNonWorking(date time.Time, days []models.NonWorkingDay) bool {
	day := c.DateOf(date)
	for _, nwd := range days {
		if day.Equal(c.DateOf(nwd.Date)) {
			return true
		}
	}
	return false
}

// IsDateInPeriod is a convenience wrapper using the system default time zone.
func IsDateInPeriod(date time.Time, periods []models.Period) bool {
	return New(nil).IsDateInPeriod(date, periods)
}

// IsDateNonWorking is a convenience wrapper using the system default time zone.
func IsDateNonWorking(date time.Time, days []models.NonWorkingDay) bool {
	return New(nil).IsDateNonWorking(date, days)
}
