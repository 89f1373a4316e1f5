package scheduler

import (
	"sort"
	"time"

	"github.com/julianstephens/tutorly/internal/constants"
	"github.com/julianstephens/tutorly/internal/models"
)

// Occurrence is a concrete instance of a weekly session.
type Occurrence struct {
	Session models.Session
	Start   time.Time
}

// End returns the instant the occurrence finishes.
func (o Occurrence) End() time.Time {
	return o.Start.Add(constants.SessionLengthHours * time.Hour)
}

// IsWithinDateRange reports whether (year, month) falls inside the schedule's
// inclusive validity window.
//
// The same-year branch also requires year == StartYear. Earlier versions only
// compared months there, which admitted any year whose month happened to match.
func IsWithinDateRange(s models.Schedule, year int, month time.Month) bool {
	m := int(month)
	switch {
	case s.StartYear == s.EndYear:
		return year == s.StartYear && m >= s.StartMonth && m <= s.EndMonth
	case year == s.StartYear:
		return m >= s.StartMonth
	case year == s.EndYear:
		return m <= s.EndMonth
	default:
		return year > s.StartYear && year < s.EndYear
	}
}

// NextSessionTime returns the earliest occurrence of any of the schedule's
// sessions at or after now. The second result is false when the schedule has no
// sessions or now's month lies outside the validity window.
//
// The window is checked against now only, not against each candidate. A session
// proposed for next week may therefore fall in the month after the window ends.
func NextSessionTime(s models.Schedule, now time.Time) (Occurrence, bool) {
	if len(s.Sessions) == 0 {
		return Occurrence{}, false
	}
	if now.Year() < s.StartYear || now.Year() > s.EndYear {
		return Occurrence{}, false
	}
	if !IsWithinDateRange(s, now.Year(), now.Month()) {
		return Occurrence{}, false
	}

	today := models.DayOfWeekFrom(now.Weekday())

	var best Occurrence
	found := false
	consider := func(session models.Session, start time.Time) {
		if !found || start.Before(best.Start) {
			best = Occurrence{Session: session, Start: start}
			found = true
		}
	}

	for _, session := range s.Sessions {
		if session.DayOfWeek == today && now.Hour() <= session.StartTime {
			consider(session, atHour(now, session.StartTime))
		}
		if start := thisWeek(now, session); start.After(now) {
			consider(session, start)
		}
	}

	if found {
		return best, true
	}

	for _, session := range s.Sessions {
		consider(session, thisWeek(now, session).AddDate(0, 0, 7))
	}
	return best, found
}

// Occurrences lists every session occurrence with from <= start < to whose own
// month lies inside the schedule window, ordered by start time.
func Occurrences(s models.Schedule, from, to time.Time) []Occurrence {
	if len(s.Sessions) == 0 || !from.Before(to) {
		return nil
	}

	sessions := sortedByHour(s.Sessions)
	var out []Occurrence
	day := atHour(from, 0)
	for day.Before(to) {
		wd := models.DayOfWeekFrom(day.Weekday())
		if IsWithinDateRange(s, day.Year(), day.Month()) {
			for _, session := range sessions {
				if session.DayOfWeek != wd {
					continue
				}
				start := atHour(day, session.StartTime)
				if start.Before(from) || !start.Before(to) {
					continue
				}
				out = append(out, Occurrence{Session: session, Start: start})
			}
		}
		day = day.AddDate(0, 0, 1)
	}
	return out
}

// atHour returns t's calendar date at hour:00:00.000 in t's location.
func atHour(t time.Time, hour int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, hour, 0, 0, 0, t.Location())
}

// thisWeek places the session on its weekday within now's Sunday-anchored week.
func thisWeek(now time.Time, session models.Session) time.Time {
	offset := int(session.DayOfWeek.Native()) - int(now.Weekday())
	return atHour(now.AddDate(0, 0, offset), session.StartTime)
}

// sortedByHour returns sessions ordered by start hour, keeping declaration
// order for equal hours.
func sortedByHour(sessions []models.Session) []models.Session {
	out := make([]models.Session, len(sessions))
	copy(out, sessions)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime < out[j].StartTime
	})
	return out
}
