package scheduler

import (
	"sort"
	"time"

	"github.com/julianstephens/tutorly/internal/calendar"
	"github.com/julianstephens/tutorly/internal/models"
)

// Upcoming pairs an occurrence with the schedule it belongs to.
type Upcoming struct {
	Schedule   models.Schedule
	Occurrence Occurrence
}

// Scheduler evaluates schedules against an injected clock. It holds no state
// between calls.
type Scheduler struct {
	now func() time.Time
	loc *time.Location
}

type Option func(*Scheduler)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLocation sets the time zone occurrences are computed in.
func WithLocation(loc *time.Location) Option {
	return func(s *Scheduler) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func New(opts ...Option) *Scheduler {
	s := &Scheduler{now: time.Now, loc: time.Local}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the current instant in the scheduler's location.
func (s *Scheduler) Now() time.Time {
	return s.now().In(s.loc)
}

// Location returns the scheduler's time zone.
func (s *Scheduler) Location() *time.Location {
	return s.loc
}

// Next returns the earliest upcoming session across all approved, non-deleted
// schedules. Ties keep the schedule that appears first.
func (s *Scheduler) Next(schedules []models.Schedule) (Upcoming, bool) {
	return NextAcross(schedules, s.Now())
}

// NextAcross is Next with an explicit reference instant.
func NextAcross(schedules []models.Schedule, now time.Time) (Upcoming, bool) {
	var best Upcoming
	found := false
	for _, sched := range schedules {
		if !sched.Approved || sched.IsDeleted() {
			continue
		}
		occ, ok := NextSessionTime(sched, now)
		if !ok {
			continue
		}
		if !found || occ.Start.Before(best.Occurrence.Start) {
			best = Upcoming{Schedule: sched, Occurrence: occ}
			found = true
		}
	}
	return best, found
}

// AgendaOptions carries the institutional calendar used to filter an agenda.
type AgendaOptions struct {
	Days           int
	Periods        []models.Period
	NonWorkingDays []models.NonWorkingDay
}

// Agenda lists approved occurrences from now until the end of the day
// opts.Days days ahead. Occurrences on non-working days are dropped and, when
// any periods are defined, so are occurrences outside every period.
func (s *Scheduler) Agenda(schedules []models.Schedule, opts AgendaOptions) []Upcoming {
	now := s.Now()
	if opts.Days <= 0 {
		return nil
	}
	to := atHour(now, 0).AddDate(0, 0, opts.Days+1)
	cal := calendar.New(s.loc)

	var out []Upcoming
	for _, sched := range schedules {
		if !sched.Approved || sched.IsDeleted() {
			continue
		}
		for _, occ := range Occurrences(sched, now, to) {
			if cal.IsDateNonWorking(occ.Start, opts.NonWorkingDays) {
				continue
			}
			if len(opts.Periods) > 0 && !cal.IsDateInPeriod(occ.Start, opts.Periods) {
				continue
			}
			out = append(out, Upcoming{Schedule: sched, Occurrence: occ})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Occurrence.Start.Before(out[j].Occurrence.Start)
	})
	return out
}
