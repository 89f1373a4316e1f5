package scheduler

import (
	"testing"
	"time"

	"github.com/julianstephens/tutorly/internal/models"
)

func fixedScheduler() *Scheduler {
	return New(
		WithClock(func() time.Time { return refNow }),
		WithLocation(time.UTC),
	)
}

func TestSchedulerNext_SkipsUnapprovedAndDeleted(t *testing.T) {
	deletedAt := "2024-05-01T00:00:00Z"

	pending := springSchedule(models.Session{DayOfWeek: models.Wednesday, StartTime: 11})
	pending.ID = "pending"
	pending.Approved = false

	deleted := springSchedule(models.Session{DayOfWeek: models.Wednesday, StartTime: 12})
	deleted.ID = "deleted"
	deleted.DeletedAt = &deletedAt

	approved := springSchedule(models.Session{DayOfWeek: models.Thursday, StartTime: 9})
	approved.ID = "approved"

	up, ok := fixedScheduler().Next([]models.Schedule{pending, deleted, approved})
	if !ok {
		t.Fatal("expected an upcoming session")
	}
	if up.Schedule.ID != "approved" {
		t.Errorf("Schedule.ID = %q, want approved", up.Schedule.ID)
	}
	if want := at(2024, time.May, 16, 9); !up.Occurrence.Start.Equal(want) {
		t.Errorf("Start = %v, want %v", up.Occurrence.Start, want)
	}
}

func TestNextAcross_TieKeepsFirstSchedule(t *testing.T) {
	a := springSchedule(models.Session{DayOfWeek: models.Friday, StartTime: 10})
	a.ID = "a"
	b := springSchedule(models.Session{DayOfWeek: models.Friday, StartTime: 10})
	b.ID = "b"

	up, ok := NextAcross([]models.Schedule{a, b}, refNow)
	if !ok || up.Schedule.ID != "a" {
		t.Errorf("NextAcross() = %q, %v; want a", up.Schedule.ID, ok)
	}

	up, ok = NextAcross([]models.Schedule{b, a}, refNow)
	if !ok || up.Schedule.ID != "b" {
		t.Errorf("NextAcross() = %q, %v; want b", up.Schedule.ID, ok)
	}
}

func TestSchedulerNext_NoneWhenAllOutOfWindow(t *testing.T) {
	s := springSchedule(models.Session{DayOfWeek: models.Monday, StartTime: 9})
	s.StartMonth, s.EndMonth = 9, 12

	if _, ok := fixedScheduler().Next([]models.Schedule{s}); ok {
		t.Error("expected no upcoming session")
	}
}

func TestSchedulerAgenda(t *testing.T) {
	approved := springSchedule(
		models.Session{DayOfWeek: models.Wednesday, StartTime: 9},
		models.Session{DayOfWeek: models.Thursday, StartTime: 15},
	)
	unapproved := springSchedule(models.Session{DayOfWeek: models.Friday, StartTime: 10})
	unapproved.ID = "unapproved"
	unapproved.Approved = false

	holiday := []models.NonWorkingDay{{ID: "h", Date: at(2024, time.May, 16, 0)}}

	got := fixedScheduler().Agenda([]models.Schedule{approved, unapproved}, AgendaOptions{
		Days:           7,
		NonWorkingDays: holiday,
	})

	// Wed 15 09:00 already passed, Thu 16 is a holiday, Thu 23 is past the horizon.
	if len(got) != 1 {
		t.Fatalf("Agenda() returned %d items, want 1: %+v", len(got), got)
	}
	if want := at(2024, time.May, 22, 9); !got[0].Occurrence.Start.Equal(want) {
		t.Errorf("Start = %v, want %v", got[0].Occurrence.Start, want)
	}
}

func TestSchedulerAgenda_PeriodFilter(t *testing.T) {
	s := springSchedule(
		models.Session{DayOfWeek: models.Monday, StartTime: 9},
		models.Session{DayOfWeek: models.Friday, StartTime: 13},
	)

	periods := []models.Period{{
		ID:    "late-may",
		Name:  "Late May",
		Start: at(2024, time.May, 20, 0),
		End:   at(2024, time.May, 31, 0),
	}}

	got := fixedScheduler().Agenda([]models.Schedule{s}, AgendaOptions{Days: 10, Periods: periods})

	// Fri 17 is outside the period; Mon 20 and Fri 24 are inside.
	want := []time.Time{at(2024, time.May, 20, 9), at(2024, time.May, 24, 13)}
	if len(got) != len(want) {
		t.Fatalf("Agenda() returned %d items, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if !got[i].Occurrence.Start.Equal(want[i]) {
			t.Errorf("item %d = %v, want %v", i, got[i].Occurrence.Start, want[i])
		}
	}
}

func TestSchedulerAgenda_ZeroDays(t *testing.T) {
	s := springSchedule(models.Session{DayOfWeek: models.Thursday, StartTime: 9})
	if got := fixedScheduler().Agenda([]models.Schedule{s}, AgendaOptions{}); got != nil {
		t.Errorf("Agenda() with zero days = %+v, want nil", got)
	}
}

func TestSchedulerNowUsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	s := New(WithClock(func() time.Time { return refNow }), WithLocation(tokyo))

	if s.Now().Location() != tokyo {
		t.Errorf("Now() location = %v, want JST", s.Now().Location())
	}
	if s.Now().Hour() != 19 {
		t.Errorf("Now().Hour() = %d, want 19", s.Now().Hour())
	}
}
