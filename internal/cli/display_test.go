package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/tutorly/internal/models"
	"github.com/julianstephens/tutorly/internal/scheduler"
)

func TestRelative(t *testing.T) {
	now := time.Date(2024, time.May, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		start time.Time
		want  string
	}{
		{now.Add(3 * time.Hour), "3 hours from now"},
		{now.AddDate(0, 0, 2), "2 days from now"},
		{now.Add(-90 * time.Minute), "1 hour ago"},
	}
	for _, tt := range tests {
		if got := Relative(tt.start, now); got != tt.want {
			t.Errorf("Relative(%v) = %q, want %q", tt.start, got, tt.want)
		}
	}
}

func TestFormatUpcoming(t *testing.T) {
	now := time.Date(2024, time.May, 15, 10, 0, 0, 0, time.UTC)
	u := scheduler.Upcoming{
		Schedule: models.Schedule{
			Subject:    "Calculus I",
			TutorEmail: "ana@example.edu",
			SalonID:    "room-1",
		},
		Occurrence: scheduler.Occurrence{
			Session: models.Session{DayOfWeek: models.Friday, StartTime: 16},
			Start:   time.Date(2024, time.May, 17, 16, 0, 0, 0, time.UTC),
		},
	}

	got := FormatUpcoming(u, now)
	for _, want := range []string{"2024-05-17", "Fri 16:00-17:00", "Calculus I", "ana@example.edu", "room-1", "from now"} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatUpcoming() = %q, missing %q", got, want)
		}
	}
}

func TestFormatSchedule(t *testing.T) {
	deletedAt := "2024-05-01T00:00:00Z"
	tests := []struct {
		name  string
		sched models.Schedule
		want  string
	}{
		{"pending", models.Schedule{ID: "a"}, "[pending]"},
		{"approved", models.Schedule{ID: "b", Approved: true}, "[approved]"},
		{"deleted", models.Schedule{ID: "c", Approved: true, DeletedAt: &deletedAt}, "[deleted]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatSchedule(tt.sched)
			if !strings.HasPrefix(got, tt.want) {
				t.Errorf("FormatSchedule() = %q, want prefix %q", got, tt.want)
			}
			if !strings.Contains(got, "no sessions") {
				t.Errorf("FormatSchedule() = %q, want \"no sessions\"", got)
			}
		})
	}
}
