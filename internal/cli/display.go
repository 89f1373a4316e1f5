package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/tutorly/internal/constants"
	"github.com/julianstephens/tutorly/internal/models"
	"github.com/julianstephens/tutorly/internal/scheduler"
)

// Relative renders start relative to now, e.g. "2 days from now".
func Relative(start, now time.Time) string {
	return humanize.RelTime(start, now, "ago", "from now")
}

// FormatUpcoming renders one agenda line.
func FormatUpcoming(u scheduler.Upcoming, now time.Time) string {
	start := u.Occurrence.Start
	return fmt.Sprintf("%s %s-%s  %s  %s",
		start.Format(constants.DateFormat),
		start.Format(constants.DisplayFormat),
		u.Occurrence.End().Format("15:04"),
		u.Schedule.Subject,
		MutedStyle.Render(fmt.Sprintf("(%s, %s, %s)", u.Schedule.TutorEmail, u.Schedule.SalonID, Relative(start, now))),
	)
}

// FormatSchedule renders a one-line schedule summary.
func FormatSchedule(s models.Schedule) string {
	status := "pending"
	if s.Approved {
		status = "approved"
	}
	if s.IsDeleted() {
		status = "deleted"
	}
	return fmt.Sprintf("[%s] %s  %s  %s  %s (ID: %s)",
		status, s.Subject, s.TutorEmail, s.Window(), FormatSessions(s.Sessions), s.ID)
}

func FormatSessions(sessions []models.Session) string {
	if len(sessions) == 0 {
		return "no sessions"
	}
	out := ""
	for i, sess := range sessions {
		if i > 0 {
			out += ", "
		}
		out += sess.String()
	}
	return out
}
