package sessions

import (
	"fmt"

	"github.com/julianstephens/tutorly/internal/calendar"
	"github.com/julianstephens/tutorly/internal/cli"
	"github.com/julianstephens/tutorly/internal/models"
)

type NextCmd struct {
	Tutor string `help:"Only consider schedules taught by this tutor email."`
}

func (c *NextCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if err := ctx.RequireTrustedClock(settings); err != nil {
		return err
	}

	schedules, err := ctx.Store.GetAllSchedules(false)
	if err != nil {
		return fmt.Errorf("failed to get schedules: %w", err)
	}
	schedules = filterByTutor(schedules, c.Tutor)

	next, ok := ctx.Scheduler.Next(schedules)
	if !ok {
		fmt.Println("No upcoming sessions.")
		return nil
	}

	now := ctx.Scheduler.Now()
	fmt.Println(cli.FormatUpcoming(next, now))

	days, err := ctx.Store.GetAllNonWorkingDays()
	if err != nil {
		return fmt.Errorf("failed to get non-working days: %w", err)
	}
	cal := calendar.New(ctx.Scheduler.Location())
	if cal.IsDateNonWorking(next.Occurrence.Start, days) {
		cli.Warnf("This session falls on a non-working day")
	}
	return nil
}

func filterByTutor(schedules []models.Schedule, email string) []models.Schedule {
	if email == "" {
		return schedules
	}
	var out []models.Schedule
	for _, s := range schedules {
		if s.TutorEmail == email {
			out = append(out, s)
		}
	}
	return out
}
