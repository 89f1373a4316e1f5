package sessions

import (
	"fmt"

	"github.com/julianstephens/tutorly/internal/cli"
	"github.com/julianstephens/tutorly/internal/constants"
	"github.com/julianstephens/tutorly/internal/scheduler"
)

type AgendaCmd struct {
	Days  int    `help:"Number of days to list (defaults to the agenda_days setting)."`
	Tutor string `help:"Only list sessions taught by this tutor email."`
}

func (c *AgendaCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if err := ctx.RequireTrustedClock(settings); err != nil {
		return err
	}

	days := c.Days
	if days <= 0 {
		days = settings.AgendaDays
	}

	schedules, err := ctx.Store.GetAllSchedules(false)
	if err != nil {
		return fmt.Errorf("failed to get schedules: %w", err)
	}
	periods, err := ctx.Store.GetAllPeriods()
	if err != nil {
		return fmt.Errorf("failed to get periods: %w", err)
	}
	nonWorking, err := ctx.Store.GetAllNonWorkingDays()
	if err != nil {
		return fmt.Errorf("failed to get non-working days: %w", err)
	}

	agenda := ctx.Scheduler.Agenda(filterByTutor(schedules, c.Tutor), scheduler.AgendaOptions{
		Days:           days,
		Periods:        periods,
		NonWorkingDays: nonWorking,
	})

	cli.Title(fmt.Sprintf("Agenda for the next %d days", days))
	if len(agenda) == 0 {
		fmt.Println("No sessions scheduled.")
		return nil
	}

	now := ctx.Scheduler.Now()
	currentDay := ""
	for _, u := range agenda {
		day := u.Occurrence.Start.Format(constants.DateFormat)
		if day != currentDay {
			fmt.Println()
			currentDay = day
		}
		fmt.Println("  " + cli.FormatUpcoming(u, now))
	}
	return nil
}
