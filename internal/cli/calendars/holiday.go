package calendars

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/tutorly/internal/cli"
	"github.com/julianstephens/tutorly/internal/constants"
	"github.com/julianstephens/tutorly/internal/models"
	"github.com/julianstephens/tutorly/internal/utils"
)

type HolidayAddCmd struct {
	Date   string `arg:"" help:"Non-working date (YYYY-MM-DD)."`
	Reason string `help:"Why no sessions take place."`
}

func (c *HolidayAddCmd) Run(ctx *cli.Context) error {
	date, err := utils.ParseDateInLocation(c.Date, ctx.Scheduler.Location())
	if err != nil {
		return err
	}

	d := models.NonWorkingDay{
		ID:     uuid.New().String(),
		Date:   date,
		Reason: c.Reason,
	}
	if err := d.Validate(); err != nil {
		return fmt.Errorf("invalid non-working day: %w", err)
	}

	if err := ctx.Store.AddNonWorkingDay(d); err != nil {
		return fmt.Errorf("failed to add non-working day: %w", err)
	}
	cli.Successf("Added non-working day: %s (ID: %s)", c.Date, d.ID)
	return nil
}

type HolidayListCmd struct{}

func (c *HolidayListCmd) Run(ctx *cli.Context) error {
	days, err := ctx.Store.GetAllNonWorkingDays()
	if err != nil {
		return fmt.Errorf("failed to list non-working days: %w", err)
	}
	if len(days) == 0 {
		fmt.Println("No non-working days defined.")
		return nil
	}

	loc := ctx.Scheduler.Location()
	for _, d := range days {
		reason := d.Reason
		if reason == "" {
			reason = "-"
		}
		fmt.Printf("%s  %s  (ID: %s)\n", d.Date.In(loc).Format(constants.DateFormat), reason, d.ID)
	}
	return nil
}

type HolidayDeleteCmd struct {
	ID string `arg:"" help:"Non-working day ID to delete."`
}

func (c *HolidayDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteNonWorkingDay(c.ID); err != nil {
		return fmt.Errorf("failed to delete non-working day: %w", err)
	}
	cli.Successf("Deleted non-working day %s", c.ID)
	return nil
}
