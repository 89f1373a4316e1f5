package calendars

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/tutorly/internal/cli"
	"github.com/julianstephens/tutorly/internal/constants"
	"github.com/julianstephens/tutorly/internal/models"
	"github.com/julianstephens/tutorly/internal/utils"
)

type PeriodAddCmd struct {
	Name  string `arg:"" help:"Period name, e.g. \"Spring 2024\"."`
	Start string `required:"" help:"First day of the period (YYYY-MM-DD)."`
	End   string `required:"" help:"Last day of the period (YYYY-MM-DD)."`
}

func (c *PeriodAddCmd) Run(ctx *cli.Context) error {
	loc := ctx.Scheduler.Location()
	start, err := utils.ParseDateInLocation(c.Start, loc)
	if err != nil {
		return err
	}
	end, err := utils.ParseDateInLocation(c.End, loc)
	if err != nil {
		return err
	}

	p := models.Period{
		ID:    uuid.New().String(),
		Name:  c.Name,
		Start: start,
		End:   end,
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("invalid period: %w", err)
	}

	if err := ctx.Store.AddPeriod(p); err != nil {
		return fmt.Errorf("failed to add period: %w", err)
	}
	cli.Successf("Added period: %s (ID: %s)", p.Name, p.ID)
	return nil
}

type PeriodListCmd struct{}

func (c *PeriodListCmd) Run(ctx *cli.Context) error {
	periods, err := ctx.Store.GetAllPeriods()
	if err != nil {
		return fmt.Errorf("failed to list periods: %w", err)
	}
	if len(periods) == 0 {
		fmt.Println("No periods defined. Sessions are listed on every working day.")
		return nil
	}

	loc := ctx.Scheduler.Location()
	for _, p := range periods {
		fmt.Printf("%s  %s..%s  (ID: %s)\n",
			p.Name,
			p.Start.In(loc).Format(constants.DateFormat),
			p.End.In(loc).Format(constants.DateFormat),
			p.ID)
	}
	return nil
}

type PeriodDeleteCmd struct {
	ID  string `arg:"" help:"Period ID to delete."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *PeriodDeleteCmd) Run(ctx *cli.Context) error {
	ok, err := ctx.Ask(fmt.Sprintf("Delete period %s?", c.ID), "", c.Yes)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Println("Cancelled.")
		return nil
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Store.DeletePeriod(c.ID); err != nil {
		return fmt.Errorf("failed to delete period: %w", err)
	}
	cli.Successf("Deleted period %s", c.ID)
	return nil
}
