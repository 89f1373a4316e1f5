package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/tutorly/internal/cli"
	"github.com/julianstephens/tutorly/internal/storage/postgres"
)

type InitCmd struct {
	Force bool `help:"Delete the existing database before initializing (SQLite only)."`
	Yes   bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if _, isPostgres := ctx.Store.(*postgres.Store); isPostgres {
			return fmt.Errorf("--force is only supported for SQLite databases")
		}
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	cli.Successf("Initialized tutorly storage at: %s", ctx.Store.GetConfigPath())
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	dbPath := ctx.Store.GetConfigPath()
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to access existing database: %w", err)
	}

	ok, err := ctx.Ask("Delete the existing database?", "All schedules, periods, classrooms and tutors are removed. A backup is taken first.", c.Yes)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("init cancelled")
	}

	ctx.PerformAutomaticBackup()

	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing database: %w", err)
	}
	if err := os.Remove(dbPath); err != nil {
		return fmt.Errorf("failed to delete existing database: %w", err)
	}
	fmt.Printf("Deleted existing database at: %s\n", dbPath)
	return nil
}
