package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/tutorly/internal/backup"
	"github.com/julianstephens/tutorly/internal/logger"
	"github.com/julianstephens/tutorly/internal/models"
	"github.com/julianstephens/tutorly/internal/scheduler"
	"github.com/julianstephens/tutorly/internal/storage"
	"github.com/julianstephens/tutorly/internal/timepolicy"
)

type Context struct {
	Store     storage.Provider
	Scheduler *scheduler.Scheduler
	// Confirm answers yes/no questions. Nil prompts on the terminal.
	Confirm func(title, description string) (bool, error)
	// Profile selects the keyring entry; empty is the default entry.
	Profile string
}

// Migrator is implemented by stores that apply embedded schema migrations.
type Migrator interface {
	Migrate(logFn func(string)) (int, error)
	SchemaVersion() (current, latest int, err error)
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		if errors.Is(err, backup.ErrUnsupported) {
			logger.Debug("Skipping automatic backup", "reason", err)
			return
		}
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Ask confirms a destructive action. assumeYes skips the prompt.
func (c *Context) Ask(title, description string, assumeYes bool) (bool, error) {
	if assumeYes {
		return true, nil
	}
	if c.Confirm != nil {
		return c.Confirm(title, description)
	}
	return PromptConfirm(title, description)
}

// CheckClock compares the scheduler clock with the database clock.
func (c *Context) CheckClock(settings models.Settings) (timepolicy.Report, error) {
	guard := timepolicy.NewGuard(settings.ClockSkewTolerance(), c.Scheduler.Now)
	return guard.Check(c.Store)
}

// RequireTrustedClock fails when the clock policy is enforced and the local
// clock cannot be trusted.
func (c *Context) RequireTrustedClock(settings models.Settings) error {
	if !settings.EnforceClockPolicy {
		return nil
	}
	report, err := c.CheckClock(settings)
	if err != nil {
		logger.Warn("Clock policy check failed", "error", err, "skew", report.Skew)
		return fmt.Errorf("%w (disable with 'tutorly settings set enforce_clock_policy false')", err)
	}
	logger.Debug("Clock policy check passed", "skew", report.Skew)
	return nil
}
