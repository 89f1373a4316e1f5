package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/tutorly/internal/backup"
	"github.com/julianstephens/tutorly/internal/cli"
	"github.com/julianstephens/tutorly/internal/constants"
	"github.com/julianstephens/tutorly/internal/keyring"
	"github.com/julianstephens/tutorly/internal/models"
	"github.com/julianstephens/tutorly/internal/storage"
	"github.com/julianstephens/tutorly/internal/storage/sqlite"
	"github.com/julianstephens/tutorly/internal/utils"
)

type DoctorCmd struct{}

// errWarning marks a check result that is reported but does not fail doctor.
type errWarning struct{ err error }

func (w errWarning) Error() string { return w.err.Error() }

func warning(format string, args ...any) error {
	return errWarning{fmt.Errorf(format, args...)}
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	report := func(name string, err error) {
		var w errWarning
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", name)
		case errors.As(err, &w):
			fmt.Printf("⚠ %s: WARNING\n", name)
			fmt.Printf("   %v\n", w.err)
		default:
			fmt.Printf("❌ %s: FAIL\n", name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}
	skip := func(name string) {
		fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", name)
	}

	dbErr := checkDBReachable(ctx)
	report("Database reachable", dbErr)

	var settings models.Settings
	if dbErr == nil {
		report("Schema version", checkSchemaVersion(ctx))

		var err error
		settings, err = ctx.Store.GetSettings()
		if err == nil {
			err = checkSettings(settings)
		}
		report("Settings", err)
		report("Data validation", checkValidation(ctx))
		report("Clock integrity", checkClock(ctx, settings))
		if note := clockSourceNote(ctx.Store); note != "" {
			fmt.Printf("   note: %s\n", note)
		}
	} else {
		skip("Schema version")
		skip("Settings")
		skip("Data validation")
		skip("Clock integrity")
	}

	report("Backups present", checkBackupsPresent(ctx))
	report("OS keyring", checkKeyring())

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, err := ctx.Store.ServerTime(); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	migrator, ok := ctx.Store.(cli.Migrator)
	if !ok {
		return nil
	}

	current, latest, err := migrator.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'tutorly migrate')", current, latest)
	}
	return nil
}

func checkSettings(s models.Settings) error {
	if !utils.ValidateTimezone(s.Timezone) {
		return fmt.Errorf("invalid timezone: %q", s.Timezone)
	}
	if s.ClockSkewToleranceSec <= 0 {
		return fmt.Errorf("clock_skew_tolerance_sec must be positive, got %d", s.ClockSkewToleranceSec)
	}
	if s.AgendaDays <= 0 {
		return fmt.Errorf("agenda_days must be positive, got %d", s.AgendaDays)
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	result, err := validateData(ctx)
	if err != nil {
		return err
	}
	if result.HasConflicts() {
		return fmt.Errorf("%d conflict(s) found - run 'tutorly validate' for details", len(result.Conflicts))
	}
	return nil
}

// checkClock fails only when the clock policy is enforced.
func checkClock(ctx *cli.Context, settings models.Settings) error {
	report, err := ctx.CheckClock(settings)
	if err == nil {
		return nil
	}
	if settings.EnforceClockPolicy {
		return fmt.Errorf("%w: %s", err, report)
	}
	return warning("%v: %s (enforce_clock_policy is off)", err, report)
}

// clockSourceNote flags stores whose server time is the local OS clock. The
// skew check against them always passes.
func clockSourceNote(store storage.Provider) string {
	if _, ok := store.(*sqlite.Store); ok {
		return "SQLite reads the same OS clock as tutorly, so clock drift is only detectable on PostgreSQL"
	}
	return ""
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if errors.Is(err, backup.ErrUnsupported) {
		return nil
	}
	if err != nil {
		return warning("failed to list backups: %v", err)
	}
	if len(backups) == 0 {
		return warning("no backups found - consider creating one with 'tutorly backup create'")
	}
	return nil
}

func checkKeyring() error {
	if !keyring.IsAvailable() {
		return warning("OS keyring is not available; use %s or .pgpass for PostgreSQL credentials", constants.EnvDBConnection)
	}
	return nil
}
