package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/tutorly/internal/cli"
	"github.com/julianstephens/tutorly/internal/cli/backups"
	"github.com/julianstephens/tutorly/internal/cli/calendars"
	"github.com/julianstephens/tutorly/internal/cli/people"
	"github.com/julianstephens/tutorly/internal/cli/schedules"
	"github.com/julianstephens/tutorly/internal/cli/sessions"
	"github.com/julianstephens/tutorly/internal/cli/settings"
	"github.com/julianstephens/tutorly/internal/cli/system"
	"github.com/julianstephens/tutorly/internal/constants"
	apperrors "github.com/julianstephens/tutorly/internal/errors"
	"github.com/julianstephens/tutorly/internal/keyring"
	"github.com/julianstephens/tutorly/internal/logger"
	"github.com/julianstephens/tutorly/internal/scheduler"
	"github.com/julianstephens/tutorly/internal/storage"
	"github.com/julianstephens/tutorly/internal/storage/postgres"
	"github.com/julianstephens/tutorly/internal/storage/sqlite"
	"github.com/julianstephens/tutorly/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"SQLite database path or PostgreSQL connection string. PostgreSQL credentials must NOT be embedded; use the OS keyring, TUTORLY_DB_CONNECTION or .pgpass instead." default:"${default_config}"`
	Profile string `help:"Keyring profile holding the connection string (e.g. staging)." env:"TUTORLY_PROFILE"`
	Debug   bool   `help:"Write debug logs to stderr."`

	Init     system.InitCmd     `cmd:"" help:"Initialize tutorly storage."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Validate system.ValidateCmd `cmd:"" help:"Check schedules for conflicts."`
	Next     sessions.NextCmd   `cmd:"" help:"Show the next upcoming session." default:"1"`
	Agenda   sessions.AgendaCmd `cmd:"" help:"List upcoming sessions."`
	Schedule struct {
		Add     schedules.ScheduleAddCmd     `cmd:"" help:"Add a recurring schedule."`
		Edit    schedules.ScheduleEditCmd    `cmd:"" help:"Edit a schedule."`
		List    schedules.ScheduleListCmd    `cmd:"" help:"List schedules." default:"1"`
		Show    schedules.ScheduleShowCmd    `cmd:"" help:"Show a schedule and its next session."`
		Approve schedules.ScheduleApproveCmd `cmd:"" help:"Approve a schedule."`
		Revoke  schedules.ScheduleRevokeCmd  `cmd:"" help:"Revoke a schedule's approval."`
		Delete  schedules.ScheduleDeleteCmd  `cmd:"" help:"Delete a schedule."`
		Restore schedules.ScheduleRestoreCmd `cmd:"" help:"Restore a deleted schedule."`
	} `cmd:"" help:"Manage recurring schedules."`
	Period struct {
		Add    calendars.PeriodAddCmd    `cmd:"" help:"Add an academic period."`
		List   calendars.PeriodListCmd   `cmd:"" help:"List periods." default:"1"`
		Delete calendars.PeriodDeleteCmd `cmd:"" help:"Delete a period."`
	} `cmd:"" help:"Manage academic periods."`
	Holiday struct {
		Add    calendars.HolidayAddCmd    `cmd:"" help:"Add a non-working day."`
		List   calendars.HolidayListCmd   `cmd:"" help:"List non-working days." default:"1"`
		Delete calendars.HolidayDeleteCmd `cmd:"" help:"Delete a non-working day."`
	} `cmd:"" help:"Manage non-working days."`
	Classroom struct {
		Add    people.ClassroomAddCmd    `cmd:"" help:"Register a classroom."`
		List   people.ClassroomListCmd   `cmd:"" help:"List classrooms." default:"1"`
		Delete people.ClassroomDeleteCmd `cmd:"" help:"Delete a classroom."`
	} `cmd:"" help:"Manage classrooms."`
	Tutor struct {
		Add  people.TutorAddCmd  `cmd:"" help:"Register a tutor."`
		List people.TutorListCmd `cmd:"" help:"List tutors." default:"1"`
		Role people.TutorRoleCmd `cmd:"" help:"Change a tutor's role."`
	} `cmd:"" help:"Manage tutors."`
	Connection struct {
		SetConnection   system.ConfigSetConnectionCmd   `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		ClearConnection system.ConfigClearConnectionCmd `cmd:"" help:"Remove the stored connection string."`
		Status          system.ConfigStatusCmd          `cmd:"" help:"Show keyring status." default:"1"`
	} `cmd:"" name:"config" help:"Manage the database connection."`
	Settings struct {
		Show settings.SettingsShowCmd `cmd:"" help:"Show settings." default:"1"`
		Set  settings.SettingsSetCmd  `cmd:"" help:"Change a setting."`
	} `cmd:"" help:"Manage application settings."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Recurring tutoring session scheduler"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
		},
	)

	configDir := filepath.Dir(expandHome(constants.DefaultConfigPath))
	if err := godotenv.Load(filepath.Join(configDir, constants.EnvFileName)); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: failed to load %s: %v\n", constants.EnvFileName, err)
	}

	conn, source := resolveConnection(CLI.Config, CLI.Profile)
	if source == "flag" && isPostgres(conn) {
		if err := rejectEmbeddedCredentials(conn); err != nil {
			apperrors.Fatalf("refusing --config value: %w", err)
		}
	}

	logDir := configDir
	if !isPostgres(conn) {
		logDir = filepath.Dir(conn)
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: logDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}
	logger.Debug("Resolved database connection", "source", source, "profile", CLI.Profile)

	var store storage.Provider
	if isPostgres(conn) {
		store = postgres.New(conn)
	} else {
		store = sqlite.NewStore(conn)
	}

	appCtx := &cli.Context{
		Store:     store,
		Scheduler: scheduler.New(),
		Profile:   CLI.Profile,
	}

	if needsStore(ctx.Command()) {
		if err := store.Load(); err != nil {
			apperrors.Fatalf("failed to open database (%s connection): %w", source, err)
		}
		sched, err := newScheduler(store)
		if err != nil {
			store.Close()
			apperrors.Fatalf("failed to configure scheduler: %w", err)
		}
		appCtx.Scheduler = sched
	}

	err := ctx.Run(appCtx)
	if closeErr := store.Close(); closeErr != nil {
		logger.Warn("Failed to close database", "error", closeErr)
	}
	apperrors.Fatal(err)
}

// resolveConnection picks the database: an explicit --config wins, then
// TUTORLY_DB_CONNECTION, then the profile's keyring entry, then the default
// path.
func resolveConnection(flag, profile string) (conn, source string) {
	if flag != constants.DefaultConfigPath {
		return expandHome(flag), "flag"
	}
	if env := os.Getenv(constants.EnvDBConnection); env != "" {
		return expandHome(env), "env"
	}
	if stored, err := keyring.GetConnectionString(profile); err == nil {
		return stored, "keyring"
	}
	return expandHome(flag), "default"
}

// rejectEmbeddedCredentials keeps passwords out of shell history and process
// listings. The keyring path accepts them.
func rejectEmbeddedCredentials(conn string) error {
	_, err := postgres.ValidateConnString(conn)
	return err
}

func newScheduler(store storage.Provider) (*scheduler.Scheduler, error) {
	cfg, err := store.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	loc, err := utils.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}
	return scheduler.New(scheduler.WithLocation(loc)), nil
}

// needsStore reports whether a command runs against a loaded database. init
// opens the store itself and config only touches the keyring.
func needsStore(command string) bool {
	return !strings.HasPrefix(command, "init") && !strings.HasPrefix(command, "config")
}

func isPostgres(conn string) bool {
	return postgres.IsConnString(conn) || strings.Contains(conn, "host=")
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
