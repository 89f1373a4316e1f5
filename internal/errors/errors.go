package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/tutorly/internal/backup"
	"github.com/julianstephens/tutorly/internal/constants"
	"github.com/julianstephens/tutorly/internal/logger"
	"github.com/julianstephens/tutorly/internal/storage"
	"github.com/julianstephens/tutorly/internal/storage/postgres"
	"github.com/julianstephens/tutorly/internal/timepolicy"
)

// hints map failures a user can act on to the command that resolves them.
// The first match wins.
var hints = []struct {
	target error
	hint   string
}{
	{timepolicy.ErrClockUntrusted, "check the system clock, then run 'tutorly doctor'"},
	{timepolicy.ErrServerTimeUnavailable, "run 'tutorly doctor' to check the database connection"},
	{postgres.ErrEmbeddedCredentials, "use 'tutorly config set-connection', " + constants.EnvDBConnection + " or a .pgpass file"},
	{backup.ErrUnsupported, "back up PostgreSQL with pg_dump"},
	{storage.ErrNotFound, "list IDs with 'tutorly schedule list --all'"},
}

// Hint returns the follow-up advice for err, or "".
func Hint(err error) string {
	for _, h := range hints {
		if errors.Is(err, h.target) {
			return h.hint
		}
	}
	return ""
}

// Format renders err for the terminal with an "Error: " prefix and, for
// known failures, a "Hint: " line.
func Format(err error) string {
	if err == nil {
		return ""
	}
	if hint := Hint(err); hint != "" {
		return fmt.Sprintf("Error: %v\nHint: %s", err, hint)
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf is Format over fmt.Errorf, so %w operands still select a hint.
func Formatf(format string, args ...any) string {
	return Format(fmt.Errorf(format, args...))
}

// Fatal logs err, prints it to stderr and exits with status 1. A nil err is
// a no-op.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}

func Fatalf(format string, args ...any) {
	Fatal(fmt.Errorf(format, args...))
}
