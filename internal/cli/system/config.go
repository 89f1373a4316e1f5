package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/tutorly/internal/cli"
	"github.com/julianstephens/tutorly/internal/keyring"
	"github.com/julianstephens/tutorly/internal/storage/postgres"
)

// ConfigSetConnectionCmd stores a PostgreSQL connection string in the OS keyring
type ConfigSetConnectionCmd struct {
	ConnectionString string `arg:"" help:"PostgreSQL connection string to store in the keyring."`
}

func (cmd *ConfigSetConnectionCmd) Run(ctx *cli.Context) error {
	if !postgres.IsConnString(cmd.ConnectionString) && !strings.Contains(cmd.ConnectionString, "host=") {
		return errors.New("connection string must be a valid PostgreSQL connection string")
	}

	if _, err := postgres.ValidateConnString(cmd.ConnectionString); err != nil {
		if !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return fmt.Errorf("invalid connection string: %w", err)
		}
		// The keyring is encrypted, so embedded passwords are allowed here.
		cli.Warnf("Connection string contains embedded credentials; it is stored as-is in the encrypted OS keyring.")
	}

	if err := keyring.SetConnectionString(ctx.Profile, cmd.ConnectionString); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}

	cli.Successf("Connection string stored in OS keyring (%s)", profileLabel(ctx.Profile))
	if ctx.Profile == "" {
		fmt.Println("  tutorly now uses it when --config is not given")
	} else {
		fmt.Printf("  tutorly uses it with --profile %s when --config is not given\n", ctx.Profile)
	}
	return nil
}

// ConfigClearConnectionCmd removes the stored connection string
type ConfigClearConnectionCmd struct{}

func (cmd *ConfigClearConnectionCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteConnectionString(ctx.Profile); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no connection string found in keyring (%s)", profileLabel(ctx.Profile))
		}
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}
	cli.Successf("Connection string deleted from OS keyring (%s)", profileLabel(ctx.Profile))
	return nil
}

// ConfigStatusCmd shows where the database connection comes from
type ConfigStatusCmd struct{}

func (cmd *ConfigStatusCmd) Run(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		fmt.Println("❌ OS keyring is not available on this system")
		return errors.New("keyring unavailable")
	}
	fmt.Println("✓ OS keyring is available")

	connStr, err := keyring.GetConnectionString(ctx.Profile)
	switch {
	case err == nil:
		fmt.Printf("✓ Stored connection string (%s): %s\n", profileLabel(ctx.Profile), maskPassword(connStr))
	case errors.Is(err, keyring.ErrNotFound):
		fmt.Printf("ℹ No connection string stored in keyring (%s)\n", profileLabel(ctx.Profile))
	default:
		return fmt.Errorf("failed to read keyring: %w", err)
	}
	return nil
}

func profileLabel(profile string) string {
	if profile == "" {
		return "default profile"
	}
	return "profile " + profile
}

// maskPassword masks passwords in connection strings for display
func maskPassword(connStr string) string {
	if postgres.IsConnString(connStr) {
		if idx := strings.Index(connStr, "://"); idx != -1 {
			remaining := connStr[idx+3:]
			if atIdx := strings.LastIndex(remaining, "@"); atIdx != -1 {
				userInfo := remaining[:atIdx]
				if colonIdx := strings.Index(userInfo, ":"); colonIdx != -1 {
					return connStr[:idx+3] + userInfo[:colonIdx] + ":****" + connStr[idx+3+atIdx:]
				}
			}
		}
		return connStr
	}

	parts := strings.Fields(connStr)
	for i, part := range parts {
		if strings.HasPrefix(part, "password=") {
			parts[i] = "password=****"
		}
	}
	return strings.Join(parts, " ")
}
