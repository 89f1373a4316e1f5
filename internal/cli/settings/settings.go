package settings

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/tutorly/internal/cli"
	"github.com/julianstephens/tutorly/internal/constants"
	"github.com/julianstephens/tutorly/internal/models"
	"github.com/julianstephens/tutorly/internal/utils"
)

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	fmt.Println("Current Settings:")
	fmt.Printf("  %-26s %s\n", constants.SettingTimezone, settings.Timezone)
	fmt.Printf("  %-26s %d\n", constants.SettingClockSkewToleranceSec, settings.ClockSkewToleranceSec)
	fmt.Printf("  %-26s %v\n", constants.SettingEnforceClockPolicy, settings.EnforceClockPolicy)
	fmt.Printf("  %-26s %d\n", constants.SettingAgendaDays, settings.AgendaDays)
	return nil
}

type SettingsSetCmd struct {
	Key   string `arg:"" enum:"timezone,clock_skew_tolerance_sec,enforce_clock_policy,agenda_days" help:"Setting to change."`
	Value string `arg:"" help:"New value."`
}

func (c *SettingsSetCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if err := apply(&settings, c.Key, c.Value); err != nil {
		return err
	}

	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cli.Successf("%s = %s", c.Key, c.Value)
	return nil
}

func apply(s *models.Settings, key, value string) error {
	switch key {
	case constants.SettingTimezone:
		if !utils.ValidateTimezone(value) {
			return fmt.Errorf("invalid timezone: %q", value)
		}
		s.Timezone = value
	case constants.SettingClockSkewToleranceSec:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive number of seconds", key)
		}
		s.ClockSkewToleranceSec = n
	case constants.SettingEnforceClockPolicy:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false", key)
		}
		s.EnforceClockPolicy = b
	case constants.SettingAgendaDays:
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > 366 {
			return fmt.Errorf("%s must be between 1 and 366", key)
		}
		s.AgendaDays = n
	default:
		return fmt.Errorf("unknown setting: %q", key)
	}
	return nil
}
