package models

import (
	"time"

	"github.com/julianstephens/tutorly/internal/constants"
)

// Settings represents application-wide settings
type Settings struct {
	Timezone              string `json:"timezone"`                 // IANA timezone name or "Local"
	ClockSkewToleranceSec int    `json:"clock_skew_tolerance_sec"` // allowed drift against the database clock
	EnforceClockPolicy    bool   `json:"enforce_clock_policy"`     // refuse next/agenda on an untrusted clock
	AgendaDays            int    `json:"agenda_days"`              // default agenda horizon
}

// DefaultSettings returns the settings written by init.
func DefaultSettings() Settings {
	return Settings{
		Timezone:              constants.DefaultTimezone,
		ClockSkewToleranceSec: constants.DefaultClockSkewToleranceSec,
		EnforceClockPolicy:    constants.DefaultEnforceClockPolicy,
		AgendaDays:            constants.DefaultAgendaDays,
	}
}

// ClockSkewTolerance returns the tolerance as a duration.
func (s Settings) ClockSkewTolerance() time.Duration {
	return time.Duration(s.ClockSkewToleranceSec) * time.Second
}
