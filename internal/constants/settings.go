package constants

const (
	SettingTimezone              = "timezone"
	SettingClockSkewToleranceSec = "clock_skew_tolerance_sec"
	SettingEnforceClockPolicy    = "enforce_clock_policy"
	SettingAgendaDays            = "agenda_days"

	DefaultTimezone              = "Local" // Use system local timezone by default
	DefaultClockSkewToleranceSec = 300
	DefaultEnforceClockPolicy    = true
	DefaultAgendaDays            = 14
)
