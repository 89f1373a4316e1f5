package constants

const (
	AppName            = "tutorly"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/tutorly/tutorly.db"
	Version            = "v0.3.0"

	// EnvDBConnection overrides the --config flag when set.
	EnvDBConnection = "TUTORLY_DB_CONNECTION"
	// EnvFileName is loaded from the config directory before flags are resolved.
	EnvFileName = ".env"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat is used for schedule validity windows (YYYY-MM)
	MonthFormat = "2006-01"

	// DisplayFormat renders a session start, e.g. "Mon 14:00"
	DisplayFormat = "Mon 15:04"

	// SessionLengthHours is the fixed length of every tutoring session.
	SessionLengthHours = 1

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "tutorly-"
	BackupFileSuffix = ".db"

	// Log constants
	LogDirName  = "logs"
	LogFileName = "tutorly.log"
)
