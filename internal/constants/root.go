package constants

const (
	AppName            = "chronorex"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/chronorex/chronorex.db"
	DefaultConfigFile  = "~/.config/chronorex/config.yaml"
	Version            = "v0.3.0"

	// EnvDBConnection holds a PostgreSQL connection string when set
	EnvDBConnection = "CHRONOREX_DB_CONNECTION"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// ExportTimestampFormat is used in export file names
	ExportTimestampFormat = "20060102_1504"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "chronorex-"
	BackupFileSuffix = ".db"

	// DayRolloverHour is the local hour before which an entry may count toward the previous day
	DayRolloverHour = 4
)
