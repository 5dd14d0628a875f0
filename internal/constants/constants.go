package constants

const (
	AppName = "blockday"
	Version = "v0.2.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard time format used throughout the application (HH:MM)
	TimeFormat = "15:04"

	// BlockMinutes is the fixed length of every time block. The grid never
	// produces blocks of any other duration.
	BlockMinutes = 30

	// Day defaults applied when a user creates their first day entry
	DefaultWakeTime       = "07:00"
	DefaultDayLengthHours = 15.0

	// UnfulfilledGraceMinutes is how far back the reminder poller looks for
	// blocks that ended without an actual entry.
	UnfulfilledGraceMinutes = 5

	// TopTaskCount is the number of top-task rows seeded on a new day entry.
	TopTaskCount = 3

	// HistoryDefaultLimit caps how many day entries a history query returns.
	HistoryDefaultLimit = 90

	// Notifier constants
	NotifierLockfileName   = "blockday-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "dev.blockday.tray"
	TrayProcessPrefix      = "blockday-tray"

	// Keyring
	DefaultKeyringUser = "session-secret"

	DefaultConfigPath = "~/.config/blockday/blockday.db"
)
