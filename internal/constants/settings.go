package constants

const (
	// General Settings
	SettingReminderTime            = "reminder_time"
	SettingTimezone                = "timezone"
	SettingBeforeFourAmIsYesterday = "before_four_am_is_yesterday"
	SettingNotificationsDenied     = "notifications_denied"
	SettingOnboardingCompleted     = "onboarding_completed"

	// Default Settings Values
	DefaultReminderTime            = "08:00"
	DefaultTimezone                = "Local" // Use system local timezone by default
	DefaultBeforeFourAmIsYesterday = false
	DefaultNotificationsDenied     = false
	DefaultOnboardingCompleted     = false
)
