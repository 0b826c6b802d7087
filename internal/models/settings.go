package models

// Settings represents application-wide settings
type Settings struct {
	ReminderTime            string `json:"reminder_time"`               // local reminder time for the check-in, e.g. "08:00"
	Timezone                string `json:"timezone"`                    // IANA timezone name (e.g. "Europe/London", or "Local" for system timezone)
	BeforeFourAmIsYesterday bool   `json:"before_four_am_is_yesterday"` // entries before 04:00 count toward the previous day
	NotificationsDenied     bool   `json:"notifications_denied"`        // push notifications unavailable, surface reviews in-app
	OnboardingCompleted     bool   `json:"onboarding_completed"`
}
