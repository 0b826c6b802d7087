package models

// Day is the morning check-in for a single calendar date
type Day struct {
	Date                  string   `json:"date"` // YYYY-MM-DD format
	TimezoneOffsetMinutes int      `json:"timezone_offset_minutes"`
	Restedness            int      `json:"restedness"`    // 0-100, higher is more rested
	SleepQuality          int      `json:"sleep_quality"` // 1-5
	Notes                 string   `json:"notes,omitempty"`
	Tags                  []string `json:"tags,omitempty"`
	Illness               bool     `json:"illness"`
	Travel                bool     `json:"travel"`
}

// Fatigue is derived from restedness and is never stored.
func (d Day) Fatigue() int {
	return 100 - d.Restedness
}
