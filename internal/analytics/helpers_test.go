package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/Tholomir/ChronoRex/internal/models"
	"github.com/Tholomir/ChronoRex/internal/utils"
)

var testClock = FixedClock{At: time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)}

// consecutiveDays builds one check-in per day starting 2024-01-01, one per restedness value.
func consecutiveDays(restedness ...int) []models.Day {
	days := make([]models.Day, 0, len(restedness))
	for i, r := range restedness {
		days = append(days, models.Day{
			Date:         fmt.Sprintf("2024-01-%02d", i+1),
			Restedness:   r,
			SleepQuality: 3,
		})
	}
	return days
}

func ptr[T any](v T) *T {
	return &v
}

func dateAfter(t *testing.T, start string, n int) string {
	t.Helper()
	d, err := utils.AddDays(start, n)
	if err != nil {
		t.Fatalf("AddDays(%s, %d): %v", start, n, err)
	}
	return d
}
