package economy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestMonthsActive(t *testing.T) {
	now := date(2025, time.September, 15)

	tests := []struct {
		name  string
		start *time.Time
		want  int
	}{
		{"nil start", nil, 0},
		{"same month", datePtr(2025, time.September, 1), 0},
		{"one month earlier", datePtr(2025, time.August, 20), 1},
		{"45 days across two month boundaries counts whole months", datePtr(2025, time.August, 1), 1},
		{"exactly six months ago", datePtr(2025, time.March, 15), 6},
		{"six months by calendar even if day is later", datePtr(2025, time.March, 28), 6},
		{"across year boundary", datePtr(2024, time.November, 3), 10},
		{"several years", datePtr(2022, time.September, 15), 36},
		{"future start", datePtr(2025, time.December, 1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthsActive(tt.start, now))
		})
	}
}
