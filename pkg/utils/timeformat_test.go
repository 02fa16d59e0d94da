package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTimestamp(t *testing.T) {
	now := time.Date(2025, time.March, 15, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		ts   time.Time
		want string
	}{
		{
			name: "same day",
			ts:   time.Date(2025, time.March, 15, 9, 5, 0, 0, time.UTC),
			want: "09:05",
		},
		{
			name: "previous day",
			ts:   time.Date(2025, time.March, 14, 23, 59, 0, 0, time.UTC),
			want: "Ayer 23:59",
		},
		{
			name: "same year",
			ts:   time.Date(2025, time.January, 2, 15, 4, 0, 0, time.UTC),
			want: "2 ene 15:04",
		},
		{
			name: "older year",
			ts:   time.Date(2023, time.December, 24, 8, 0, 0, 0, time.UTC),
			want: "24 dic 2023 08:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatTimestamp(tt.ts, now))
		})
	}
}

func TestFormatTimestampYesterdayAcrossMonth(t *testing.T) {
	now := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)
	ts := time.Date(2025, time.February, 28, 20, 15, 0, 0, time.UTC)

	assert.Equal(t, "Ayer 20:15", FormatTimestamp(ts, now))
}

func TestFormatTimestampYesterdayAcrossYear(t *testing.T) {
	now := time.Date(2025, time.January, 1, 0, 30, 0, 0, time.UTC)
	ts := time.Date(2024, time.December, 31, 23, 45, 0, 0, time.UTC)

	assert.Equal(t, "Ayer 23:45", FormatTimestamp(ts, now))
}
