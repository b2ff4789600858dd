package season

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 20, 15, 0, 0, time.UTC)
}

func TestInfo(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want Week
	}{
		// 2025: primeira quinta de agosto = 7, primeira segunda de setembro = 1
		{"preseason first week", date(2025, time.August, 7), Week{2025, Pre, 1}},
		{"preseason before anchor clamps to 1", date(2025, time.August, 3), Week{2025, Pre, 1}},
		{"preseason third week", date(2025, time.August, 21), Week{2025, Pre, 3}},
		{"preseason end of month", date(2025, time.August, 31), Week{2025, Pre, 4}},
		{"regular before kickoff clamps to 1", date(2025, time.September, 2), Week{2025, Reg, 1}},
		{"regular kickoff", date(2025, time.September, 4), Week{2025, Reg, 1}},
		{"regular six days after kickoff", date(2025, time.September, 10), Week{2025, Reg, 1}},
		{"regular second week", date(2025, time.September, 11), Week{2025, Reg, 2}},
		{"regular late december", date(2025, time.December, 28), Week{2025, Reg, 17}},
		// 2026: primeiro sábado de janeiro = 3
		{"postseason belongs to previous season", date(2026, time.January, 3), Week{2025, Post, 1}},
		{"postseason before anchor", date(2026, time.January, 1), Week{2025, Post, 1}},
		{"postseason second week", date(2026, time.January, 10), Week{2025, Post, 2}},
		{"postseason clamps to 5", date(2026, time.February, 28), Week{2025, Post, 5}},
		{"offseason placeholder", date(2026, time.May, 15), Week{2025, Reg, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Info(tt.date))
		})
	}
}

func TestRegularSeasonWeekClamp(t *testing.T) {
	anchor := RegularSeasonAnchor(2025)
	assert.Equal(t, time.Date(2025, time.September, 4, 0, 0, 0, 0, time.UTC), anchor)

	assert.Equal(t, 1, RegularSeasonWeek(2025, anchor))
	assert.Equal(t, 1, RegularSeasonWeek(2025, anchor.AddDate(0, 0, 6)))
	assert.Equal(t, 18, RegularSeasonWeek(2025, anchor.AddDate(0, 0, 17*7)))
	assert.Equal(t, 18, RegularSeasonWeek(2025, anchor.AddDate(0, 0, 20*7)))
}

func TestWeekKey(t *testing.T) {
	w := Week{Season: 2024, Segment: Post, Week: 3}
	assert.Equal(t, "2024POST", w.Key())
	assert.Equal(t, "2024POST/3", w.String())
}

func TestFloorDiv(t *testing.T) {
	assert.Equal(t, -1, floorDiv(-1, 7))
	assert.Equal(t, -2, floorDiv(-8, 7))
	assert.Equal(t, 0, floorDiv(6, 7))
	assert.Equal(t, 1, floorDiv(7, 7))
}
