package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestISOWeekday(t *testing.T) {
	// 2025-03-10 — понедельник
	monday := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 7; i++ {
		date := monday.AddDate(0, 0, i)
		assert.Equal(t, i+1, ISOWeekday(date), "%s", date.Weekday())
	}
}

func TestISOWeekday_SundayIsSeven(t *testing.T) {
	sunday := time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Sunday, sunday.Weekday())
	assert.Equal(t, 7, ISOWeekday(sunday))
}

func TestAvailabilityWindow_Covers(t *testing.T) {
	w := &AvailabilityWindow{
		DayOfWeek: 1,
		StartTime: "09:00",
		EndTime:   "17:00",
	}

	assert.True(t, w.Covers("09:00", "10:00"))
	assert.True(t, w.Covers("16:00", "17:00"))
	assert.True(t, w.Covers("09:00", "17:00"))
	assert.False(t, w.Covers("08:00", "10:00"))
	assert.False(t, w.Covers("16:30", "17:30"))
	assert.False(t, w.Covers("18:00", "19:00"))
}
