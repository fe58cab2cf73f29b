package services

import (
	"fmt"
	"testing"
	"time"

	"journal-engagement-system/models"
	"journal-engagement-system/store"

	"github.com/stretchr/testify/assert"
)

// Simulates five days of journaling: one entry and one completed check-in per
// day, with achievements evaluated after every entry.
func TestFiveDayJournalingFlow(t *testing.T) {
	st := store.NewMemory()
	progression := NewProgressionService(st)
	achievements := NewAchievementService(st)
	streaks := NewStreakService(st, progression)

	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	var moods []models.MoodSample

	for day := 0; day < 5; day++ {
		now := start.AddDate(0, 0, day)
		streaks.Now = func() time.Time { return now }

		_, _, err := progression.RecordActivity("user-1", ActivityDelta{Entries: 1, Words: 120})
		assert.NoError(t, err)
		_, _, err = achievements.Evaluate("user-1")
		assert.NoError(t, err)

		checkIn, err := streaks.CheckIn("user-1")
		assert.NoError(t, err)
		result, err := streaks.CompleteCheckIn(checkIn.ID, true, fmt.Sprintf("day %d", day+1))
		assert.NoError(t, err)
		assert.Equal(t, day+1, result.StreakAfter)

		moods = append(moods, models.MoodSample{Date: now.Format(time.DateOnly), Value: 3})
	}

	prog, err := progression.Progress("user-1")
	assert.NoError(t, err)
	assert.Equal(t, int64(5), prog.TotalEntries)
	assert.Equal(t, int64(600), prog.TotalWords)
	assert.Equal(t, 2, prog.Level)
	assert.Equal(t, 5, prog.CurrentStreak)
	assert.Equal(t, 5, prog.LongestStreak)
	// 5 entries at 10 XP plus 5 check-ins at 5 XP
	assert.Equal(t, int64(75), prog.XP)

	all, err := achievements.All("user-1")
	assert.NoError(t, err)
	unlocked := make(map[string]bool)
	for _, a := range all {
		if a.Unlocked {
			unlocked[a.ID] = true
		}
	}
	assert.True(t, unlocked["first_entry"])
	assert.True(t, unlocked["five_entries"])
	assert.False(t, unlocked["seven_day_streak"])

	report := NewAnalyticsService().AnalyzeMoodTrend(moods)
	assert.Equal(t, models.TrendStable, report.TrendDirection)
	assert.Equal(t, 71, report.Confidence) // 5 of 7 samples
}
