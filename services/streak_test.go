package services

import (
	"testing"
	"time"

	"journal-engagement-system/models"
	"journal-engagement-system/store"

	"github.com/stretchr/testify/assert"
)

func fixedClock(day string) func() time.Time {
	ts, err := time.Parse(time.DateOnly, day)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return ts }
}

// seedCompletedCheckIn writes a finished check-in straight into the store.
func seedCompletedCheckIn(t *testing.T, st *store.Store, userID, date string) {
	t.Helper()
	err := st.CheckIns.Save(&models.CheckIn{
		ID:             userID + "-" + date,
		UserID:         userID,
		Date:           date,
		Completed:      true,
		JournalWritten: true,
	})
	assert.NoError(t, err)
}

func TestCheckInIdempotentPerDay(t *testing.T) {
	st := store.NewMemory()
	svc := NewStreakService(st, NewProgressionService(st))
	svc.Now = fixedClock("2026-03-10")

	first, err := svc.CheckIn("user-1")
	assert.NoError(t, err)
	second, err := svc.CheckIn("user-1")
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "2026-03-10", first.Date)
}

func TestCompleteCheckInUnknownID(t *testing.T) {
	st := store.NewMemory()
	svc := NewStreakService(st, NewProgressionService(st))

	result, err := svc.CompleteCheckIn("nope", true, "")
	assert.NoError(t, err)
	assert.False(t, result.Found)
}

func TestCompleteCheckInAwardsXPOnce(t *testing.T) {
	st := store.NewMemory()
	progression := NewProgressionService(st)
	svc := NewStreakService(st, progression)
	svc.Now = fixedClock("2026-03-10")

	checkIn, err := svc.CheckIn("user-1")
	assert.NoError(t, err)

	result, err := svc.CompleteCheckIn(checkIn.ID, true, "good day")
	assert.NoError(t, err)
	assert.True(t, result.Found)
	assert.Equal(t, 0, result.StreakBefore)
	assert.Equal(t, 1, result.StreakAfter)
	assert.True(t, result.CheckIn.Completed)
	assert.Equal(t, "✅", result.CheckIn.Badge)

	// Completing again changes nothing
	again, err := svc.CompleteCheckIn(checkIn.ID, true, "good day")
	assert.NoError(t, err)
	assert.True(t, again.Found)
	assert.Equal(t, again.StreakBefore, again.StreakAfter)
	assert.Empty(t, again.Events)

	prog, err := progression.Progress("user-1")
	assert.NoError(t, err)
	assert.Equal(t, progression.Weights.CheckInXP, prog.XP)
	assert.Equal(t, 1, prog.CurrentStreak)
	assert.Equal(t, 1, prog.LongestStreak)
}

func TestStreakBreaksOnMissedDay(t *testing.T) {
	st := store.NewMemory()
	svc := NewStreakService(st, NewProgressionService(st))

	// Three days in a row, then a gap, then one more
	seedCompletedCheckIn(t, st, "user-1", "2026-03-01")
	seedCompletedCheckIn(t, st, "user-1", "2026-03-02")
	seedCompletedCheckIn(t, st, "user-1", "2026-03-03")
	seedCompletedCheckIn(t, st, "user-1", "2026-03-05")

	streak, err := svc.CurrentStreak("user-1")
	assert.NoError(t, err)
	assert.Equal(t, 1, streak)
}

func TestStreakCountsContiguousRun(t *testing.T) {
	st := store.NewMemory()
	svc := NewStreakService(st, NewProgressionService(st))

	for _, date := range []string{"2026-03-01", "2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05"} {
		seedCompletedCheckIn(t, st, "user-1", date)
	}

	streak, err := svc.CurrentStreak("user-1")
	assert.NoError(t, err)
	assert.Equal(t, 5, streak)
}

func TestStreakIgnoresIncompleteCheckIns(t *testing.T) {
	st := store.NewMemory()
	svc := NewStreakService(st, NewProgressionService(st))

	seedCompletedCheckIn(t, st, "user-1", "2026-03-01")
	// Most recent check-in exists but was never completed
	err := st.CheckIns.Save(&models.CheckIn{ID: "c2", UserID: "user-1", Date: "2026-03-02"})
	assert.NoError(t, err)

	streak, err := svc.CurrentStreak("user-1")
	assert.NoError(t, err)
	assert.Equal(t, 0, streak)
}

func TestCompleteCheckInHitsMilestone(t *testing.T) {
	st := store.NewMemory()
	progression := NewProgressionService(st)
	svc := NewStreakService(st, progression)
	svc.Now = fixedClock("2026-03-07")

	for _, date := range []string{"2026-03-01", "2026-03-02", "2026-03-03", "2026-03-04", "2026-03-05", "2026-03-06"} {
		seedCompletedCheckIn(t, st, "user-1", date)
	}

	checkIn, err := svc.CheckIn("user-1")
	assert.NoError(t, err)
	result, err := svc.CompleteCheckIn(checkIn.ID, true, "")
	assert.NoError(t, err)
	assert.Equal(t, 6, result.StreakBefore)
	assert.Equal(t, 7, result.StreakAfter)
	assert.NotEmpty(t, result.Milestone)
	assert.Len(t, result.Events, 1)
	assert.Equal(t, "streak_milestone", result.Events[0].Type)

	prog, err := progression.Progress("user-1")
	assert.NoError(t, err)
	assert.Equal(t, 7, prog.CurrentStreak)
	assert.Equal(t, 7, prog.LongestStreak)
}

func TestMilestoneMessage(t *testing.T) {
	for _, streak := range []int{7, 14, 30, 60, 100} {
		msg, ok := MilestoneMessage(streak)
		assert.True(t, ok, "streak=%d", streak)
		assert.NotEmpty(t, msg)
	}
	for _, streak := range []int{0, 1, 6, 8, 15, 99, 101} {
		_, ok := MilestoneMessage(streak)
		assert.False(t, ok, "streak=%d", streak)
	}
}

func TestAchievedMilestones(t *testing.T) {
	st := store.NewMemory()
	svc := NewStreakService(st, NewProgressionService(st))

	// No ledger yet
	achieved, err := svc.AchievedMilestones("ghost")
	assert.NoError(t, err)
	assert.Empty(t, achieved)

	prog, err := st.Progress.Ensure("user-1")
	assert.NoError(t, err)
	prog.TotalWords = 600
	prog.TotalEntries = 10
	prog.LongestStreak = 7
	assert.NoError(t, st.Progress.Save(prog))

	achieved, err = svc.AchievedMilestones("user-1")
	assert.NoError(t, err)
	ids := make([]string, 0, len(achieved))
	for _, m := range achieved {
		ids = append(ids, m.ID)
	}
	assert.ElementsMatch(t, []string{"100w", "500w", "7day", "10entry"}, ids)
}
