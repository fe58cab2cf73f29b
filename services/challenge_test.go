package services

import (
	"testing"

	"journal-engagement-system/models"
	"journal-engagement-system/store"

	"github.com/stretchr/testify/assert"
)

func TestGetDailyChallengesFreshUser(t *testing.T) {
	st := store.NewMemory()
	svc := NewChallengeService(st, NewProgressionService(st))

	challenges, err := svc.GetDailyChallenges("user-1")
	assert.NoError(t, err)
	assert.Len(t, challenges, len(models.DailyChallengeCatalog))
	for _, c := range challenges {
		assert.False(t, c.Completed)
	}
}

func TestCompleteChallenge(t *testing.T) {
	st := store.NewMemory()
	progression := NewProgressionService(st)
	svc := NewChallengeService(st, progression)

	result, events, err := svc.CompleteChallenge("user-1", "morning-reflection")
	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, int64(10), result.Reward)
	assert.Len(t, events, 1)
	assert.Equal(t, "challenge_completed", events[0].Type)
	assert.Equal(t, int64(10), events[0].Data["daily_bonus"])

	prog, err := progression.Progress("user-1")
	assert.NoError(t, err)
	assert.Equal(t, int64(10), prog.XP)

	challenges, err := svc.GetDailyChallenges("user-1")
	assert.NoError(t, err)
	for _, c := range challenges {
		assert.Equal(t, c.ID == "morning-reflection", c.Completed)
	}
}

func TestCompleteChallengeTwiceSameDay(t *testing.T) {
	st := store.NewMemory()
	progression := NewProgressionService(st)
	svc := NewChallengeService(st, progression)

	first, _, err := svc.CompleteChallenge("user-1", "gratitude-journal")
	assert.NoError(t, err)
	assert.True(t, first.Success)

	second, events, err := svc.CompleteChallenge("user-1", "gratitude-journal")
	assert.NoError(t, err)
	assert.False(t, second.Success)
	assert.Zero(t, second.Reward)
	assert.Empty(t, events)

	// Bonus and XP unchanged by the repeat
	stats, err := svc.CompletionStats("user-1")
	assert.NoError(t, err)
	assert.Equal(t, 1, stats.TotalCompleted)
	assert.Equal(t, int64(15), stats.TotalReward)

	prog, err := progression.Progress("user-1")
	assert.NoError(t, err)
	assert.Equal(t, int64(15), prog.XP)
}

func TestCompleteChallengeUnknownID(t *testing.T) {
	st := store.NewMemory()
	svc := NewChallengeService(st, NewProgressionService(st))

	result, events, err := svc.CompleteChallenge("user-1", "not-a-challenge")
	assert.NoError(t, err)
	assert.False(t, result.Success)
	assert.Empty(t, events)
}

func TestCompletionStatsAccumulates(t *testing.T) {
	st := store.NewMemory()
	svc := NewChallengeService(st, NewProgressionService(st))

	// Fresh user has no progress row yet
	stats, err := svc.CompletionStats("user-1")
	assert.NoError(t, err)
	assert.Zero(t, stats.TotalCompleted)

	_, _, err = svc.CompleteChallenge("user-1", "morning-reflection")
	assert.NoError(t, err)
	_, _, err = svc.CompleteChallenge("user-1", "deep-dive")
	assert.NoError(t, err)

	stats, err = svc.CompletionStats("user-1")
	assert.NoError(t, err)
	assert.Equal(t, 2, stats.TotalCompleted)
	assert.Equal(t, int64(60), stats.TotalReward)
}

func TestChallengeByID(t *testing.T) {
	c, ok := models.ChallengeByID("100-word-wonder")
	assert.True(t, ok)
	assert.Equal(t, int64(25), c.Reward)

	_, ok = models.ChallengeByID("missing")
	assert.False(t, ok)
}
