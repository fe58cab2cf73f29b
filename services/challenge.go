package services

import (
	"fmt"
	"time"

	"journal-engagement-system/models"
	"journal-engagement-system/store"

	"github.com/google/uuid"
)

type ChallengeService struct {
	Store       *store.Store
	Progression *ProgressionService

	Now func() time.Time
}

func NewChallengeService(st *store.Store, progression *ProgressionService) *ChallengeService {
	return &ChallengeService{Store: st, Progression: progression, Now: time.Now}
}

// GetDailyChallenges returns the catalog decorated with today's completion
// state for the user.
func (s *ChallengeService) GetDailyChallenges(userID string) ([]models.ChallengeStatus, error) {
	today := s.Now().Format(time.DateOnly)
	prog, ok, err := s.Store.Challenges.Get(userID, today)
	if err != nil {
		return nil, err
	}

	completed := make(map[string]bool)
	if ok {
		for _, id := range prog.CompletedChallenges {
			completed[id] = true
		}
	}

	out := make([]models.ChallengeStatus, 0, len(models.DailyChallengeCatalog))
	for _, c := range models.DailyChallengeCatalog {
		out = append(out, models.ChallengeStatus{DailyChallenge: c, Completed: completed[c.ID]})
	}
	return out, nil
}

// ChallengeResult reports a completion attempt
type ChallengeResult struct {
	Success bool  `json:"success"`
	Reward  int64 `json:"reward"`
}

// CompleteChallenge records a challenge completion for today. Unknown ids and
// repeat completions the same day are rejected as {success:false} no-ops, so
// optimistic retries stay safe.
func (s *ChallengeService) CompleteChallenge(userID, challengeID string) (ChallengeResult, []models.EngagementEvent, error) {
	challenge, ok := models.ChallengeByID(challengeID)
	if !ok {
		return ChallengeResult{}, nil, nil
	}

	unlock := userLocks.Lock(userID)
	defer unlock()

	today := s.Now().Format(time.DateOnly)
	prog, found, err := s.Store.Challenges.Get(userID, today)
	if err != nil {
		return ChallengeResult{}, nil, err
	}
	if !found {
		prog = &models.UserChallengeProgress{
			ID:     uuid.NewString(),
			UserID: userID,
			Date:   today,
		}
	}

	for _, id := range prog.CompletedChallenges {
		if id == challengeID {
			return ChallengeResult{}, nil, nil
		}
	}

	prog.CompletedChallenges = append(prog.CompletedChallenges, challengeID)
	prog.DailyBonus += challenge.Reward
	if err := s.Store.Challenges.Save(prog); err != nil {
		return ChallengeResult{}, nil, err
	}
	if _, err := s.Progression.awardXPLocked(userID, challenge.Reward, "challenge_"+challengeID); err != nil {
		return ChallengeResult{}, nil, err
	}

	events := []models.EngagementEvent{{
		Type:    models.EventChallengeCompleted,
		UserID:  userID,
		Message: fmt.Sprintf("%s Challenge complete: %s (+%d)", challenge.Icon, challenge.Title, challenge.Reward),
		Data:    map[string]interface{}{"challenge_id": challengeID, "reward": challenge.Reward, "daily_bonus": prog.DailyBonus},
		At:      s.Now(),
	}}
	return ChallengeResult{Success: true, Reward: challenge.Reward}, events, nil
}

// CompletionStats summarizes today's challenge activity
type CompletionStats struct {
	TotalCompleted int   `json:"total_completed"`
	TotalReward    int64 `json:"total_reward"`
}

// CompletionStats reports how the user is doing against today's catalog.
func (s *ChallengeService) CompletionStats(userID string) (CompletionStats, error) {
	today := s.Now().Format(time.DateOnly)
	prog, ok, err := s.Store.Challenges.Get(userID, today)
	if err != nil || !ok {
		return CompletionStats{}, err
	}
	return CompletionStats{
		TotalCompleted: len(prog.CompletedChallenges),
		TotalReward:    prog.DailyBonus,
	}, nil
}
