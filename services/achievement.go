package services

import (
	"fmt"
	"log"
	"time"

	"journal-engagement-system/models"
	"journal-engagement-system/store"

	"github.com/google/uuid"
)

type AchievementService struct {
	Store *store.Store
}

func NewAchievementService(st *store.Store) *AchievementService {
	return &AchievementService{Store: st}
}

// counterFor maps a definition's category to the ledger counter it gates on.
func counterFor(prog *models.UserProgress, def models.AchievementDefinition) int64 {
	switch def.Category {
	case models.CategoryMilestone:
		return prog.TotalEntries
	case models.CategoryWriting:
		return prog.TotalWords
	case models.CategoryStreak, models.CategoryConsistency:
		return int64(prog.CurrentStreak)
	case models.CategorySocial:
		return prog.TotalFollowers
	}
	return 0
}

// Evaluate compares the user's counters against every catalog requirement and
// unlocks everything newly crossed in one pass. Pure function of
// counters ∪ already-unlocked set: repeat or delayed calls never duplicate an
// unlock and never miss one.
func (s *AchievementService) Evaluate(userID string) ([]models.UnlockedAchievement, []models.EngagementEvent, error) {
	unlock := userLocks.Lock(userID)
	defer unlock()

	prog, ok, err := s.Store.Progress.Get(userID)
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, nil
	}

	var newlyUnlocked []models.UnlockedAchievement
	var events []models.EngagementEvent
	for _, def := range models.Achievements {
		if counterFor(prog, def) < def.Requirement {
			continue
		}
		has, err := s.Store.Unlocks.Has(userID, def.ID)
		if err != nil {
			return nil, nil, err
		}
		if has {
			continue
		}

		u := models.UnlockedAchievement{
			ID:            uuid.NewString(),
			UserID:        userID,
			AchievementID: def.ID,
			UnlockedAt:    time.Now(),
		}
		if err := s.Store.Unlocks.Add(&u); err != nil {
			return nil, nil, err
		}
		newlyUnlocked = append(newlyUnlocked, u)
		events = append(events, models.EngagementEvent{
			Type:    models.EventAchievementUnlocked,
			UserID:  userID,
			Message: fmt.Sprintf("%s Achievement unlocked: %s — %s", def.Icon, def.Name, def.Description),
			Data:    map[string]interface{}{"achievement_id": def.ID, "category": def.Category},
			At:      u.UnlockedAt,
		})
		log.Printf("🎖️ Achievement unlocked: %s → %s", def.ID, userID)
	}
	return newlyUnlocked, events, nil
}

// All lists the full catalog with the user's unlock state.
func (s *AchievementService) All(userID string) ([]models.AchievementStatus, error) {
	unlocked, err := s.Store.Unlocks.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	unlockedByID := make(map[string]models.UnlockedAchievement, len(unlocked))
	for _, u := range unlocked {
		unlockedByID[u.AchievementID] = u
	}

	out := make([]models.AchievementStatus, 0, len(models.Achievements))
	for _, def := range models.Achievements {
		status := models.AchievementStatus{AchievementDefinition: def}
		if u, ok := unlockedByID[def.ID]; ok {
			at := u.UnlockedAt
			status.Unlocked = true
			status.UnlockedAt = &at
		}
		out = append(out, status)
	}
	return out, nil
}
