package services

import (
	"log"
	"sort"
	"time"

	"journal-engagement-system/models"
	"journal-engagement-system/store"
	"journal-engagement-system/utils"

	"github.com/google/uuid"
)

// ReferralBonusPrompts is the fixed one-time bonus for a completed referral.
const ReferralBonusPrompts = 50

type ReferralService struct {
	Store       *store.Store
	Progression *ProgressionService
}

func NewReferralService(st *store.Store, progression *ProgressionService) *ReferralService {
	return &ReferralService{Store: st, Progression: progression}
}

// GenerateCode issues a unique share code bound to the user. Re-rolls on the
// rare collision.
func (s *ReferralService) GenerateCode(userID string) (string, error) {
	for {
		code := utils.NewReferralCode()
		if _, exists, err := s.Store.Referrals.CodeOwner(code); err != nil {
			return "", err
		} else if exists {
			continue
		}
		if err := s.Store.Referrals.SaveCode(&models.ReferralCode{Code: code, UserID: userID}); err != nil {
			return "", err
		}
		return code, nil
	}
}

// ResolveCode returns the user a code was issued to.
func (s *ReferralService) ResolveCode(code string) (string, bool, error) {
	return s.Store.Referrals.CodeOwner(code)
}

// CreateReferral records a pending referral.
func (s *ReferralService) CreateReferral(referrerID, referredUserID, referralCode string) (*models.Referral, error) {
	ref := &models.Referral{
		ID:                  uuid.NewString(),
		ReferrerID:          referrerID,
		ReferredUserID:      referredUserID,
		ReferralCode:        referralCode,
		BonusPromptsAwarded: ReferralBonusPrompts,
		CreatedAt:           time.Now(),
	}
	if err := s.Store.Referrals.Save(ref); err != nil {
		return nil, err
	}
	return ref, nil
}

// CompleteReferral is the one-time terminal transition. Completing an
// already-completed or unknown referral is a safe no-op: the bonus is never
// awarded twice and CompletedAt is never rewritten.
func (s *ReferralService) CompleteReferral(referralID string) (*models.Referral, []models.EngagementEvent, bool, error) {
	ref, ok, err := s.Store.Referrals.ByID(referralID)
	if err != nil || !ok {
		return nil, nil, false, err
	}

	unlock := userLocks.Lock(ref.ReferrerID)
	defer unlock()

	// Re-read under the referrer's lock; the first fetch only resolved the key.
	ref, ok, err = s.Store.Referrals.ByID(referralID)
	if err != nil || !ok {
		return nil, nil, false, err
	}
	if ref.CompletedAt != nil {
		return ref, nil, true, nil
	}

	now := time.Now()
	ref.CompletedAt = &now
	if err := s.Store.Referrals.Save(ref); err != nil {
		return nil, nil, false, err
	}
	if _, err := s.Progression.awardXPLocked(ref.ReferrerID, s.Progression.Weights.ReferralXP, "referral_"+ref.ReferredUserID); err != nil {
		return nil, nil, false, err
	}
	log.Printf("🎁 Referral completed: %s → %s (+%d prompts)", ref.ReferrerID, ref.ReferredUserID, ref.BonusPromptsAwarded)

	events := []models.EngagementEvent{{
		Type:    models.EventReferralBonus,
		UserID:  ref.ReferrerID,
		Message: "Your referral signed up — bonus prompts unlocked!",
		Data:    map[string]interface{}{"referral_id": ref.ID, "bonus_prompts": ref.BonusPromptsAwarded},
		At:      now,
	}}
	return ref, events, true, nil
}

// UserReferrals lists a user's referrals, newest first.
func (s *ReferralService) UserReferrals(userID string) ([]models.Referral, error) {
	refs, err := s.Store.Referrals.ListByReferrer(userID)
	if err != nil {
		return nil, err
	}
	sort.Slice(refs, func(i, j int) bool {
		return refs[i].CreatedAt.After(refs[j].CreatedAt)
	})
	return refs, nil
}

// Stats summarizes a referrer's standing.
func (s *ReferralService) Stats(userID string) (models.ReferralStats, error) {
	refs, err := s.Store.Referrals.ListByReferrer(userID)
	if err != nil {
		return models.ReferralStats{}, err
	}

	completed := 0
	for _, r := range refs {
		if r.CompletedAt != nil {
			completed++
		}
	}

	level := "Advocate"
	if completed > 20 {
		level = "VIP"
	} else if completed > 5 {
		level = "Ambassador"
	}

	return models.ReferralStats{
		TotalReferrals:     len(refs),
		CompletedReferrals: completed,
		TotalBonusPrompts:  int64(completed) * ReferralBonusPrompts,
		ReferralLevel:      level,
	}, nil
}
