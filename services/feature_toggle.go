package services

import (
	"log"
	"math/rand"

	"journal-engagement-system/models"
	"journal-engagement-system/store"
)

type FeatureToggleService struct {
	Store *store.Store

	// Rand draws uniform [0,1). Injectable so tests can pin the draw and so a
	// deterministic per-user hash gate can replace the re-roll without
	// touching call sites.
	Rand func() float64
}

func NewFeatureToggleService(st *store.Store) *FeatureToggleService {
	return &FeatureToggleService{Store: st, Rand: rand.Float64}
}

// EnsureDefaults seeds any missing toggles from the default catalog.
func (s *FeatureToggleService) EnsureDefaults() error {
	for _, name := range models.DefaultFeatureNames {
		if _, ok, err := s.Store.Toggles.Get(name); err != nil {
			return err
		} else if ok {
			continue
		}
		toggle := &models.FeatureToggle{
			Name:              name,
			Enabled:           true,
			UserSegment:       models.SegmentAll,
			RolloutPercentage: 100,
		}
		if err := s.Store.Toggles.Save(toggle); err != nil {
			return err
		}
	}
	return nil
}

// IsFeatureEnabled gates a feature for one evaluation. When rollout is
// partial, each call re-rolls the draw independently — the same user can see
// the gate flip across requests unless the caller pins Rand to a stable
// per-user hash.
func (s *FeatureToggleService) IsFeatureEnabled(name, userTier string) (bool, error) {
	toggle, ok, err := s.Store.Toggles.Get(name)
	if err != nil {
		return false, err
	}
	if !ok || !toggle.Enabled {
		return false, nil
	}
	if toggle.RolloutPercentage < 100 {
		return s.Rand()*100 < float64(toggle.RolloutPercentage), nil
	}
	if toggle.UserSegment != models.SegmentAll && userTier != toggle.UserSegment {
		return false, nil
	}
	return true, nil
}

// ToggleFeature is the admin mutation. Unknown names are a no-op reported
// through the boolean.
func (s *FeatureToggleService) ToggleFeature(name string, enabled bool, segment string, rollout int) (*models.FeatureToggle, bool, error) {
	toggle, ok, err := s.Store.Toggles.Get(name)
	if err != nil || !ok {
		return nil, false, err
	}

	toggle.Enabled = enabled
	toggle.UserSegment = segment
	toggle.RolloutPercentage = rollout
	if err := s.Store.Toggles.Save(toggle); err != nil {
		return nil, false, err
	}
	log.Printf("🎚️ Feature %q → enabled=%t segment=%s rollout=%d%%", name, enabled, segment, rollout)
	return toggle, true, nil
}

// All lists the toggle set.
func (s *FeatureToggleService) All() ([]models.FeatureToggle, error) {
	return s.Store.Toggles.All()
}
