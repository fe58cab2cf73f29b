package store

import (
	"sync"

	"journal-engagement-system/models"

	"github.com/google/uuid"
)

// NewMemory returns a process-local Store backed by maps. Used for tests and
// DB-less runs. Every method returns copies so callers never alias internal
// state; write serialization across a read-modify-write sequence is still the
// services' per-key lock.
func NewMemory() *Store {
	return &Store{
		Progress:    &memProgress{byUser: make(map[string]models.UserProgress)},
		Unlocks:     &memUnlocks{byUser: make(map[string][]models.UnlockedAchievement)},
		CheckIns:    &memCheckIns{byID: make(map[string]models.CheckIn)},
		Challenges:  &memChallenges{byKey: make(map[string]models.UserChallengeProgress)},
		Tournaments: &memTournaments{byID: make(map[string]models.Tournament)},
		Referrals:   &memReferrals{byID: make(map[string]models.Referral), codeToUser: make(map[string]string)},
		Toggles:     &memToggles{byName: make(map[string]models.FeatureToggle)},
	}
}

type memProgress struct {
	mu     sync.RWMutex
	byUser map[string]models.UserProgress
}

func (s *memProgress) Ensure(userID string) (*models.UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.byUser[userID]; ok {
		return &p, nil
	}
	p := models.UserProgress{ID: uuid.NewString(), UserID: userID, Level: 1}
	s.byUser[userID] = p
	return &p, nil
}

func (s *memProgress) Get(userID string) (*models.UserProgress, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byUser[userID]
	if !ok {
		return nil, false, nil
	}
	return &p, true, nil
}

func (s *memProgress) Save(prog *models.UserProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byUser[prog.UserID] = *prog
	return nil
}

type memUnlocks struct {
	mu     sync.RWMutex
	byUser map[string][]models.UnlockedAchievement
}

func (s *memUnlocks) Has(userID, achievementID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.byUser[userID] {
		if u.AchievementID == achievementID {
			return true, nil
		}
	}
	return false, nil
}

func (s *memUnlocks) Add(unlock *models.UnlockedAchievement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byUser[unlock.UserID] = append(s.byUser[unlock.UserID], *unlock)
	return nil
}

func (s *memUnlocks) ListByUser(userID string) ([]models.UnlockedAchievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.UnlockedAchievement, len(s.byUser[userID]))
	copy(out, s.byUser[userID])
	return out, nil
}

type memCheckIns struct {
	mu   sync.RWMutex
	byID map[string]models.CheckIn
}

func (s *memCheckIns) ByUserAndDate(userID, date string) (*models.CheckIn, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.byID {
		if c.UserID == userID && c.Date == date {
			cc := c
			return &cc, true, nil
		}
	}
	return nil, false, nil
}

func (s *memCheckIns) ByID(id string) (*models.CheckIn, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.byID[id]
	if !ok {
		return nil, false, nil
	}
	return &c, true, nil
}

func (s *memCheckIns) ListByUser(userID string) ([]models.CheckIn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.CheckIn
	for _, c := range s.byID {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *memCheckIns) Save(checkIn *models.CheckIn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[checkIn.ID] = *checkIn
	return nil
}

type memChallenges struct {
	mu    sync.RWMutex
	byKey map[string]models.UserChallengeProgress
}

func challengeKey(userID, date string) string { return userID + "_" + date }

func (s *memChallenges) Get(userID, date string) (*models.UserChallengeProgress, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byKey[challengeKey(userID, date)]
	if !ok {
		return nil, false, nil
	}
	p.CompletedChallenges = append([]string(nil), p.CompletedChallenges...)
	return &p, true, nil
}

func (s *memChallenges) Save(prog *models.UserChallengeProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *prog
	cp.CompletedChallenges = append([]string(nil), prog.CompletedChallenges...)
	s.byKey[challengeKey(prog.UserID, prog.Date)] = cp
	return nil
}

type memTournaments struct {
	mu   sync.RWMutex
	byID map[string]models.Tournament
}

func copyTournament(t models.Tournament) models.Tournament {
	t.Participants = append([]string(nil), t.Participants...)
	t.Leaderboard = append([]models.LeaderboardEntry(nil), t.Leaderboard...)
	return t
}

func (s *memTournaments) ByID(id string) (*models.Tournament, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.byID[id]
	if !ok {
		return nil, false, nil
	}
	t = copyTournament(t)
	return &t, true, nil
}

func (s *memTournaments) List() ([]models.Tournament, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Tournament, 0, len(s.byID))
	for _, t := range s.byID {
		out = append(out, copyTournament(t))
	}
	return out, nil
}

func (s *memTournaments) Save(t *models.Tournament) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[t.ID] = copyTournament(*t)
	return nil
}

type memReferrals struct {
	mu         sync.RWMutex
	byID       map[string]models.Referral
	codeToUser map[string]string
}

func (s *memReferrals) ByID(id string) (*models.Referral, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.byID[id]
	if !ok {
		return nil, false, nil
	}
	return &r, true, nil
}

func (s *memReferrals) ListByReferrer(userID string) ([]models.Referral, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Referral
	for _, r := range s.byID {
		if r.ReferrerID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memReferrals) Save(ref *models.Referral) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[ref.ID] = *ref
	return nil
}

func (s *memReferrals) SaveCode(code *models.ReferralCode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codeToUser[code.Code] = code.UserID
	return nil
}

func (s *memReferrals) CodeOwner(code string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.codeToUser[code]
	return userID, ok, nil
}

type memToggles struct {
	mu     sync.RWMutex
	byName map[string]models.FeatureToggle
}

func (s *memToggles) Get(name string) (*models.FeatureToggle, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.byName[name]
	if !ok {
		return nil, false, nil
	}
	return &t, true, nil
}

func (s *memToggles) All() ([]models.FeatureToggle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.FeatureToggle, 0, len(s.byName))
	for _, t := range s.byName {
		out = append(out, t)
	}
	return out, nil
}

func (s *memToggles) Save(toggle *models.FeatureToggle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byName[toggle.Name] = *toggle
	return nil
}
