package store

import (
	"journal-engagement-system/models"
)

// Store bundles the persistence boundary the rule services depend on.
// Rule logic only ever talks to these interfaces, so the backing can move
// between the in-memory maps and Postgres without touching a service.
type Store struct {
	Progress    ProgressStore
	Unlocks     UnlockStore
	CheckIns    CheckInStore
	Challenges  ChallengeProgressStore
	Tournaments TournamentStore
	Referrals   ReferralStore
	Toggles     ToggleStore
}

// ProgressStore holds one UserProgress ledger row per user
type ProgressStore interface {
	// Ensure returns the user's ledger, creating it if absent (idempotent)
	Ensure(userID string) (*models.UserProgress, error)
	Get(userID string) (*models.UserProgress, bool, error)
	Save(prog *models.UserProgress) error
}

// UnlockStore records achievement unlocks, a set per user
type UnlockStore interface {
	Has(userID, achievementID string) (bool, error)
	Add(unlock *models.UnlockedAchievement) error
	ListByUser(userID string) ([]models.UnlockedAchievement, error)
}

// CheckInStore holds daily check-ins keyed by (user, date)
type CheckInStore interface {
	ByUserAndDate(userID, date string) (*models.CheckIn, bool, error)
	ByID(id string) (*models.CheckIn, bool, error)
	ListByUser(userID string) ([]models.CheckIn, error)
	Save(checkIn *models.CheckIn) error
}

// ChallengeProgressStore holds daily challenge progress keyed by (user, date)
type ChallengeProgressStore interface {
	Get(userID, date string) (*models.UserChallengeProgress, bool, error)
	Save(prog *models.UserChallengeProgress) error
}

// TournamentStore holds tournaments with their embedded participant list
// and leaderboard projection
type TournamentStore interface {
	ByID(id string) (*models.Tournament, bool, error)
	List() ([]models.Tournament, error)
	Save(t *models.Tournament) error
}

// ReferralStore holds referrals and issued referral codes
type ReferralStore interface {
	ByID(id string) (*models.Referral, bool, error)
	ListByReferrer(userID string) ([]models.Referral, error)
	Save(ref *models.Referral) error
	SaveCode(code *models.ReferralCode) error
	CodeOwner(code string) (string, bool, error)
}

// ToggleStore holds the global feature toggle set
type ToggleStore interface {
	Get(name string) (*models.FeatureToggle, bool, error)
	All() ([]models.FeatureToggle, error)
	Save(toggle *models.FeatureToggle) error
}
