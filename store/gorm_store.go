package store

import (
	"errors"

	"journal-engagement-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NewGorm returns a Store backed by the given GORM database. Callers run
// AutoMigrate for the engine models before use.
func NewGorm(db *gorm.DB) *Store {
	return &Store{
		Progress:    &gormProgress{db: db},
		Unlocks:     &gormUnlocks{db: db},
		CheckIns:    &gormCheckIns{db: db},
		Challenges:  &gormChallenges{db: db},
		Tournaments: &gormTournaments{db: db},
		Referrals:   &gormReferrals{db: db},
		Toggles:     &gormToggles{db: db},
	}
}

// Migrate runs AutoMigrate for every engine model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.UserProgress{},
		&models.UnlockedAchievement{},
		&models.CheckIn{},
		&models.UserChallengeProgress{},
		&models.Tournament{},
		&models.Referral{},
		&models.ReferralCode{},
		&models.FeatureToggle{},
	)
}

type gormProgress struct{ db *gorm.DB }

func (s *gormProgress) Ensure(userID string) (*models.UserProgress, error) {
	var prog models.UserProgress
	err := s.db.Where("user_id = ?", userID).First(&prog).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		prog = models.UserProgress{ID: uuid.NewString(), UserID: userID, Level: 1}
		if err := s.db.Create(&prog).Error; err != nil {
			return nil, err
		}
		return &prog, nil
	}
	if err != nil {
		return nil, err
	}
	return &prog, nil
}

func (s *gormProgress) Get(userID string) (*models.UserProgress, bool, error) {
	var prog models.UserProgress
	err := s.db.Where("user_id = ?", userID).First(&prog).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &prog, true, nil
}

func (s *gormProgress) Save(prog *models.UserProgress) error {
	return s.db.Save(prog).Error
}

type gormUnlocks struct{ db *gorm.DB }

func (s *gormUnlocks) Has(userID, achievementID string) (bool, error) {
	var count int64
	err := s.db.Model(&models.UnlockedAchievement{}).
		Where("user_id = ? AND achievement_id = ?", userID, achievementID).
		Count(&count).Error
	return count > 0, err
}

func (s *gormUnlocks) Add(unlock *models.UnlockedAchievement) error {
	return s.db.Create(unlock).Error
}

func (s *gormUnlocks) ListByUser(userID string) ([]models.UnlockedAchievement, error) {
	var unlocks []models.UnlockedAchievement
	err := s.db.Where("user_id = ?", userID).Order("unlocked_at ASC").Find(&unlocks).Error
	return unlocks, err
}

type gormCheckIns struct{ db *gorm.DB }

func (s *gormCheckIns) ByUserAndDate(userID, date string) (*models.CheckIn, bool, error) {
	var c models.CheckIn
	err := s.db.Where("user_id = ? AND date = ?", userID, date).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &c, true, nil
}

func (s *gormCheckIns) ByID(id string) (*models.CheckIn, bool, error) {
	var c models.CheckIn
	err := s.db.Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &c, true, nil
}

func (s *gormCheckIns) ListByUser(userID string) ([]models.CheckIn, error) {
	var checkIns []models.CheckIn
	err := s.db.Where("user_id = ?", userID).Order("date DESC").Find(&checkIns).Error
	return checkIns, err
}

func (s *gormCheckIns) Save(checkIn *models.CheckIn) error {
	return s.db.Save(checkIn).Error
}

type gormChallenges struct{ db *gorm.DB }

func (s *gormChallenges) Get(userID, date string) (*models.UserChallengeProgress, bool, error) {
	var prog models.UserChallengeProgress
	err := s.db.Where("user_id = ? AND date = ?", userID, date).First(&prog).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &prog, true, nil
}

func (s *gormChallenges) Save(prog *models.UserChallengeProgress) error {
	return s.db.Save(prog).Error
}

type gormTournaments struct{ db *gorm.DB }

func (s *gormTournaments) ByID(id string) (*models.Tournament, bool, error) {
	var t models.Tournament
	err := s.db.Where("id = ?", id).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &t, true, nil
}

func (s *gormTournaments) List() ([]models.Tournament, error) {
	var tournaments []models.Tournament
	err := s.db.Order("start_date ASC").Find(&tournaments).Error
	return tournaments, err
}

func (s *gormTournaments) Save(t *models.Tournament) error {
	return s.db.Save(t).Error
}

type gormReferrals struct{ db *gorm.DB }

func (s *gormReferrals) ByID(id string) (*models.Referral, bool, error) {
	var r models.Referral
	err := s.db.Where("id = ?", id).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &r, true, nil
}

func (s *gormReferrals) ListByReferrer(userID string) ([]models.Referral, error) {
	var refs []models.Referral
	err := s.db.Where("referrer_id = ?", userID).Order("created_at DESC").Find(&refs).Error
	return refs, err
}

func (s *gormReferrals) Save(ref *models.Referral) error {
	return s.db.Save(ref).Error
}

func (s *gormReferrals) SaveCode(code *models.ReferralCode) error {
	return s.db.Create(code).Error
}

func (s *gormReferrals) CodeOwner(code string) (string, bool, error) {
	var rc models.ReferralCode
	err := s.db.Where("code = ?", code).First(&rc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return rc.UserID, true, nil
}

type gormToggles struct{ db *gorm.DB }

func (s *gormToggles) Get(name string) (*models.FeatureToggle, bool, error) {
	var t models.FeatureToggle
	err := s.db.Where("name = ?", name).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &t, true, nil
}

func (s *gormToggles) All() ([]models.FeatureToggle, error) {
	var toggles []models.FeatureToggle
	err := s.db.Order("name ASC").Find(&toggles).Error
	return toggles, err
}

func (s *gormToggles) Save(toggle *models.FeatureToggle) error {
	return s.db.Save(toggle).Error
}
