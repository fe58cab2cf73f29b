package services

import (
	"fmt"
	"log"
	"math"
	"time"

	"journal-engagement-system/models"
	"journal-engagement-system/store"
	"journal-engagement-system/utils"
)

// XPWeights define relative values (tunable via config/env later)
type XPWeights struct {
	EntryXP    int64
	CheckInXP  int64
	ReferralXP int64
}

var DefaultXPWeights = XPWeights{
	EntryXP:    10,
	CheckInXP:  5,
	ReferralXP: 50, // matches the referral bonus prompt count
}

// LevelThresholds: entries required to reach each level (index = level-1).
// Must be strictly increasing — validated at init, which is the only place
// this engine is allowed to fail loudly.
var LevelThresholds = []int64{0, 5, 10, 25, 50, 100, 200, 500}

var levelNames = []string{
	"Novice", "Beginner", "Explorer", "Journaler",
	"Dedicated", "Passionate", "Master", "Legend",
}

func init() {
	if len(LevelThresholds) != len(levelNames) {
		panic("progression: level threshold/name tables out of sync")
	}
	for i := 1; i < len(LevelThresholds); i++ {
		if LevelThresholds[i] <= LevelThresholds[i-1] {
			panic(fmt.Sprintf("progression: level thresholds not strictly increasing at index %d", i))
		}
	}
	seen := make(map[string]bool, len(models.Achievements))
	for _, def := range models.Achievements {
		if seen[def.ID] {
			panic("progression: duplicate achievement id " + def.ID)
		}
		seen[def.ID] = true
	}
}

// LevelForEntries returns the level (1..8) for a total entry count.
// Counters above the top threshold clamp to the final level.
func LevelForEntries(totalEntries int64) int {
	level := 1
	for i, threshold := range LevelThresholds {
		if totalEntries >= threshold {
			level = i + 1
		}
	}
	return level
}

// LevelName returns the rank string for a level, clamped to the table.
func LevelName(level int) string {
	if level < 1 {
		level = 1
	}
	if level > len(levelNames) {
		level = len(levelNames)
	}
	return levelNames[level-1]
}

// ProgressToNextLevel returns the surrounding thresholds and the percent
// progress between them, clamped to [0,100].
func ProgressToNextLevel(totalEntries int64) (current, next int64, progress int) {
	level := LevelForEntries(totalEntries)
	current = LevelThresholds[level-1]
	if level >= len(LevelThresholds) {
		return current, current, 100
	}
	next = LevelThresholds[level]
	pct := int(math.Round(float64(totalEntries-current) / float64(next-current) * 100))
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return current, next, pct
}

// userLocks serializes every user-keyed read-modify-write in this package so
// that increment-then-evaluate sequences observe a consistent snapshot.
var userLocks = utils.NewKeyedMutex()

// ActivityDelta is a raw activity fact. Negative values are ignored —
// ledger counters never decrease.
type ActivityDelta struct {
	Entries   int64 `json:"entries"`
	Words     int64 `json:"words"`
	Followers int64 `json:"followers"`
}

type ProgressionService struct {
	Store   *store.Store
	Weights XPWeights
}

func NewProgressionService(st *store.Store) *ProgressionService {
	return &ProgressionService{Store: st, Weights: DefaultXPWeights}
}

// RecordActivity applies an activity delta to the user's ledger, awards XP,
// and recomputes the level. Returns the updated ledger plus any level-up event.
func (s *ProgressionService) RecordActivity(userID string, delta ActivityDelta) (*models.UserProgress, []models.EngagementEvent, error) {
	unlock := userLocks.Lock(userID)
	defer unlock()
	return s.recordActivityLocked(userID, delta)
}

func (s *ProgressionService) recordActivityLocked(userID string, delta ActivityDelta) (*models.UserProgress, []models.EngagementEvent, error) {
	prog, err := s.Store.Progress.Ensure(userID)
	if err != nil {
		return nil, nil, err
	}

	prog.TotalEntries += clampNonNegative(delta.Entries)
	prog.TotalWords += clampNonNegative(delta.Words)
	prog.TotalFollowers += clampNonNegative(delta.Followers)
	if delta.Entries > 0 {
		prog.XP += delta.Entries * s.Weights.EntryXP
	}

	events := s.refreshLevelLocked(prog)
	if err := s.Store.Progress.Save(prog); err != nil {
		return nil, nil, err
	}
	return prog, events, nil
}

// refreshLevelLocked recomputes the level from TotalEntries. Level only moves up.
func (s *ProgressionService) refreshLevelLocked(prog *models.UserProgress) []models.EngagementEvent {
	newLevel := LevelForEntries(prog.TotalEntries)
	if newLevel <= prog.Level {
		return nil
	}
	prog.Level = newLevel
	now := time.Now()
	prog.LastLevelUpAt = &now
	log.Printf("🎮 Level up: %s → L%d (%s)", prog.UserID, newLevel, LevelName(newLevel))
	return []models.EngagementEvent{{
		Type:    models.EventLevelUp,
		UserID:  prog.UserID,
		Message: fmt.Sprintf("You reached level %d — %s!", newLevel, LevelName(newLevel)),
		Data:    map[string]interface{}{"level": newLevel, "level_name": LevelName(newLevel)},
		At:      now,
	}}
}

// AwardXP adds XP for an out-of-band reason (challenge reward, referral bonus).
func (s *ProgressionService) AwardXP(userID string, xp int64, reason string) (*models.UserProgress, error) {
	unlock := userLocks.Lock(userID)
	defer unlock()
	return s.awardXPLocked(userID, xp, reason)
}

func (s *ProgressionService) awardXPLocked(userID string, xp int64, reason string) (*models.UserProgress, error) {
	if xp <= 0 {
		return s.Store.Progress.Ensure(userID)
	}
	prog, err := s.Store.Progress.Ensure(userID)
	if err != nil {
		return nil, err
	}
	prog.XP += xp
	if err := s.Store.Progress.Save(prog); err != nil {
		return nil, err
	}
	log.Printf("🎮 XP awarded: %s +%d → %d (reason: %s)", userID, xp, prog.XP, reason)
	return prog, nil
}

// setStreakLocked updates the ledger's streak counters. Caller holds the
// user lock (the streak tracker drives this inside its own critical section).
func (s *ProgressionService) setStreakLocked(userID string, current int) (*models.UserProgress, error) {
	prog, err := s.Store.Progress.Ensure(userID)
	if err != nil {
		return nil, err
	}
	prog.CurrentStreak = current
	if current > prog.LongestStreak {
		prog.LongestStreak = current
	}
	if err := s.Store.Progress.Save(prog); err != nil {
		return nil, err
	}
	return prog, nil
}

// Progress returns the user's ledger, creating it on first read.
func (s *ProgressionService) Progress(userID string) (*models.UserProgress, error) {
	unlock := userLocks.Lock(userID)
	defer unlock()
	return s.Store.Progress.Ensure(userID)
}

// ProgressionStats is the dashboard snapshot derived from the ledger
type ProgressionStats struct {
	Level                 int    `json:"level"`
	LevelName             string `json:"level_name"`
	NextLevel             int    `json:"next_level"`
	NextLevelName         string `json:"next_level_name"`
	EntriesUntilNextLevel int64  `json:"entries_until_next_level"`
	ProgressToNextLevel   int    `json:"progress_to_next_level"`
	TotalProgress         int    `json:"total_progress"`
	XP                    int64  `json:"xp"`
}

// Stats derives the level dashboard for a user.
func (s *ProgressionService) Stats(userID string) (*ProgressionStats, error) {
	prog, err := s.Progress(userID)
	if err != nil {
		return nil, err
	}

	level := prog.Level
	_, next, pct := ProgressToNextLevel(prog.TotalEntries)
	until := next - prog.TotalEntries
	if until < 0 {
		until = 0
	}
	// At the top of the table the "next" level is the current one
	nextLevel := level + 1
	if nextLevel > len(LevelThresholds) {
		nextLevel = level
	}
	top := LevelThresholds[len(LevelThresholds)-1]
	total := int(math.Round(float64(prog.TotalEntries) / float64(top) * 100))
	if total > 100 {
		total = 100
	}

	return &ProgressionStats{
		Level:                 level,
		LevelName:             LevelName(level),
		NextLevel:             nextLevel,
		NextLevelName:         LevelName(nextLevel),
		EntriesUntilNextLevel: until,
		ProgressToNextLevel:   pct,
		TotalProgress:         total,
		XP:                    prog.XP,
	}, nil
}

func clampNonNegative(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
