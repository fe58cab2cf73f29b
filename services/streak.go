package services

import (
	"fmt"
	"log"
	"sort"
	"time"

	"journal-engagement-system/models"
	"journal-engagement-system/store"

	"github.com/google/uuid"
)

// Streak milestones. Lookup is a pure function of the streak value; callers
// de-duplicate by only consulting it when the streak increased.
var streakMilestones = map[int]string{
	7:   "🔥 7-day streak! You're building a real habit.",
	14:  "⚡ Two full weeks of journaling. Keep the chain going!",
	30:  "👑 30 days straight — you're a streak master!",
	60:  "💎 60 days! Your consistency is remarkable.",
	100: "🏆 100-day streak. Legendary.",
}

// MilestoneMessage returns the celebratory message for a streak value, if any.
func MilestoneMessage(streak int) (string, bool) {
	msg, ok := streakMilestones[streak]
	return msg, ok
}

// ProgressMilestone is a one-time celebration over ledger counters
type ProgressMilestone struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Type      string `json:"type"` // words, streak, entries
	Threshold int64  `json:"threshold"`
	Icon      string `json:"icon"`
	Message   string `json:"message"`
}

var progressMilestones = []ProgressMilestone{
	{ID: "100w", Title: "100-Word Entry", Type: "words", Threshold: 100, Icon: "📝", Message: "You've written 100 words!"},
	{ID: "500w", Title: "Epic Essay", Type: "words", Threshold: 500, Icon: "✍️", Message: "500 words - you're unstoppable!"},
	{ID: "1kw", Title: "Novelist", Type: "words", Threshold: 1000, Icon: "📚", Message: "1000 words and counting!"},
	{ID: "7day", Title: "Week Warrior", Type: "streak", Threshold: 7, Icon: "🔥", Message: "7-day streak!"},
	{ID: "30day", Title: "Monthly Master", Type: "streak", Threshold: 30, Icon: "👑", Message: "30-day streak!"},
	{ID: "100day", Title: "Century Club", Type: "streak", Threshold: 100, Icon: "🏆", Message: "100-day streak!"},
	{ID: "10entry", Title: "Decade", Type: "entries", Threshold: 10, Icon: "🎉", Message: "10 entries written!"},
	{ID: "100entry", Title: "Centennial", Type: "entries", Threshold: 100, Icon: "🌟", Message: "100 entries milestone!"},
}

type StreakService struct {
	Store       *store.Store
	Progression *ProgressionService

	// Now is swappable for tests that cross day boundaries
	Now func() time.Time
}

func NewStreakService(st *store.Store, progression *ProgressionService) *StreakService {
	return &StreakService{Store: st, Progression: progression, Now: time.Now}
}

// CheckIn creates today's check-in, or returns the existing one (idempotent
// per calendar day).
func (s *StreakService) CheckIn(userID string) (*models.CheckIn, error) {
	unlock := userLocks.Lock(userID)
	defer unlock()

	today := s.Now().Format(time.DateOnly)
	if existing, ok, err := s.Store.CheckIns.ByUserAndDate(userID, today); err != nil {
		return nil, err
	} else if ok {
		return existing, nil
	}

	checkIn := &models.CheckIn{
		ID:     uuid.NewString(),
		UserID: userID,
		Date:   today,
	}
	if err := s.Store.CheckIns.Save(checkIn); err != nil {
		return nil, err
	}
	return checkIn, nil
}

// CheckInResult reports a completion with the streak before and after, so
// callers can celebrate milestones only on increase.
type CheckInResult struct {
	Found        bool                     `json:"found"`
	CheckIn      *models.CheckIn          `json:"check_in,omitempty"`
	StreakBefore int                      `json:"streak_before"`
	StreakAfter  int                      `json:"streak_after"`
	Milestone    string                   `json:"milestone,omitempty"`
	Events       []models.EngagementEvent `json:"events,omitempty"`
}

// CompleteCheckIn marks a check-in complete. Unknown ids and repeat
// completions are safe no-ops.
func (s *StreakService) CompleteCheckIn(checkInID string, journalWritten bool, reflection string) (*CheckInResult, error) {
	checkIn, ok, err := s.Store.CheckIns.ByID(checkInID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &CheckInResult{Found: false}, nil
	}

	unlock := userLocks.Lock(checkIn.UserID)
	defer unlock()

	// Re-read under the lock; the first fetch only resolved the user id.
	checkIn, ok, err = s.Store.CheckIns.ByID(checkInID)
	if err != nil || !ok {
		return &CheckInResult{Found: ok}, err
	}
	if checkIn.Completed {
		streak, err := s.currentStreakLocked(checkIn.UserID)
		if err != nil {
			return nil, err
		}
		return &CheckInResult{Found: true, CheckIn: checkIn, StreakBefore: streak, StreakAfter: streak}, nil
	}

	before, err := s.currentStreakLocked(checkIn.UserID)
	if err != nil {
		return nil, err
	}

	checkIn.Completed = true
	checkIn.JournalWritten = journalWritten
	checkIn.ReflectionText = reflection
	if journalWritten {
		checkIn.Badge = "✅"
	}
	if err := s.Store.CheckIns.Save(checkIn); err != nil {
		return nil, err
	}

	after, err := s.currentStreakLocked(checkIn.UserID)
	if err != nil {
		return nil, err
	}
	if _, err := s.Progression.setStreakLocked(checkIn.UserID, after); err != nil {
		return nil, err
	}
	if _, err := s.Progression.awardXPLocked(checkIn.UserID, s.Progression.Weights.CheckInXP, "daily_check_in"); err != nil {
		return nil, err
	}

	result := &CheckInResult{Found: true, CheckIn: checkIn, StreakBefore: before, StreakAfter: after}
	if after > before {
		if msg, hit := MilestoneMessage(after); hit {
			result.Milestone = msg
			result.Events = append(result.Events, models.EngagementEvent{
				Type:    models.EventStreakMilestone,
				UserID:  checkIn.UserID,
				Message: msg,
				Data:    map[string]interface{}{"streak": after},
				At:      s.Now(),
			})
			log.Printf("🔥 Streak milestone: %s → %d days", checkIn.UserID, after)
		}
	}
	return result, nil
}

// CurrentStreak counts the leading contiguous run of completed,
// journal-written check-ins ordered by date descending. A missing day breaks
// the run even if completed entries exist before the gap.
func (s *StreakService) CurrentStreak(userID string) (int, error) {
	unlock := userLocks.Lock(userID)
	defer unlock()
	return s.currentStreakLocked(userID)
}

func (s *StreakService) currentStreakLocked(userID string) (int, error) {
	checkIns, err := s.Store.CheckIns.ListByUser(userID)
	if err != nil {
		return 0, err
	}
	return streakFrom(checkIns), nil
}

func streakFrom(checkIns []models.CheckIn) int {
	sort.Slice(checkIns, func(i, j int) bool {
		return checkIns[i].Date > checkIns[j].Date
	})

	streak := 0
	var prev time.Time
	for _, c := range checkIns {
		if !c.Completed || !c.JournalWritten {
			break
		}
		day, err := time.Parse(time.DateOnly, c.Date)
		if err != nil {
			break
		}
		if streak > 0 && !prev.AddDate(0, 0, -1).Equal(day) {
			break
		}
		streak++
		prev = day
	}
	return streak
}

// UserCheckIns lists a user's check-ins, most recent first.
func (s *StreakService) UserCheckIns(userID string) ([]models.CheckIn, error) {
	checkIns, err := s.Store.CheckIns.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	sort.Slice(checkIns, func(i, j int) bool {
		return checkIns[i].Date > checkIns[j].Date
	})
	return checkIns, nil
}

// AchievedMilestones returns every progress milestone the user's ledger has
// crossed. Pure lookup; the caller tracks which ones it already celebrated.
func (s *StreakService) AchievedMilestones(userID string) ([]ProgressMilestone, error) {
	prog, ok, err := s.Store.Progress.Get(userID)
	if err != nil || !ok {
		return nil, err
	}

	var achieved []ProgressMilestone
	for _, m := range progressMilestones {
		var counter int64
		switch m.Type {
		case "words":
			counter = prog.TotalWords
		case "streak":
			counter = int64(prog.LongestStreak)
		case "entries":
			counter = prog.TotalEntries
		}
		if counter >= m.Threshold {
			achieved = append(achieved, m)
		}
	}
	return achieved, nil
}

func init() {
	for i := 1; i < len(progressMilestones); i++ {
		for j := 0; j < i; j++ {
			if progressMilestones[i].ID == progressMilestones[j].ID {
				panic(fmt.Sprintf("streak: duplicate milestone id %s", progressMilestones[i].ID))
			}
		}
	}
}
