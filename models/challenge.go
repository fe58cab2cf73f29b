package models

import (
	"github.com/gosimple/slug"
)

// Challenge difficulties
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// DailyChallenge: static catalog entry, fixed per process
type DailyChallenge struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Reward      int64  `json:"reward"`
	Difficulty  string `json:"difficulty"`
}

// ChallengeStatus decorates a catalog entry with a user's completion state for today
type ChallengeStatus struct {
	DailyChallenge
	Completed bool `json:"completed"`
}

// UserChallengeProgress accumulates a user's challenge completions for one day,
// keyed by (user, date)
type UserChallengeProgress struct {
	ID                  string   `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID              string   `gorm:"not null;uniqueIndex:idx_challenge_user_day,priority:1" json:"user_id"`
	Date                string   `gorm:"not null;uniqueIndex:idx_challenge_user_day,priority:2" json:"date"`
	CompletedChallenges []string `gorm:"serializer:json" json:"completed_challenges"`
	DailyBonus          int64    `json:"daily_bonus" gorm:"default:0"`

	Timestamps
}

// DailyChallengeCatalog is the fixed set of challenges offered every day.
// IDs are derived from titles so they stay stable across restarts.
var DailyChallengeCatalog = buildDailyChallengeCatalog()

func buildDailyChallengeCatalog() []DailyChallenge {
	catalog := []DailyChallenge{
		{Title: "Morning Reflection", Description: "Write about your intentions for today", Icon: "🌅", Difficulty: DifficultyEasy, Reward: 10},
		{Title: "Gratitude Journal", Description: "List 3 things you're grateful for", Icon: "🙏", Difficulty: DifficultyEasy, Reward: 15},
		{Title: "Emotion Explorer", Description: "Describe your current emotions in detail", Icon: "😊", Difficulty: DifficultyMedium, Reward: 20},
		{Title: "100-Word Wonder", Description: "Write exactly 100+ words in one entry", Icon: "📝", Difficulty: DifficultyMedium, Reward: 25},
		{Title: "Growth Reflection", Description: "Write about a recent personal win", Icon: "🚀", Difficulty: DifficultyEasy, Reward: 15},
		{Title: "Creative Challenge", Description: "Use 5+ different emojis in your entry", Icon: "🎨", Difficulty: DifficultyMedium, Reward: 20},
		{Title: "Deep Dive", Description: "Write 300+ words exploring a topic", Icon: "🌊", Difficulty: DifficultyHard, Reward: 50},
		{Title: "Voice Entry", Description: "Record a voice journal entry", Icon: "🎤", Difficulty: DifficultyMedium, Reward: 25},
	}
	for i := range catalog {
		catalog[i].ID = slug.Make(catalog[i].Title)
	}
	return catalog
}

// ChallengeByID looks up a catalog entry.
func ChallengeByID(id string) (DailyChallenge, bool) {
	for _, c := range DailyChallengeCatalog {
		if c.ID == id {
			return c, true
		}
	}
	return DailyChallenge{}, false
}
