package models

import (
	"time"
)

// Achievement categories
const (
	CategoryMilestone   = "milestone"
	CategoryStreak      = "streak"
	CategorySocial      = "social"
	CategoryWriting     = "writing"
	CategoryConsistency = "consistency"
)

// AchievementDefinition: static catalog entry, read-only after process start
type AchievementDefinition struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Category    string `json:"category"`
	Requirement int64  `json:"requirement"`
}

// UnlockedAchievement: awarded instance, created exactly once per user per achievement
type UnlockedAchievement struct {
	ID            string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID        string    `gorm:"not null;uniqueIndex:idx_user_achievement,priority:1" json:"user_id"`
	AchievementID string    `gorm:"not null;uniqueIndex:idx_user_achievement,priority:2" json:"achievement_id"`
	UnlockedAt    time.Time `gorm:"autoCreateTime" json:"unlocked_at"`
}

// AchievementStatus decorates a catalog entry with a user's unlock state
type AchievementStatus struct {
	AchievementDefinition
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}

// Achievements is the full catalog. Each entry gates on the ledger counter
// implied by its category (milestone → entries, writing → words, streak and
// consistency → current streak, social → followers).
var Achievements = []AchievementDefinition{
	{ID: "first_entry", Name: "First Words", Description: "Write your first journal entry", Icon: "✍️", Category: CategoryMilestone, Requirement: 1},
	{ID: "five_entries", Name: "Getting Started", Description: "Write 5 journal entries", Icon: "📝", Category: CategoryMilestone, Requirement: 5},
	{ID: "fifty_entries", Name: "Dedicated Journaler", Description: "Write 50 journal entries", Icon: "📚", Category: CategoryMilestone, Requirement: 50},
	{ID: "hundred_entries", Name: "Century Club", Description: "Write 100 journal entries", Icon: "💯", Category: CategoryMilestone, Requirement: 100},
	{ID: "thousand_words", Name: "Wordy", Description: "Write 1,000 total words", Icon: "📖", Category: CategoryWriting, Requirement: 1000},
	{ID: "ten_thousand_words", Name: "Prolific Writer", Description: "Write 10,000 total words", Icon: "🖊️", Category: CategoryWriting, Requirement: 10000},
	{ID: "seven_day_streak", Name: "Week Warrior", Description: "Maintain a 7-day streak", Icon: "🔥", Category: CategoryStreak, Requirement: 7},
	{ID: "thirty_day_streak", Name: "Streak Master", Description: "Maintain a 30-day streak", Icon: "🌟", Category: CategoryStreak, Requirement: 30},
	{ID: "hundred_day_streak", Name: "Legendary Streaker", Description: "Maintain a 100-day streak", Icon: "👑", Category: CategoryStreak, Requirement: 100},
	{ID: "ten_followers", Name: "Popular", Description: "Get 10 followers", Icon: "👥", Category: CategorySocial, Requirement: 10},
	{ID: "fifty_followers", Name: "Influencer", Description: "Get 50 followers", Icon: "⭐", Category: CategorySocial, Requirement: 50},
	{ID: "daily_writer", Name: "Daily Habit", Description: "Journal every day for a week", Icon: "📅", Category: CategoryConsistency, Requirement: 7},
}
