package models

import "time"

// Engagement event types
const (
	EventLevelUp             = "level_up"
	EventAchievementUnlocked = "achievement_unlocked"
	EventStreakMilestone     = "streak_milestone"
	EventChallengeCompleted  = "challenge_completed"
	EventReferralBonus       = "referral_bonus"
)

// EngagementEvent is a derived fact returned to the caller when a tracker
// mutation crosses a threshold. The caller owns persistence and any
// user-visible notification.
type EngagementEvent struct {
	Type    string                 `json:"type"`
	UserID  string                 `json:"user_id"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data,omitempty"`
	At      time.Time              `json:"at"`
}
