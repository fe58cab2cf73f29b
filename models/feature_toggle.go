package models

// User segments a toggle can target
const (
	SegmentAll   = "all"
	SegmentFree  = "free"
	SegmentPro   = "pro"
	SegmentPower = "power"
	SegmentAdmin = "admin"
)

// FeatureToggle gates a feature per user segment and rollout percentage.
// Mutable by admin action only.
type FeatureToggle struct {
	Name              string `gorm:"primaryKey" json:"name"`
	Enabled           bool   `json:"enabled" gorm:"default:true"`
	UserSegment       string `json:"user_segment" gorm:"default:'all'"`
	RolloutPercentage int    `json:"rollout_percentage" gorm:"default:100"`
}

// DefaultFeatureNames seeds the toggle set at startup: everything on,
// segment "all", full rollout.
var DefaultFeatureNames = []string{
	"daily-challenges",
	"tournaments",
	"achievements",
	"email-reminders",
	"referrals",
	"leaderboards",
	"social-feed",
	"voice-journal",
	"ai-coaching",
	"extended-summaries",
}
