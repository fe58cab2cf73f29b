package models

import (
	"time"

	"gorm.io/gorm"
)

// UserProgress tracks cumulative journaling activity for each user (denormalized for performance)
type UserProgress struct {
	ID     string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID string `gorm:"uniqueIndex;not null" json:"user_id"` // links to auth service

	// Activity counters — only ever increase (administrative resets bypass the engine)
	TotalEntries   int64 `json:"total_entries" gorm:"default:0"`
	TotalWords     int64 `json:"total_words" gorm:"default:0"`
	TotalFollowers int64 `json:"total_followers" gorm:"default:0"`

	// Streak state, maintained by the streak tracker
	CurrentStreak int `json:"current_streak" gorm:"default:0"`
	LongestStreak int `json:"longest_streak" gorm:"default:0"`

	// Core progression
	XP    int64 `json:"xp" gorm:"default:0"`
	Level int   `json:"level" gorm:"default:1"` // step function of TotalEntries, 1–8

	// Milestones
	LastLevelUpAt *time.Time `json:"last_level_up_at,omitempty"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
