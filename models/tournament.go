package models

import (
	"time"
)

// Tournament types and statuses
const (
	TournamentWeekly   = "weekly"
	TournamentMonthly  = "monthly"
	TournamentSeasonal = "seasonal"

	TournamentUpcoming  = "upcoming"
	TournamentActive    = "active"
	TournamentCompleted = "completed"
)

// Tournament represents a leaderboard-style writing competition.
// Status is derived from (now, StartDate, EndDate); the stored column is a
// cached projection refreshed on read and by the periodic sweep.
type Tournament struct {
	ID          string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Description string    `json:"description"`
	Type        string    `gorm:"not null" json:"type"`
	Status      string    `gorm:"default:'upcoming'" json:"status"`
	StartDate   time.Time `gorm:"not null" json:"start_date"`
	EndDate     time.Time `gorm:"not null" json:"end_date"`
	Prize       string    `json:"prize"`
	Rules       string    `json:"rules"`

	Participants []string           `gorm:"serializer:json" json:"participants"`
	Leaderboard  []LeaderboardEntry `gorm:"serializer:json" json:"leaderboard"`

	Timestamps

	// Calculated fields (not stored in DB)
	ParticipantCount int `json:"participant_count" gorm:"-"`
}

// LeaderboardEntry — a derived, re-sortable projection row. Ranks are dense,
// 1..N, ties broken by input order.
type LeaderboardEntry struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Score    int64  `json:"score"`
	Rank     int    `json:"rank"`
}
