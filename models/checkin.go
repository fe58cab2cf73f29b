package models

import "time"

// CheckIn is a user's daily accountability record. At most one exists per
// user per calendar day; Date is the day key in YYYY-MM-DD form.
type CheckIn struct {
	ID             string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID         string    `gorm:"not null;uniqueIndex:idx_checkin_user_day,priority:1" json:"user_id"`
	Date           string    `gorm:"not null;uniqueIndex:idx_checkin_user_day,priority:2" json:"date"`
	Completed      bool      `json:"completed" gorm:"default:false"`
	JournalWritten bool      `json:"journal_written" gorm:"default:false"`
	ReflectionText string    `json:"reflection_text" gorm:"type:text"`
	Badge          string    `json:"badge,omitempty"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
}
