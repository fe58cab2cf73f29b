package models

import "time"

// Referral tracks a referred signup and its one-time bonus.
// CompletedAt unset = pending; completion is terminal.
type Referral struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	ReferrerID     string `gorm:"index;not null" json:"referrer_id"`
	ReferredUserID string `gorm:"index;not null" json:"referred_user_id"`

	ReferralCode        string     `gorm:"not null" json:"referral_code"`
	BonusPromptsAwarded int64      `json:"bonus_prompts_awarded" gorm:"default:0"`
	CreatedAt           time.Time  `json:"created_at" gorm:"autoCreateTime"`
	CompletedAt         *time.Time `json:"completed_at,omitempty"`
}

// ReferralCode binds an issued code to the issuing user
type ReferralCode struct {
	Code      string    `gorm:"primaryKey" json:"code"`
	UserID    string    `gorm:"index;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// ReferralStats summarizes a referrer's standing
type ReferralStats struct {
	TotalReferrals     int    `json:"total_referrals"`
	CompletedReferrals int    `json:"completed_referrals"`
	TotalBonusPrompts  int64  `json:"total_bonus_prompts"`
	ReferralLevel      string `json:"referral_level"` // Advocate, Ambassador, VIP
}
