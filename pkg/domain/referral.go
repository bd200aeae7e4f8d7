package domain

import "time"

// ReferralID uniquely identifies a referral.
type ReferralID int64

// Referral records that a user referred someone. Referrals are append-only.
type Referral struct {
	ID            ReferralID `json:"id"`
	UserID        UserID     `json:"userId"`
	ReferredEmail string     `json:"referredEmail"`
	CreatedAt     time.Time  `json:"createdAt"`
}
