package domain

import "time"

// UserID uniquely identifies a user.
type UserID int64

// User is a storefront customer created at signup.
type User struct {
	ID    UserID `json:"id"`
	Email string `json:"email"`
	// Domain is the domain the user signed up for.
	Domain string `json:"domain"`
	// PaymentCustomerRef is the payment provider's customer id.
	PaymentCustomerRef string `json:"stripe_customer_id"`
	// ReferralCode is the code the user shares with others.
	ReferralCode string `json:"referral_code"`

	CreatedAt time.Time `json:"created_at"`
}
