// Package account manages storefront users and the referrals they bring in.
package account

import (
	"context"

	"domainshop/pkg/domain"
)

// SignupRequest creates a user. ReferralCode is generated when empty.
type SignupRequest struct {
	Email        string
	Domain       string
	ReferralCode string
}

// Lookup selects a user by Email or, when Email is empty, by ID.
type Lookup struct {
	Email string
	ID    *domain.UserID
}

//go:generate mockgen -package mockaccount -source=interface.go -destination=mock/mockaccount.go *
type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*domain.User, error)
	// TrackReferral records that userID referred referredEmail and announces it.
	TrackReferral(ctx context.Context, userID domain.UserID, referredEmail string) (*domain.Referral, error)
	User(ctx context.Context, lookup Lookup) (*domain.User, error)
}
