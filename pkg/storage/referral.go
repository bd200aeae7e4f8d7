package storage

import (
	"context"

	"domainshop/pkg/domain"
)

// ReferralStorage appends referrals.
type ReferralStorage interface {
	// InsertReferral records that userID referred referredEmail. An unknown
	// userID yields serrors.ErrNotFound.
	InsertReferral(ctx context.Context, userID domain.UserID, referredEmail string) (*domain.Referral, error)
}
