package postgres

import (
	"context"

	"domainshop/pkg/domain"
)

const (
	referralsTable = "referrals"
)

// InsertReferral appends a referral for userID. A missing user surfaces as
// ErrNotFound through the foreign key.
func (p *PgSQL) InsertReferral(ctx context.Context,
	userID domain.UserID,
	referredEmail string) (*domain.Referral, error) {
	var stored PgReferral
	if _, err := p.Builder.Insert(referralsTable).
		Rows(PgReferral{UserID: int64(userID), ReferredEmail: referredEmail}).
		Returning(&PgReferral{}).
		Executor().ScanStructContext(ctx, &stored); err != nil {
		return nil, mapError(err, "could not insert referral")
	}

	return stored.ToDomain(), nil
}
