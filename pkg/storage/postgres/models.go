package postgres

import (
	"database/sql"
	"time"

	"domainshop/pkg/domain"
)

type PgUser struct {
	ID               int64          `db:"id"                 goqu:"skipinsert"`
	Email            string         `db:"email"`
	Domain           string         `db:"domain"`
	StripeCustomerID sql.NullString `db:"stripe_customer_id"`
	ReferralCode     string         `db:"referral_code"`
	CreatedAt        time.Time      `db:"created_at"         goqu:"skipinsert"`
}

func (p *PgUser) ToDomain() *domain.User {
	return &domain.User{
		ID:                 domain.UserID(p.ID),
		Email:              p.Email,
		Domain:             p.Domain,
		PaymentCustomerRef: p.StripeCustomerID.String,
		ReferralCode:       p.ReferralCode,
		CreatedAt:          p.CreatedAt,
	}
}

func (p *PgUser) FromDomain(user domain.User) {
	*p = PgUser{
		ID:     int64(user.ID),
		Email:  user.Email,
		Domain: user.Domain,
		StripeCustomerID: sql.NullString{
			String: user.PaymentCustomerRef,
			Valid:  user.PaymentCustomerRef != "",
		},
		ReferralCode: user.ReferralCode,
		CreatedAt:    user.CreatedAt,
	}
}

type PgReferral struct {
	ID            int64     `db:"id"             goqu:"skipinsert"`
	UserID        int64     `db:"user_id"`
	ReferredEmail string    `db:"referred_email"`
	CreatedAt     time.Time `db:"created_at"     goqu:"skipinsert"`
}

func (p *PgReferral) ToDomain() *domain.Referral {
	return &domain.Referral{
		ID:            domain.ReferralID(p.ID),
		UserID:        domain.UserID(p.UserID),
		ReferredEmail: p.ReferredEmail,
		CreatedAt:     p.CreatedAt,
	}
}
