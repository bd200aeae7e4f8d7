package account

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"domainshop/internal/notifier"
	"domainshop/internal/purchase"
	"domainshop/pkg/domain"
	"domainshop/pkg/logger"
	"domainshop/pkg/payment"
	"domainshop/pkg/serrors"
	"domainshop/pkg/storage"

	"go.uber.org/zap"
)

const referralTracked = "Referral tracked!"

// service is the concrete implementation of the Service interface.
type service struct {
	storage  storage.Storage
	payments payment.Provider
	notifier notifier.Notifier
}

// New returns a Service persisting to st, creating payment customers through
// payments and announcing referrals through n.
func New(st storage.Storage, payments payment.Provider, n notifier.Notifier) Service {
	return &service{storage: st, payments: payments, notifier: n}
}

// Signup creates the user and its payment customer. An email that is already
// registered yields serrors.ErrConflict before the customer is created.
func (s *service) Signup(ctx context.Context, req SignupRequest) (*domain.User, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || strings.TrimSpace(req.Domain) == "" {
		v := &serrors.ValidationError{}
		if email == "" {
			v.Add("email", "is required")
		}
		if strings.TrimSpace(req.Domain) == "" {
			v.Add("domain", "is required")
		}

		return nil, serrors.Validation(v, "Email and domain are required.")
	}

	invalid := &serrors.ValidationError{}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		invalid.Add("email", "is not a valid email address")
	}
	name, err := purchase.NormalizeDomain(req.Domain)
	if err != nil {
		invalid.Add("domain", err.Error())
	}
	if err := serrors.Validation(invalid, "Invalid email or domain."); err != nil {
		return nil, err
	}

	existing, err := s.storage.UserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("could not look up user: %w", err)
	}
	if existing != nil {
		return nil, serrors.With(serrors.ErrConflict, "A user with this email already exists.")
	}

	code := strings.TrimSpace(req.ReferralCode)
	if code == "" {
		if code, err = NewReferralCode(); err != nil {
			return nil, serrors.Wrap(serrors.ErrInternal, err, "Referral code generation failed.")
		}
	}

	customer, err := s.payments.CreateCustomer(ctx, email)
	if err != nil {
		logger.Error(ctx, "could not create payment customer", zap.Error(err))

		return nil, serrors.Wrap(serrors.ErrPayment, err, "Stripe customer creation failed.")
	}

	user, err := s.storage.InsertUser(ctx, domain.User{
		Email:              email,
		Domain:             name,
		PaymentCustomerRef: customer,
		ReferralCode:       code,
	})
	switch {
	case errors.Is(err, serrors.ErrConflict):
		return nil, serrors.Wrap(serrors.ErrConflict, err, "A user with this email already exists.")
	case err != nil:
		logger.Error(ctx, "could not insert user", zap.Error(err), zap.String("customer", customer))

		return nil, serrors.Wrap(serrors.ErrPersistence, err, "User creation failed.")
	}

	return user, nil
}

// TrackReferral appends a referral for an existing user and announces it once
// stored.
func (s *service) TrackReferral(ctx context.Context,
	userID domain.UserID,
	referredEmail string) (*domain.Referral, error) {
	referredEmail = strings.TrimSpace(referredEmail)
	v := &serrors.ValidationError{}
	if userID <= 0 {
		v.Add("userId", "is required")
	}
	if referredEmail == "" {
		v.Add("referredEmail", "is required")
	}
	if err := serrors.Validation(v, "userId and referredEmail are required."); err != nil {
		return nil, err
	}

	var referral *domain.Referral
	if err := s.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		user, err := tx.UserByID(ctx, userID)
		if err != nil {
			return fmt.Errorf("could not get user: %w", err)
		}
		if user == nil {
			return serrors.With(serrors.ErrNotFound, "User not found.")
		}

		referral, err = tx.InsertReferral(ctx, userID, referredEmail)
		if err != nil {
			return fmt.Errorf("could not insert referral: %w", err)
		}

		return nil
	}); err != nil {
		if kind := serrors.KindOf(err); kind == serrors.ErrNotFound || kind == serrors.ErrBadRequest {
			return nil, err
		}

		return nil, serrors.Wrap(serrors.ErrPersistence, err, "Referral tracking failed.")
	}

	s.notifier.NotifyReferral(ctx, notifier.ReferralEvent{
		Event:         notifier.EventReferral,
		ReferralID:    referral.ID,
		UserID:        referral.UserID,
		ReferredEmail: referral.ReferredEmail,
		Message:       referralTracked,
	})

	return referral, nil
}

// User finds a user by email, or by id when no email is given.
func (s *service) User(ctx context.Context, lookup Lookup) (*domain.User, error) {
	var (
		user *domain.User
		err  error
	)
	switch email := strings.TrimSpace(lookup.Email); {
	case email != "":
		user, err = s.storage.UserByEmail(ctx, email)
	case lookup.ID != nil:
		user, err = s.storage.UserByID(ctx, *lookup.ID)
	default:
		return nil, serrors.With(serrors.ErrBadRequest, "Provide email or id.")
	}
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrPersistence, err, "could not get user")
	}
	if user == nil {
		return nil, serrors.With(serrors.ErrNotFound, "User not found.")
	}

	return user, nil
}
