// Package notifier defines the events the storefront announces to external
// automation and the fire-and-forget interface used to announce them.
package notifier

import (
	"context"
	"encoding/json"
	"time"

	"domainshop/pkg/domain"
)

const (
	EventPayment  = "payment"
	EventReferral = "referral"
)

// PaymentEvent summarizes a paid purchase.
type PaymentEvent struct {
	Event         string                     `json:"event"`
	Email         string                     `json:"email"`
	Domain        string                     `json:"domain"`
	Amount        json.Number                `json:"amount"`
	Timestamp     time.Time                  `json:"timestamp"`
	PaymentIntent string                     `json:"payment_intent"`
	OpenSRSResult *domain.RegistrationResult `json:"opensrs_result"`
	Status        string                     `json:"status"`
}

// ReferralEvent announces a tracked referral.
type ReferralEvent struct {
	Event         string            `json:"event"`
	ReferralID    domain.ReferralID `json:"referralId"`
	UserID        domain.UserID     `json:"userId"`
	ReferredEmail string            `json:"referredEmail"`
	Message       string            `json:"message"`
}

// Notifier hands events off for delivery. Calls never block on delivery and
// never report delivery failures; those are logged by the implementation.
//
//go:generate mockgen -package mocknotifier -source=interface.go -destination=mock/mocknotifier.go *
type Notifier interface {
	NotifyPayment(ctx context.Context, event PaymentEvent)
	NotifyReferral(ctx context.Context, event ReferralEvent)
}
