// Package purchase sequences a domain sale: validate the request, confirm
// payment, register the domain once and announce the result.
package purchase

import (
	"context"

	"domainshop/pkg/domain"
)

// Request is a direct purchase as posted by ShopCo or the storefront form.
type Request struct {
	Email  string
	Domain string
	// Amount is the decimal price in the currency's major unit, as typed.
	Amount string
	// WebhookKey is the caller's credential. Nil means none was presented.
	WebhookKey *string
}

// CheckoutRequest starts a hosted checkout.
type CheckoutRequest struct {
	Email  string
	Domain string
	Amount string
	// BaseURL is the public origin the buyer returns to. It is used when no
	// public base URL is configured.
	BaseURL string
}

// CheckoutOutcome points the buyer at the hosted checkout page.
type CheckoutOutcome struct {
	SessionID string
	URL       string
}

// CompleteRequest is the query a buyer returns with after a hosted checkout.
type CompleteRequest struct {
	SessionID string
	Domain    string
	Email     string
	Amount    string
}

// DomainCheck is the answer to a storefront availability lookup.
type DomainCheck struct {
	Available bool   `json:"available"`
	Domain    string `json:"domain"`
	Message   string `json:"message"`
	Error     string `json:"error,omitempty"`
}

//go:generate mockgen -package mockpurchase -source=interface.go -destination=mock/mockpurchase.go *
type Service interface {
	// Purchase charges the buyer and registers the domain. A registration
	// failure is reported on the returned attempt, not as an error.
	Purchase(ctx context.Context, req Request) (*domain.PurchaseAttempt, error)
	StartCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutOutcome, error)
	// CompleteCheckout registers the domain of a paid checkout session.
	CompleteCheckout(ctx context.Context, req CompleteRequest) (*domain.PurchaseAttempt, error)
	CheckDomain(ctx context.Context, rawDomain string) (*DomainCheck, error)
}
