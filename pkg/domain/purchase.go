package domain

import (
	"github.com/shopspring/decimal"
)

// PurchaseState is a step of the purchase flow.
type PurchaseState string

const (
	PurchaseStateValidated          PurchaseState = "VALIDATED"
	PurchaseStatePaymentConfirmed   PurchaseState = "PAYMENT_CONFIRMED"
	PurchaseStateDomainRegistered   PurchaseState = "DOMAIN_REGISTERED"
	PurchaseStateRegistrationFailed PurchaseState = "REGISTRATION_FAILED"
	PurchaseStateNotified           PurchaseState = "NOTIFIED"
	PurchaseStateDone               PurchaseState = "DONE"
	// PurchaseStateRejected ends a purchase before any money moved.
	PurchaseStateRejected PurchaseState = "REJECTED"
	// PurchaseStateFailed ends a purchase whose payment did not go through.
	PurchaseStateFailed PurchaseState = "FAILED"
)

// Payment statuses reported by the payment provider that the flow acts on.
const (
	PaymentStatusSucceeded             = "succeeded"
	PaymentStatusRequiresPaymentMethod = "requires_payment_method"
	PaymentStatusPaid                  = "paid"
)

// PurchaseAttempt is the state of one purchase for the duration of a request.
type PurchaseAttempt struct {
	Email  string
	Domain string
	Amount decimal.Decimal
	// PaymentRef is the payment intent id once payment was confirmed.
	PaymentRef   string
	Registration *RegistrationResult
	// Status is the payment provider's status string.
	Status string
	State  PurchaseState
}

// Advance moves the attempt to state.
func (p *PurchaseAttempt) Advance(state PurchaseState) {
	p.State = state
}
