// Package payment defines the payment provider the storefront charges
// through: direct payment intents, hosted checkout sessions and customer
// records.
package payment

import "context"

// PaymentIntentRequest asks the provider to charge AmountMinor (in the
// currency's minor units) to the buyer behind ReceiptEmail.
type PaymentIntentRequest struct {
	AmountMinor  int64
	Currency     string
	ReceiptEmail string
	Metadata     map[string]string
}

// PaymentIntent is the provider's view of a charge.
type PaymentIntent struct {
	ID     string
	Status string
}

// CheckoutSessionRequest describes a hosted checkout for a single line item.
type CheckoutSessionRequest struct {
	AmountMinor        int64
	Currency           string
	CustomerEmail      string
	ProductName        string
	ProductDescription string
	// SuccessURL may contain the provider's {CHECKOUT_SESSION_ID} placeholder.
	SuccessURL string
	CancelURL  string
	Metadata   map[string]string
}

// CheckoutSession is a hosted checkout flow.
type CheckoutSession struct {
	ID string
	// URL is where the buyer is redirected to pay.
	URL             string
	PaymentStatus   string
	PaymentIntentID string
}

// Provider is a payment processor. Every error it returns carries the
// provider's own message.
//
//go:generate mockgen -package mockpayment -source=interface.go -destination=mock/mockpayment.go *
type Provider interface {
	CreatePaymentIntent(ctx context.Context, req PaymentIntentRequest) (*PaymentIntent, error)
	CreateCheckoutSession(ctx context.Context, req CheckoutSessionRequest) (*CheckoutSession, error)
	// CheckoutSession retrieves a previously created session by id.
	CheckoutSession(ctx context.Context, id string) (*CheckoutSession, error)
	// CreateCustomer creates a customer record and returns its id.
	CreateCustomer(ctx context.Context, email string) (string, error)
}
