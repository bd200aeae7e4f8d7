// Package stripepay provides a payment.Provider backed by the Stripe API.
package stripepay

import (
	"context"
	"errors"
	"net/http"
	"time"

	"domainshop/pkg/logger"
	"domainshop/pkg/metrics"
	"domainshop/pkg/payment"
	"domainshop/pkg/serrors"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"go.uber.org/zap"
)

// DefaultTimeout bounds a single Stripe call.
const DefaultTimeout = 20 * time.Second

// Options configures a Client.
type Options struct {
	SecretKey string
	// APIURL overrides the Stripe API base URL. Empty means api.stripe.com.
	APIURL  string
	Timeout time.Duration
	Metrics *metrics.Outbound
}

// Client charges through Stripe and fulfills the payment.Provider interface.
// It is safe for concurrent use.
type Client struct {
	api     *client.API
	timeout time.Duration
	metrics *metrics.Outbound
}

// Ensure Client conforms to the payment.Provider interface at compile time.
var _ payment.Provider = (*Client)(nil)

// New constructs a Client. Requests go through httpClient and are never
// retried by the SDK.
func New(httpClient *http.Client, opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	cfg := &stripe.BackendConfig{
		HTTPClient:        httpClient,
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	}
	if opts.APIURL != "" {
		cfg.URL = stripe.String(opts.APIURL)
	}
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, cfg)

	return &Client{
		api: client.New(opts.SecretKey, &stripe.Backends{
			API:     backend,
			Connect: backend,
			Uploads: backend,
		}),
		timeout: opts.Timeout,
		metrics: opts.Metrics,
	}
}

// providerError wraps err as ErrPayment carrying Stripe's message when one is
// available.
func providerError(err error) error {
	var se *stripe.Error
	if errors.As(err, &se) && se.Msg != "" {
		return serrors.Wrap(serrors.ErrPayment, err, "%s", se.Msg)
	}

	return serrors.Wrap(serrors.ErrPayment, err, "%s", err.Error())
}

func (c *Client) observe(operation string, err error, start time.Time) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	c.metrics.Observe(operation, outcome, time.Since(start))
}

// CreatePaymentIntent creates a PaymentIntent for the request.
func (c *Client) CreatePaymentIntent(ctx context.Context, req payment.PaymentIntentRequest) (*payment.PaymentIntent, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	start := time.Now()

	params := &stripe.PaymentIntentParams{
		Amount:       stripe.Int64(req.AmountMinor),
		Currency:     stripe.String(req.Currency),
		ReceiptEmail: stripe.String(req.ReceiptEmail),
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := c.api.PaymentIntents.New(params)
	c.observe("payment_intent", err, start)
	if err != nil {
		logger.Error(ctx, "could not create payment intent", zap.Error(err))

		return nil, providerError(err)
	}

	return &payment.PaymentIntent{ID: pi.ID, Status: string(pi.Status)}, nil
}

// CreateCheckoutSession creates a hosted card checkout in payment mode.
func (c *Client) CreateCheckoutSession(ctx context.Context,
	req payment.CheckoutSessionRequest) (*payment.CheckoutSession, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	start := time.Now()

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		CustomerEmail:      stripe.String(req.CustomerEmail),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(req.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(req.ProductName),
						Description: stripe.String(req.ProductDescription),
					},
					UnitAmount: stripe.Int64(req.AmountMinor),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
	}
	params.Context = ctx
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	s, err := c.api.CheckoutSessions.New(params)
	c.observe("checkout_session", err, start)
	if err != nil {
		logger.Error(ctx, "could not create checkout session", zap.Error(err))

		return nil, providerError(err)
	}

	return toSession(s), nil
}

// CheckoutSession retrieves the session with id.
func (c *Client) CheckoutSession(ctx context.Context, id string) (*payment.CheckoutSession, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	start := time.Now()

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := c.api.CheckoutSessions.Get(id, params)
	c.observe("checkout_session_get", err, start)
	if err != nil {
		var se *stripe.Error
		if errors.As(err, &se) && se.HTTPStatusCode == http.StatusNotFound {
			return nil, serrors.Wrap(serrors.ErrNotFound, err, "checkout session not found")
		}
		logger.Error(ctx, "could not retrieve checkout session", zap.Error(err))

		return nil, providerError(err)
	}

	return toSession(s), nil
}

// CreateCustomer creates a Stripe customer for email.
func (c *Client) CreateCustomer(ctx context.Context, email string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	start := time.Now()

	params := &stripe.CustomerParams{Email: stripe.String(email)}
	params.Context = ctx

	cus, err := c.api.Customers.New(params)
	c.observe("customer", err, start)
	if err != nil {
		logger.Error(ctx, "could not create customer", zap.Error(err))

		return "", providerError(err)
	}

	return cus.ID, nil
}

func toSession(s *stripe.CheckoutSession) *payment.CheckoutSession {
	out := &payment.CheckoutSession{
		ID:            s.ID,
		URL:           s.URL,
		PaymentStatus: string(s.PaymentStatus),
	}
	if s.PaymentIntent != nil {
		out.PaymentIntentID = s.PaymentIntent.ID
	}

	return out
}
