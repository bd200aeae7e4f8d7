package purchase

import (
	"context"
	"net/url"
	"strings"

	"domainshop/pkg/domain"
	"domainshop/pkg/logger"
	"domainshop/pkg/payment"
	"domainshop/pkg/serrors"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// sessionPlaceholder is substituted by the payment provider on redirect.
const sessionPlaceholder = "{CHECKOUT_SESSION_ID}"

// StartCheckout validates the request, makes sure the domain is still free and
// opens a hosted checkout session for it.
func (s *service) StartCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutOutcome, error) {
	ctx, span := s.tracer.Start(ctx, "purchase.StartCheckout")
	defer span.End()

	attempt, err := validate(req.Email, req.Domain, req.Amount, s.options.Currency)
	if err != nil {
		return nil, s.reject(ctx, span, err)
	}
	span.SetAttributes(attribute.String("domain", attempt.Domain))
	ctx = logger.WithFields(ctx, zap.String("domain", attempt.Domain))

	base := strings.TrimRight(s.options.PublicBaseURL, "/")
	if base == "" {
		base = strings.TrimRight(req.BaseURL, "/")
	}
	if base == "" {
		return nil, serrors.With(serrors.ErrConfiguration, "no public base URL to return the buyer to")
	}

	if err := s.ensureAvailable(ctx, attempt.Domain); err != nil {
		return nil, s.reject(ctx, span, err)
	}

	success, cancel := redirectURLs(base, attempt)
	session, err := s.payments.CreateCheckoutSession(ctx, payment.CheckoutSessionRequest{
		AmountMinor:        MinorUnits(attempt.Amount, s.options.Currency),
		Currency:           s.options.Currency,
		CustomerEmail:      attempt.Email,
		ProductName:        "Domain: " + attempt.Domain,
		ProductDescription: "Claim your domain: " + attempt.Domain,
		SuccessURL:         success,
		CancelURL:          cancel,
		Metadata:           map[string]string{"domain": attempt.Domain},
	})
	if err != nil {
		s.record(ctx, outcomeFailed)
		span.RecordError(err)
		logger.Error(ctx, "checkout session creation failed", zap.Error(err))

		return nil, serrors.Wrap(serrors.ErrPayment, err, "Failed to create checkout session.")
	}
	s.record(ctx, outcomeCheckoutStarted)

	return &CheckoutOutcome{SessionID: session.ID, URL: session.URL}, nil
}

// redirectURLs builds the success and cancel URLs of a checkout. The success
// URL echoes the purchase so the return leg can complete it.
func redirectURLs(base string, attempt *domain.PurchaseAttempt) (string, string) {
	q := url.Values{}
	q.Set("domain", attempt.Domain)
	q.Set("email", attempt.Email)
	q.Set("amount", attempt.Amount.String())

	success := base + "/success?session_id=" + sessionPlaceholder + "&" + q.Encode()
	cancel := base + "/pay?" + url.Values{"domain": {attempt.Domain}}.Encode()

	return success, cancel
}
