package purchase

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"domainshop/internal/config"
	"domainshop/internal/notifier"
	"domainshop/pkg/domain"
	"domainshop/pkg/logger"
	"domainshop/pkg/payment"
	"domainshop/pkg/registrar"
	"domainshop/pkg/serrors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const instrumentation = "domainshop/internal/purchase"

// outcome labels of the purchase.outcomes counter
const (
	outcomeRejected           = "rejected"
	outcomeFailed             = "failed"
	outcomeRegistered         = "registered"
	outcomeRegistrationFailed = "registration_failed"
	outcomeCheckoutStarted    = "checkout_started"
)

// Options configure the purchase flow. They are usually derived from the
// application configuration with NewOptions.
type Options struct {
	// ShopcoKey is the key ShopCo must present. A caller presenting any key
	// while ShopcoKey is empty is refused.
	ShopcoKey string
	// Currency is the ISO 4217 code, lower-case, every charge is made in.
	Currency string
	// PublicBaseURL is the origin used in checkout redirect URLs. Empty falls
	// back to the origin of the incoming request.
	PublicBaseURL string

	// TracerProvider and MeterProvider default to the otel globals.
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		ShopcoKey:     cfg.Webhook.ShopcoKey,
		Currency:      strings.ToLower(cfg.Payment.Currency),
		PublicBaseURL: cfg.HTTP.PublicBaseURL,
	}
}

// service is the concrete implementation of the Service interface.
type service struct {
	options   Options
	registrar registrar.Client
	payments  payment.Provider
	notifier  notifier.Notifier

	tracer   trace.Tracer
	outcomes metric.Int64Counter
	now      func() time.Time
}

// New returns a Service charging through payments, registering through reg
// and announcing purchases through n.
func New(reg registrar.Client, payments payment.Provider, n notifier.Notifier, opts Options) Service {
	if opts.Currency == "" {
		opts.Currency = "usd"
	}
	if opts.TracerProvider == nil {
		opts.TracerProvider = otel.GetTracerProvider()
	}
	if opts.MeterProvider == nil {
		opts.MeterProvider = otel.GetMeterProvider()
	}

	outcomes, err := opts.MeterProvider.Meter(instrumentation).Int64Counter("purchase.outcomes",
		metric.WithDescription("Purchase flows by terminal outcome."))
	if err != nil {
		outcomes = noop.Int64Counter{}
	}

	return &service{
		options:   opts,
		registrar: reg,
		payments:  payments,
		notifier:  n,
		tracer:    opts.TracerProvider.Tracer(instrumentation),
		outcomes:  outcomes,
		now:       time.Now,
	}
}

// Purchase runs the direct purchase flow: authenticate, validate, check
// availability, create the payment intent, register and notify.
func (s *service) Purchase(ctx context.Context, req Request) (*domain.PurchaseAttempt, error) {
	ctx, span := s.tracer.Start(ctx, "purchase.Purchase")
	defer span.End()

	if err := s.authenticate(req.WebhookKey); err != nil {
		return nil, s.reject(ctx, span, err)
	}

	attempt, err := validate(req.Email, req.Domain, req.Amount, s.options.Currency)
	if err != nil {
		return nil, s.reject(ctx, span, err)
	}
	span.SetAttributes(attribute.String("domain", attempt.Domain))
	ctx = logger.WithFields(ctx, zap.String("domain", attempt.Domain))

	if err := s.ensureAvailable(ctx, attempt.Domain); err != nil {
		attempt.Advance(domain.PurchaseStateRejected)

		return nil, s.reject(ctx, span, err)
	}

	intent, err := s.charge(ctx, attempt)
	if err != nil {
		attempt.Advance(domain.PurchaseStateFailed)
		s.record(ctx, outcomeFailed)
		span.RecordError(err)
		span.SetStatus(codes.Error, serrors.MessageOf(err))

		return nil, err
	}
	attempt.PaymentRef = intent.ID
	attempt.Status = intent.Status
	attempt.Advance(domain.PurchaseStatePaymentConfirmed)

	s.fulfil(ctx, attempt)

	return attempt, nil
}

// CompleteCheckout finishes a hosted checkout once the provider reports the
// session as paid.
func (s *service) CompleteCheckout(ctx context.Context, req CompleteRequest) (*domain.PurchaseAttempt, error) {
	ctx, span := s.tracer.Start(ctx, "purchase.CompleteCheckout")
	defer span.End()

	missing := &serrors.ValidationError{}
	for field, v := range map[string]string{
		"session_id": req.SessionID,
		"domain":     req.Domain,
		"email":      req.Email,
		"amount":     req.Amount,
	} {
		if strings.TrimSpace(v) == "" {
			missing.Add(field, "is required")
		}
	}
	if err := serrors.Validation(missing, "Missing payment info."); err != nil {
		return nil, s.reject(ctx, span, err)
	}

	attempt, err := validate(req.Email, req.Domain, req.Amount, s.options.Currency)
	if err != nil {
		return nil, s.reject(ctx, span, err)
	}
	span.SetAttributes(attribute.String("domain", attempt.Domain))
	ctx = logger.WithFields(ctx, zap.String("domain", attempt.Domain), zap.String("session", req.SessionID))

	session, err := s.payments.CheckoutSession(ctx, req.SessionID)
	if err != nil {
		attempt.Advance(domain.PurchaseStateFailed)
		s.record(ctx, outcomeFailed)
		span.RecordError(err)

		return nil, fmt.Errorf("could not retrieve checkout session: %w", err)
	}
	if session.PaymentStatus != domain.PaymentStatusPaid {
		attempt.Advance(domain.PurchaseStateFailed)
		s.record(ctx, outcomeFailed)
		logger.Info(ctx, "checkout session is not paid", zap.String("paymentStatus", session.PaymentStatus))

		return nil, serrors.With(serrors.ErrPaymentRequired, "Payment not completed.")
	}
	attempt.PaymentRef = session.PaymentIntentID
	attempt.Status = session.PaymentStatus
	attempt.Advance(domain.PurchaseStatePaymentConfirmed)

	s.fulfil(ctx, attempt)

	return attempt, nil
}

// CheckDomain normalizes rawDomain and asks the registrar whether it is free.
// A registrar failure is reported as unavailable with Error set and a retry
// message rather than the taken one.
func (s *service) CheckDomain(ctx context.Context, rawDomain string) (*DomainCheck, error) {
	ctx, span := s.tracer.Start(ctx, "purchase.CheckDomain")
	defer span.End()

	if strings.TrimSpace(rawDomain) == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "Domain is required.")
	}
	name, err := NormalizeDomain(rawDomain)
	if err != nil {
		v := &serrors.ValidationError{}
		v.Add("domain", err.Error())

		return nil, serrors.Validation(v, "Invalid domain name.")
	}
	span.SetAttributes(attribute.String("domain", name))

	res := s.registrar.CheckAvailability(ctx, name)
	check := &DomainCheck{
		Available: res.Available,
		Domain:    name,
		Message:   takenMessage(name),
		Error:     res.Err,
	}
	switch {
	case res.Err != "":
		check.Message = fmt.Sprintf("Could not check availability for %s. Please try again later.", name)
	case res.Available:
		check.Message = fmt.Sprintf("The domain %s is available.", name)
	}

	return check, nil
}

func (s *service) authenticate(key *string) error {
	if key == nil {
		return nil
	}
	if s.options.ShopcoKey == "" ||
		subtle.ConstantTimeCompare([]byte(*key), []byte(s.options.ShopcoKey)) != 1 {
		return serrors.With(serrors.ErrForbidden, "Invalid ShopCo webhook key.")
	}

	return nil
}

func (s *service) ensureAvailable(ctx context.Context, name string) error {
	ctx, span := s.tracer.Start(ctx, "purchase.availability")
	defer span.End()

	res := s.registrar.CheckAvailability(ctx, name)
	if res.Err != "" {
		logger.Warn(ctx, "availability lookup degraded", zap.String("cause", res.Err))
	}
	if !res.Available {
		return serrors.With(serrors.ErrBadRequest, "%s", takenMessage(name))
	}

	return nil
}

func (s *service) charge(ctx context.Context, attempt *domain.PurchaseAttempt) (*payment.PaymentIntent, error) {
	ctx, span := s.tracer.Start(ctx, "purchase.payment")
	defer span.End()

	intent, err := s.payments.CreatePaymentIntent(ctx, payment.PaymentIntentRequest{
		AmountMinor:  MinorUnits(attempt.Amount, s.options.Currency),
		Currency:     s.options.Currency,
		ReceiptEmail: attempt.Email,
		Metadata:     map[string]string{"domain": attempt.Domain},
	})
	if err != nil {
		logger.Error(ctx, "payment intent failed", zap.Error(err))

		return nil, fmt.Errorf("could not create payment intent: %w", err)
	}
	if intent.Status == domain.PaymentStatusRequiresPaymentMethod {
		logger.Info(ctx, "payment intent needs a payment method", zap.String("paymentIntent", intent.ID))

		return nil, serrors.With(serrors.ErrPaymentRequired, "Payment method required.")
	}

	return intent, nil
}

// fulfil registers the domain and announces the purchase. Payment has been
// taken by now, so neither step may be cut short by the caller going away.
func (s *service) fulfil(ctx context.Context, attempt *domain.PurchaseAttempt) {
	ctx = context.WithoutCancel(ctx)

	s.register(ctx, attempt)

	s.notifier.NotifyPayment(ctx, notifier.PaymentEvent{
		Event:         notifier.EventPayment,
		Email:         attempt.Email,
		Domain:        attempt.Domain,
		Amount:        json.Number(attempt.Amount.String()),
		Timestamp:     s.now().UTC(),
		PaymentIntent: attempt.PaymentRef,
		OpenSRSResult: attempt.Registration,
		Status:        attempt.Status,
	})
	attempt.Advance(domain.PurchaseStateNotified)

	if attempt.Registration.Success {
		s.record(ctx, outcomeRegistered)
	} else {
		s.record(ctx, outcomeRegistrationFailed)
	}
	attempt.Advance(domain.PurchaseStateDone)
}

func (s *service) register(ctx context.Context, attempt *domain.PurchaseAttempt) {
	ctx, span := s.tracer.Start(ctx, "purchase.register")
	defer span.End()

	res := s.registrar.RegisterDomain(ctx, attempt.Domain, attempt.Email)
	attempt.Registration = &res
	if res.Success {
		attempt.Advance(domain.PurchaseStateDomainRegistered)
		logger.Info(ctx, "domain registered", zap.String("paymentIntent", attempt.PaymentRef))

		return
	}

	attempt.Advance(domain.PurchaseStateRegistrationFailed)
	span.SetStatus(codes.Error, res.Error)
	logger.Error(ctx, "domain registration failed after payment",
		zap.String("paymentIntent", attempt.PaymentRef),
		zap.Error(serrors.With(serrors.ErrRegistration, "%s", res.Error)))
}

func (s *service) reject(ctx context.Context, span trace.Span, err error) error {
	s.record(ctx, outcomeRejected)
	span.SetStatus(codes.Error, serrors.MessageOf(err))
	logger.Debug(ctx, "purchase rejected", zap.Error(err))

	return err
}

func (s *service) record(ctx context.Context, outcome string) {
	s.outcomes.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func takenMessage(name string) string {
	return fmt.Sprintf("Sorry, the domain %s is already taken. Please choose another.", name)
}
