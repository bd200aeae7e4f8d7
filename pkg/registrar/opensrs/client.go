package opensrs

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"domainshop/pkg/domain"
	"domainshop/pkg/logger"
	"domainshop/pkg/metrics"
	"domainshop/pkg/registrar"
	"domainshop/pkg/serrors"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

const (
	// DefaultEndpoint is the OpenSRS production XCP endpoint.
	DefaultEndpoint = "https://rr-n1-tor.opensrs.net:55443/"
	// DefaultTimeout bounds a single registrar call.
	DefaultTimeout = 15 * time.Second

	statusAvailable = "available"

	// errAPI is reported for any registration that failed before a reply
	// could be interpreted.
	errAPI = "API error"
	// errUnknown is reported when the registrar refused without saying why.
	errUnknown = "Unknown error"

	maxReplySize = 1 << 20
)

// Options configures a Client.
type Options struct {
	Credentials Credentials
	Endpoint    string
	Timeout     time.Duration
	// Registrant supplies the owner name and country placed on every
	// registration.
	Registrant domain.Registrant
	Metrics    *metrics.Outbound
}

// Client talks to the OpenSRS XCP API and fulfills the registrar.Client
// interface. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	builder    *Builder
	opts       Options
}

// Ensure Client conforms to the registrar.Client interface at compile time.
var _ registrar.Client = (*Client)(nil)

// New constructs a Client that sends envelopes with httpClient.
func New(httpClient *http.Client, opts Options) *Client {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	opts.Registrant = opts.Registrant.WithDefaults(domain.DefaultRegistrant)

	return &Client{
		httpClient: httpClient,
		builder:    NewBuilder(opts.Credentials),
		opts:       opts,
	}
}

// CheckAvailability sends a lookup for domainName. Only an explicit
// "available" status makes the domain available.
func (c *Client) CheckAvailability(ctx context.Context, domainName string) domain.AvailabilityResult {
	ctx = logger.WithFields(ctx, zap.String("domain", domainName), zap.String("action", "lookup"))
	start := time.Now()

	req, err := c.builder.BuildRequest(domain.RegistrarActionLookup, domainName, nil)
	if err != nil {
		logger.Error(ctx, "could not build lookup request", zap.Error(err))
		c.opts.Metrics.Observe("lookup", "error", time.Since(start))

		return domain.AvailabilityResult{Available: false, Err: serrors.MessageOf(err)}
	}

	reply, err := c.send(ctx, req)
	if err != nil {
		logger.Warn(ctx, "lookup failed", zap.Error(err))
		c.opts.Metrics.Observe("lookup", "error", time.Since(start))

		return domain.AvailabilityResult{Available: false, Err: err.Error()}
	}

	status, ok := StatusToken(reply)
	if !ok {
		logger.Warn(ctx, "lookup reply carries no status item")
		c.opts.Metrics.Observe("lookup", "error", time.Since(start))

		return domain.AvailabilityResult{Available: false, Err: "no status in registrar reply"}
	}
	logger.Debug(ctx, "lookup status parsed", zap.String("status", status))

	available := status == statusAvailable
	outcome := "taken"
	if available {
		outcome = statusAvailable
	}
	c.opts.Metrics.Observe("lookup", outcome, time.Since(start))

	return domain.AvailabilityResult{Available: available, Status: status}
}

// RegisterDomain sends a single sw_register for domainName owned by
// registrantEmail.
func (c *Client) RegisterDomain(ctx context.Context, domainName, registrantEmail string) domain.RegistrationResult {
	ctx = logger.WithFields(ctx, zap.String("domain", domainName), zap.String("action", "register"))
	start := time.Now()

	registrant := c.opts.Registrant
	registrant.Email = registrantEmail

	req, err := c.builder.BuildRequest(domain.RegistrarActionRegister, domainName, &registrant)
	if err != nil {
		logger.Error(ctx, "could not build registration request", zap.Error(err))
		c.opts.Metrics.Observe("register", "error", time.Since(start))

		return domain.RegistrationFailed(serrors.MessageOf(err))
	}

	reply, err := c.send(ctx, req)
	if err != nil {
		logger.Error(ctx, "registration request failed", zap.Error(err))
		c.opts.Metrics.Observe("register", "error", time.Since(start))

		return domain.RegistrationFailed(errAPI)
	}

	if IsSuccess(reply) {
		logger.Info(ctx, "domain registered")
		c.opts.Metrics.Observe("register", "success", time.Since(start))

		return domain.RegistrationSucceeded(domainName)
	}

	reason, ok := ErrorToken(reply)
	if !ok {
		reason = errUnknown
	}
	logger.Warn(ctx, "registrar refused registration", zap.String("reason", reason))
	c.opts.Metrics.Observe("register", "refused", time.Since(start))

	return domain.RegistrationFailed(reason)
}

// send posts the signed envelope and returns the reply body. Transport
// failures, timeouts and non-2xx replies are ErrTransport.
func (c *Client) send(ctx context.Context, req Request) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	if logger.IsDebug(ctx) {
		logger.Debug(ctx, "sending registrar envelope",
			zap.String("endpoint", c.opts.Endpoint),
			zap.String("username", c.opts.Credentials.Username),
			logger.Masked("apiKey", c.opts.Credentials.APIKey))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.Endpoint, bytes.NewReader(req.Body))
	if err != nil {
		return "", serrors.Wrap(serrors.ErrTransport, errors.Wrap(err, "create request"), "registrar")
	}
	httpReq.Header.Set("Content-Type", "text/xml")
	httpReq.Header.Set("X-Username", c.opts.Credentials.Username)
	httpReq.Header.Set("X-Signature", req.Signature)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", serrors.Wrap(serrors.ErrTransport, errors.Wrap(err, "send request"), "registrar")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxReplySize))
	if err != nil {
		return "", serrors.Wrap(serrors.ErrTransport, errors.Wrap(err, "read reply"), "registrar")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", serrors.With(serrors.ErrTransport, "registrar replied with status %d", resp.StatusCode)
	}

	return string(b), nil
}
