// Package worker runs the storefront's detached background work: webhook
// deliveries handed off by request handlers to a Postgres-backed river queue.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"domainshop/internal/notifier"
	"domainshop/pkg/logger"
	"domainshop/pkg/webhook"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivertype"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
)

const (
	defaultWorkers = 4
	defaultTimeout = 10 * time.Second
	insertTimeout  = 2 * time.Second
)

// Options configures a Dispatcher.
type Options struct {
	// PurchaseURL receives payment events. Empty disables them.
	PurchaseURL string
	// ReferralURL receives referral events. Empty disables them.
	ReferralURL string
	Workers     int
	Timeout     time.Duration
}

// Inserter enqueues river jobs. *river.Client satisfies it.
type Inserter interface {
	Insert(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (*rivertype.JobInsertResult, error)
}

// Dispatcher turns notifier events into queued webhook deliveries. It
// implements notifier.Notifier.
type Dispatcher struct {
	opts     Options
	inserter Inserter
	client   *river.Client[pgx.Tx]
	dropped  atomic.Int64
}

// Ensure Dispatcher conforms to the notifier.Notifier interface at compile time.
var _ notifier.Notifier = (*Dispatcher)(nil)

// NewDispatcher returns a Dispatcher that enqueues through inserter. It does
// not run any workers.
func NewDispatcher(inserter Inserter, opts Options) *Dispatcher {
	return &Dispatcher{opts: opts, inserter: inserter}
}

// Start creates a river client on dbPool, registers the webhook worker and
// starts working the default queue. Call Stop to drain it.
func Start(ctx context.Context, dbPool *pgxpool.Pool, poster webhook.Poster, opts Options) (*Dispatcher, error) {
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewWebhookWorker(poster, opts.Timeout))

	riverClient, err := river.NewClient(riverpgxv5.New(dbPool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: opts.Workers},
		},
		Workers:     workers,
		MaxAttempts: 1,
		JobTimeout:  opts.Timeout,
		Logger:      slog.New(zapslog.NewHandler(logger.Get(ctx).Core())),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create river queue client: %w", err)
	}

	if err := riverClient.Start(ctx); err != nil {
		return nil, fmt.Errorf("could not start river queue client: %w", err)
	}
	logger.Info(ctx, "webhook dispatcher started", zap.Int("workers", opts.Workers))

	d := NewDispatcher(riverClient, opts)
	d.client = riverClient

	return d, nil
}

// NotifyPayment queues event for the purchase webhook.
func (d *Dispatcher) NotifyPayment(ctx context.Context, event notifier.PaymentEvent) {
	d.enqueue(ctx, notifier.EventPayment, d.opts.PurchaseURL, event)
}

// NotifyReferral queues event for the referral webhook.
func (d *Dispatcher) NotifyReferral(ctx context.Context, event notifier.ReferralEvent) {
	d.enqueue(ctx, notifier.EventReferral, d.opts.ReferralURL, event)
}

// enqueue only writes the job row. Failures are logged and counted, never
// returned to the caller.
func (d *Dispatcher) enqueue(ctx context.Context, event, url string, payload any) {
	if url == "" {
		logger.Debug(ctx, "webhook url not configured, skipping event", zap.String("event", event))

		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		d.drop(ctx, event, fmt.Errorf("could not encode webhook payload: %w", err))

		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), insertTimeout)
	defer cancel()

	res, err := d.inserter.Insert(ctx, WebhookArgs{Event: event, URL: url, Payload: body}, nil)
	if err != nil {
		d.drop(ctx, event, fmt.Errorf("could not enqueue webhook: %w", err))

		return
	}
	logger.Debug(ctx, "webhook queued", zap.String("event", event), zap.Int64("jobID", res.Job.ID))
}

func (d *Dispatcher) drop(ctx context.Context, event string, err error) {
	d.dropped.Add(1)
	logger.Warn(ctx, "dropping webhook event", zap.String("event", event), zap.Error(err))
}

// Dropped returns the number of events that could not be queued so far.
func (d *Dispatcher) Dropped() int64 {
	return d.dropped.Load()
}

// Stop waits for running deliveries to finish or for ctx to expire. It is a
// no-op for a Dispatcher without workers.
func (d *Dispatcher) Stop(ctx context.Context) error {
	if d.client == nil {
		return nil
	}

	return d.client.Stop(ctx) //nolint: wrapcheck
}
