package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"domainshop/pkg/logger"
	"domainshop/pkg/webhook"

	"github.com/riverqueue/river"
	"go.uber.org/zap"
)

// WebhookArgs is a single queued webhook delivery.
type WebhookArgs struct {
	Event   string          `json:"event"`
	URL     string          `json:"url"`
	Payload json.RawMessage `json:"payload"`
}

// Kind implements river.JobArgs.
func (WebhookArgs) Kind() string { return "webhook_delivery" }

// InsertOpts makes every delivery a single attempt.
func (WebhookArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{MaxAttempts: 1}
}

// WebhookWorker delivers queued webhooks through a webhook.Poster, one attempt each.
type WebhookWorker struct {
	river.WorkerDefaults[WebhookArgs]

	poster  webhook.Poster
	timeout time.Duration
}

// NewWebhookWorker constructs a WebhookWorker. Each delivery is bounded by
// timeout.
func NewWebhookWorker(poster webhook.Poster, timeout time.Duration) *WebhookWorker {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &WebhookWorker{poster: poster, timeout: timeout}
}

// Timeout bounds the job the same way the delivery itself is bounded.
func (w *WebhookWorker) Timeout(*river.Job[WebhookArgs]) time.Duration {
	return w.timeout
}

// Work performs a single delivery of job. Failures are logged and cancel the
// job so it is never retried.
func (w *WebhookWorker) Work(ctx context.Context, job *river.Job[WebhookArgs]) error {
	ctx = logger.WithFields(ctx,
		zap.Int64("jobID", job.ID),
		zap.String("event", job.Args.Event),
		zap.String("webhookURL", job.Args.URL))

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	if err := w.poster.Post(ctx, job.Args.URL, job.Args.Payload); err != nil {
		logger.Error(ctx, "could not deliver webhook", zap.Error(err))

		return river.JobCancel(fmt.Errorf("could not deliver webhook: %w", err))
	}

	logger.Info(ctx, "webhook delivered")

	return nil
}
