// Package webhook posts JSON event payloads to external automation endpoints
// (Zapier-style catch hooks).
package webhook

import "context"

// Poster delivers a single payload to url.
//
//go:generate mockgen -package mockwebhook -source=interface.go -destination=mock/mockwebhook.go *
type Poster interface {
	Post(ctx context.Context, url string, payload any) error
}
