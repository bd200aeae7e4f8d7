// Package v1handler implements the storefront's HTTP endpoints on top of the
// purchase and account services.
package v1handler

import (
	"context"
	"net/http"

	"domainshop/internal/account"
	"domainshop/internal/purchase"

	"github.com/go-chi/chi/v5"
)

// Pinger reports whether a backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Integrations tells which collaborators are configured. It is reported by
// the health endpoint.
type Integrations struct {
	Registrar       bool `json:"registrar"`
	Payment         bool `json:"payment"`
	PurchaseWebhook bool `json:"purchaseWebhook"`
	ReferralWebhook bool `json:"referralWebhook"`
	ShopcoKey       bool `json:"shopcoKey"`
}

// Deps holds the services the handlers delegate to.
type Deps struct {
	Purchases    purchase.Service
	Accounts     account.Service
	Database     Pinger
	Integrations Integrations
	// Currency is shown on the payment form.
	Currency string
}

type Handler struct {
	Deps
}

func New(deps Deps) *Handler {
	if deps.Currency == "" {
		deps.Currency = "usd"
	}

	return &Handler{Deps: deps}
}

// Register mounts the storefront routes on r. A non-nil sec protects the user
// lookup with bearer authentication.
func (h *Handler) Register(r chi.Router, sec *SecHandler) {
	r.Get("/pay", h.handlePayForm)
	r.Post("/pay", h.handlePay)
	r.Post("/create-checkout-session", h.handleCreateCheckoutSession)
	r.Get("/success", h.handleSuccess)

	r.Post("/signup", h.handleSignup)
	r.Post("/referral", h.handleReferral)
	r.Group(func(r chi.Router) {
		if sec != nil {
			r.Use(sec.RequireBearer)
		}
		r.Get("/user", h.handleUser)
	})

	r.Post("/api/domain/check", h.handleDomainCheck)
	r.Get("/api/health", h.handleHealth)
}

// baseURL reconstructs the origin of r, honouring a TLS-terminating proxy.
func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if p := r.Header.Get("X-Forwarded-Proto"); p == "http" || p == "https" {
		scheme = p
	}

	return scheme + "://" + r.Host
}
