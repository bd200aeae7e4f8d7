package v1handler

import (
	"context"
	"net/http"
	"time"

	"domainshop/internal/purchase"
)

const pingTimeout = 2 * time.Second

func (h *Handler) handleDomainCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	in, err := decodeInput(w, r)
	if err == nil {
		var check *purchase.DomainCheck
		check, err = h.Purchases.CheckDomain(ctx, in.str("domain"))
		if err == nil {
			writeJSON(ctx, w, http.StatusOK, check)

			return
		}
	}

	status, msg := StatusOf(err)
	logFailure(ctx, status, err)
	writeJSON(ctx, w, status, map[string]any{
		"available": false,
		"domain":    in.echo("domain"),
		"error":     msg,
	})
}

type health struct {
	Status       string       `json:"status"`
	Database     bool         `json:"database"`
	Integrations Integrations `json:"integrations"`
}

// handleHealth reports database reachability and which integrations are
// configured. An unreachable database answers 503.
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	res := health{Status: "ok", Database: true, Integrations: h.Integrations}
	status := http.StatusOK

	if h.Database != nil {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := h.Database.Ping(pingCtx); err != nil {
			logFailure(ctx, http.StatusServiceUnavailable, err)
			res.Status = "degraded"
			res.Database = false
			status = http.StatusServiceUnavailable
		}
	}

	writeJSON(ctx, w, status, res)
}
