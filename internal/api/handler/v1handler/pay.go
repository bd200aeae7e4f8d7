package v1handler

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"domainshop/internal/purchase"
	"domainshop/pkg/logger"
	"domainshop/pkg/serrors"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html")) //nolint: gochecknoglobals

const webhookKeyHeader = "X-Shopco-Webhook-Key"

type payForm struct {
	Domain   string
	Error    string
	Amount   string
	Currency string
}

type successPage struct {
	Domain     string
	Email      string
	Registered bool
	Error      string
}

// handlePayForm renders the payment form, warning up front when the
// pre-filled domain is taken.
func (h *Handler) handlePayForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	form := payForm{
		Domain:   strings.TrimSpace(r.URL.Query().Get("domain")),
		Amount:   "15",
		Currency: strings.ToUpper(h.Currency),
	}

	if form.Domain != "" {
		check, err := h.Purchases.CheckDomain(ctx, form.Domain)
		switch {
		case err != nil:
			form.Error = serrors.MessageOf(err)
		case !check.Available:
			form.Error = check.Message
		}
	}

	h.render(w, r, "pay.html", form)
}

// handlePay is the direct purchase used by ShopCo and API clients.
func (h *Handler) handlePay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	in, err := decodeInput(w, r)
	if err != nil {
		h.writePayError(w, r, in, err)

		return
	}

	req := purchase.Request{
		Email:  in.str("email"),
		Domain: in.str("domain"),
		Amount: in.str("amount"),
	}
	if key, ok := r.Header[webhookKeyHeader]; ok && len(key) > 0 {
		req.WebhookKey = &key[0]
	} else if in.has("webhook_key") {
		k := in.str("webhook_key")
		req.WebhookKey = &k
	}

	attempt, err := h.Purchases.Purchase(ctx, req)
	if err != nil {
		h.writePayError(w, r, in, err)

		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{
		"id":             attempt.PaymentRef,
		"email":          in.echo("email"),
		"domain":         in.echo("domain"),
		"amount":         in.echo("amount"),
		"opensrs_result": attempt.Registration,
		"status":         attempt.Status,
	})
}

func (h *Handler) writePayError(w http.ResponseWriter, r *http.Request, in input, err error) {
	status, msg := StatusOf(err)
	logFailure(r.Context(), status, err)

	if status == http.StatusForbidden {
		writeJSON(r.Context(), w, status, map[string]any{"status": "failed", "error": msg})

		return
	}
	if status >= http.StatusInternalServerError && msg == internalMessage {
		msg = "Payment failed."
	}

	body := map[string]any{"id": nil, "status": "failed", "error": msg}
	for _, k := range []string{"email", "domain", "amount"} {
		if in.has(k) {
			body[k] = in.echo(k)
		}
	}
	if v := fieldErrors(err); v != nil {
		body["fields"] = v
	}
	writeJSON(r.Context(), w, status, body)
}

// handleCreateCheckoutSession starts a hosted checkout from the payment form
// and redirects the buyer to it.
func (h *Handler) handleCreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	in, err := decodeInput(w, r)
	if err != nil {
		status, msg := StatusOf(err)
		writeText(w, status, msg)

		return
	}

	out, err := h.Purchases.StartCheckout(ctx, purchase.CheckoutRequest{
		Email:   in.str("email"),
		Domain:  in.str("domain"),
		Amount:  in.str("amount"),
		BaseURL: baseURL(r),
	})
	if err != nil {
		status, msg := StatusOf(err)
		logFailure(ctx, status, err)
		if status >= http.StatusInternalServerError {
			msg = "Failed to create checkout session."
		}
		writeText(w, status, msg)

		return
	}

	http.Redirect(w, r, out.URL, http.StatusSeeOther)
}

// handleSuccess completes a hosted checkout when the buyer returns from it.
func (h *Handler) handleSuccess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	attempt, err := h.Purchases.CompleteCheckout(ctx, purchase.CompleteRequest{
		SessionID: q.Get("session_id"),
		Domain:    q.Get("domain"),
		Email:     q.Get("email"),
		Amount:    q.Get("amount"),
	})
	if err != nil {
		status, msg := StatusOf(err)
		logFailure(ctx, status, err)
		if status >= http.StatusInternalServerError {
			msg = "Error processing payment."
		}
		writeText(w, status, msg)

		return
	}

	page := successPage{Domain: attempt.Domain, Email: attempt.Email}
	if attempt.Registration != nil {
		page.Registered = attempt.Registration.Success
		page.Error = attempt.Registration.Error
	}
	h.render(w, r, "success.html", page)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		logger.Error(r.Context(), "could not render page", zap.String("page", name), zap.Error(err))
	}
}

func fieldErrors(err error) map[string]string {
	var v *serrors.ValidationError
	if errors.As(err, &v) {
		return v.Fields
	}

	return nil
}
