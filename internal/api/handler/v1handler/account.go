package v1handler

import (
	"net/http"
	"strconv"
	"strings"

	"domainshop/internal/account"
	"domainshop/pkg/domain"
	"domainshop/pkg/serrors"
)

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	in, err := decodeInput(w, r)
	if err == nil {
		var user *domain.User
		user, err = h.Accounts.Signup(ctx, account.SignupRequest{
			Email:        in.str("email"),
			Domain:       in.str("domain"),
			ReferralCode: in.str("referralCode"),
		})
		if err == nil {
			writeJSON(ctx, w, http.StatusOK, map[string]any{
				"id":               user.ID,
				"email":            user.Email,
				"domain":           user.Domain,
				"stripeCustomerId": user.PaymentCustomerRef,
				"referralCode":     user.ReferralCode,
			})

			return
		}
	}

	status, msg := StatusOf(err)
	logFailure(ctx, status, err)
	body := map[string]any{"error": msg}
	for _, k := range []string{"email", "domain", "referralCode"} {
		if in.has(k) {
			body[k] = in.echo(k)
		}
	}
	writeJSON(ctx, w, status, body)
}

func (h *Handler) handleReferral(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	in, err := decodeInput(w, r)
	if err == nil {
		var userID domain.UserID
		userID, err = parseUserID(in.str("userId"))
		if err == nil {
			var ref *domain.Referral
			ref, err = h.Accounts.TrackReferral(ctx, userID, in.str("referredEmail"))
			if err == nil {
				writeJSON(ctx, w, http.StatusOK, map[string]any{
					"referralId":    ref.ID,
					"userId":        ref.UserID,
					"referredEmail": ref.ReferredEmail,
					"message":       "Referral tracked!",
				})

				return
			}
		}
	}

	status, msg := StatusOf(err)
	logFailure(ctx, status, err)
	writeJSON(ctx, w, status, map[string]any{
		"referralId":    nil,
		"userId":        in.echo("userId"),
		"referredEmail": in.echo("referredEmail"),
		"message":       nil,
		"error":         msg,
	})
}

func (h *Handler) handleUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	lookup := account.Lookup{Email: q.Get("email")}
	if raw := q.Get("id"); raw != "" && lookup.Email == "" {
		id, err := parseUserID(raw)
		if err != nil {
			writeError(w, r, err)

			return
		}
		lookup.ID = &id
	}

	user, err := h.Accounts.User(ctx, lookup)
	if err != nil {
		writeError(w, r, err)

		return
	}
	if subject, ok := ctx.Value(UserIDKey).(domain.UserID); ok && subject != user.ID {
		writeError(w, r, serrors.With(serrors.ErrForbidden, "Token does not grant access to this user."))

		return
	}

	writeJSON(ctx, w, http.StatusOK, user)
}

// parseUserID accepts empty input as the zero id so the service reports it
// as missing.
func parseUserID(raw string) (domain.UserID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, serrors.With(serrors.ErrBadRequest, "userId must be a positive integer.")
	}

	return domain.UserID(id), nil
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := StatusOf(err)
	logFailure(r.Context(), status, err)
	writeJSON(r.Context(), w, status, map[string]any{"error": msg})
}
