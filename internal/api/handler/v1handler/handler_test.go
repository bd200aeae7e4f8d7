package v1handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"domainshop/internal/account"
	mockaccount "domainshop/internal/account/mock"
	"domainshop/internal/api/handler/v1handler"
	"domainshop/internal/purchase"
	mockpurchase "domainshop/internal/purchase/mock"
	"domainshop/pkg/domain"
	"domainshop/pkg/logger"
	"domainshop/pkg/serrors"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	// Initialize logger to avoid nil pointer deref during tests
	_ = logger.Setup(logger.DevelopmentEnvironment, "error")
	m.Run()
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

type testEnv struct {
	purchases *mockpurchase.MockService
	accounts  *mockaccount.MockService
	router    chi.Router
}

func newTestEnv(t *testing.T, sec *v1handler.SecHandler, db v1handler.Pinger) testEnv {
	t.Helper()

	ctrl := gomock.NewController(t)
	env := testEnv{
		purchases: mockpurchase.NewMockService(ctrl),
		accounts:  mockaccount.NewMockService(ctrl),
		router:    chi.NewRouter(),
	}
	h := v1handler.New(v1handler.Deps{
		Purchases:    env.purchases,
		Accounts:     env.accounts,
		Database:     db,
		Integrations: v1handler.Integrations{Registrar: true, Payment: true},
	})
	h.Register(env.router, sec)

	return env
}

func (e testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	return rec
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	return req
}

func formRequest(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())

	return body
}

func paidAttempt(reg domain.RegistrationResult) *domain.PurchaseAttempt {
	return &domain.PurchaseAttempt{
		Email:        "a@b.com",
		Domain:       "foo.com",
		Amount:       decimal.NewFromInt(15),
		PaymentRef:   "pi_1",
		Registration: &reg,
		Status:       domain.PaymentStatusSucceeded,
		State:        domain.PurchaseStateDone,
	}
}

func TestPay_Success(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	env.purchases.EXPECT().Purchase(gomock.Any(), purchase.Request{
		Email: "a@b.com", Domain: "foo.com", Amount: "15",
	}).Return(paidAttempt(domain.RegistrationSucceeded("foo.com")), nil)

	rec := env.do(jsonRequest(http.MethodPost, "/pay", `{"email":"a@b.com","domain":"foo.com","amount":15}`))
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{
		"id": "pi_1",
		"email": "a@b.com",
		"domain": "foo.com",
		"amount": 15,
		"opensrs_result": {"success": true, "domain": "foo.com"},
		"status": "succeeded"
	}`, rec.Body.String())
}

func TestPay_SuccessEchoesRawInput(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	env.purchases.EXPECT().Purchase(gomock.Any(), purchase.Request{
		Email: "A@B.com", Domain: "WWW.Foo.com", Amount: "15.00",
	}).Return(paidAttempt(domain.RegistrationSucceeded("foo.com")), nil)

	rec := env.do(jsonRequest(http.MethodPost, "/pay", `{"email":"A@B.com","domain":"WWW.Foo.com","amount":"15.00"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, "A@B.com", body["email"])
	require.Equal(t, "WWW.Foo.com", body["domain"])
	require.Equal(t, "15.00", body["amount"])
}

func TestPay_RegistrationFailureStillOK(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	env.purchases.EXPECT().Purchase(gomock.Any(), gomock.Any()).
		Return(paidAttempt(domain.RegistrationFailed("API error")), nil)

	rec := env.do(jsonRequest(http.MethodPost, "/pay", `{"email":"a@b.com","domain":"foo.com","amount":"15"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	require.Equal(t, map[string]any{"success": false, "error": "API error"}, body["opensrs_result"])
}

func TestPay_WebhookKey(t *testing.T) {
	t.Run("header", func(t *testing.T) {
		env := newTestEnv(t, nil, nil)
		env.purchases.EXPECT().Purchase(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req purchase.Request) (*domain.PurchaseAttempt, error) {
				require.NotNil(t, req.WebhookKey)
				require.Equal(t, "k1", *req.WebhookKey)

				return nil, serrors.With(serrors.ErrForbidden, "Invalid ShopCo webhook key.")
			})

		req := jsonRequest(http.MethodPost, "/pay", `{"email":"a@b.com"}`)
		req.Header.Set("X-Shopco-Webhook-Key", "k1")
		rec := env.do(req)
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.JSONEq(t, `{"status":"failed","error":"Invalid ShopCo webhook key."}`, rec.Body.String())
	})

	t.Run("body", func(t *testing.T) {
		env := newTestEnv(t, nil, nil)
		env.purchases.EXPECT().Purchase(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req purchase.Request) (*domain.PurchaseAttempt, error) {
				require.NotNil(t, req.WebhookKey)
				require.Equal(t, "k2", *req.WebhookKey)

				return paidAttempt(domain.RegistrationSucceeded("foo.com")), nil
			})

		rec := env.do(formRequest("/pay", url.Values{
			"email": {"a@b.com"}, "domain": {"foo.com"}, "amount": {"15"}, "webhook_key": {"k2"},
		}))
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("absent", func(t *testing.T) {
		env := newTestEnv(t, nil, nil)
		env.purchases.EXPECT().Purchase(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, req purchase.Request) (*domain.PurchaseAttempt, error) {
				require.Nil(t, req.WebhookKey)

				return paidAttempt(domain.RegistrationSucceeded("foo.com")), nil
			})

		rec := env.do(jsonRequest(http.MethodPost, "/pay", `{"email":"a@b.com","domain":"foo.com","amount":15}`))
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestPay_Errors(t *testing.T) {
	v := &serrors.ValidationError{}
	v.Add("amount", "is required")

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{name: "missing fields", err: serrors.Validation(v, "Email, domain, and amount are required."),
			wantStatus: http.StatusBadRequest, wantError: "Email, domain, and amount are required."},
		{name: "domain taken", err: serrors.With(serrors.ErrBadRequest, "Sorry, the domain foo.com is already taken. Please choose another."),
			wantStatus: http.StatusBadRequest, wantError: "Sorry, the domain foo.com is already taken. Please choose another."},
		{name: "payment method required", err: serrors.With(serrors.ErrPaymentRequired, "Payment method required."),
			wantStatus: http.StatusPaymentRequired, wantError: "Payment method required."},
		{name: "provider error", err: serrors.Wrap(serrors.ErrPayment, errors.New("x"), "Your card was declined."),
			wantStatus: http.StatusInternalServerError, wantError: "Your card was declined."},
		{name: "unknown error", err: errors.New("boom"),
			wantStatus: http.StatusInternalServerError, wantError: "Payment failed."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, nil, nil)
			env.purchases.EXPECT().Purchase(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			rec := env.do(jsonRequest(http.MethodPost, "/pay", `{"email":"a@b.com","domain":"foo.com"}`))
			require.Equal(t, tt.wantStatus, rec.Code)

			body := decodeBody(t, rec)
			require.Nil(t, body["id"])
			require.Contains(t, body, "id")
			require.Equal(t, "a@b.com", body["email"])
			require.Equal(t, "foo.com", body["domain"])
			require.NotContains(t, body, "amount")
			require.Equal(t, "failed", body["status"])
			require.Equal(t, tt.wantError, body["error"])
		})
	}
}

func TestPay_InvalidJSON(t *testing.T) {
	env := newTestEnv(t, nil, nil)

	rec := env.do(jsonRequest(http.MethodPost, "/pay", `{"email":`))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateCheckoutSession(t *testing.T) {
	t.Run("redirects", func(t *testing.T) {
		env := newTestEnv(t, nil, nil)
		env.purchases.EXPECT().StartCheckout(gomock.Any(), purchase.CheckoutRequest{
			Email: "a@b.com", Domain: "foo.com", Amount: "15", BaseURL: "http://shop.test",
		}).Return(&purchase.CheckoutOutcome{SessionID: "cs_1", URL: "https://checkout.test/cs_1"}, nil)

		req := formRequest("http://shop.test/create-checkout-session", url.Values{
			"email": {"a@b.com"}, "domain": {"foo.com"}, "amount": {"15"},
		})
		rec := env.do(req)
		require.Equal(t, http.StatusSeeOther, rec.Code)
		require.Equal(t, "https://checkout.test/cs_1", rec.Header().Get("Location"))
	})

	t.Run("taken", func(t *testing.T) {
		env := newTestEnv(t, nil, nil)
		env.purchases.EXPECT().StartCheckout(gomock.Any(), gomock.Any()).
			Return(nil, serrors.With(serrors.ErrBadRequest, "Sorry, the domain foo.com is already taken. Please choose another."))

		rec := env.do(formRequest("/create-checkout-session", url.Values{"domain": {"foo.com"}}))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "Sorry, the domain foo.com is already taken. Please choose another.", rec.Body.String())
	})

	t.Run("provider failure", func(t *testing.T) {
		env := newTestEnv(t, nil, nil)
		env.purchases.EXPECT().StartCheckout(gomock.Any(), gomock.Any()).
			Return(nil, serrors.With(serrors.ErrPayment, "Invalid API Key provided"))

		rec := env.do(formRequest("/create-checkout-session", url.Values{"domain": {"foo.com"}}))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Equal(t, "Failed to create checkout session.", rec.Body.String())
	})
}

func TestSuccessPage(t *testing.T) {
	t.Run("paid", func(t *testing.T) {
		env := newTestEnv(t, nil, nil)
		env.purchases.EXPECT().CompleteCheckout(gomock.Any(), purchase.CompleteRequest{
			SessionID: "cs_1", Domain: "foo.com", Email: "a@b.com", Amount: "15",
		}).Return(paidAttempt(domain.RegistrationFailed("Domain taken")), nil)

		rec := env.do(httptest.NewRequest(http.MethodGet,
			"/success?session_id=cs_1&domain=foo.com&email=a%40b.com&amount=15", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
		require.Contains(t, rec.Body.String(), "<b>foo.com</b>")
		require.Contains(t, rec.Body.String(), "<b>Failed</b>")
		require.Contains(t, rec.Body.String(), "Error: Domain taken")
	})

	t.Run("not paid", func(t *testing.T) {
		env := newTestEnv(t, nil, nil)
		env.purchases.EXPECT().CompleteCheckout(gomock.Any(), gomock.Any()).
			Return(nil, serrors.With(serrors.ErrPaymentRequired, "Payment not completed."))

		rec := env.do(httptest.NewRequest(http.MethodGet, "/success?session_id=cs_1", nil))
		require.Equal(t, http.StatusPaymentRequired, rec.Code)
		require.Equal(t, "Payment not completed.", rec.Body.String())
	})
}

func TestPayForm(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		env := newTestEnv(t, nil, nil)

		rec := env.do(httptest.NewRequest(http.MethodGet, "/pay", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `action="/create-checkout-session"`)
		require.NotContains(t, rec.Body.String(), `class="error"`)
	})

	t.Run("taken domain is escaped", func(t *testing.T) {
		env := newTestEnv(t, nil, nil)
		env.purchases.EXPECT().CheckDomain(gomock.Any(), "<b>x.com").
			Return(nil, serrors.With(serrors.ErrBadRequest, "Invalid domain name."))

		rec := env.do(httptest.NewRequest(http.MethodGet, "/pay?domain=%3Cb%3Ex.com", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "Invalid domain name.")
		require.NotContains(t, rec.Body.String(), "<b>x.com")
	})

	t.Run("taken", func(t *testing.T) {
		env := newTestEnv(t, nil, nil)
		env.purchases.EXPECT().CheckDomain(gomock.Any(), "foo.com").Return(&purchase.DomainCheck{
			Domain:  "foo.com",
			Message: "Sorry, the domain foo.com is already taken. Please choose another.",
		}, nil)

		rec := env.do(httptest.NewRequest(http.MethodGet, "/pay?domain=foo.com", nil))
		require.Contains(t, rec.Body.String(), "Sorry, the domain foo.com is already taken.")
		require.Contains(t, rec.Body.String(), `value="foo.com"`)
	})
}

func TestSignup(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		env := newTestEnv(t, nil, nil)
		env.accounts.EXPECT().Signup(gomock.Any(), account.SignupRequest{Email: "a@b.com", Domain: "foo.com"}).
			Return(&domain.User{ID: 7, Email: "a@b.com", Domain: "foo.com", PaymentCustomerRef: "cus_1", ReferralCode: "ABCD2345"}, nil)

		rec := env.do(jsonRequest(http.MethodPost, "/signup", `{"email":"a@b.com","domain":"foo.com"}`))
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"id":7,"email":"a@b.com","domain":"foo.com","stripeCustomerId":"cus_1","referralCode":"ABCD2345"}`,
			rec.Body.String())
	})

	t.Run("duplicate", func(t *testing.T) {
		env := newTestEnv(t, nil, nil)
		env.accounts.EXPECT().Signup(gomock.Any(), gomock.Any()).
			Return(nil, serrors.With(serrors.ErrConflict, "A user with this email already exists."))

		rec := env.do(jsonRequest(http.MethodPost, "/signup", `{"email":"a@b.com","domain":"foo.com"}`))
		require.Equal(t, http.StatusConflict, rec.Code)
		require.JSONEq(t, `{"email":"a@b.com","domain":"foo.com","error":"A user with this email already exists."}`,
			rec.Body.String())
	})
}

func TestReferral(t *testing.T) {
	t.Run("tracked", func(t *testing.T) {
		env := newTestEnv(t, nil, nil)
		env.accounts.EXPECT().TrackReferral(gomock.Any(), domain.UserID(7), "friend@b.com").
			Return(&domain.Referral{ID: 3, UserID: 7, ReferredEmail: "friend@b.com"}, nil)

		rec := env.do(jsonRequest(http.MethodPost, "/referral", `{"userId":7,"referredEmail":"friend@b.com"}`))
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"referralId":3,"userId":7,"referredEmail":"friend@b.com","message":"Referral tracked!"}`,
			rec.Body.String())
	})

	t.Run("bad user id", func(t *testing.T) {
		env := newTestEnv(t, nil, nil)

		rec := env.do(jsonRequest(http.MethodPost, "/referral", `{"userId":"seven","referredEmail":"friend@b.com"}`))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.JSONEq(t, `{"referralId":null,"userId":"seven","referredEmail":"friend@b.com","message":null,
			"error":"userId must be a positive integer."}`, rec.Body.String())
	})

	t.Run("unknown user", func(t *testing.T) {
		env := newTestEnv(t, nil, nil)
		env.accounts.EXPECT().TrackReferral(gomock.Any(), domain.UserID(9), "friend@b.com").
			Return(nil, serrors.With(serrors.ErrNotFound, "User not found."))

		rec := env.do(jsonRequest(http.MethodPost, "/referral", `{"userId":"9","referredEmail":"friend@b.com"}`))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUser(t *testing.T) {
	user := &domain.User{ID: 7, Email: "a@b.com", Domain: "foo.com"}

	t.Run("by id", func(t *testing.T) {
		env := newTestEnv(t, nil, nil)
		env.accounts.EXPECT().User(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, l account.Lookup) (*domain.User, error) {
				require.Empty(t, l.Email)
				require.Equal(t, domain.UserID(7), *l.ID)

				return user, nil
			})

		rec := env.do(httptest.NewRequest(http.MethodGet, "/user?id=7", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "a@b.com", decodeBody(t, rec)["email"])
	})

	t.Run("neither", func(t *testing.T) {
		env := newTestEnv(t, nil, nil)
		env.accounts.EXPECT().User(gomock.Any(), account.Lookup{}).
			Return(nil, serrors.With(serrors.ErrBadRequest, "Provide email or id."))

		rec := env.do(httptest.NewRequest(http.MethodGet, "/user", nil))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.JSONEq(t, `{"error":"Provide email or id."}`, rec.Body.String())
	})

	t.Run("bearer protected", func(t *testing.T) {
		priv, pubPEM := genRSAKeys(t)
		env := newTestEnv(t, newSecHandlerForTest(t, pubPEM), nil)

		rec := env.do(httptest.NewRequest(http.MethodGet, "/user?email=a@b.com", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		env.accounts.EXPECT().User(gomock.Any(), account.Lookup{Email: "a@b.com"}).Return(user, nil).Times(2)

		req := httptest.NewRequest(http.MethodGet, "/user?email=a@b.com", nil)
		req.Header.Set("Authorization", "Bearer "+signJWTRS256(t, priv, "7", time.Now(), time.Now().Add(time.Hour)))
		rec = env.do(req)
		require.Equal(t, http.StatusOK, rec.Code)

		req = httptest.NewRequest(http.MethodGet, "/user?email=a@b.com", nil)
		req.Header.Set("Authorization", "Bearer "+signJWTRS256(t, priv, "8", time.Now(), time.Now().Add(time.Hour)))
		rec = env.do(req)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestDomainCheck(t *testing.T) {
	t.Run("available", func(t *testing.T) {
		env := newTestEnv(t, nil, nil)
		env.purchases.EXPECT().CheckDomain(gomock.Any(), "foo.com").
			Return(&purchase.DomainCheck{Available: true, Domain: "foo.com", Message: "The domain foo.com is available."}, nil)

		rec := env.do(jsonRequest(http.MethodPost, "/api/domain/check", `{"domain":"foo.com"}`))
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"available":true,"domain":"foo.com","message":"The domain foo.com is available."}`, rec.Body.String())
	})

	t.Run("missing", func(t *testing.T) {
		env := newTestEnv(t, nil, nil)
		env.purchases.EXPECT().CheckDomain(gomock.Any(), "").
			Return(nil, serrors.With(serrors.ErrBadRequest, "Domain is required."))

		rec := env.do(jsonRequest(http.MethodPost, "/api/domain/check", `{}`))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.JSONEq(t, `{"available":false,"domain":null,"error":"Domain is required."}`, rec.Body.String())
	})
}

func TestHealth(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		env := newTestEnv(t, nil, pingFunc(func(context.Context) error { return nil }))

		rec := env.do(httptest.NewRequest(http.MethodGet, "/api/health", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"status":"ok","database":true,"integrations":{
			"registrar":true,"payment":true,"purchaseWebhook":false,"referralWebhook":false,"shopcoKey":false}}`,
			rec.Body.String())
	})

	t.Run("database down", func(t *testing.T) {
		env := newTestEnv(t, nil, pingFunc(func(context.Context) error { return errors.New("refused") }))

		rec := env.do(httptest.NewRequest(http.MethodGet, "/api/health", nil))
		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		require.Equal(t, "degraded", decodeBody(t, rec)["status"])
	})
}
