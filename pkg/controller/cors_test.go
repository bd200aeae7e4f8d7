package controller_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"domainshop/pkg/controller"

	"github.com/stretchr/testify/require"
)

func TestWithCORS_Preflight(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true })

	rec := httptest.NewRecorder()
	controller.WithCORS(nil)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/pay", nil))

	require.False(t, called, "preflight must not reach the handler")
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "X-Shopco-Webhook-Key")
	require.Equal(t, "GET, POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
}

func TestWithCORS_CustomHeaders(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) })

	rec := httptest.NewRecorder()
	controller.WithCORS([]string{"Content-Type", "X-Custom"})(next).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pay", nil))

	require.Equal(t, http.StatusTeapot, rec.Code)
	require.Equal(t, "Content-Type, X-Custom", rec.Header().Get("Access-Control-Allow-Headers"))
}
