package v1handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"domainshop/pkg/logger"
	"domainshop/pkg/serrors"

	"go.uber.org/zap"
)

// kindStatus maps semantic error kinds to HTTP status codes.
var kindStatus = map[serrors.Kind]int{ //nolint: gochecknoglobals
	serrors.ErrBadRequest:      http.StatusBadRequest,
	serrors.ErrUnauthorized:    http.StatusUnauthorized,
	serrors.ErrPaymentRequired: http.StatusPaymentRequired,
	serrors.ErrForbidden:       http.StatusForbidden,
	serrors.ErrNotFound:        http.StatusNotFound,
	serrors.ErrConflict:        http.StatusConflict,
	serrors.ErrTimeout:         http.StatusGatewayTimeout,
	serrors.ErrUnavailable:     http.StatusServiceUnavailable,
}

// kindMessage is shown when an error carries no message of its own.
var kindMessage = map[serrors.Kind]string{ //nolint: gochecknoglobals
	serrors.ErrBadRequest:   "bad request",
	serrors.ErrUnauthorized: "unauthorized",
	serrors.ErrForbidden:    "forbidden",
	serrors.ErrNotFound:     "resource not found",
	serrors.ErrConflict:     "conflict",
	serrors.ErrTimeout:      "request timed out",
	serrors.ErrUnavailable:  "service unavailable",
}

const internalMessage = "internal error"

// StatusOf returns the HTTP status and the client-facing message for err.
// Errors without a kind, and internal or configuration failures, never expose
// their text.
func StatusOf(err error) (int, string) {
	kind := serrors.KindOf(err)
	if kind == nil {
		// a bare kind sentinel
		_ = errors.As(err, &kind)
	}

	status, ok := kindStatus[kind]
	if !ok {
		status = http.StatusInternalServerError
	}

	switch kind {
	case nil, serrors.ErrInternal, serrors.ErrConfiguration:
		return status, internalMessage
	}

	msg := serrors.MessageOf(err)
	if msg == "" || msg == kind.Error() {
		if m, ok := kindMessage[kind]; ok {
			return status, m
		}

		return status, internalMessage
	}

	return status, msg
}

// logFailure logs err at a level matching its status.
func logFailure(ctx context.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error(ctx, "request failed", zap.Int("status", status), zap.Error(err))

		return
	}
	logger.Debug(ctx, "request rejected", zap.Int("status", status), zap.Error(err))
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn(ctx, "could not write response", zap.Error(err))
	}
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(msg))
}
