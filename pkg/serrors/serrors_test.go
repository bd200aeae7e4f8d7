package serrors_test

import (
	"errors"
	"fmt"
	"testing"

	"domainshop/pkg/serrors"

	"github.com/stretchr/testify/require"
)

type customError struct{ msg string }

func (e customError) Error() string { return e.msg }

func TestDefaultKindsDistinct(t *testing.T) {
	kinds := []serrors.Kind{
		serrors.ErrNotFound,
		serrors.ErrUnauthorized,
		serrors.ErrForbidden,
		serrors.ErrBadRequest,
		serrors.ErrConflict,
		serrors.ErrInternal,
		serrors.ErrTimeout,
		serrors.ErrUnavailable,
		serrors.ErrConfiguration,
		serrors.ErrPaymentRequired,
		serrors.ErrPayment,
		serrors.ErrRegistration,
		serrors.ErrTransport,
		serrors.ErrPersistence,
	}
	seen := map[serrors.Kind]bool{}
	for i, k := range kinds {
		require.NotNil(t, k, "kind at index %d is nil", i)
		require.False(t, seen[k], "kind at index %d is duplicate: %v", i, k)
		seen[k] = true
	}
}

func TestErrorFormatting(t *testing.T) {
	base := errors.New("connection refused")

	e1 := serrors.With(serrors.ErrNotFound, "user %d not found", 42)
	require.Equal(t, "user 42 not found", e1.Error())

	e2 := serrors.Wrap(serrors.ErrTransport, base, "posting envelope")
	require.Equal(t, "posting envelope: connection refused", e2.Error())

	e3 := serrors.KindOnly(serrors.ErrPayment)
	require.Equal(t, "PAYMENT", e3.Error())
}

func TestIsMatchesKindAndWrapped(t *testing.T) {
	base := customError{"root cause"}
	e := serrors.Wrap(serrors.ErrPersistence, base, "inserting user")

	require.ErrorIs(t, e, serrors.ErrPersistence)
	require.ErrorIs(t, e, base)
	require.NotErrorIs(t, e, serrors.ErrUnauthorized)
}

func TestAsMatchesKindAndWrapped(t *testing.T) {
	base := &customError{"root cause"}
	e := serrors.Wrap(serrors.ErrNotFound, base, "reading")

	var k serrors.Kind
	require.ErrorAs(t, e, &k)
	require.Equal(t, serrors.ErrNotFound, k)

	var ce *customError
	require.ErrorAs(t, e, &ce)
	require.Equal(t, base, ce)
}

func TestAccessors(t *testing.T) {
	base := errors.New("boom")
	e := serrors.Wrap(serrors.ErrForbidden, base, "bad key")
	require.Equal(t, serrors.ErrForbidden, e.Kind())
	require.Equal(t, "bad key", e.Message())
	require.Equal(t, base, e.Cause())
}

func TestKindOfAndMessageOf(t *testing.T) {
	inner := serrors.With(serrors.ErrPaymentRequired, "Payment method required.")
	wrapped := fmt.Errorf("purchase: %w", inner)

	require.Equal(t, serrors.ErrPaymentRequired, serrors.KindOf(wrapped))
	require.Equal(t, "Payment method required.", serrors.MessageOf(wrapped))

	plain := errors.New("plain")
	require.Nil(t, serrors.KindOf(plain))
	require.Equal(t, "plain", serrors.MessageOf(plain))
	require.Empty(t, serrors.MessageOf(nil))
}

func TestValidation(t *testing.T) {
	require.NoError(t, serrors.Validation(&serrors.ValidationError{}, "invalid"))
	require.NoError(t, serrors.Validation(nil, "invalid"))

	v := &serrors.ValidationError{}
	v.Add("email", "is required")
	v.Add("email", "ignored second problem")
	v.Add("amount", "must be positive")

	err := serrors.Validation(v, "Email, domain, and amount are required.")
	require.ErrorIs(t, err, serrors.ErrBadRequest)
	require.Equal(t, "Email, domain, and amount are required.", serrors.MessageOf(err))

	var got *serrors.ValidationError
	require.ErrorAs(t, err, &got)
	require.Equal(t, map[string]string{"email": "is required", "amount": "must be positive"}, got.Fields)
	require.Equal(t, "amount: must be positive; email: is required", got.Error())
}
