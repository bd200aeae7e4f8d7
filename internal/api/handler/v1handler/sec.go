package v1handler

import (
	"context"
	"crypto/rsa"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"domainshop/internal/config"
	"domainshop/pkg/domain"
	"domainshop/pkg/serrors"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

// UserIDKey is the context key under which the authenticated user's ID is
// stored.
const UserIDKey ctxKey = "userID"

// SecHandlerOptions configures bearer authentication.
type SecHandlerOptions struct {
	// PublicKey is the PEM encoded RSA key tokens are verified with.
	PublicKey string
}

// NewSecHandlerOptions returns nil when no public key is configured, which
// leaves the user lookup unauthenticated.
func NewSecHandlerOptions(cfg *config.Config) *SecHandlerOptions {
	if strings.TrimSpace(cfg.JWT.PublicKey) == "" {
		return nil
	}

	return &SecHandlerOptions{PublicKey: cfg.JWT.PublicKey}
}

// SecHandler verifies RS256 bearer tokens whose subject is a user ID.
type SecHandler struct {
	publicKey *rsa.PublicKey
}

// NewSecHandler parses the configured key. Nil options yield a nil handler.
func NewSecHandler(opts *SecHandlerOptions) (*SecHandler, error) {
	if opts == nil {
		return nil, nil //nolint: nilnil
	}
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(opts.PublicKey))
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA public key: %w", err)
	}

	return &SecHandler{publicKey: key}, nil
}

// Authenticate validates token and returns ctx carrying the subject's user ID.
func (s *SecHandler) Authenticate(ctx context.Context, token string) (context.Context, error) {
	claims := jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.publicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return ctx, serrors.Wrap(serrors.ErrUnauthorized, err, "invalid token")
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return ctx, serrors.With(serrors.ErrUnauthorized, "invalid token subject")
	}

	return context.WithValue(ctx, UserIDKey, domain.UserID(id)), nil
}

// RequireBearer rejects requests without a valid bearer token.
func (s *SecHandler) RequireBearer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			writeError(w, r, serrors.With(serrors.ErrUnauthorized, "missing bearer token"))

			return
		}

		ctx, err := s.Authenticate(r.Context(), strings.TrimSpace(token))
		if err != nil {
			writeError(w, r, err)

			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
