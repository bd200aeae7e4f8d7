package opensrs

import (
	"crypto/hmac"
	"crypto/sha1" //nolint: gosec
	"encoding/hex"

	"domainshop/pkg/serrors"
)

// Sign returns the lowercase hex HMAC-SHA1 of body keyed with secret. An empty
// secret is a configuration error; nothing is signed with an empty key.
func Sign(body []byte, secret string) (string, error) {
	if secret == "" {
		return "", serrors.With(serrors.ErrConfiguration, "signing secret is not configured")
	}
	mac := hmac.New(sha1.New, []byte(secret))
	_, _ = mac.Write(body)

	return hex.EncodeToString(mac.Sum(nil)), nil
}
