// Package registrar defines the storefront's view of a domain registrar: a
// two-outcome black box that answers availability lookups and registers
// domains. Implementations absorb every transport and parse failure into the
// returned result and never hand raw reply text to callers.
package registrar

import (
	"context"

	"domainshop/pkg/domain"
)

// Client checks and registers domains with a registrar.
//
//go:generate mockgen -package mockregistrar -source=interface.go -destination=mock/mockregistrar.go *
type Client interface {
	// CheckAvailability reports whether domainName can be registered. Any
	// failure degrades to Available=false with Err describing the cause.
	CheckAvailability(ctx context.Context, domainName string) domain.AvailabilityResult
	// RegisterDomain registers domainName on behalf of registrantEmail. It makes
	// exactly one attempt and always returns a result.
	RegisterDomain(ctx context.Context, domainName, registrantEmail string) domain.RegistrationResult
}
