package purchase

import (
	"errors"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

var (
	errEmptyDomain        = errors.New("is required")
	errInvalidDomain      = errors.New("is not a valid domain name")
	errUnregistrable      = errors.New("must be a registrable domain under a public suffix")
	errNotRegistrableRoot = errors.New("must not be a subdomain")
)

// NormalizeDomain returns the canonical, registrable form of a domain typed by
// a buyer.
//
// The rules are:
//   - Trim whitespace and lower-case
//   - Accept a pasted URL and keep only its host
//   - Drop a port, a trailing dot and a leading "www."
//   - Require an ICANN public suffix with exactly one label in front of it
func NormalizeDomain(raw string) (string, error) {
	d := strings.ToLower(strings.TrimSpace(raw))
	if d == "" {
		return "", errEmptyDomain
	}

	// pasted URL, with or without a scheme
	if strings.Contains(d, "://") {
		u, err := url.Parse(d)
		if err != nil {
			return "", errInvalidDomain
		}
		d = u.Host
	}
	if i := strings.IndexAny(d, "/?#"); i >= 0 {
		d = d[:i]
	}
	if h, _, err := net.SplitHostPort(d); err == nil {
		d = h
	}

	d = strings.TrimSuffix(d, ".")
	d = strings.TrimPrefix(d, "www.")
	if !validLabels(d) {
		return "", errInvalidDomain
	}

	suffix, icann := publicsuffix.PublicSuffix(d)
	if !icann || suffix == d {
		return "", errUnregistrable
	}
	registrable, err := publicsuffix.EffectiveTLDPlusOne(d)
	if err != nil {
		return "", errUnregistrable
	}
	if registrable != d {
		return "", errNotRegistrableRoot
	}

	return d, nil
}

// validLabels checks LDH syntax: labels of 1 to 63 letters, digits or inner
// hyphens, at least two of them, 253 characters overall.
func validLabels(d string) bool {
	if len(d) == 0 || len(d) > 253 {
		return false
	}
	labels := strings.Split(d, ".")
	if len(labels) < 2 {
		return false
	}
	for _, l := range labels {
		if len(l) == 0 || len(l) > 63 || l[0] == '-' || l[len(l)-1] == '-' {
			return false
		}
		for _, c := range l {
			if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '-' {
				return false
			}
		}
	}

	return true
}
