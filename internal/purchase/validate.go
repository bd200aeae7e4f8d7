package purchase

import (
	"net/mail"
	"strings"

	"domainshop/pkg/domain"
	"domainshop/pkg/serrors"

	"github.com/shopspring/decimal"
)

const (
	msgRequired = "Email, domain, and amount are required."
	msgInvalid  = "Invalid email, domain or amount."
)

// zeroDecimal lists currencies charged in whole units.
var zeroDecimal = map[string]bool{ //nolint: gochecknoglobals
	"bif": true, "clp": true, "djf": true, "gnf": true, "jpy": true, "kmf": true,
	"krw": true, "mga": true, "pyg": true, "rwf": true, "ugx": true, "vnd": true,
	"vuv": true, "xaf": true, "xof": true, "xpf": true,
}

// MaxMinorUnits is the largest amount, in minor units, a single charge may
// carry.
const MaxMinorUnits = 99_999_999

// MinorUnits converts amount to the currency's minor units, rounding half up.
// Amounts above MaxMinorUnits are rejected by validation before conversion.
func MinorUnits(amount decimal.Decimal, currency string) int64 {
	return minorUnits(amount, currency).IntPart()
}

func minorUnits(amount decimal.Decimal, currency string) decimal.Decimal {
	if !zeroDecimal[strings.ToLower(currency)] {
		amount = amount.Shift(2)
	}

	return amount.Round(0)
}

// validate checks the three purchase fields and returns a fresh attempt in
// the Validated state.
func validate(email, rawDomain, rawAmount, currency string) (*domain.PurchaseAttempt, error) {
	email = strings.TrimSpace(email)
	rawAmount = strings.TrimSpace(rawAmount)

	missing := &serrors.ValidationError{}
	if email == "" {
		missing.Add("email", "is required")
	}
	if strings.TrimSpace(rawDomain) == "" {
		missing.Add("domain", "is required")
	}
	if rawAmount == "" {
		missing.Add("amount", "is required")
	}
	if err := serrors.Validation(missing, msgRequired); err != nil {
		return nil, err
	}

	invalid := &serrors.ValidationError{}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		invalid.Add("email", "is not a valid email address")
	}
	name, err := NormalizeDomain(rawDomain)
	if err != nil {
		invalid.Add("domain", err.Error())
	}
	amount, err := decimal.NewFromString(rawAmount)
	if err != nil {
		invalid.Add("amount", "is not a number")
	} else {
		minor := minorUnits(amount, currency)
		switch {
		case !amount.IsPositive():
			invalid.Add("amount", "must be greater than zero")
		case minor.LessThan(decimal.NewFromInt(1)):
			invalid.Add("amount", "is below the smallest chargeable unit")
		case minor.GreaterThan(decimal.NewFromInt(MaxMinorUnits)):
			invalid.Add("amount", "exceeds the largest chargeable amount")
		}
	}
	if err := serrors.Validation(invalid, msgInvalid); err != nil {
		return nil, err
	}

	return &domain.PurchaseAttempt{
		Email:  email,
		Domain: name,
		Amount: amount,
		State:  domain.PurchaseStateValidated,
	}, nil
}
