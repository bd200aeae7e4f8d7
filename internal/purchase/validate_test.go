package purchase_test

import (
	"testing"

	"domainshop/internal/purchase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		amount   string
		currency string
		want     int64
	}{
		{amount: "15", currency: "usd", want: 1500},
		{amount: "15.5", currency: "usd", want: 1550},
		{amount: "15.005", currency: "usd", want: 1501},
		{amount: "15.004", currency: "usd", want: 1500},
		{amount: "0.01", currency: "eur", want: 1},
		{amount: "1500", currency: "jpy", want: 1500},
		{amount: "1500.5", currency: "JPY", want: 1501},
		{amount: "999999.99", currency: "usd", want: purchase.MaxMinorUnits},
	}

	for _, tt := range tests {
		t.Run(tt.amount+tt.currency, func(t *testing.T) {
			require.Equal(t, tt.want, purchase.MinorUnits(decimal.RequireFromString(tt.amount), tt.currency))
		})
	}
}
