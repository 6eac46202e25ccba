package checkout

import (
	"testing"

	"github.com/minikart-next/minikart/internal/cart"
	"github.com/minikart-next/minikart/internal/models"

	"github.com/shopspring/decimal"
)

func money(value string) models.Money {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return models.NewMoneyFromDecimal(d)
}

func TestFormatINR(t *testing.T) {
	cases := []struct {
		amount string
		want   string
	}{
		{"0", "₹0.00"},
		{"250", "₹250.00"},
		{"1234", "₹1,234.00"},
		{"99999", "₹99,999.00"},
		{"100000", "₹1,00,000.00"},
		{"250000", "₹2,50,000.00"},
		{"12345678.9", "₹1,23,45,678.90"},
		{"-1234.5", "-₹1,234.50"},
	}
	for _, tc := range cases {
		if got := FormatINR(money(tc.amount)); got != tc.want {
			t.Fatalf("FormatINR(%s) = %q, want %q", tc.amount, got, tc.want)
		}
	}
}

func TestTotalSumsEffectiveQuantities(t *testing.T) {
	// two lines at 50 x 2 and 150 x 1
	items := []cart.Item{
		{ID: 1, Price: money("50"), Quantity: 10, ConsumerQuantity: 2},
		{ID: 2, Price: money("150"), Quantity: 5, ConsumerQuantity: 1},
	}
	if got := FormattedTotal(items); got != "₹250.00" {
		t.Fatalf("FormattedTotal = %q, want ₹250.00", got)
	}
}

func TestTotalClampsMalformedQuantities(t *testing.T) {
	items := []cart.Item{
		// unset consumer quantity reads as 1
		{ID: 1, Price: money("100"), Quantity: 10},
		// over-stock request clamps to the 3 available
		{ID: 2, Price: money("10"), Quantity: 3, ConsumerQuantity: 99},
	}
	if got := Total(items).String(); got != "130.00" {
		t.Fatalf("Total = %q, want 130.00", got)
	}
}

func TestTotalEmptyCartIsFormattedZero(t *testing.T) {
	if got := FormattedTotal(nil); got != "₹0.00" {
		t.Fatalf("FormattedTotal(nil) = %q, want ₹0.00", got)
	}
	if got := FormattedTotal([]cart.Item{}); got != "₹0.00" {
		t.Fatalf("FormattedTotal(empty) = %q, want ₹0.00", got)
	}
}
