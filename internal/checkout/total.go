package checkout

import (
	"strings"

	"github.com/minikart-next/minikart/internal/cart"
	"github.com/minikart-next/minikart/internal/models"

	"github.com/shopspring/decimal"
)

// Total sums price x effective quantity over all items. The effective
// quantity is the consumer quantity clamped into [1, stock], with an unset
// value reading as 1. A nil or empty cart totals zero; nothing here can
// fail.
func Total(items []cart.Item) models.Money {
	sum := decimal.Zero
	for _, item := range items {
		quantity := decimal.NewFromInt(int64(item.EffectiveQuantity()))
		sum = sum.Add(item.Price.Decimal.Mul(quantity))
	}
	return models.NewMoneyFromDecimal(sum)
}

// FormattedTotal renders the cart total as a localized INR currency string,
// e.g. "₹2,50,000.00". An empty cart renders "₹0.00".
func FormattedTotal(items []cart.Item) string {
	return FormatINR(Total(items))
}

// FormatINR formats an amount with the rupee sign and Indian digit grouping
// (last three digits, then groups of two).
func FormatINR(amount models.Money) string {
	fixed := amount.Decimal.Round(2).StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	if negative {
		fixed = fixed[1:]
	}
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	if negative {
		b.WriteString("-")
	}
	b.WriteString("₹")
	b.WriteString(groupIndian(intPart))
	b.WriteString(".")
	b.WriteString(fracPart)
	return b.String()
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	groups := []string{}
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(append(groups, tail), ",")
}
