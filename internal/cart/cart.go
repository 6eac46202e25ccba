package cart

import "github.com/minikart-next/minikart/internal/models"

// Item is one selected line in the cart. Quantity mirrors the stock
// available when the item was added; ConsumerQuantity is the user-chosen
// purchase count, kept within [1, Quantity].
type Item struct {
	ID               uint         `json:"id"`                          // product reference
	Name             string       `json:"name"`                        // name snapshot
	Description      string       `json:"description"`                 // description snapshot
	Price            models.Money `json:"price"`                       // unit price snapshot
	Quantity         int          `json:"quantity"`                    // stock available
	ConsumerQuantity int          `json:"consumer_quantity,omitempty"` // user-selected count, defaults to 1
}

// EffectiveQuantity returns the purchase count for the item: the consumer
// quantity clamped into [1, Quantity], with an unset value reading as 1.
func (i Item) EffectiveQuantity() int {
	return ClampQuantity(i.ConsumerQuantity, i.Quantity)
}

// ClampQuantity clamps requested into [1, max]. A max below 1 still yields
// at least 1, so a malformed item never zeroes out a line.
func ClampQuantity(requested, max int) int {
	if requested < 1 {
		requested = 1
	}
	if max >= 1 && requested > max {
		return max
	}
	return requested
}
