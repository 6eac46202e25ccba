package cart

import (
	"context"
	"testing"

	"github.com/minikart-next/minikart/internal/models"

	"github.com/shopspring/decimal"
)

func TestClampQuantity(t *testing.T) {
	cases := []struct {
		name      string
		requested int
		max       int
		want      int
	}{
		{"zero floors to one", 0, 10, 1},
		{"negative floors to one", -5, 10, 1},
		{"within range passes through", 3, 10, 3},
		{"above max clamps", 15, 10, 10},
		{"max exactly", 10, 10, 10},
		{"unknown max keeps request", 7, 0, 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClampQuantity(tc.requested, tc.max); got != tc.want {
				t.Fatalf("ClampQuantity(%d, %d) = %d, want %d", tc.requested, tc.max, got, tc.want)
			}
		})
	}
}

func TestEffectiveQuantity(t *testing.T) {
	item := Item{ID: 1, Quantity: 5, ConsumerQuantity: 0}
	if got := item.EffectiveQuantity(); got != 1 {
		t.Fatalf("zero consumer quantity should floor to 1, got %d", got)
	}
	item.ConsumerQuantity = 9
	if got := item.EffectiveQuantity(); got != 5 {
		t.Fatalf("consumer quantity should clamp to stock, got %d", got)
	}
}

func TestStoreCurrentMissingCartIsEmpty(t *testing.T) {
	store := NewStore(NewMemoryStorage())
	items, err := store.Current(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil cart, got %#v", items)
	}
}

func TestStoreReplaceRoundTrip(t *testing.T) {
	store := NewStore(NewMemoryStorage())
	ctx := context.Background()

	in := []Item{
		{ID: 1, Name: "Pen", Price: models.NewMoneyFromDecimal(decimal.NewFromInt(50)), Quantity: 10, ConsumerQuantity: 2},
		{ID: 2, Name: "Notebook", Price: models.NewMoneyFromDecimal(decimal.NewFromInt(150)), Quantity: 5, ConsumerQuantity: 1},
	}
	if err := store.Replace(ctx, "s1", in); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	out, err := store.Current(ctx, "s1")
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 items, got %d", len(out))
	}
	if out[0].Name != "Pen" || out[1].ConsumerQuantity != 1 {
		t.Fatalf("round trip mismatch: %#v", out)
	}
}

func TestStoreReplaceNilBecomesEmpty(t *testing.T) {
	store := NewStore(NewMemoryStorage())
	ctx := context.Background()

	if err := store.Replace(ctx, "s1", nil); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	out, err := store.Current(ctx, "s1")
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty cart, got %#v", out)
	}
}

func TestStoreClearRemovesKey(t *testing.T) {
	storage := NewMemoryStorage()
	store := NewStore(storage)
	ctx := context.Background()

	if err := store.Replace(ctx, "s1", []Item{{ID: 1, Quantity: 1, ConsumerQuantity: 1}}); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	if err := store.Clear(ctx, "s1"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	_, found, err := storage.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if found {
		t.Fatal("expected key to be deleted after Clear")
	}
}

func TestStoreSessionsAreIsolated(t *testing.T) {
	store := NewStore(NewMemoryStorage())
	ctx := context.Background()

	if err := store.Replace(ctx, "a", []Item{{ID: 1, Quantity: 3, ConsumerQuantity: 2}}); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}
	b, err := store.Current(ctx, "b")
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if len(b) != 0 {
		t.Fatalf("session b should be empty, got %#v", b)
	}
}
