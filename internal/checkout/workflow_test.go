package checkout

import (
	"context"
	"errors"
	"runtime"
	"testing"

	"github.com/minikart-next/minikart/internal/cart"
	"github.com/minikart-next/minikart/internal/models"
	"github.com/minikart-next/minikart/internal/payment/braintree"

	"github.com/shopspring/decimal"
)

type fakeDirectory struct {
	users map[uint]*models.User
}

func (d *fakeDirectory) GetByID(id uint) (*models.User, error) {
	return d.users[id], nil
}

type fakePlacer struct {
	fail    bool
	created int
	lastPay models.JSON
}

func (p *fakePlacer) CreateFromCart(buyer *models.User, items []cart.Item, payment models.JSON) (*models.Order, error) {
	if p.fail {
		return nil, errors.New("db down")
	}
	p.created++
	p.lastPay = payment
	return &models.Order{ID: 1, OrderNo: "MK-TEST", BuyerID: buyer.ID}, nil
}

type fakeGateway struct {
	fail  bool
	sales int
	block chan struct{}
}

func (g *fakeGateway) Sale(ctx context.Context, input braintree.SaleInput) (*braintree.SaleResult, error) {
	if g.block != nil {
		<-g.block
	}
	if g.fail {
		return nil, errors.New("card declined")
	}
	g.sales++
	return &braintree.SaleResult{
		TransactionID: "t-1",
		Status:        "submitted_for_settlement",
		Amount:        input.Amount.String(),
		Currency:      input.Currency,
	}, nil
}

func buyerWithAddress() *models.User {
	return &models.User{ID: 7, Name: "Asha", Email: "asha@example.com", Address: "12 MG Road"}
}

func testItems() []cart.Item {
	return []cart.Item{
		{ID: 1, Name: "Pen", Price: models.NewMoneyFromDecimal(decimal.NewFromInt(50)), Quantity: 10, ConsumerQuantity: 2},
		{ID: 2, Name: "Notebook", Price: models.NewMoneyFromDecimal(decimal.NewFromInt(150)), Quantity: 5, ConsumerQuantity: 1},
	}
}

func newTestWorkflow(users *fakeDirectory, placer *fakePlacer, gateway *fakeGateway) (*Workflow, *cart.Store) {
	store := cart.NewStore(cart.NewMemoryStorage())
	return NewWorkflow(store, users, placer, gateway, nil), store
}

func TestSubmitRequiresAuthentication(t *testing.T) {
	w, store := newTestWorkflow(&fakeDirectory{users: map[uint]*models.User{}}, &fakePlacer{}, &fakeGateway{})
	ctx := context.Background()
	if err := store.Replace(ctx, "s1", testItems()); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	if _, err := w.Submit(ctx, "s1", 0); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("anonymous submit: got %v, want ErrNotAuthenticated", err)
	}
	if _, err := w.Submit(ctx, "s1", 99); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("unknown user submit: got %v, want ErrNotAuthenticated", err)
	}

	items, _ := store.Current(ctx, "s1")
	if len(items) != 2 {
		t.Fatalf("cart should be untouched after guard rejection, got %d items", len(items))
	}
}

func TestSubmitRequiresAddress(t *testing.T) {
	buyer := buyerWithAddress()
	buyer.Address = "   "
	users := &fakeDirectory{users: map[uint]*models.User{buyer.ID: buyer}}
	w, store := newTestWorkflow(users, &fakePlacer{}, &fakeGateway{})
	ctx := context.Background()
	if err := store.Replace(ctx, "s1", testItems()); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	if _, err := w.Submit(ctx, "s1", buyer.ID); !errors.Is(err, ErrNoAddress) {
		t.Fatalf("got %v, want ErrNoAddress", err)
	}
}

func TestSubmitRequiresNonEmptyCart(t *testing.T) {
	buyer := buyerWithAddress()
	users := &fakeDirectory{users: map[uint]*models.User{buyer.ID: buyer}}
	w, _ := newTestWorkflow(users, &fakePlacer{}, &fakeGateway{})

	if _, err := w.Submit(context.Background(), "s1", buyer.ID); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("got %v, want ErrEmptyCart", err)
	}
}

func TestSubmitSuccessClearsCart(t *testing.T) {
	buyer := buyerWithAddress()
	users := &fakeDirectory{users: map[uint]*models.User{buyer.ID: buyer}}
	placer := &fakePlacer{}
	gateway := &fakeGateway{}
	w, store := newTestWorkflow(users, placer, gateway)
	ctx := context.Background()
	if err := store.Replace(ctx, "s1", testItems()); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	order, err := w.Submit(ctx, "s1", buyer.ID)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if order == nil || order.OrderNo != "MK-TEST" {
		t.Fatalf("unexpected order: %#v", order)
	}
	if gateway.sales != 1 || placer.created != 1 {
		t.Fatalf("expected one sale and one order, got %d/%d", gateway.sales, placer.created)
	}
	if placer.lastPay["transaction_id"] != "t-1" {
		t.Fatalf("payment object not passed through: %#v", placer.lastPay)
	}

	items, _ := store.Current(ctx, "s1")
	if len(items) != 0 {
		t.Fatalf("cart should be cleared after success, got %d items", len(items))
	}
	if w.Loading("s1") {
		t.Fatal("loading flag should reset after success")
	}
}

func TestSubmitFailureLeavesCartUntouched(t *testing.T) {
	buyer := buyerWithAddress()
	users := &fakeDirectory{users: map[uint]*models.User{buyer.ID: buyer}}
	placer := &fakePlacer{}
	gateway := &fakeGateway{fail: true}
	w, store := newTestWorkflow(users, placer, gateway)
	ctx := context.Background()
	if err := store.Replace(ctx, "s1", testItems()); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	if _, err := w.Submit(ctx, "s1", buyer.ID); err == nil {
		t.Fatal("expected gateway error")
	}
	if placer.created != 0 {
		t.Fatal("order must not be recorded when the sale fails")
	}

	items, _ := store.Current(ctx, "s1")
	if len(items) != 2 {
		t.Fatalf("cart should survive a failed submit, got %d items", len(items))
	}
	if w.Loading("s1") {
		t.Fatal("loading flag should reset after failure")
	}
}

func TestSubmitRejectsConcurrentSubmit(t *testing.T) {
	buyer := buyerWithAddress()
	users := &fakeDirectory{users: map[uint]*models.User{buyer.ID: buyer}}
	gateway := &fakeGateway{block: make(chan struct{})}
	w, store := newTestWorkflow(users, &fakePlacer{}, gateway)
	ctx := context.Background()
	if err := store.Replace(ctx, "s1", testItems()); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	firstDone := make(chan error, 1)
	go func() {
		_, err := w.Submit(ctx, "s1", buyer.ID)
		firstDone <- err
	}()

	// wait for the first submit to take the loading flag
	for !w.Loading("s1") {
		runtime.Gosched()
	}

	if _, err := w.Submit(ctx, "s1", buyer.ID); !errors.Is(err, ErrSubmitInFlight) {
		t.Fatalf("got %v, want ErrSubmitInFlight", err)
	}

	close(gateway.block)
	if err := <-firstDone; err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
}

func TestChangeQuantityClampsAndTargetsOneLine(t *testing.T) {
	w, store := newTestWorkflow(&fakeDirectory{}, &fakePlacer{}, &fakeGateway{})
	ctx := context.Background()
	if err := store.Replace(ctx, "s1", testItems()); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	items, err := w.ChangeQuantity(ctx, "s1", 1, 99, 10)
	if err != nil {
		t.Fatalf("ChangeQuantity failed: %v", err)
	}
	if items[0].ConsumerQuantity != 10 {
		t.Fatalf("over-stock request should clamp to 10, got %d", items[0].ConsumerQuantity)
	}
	if items[1].ConsumerQuantity != 1 {
		t.Fatalf("other lines must be untouched, got %d", items[1].ConsumerQuantity)
	}

	items, err = w.ChangeQuantity(ctx, "s1", 1, -3, 10)
	if err != nil {
		t.Fatalf("ChangeQuantity failed: %v", err)
	}
	if items[0].ConsumerQuantity != 1 {
		t.Fatalf("negative request should floor to 1, got %d", items[0].ConsumerQuantity)
	}
}

func TestRemoveItemIsIdempotent(t *testing.T) {
	w, store := newTestWorkflow(&fakeDirectory{}, &fakePlacer{}, &fakeGateway{})
	ctx := context.Background()
	if err := store.Replace(ctx, "s1", testItems()); err != nil {
		t.Fatalf("Replace failed: %v", err)
	}

	items, err := w.RemoveItem(ctx, "s1", 1)
	if err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	if len(items) != 1 || items[0].ID != 2 {
		t.Fatalf("unexpected cart after removal: %#v", items)
	}

	// removing the same id again changes nothing
	items, err = w.RemoveItem(ctx, "s1", 1)
	if err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	if len(items) != 1 || items[0].ID != 2 {
		t.Fatalf("repeat removal should be a no-op: %#v", items)
	}
}

func TestReplaceCartNormalizesQuantities(t *testing.T) {
	w, _ := newTestWorkflow(&fakeDirectory{}, &fakePlacer{}, &fakeGateway{})
	ctx := context.Background()

	items, err := w.ReplaceCart(ctx, "s1", []cart.Item{
		{ID: 1, Price: models.NewMoneyFromDecimal(decimal.NewFromInt(10)), Quantity: 3, ConsumerQuantity: 50},
		{ID: 2, Price: models.NewMoneyFromDecimal(decimal.NewFromInt(10)), Quantity: 3},
	})
	if err != nil {
		t.Fatalf("ReplaceCart failed: %v", err)
	}
	if items[0].ConsumerQuantity != 3 || items[1].ConsumerQuantity != 1 {
		t.Fatalf("quantities not normalized: %#v", items)
	}
}
