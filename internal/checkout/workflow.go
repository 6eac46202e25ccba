package checkout

import (
	"context"
	"errors"
	"sync"

	"github.com/minikart-next/minikart/internal/cart"
	"github.com/minikart-next/minikart/internal/constants"
	"github.com/minikart-next/minikart/internal/logger"
	"github.com/minikart-next/minikart/internal/metrics"
	"github.com/minikart-next/minikart/internal/models"
	"github.com/minikart-next/minikart/internal/payment/braintree"
)

var (
	// ErrNotAuthenticated is returned when checkout is attempted without a
	// signed-in user.
	ErrNotAuthenticated = errors.New("checkout: not authenticated")
	// ErrNoAddress is returned when the user has no delivery address on file.
	ErrNoAddress = errors.New("checkout: no delivery address")
	// ErrEmptyCart is returned when checkout is attempted on an empty cart.
	ErrEmptyCart = errors.New("checkout: cart is empty")
	// ErrSubmitInFlight is returned when a submit arrives while another one
	// for the same session is still loading.
	ErrSubmitInFlight = errors.New("checkout: submit already in flight")
)

// UserDirectory resolves the authenticated buyer.
type UserDirectory interface {
	GetByID(id uint) (*models.User, error)
}

// OrderPlacer converts a cart into a durable order.
type OrderPlacer interface {
	CreateFromCart(buyer *models.User, items []cart.Item, payment models.JSON) (*models.Order, error)
}

// PaymentGateway charges the cart total before the order is recorded.
type PaymentGateway interface {
	Sale(ctx context.Context, input braintree.SaleInput) (*braintree.SaleResult, error)
}

// Notifier surfaces transient user-visible notifications.
type Notifier interface {
	Success(session, message string)
	Error(session, message string)
}

// Workflow drives the cart page operations: totals, quantity edits,
// removals, and the guarded two-state submit. All collaborators are
// injected; there is no hidden global state.
type Workflow struct {
	store    *cart.Store
	users    UserDirectory
	orders   OrderPlacer
	gateway  PaymentGateway
	notifier Notifier

	mu       sync.Mutex
	inFlight map[string]bool
}

// NewWorkflow wires a checkout workflow.
func NewWorkflow(store *cart.Store, users UserDirectory, orders OrderPlacer, gateway PaymentGateway, notifier Notifier) *Workflow {
	if notifier == nil {
		notifier = LogNotifier{}
	}
	return &Workflow{
		store:    store,
		users:    users,
		orders:   orders,
		gateway:  gateway,
		notifier: notifier,
		inFlight: make(map[string]bool),
	}
}

// Cart rehydrates the current cart for the session.
func (w *Workflow) Cart(ctx context.Context, session string) ([]cart.Item, error) {
	return w.store.Current(ctx, session)
}

// ReplaceCart swaps in a full next cart state, normalizing each consumer
// quantity into its valid range.
func (w *Workflow) ReplaceCart(ctx context.Context, session string, items []cart.Item) ([]cart.Item, error) {
	next := make([]cart.Item, 0, len(items))
	for _, item := range items {
		item.ConsumerQuantity = item.EffectiveQuantity()
		next = append(next, item)
	}
	if err := w.store.Replace(ctx, session, next); err != nil {
		return nil, err
	}
	return next, nil
}

// RemoveItem filters the matching line out of the cart and persists the
// result. Removing an absent id leaves the cart unchanged.
func (w *Workflow) RemoveItem(ctx context.Context, session string, id uint) ([]cart.Item, error) {
	items, err := w.store.Current(ctx, session)
	if err != nil {
		return nil, err
	}
	next := make([]cart.Item, 0, len(items))
	removed := false
	for _, item := range items {
		if item.ID == id {
			removed = true
			continue
		}
		next = append(next, item)
	}
	if err := w.store.Replace(ctx, session, next); err != nil {
		return nil, err
	}
	if removed {
		w.notifier.Success(session, "Item removed from cart")
	}
	return next, nil
}

// ChangeQuantity clamps the requested value into [1, maxAvailable] and
// updates only the matching line. Repeating the call with the same inputs
// yields the same cart.
func (w *Workflow) ChangeQuantity(ctx context.Context, session string, id uint, requested, maxAvailable int) ([]cart.Item, error) {
	items, err := w.store.Current(ctx, session)
	if err != nil {
		return nil, err
	}
	next := make([]cart.Item, len(items))
	for i, item := range items {
		if item.ID == id {
			item.ConsumerQuantity = cart.ClampQuantity(requested, maxAvailable)
		}
		next[i] = item
	}
	if err := w.store.Replace(ctx, session, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Submit runs the guarded checkout: it requires an authenticated buyer with
// a delivery address and a non-empty cart, charges the gateway, records the
// order, and clears the cart. A failure resets the loading flag and leaves
// the cart and its persisted key untouched.
func (w *Workflow) Submit(ctx context.Context, session string, userID uint) (*models.Order, error) {
	if userID == 0 {
		return nil, ErrNotAuthenticated
	}
	buyer, err := w.users.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if buyer == nil {
		return nil, ErrNotAuthenticated
	}
	if !buyer.HasAddress() {
		return nil, ErrNoAddress
	}

	items, err := w.store.Current(ctx, session)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	if !w.beginSubmit(session) {
		return nil, ErrSubmitInFlight
	}
	defer w.endSubmit(session)

	order, err := w.submit(ctx, session, buyer, items)
	if err != nil {
		metrics.CheckoutFailures.Inc()
		w.notifier.Error(session, "Payment failed")
		return nil, err
	}

	metrics.OrdersCreated.Inc()
	w.notifier.Success(session, "Payment successful, order placed!")
	return order, nil
}

// Loading reports whether a submit for the session is in flight.
func (w *Workflow) Loading(session string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inFlight[session]
}

func (w *Workflow) submit(ctx context.Context, session string, buyer *models.User, items []cart.Item) (*models.Order, error) {
	total := Total(items)
	sale, err := w.gateway.Sale(ctx, braintree.SaleInput{
		Amount:   total,
		Currency: constants.StoreCurrency,
	})
	if err != nil {
		return nil, err
	}

	order, err := w.orders.CreateFromCart(buyer, items, sale.Payment())
	if err != nil {
		return nil, err
	}

	// The order exists either way; a failed key delete only means the next
	// session start rehydrates a stale cart.
	if err := w.store.Clear(ctx, session); err != nil {
		logger.Warnw("checkout_cart_clear_failed", "session", session, "order_no", order.OrderNo, "error", err)
	}
	return order, nil
}

func (w *Workflow) beginSubmit(session string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inFlight[session] {
		return false
	}
	w.inFlight[session] = true
	return true
}

func (w *Workflow) endSubmit(session string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.inFlight, session)
}

// LogNotifier surfaces notifications as structured log events. The HTTP
// layer carries the same messages to the client in its response envelope.
type LogNotifier struct{}

// Success logs a success notification.
func (LogNotifier) Success(session, message string) {
	logger.Infow("notify_success", "session", session, "message", message)
}

// Error logs an error notification.
func (LogNotifier) Error(session, message string) {
	logger.Warnw("notify_error", "session", session, "message", message)
}
