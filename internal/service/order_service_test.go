package service

import (
	"errors"
	"testing"

	"github.com/minikart-next/minikart/internal/cart"
	"github.com/minikart-next/minikart/internal/constants"
	"github.com/minikart-next/minikart/internal/events"
	"github.com/minikart-next/minikart/internal/models"
	"github.com/minikart-next/minikart/internal/queue"
	"github.com/minikart-next/minikart/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newOrderService(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:ordersvc?mode=memory&cache=shared"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Product{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	for _, table := range []string{"order_items", "orders", "products", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("truncate %s failed: %v", table, err)
		}
	}
	models.DB = db

	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("queue client failed: %v", err)
	}
	svc := NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		queueClient,
		events.NewPublisher(nil),
	)
	return svc, db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price int64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:     name,
		Slug:     Slugify(name),
		Price:    models.NewMoneyFromDecimal(decimal.NewFromInt(price)),
		Quantity: stock,
		IsActive: true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
	return product
}

func seedBuyer(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	buyer := &models.User{
		Name:         "Asha",
		Email:        "asha@example.com",
		PasswordHash: "x",
		Phone:        "9876543210",
		Address:      "12 MG Road",
		AnswerHash:   "x",
		Role:         constants.RoleUser,
	}
	if err := db.Create(buyer).Error; err != nil {
		t.Fatalf("seed buyer failed: %v", err)
	}
	return buyer
}

func TestCreateFromCartSnapshotsAndDecrementsStock(t *testing.T) {
	svc, db := newOrderService(t)
	buyer := seedBuyer(t, db)
	pen := seedProduct(t, db, "Pen", 50, 10)
	notebook := seedProduct(t, db, "Notebook", 150, 5)

	items := []cart.Item{
		{ID: pen.ID, Name: "stale pen name", Price: models.NewMoneyFromDecimal(decimal.NewFromInt(1)), Quantity: 10, ConsumerQuantity: 2},
		{ID: notebook.ID, Quantity: 5, ConsumerQuantity: 1},
	}
	payment := models.JSON{"gateway": "braintree", "transaction_id": "t-1"}

	order, err := svc.CreateFromCart(buyer, items, payment)
	if err != nil {
		t.Fatalf("CreateFromCart failed: %v", err)
	}
	if order.Status != constants.OrderStatusNotProcessed {
		t.Fatalf("new orders must start Not Processed, got %q", order.Status)
	}
	if order.Currency != constants.StoreCurrency {
		t.Fatalf("unexpected currency %q", order.Currency)
	}
	// catalog price wins over whatever the cart carried: 50x2 + 150x1
	if order.TotalAmount.String() != "250.00" {
		t.Fatalf("total = %s, want 250.00", order.TotalAmount.String())
	}
	if len(order.Items) != 2 || order.Items[0].Name != "Pen" {
		t.Fatalf("item snapshots wrong: %#v", order.Items)
	}

	var stored models.Product
	if err := db.First(&stored, pen.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if stored.Quantity != 8 {
		t.Fatalf("stock should drop 10 -> 8, got %d", stored.Quantity)
	}
}

func TestCreateFromCartOutOfStockRollsBack(t *testing.T) {
	svc, db := newOrderService(t)
	buyer := seedBuyer(t, db)
	pen := seedProduct(t, db, "Pen", 50, 10)
	scarce := seedProduct(t, db, "Limited Print", 500, 1)

	items := []cart.Item{
		{ID: pen.ID, Quantity: 10, ConsumerQuantity: 2},
		// effective quantity clamps to stock, so force the conflict with a
		// stock snapshot that is out of date
		{ID: scarce.ID, Quantity: 5, ConsumerQuantity: 3},
	}

	if _, err := svc.CreateFromCart(buyer, items, models.JSON{}); !errors.Is(err, ErrOutOfStock) {
		t.Fatalf("got %v, want ErrOutOfStock", err)
	}

	// the whole transaction rolls back, first line included
	var stored models.Product
	if err := db.First(&stored, pen.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if stored.Quantity != 10 {
		t.Fatalf("stock must be untouched after rollback, got %d", stored.Quantity)
	}
	var count int64
	if err := db.Model(&models.Order{}).Count(&count).Error; err != nil {
		t.Fatalf("count orders failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("no order should exist after rollback, got %d", count)
	}
}

func TestCreateFromCartUnknownProduct(t *testing.T) {
	svc, db := newOrderService(t)
	buyer := seedBuyer(t, db)

	items := []cart.Item{{ID: 9999, Quantity: 1, ConsumerQuantity: 1}}
	if _, err := svc.CreateFromCart(buyer, items, models.JSON{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestUpdateStatus(t *testing.T) {
	svc, db := newOrderService(t)
	buyer := seedBuyer(t, db)
	pen := seedProduct(t, db, "Pen", 50, 10)

	order, err := svc.CreateFromCart(buyer, []cart.Item{{ID: pen.ID, Quantity: 10, ConsumerQuantity: 1}}, models.JSON{})
	if err != nil {
		t.Fatalf("CreateFromCart failed: %v", err)
	}

	if _, err := svc.UpdateStatus(order.ID, "Lost In Space"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("got %v, want ErrInvalidStatus", err)
	}
	if _, err := svc.UpdateStatus(order.ID+100, constants.OrderStatusShipped); !errors.Is(err, ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}

	updated, err := svc.UpdateStatus(order.ID, constants.OrderStatusShipped)
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if updated.Status != constants.OrderStatusShipped {
		t.Fatalf("status = %q, want Shipped", updated.Status)
	}

	var stored models.Order
	if err := db.First(&stored, order.ID).Error; err != nil {
		t.Fatalf("reload order failed: %v", err)
	}
	if stored.Status != constants.OrderStatusShipped {
		t.Fatalf("persisted status = %q, want Shipped", stored.Status)
	}
}

func TestListByBuyer(t *testing.T) {
	svc, db := newOrderService(t)
	buyer := seedBuyer(t, db)
	pen := seedProduct(t, db, "Pen", 50, 100)

	for i := 0; i < 3; i++ {
		if _, err := svc.CreateFromCart(buyer, []cart.Item{{ID: pen.ID, Quantity: 100, ConsumerQuantity: 1}}, models.JSON{}); err != nil {
			t.Fatalf("CreateFromCart failed: %v", err)
		}
	}

	orders, total, err := svc.ListByBuyer(buyer.ID, 1, 2)
	if err != nil {
		t.Fatalf("ListByBuyer failed: %v", err)
	}
	if total != 3 || len(orders) != 2 {
		t.Fatalf("got total=%d page=%d, want 3/2", total, len(orders))
	}

	_, otherTotal, err := svc.ListByBuyer(buyer.ID+1, 1, 10)
	if err != nil {
		t.Fatalf("ListByBuyer failed: %v", err)
	}
	if otherTotal != 0 {
		t.Fatalf("other buyers must not see these orders, got %d", otherTotal)
	}
}
