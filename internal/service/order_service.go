package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/minikart-next/minikart/internal/cart"
	"github.com/minikart-next/minikart/internal/constants"
	"github.com/minikart-next/minikart/internal/events"
	"github.com/minikart-next/minikart/internal/logger"
	"github.com/minikart-next/minikart/internal/models"
	"github.com/minikart-next/minikart/internal/queue"
	"github.com/minikart-next/minikart/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService handles order placement and lifecycle.
type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	queueClient *queue.Client
	publisher   *events.Publisher
}

// NewOrderService creates an order service.
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, queueClient *queue.Client, publisher *events.Publisher) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		queueClient: queueClient,
		publisher:   publisher,
	}
}

// CreateFromCart records an order for a charged cart. Item names and prices
// are snapshotted from the catalog, stock is decremented, and the gateway's
// payment object is stored opaquely on the order. New orders start as
// Not Processed.
func (s *OrderService) CreateFromCart(buyer *models.User, items []cart.Item, payment models.JSON) (*models.Order, error) {
	if buyer == nil {
		return nil, ErrNotFound
	}
	if len(items) == 0 {
		return nil, ErrMissingField
	}

	now := time.Now()
	order := &models.Order{
		OrderNo:     generateOrderNo(),
		BuyerID:     buyer.ID,
		Status:      constants.OrderStatusNotProcessed,
		Currency:    constants.StoreCurrency,
		PaymentJSON: payment,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)

		total := decimal.Zero
		orderItems := make([]models.OrderItem, 0, len(items))
		for _, item := range items {
			product, err := productRepo.GetByID(item.ID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w: product %d", ErrNotFound, item.ID)
			}

			quantity := item.EffectiveQuantity()
			if err := productRepo.DecrementStock(product.ID, quantity); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: product %d", ErrOutOfStock, product.ID)
				}
				return err
			}

			lineTotal := product.Price.Decimal.Mul(decimal.NewFromInt(int64(quantity)))
			total = total.Add(lineTotal)
			orderItems = append(orderItems, models.OrderItem{
				ProductID:  product.ID,
				Name:       product.Name,
				UnitPrice:  product.Price,
				Quantity:   quantity,
				TotalPrice: models.NewMoneyFromDecimal(lineTotal),
			})
		}

		order.TotalAmount = models.NewMoneyFromDecimal(total)
		return orderRepo.Create(order, orderItems)
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("order_created",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"buyer_id", buyer.ID,
		"total", order.TotalAmount.String(),
	)

	if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: order.ID,
		Status:  order.Status,
	}); err != nil {
		logger.Warnw("order_status_email_enqueue_failed", "order_id", order.ID, "error", err)
	}
	s.publisher.OrderCreated(context.Background(), events.OrderEvent{
		OrderID:  order.ID,
		OrderNo:  order.OrderNo,
		BuyerID:  order.BuyerID,
		Status:   order.Status,
		Total:    order.TotalAmount.String(),
		Currency: order.Currency,
	})

	return order, nil
}

// GetByIDAndBuyer returns one order scoped to its buyer.
func (s *OrderService) GetByIDAndBuyer(id, buyerID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndBuyer(id, buyerID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	return order, nil
}

// ListByBuyer returns the buyer's order history, newest first.
func (s *OrderService) ListByBuyer(buyerID uint, page, pageSize int) ([]models.Order, int64, error) {
	return s.orderRepo.ListByBuyer(buyerID, page, pageSize)
}

// ListAdmin returns a page of all orders.
func (s *OrderService) ListAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.ListAdmin(filter)
}

// UpdateStatus moves an order through its lifecycle. Only the five known
// statuses are accepted.
func (s *OrderService) UpdateStatus(id uint, status string) (*models.Order, error) {
	status = strings.TrimSpace(status)
	if !constants.IsValidOrderStatus(status) {
		return nil, ErrInvalidStatus
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	if order.Status == status {
		return order, nil
	}

	if err := s.orderRepo.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	previous := order.Status
	order.Status = status

	logger.Infow("order_status_changed",
		"order_id", order.ID,
		"from", previous,
		"to", status,
	)

	if err := s.queueClient.EnqueueOrderStatusEmail(queue.OrderStatusEmailPayload{
		OrderID: order.ID,
		Status:  status,
	}); err != nil {
		logger.Warnw("order_status_email_enqueue_failed", "order_id", order.ID, "error", err)
	}
	s.publisher.OrderStatusChanged(context.Background(), events.OrderEvent{
		OrderID:  order.ID,
		OrderNo:  order.OrderNo,
		BuyerID:  order.BuyerID,
		Status:   status,
		Total:    order.TotalAmount.String(),
		Currency: order.Currency,
	})

	return order, nil
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("MK%s%s", now, suffix)
}
