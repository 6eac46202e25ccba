package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/minikart-next/minikart/internal/logger"
	"github.com/minikart-next/minikart/internal/provider"
	"github.com/minikart-next/minikart/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer dispatches queue tasks against the shared container.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates a consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{Container: c}
}

// Register wires task handlers onto the mux.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderStatusEmail, c.handleOrderStatusEmail)
}

// handleOrderStatusEmail notifies the buyer about an order status change.
// Delivery is a structured log record until an outbound mailer is
// configured; the task still validates the order and receiver so a mailer
// can be dropped in without reshaping the queue.
func (c *Consumer) handleOrderStatusEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_status_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderStatusEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_status_email_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_status_email_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}

	order, err := c.OrderRepo.GetByID(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_status_email_fetch_order_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if order == nil {
		logger.Debugw("worker_order_status_email_skip_order_not_found", "order_id", payload.OrderID)
		return nil
	}

	buyer, err := c.UserRepo.GetByID(order.BuyerID)
	if err != nil {
		logger.Warnw("worker_order_status_email_fetch_buyer_failed", "order_id", order.ID, "buyer_id", order.BuyerID, "error", err)
		return err
	}
	if buyer == nil || strings.TrimSpace(buyer.Email) == "" {
		logger.Debugw("worker_order_status_email_skip_empty_receiver", "order_id", order.ID, "order_no", order.OrderNo)
		return nil
	}

	status := strings.TrimSpace(payload.Status)
	if status == "" {
		status = order.Status
	}

	logger.Infow("order_status_email_sent",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"receiver", buyer.Email,
		"status", status,
		"total", order.TotalAmount.String(),
		"currency", order.Currency,
	)
	return nil
}
