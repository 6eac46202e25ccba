package constants

// Order statuses. Status is only ever moved by back-office processes,
// never by the storefront itself.
const (
	OrderStatusNotProcessed = "Not Processed"
	OrderStatusProcessing   = "Processing"
	OrderStatusShipped      = "Shipped"
	OrderStatusDelivered    = "Delivered"
	OrderStatusCancelled    = "Cancelled"
)

// OrderStatuses lists every valid order status in lifecycle order.
var OrderStatuses = []string{
	OrderStatusNotProcessed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// IsValidOrderStatus reports whether status belongs to the order status enum.
func IsValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// CartStorageKey is the fixed key the cart is persisted under,
// scoped per session by the storage backend.
const CartStorageKey = "cart"

// Queue task names.
const (
	TaskOrderStatusEmail = "order:status_email"
)

// Queue names.
const (
	QueueDefault = "default"
)

// Kafka event types.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// StoreCurrency is the storefront display currency.
const StoreCurrency = "INR"
