package models

import (
	"time"

	"gorm.io/gorm"
)

// Order is the durable record created once per successful checkout. Status
// starts at "Not Processed" and is moved only by back-office processes;
// orders are never deleted in the normal flow.
type Order struct {
	ID          uint           `gorm:"primarykey" json:"id"`                               // primary key
	OrderNo     string         `gorm:"uniqueIndex;not null" json:"order_no"`               // order number
	BuyerID     uint           `gorm:"index;not null" json:"buyer_id"`                     // buyer reference
	Status      string         `gorm:"index;not null" json:"status"`                       // order status enum
	Currency    string         `gorm:"not null" json:"currency"`                           // currency code
	TotalAmount Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total"` // order total
	PaymentJSON JSON           `gorm:"type:json" json:"payment"`                           // opaque gateway result
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                            // creation time
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`                            // update time
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                     // soft delete time

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"products,omitempty"` // line items
	Buyer *User       `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`    // buyer
}

// TableName pins the table name.
func (Order) TableName() string {
	return "orders"
}
