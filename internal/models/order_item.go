package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem is one order line. Name and unit price are snapshots taken at
// checkout so later catalog edits do not rewrite order history.
type OrderItem struct {
	ID         uint           `gorm:"primarykey" json:"id"`                                     // primary key
	OrderID    uint           `gorm:"index;not null" json:"order_id"`                           // order reference
	ProductID  uint           `gorm:"index;not null" json:"product"`                            // product reference
	Name       string         `gorm:"not null" json:"name"`                                     // name snapshot
	UnitPrice  Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`       // unit price snapshot
	Quantity   int            `gorm:"not null" json:"quantity"`                                 // purchased quantity
	TotalPrice Money          `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"` // line subtotal
	CreatedAt  time.Time      `gorm:"index" json:"created_at"`                                  // creation time
	UpdatedAt  time.Time      `json:"updated_at"`                                               // update time
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`                                           // soft delete time
}

// TableName pins the table name.
func (OrderItem) TableName() string {
	return "order_items"
}
