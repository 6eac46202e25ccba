package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is a purchasable catalog item. The photo is stored inline and
// served through the product-photo endpoint.
type Product struct {
	ID          uint           `gorm:"primarykey" json:"id"`                               // primary key
	CategoryID  uint           `gorm:"not null;index" json:"category_id"`                  // category reference
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`                   // unique identifier
	Name        string         `gorm:"not null" json:"name"`                               // display name
	Description string         `gorm:"type:text" json:"description"`                       // description
	Price       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // unit price
	Quantity    int            `gorm:"not null;default:0" json:"quantity"`                 // stock available
	Photo       []byte         `gorm:"type:blob" json:"-"`                                 // inline photo bytes
	PhotoType   string         `gorm:"type:varchar(100)" json:"-"`                         // photo content type
	Shipping    bool           `gorm:"default:false" json:"shipping"`                      // requires shipping
	IsActive    bool           `gorm:"default:true;index" json:"is_active"`                // listed in the storefront
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                            // creation time
	UpdatedAt   time.Time      `json:"updated_at"`                                         // update time
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                     // soft delete time

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // category
}

// TableName pins the table name.
func (Product) TableName() string {
	return "products"
}
