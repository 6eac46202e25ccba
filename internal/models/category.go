package models

import (
	"time"

	"gorm.io/gorm"
)

// Category is a catalog category.
type Category struct {
	ID        uint           `gorm:"primarykey" json:"id"`             // primary key
	Name      string         `gorm:"not null" json:"name"`             // display name
	Slug      string         `gorm:"uniqueIndex;not null" json:"slug"` // unique identifier
	CreatedAt time.Time      `gorm:"index" json:"created_at"`          // creation time
	UpdatedAt time.Time      `json:"updated_at"`                       // update time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                   // soft delete time
}

// TableName pins the table name.
func (Category) TableName() string {
	return "categories"
}
