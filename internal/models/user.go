package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User is a storefront account. Admins are regular users with the admin
// role; there is no separate back-office account table.
type User struct {
	ID           uint           `gorm:"primarykey" json:"id"`                        // primary key
	Name         string         `gorm:"not null" json:"name"`                        // display name
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`           // login email
	PasswordHash string         `gorm:"not null" json:"-"`                           // bcrypt hash, never serialized
	Phone        string         `gorm:"type:varchar(32)" json:"phone"`               // contact phone
	Address      string         `gorm:"type:varchar(500)" json:"address"`            // delivery address, required before checkout
	AnswerHash   string         `gorm:"not null" json:"-"`                           // security answer hash for password recovery
	Role         string         `gorm:"type:varchar(20);default:'user'" json:"role"` // user / admin
	Location     string         `gorm:"type:varchar(200)" json:"location"`           // free-text location
	LastLoginAt  *time.Time     `json:"last_login_at"`                               // last successful login
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                     // creation time
	UpdatedAt    time.Time      `json:"updated_at"`                                  // update time
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                              // soft delete time
}

// TableName pins the table name.
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == "admin"
}

// HasAddress reports whether a delivery address is on file. Registration
// trims the address on write, but seeded or directly-updated rows carry no
// such guarantee, so whitespace-only counts as absent.
func (u *User) HasAddress() bool {
	return u != nil && strings.TrimSpace(u.Address) != ""
}
