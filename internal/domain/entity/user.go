package entity

import (
	"time"

	"gorm.io/gorm"
)

// User represents a back-office user
type User struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName string         `gorm:"size:100;not null" json:"first_name"`
	LastName  string         `gorm:"size:100" json:"last_name"`
	Email     string         `gorm:"size:255;unique;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:50;default:'staff'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// GetID returns the user ID
func (u *User) GetID() int64 { return u.ID }

// SetID sets the user ID
func (u *User) SetID(id int64) { u.ID = id }

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}
