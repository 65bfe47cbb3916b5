package entity

import (
	"time"

	"gorm.io/gorm"
)

// Location represents a selling location (store, warehouse or branch)
type Location struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Address   string         `gorm:"size:500" json:"address"`
	Phone     string         `gorm:"size:50" json:"phone"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// GetID returns the location ID
func (l *Location) GetID() int64 { return l.ID }

// SetID sets the location ID
func (l *Location) SetID(id int64) { l.ID = id }

// TableName returns the table name for the Location model
func (Location) TableName() string {
	return "locations"
}
