package entity

import (
	"time"

	"gorm.io/gorm"
)

// Vendor represents a supplier of goods
type Vendor struct {
	ID            int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	ContactPerson string         `gorm:"size:255" json:"contact_person"`
	Email         string         `gorm:"size:255" json:"email"`
	Phone         string         `gorm:"size:50" json:"phone"`
	Address       string         `gorm:"size:500" json:"address"`
	IsActive      bool           `gorm:"default:true" json:"is_active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Procurements []Procurement `gorm:"foreignKey:VendorID" json:"-"`
}

// GetID returns the vendor ID
func (v *Vendor) GetID() int64 { return v.ID }

// SetID sets the vendor ID
func (v *Vendor) SetID(id int64) { v.ID = id }

// TableName returns the table name for the Vendor model
func (Vendor) TableName() string {
	return "vendors"
}
