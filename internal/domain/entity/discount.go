package entity

import (
	"time"
)

// Discount represents a percentage discount scoped to exactly one location or
// one vendor
type Discount struct {
	ID           int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	DiscountCode string     `gorm:"size:100;unique;not null" json:"discount_code"`
	Percentage   float64    `gorm:"type:decimal(5,2);not null" json:"percentage"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	LocationID   *int64     `gorm:"index" json:"location_id,omitempty"`
	VendorID     *int64     `gorm:"index" json:"vendor_id,omitempty"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relationships
	Location *Location `gorm:"foreignKey:LocationID" json:"-"`
	Vendor   *Vendor   `gorm:"foreignKey:VendorID" json:"-"`
}

// GetID returns the discount ID
func (d *Discount) GetID() int64 { return d.ID }

// SetID sets the discount ID
func (d *Discount) SetID(id int64) { d.ID = id }

// TableName returns the table name for the Discount model
func (Discount) TableName() string {
	return "discounts"
}

// IsValidOn reports whether the discount is active and within its date window
// at the given instant.
func (d *Discount) IsValidOn(t time.Time) bool {
	if !d.IsActive {
		return false
	}
	if d.StartDate != nil && t.Before(*d.StartDate) {
		return false
	}
	if d.EndDate != nil && t.After(*d.EndDate) {
		return false
	}
	return true
}
