package entity

import (
	"time"
)

// Procurement represents a purchase of goods from a vendor
type Procurement struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ReferenceNo     string    `gorm:"size:100;unique;not null" json:"reference_no"`
	VendorID        int64     `gorm:"not null;index" json:"vendor_id"`
	LocationID      int64     `gorm:"not null;index" json:"location_id"`
	ProcurementDate time.Time `gorm:"not null" json:"procurement_date"`
	TotalAmount     float64   `gorm:"type:decimal(15,2);default:0" json:"total_amount"`
	Notes           string    `gorm:"size:1000" json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	// Relationships
	Vendor   Vendor              `gorm:"foreignKey:VendorID" json:"vendor,omitempty"`
	Location Location            `gorm:"foreignKey:LocationID" json:"-"`
	Details  []ProcurementDetail `gorm:"foreignKey:ProcurementID" json:"details,omitempty"`
}

// GetID returns the procurement ID
func (p *Procurement) GetID() int64 { return p.ID }

// SetID sets the procurement ID
func (p *Procurement) SetID(id int64) { p.ID = id }

// TableName returns the table name for the Procurement model
func (Procurement) TableName() string {
	return "procurements"
}

// ProcurementDetail represents a line item in a procurement
type ProcurementDetail struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProcurementID int64     `gorm:"not null;index:idx_procurement_product,unique" json:"procurement_id"`
	ProductID     int64     `gorm:"not null;index:idx_procurement_product,unique" json:"product_id"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	PurchasePrice float64   `gorm:"type:decimal(15,2);not null" json:"purchase_price"`
	LineTotal     float64   `gorm:"type:decimal(15,2);not null" json:"line_total"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relationships
	Procurement Procurement `gorm:"foreignKey:ProcurementID" json:"-"`
	Product     Product     `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// GetID returns the procurement detail ID
func (pd *ProcurementDetail) GetID() int64 { return pd.ID }

// SetID sets the procurement detail ID
func (pd *ProcurementDetail) SetID(id int64) { pd.ID = id }

// TableName returns the table name for the ProcurementDetail model
func (ProcurementDetail) TableName() string {
	return "procurement_details"
}
