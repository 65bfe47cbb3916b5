package entity

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a product in the inventory
type Product struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID  *int64         `gorm:"index" json:"category_id,omitempty"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Code        string         `gorm:"size:100;unique;not null" json:"code"`
	UnitPrice   float64        `gorm:"type:decimal(15,2);default:0" json:"unit_price"`
	CostPrice   float64        `gorm:"type:decimal(15,2);default:0" json:"cost_price"`
	InStock     int            `gorm:"default:0" json:"in_stock"`
	StockAlert  int            `gorm:"default:0" json:"stock_alert"`
	IsAvailable bool           `gorm:"default:true" json:"is_available"`
	Notes       *string        `gorm:"type:text" json:"notes,omitempty"`
	Version     int64          `gorm:"not null;default:0" json:"version"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// GetID returns the product ID
func (p *Product) GetID() int64 { return p.ID }

// SetID sets the product ID
func (p *Product) SetID(id int64) { p.ID = id }

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// Category represents a product category
type Category struct {
	ID        int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Slug      string         `gorm:"size:255;unique;not null" json:"slug"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Products []Product `gorm:"foreignKey:CategoryID" json:"-"`
}

// GetID returns the category ID
func (c *Category) GetID() int64 { return c.ID }

// SetID sets the category ID
func (c *Category) SetID(id int64) { c.ID = id }

// TableName returns the table name for the Category model
func (Category) TableName() string {
	return "categories"
}
