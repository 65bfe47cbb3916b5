package entity

import (
	"time"

	"github.com/collinsdev/marketplace-api/internal/domain/enum"
)

// Order represents a sales order
type Order struct {
	ID              int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber     string           `gorm:"size:100;unique;not null" json:"order_number"`
	OrderDate       time.Time        `gorm:"not null" json:"order_date"`
	SubTotal        float64          `gorm:"type:decimal(15,2);default:0" json:"sub_total"`
	DiscountAmount  float64          `gorm:"type:decimal(15,2);default:0" json:"discount_amount"`
	Total           float64          `gorm:"type:decimal(15,2);default:0" json:"total"`
	TotalCommission float64          `gorm:"type:decimal(15,2);default:0" json:"total_commission"`
	Status          enum.OrderStatus `gorm:"default:0" json:"status"`
	LocationID      int64            `gorm:"not null;index" json:"location_id"`
	UserID          int64            `gorm:"not null;index" json:"user_id"`
	DiscountID      *int64           `gorm:"index" json:"discount_id,omitempty"`
	CustomerName    string           `gorm:"size:255" json:"customer_name"`
	CustomerPhone   string           `gorm:"size:50" json:"customer_phone"`
	Notes           string           `gorm:"type:text" json:"notes"`
	Version         int64            `gorm:"not null;default:0" json:"version"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`

	// Relationships
	Location Location      `gorm:"foreignKey:LocationID" json:"-"`
	User     User          `gorm:"foreignKey:UserID" json:"-"`
	Discount *Discount     `gorm:"foreignKey:DiscountID" json:"discount,omitempty"`
	Details  []OrderDetail `gorm:"foreignKey:OrderID" json:"details,omitempty"`
	Payments []Payment     `gorm:"foreignKey:OrderID" json:"payments,omitempty"`
}

// GetID returns the order ID
func (o *Order) GetID() int64 { return o.ID }

// SetID sets the order ID
func (o *Order) SetID(id int64) { o.ID = id }

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// OrderDetail represents a line item in an order
type OrderDetail struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64     `gorm:"not null;index:idx_order_product,unique" json:"order_id"`
	ProductID int64     `gorm:"not null;index:idx_order_product,unique" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UnitPrice float64   `gorm:"type:decimal(15,2);not null" json:"unit_price"`
	LineTotal float64   `gorm:"type:decimal(15,2);not null" json:"line_total"`
	CostPrice float64   `gorm:"type:decimal(15,2);not null" json:"cost_price"`
	Profit    float64   `gorm:"type:decimal(15,2);default:0" json:"profit"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Order   Order   `gorm:"foreignKey:OrderID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// GetID returns the order detail ID
func (od *OrderDetail) GetID() int64 { return od.ID }

// SetID sets the order detail ID
func (od *OrderDetail) SetID(id int64) { od.ID = id }

// TableName returns the table name for the OrderDetail model
func (OrderDetail) TableName() string {
	return "order_details"
}
