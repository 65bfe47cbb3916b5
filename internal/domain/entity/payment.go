package entity

import (
	"time"

	"github.com/collinsdev/marketplace-api/internal/domain/enum"
)

// Payment represents a payment made against an order
type Payment struct {
	ID            int64              `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID       int64              `gorm:"not null;index" json:"order_id"`
	Amount        float64            `gorm:"type:decimal(15,2);not null" json:"amount"`
	PaymentMethod enum.PaymentMethod `gorm:"default:0" json:"payment_method"`
	Status        enum.PaymentStatus `gorm:"default:0" json:"status"`
	PaymentDate   time.Time          `gorm:"not null" json:"payment_date"`
	Reference     string             `gorm:"size:100" json:"reference"`
	Version       int64              `gorm:"not null;default:0" json:"version"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`

	// Relationships
	Order Order `gorm:"foreignKey:OrderID" json:"-"`
}

// GetID returns the payment ID
func (p *Payment) GetID() int64 { return p.ID }

// SetID sets the payment ID
func (p *Payment) SetID(id int64) { p.ID = id }

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
