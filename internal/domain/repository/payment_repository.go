package repository

import (
	"context"
	"time"

	"github.com/collinsdev/marketplace-api/internal/domain/entity"
	"github.com/collinsdev/marketplace-api/internal/domain/enum"
	"github.com/collinsdev/marketplace-api/pkg/pagination"
)

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id int64) (*entity.Payment, error)
	GetByOrderID(ctx context.Context, orderID int64) ([]entity.Payment, error)
	// SumCompletedByOrder returns the sum of completed payment amounts for an
	// order, excluding the payment with excludeID (pass 0 to exclude nothing).
	SumCompletedByOrder(ctx context.Context, orderID, excludeID int64) (float64, error)
	CountByOrderID(ctx context.Context, orderID int64) (int64, error)
	// Update persists payment changes guarded by the payment's Version column
	// and returns a conflict error when the stored version no longer matches.
	Update(ctx context.Context, payment *entity.Payment) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, params *PaymentFilterParams) ([]entity.Payment, int64, error)
}

// PaymentFilterParams contains filtering parameters for payment queries
type PaymentFilterParams struct {
	Pagination    *pagination.PaginationParams
	OrderID       *int64
	Status        *enum.PaymentStatus
	Method        *enum.PaymentMethod
	StartDate     *time.Time
	EndDate       *time.Time
	MinAmount     *float64
	MaxAmount     *float64
	SortBy        string
	SortDirection string
}
