package repository

import (
	"context"
	"time"

	"github.com/collinsdev/marketplace-api/internal/domain/entity"
	"github.com/collinsdev/marketplace-api/internal/domain/enum"
	"github.com/collinsdev/marketplace-api/pkg/pagination"
)

// OrderRepository defines the interface for order data operations
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id int64) (*entity.Order, error)
	GetByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error)
	GetWithDetails(ctx context.Context, id int64) (*entity.Order, error)
	// Update persists order changes guarded by the order's Version column and
	// returns a conflict error when the stored version no longer matches.
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, id int64) error
	// ApplyTotalsDelta shifts SubTotal and Total by delta in one statement,
	// keeping Total = SubTotal - DiscountAmount intact.
	ApplyTotalsDelta(ctx context.Context, id int64, delta float64) error
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
	ListWithCursor(ctx context.Context, params *OrderCursorFilterParams) ([]entity.Order, error)
}

// OrderFilterParams contains filtering parameters for order queries
type OrderFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	Status        *enum.OrderStatus
	LocationID    *int64
	UserID        *int64
	DiscountID    *int64
	StartDate     *time.Time
	EndDate       *time.Time
	MinTotal      *float64
	MaxTotal      *float64
	SortBy        string
	SortDirection string
}

// OrderCursorFilterParams contains cursor-based filtering for order queries
type OrderCursorFilterParams struct {
	Cursor     *pagination.CursorParams
	Search     string
	Status     *enum.OrderStatus
	LocationID *int64
	UserID     *int64
	StartDate  *time.Time
	EndDate    *time.Time
}

// OrderDetailRepository defines the interface for order detail data operations
type OrderDetailRepository interface {
	Create(ctx context.Context, detail *entity.OrderDetail) error
	GetByID(ctx context.Context, id int64) (*entity.OrderDetail, error)
	GetByOrderID(ctx context.Context, orderID int64) ([]entity.OrderDetail, error)
	GetByOrderAndProduct(ctx context.Context, orderID, productID int64) (*entity.OrderDetail, error)
	Update(ctx context.Context, detail *entity.OrderDetail) error
	Delete(ctx context.Context, id int64) error
}
