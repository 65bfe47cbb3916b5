package repository

import (
	"context"
	"time"

	"github.com/collinsdev/marketplace-api/internal/domain/entity"
	"github.com/collinsdev/marketplace-api/pkg/pagination"
)

// ProcurementRepository defines the interface for procurement data operations
type ProcurementRepository interface {
	Create(ctx context.Context, procurement *entity.Procurement) error
	GetByID(ctx context.Context, id int64) (*entity.Procurement, error)
	GetByReferenceNo(ctx context.Context, referenceNo string) (*entity.Procurement, error)
	GetWithDetails(ctx context.Context, id int64) (*entity.Procurement, error)
	Update(ctx context.Context, procurement *entity.Procurement) error
	Delete(ctx context.Context, id int64) error
	// ApplyTotalDelta shifts TotalAmount by delta in one statement.
	ApplyTotalDelta(ctx context.Context, id int64, delta float64) error
	List(ctx context.Context, params *ProcurementFilterParams) ([]entity.Procurement, int64, error)
}

// ProcurementFilterParams contains filtering parameters for procurement queries
type ProcurementFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	VendorID      *int64
	LocationID    *int64
	StartDate     *time.Time
	EndDate       *time.Time
	MinAmount     *float64
	MaxAmount     *float64
	SortBy        string
	SortDirection string
}

// ProcurementDetailRepository defines the interface for procurement detail data operations
type ProcurementDetailRepository interface {
	Create(ctx context.Context, detail *entity.ProcurementDetail) error
	GetByID(ctx context.Context, id int64) (*entity.ProcurementDetail, error)
	GetByProcurementID(ctx context.Context, procurementID int64) ([]entity.ProcurementDetail, error)
	GetByProcurementAndProduct(ctx context.Context, procurementID, productID int64) (*entity.ProcurementDetail, error)
	CountByProcurementID(ctx context.Context, procurementID int64) (int64, error)
	Update(ctx context.Context, detail *entity.ProcurementDetail) error
	Delete(ctx context.Context, id int64) error
}
