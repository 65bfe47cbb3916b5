package repository

import (
	"context"

	"github.com/collinsdev/marketplace-api/internal/domain/entity"
	"github.com/collinsdev/marketplace-api/pkg/pagination"
)

// VendorRepository defines the interface for vendor data operations
type VendorRepository interface {
	Create(ctx context.Context, vendor *entity.Vendor) error
	GetByID(ctx context.Context, id int64) (*entity.Vendor, error)
	Update(ctx context.Context, vendor *entity.Vendor) error
	Delete(ctx context.Context, id int64) error
	CountProcurements(ctx context.Context, vendorID int64) (int64, error)
	List(ctx context.Context, params *PartnerFilterParams) ([]entity.Vendor, int64, error)
}

// LocationRepository defines the interface for location data operations
type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, id int64) (*entity.Location, error)
	Update(ctx context.Context, location *entity.Location) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, params *PartnerFilterParams) ([]entity.Location, int64, error)
}

// PartnerFilterParams contains filtering parameters for vendor and location queries
type PartnerFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	IsActive      *bool
	SortBy        string
	SortDirection string
}

// DiscountRepository defines the interface for discount data operations
type DiscountRepository interface {
	Create(ctx context.Context, discount *entity.Discount) error
	GetByID(ctx context.Context, id int64) (*entity.Discount, error)
	GetByCode(ctx context.Context, code string) (*entity.Discount, error)
	Update(ctx context.Context, discount *entity.Discount) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, params *PartnerFilterParams) ([]entity.Discount, int64, error)
}
