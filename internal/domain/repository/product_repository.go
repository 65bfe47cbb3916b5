package repository

import (
	"context"

	"github.com/collinsdev/marketplace-api/internal/domain/entity"
	"github.com/collinsdev/marketplace-api/pkg/pagination"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []int64) ([]entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	// Update persists product changes guarded by the product's Version column
	// and returns a conflict error when the stored version no longer matches.
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id int64) error
	// DecrementStock atomically subtracts quantity from InStock; it reports
	// false when the product does not hold enough stock.
	DecrementStock(ctx context.Context, id int64, quantity int) (bool, error)
	IncrementStock(ctx context.Context, id int64, quantity int) error
	GetLowStock(ctx context.Context) ([]entity.Product, error)
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination    *pagination.PaginationParams
	Search        string
	CategoryID    *int64
	Available     *bool
	LowStock      bool
	SortBy        string
	SortDirection string
}

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Category, int64, error)
}
