package service

import (
	"context"
	"fmt"

	"github.com/collinsdev/marketplace-api/internal/domain/entity"
	"github.com/collinsdev/marketplace-api/internal/domain/repository"
	"github.com/collinsdev/marketplace-api/pkg/apperror"
	"github.com/collinsdev/marketplace-api/pkg/pagination"
	"github.com/collinsdev/marketplace-api/pkg/utils"
)

// ProductService handles product and category operations
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{productRepo: productRepo, categoryRepo: categoryRepo}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	CategoryID  *int64
	Name        string
	Code        string
	UnitPrice   float64
	CostPrice   float64
	InStock     int
	StockAlert  int
	IsAvailable bool
	Notes       *string
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if input.Name == "" {
		return nil, apperror.NewValidationError("Product name is required.")
	}
	if input.UnitPrice < 0 || input.CostPrice < 0 {
		return nil, apperror.NewValidationError("Product prices cannot be negative.")
	}
	if input.InStock < 0 {
		return nil, apperror.NewValidationError("Stock cannot be negative.")
	}

	code := input.Code
	if code == "" {
		code = utils.GenerateProductCode()
	}

	existing, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError(fmt.Sprintf("Product code '%s' already exists.", code))
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
	}

	product := &entity.Product{
		CategoryID:  input.CategoryID,
		Name:        input.Name,
		Code:        code,
		UnitPrice:   input.UnitPrice,
		CostPrice:   input.CostPrice,
		InStock:     input.InStock,
		StockAlert:  input.StockAlert,
		IsAvailable: input.IsAvailable,
		Notes:       input.Notes,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProductInput represents the mutable fields of a product
type UpdateProductInput struct {
	CategoryID  *int64
	Name        *string
	Code        *string
	UnitPrice   *float64
	CostPrice   *float64
	StockAlert  *int
	IsAvailable *bool
	Notes       *string
}

// UpdateProduct applies changes to a product. Stock levels are not editable
// here; they move only through orders, procurements and stock adjustments.
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, input *UpdateProductInput) (*entity.Product, error) {
	current, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	updated := *current
	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
		updated.CategoryID = input.CategoryID
	}
	if input.Name != nil {
		updated.Name = *input.Name
	}
	if input.Code != nil && *input.Code != current.Code {
		existing, err := s.productRepo.GetByCode(ctx, *input.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError(fmt.Sprintf("Product code '%s' already exists.", *input.Code))
		}
		updated.Code = *input.Code
	}
	if input.UnitPrice != nil {
		if *input.UnitPrice < 0 {
			return nil, apperror.NewValidationError("Unit price cannot be negative.")
		}
		updated.UnitPrice = *input.UnitPrice
	}
	if input.CostPrice != nil {
		if *input.CostPrice < 0 {
			return nil, apperror.NewValidationError("Cost price cannot be negative.")
		}
		updated.CostPrice = *input.CostPrice
	}
	if input.StockAlert != nil {
		updated.StockAlert = *input.StockAlert
	}
	if input.IsAvailable != nil {
		updated.IsAvailable = *input.IsAvailable
	}
	if input.Notes != nil {
		updated.Notes = input.Notes
	}

	if err := s.productRepo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProduct soft deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, id)
}

// AdjustStock shifts a product's stock by delta. Negative adjustments that
// would drive the stock below zero are rejected.
func (s *ProductService) AdjustStock(ctx context.Context, id int64, delta int) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if delta >= 0 {
		if err := s.productRepo.IncrementStock(ctx, id, delta); err != nil {
			return nil, err
		}
	} else {
		ok, err := s.productRepo.DecrementStock(ctx, id, -delta)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperror.NewConflictError(fmt.Sprintf(
				"Insufficient stock for product '%s': %d in stock, %d requested.",
				product.Name, product.InStock, -delta))
		}
	}
	return s.productRepo.GetByID(ctx, id)
}

// GetLowStockProducts returns available products at or below their alert level
func (s *ProductService) GetLowStockProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}
