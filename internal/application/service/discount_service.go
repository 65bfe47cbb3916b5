package service

import (
	"context"
	"time"

	"github.com/collinsdev/marketplace-api/internal/domain/entity"
	"github.com/collinsdev/marketplace-api/internal/domain/repository"
	"github.com/collinsdev/marketplace-api/internal/domain/validator"
	"github.com/collinsdev/marketplace-api/pkg/apperror"
	"github.com/collinsdev/marketplace-api/pkg/pagination"
)

// DiscountService handles discount-related operations
type DiscountService struct {
	discountRepo      repository.DiscountRepository
	discountValidator *validator.DiscountValidator
}

// NewDiscountService creates a new discount service
func NewDiscountService(discountRepo repository.DiscountRepository, discountValidator *validator.DiscountValidator) *DiscountService {
	return &DiscountService{discountRepo: discountRepo, discountValidator: discountValidator}
}

// DiscountInput represents discount create/update fields
type DiscountInput struct {
	DiscountCode string
	Percentage   float64
	StartDate    *time.Time
	EndDate      *time.Time
	LocationID   *int64
	VendorID     *int64
	IsActive     *bool
}

// CreateDiscount creates a new discount
func (s *DiscountService) CreateDiscount(ctx context.Context, input *DiscountInput) (*entity.Discount, error) {
	discount := &entity.Discount{
		DiscountCode: input.DiscountCode,
		Percentage:   input.Percentage,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		LocationID:   input.LocationID,
		VendorID:     input.VendorID,
		IsActive:     true,
	}
	if input.IsActive != nil {
		discount.IsActive = *input.IsActive
	}

	if err := s.discountValidator.ValidateCreate(ctx, discount); err != nil {
		return nil, err
	}
	if err := s.discountRepo.Create(ctx, discount); err != nil {
		return nil, err
	}
	return discount, nil
}

// GetDiscount retrieves a discount by ID
func (s *DiscountService) GetDiscount(ctx context.Context, id int64) (*entity.Discount, error) {
	discount, err := s.discountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if discount == nil {
		return nil, apperror.NewNotFoundError("Discount")
	}
	return discount, nil
}

// GetDiscountByCode retrieves a discount by its code
func (s *DiscountService) GetDiscountByCode(ctx context.Context, code string) (*entity.Discount, error) {
	discount, err := s.discountRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if discount == nil {
		return nil, apperror.NewNotFoundError("Discount")
	}
	return discount, nil
}

// UpdateDiscount applies changes to a discount
func (s *DiscountService) UpdateDiscount(ctx context.Context, id int64, input *DiscountInput) (*entity.Discount, error) {
	current, err := s.discountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, apperror.NewNotFoundError("Discount")
	}

	updated := *current
	if input.DiscountCode != "" {
		updated.DiscountCode = input.DiscountCode
	}
	if input.Percentage != 0 {
		updated.Percentage = input.Percentage
	}
	updated.StartDate = input.StartDate
	updated.EndDate = input.EndDate
	if input.LocationID != nil || input.VendorID != nil {
		updated.LocationID = input.LocationID
		updated.VendorID = input.VendorID
	}
	if input.IsActive != nil {
		updated.IsActive = *input.IsActive
	}

	if err := s.discountValidator.ValidateUpdate(ctx, current, &updated); err != nil {
		return nil, err
	}
	if err := s.discountRepo.Update(ctx, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteDiscount removes a discount. Orders keep their stored discount amount,
// so removing the discount row does not disturb past totals.
func (s *DiscountService) DeleteDiscount(ctx context.Context, id int64) error {
	discount, err := s.discountRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if discount == nil {
		return apperror.NewNotFoundError("Discount")
	}
	return s.discountRepo.Delete(ctx, id)
}

// ListDiscounts lists discounts with filtering
func (s *DiscountService) ListDiscounts(ctx context.Context, params *repository.PartnerFilterParams) (*pagination.PaginatedResult[entity.Discount], error) {
	discounts, total, err := s.discountRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(discounts, pag), nil
}
