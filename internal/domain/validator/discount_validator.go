package validator

import (
	"context"
	"fmt"
	"time"

	"github.com/collinsdev/marketplace-api/internal/domain/entity"
	"github.com/collinsdev/marketplace-api/pkg/apperror"
)

// DiscountValidator holds the rules for discount create and update: a unique
// code, a percentage in (0, 100], a consistent date window, and exactly one
// target (location or vendor).
type DiscountValidator struct {
	discounts DiscountCodeLookup
	locations LocationLookup
	vendors   VendorLookup
	now       func() time.Time
}

// NewDiscountValidator creates a new discount validator
func NewDiscountValidator(discounts DiscountCodeLookup, locations LocationLookup, vendors VendorLookup) *DiscountValidator {
	return &DiscountValidator{
		discounts: discounts,
		locations: locations,
		vendors:   vendors,
		now:       time.Now,
	}
}

// ValidateCreate checks a discount before insertion
func (v *DiscountValidator) ValidateCreate(ctx context.Context, discount *entity.Discount) error {
	if err := v.validateCode(ctx, discount.DiscountCode, 0); err != nil {
		return err
	}
	if err := v.validateFields(ctx, discount); err != nil {
		return err
	}
	if discount.EndDate != nil && discount.EndDate.Before(v.now()) {
		return apperror.NewValidationError("Discount end date cannot be in the past.")
	}
	return nil
}

// ValidateUpdate checks a discount before an update. An already-expired window
// is tolerated here so existing discounts can still be edited.
func (v *DiscountValidator) ValidateUpdate(ctx context.Context, current, updated *entity.Discount) error {
	if err := v.validateCode(ctx, updated.DiscountCode, current.ID); err != nil {
		return err
	}
	return v.validateFields(ctx, updated)
}

func (v *DiscountValidator) validateCode(ctx context.Context, code string, selfID int64) error {
	if code == "" {
		return apperror.NewValidationError("Discount code is required.")
	}
	existing, err := v.discounts.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return apperror.NewConflictError(fmt.Sprintf("Discount code '%s' already exists.", code))
	}
	return nil
}

func (v *DiscountValidator) validateFields(ctx context.Context, discount *entity.Discount) error {
	if discount.Percentage <= 0 {
		return apperror.NewValidationError("Discount percentage must be greater than zero.")
	}
	if discount.Percentage > 100 {
		return apperror.NewValidationError("Discount percentage cannot exceed 100.")
	}
	if discount.StartDate != nil && discount.EndDate != nil && discount.StartDate.After(*discount.EndDate) {
		return apperror.NewValidationError("Discount start date must be on or before the end date.")
	}

	if discount.LocationID != nil && discount.VendorID != nil {
		return apperror.NewValidationError("Discount must target either a location or a vendor, not both.")
	}
	if discount.LocationID == nil && discount.VendorID == nil {
		return apperror.NewValidationError("Discount must target a location or a vendor.")
	}

	if discount.LocationID != nil {
		location, err := v.locations.GetByID(ctx, *discount.LocationID)
		if err != nil {
			return err
		}
		if location == nil {
			return apperror.NewNotFoundError("Location")
		}
	}
	if discount.VendorID != nil {
		vendor, err := v.vendors.GetByID(ctx, *discount.VendorID)
		if err != nil {
			return err
		}
		if vendor == nil {
			return apperror.NewNotFoundError("Vendor")
		}
	}
	return nil
}
