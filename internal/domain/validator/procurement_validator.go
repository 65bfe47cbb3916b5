package validator

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"time"

	"github.com/collinsdev/marketplace-api/internal/domain/entity"
	"github.com/collinsdev/marketplace-api/pkg/apperror"
)

const (
	maxProcurementAmount = 10_000_000
	maxPurchasePrice     = 100_000
	maxProcurementQty    = 100_000
	maxNotesLength       = 1000
)

// referenceNoPattern: 2-3 upper-case letters, a hyphen, 4-6 digits
var referenceNoPattern = regexp.MustCompile(`^[A-Z]{2,3}-\d{4,6}$`)

// ProcurementValidator holds every business rule for procurement create,
// update and delete. Procurements carry no status machine; deletion is gated
// only on remaining detail lines.
type ProcurementValidator struct {
	procurements ReferenceNoLookup
	vendors      VendorLookup
	locations    LocationLookup
	details      ProcurementDetailLookup
	now          func() time.Time
}

// NewProcurementValidator creates a new procurement validator
func NewProcurementValidator(
	procurements ReferenceNoLookup,
	vendors VendorLookup,
	locations LocationLookup,
	details ProcurementDetailLookup,
) *ProcurementValidator {
	return &ProcurementValidator{
		procurements: procurements,
		vendors:      vendors,
		locations:    locations,
		details:      details,
		now:          time.Now,
	}
}

// ValidateCreate checks a procurement before insertion
func (v *ProcurementValidator) ValidateCreate(ctx context.Context, procurement *entity.Procurement) error {
	if err := v.validateReferenceNo(ctx, procurement.ReferenceNo, 0); err != nil {
		return err
	}

	vendor, err := v.vendors.GetByID(ctx, procurement.VendorID)
	if err != nil {
		return err
	}
	if vendor == nil {
		return apperror.NewNotFoundError("Vendor")
	}

	location, err := v.locations.GetByID(ctx, procurement.LocationID)
	if err != nil {
		return err
	}
	if location == nil {
		return apperror.NewNotFoundError("Location")
	}
	if !location.IsActive {
		return apperror.NewValidationError("Location is not active.")
	}

	return v.validateFields(procurement)
}

// ValidateUpdate checks a procurement before an update, re-checking reference
// number uniqueness excluding the procurement itself.
func (v *ProcurementValidator) ValidateUpdate(ctx context.Context, current, updated *entity.Procurement) error {
	if err := v.validateReferenceNo(ctx, updated.ReferenceNo, current.ID); err != nil {
		return err
	}
	return v.validateFields(updated)
}

// ValidateDelete blocks deletion while any detail lines remain
func (v *ProcurementValidator) ValidateDelete(ctx context.Context, procurement *entity.Procurement) error {
	count, err := v.details.CountByProcurementID(ctx, procurement.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.NewConflictError("Procurement cannot be deleted while detail lines exist.")
	}
	return nil
}

func (v *ProcurementValidator) validateReferenceNo(ctx context.Context, referenceNo string, selfID int64) error {
	if !referenceNoPattern.MatchString(referenceNo) {
		return apperror.NewValidationError(
			"Reference number must be 2-3 upper-case letters, a hyphen, then 4-6 digits.")
	}

	existing, err := v.procurements.GetByReferenceNo(ctx, referenceNo)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return apperror.NewConflictError(fmt.Sprintf("Reference number '%s' already exists.", referenceNo))
	}
	return nil
}

func (v *ProcurementValidator) validateFields(procurement *entity.Procurement) error {
	now := v.now()
	if procurement.ProcurementDate.After(now.Add(24 * time.Hour)) {
		return apperror.NewValidationError("Procurement date cannot be more than one day in the future.")
	}
	if procurement.ProcurementDate.Before(now.AddDate(-5, 0, 0)) {
		return apperror.NewValidationError("Procurement date cannot be more than five years in the past.")
	}
	if procurement.TotalAmount < 0 {
		return apperror.NewValidationError("Total amount cannot be negative.")
	}
	if procurement.TotalAmount > maxProcurementAmount {
		return apperror.NewValidationError("Total amount cannot exceed 10,000,000.")
	}
	if len(procurement.Notes) > maxNotesLength {
		return apperror.NewValidationError("Notes cannot exceed 1000 characters.")
	}
	return nil
}

// ProcurementDetailValidator holds the rules for procurement line mutations
type ProcurementDetailValidator struct {
	details ProcurementDetailLookup
}

// NewProcurementDetailValidator creates a new procurement detail validator
func NewProcurementDetailValidator(details ProcurementDetailLookup) *ProcurementDetailValidator {
	return &ProcurementDetailValidator{details: details}
}

// ValidateAdd checks a new procurement line; a (procurement, product) pair may
// appear only once.
func (v *ProcurementDetailValidator) ValidateAdd(ctx context.Context, procurement *entity.Procurement, product *entity.Product, detail *entity.ProcurementDetail) error {
	if procurement == nil {
		return apperror.NewNotFoundError("Procurement")
	}
	if err := v.validateProduct(product); err != nil {
		return err
	}
	if err := v.validateAmounts(detail); err != nil {
		return err
	}

	existing, err := v.details.GetByProcurementAndProduct(ctx, detail.ProcurementID, detail.ProductID)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperror.NewConflictError("Product already exists on this procurement.")
	}
	return nil
}

// ValidateUpdate checks a procurement line update
func (v *ProcurementDetailValidator) ValidateUpdate(ctx context.Context, procurement *entity.Procurement, product *entity.Product, detail *entity.ProcurementDetail) error {
	if procurement == nil {
		return apperror.NewNotFoundError("Procurement")
	}
	if err := v.validateProduct(product); err != nil {
		return err
	}
	return v.validateAmounts(detail)
}

// ValidateTotalDelta checks that shifting the parent procurement's total by
// delta keeps it within the 0 to 10,000,000 range. Individual lines can pass
// their own bounds while pushing the parent past the cap.
func (v *ProcurementDetailValidator) ValidateTotalDelta(procurement *entity.Procurement, delta float64) error {
	total := procurement.TotalAmount + delta
	if total > maxProcurementAmount {
		return apperror.NewConflictError(fmt.Sprintf(
			"Procurement total would reach %.2f, above the 10,000,000 limit.", total))
	}
	if total < 0 {
		return apperror.NewConflictError(fmt.Sprintf(
			"Procurement total would fall to %.2f.", total))
	}
	return nil
}

func (v *ProcurementDetailValidator) validateProduct(product *entity.Product) error {
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	if !product.IsAvailable {
		return apperror.NewValidationError("Product is not available.")
	}
	return nil
}

func (v *ProcurementDetailValidator) validateAmounts(detail *entity.ProcurementDetail) error {
	if detail.PurchasePrice <= 0 {
		return apperror.NewValidationError("Purchase price must be greater than zero.")
	}
	if detail.PurchasePrice > maxPurchasePrice {
		return apperror.NewValidationError("Purchase price cannot exceed 100,000.")
	}
	if detail.Quantity <= 0 {
		return apperror.NewValidationError("Quantity must be greater than zero.")
	}
	if detail.Quantity >= maxProcurementQty {
		return apperror.NewValidationError("Quantity must be less than 100,000.")
	}
	if math.Abs(detail.LineTotal-float64(detail.Quantity)*detail.PurchasePrice) >= amountTolerance {
		return apperror.NewValidationError("Line total must equal quantity times purchase price.")
	}
	return nil
}
