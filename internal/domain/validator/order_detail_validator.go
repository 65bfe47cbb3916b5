package validator

import (
	"context"
	"fmt"
	"math"

	"github.com/collinsdev/marketplace-api/internal/domain/entity"
	"github.com/collinsdev/marketplace-api/internal/domain/enum"
	"github.com/collinsdev/marketplace-api/pkg/apperror"
)

// OrderDetailValidator holds every business rule for order line mutations.
// Callers load the parent order and referenced product first and pass them in;
// only the duplicate-line check reads through a lookup.
type OrderDetailValidator struct {
	details OrderDetailLookup
}

// NewOrderDetailValidator creates a new order detail validator
func NewOrderDetailValidator(details OrderDetailLookup) *OrderDetailValidator {
	return &OrderDetailValidator{details: details}
}

// ValidateAdd checks a new order line: the parent must be editable, the
// product available with sufficient stock, and the line must not duplicate an
// existing (order, product) pair.
func (v *OrderDetailValidator) ValidateAdd(ctx context.Context, order *entity.Order, product *entity.Product, detail *entity.OrderDetail) error {
	if err := v.validateParent(order); err != nil {
		return err
	}
	if err := v.validateProduct(product); err != nil {
		return err
	}
	if err := v.validateAmounts(detail); err != nil {
		return err
	}

	if product.InStock < detail.Quantity {
		return apperror.NewConflictError(fmt.Sprintf(
			"Insufficient stock for product '%s': %d in stock, %d requested.",
			product.Name, product.InStock, detail.Quantity))
	}

	existing, err := v.details.GetByOrderAndProduct(ctx, detail.OrderID, detail.ProductID)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperror.NewConflictError("Product already exists on this order.")
	}

	return nil
}

// ValidateUpdate checks an order line update
func (v *OrderDetailValidator) ValidateUpdate(ctx context.Context, order *entity.Order, product *entity.Product, detail *entity.OrderDetail) error {
	if err := v.validateParent(order); err != nil {
		return err
	}
	if err := v.validateProduct(product); err != nil {
		return err
	}
	return v.validateAmounts(detail)
}

// ValidateDelete checks that the parent order still accepts line mutations
func (v *OrderDetailValidator) ValidateDelete(ctx context.Context, order *entity.Order) error {
	return v.validateParent(order)
}

// ValidateTotalsDelta checks that shifting the parent order's subtotal by
// delta keeps the discount amount covered, so the stored total never goes
// negative.
func (v *OrderDetailValidator) ValidateTotalsDelta(order *entity.Order, delta float64) error {
	if order.SubTotal+delta < order.DiscountAmount {
		return apperror.NewConflictError(fmt.Sprintf(
			"Order subtotal would fall to %.2f, below the discount amount of %.2f.",
			order.SubTotal+delta, order.DiscountAmount))
	}
	return nil
}

func (v *OrderDetailValidator) validateParent(order *entity.Order) error {
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}
	if order.Status >= enum.OrderStatusCompleted {
		return apperror.NewConflictError(
			fmt.Sprintf("Order with status %s cannot be modified.", order.Status))
	}
	return nil
}

func (v *OrderDetailValidator) validateProduct(product *entity.Product) error {
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	if !product.IsAvailable {
		return apperror.NewValidationError("Product is not available.")
	}
	return nil
}

func (v *OrderDetailValidator) validateAmounts(detail *entity.OrderDetail) error {
	if detail.Quantity <= 0 {
		return apperror.NewValidationError("Quantity must be greater than zero.")
	}
	if detail.UnitPrice < 0 {
		return apperror.NewValidationError("Unit price cannot be negative.")
	}
	if detail.LineTotal < 0 {
		return apperror.NewValidationError("Line total cannot be negative.")
	}
	if detail.CostPrice < 0 {
		return apperror.NewValidationError("Cost price cannot be negative.")
	}
	if math.Abs(detail.LineTotal-float64(detail.Quantity)*detail.UnitPrice) >= amountTolerance {
		return apperror.NewValidationError("Line total must equal quantity times unit price.")
	}
	if math.Abs(detail.Profit-(detail.LineTotal-float64(detail.Quantity)*detail.CostPrice)) >= amountTolerance {
		return apperror.NewValidationError("Profit must equal line total minus total cost.")
	}
	return nil
}
