package validator

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/collinsdev/marketplace-api/internal/domain/entity"
	"github.com/collinsdev/marketplace-api/internal/domain/enum"
	"github.com/collinsdev/marketplace-api/pkg/apperror"
)

// OrderValidator holds every business rule for order create, update and
// delete. The same instance is consulted from all three paths.
type OrderValidator struct {
	orders    OrderNumberLookup
	locations LocationLookup
	users     UserLookup
	discounts DiscountLookup
	payments  PaymentCounter
	now       func() time.Time
}

// NewOrderValidator creates a new order validator
func NewOrderValidator(
	orders OrderNumberLookup,
	locations LocationLookup,
	users UserLookup,
	discounts DiscountLookup,
	payments PaymentCounter,
) *OrderValidator {
	return &OrderValidator{
		orders:    orders,
		locations: locations,
		users:     users,
		discounts: discounts,
		payments:  payments,
		now:       time.Now,
	}
}

// ValidateCreate checks an order before insertion
func (v *OrderValidator) ValidateCreate(ctx context.Context, order *entity.Order) error {
	if order.OrderNumber == "" {
		return apperror.NewValidationError("Order number is required.")
	}

	existing, err := v.orders.GetByOrderNumber(ctx, order.OrderNumber)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperror.NewConflictError(fmt.Sprintf("Order number '%s' already exists.", order.OrderNumber))
	}

	location, err := v.locations.GetByID(ctx, order.LocationID)
	if err != nil {
		return err
	}
	if location == nil {
		return apperror.NewNotFoundError("Location")
	}
	if !location.IsActive {
		return apperror.NewValidationError("Location is not active.")
	}

	user, err := v.users.GetByID(ctx, order.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}
	if !user.IsActive {
		return apperror.NewValidationError("User is not active.")
	}

	if order.DiscountID != nil {
		discount, err := v.discounts.GetByID(ctx, *order.DiscountID)
		if err != nil {
			return err
		}
		if discount == nil {
			return apperror.NewNotFoundError("Discount")
		}
		if !discount.IsValidOn(v.now()) {
			return apperror.NewValidationError("Discount is not currently valid.")
		}
	}

	if order.OrderDate.After(v.now().Add(24 * time.Hour)) {
		return apperror.NewValidationError("Order date cannot be more than one day in the future.")
	}

	if !order.Status.IsValid() {
		return apperror.NewValidationError(fmt.Sprintf("Invalid order status value: %d.", int(order.Status)))
	}

	return v.validateAmounts(order)
}

// ValidateUpdate checks an order before an update. The status field is routed
// through the order transition table; the order number must stay unique
// excluding the order itself.
func (v *OrderValidator) ValidateUpdate(ctx context.Context, current, updated *entity.Order) error {
	if updated.OrderNumber == "" {
		return apperror.NewValidationError("Order number is required.")
	}

	existing, err := v.orders.GetByOrderNumber(ctx, updated.OrderNumber)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != current.ID {
		return apperror.NewConflictError(fmt.Sprintf("Order number '%s' already exists.", updated.OrderNumber))
	}

	if err := current.Status.ValidateTransition(updated.Status); err != nil {
		return err
	}

	return v.validateAmounts(updated)
}

// ValidateDelete checks that an order may be removed: only pending or
// cancelled orders with no payment rows qualify.
func (v *OrderValidator) ValidateDelete(ctx context.Context, order *entity.Order) error {
	if order.Status != enum.OrderStatusPending && order.Status != enum.OrderStatusCancelled {
		return apperror.NewConflictError(
			fmt.Sprintf("Order with status %s cannot be deleted.", order.Status))
	}

	count, err := v.payments.CountByOrderID(ctx, order.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.NewConflictError("Order cannot be deleted while payments exist.")
	}

	return nil
}

func (v *OrderValidator) validateAmounts(order *entity.Order) error {
	if order.SubTotal < 0 {
		return apperror.NewValidationError("Order subtotal cannot be negative.")
	}
	if order.DiscountAmount < 0 {
		return apperror.NewValidationError("Discount amount cannot be negative.")
	}
	if order.DiscountAmount > order.SubTotal {
		return apperror.NewValidationError("Discount amount cannot exceed order subtotal.")
	}
	if math.Abs(order.Total-(order.SubTotal-order.DiscountAmount)) >= amountTolerance {
		return apperror.NewValidationError("Order total must equal subtotal minus discount amount.")
	}
	if order.Total < 0 {
		return apperror.NewValidationError("Order total cannot be negative.")
	}
	return nil
}
