package validator

import (
	"context"
	"fmt"
	"time"

	"github.com/collinsdev/marketplace-api/internal/domain/entity"
	"github.com/collinsdev/marketplace-api/internal/domain/enum"
	"github.com/collinsdev/marketplace-api/pkg/apperror"
)

// maxPaymentAmount is the upper bound on a single payment
const maxPaymentAmount = 1_000_000

// PaymentValidator holds every business rule for payment create, update and
// delete, including the completed-payment-sum bound against the order total.
type PaymentValidator struct {
	payments PaymentSummer
	now      func() time.Time
}

// NewPaymentValidator creates a new payment validator
func NewPaymentValidator(payments PaymentSummer) *PaymentValidator {
	return &PaymentValidator{payments: payments, now: time.Now}
}

// ValidateAdd checks a new payment against its order. When the payment is
// created already completed, its amount counts toward the order's
// completed-payment sum immediately.
func (v *PaymentValidator) ValidateAdd(ctx context.Context, order *entity.Order, payment *entity.Payment) error {
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}
	if err := v.validateFields(payment); err != nil {
		return err
	}
	if payment.Status == enum.PaymentStatusCompleted {
		return v.validateCompletedSum(ctx, order, payment.Amount, 0)
	}
	return nil
}

// ValidateUpdate checks a payment update. The status change is routed through
// the payment transition table before any other rule; the over-payment check
// excludes the payment being updated from the existing sum.
func (v *PaymentValidator) ValidateUpdate(ctx context.Context, order *entity.Order, current, updated *entity.Payment) error {
	if err := current.Status.ValidateTransition(updated.Status); err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}
	if err := v.validateFields(updated); err != nil {
		return err
	}
	if updated.Status == enum.PaymentStatusCompleted {
		return v.validateCompletedSum(ctx, order, updated.Amount, current.ID)
	}
	return nil
}

// ValidateDelete rejects deletion of completed and refunded payments; they are
// part of the audit trail.
func (v *PaymentValidator) ValidateDelete(payment *entity.Payment) error {
	if payment.Status == enum.PaymentStatusCompleted || payment.Status == enum.PaymentStatusRefunded {
		return apperror.NewConflictError(
			fmt.Sprintf("A %s payment cannot be deleted.", payment.Status))
	}
	return nil
}

func (v *PaymentValidator) validateFields(payment *entity.Payment) error {
	if payment.Amount <= 0 {
		return apperror.NewValidationError("Payment amount must be greater than zero.")
	}
	if payment.Amount > maxPaymentAmount {
		return apperror.NewValidationError("Payment amount cannot exceed 1,000,000.")
	}
	if !payment.PaymentMethod.IsValid() {
		return apperror.NewValidationError(fmt.Sprintf("Invalid payment method value: %d.", int(payment.PaymentMethod)))
	}
	if !payment.Status.IsValid() {
		return apperror.NewValidationError(fmt.Sprintf("Invalid payment status value: %d.", int(payment.Status)))
	}

	now := v.now()
	if payment.PaymentDate.Before(now.AddDate(-1, 0, 0)) {
		return apperror.NewValidationError("Payment date cannot be more than one year in the past.")
	}
	if payment.PaymentDate.After(now.Add(24 * time.Hour)) {
		return apperror.NewValidationError("Payment date cannot be more than one day in the future.")
	}
	return nil
}

func (v *PaymentValidator) validateCompletedSum(ctx context.Context, order *entity.Order, amount float64, excludeID int64) error {
	completed, err := v.payments.SumCompletedByOrder(ctx, order.ID, excludeID)
	if err != nil {
		return err
	}
	// Hard bound, no rounding slack: completed payments never exceed the total.
	if completed+amount > order.Total {
		return apperror.NewConflictError(fmt.Sprintf(
			"Completed payments (%.2f) would exceed the order total (%.2f).",
			completed+amount, order.Total))
	}
	return nil
}
