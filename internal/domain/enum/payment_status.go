package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/collinsdev/marketplace-api/pkg/apperror"
)

// PaymentStatus represents the status of a payment
type PaymentStatus int

const (
	PaymentStatusPending   PaymentStatus = 0
	PaymentStatusCompleted PaymentStatus = 1
	PaymentStatusFailed    PaymentStatus = 2
	PaymentStatusCancelled PaymentStatus = 3
	PaymentStatusRefunded  PaymentStatus = 4
)

// paymentTransitions is the fixed transition table for the payment lifecycle.
// Cancelled and Refunded are terminal; a Failed payment may be retried.
var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending:   {PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusCancelled},
	PaymentStatusCompleted: {PaymentStatusRefunded},
	PaymentStatusFailed:    {PaymentStatusPending},
	PaymentStatusCancelled: {},
	PaymentStatusRefunded:  {},
}

func (s PaymentStatus) String() string {
	switch s {
	case PaymentStatusPending:
		return "Pending"
	case PaymentStatusCompleted:
		return "Completed"
	case PaymentStatusFailed:
		return "Failed"
	case PaymentStatusCancelled:
		return "Cancelled"
	case PaymentStatusRefunded:
		return "Refunded"
	}
	return fmt.Sprintf("PaymentStatus(%d)", int(s))
}

// IsValid reports whether s is a defined payment status
func (s PaymentStatus) IsValid() bool {
	_, ok := paymentTransitions[s]
	return ok
}

// IsTerminal reports whether no transition leaves s
func (s PaymentStatus) IsTerminal() bool {
	return len(paymentTransitions[s]) == 0
}

// CanTransitionTo reports whether the transition s -> next is allowed.
// Requesting the current status again is treated as a no-op and allowed.
func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ValidateTransition returns a conflict error naming both states when the
// transition s -> next is not allowed.
func (s PaymentStatus) ValidateTransition(next PaymentStatus) error {
	if !next.IsValid() {
		return apperror.NewValidationError(fmt.Sprintf("Invalid payment status value: %d.", int(next)))
	}
	if !s.CanTransitionTo(next) {
		return apperror.NewConflictError(
			fmt.Sprintf("Payment status cannot change from %s to %s.", s, next))
	}
	return nil
}

func (s PaymentStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *PaymentStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		if !PaymentStatus(i).IsValid() {
			return fmt.Errorf("unknown payment status: %d", i)
		}
		*s = PaymentStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = PaymentStatusPending
	case "Completed":
		*s = PaymentStatusCompleted
	case "Failed":
		*s = PaymentStatusFailed
	case "Cancelled":
		*s = PaymentStatusCancelled
	case "Refunded":
		*s = PaymentStatusRefunded
	default:
		return fmt.Errorf("unknown payment status: %q", str)
	}
	return nil
}

func (s PaymentStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *PaymentStatus) Scan(value interface{}) error {
	if value == nil {
		*s = PaymentStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = PaymentStatus(v)
	case int:
		*s = PaymentStatus(v)
	}
	return nil
}
