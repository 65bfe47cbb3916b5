package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/collinsdev/marketplace-api/pkg/apperror"
)

// OrderStatus represents the status of an order
type OrderStatus int

const (
	OrderStatusPending   OrderStatus = 0
	OrderStatusCompleted OrderStatus = 1
	OrderStatusCancelled OrderStatus = 2
)

// orderTransitions is the fixed transition table for the order lifecycle.
// Completed and Cancelled are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted: {},
	OrderStatusCancelled: {},
}

func (s OrderStatus) String() string {
	switch s {
	case OrderStatusPending:
		return "Pending"
	case OrderStatusCompleted:
		return "Completed"
	case OrderStatusCancelled:
		return "Cancelled"
	}
	return fmt.Sprintf("OrderStatus(%d)", int(s))
}

// IsValid reports whether s is a defined order status
func (s OrderStatus) IsValid() bool {
	_, ok := orderTransitions[s]
	return ok
}

// IsTerminal reports whether no transition leaves s
func (s OrderStatus) IsTerminal() bool {
	return len(orderTransitions[s]) == 0
}

// CanTransitionTo reports whether the transition s -> next is allowed.
// Requesting the current status again is treated as a no-op and allowed.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ValidateTransition returns a conflict error naming both states when the
// transition s -> next is not allowed.
func (s OrderStatus) ValidateTransition(next OrderStatus) error {
	if !next.IsValid() {
		return apperror.NewValidationError(fmt.Sprintf("Invalid order status value: %d.", int(next)))
	}
	if !s.CanTransitionTo(next) {
		return apperror.NewConflictError(
			fmt.Sprintf("Order status cannot change from %s to %s.", s, next))
	}
	return nil
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		if !OrderStatus(i).IsValid() {
			return fmt.Errorf("unknown order status: %d", i)
		}
		*s = OrderStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = OrderStatusPending
	case "Completed":
		*s = OrderStatusCompleted
	case "Cancelled":
		*s = OrderStatusCancelled
	default:
		return fmt.Errorf("unknown order status: %q", str)
	}
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *OrderStatus) Scan(value interface{}) error {
	if value == nil {
		*s = OrderStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = OrderStatus(v)
	case int:
		*s = OrderStatus(v)
	}
	return nil
}
