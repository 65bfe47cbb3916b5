package service

import (
	"context"
	"time"

	"github.com/collinsdev/marketplace-api/internal/domain/entity"
	"github.com/collinsdev/marketplace-api/internal/domain/enum"
	"github.com/collinsdev/marketplace-api/internal/domain/repository"
	"github.com/collinsdev/marketplace-api/internal/domain/validator"
	"github.com/collinsdev/marketplace-api/pkg/apperror"
	"github.com/collinsdev/marketplace-api/pkg/pagination"
)

// PaymentService coordinates payment operations against their parent order.
// The over-payment check and the write happen inside one transaction so two
// concurrent payments cannot both pass the completed-sum bound.
type PaymentService struct {
	paymentRepo      repository.PaymentRepository
	orderRepo        repository.OrderRepository
	paymentValidator *validator.PaymentValidator
	tx               repository.TxManager
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	orderRepo repository.OrderRepository,
	paymentValidator *validator.PaymentValidator,
	tx repository.TxManager,
) *PaymentService {
	return &PaymentService{
		paymentRepo:      paymentRepo,
		orderRepo:        orderRepo,
		paymentValidator: paymentValidator,
		tx:               tx,
	}
}

// CreatePaymentInput represents the create payment input
type CreatePaymentInput struct {
	OrderID       int64
	Amount        float64
	PaymentMethod enum.PaymentMethod
	Status        enum.PaymentStatus
	PaymentDate   time.Time
	Reference     string
}

// CreatePayment records a payment against an order
func (s *PaymentService) CreatePayment(ctx context.Context, input *CreatePaymentInput) (*entity.Payment, error) {
	paymentDate := input.PaymentDate
	if paymentDate.IsZero() {
		paymentDate = time.Now()
	}

	payment := &entity.Payment{
		OrderID:       input.OrderID,
		Amount:        input.Amount,
		PaymentMethod: input.PaymentMethod,
		Status:        input.Status,
		PaymentDate:   paymentDate,
		Reference:     input.Reference,
	}

	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.GetByID(ctx, input.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}

		if err := s.paymentValidator.ValidateAdd(ctx, order, payment); err != nil {
			return err
		}
		return s.paymentRepo.Create(ctx, payment)
	})
	if err != nil {
		return nil, err
	}
	return payment, nil
}

// GetPayment retrieves a payment by ID
func (s *PaymentService) GetPayment(ctx context.Context, id int64) (*entity.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, apperror.NewNotFoundError("Payment")
	}
	return payment, nil
}

// GetOrderPayments returns every payment attached to an order
func (s *PaymentService) GetOrderPayments(ctx context.Context, orderID int64) ([]entity.Payment, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return s.paymentRepo.GetByOrderID(ctx, orderID)
}

// UpdatePaymentInput represents the mutable fields of a payment
type UpdatePaymentInput struct {
	Amount        *float64
	PaymentMethod *enum.PaymentMethod
	Status        *enum.PaymentStatus
	PaymentDate   *time.Time
	Reference     *string
}

// UpdatePayment applies changes to a payment. Status changes are routed
// through the payment transition table before any other rule runs.
func (s *PaymentService) UpdatePayment(ctx context.Context, id int64, input *UpdatePaymentInput) (*entity.Payment, error) {
	var result *entity.Payment
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		current, err := s.paymentRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return apperror.NewNotFoundError("Payment")
		}

		order, err := s.orderRepo.GetByID(ctx, current.OrderID)
		if err != nil {
			return err
		}

		updated := *current
		if input.Amount != nil {
			updated.Amount = *input.Amount
		}
		if input.PaymentMethod != nil {
			updated.PaymentMethod = *input.PaymentMethod
		}
		if input.Status != nil {
			updated.Status = *input.Status
		}
		if input.PaymentDate != nil {
			updated.PaymentDate = *input.PaymentDate
		}
		if input.Reference != nil {
			updated.Reference = *input.Reference
		}

		if err := s.paymentValidator.ValidateUpdate(ctx, order, current, &updated); err != nil {
			return err
		}
		if err := s.paymentRepo.Update(ctx, &updated); err != nil {
			return err
		}
		result = &updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeletePayment removes a payment; completed and refunded payments are kept
// as part of the audit trail and cannot be removed.
func (s *PaymentService) DeletePayment(ctx context.Context, id int64) error {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if payment == nil {
		return apperror.NewNotFoundError("Payment")
	}

	if err := s.paymentValidator.ValidateDelete(payment); err != nil {
		return err
	}
	return s.paymentRepo.Delete(ctx, id)
}

// ListPayments lists payments with filtering
func (s *PaymentService) ListPayments(ctx context.Context, params *repository.PaymentFilterParams) (*pagination.PaginatedResult[entity.Payment], error) {
	payments, total, err := s.paymentRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(payments, pag), nil
}
