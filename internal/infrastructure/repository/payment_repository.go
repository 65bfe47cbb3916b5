package repository

import (
	"context"
	"errors"

	"github.com/collinsdev/marketplace-api/internal/domain/entity"
	"github.com/collinsdev/marketplace-api/internal/domain/enum"
	domainRepo "github.com/collinsdev/marketplace-api/internal/domain/repository"
	"github.com/collinsdev/marketplace-api/pkg/apperror"
	"gorm.io/gorm"
)

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return r.conn(ctx).Create(payment).Error
}

func (r *paymentRepository) GetByID(ctx context.Context, id int64) (*entity.Payment, error) {
	var payment entity.Payment
	err := r.conn(ctx).First(&payment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) GetByOrderID(ctx context.Context, orderID int64) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := r.conn(ctx).
		Where("order_id = ?", orderID).
		Order("payment_date ASC, id ASC").
		Find(&payments).Error
	return payments, err
}

func (r *paymentRepository) SumCompletedByOrder(ctx context.Context, orderID, excludeID int64) (float64, error) {
	var sum float64
	query := r.conn(ctx).Model(&entity.Payment{}).
		Where("order_id = ? AND status = ?", orderID, enum.PaymentStatusCompleted)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Select("COALESCE(SUM(amount), 0)").Scan(&sum).Error
	return sum, err
}

func (r *paymentRepository) CountByOrderID(ctx context.Context, orderID int64) (int64, error) {
	var count int64
	err := r.conn(ctx).Model(&entity.Payment{}).
		Where("order_id = ?", orderID).
		Count(&count).Error
	return count, err
}

// Update performs a compare-and-swap on the payment's version column
func (r *paymentRepository) Update(ctx context.Context, payment *entity.Payment) error {
	expected := payment.Version
	payment.Version++

	result := r.conn(ctx).Model(&entity.Payment{}).
		Where("id = ? AND version = ?", payment.ID, expected).
		Updates(map[string]interface{}{
			"amount":         payment.Amount,
			"payment_method": payment.PaymentMethod,
			"status":         payment.Status,
			"payment_date":   payment.PaymentDate,
			"reference":      payment.Reference,
			"version":        payment.Version,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NewConflictError("Payment was modified by another request. Please retry.")
	}
	return nil
}

func (r *paymentRepository) Delete(ctx context.Context, id int64) error {
	return r.conn(ctx).Delete(&entity.Payment{}, "id = ?", id).Error
}

func (r *paymentRepository) List(ctx context.Context, params *domainRepo.PaymentFilterParams) ([]entity.Payment, int64, error) {
	var payments []entity.Payment
	var total int64

	query := r.conn(ctx).Model(&entity.Payment{})

	if params.OrderID != nil {
		query = query.Where("order_id = ?", *params.OrderID)
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.Method != nil {
		query = query.Where("payment_method = ?", *params.Method)
	}
	if params.StartDate != nil {
		query = query.Where("payment_date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("payment_date <= ?", *params.EndDate)
	}
	if params.MinAmount != nil {
		query = query.Where("amount >= ?", *params.MinAmount)
	}
	if params.MaxAmount != nil {
		query = query.Where("amount <= ?", *params.MaxAmount)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(resolveSort(paymentSortColumns, params.SortBy, params.SortDirection, "created_at DESC")).
		Find(&payments).Error

	return payments, total, err
}
