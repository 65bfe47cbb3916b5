package repository

import (
	"context"
	"errors"

	"github.com/collinsdev/marketplace-api/internal/domain/entity"
	domainRepo "github.com/collinsdev/marketplace-api/internal/domain/repository"
	"github.com/collinsdev/marketplace-api/pkg/apperror"
	"github.com/collinsdev/marketplace-api/pkg/pagination"
	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) domainRepo.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	return r.conn(ctx).Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	var order entity.Order
	err := r.conn(ctx).First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error) {
	var order entity.Order
	err := r.conn(ctx).First(&order, "order_number = ?", orderNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetWithDetails(ctx context.Context, id int64) (*entity.Order, error) {
	var order entity.Order
	err := r.conn(ctx).
		Preload("Discount").
		Preload("Details.Product").
		Preload("Payments").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Update performs a compare-and-swap on the order's version column. A zero
// row count means another request changed the order first.
func (r *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	expected := order.Version
	order.Version++

	result := r.conn(ctx).Model(&entity.Order{}).
		Where("id = ? AND version = ?", order.ID, expected).
		Updates(map[string]interface{}{
			"order_number":     order.OrderNumber,
			"order_date":       order.OrderDate,
			"sub_total":        order.SubTotal,
			"discount_amount":  order.DiscountAmount,
			"total":            order.Total,
			"total_commission": order.TotalCommission,
			"status":           order.Status,
			"location_id":      order.LocationID,
			"user_id":          order.UserID,
			"discount_id":      order.DiscountID,
			"customer_name":    order.CustomerName,
			"customer_phone":   order.CustomerPhone,
			"notes":            order.Notes,
			"version":          order.Version,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NewConflictError("Order was modified by another request. Please retry.")
	}
	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	return r.conn(ctx).Delete(&entity.Order{}, "id = ?", id).Error
}

func (r *orderRepository) ApplyTotalsDelta(ctx context.Context, id int64, delta float64) error {
	return r.conn(ctx).Model(&entity.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"sub_total": gorm.Expr("sub_total + ?", delta),
			"total":     gorm.Expr("total + ?", delta),
		}).Error
}

func (r *orderRepository) List(ctx context.Context, params *domainRepo.OrderFilterParams) ([]entity.Order, int64, error) {
	var orders []entity.Order
	var total int64

	query := r.conn(ctx).Model(&entity.Order{})

	if params.Search != "" {
		query = query.Where("order_number ILIKE ? OR customer_name ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.LocationID != nil {
		query = query.Where("location_id = ?", *params.LocationID)
	}
	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}
	if params.DiscountID != nil {
		query = query.Where("discount_id = ?", *params.DiscountID)
	}
	if params.StartDate != nil {
		query = query.Where("order_date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("order_date <= ?", *params.EndDate)
	}
	if params.MinTotal != nil {
		query = query.Where("total >= ?", *params.MinTotal)
	}
	if params.MaxTotal != nil {
		query = query.Where("total <= ?", *params.MaxTotal)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Discount").
		Order(resolveSort(orderSortColumns, params.SortBy, params.SortDirection, "created_at DESC")).
		Find(&orders).Error

	return orders, total, err
}

// ListWithCursor returns orders using cursor-based pagination
func (r *orderRepository) ListWithCursor(ctx context.Context, params *domainRepo.OrderCursorFilterParams) ([]entity.Order, error) {
	var orders []entity.Order

	params.Cursor.Validate()
	query := r.conn(ctx).Model(&entity.Order{})

	if params.Search != "" {
		query = query.Where("order_number ILIKE ? OR customer_name ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.LocationID != nil {
		query = query.Where("location_id = ?", *params.LocationID)
	}
	if params.UserID != nil {
		query = query.Where("user_id = ?", *params.UserID)
	}
	if params.StartDate != nil {
		query = query.Where("order_date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("order_date <= ?", *params.EndDate)
	}

	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}

	if cursor != nil {
		if params.Cursor.Direction == pagination.CursorDirectionNext {
			query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
		} else {
			query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
		}
	}

	err = query.Limit(params.Cursor.Limit + 1).
		Order("created_at ASC, id ASC").
		Find(&orders).Error

	return orders, err
}

type orderDetailRepository struct {
	db *gorm.DB
}

// NewOrderDetailRepository creates a new order detail repository
func NewOrderDetailRepository(db *gorm.DB) domainRepo.OrderDetailRepository {
	return &orderDetailRepository{db: db}
}

func (r *orderDetailRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

func (r *orderDetailRepository) Create(ctx context.Context, detail *entity.OrderDetail) error {
	return r.conn(ctx).Create(detail).Error
}

func (r *orderDetailRepository) GetByID(ctx context.Context, id int64) (*entity.OrderDetail, error) {
	var detail entity.OrderDetail
	err := r.conn(ctx).First(&detail, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *orderDetailRepository) GetByOrderID(ctx context.Context, orderID int64) ([]entity.OrderDetail, error) {
	var details []entity.OrderDetail
	err := r.conn(ctx).
		Preload("Product").
		Where("order_id = ?", orderID).
		Find(&details).Error
	return details, err
}

func (r *orderDetailRepository) GetByOrderAndProduct(ctx context.Context, orderID, productID int64) (*entity.OrderDetail, error) {
	var detail entity.OrderDetail
	err := r.conn(ctx).First(&detail, "order_id = ? AND product_id = ?", orderID, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *orderDetailRepository) Update(ctx context.Context, detail *entity.OrderDetail) error {
	return r.conn(ctx).Save(detail).Error
}

func (r *orderDetailRepository) Delete(ctx context.Context, id int64) error {
	return r.conn(ctx).Delete(&entity.OrderDetail{}, "id = ?", id).Error
}
