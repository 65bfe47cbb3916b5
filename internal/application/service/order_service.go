package service

import (
	"context"
	"fmt"
	"time"

	"github.com/collinsdev/marketplace-api/internal/domain/entity"
	"github.com/collinsdev/marketplace-api/internal/domain/enum"
	"github.com/collinsdev/marketplace-api/internal/domain/repository"
	"github.com/collinsdev/marketplace-api/internal/domain/validator"
	"github.com/collinsdev/marketplace-api/pkg/apperror"
	"github.com/collinsdev/marketplace-api/pkg/pagination"
	"github.com/collinsdev/marketplace-api/pkg/utils"
)

// OrderService coordinates order aggregate operations. Every multi-row
// mutation (create with lines, line add/update/delete, cancel) runs inside a
// single transaction so the stored totals never drift from the detail rows.
type OrderService struct {
	orderRepo       repository.OrderRepository
	orderDetailRepo repository.OrderDetailRepository
	productRepo     repository.ProductRepository
	paymentRepo     repository.PaymentRepository
	orderValidator  *validator.OrderValidator
	detailValidator *validator.OrderDetailValidator
	tx              repository.TxManager
}

// NewOrderService creates a new order service
func NewOrderService(
	orderRepo repository.OrderRepository,
	orderDetailRepo repository.OrderDetailRepository,
	productRepo repository.ProductRepository,
	paymentRepo repository.PaymentRepository,
	orderValidator *validator.OrderValidator,
	detailValidator *validator.OrderDetailValidator,
	tx repository.TxManager,
) *OrderService {
	return &OrderService{
		orderRepo:       orderRepo,
		orderDetailRepo: orderDetailRepo,
		productRepo:     productRepo,
		paymentRepo:     paymentRepo,
		orderValidator:  orderValidator,
		detailValidator: detailValidator,
		tx:              tx,
	}
}

// OrderItemInput represents a line item in an order
type OrderItemInput struct {
	ProductID int64
	Quantity  int
	UnitPrice float64
}

// CreateOrderInput represents the create order input
type CreateOrderInput struct {
	OrderNumber    string
	OrderDate      time.Time
	LocationID     int64
	UserID         int64
	DiscountID     *int64
	DiscountAmount float64
	CustomerName   string
	CustomerPhone  string
	Notes          string
	Items          []OrderItemInput
}

// CreateOrder creates an order together with its detail lines. Line totals,
// the order subtotal and the grand total are derived here; stock is
// decremented per line inside the same transaction, so a failure on any line
// rolls everything back.
func (s *OrderService) CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewValidationError("Order must contain at least one item.")
	}

	orderNumber := input.OrderNumber
	if orderNumber == "" {
		orderNumber = utils.GenerateOrderNumber()
	}

	orderDate := input.OrderDate
	if orderDate.IsZero() {
		orderDate = time.Now()
	}

	// Batch fetch all products in one query
	productIDs := make([]int64, len(input.Items))
	for i, item := range input.Items {
		productIDs[i] = item.ProductID
	}
	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	productMap := make(map[int64]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	var subTotal, totalCommission float64
	details := make([]entity.OrderDetail, 0, len(input.Items))
	for _, item := range input.Items {
		product, exists := productMap[item.ProductID]
		if !exists {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Product %d", item.ProductID))
		}

		unitPrice := item.UnitPrice
		if unitPrice == 0 {
			unitPrice = product.UnitPrice
		}
		lineTotal := float64(item.Quantity) * unitPrice
		profit := lineTotal - float64(item.Quantity)*product.CostPrice

		subTotal += lineTotal
		totalCommission += profit

		details = append(details, entity.OrderDetail{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: unitPrice,
			LineTotal: lineTotal,
			CostPrice: product.CostPrice,
			Profit:    profit,
		})
	}

	order := &entity.Order{
		OrderNumber:     orderNumber,
		OrderDate:       orderDate,
		SubTotal:        subTotal,
		DiscountAmount:  input.DiscountAmount,
		Total:           subTotal - input.DiscountAmount,
		TotalCommission: totalCommission,
		Status:          enum.OrderStatusPending,
		LocationID:      input.LocationID,
		UserID:          input.UserID,
		DiscountID:      input.DiscountID,
		CustomerName:    input.CustomerName,
		CustomerPhone:   input.CustomerPhone,
		Notes:           input.Notes,
	}

	err = s.tx.Transaction(ctx, func(ctx context.Context) error {
		if err := s.orderValidator.ValidateCreate(ctx, order); err != nil {
			return err
		}

		for i := range details {
			if err := s.detailValidator.ValidateAdd(ctx, order, productMap[details[i].ProductID], &details[i]); err != nil {
				return err
			}

			ok, err := s.productRepo.DecrementStock(ctx, details[i].ProductID, details[i].Quantity)
			if err != nil {
				return err
			}
			if !ok {
				product := productMap[details[i].ProductID]
				return apperror.NewConflictError(fmt.Sprintf(
					"Insufficient stock for product '%s': %d in stock, %d requested.",
					product.Name, product.InStock, details[i].Quantity))
			}
		}

		if err := s.orderRepo.Create(ctx, order); err != nil {
			return err
		}

		for i := range details {
			details[i].OrderID = order.ID
			if err := s.orderDetailRepo.Create(ctx, &details[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.orderRepo.GetWithDetails(ctx, order.ID)
}

// GetOrder retrieves an order with its details and payments
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*entity.Order, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// UpdateOrderInput represents the mutable header fields of an order
type UpdateOrderInput struct {
	OrderNumber    *string
	OrderDate      *time.Time
	Status         *enum.OrderStatus
	DiscountAmount *float64
	CustomerName   *string
	CustomerPhone  *string
	Notes          *string
}

// UpdateOrder applies header-level changes to an order. Status changes are
// routed through the order transition table; moving to cancelled restores
// stock for every line in the same transaction.
func (s *OrderService) UpdateOrder(ctx context.Context, id int64, input *UpdateOrderInput) (*entity.Order, error) {
	var result *entity.Order
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		current, err := s.orderRepo.GetWithDetails(ctx, id)
		if err != nil {
			return err
		}
		if current == nil {
			return apperror.NewNotFoundError("Order")
		}

		updated := *current
		if input.OrderNumber != nil {
			updated.OrderNumber = *input.OrderNumber
		}
		if input.OrderDate != nil {
			updated.OrderDate = *input.OrderDate
		}
		if input.Status != nil {
			updated.Status = *input.Status
		}
		if input.DiscountAmount != nil {
			updated.DiscountAmount = *input.DiscountAmount
			updated.Total = updated.SubTotal - updated.DiscountAmount
		}
		if input.CustomerName != nil {
			updated.CustomerName = *input.CustomerName
		}
		if input.CustomerPhone != nil {
			updated.CustomerPhone = *input.CustomerPhone
		}
		if input.Notes != nil {
			updated.Notes = *input.Notes
		}

		if err := s.orderValidator.ValidateUpdate(ctx, current, &updated); err != nil {
			return err
		}

		// Moving into cancelled releases the stock held by the order's lines
		if updated.Status == enum.OrderStatusCancelled && current.Status != enum.OrderStatusCancelled {
			for _, detail := range current.Details {
				if err := s.productRepo.IncrementStock(ctx, detail.ProductID, detail.Quantity); err != nil {
					return err
				}
			}
		}

		if err := s.orderRepo.Update(ctx, &updated); err != nil {
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

// CancelOrder transitions an order to cancelled and restores stock
func (s *OrderService) CancelOrder(ctx context.Context, id int64) (*entity.Order, error) {
	status := enum.OrderStatusCancelled
	return s.UpdateOrder(ctx, id, &UpdateOrderInput{Status: &status})
}

// DeleteOrder removes an order and its detail lines. Only pending or
// cancelled orders with no payments qualify; deleting a pending order
// releases the stock its lines still hold.
func (s *OrderService) DeleteOrder(ctx context.Context, id int64) error {
	return s.tx.Transaction(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.GetWithDetails(ctx, id)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}

		if err := s.orderValidator.ValidateDelete(ctx, order); err != nil {
			return err
		}

		// Cancelled orders already released their stock on cancellation
		if order.Status == enum.OrderStatusPending {
			for _, detail := range order.Details {
				if err := s.productRepo.IncrementStock(ctx, detail.ProductID, detail.Quantity); err != nil {
					return err
				}
			}
		}

		for _, detail := range order.Details {
			if err := s.orderDetailRepo.Delete(ctx, detail.ID); err != nil {
				return err
			}
		}
		return s.orderRepo.Delete(ctx, order.ID)
	})
}

// ListOrders lists orders with filtering and page-based pagination
func (s *OrderService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.Order], error) {
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// ListOrdersWithCursor lists orders with cursor-based pagination
func (s *OrderService) ListOrdersWithCursor(ctx context.Context, params *repository.OrderCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Order], error) {
	orders, err := s.orderRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	hasPrev := params.Cursor.Cursor != ""

	cursorPag, items := pagination.NewCursorPagination(orders, params.Cursor.Limit,
		func(o entity.Order) int64 { return o.ID },
		func(o entity.Order) time.Time { return o.CreatedAt },
	)
	cursorPag.HasPrev = hasPrev

	return pagination.NewCursorPaginatedResult(items, cursorPag), nil
}

// OrderDetailInput represents an order line mutation
type OrderDetailInput struct {
	ProductID int64
	Quantity  int
	UnitPrice float64
}

// AddOrderDetail appends a line to a pending order. The line amounts are
// derived from the input, stock is decremented, and the order's subtotal and
// total shift by the new line total, all in one transaction.
func (s *OrderService) AddOrderDetail(ctx context.Context, orderID int64, input *OrderDetailInput) (*entity.OrderDetail, error) {
	var result *entity.OrderDetail
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}

		product, err := s.productRepo.GetByID(ctx, input.ProductID)
		if err != nil {
			return err
		}

		detail := &entity.OrderDetail{
			OrderID:   orderID,
			ProductID: input.ProductID,
			Quantity:  input.Quantity,
			UnitPrice: input.UnitPrice,
		}
		if product != nil {
			if detail.UnitPrice == 0 {
				detail.UnitPrice = product.UnitPrice
			}
			detail.CostPrice = product.CostPrice
		}
		detail.LineTotal = float64(detail.Quantity) * detail.UnitPrice
		detail.Profit = detail.LineTotal - float64(detail.Quantity)*detail.CostPrice

		if err := s.detailValidator.ValidateAdd(ctx, order, product, detail); err != nil {
			return err
		}

		ok, err := s.productRepo.DecrementStock(ctx, detail.ProductID, detail.Quantity)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.NewConflictError(fmt.Sprintf(
				"Insufficient stock for product '%s': %d in stock, %d requested.",
				product.Name, product.InStock, detail.Quantity))
		}

		if err := s.orderDetailRepo.Create(ctx, detail); err != nil {
			return err
		}
		if err := s.orderRepo.ApplyTotalsDelta(ctx, orderID, detail.LineTotal); err != nil {
			return err
		}
		result = detail
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateOrderDetail changes the quantity or unit price of an existing line.
// Stock shifts by the quantity difference and the order totals shift by the
// line-total difference.
func (s *OrderService) UpdateOrderDetail(ctx context.Context, orderID, detailID int64, input *OrderDetailInput) (*entity.OrderDetail, error) {
	var result *entity.OrderDetail
	err := s.tx.Transaction(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}

		detail, err := s.orderDetailRepo.GetByID(ctx, detailID)
		if err != nil {
			return err
		}
		if detail == nil || detail.OrderID != orderID {
			return apperror.NewNotFoundError("Order detail")
		}

		product, err := s.productRepo.GetByID(ctx, detail.ProductID)
		if err != nil {
			return err
		}

		oldQuantity := detail.Quantity
		oldLineTotal := detail.LineTotal

		updated := *detail
		updated.Quantity = input.Quantity
		if input.UnitPrice != 0 {
			updated.UnitPrice = input.UnitPrice
		}
		updated.LineTotal = float64(updated.Quantity) * updated.UnitPrice
		updated.Profit = updated.LineTotal - float64(updated.Quantity)*updated.CostPrice

		if err := s.detailValidator.ValidateUpdate(ctx, order, product, &updated); err != nil {
			return err
		}
		if err := s.detailValidator.ValidateTotalsDelta(order, updated.LineTotal-oldLineTotal); err != nil {
			return err
		}

		if diff := updated.Quantity - oldQuantity; diff > 0 {
			ok, err := s.productRepo.DecrementStock(ctx, updated.ProductID, diff)
			if err != nil {
				return err
			}
			if !ok {
				return apperror.NewConflictError(fmt.Sprintf(
					"Insufficient stock for product '%s': %d in stock, %d requested.",
					product.Name, product.InStock, diff))
			}
		} else if diff < 0 {
			if err := s.productRepo.IncrementStock(ctx, updated.ProductID, -diff); err != nil {
				return err
			}
		}

		if err := s.orderDetailRepo.Update(ctx, &updated); err != nil {
			return err
		}
		if err := s.orderRepo.ApplyTotalsDelta(ctx, orderID, updated.LineTotal-oldLineTotal); err != nil {
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

// DeleteOrderDetail removes a line from a pending order, restoring its stock
// and shifting the order totals down by the line total.
func (s *OrderService) DeleteOrderDetail(ctx context.Context, orderID, detailID int64) error {
	return s.tx.Transaction(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}

		detail, err := s.orderDetailRepo.GetByID(ctx, detailID)
		if err != nil {
			return err
		}
		if detail == nil || detail.OrderID != orderID {
			return apperror.NewNotFoundError("Order detail")
		}

		if err := s.detailValidator.ValidateDelete(ctx, order); err != nil {
			return err
		}
		if err := s.detailValidator.ValidateTotalsDelta(order, -detail.LineTotal); err != nil {
			return err
		}

		if err := s.productRepo.IncrementStock(ctx, detail.ProductID, detail.Quantity); err != nil {
			return err
		}
		if err := s.orderDetailRepo.Delete(ctx, detail.ID); err != nil {
			return err
		}
		return s.orderRepo.ApplyTotalsDelta(ctx, orderID, -detail.LineTotal)
	})
}
