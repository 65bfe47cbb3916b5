package service

import (
	"context"
	"testing"

	"github.com/collinsdev/marketplace-api/internal/domain/entity"
	"github.com/collinsdev/marketplace-api/internal/domain/enum"
	"github.com/collinsdev/marketplace-api/internal/domain/validator"
	"github.com/collinsdev/marketplace-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orderServiceFixture struct {
	service     *OrderService
	orderRepo   *fakeOrderRepo
	detailRepo  *fakeOrderDetailRepo
	productRepo *fakeProductRepo
	paymentRepo *fakePaymentRepo
}

func newOrderServiceFixture() *orderServiceFixture {
	detailRepo := newFakeOrderDetailRepo()
	orderRepo := newFakeOrderRepo(detailRepo)
	productRepo := newFakeProductRepo(
		&entity.Product{ID: 1, Name: "Widget", UnitPrice: 25, CostPrice: 15, InStock: 10, IsAvailable: true},
		&entity.Product{ID: 2, Name: "Gadget", UnitPrice: 40, CostPrice: 30, InStock: 5, IsAvailable: true},
	)
	paymentRepo := newFakePaymentRepo()

	locations := stubLocationLookup{locations: map[int64]*entity.Location{
		1: {ID: 1, Name: "Main Store", IsActive: true},
	}}
	users := stubUserLookup{users: map[int64]*entity.User{
		1: {ID: 1, Email: "staff@example.com", IsActive: true},
	}}
	discounts := stubDiscountLookup{discounts: map[int64]*entity.Discount{}}

	orderValidator := validator.NewOrderValidator(orderRepo, locations, users, discounts, paymentRepo)
	detailValidator := validator.NewOrderDetailValidator(detailRepo)

	svc := NewOrderService(orderRepo, detailRepo, productRepo, paymentRepo,
		orderValidator, detailValidator, passthroughTx{})

	return &orderServiceFixture{
		service:     svc,
		orderRepo:   orderRepo,
		detailRepo:  detailRepo,
		productRepo: productRepo,
		paymentRepo: paymentRepo,
	}
}

func (f *orderServiceFixture) seedOrder(t *testing.T) *entity.Order {
	t.Helper()
	order, err := f.service.CreateOrder(context.Background(), &CreateOrderInput{
		LocationID: 1,
		UserID:     1,
		Items: []OrderItemInput{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		},
	})
	require.NoError(t, err)
	return order
}

func TestCreateOrderDerivesTotals(t *testing.T) {
	f := newOrderServiceFixture()

	order, err := f.service.CreateOrder(context.Background(), &CreateOrderInput{
		LocationID:     1,
		UserID:         1,
		DiscountAmount: 10,
		Items: []OrderItemInput{
			{ProductID: 1, Quantity: 2},  // 2 x 25 = 50, profit 20
			{ProductID: 2, Quantity: 1},  // 1 x 40 = 40, profit 10
		},
	})
	require.NoError(t, err)

	assert.InDelta(t, 90, order.SubTotal, 0.001)
	assert.InDelta(t, 80, order.Total, 0.001)
	assert.InDelta(t, 30, order.TotalCommission, 0.001)
	assert.Equal(t, enum.OrderStatusPending, order.Status)
	assert.NotEmpty(t, order.OrderNumber)

	// Stock moved inside the same transaction.
	assert.Equal(t, 8, f.productRepo.products[1].InStock)
	assert.Equal(t, 4, f.productRepo.products[2].InStock)

	details, err := f.detailRepo.GetByOrderID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Len(t, details, 2)
	for _, d := range details {
		assert.Equal(t, order.ID, d.OrderID)
	}
}

func TestCreateOrderUsesSuppliedUnitPrice(t *testing.T) {
	f := newOrderServiceFixture()

	order, err := f.service.CreateOrder(context.Background(), &CreateOrderInput{
		LocationID: 1,
		UserID:     1,
		Items: []OrderItemInput{
			{ProductID: 1, Quantity: 2, UnitPrice: 20},
		},
	})
	require.NoError(t, err)
	assert.InDelta(t, 40, order.SubTotal, 0.001)
	assert.InDelta(t, 10, order.TotalCommission, 0.001) // 40 - 2*15
}

func TestCreateOrderRequiresItems(t *testing.T) {
	f := newOrderServiceFixture()

	_, err := f.service.CreateOrder(context.Background(), &CreateOrderInput{
		LocationID: 1,
		UserID:     1,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	f := newOrderServiceFixture()

	_, err := f.service.CreateOrder(context.Background(), &CreateOrderInput{
		LocationID: 1,
		UserID:     1,
		Items:      []OrderItemInput{{ProductID: 404, Quantity: 1}},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	f := newOrderServiceFixture()

	_, err := f.service.CreateOrder(context.Background(), &CreateOrderInput{
		LocationID: 1,
		UserID:     1,
		Items:      []OrderItemInput{{ProductID: 2, Quantity: 6}},
	})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestCancelOrderRestoresStock(t *testing.T) {
	f := newOrderServiceFixture()
	order := f.seedOrder(t)
	require.Equal(t, 8, f.productRepo.products[1].InStock)

	cancelled, err := f.service.CancelOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.OrderStatusCancelled, cancelled.Status)

	assert.Equal(t, 10, f.productRepo.products[1].InStock)
	assert.Equal(t, 5, f.productRepo.products[2].InStock)
}

func TestUpdateOrderRejectsTerminalTransition(t *testing.T) {
	f := newOrderServiceFixture()
	order := f.seedOrder(t)

	_, err := f.service.CancelOrder(context.Background(), order.ID)
	require.NoError(t, err)

	status := enum.OrderStatusCompleted
	_, err = f.service.UpdateOrder(context.Background(), order.ID, &UpdateOrderInput{Status: &status})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestUpdateOrderRecomputesTotalOnDiscountChange(t *testing.T) {
	f := newOrderServiceFixture()
	order := f.seedOrder(t) // subtotal 90

	discount := 15.0
	updated, err := f.service.UpdateOrder(context.Background(), order.ID, &UpdateOrderInput{DiscountAmount: &discount})
	require.NoError(t, err)
	assert.InDelta(t, 75, updated.Total, 0.001)
}

func TestDeleteOrderReleasesStockAndLines(t *testing.T) {
	f := newOrderServiceFixture()
	order := f.seedOrder(t)

	require.NoError(t, f.service.DeleteOrder(context.Background(), order.ID))

	assert.Equal(t, 10, f.productRepo.products[1].InStock)
	assert.Empty(t, f.detailRepo.details)
	assert.NotContains(t, f.orderRepo.orders, order.ID)
}

func TestDeleteOrderBlockedByPayments(t *testing.T) {
	f := newOrderServiceFixture()
	order := f.seedOrder(t)

	require.NoError(t, f.paymentRepo.Create(context.Background(), &entity.Payment{
		OrderID: order.ID, Amount: 20, Status: enum.PaymentStatusPending,
	}))

	err := f.service.DeleteOrder(context.Background(), order.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestAddOrderDetailShiftsTotals(t *testing.T) {
	f := newOrderServiceFixture()
	order, err := f.service.CreateOrder(context.Background(), &CreateOrderInput{
		LocationID: 1,
		UserID:     1,
		Items:      []OrderItemInput{{ProductID: 1, Quantity: 2}},
	})
	require.NoError(t, err) // subtotal 50

	detail, err := f.service.AddOrderDetail(context.Background(), order.ID, &OrderDetailInput{
		ProductID: 2,
		Quantity:  1,
	})
	require.NoError(t, err)
	assert.InDelta(t, 40, detail.LineTotal, 0.001)

	assert.InDelta(t, 40, f.orderRepo.totalsDelta[order.ID], 0.001)
	assert.Equal(t, 4, f.productRepo.products[2].InStock)
}

func TestAddOrderDetailRejectsDuplicateProduct(t *testing.T) {
	f := newOrderServiceFixture()
	order := f.seedOrder(t)

	_, err := f.service.AddOrderDetail(context.Background(), order.ID, &OrderDetailInput{
		ProductID: 1,
		Quantity:  1,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestUpdateOrderDetailQuantityIncrease(t *testing.T) {
	f := newOrderServiceFixture()
	order := f.seedOrder(t)

	details, err := f.detailRepo.GetByOrderID(context.Background(), order.ID)
	require.NoError(t, err)
	var line *entity.OrderDetail
	for i := range details {
		if details[i].ProductID == 1 {
			line = &details[i]
		}
	}
	require.NotNil(t, line) // 2 x 25 = 50

	updated, err := f.service.UpdateOrderDetail(context.Background(), order.ID, line.ID, &OrderDetailInput{
		ProductID: 1,
		Quantity:  3,
	})
	require.NoError(t, err)
	assert.InDelta(t, 75, updated.LineTotal, 0.001)

	// One more unit left the shelf and the order totals moved by exactly the
	// line-total difference.
	assert.Equal(t, 7, f.productRepo.products[1].InStock)
	assert.InDelta(t, 25, f.orderRepo.totalsDelta[order.ID], 0.001)
}

func TestUpdateOrderDetailQuantityDecrease(t *testing.T) {
	f := newOrderServiceFixture()
	order := f.seedOrder(t)

	details, err := f.detailRepo.GetByOrderID(context.Background(), order.ID)
	require.NoError(t, err)
	var line *entity.OrderDetail
	for i := range details {
		if details[i].ProductID == 1 {
			line = &details[i]
		}
	}
	require.NotNil(t, line)

	_, err = f.service.UpdateOrderDetail(context.Background(), order.ID, line.ID, &OrderDetailInput{
		ProductID: 1,
		Quantity:  1,
	})
	require.NoError(t, err)

	assert.Equal(t, 9, f.productRepo.products[1].InStock)
	assert.InDelta(t, -25, f.orderRepo.totalsDelta[order.ID], 0.001)
}

func TestUpdateOrderDetailWrongOrder(t *testing.T) {
	f := newOrderServiceFixture()
	order := f.seedOrder(t)

	other, err := f.service.CreateOrder(context.Background(), &CreateOrderInput{
		OrderNumber: "ORD-OTHER123",
		LocationID:  1,
		UserID:      1,
		Items:       []OrderItemInput{{ProductID: 2, Quantity: 1}},
	})
	require.NoError(t, err)

	details, err := f.detailRepo.GetByOrderID(context.Background(), other.ID)
	require.NoError(t, err)
	require.Len(t, details, 1)

	// A detail id addressed through the wrong parent order is not found.
	_, err = f.service.UpdateOrderDetail(context.Background(), order.ID, details[0].ID, &OrderDetailInput{
		ProductID: 2,
		Quantity:  2,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDeleteOrderDetailRestoresStock(t *testing.T) {
	f := newOrderServiceFixture()
	order := f.seedOrder(t)

	details, err := f.detailRepo.GetByOrderID(context.Background(), order.ID)
	require.NoError(t, err)
	var line *entity.OrderDetail
	for i := range details {
		if details[i].ProductID == 2 {
			line = &details[i]
		}
	}
	require.NotNil(t, line) // 1 x 40

	require.NoError(t, f.service.DeleteOrderDetail(context.Background(), order.ID, line.ID))

	assert.Equal(t, 5, f.productRepo.products[2].InStock)
	assert.InDelta(t, -40, f.orderRepo.totalsDelta[order.ID], 0.001)
}

func TestDeleteOrderDetailKeepsDiscountCovered(t *testing.T) {
	f := newOrderServiceFixture()
	order, err := f.service.CreateOrder(context.Background(), &CreateOrderInput{
		LocationID:     1,
		UserID:         1,
		DiscountAmount: 60,
		Items: []OrderItemInput{
			{ProductID: 1, Quantity: 2}, // 50
			{ProductID: 2, Quantity: 1}, // 40
		},
	})
	require.NoError(t, err) // subtotal 90, total 30

	details, err := f.detailRepo.GetByOrderID(context.Background(), order.ID)
	require.NoError(t, err)
	var line *entity.OrderDetail
	for i := range details {
		if details[i].ProductID == 2 {
			line = &details[i]
		}
	}
	require.NotNil(t, line)

	// Removing the 40 line would drop the subtotal to 50, below the 60
	// discount, driving the total negative.
	err = f.service.DeleteOrderDetail(context.Background(), order.ID, line.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))

	// Nothing moved: line, totals and stock are untouched.
	assert.Contains(t, f.detailRepo.details, line.ID)
	assert.InDelta(t, 0, f.orderRepo.totalsDelta[order.ID], 0.001)
	assert.InDelta(t, 90, f.orderRepo.orders[order.ID].SubTotal, 0.001)
	assert.Equal(t, 4, f.productRepo.products[2].InStock)
}

func TestUpdateOrderDetailKeepsDiscountCovered(t *testing.T) {
	f := newOrderServiceFixture()
	order, err := f.service.CreateOrder(context.Background(), &CreateOrderInput{
		LocationID:     1,
		UserID:         1,
		DiscountAmount: 70,
		Items: []OrderItemInput{
			{ProductID: 1, Quantity: 2}, // 50
			{ProductID: 2, Quantity: 1}, // 40
		},
	})
	require.NoError(t, err) // subtotal 90, total 20

	details, err := f.detailRepo.GetByOrderID(context.Background(), order.ID)
	require.NoError(t, err)
	var line *entity.OrderDetail
	for i := range details {
		if details[i].ProductID == 1 {
			line = &details[i]
		}
	}
	require.NotNil(t, line)

	// Shrinking 2x25 to 1x25 would leave subtotal 65 under the 70 discount.
	_, err = f.service.UpdateOrderDetail(context.Background(), order.ID, line.ID, &OrderDetailInput{
		ProductID: 1,
		Quantity:  1,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))

	assert.Equal(t, 2, f.detailRepo.details[line.ID].Quantity)
	assert.InDelta(t, 0, f.orderRepo.totalsDelta[order.ID], 0.001)
	assert.Equal(t, 8, f.productRepo.products[1].InStock)
}

func TestGetOrderNotFound(t *testing.T) {
	f := newOrderServiceFixture()

	_, err := f.service.GetOrder(context.Background(), 404)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
