package validator

import (
	"context"
	"testing"
	"time"

	"github.com/collinsdev/marketplace-api/internal/domain/entity"
	"github.com/collinsdev/marketplace-api/internal/domain/enum"
	"github.com/collinsdev/marketplace-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func newOrderValidatorFixture() (*OrderValidator, *fakeOrderLookup, *fakeLocationLookup, *fakeUserLookup, *fakeDiscountLookup, *fakePaymentLookup) {
	orders := &fakeOrderLookup{byNumber: map[string]*entity.Order{}}
	locations := &fakeLocationLookup{byID: map[int64]*entity.Location{
		1: {ID: 1, Name: "Main Store", IsActive: true},
		2: {ID: 2, Name: "Closed Branch", IsActive: false},
	}}
	users := &fakeUserLookup{byID: map[int64]*entity.User{
		1: {ID: 1, Email: "staff@example.com", IsActive: true},
		2: {ID: 2, Email: "former@example.com", IsActive: false},
	}}
	discounts := &fakeDiscountLookup{byID: map[int64]*entity.Discount{}}
	payments := &fakePaymentLookup{countByOrder: map[int64]int64{}}

	v := NewOrderValidator(orders, locations, users, discounts, payments)
	v.now = func() time.Time { return testNow }
	return v, orders, locations, users, discounts, payments
}

func validOrder() *entity.Order {
	return &entity.Order{
		ID:             1,
		OrderNumber:    "ORD-AB12CD34",
		OrderDate:      testNow,
		SubTotal:       100,
		DiscountAmount: 10,
		Total:          90,
		Status:         enum.OrderStatusPending,
		LocationID:     1,
		UserID:         1,
	}
}

func TestOrderValidatorCreateValid(t *testing.T) {
	v, _, _, _, _, _ := newOrderValidatorFixture()
	assert.NoError(t, v.ValidateCreate(context.Background(), validOrder()))
}

func TestOrderValidatorCreateDuplicateNumber(t *testing.T) {
	v, orders, _, _, _, _ := newOrderValidatorFixture()
	orders.byNumber["ORD-AB12CD34"] = &entity.Order{ID: 99, OrderNumber: "ORD-AB12CD34"}

	err := v.ValidateCreate(context.Background(), validOrder())
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestOrderValidatorCreateMissingNumber(t *testing.T) {
	v, _, _, _, _, _ := newOrderValidatorFixture()
	order := validOrder()
	order.OrderNumber = ""

	err := v.ValidateCreate(context.Background(), order)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestOrderValidatorCreateLocationChecks(t *testing.T) {
	v, _, _, _, _, _ := newOrderValidatorFixture()

	order := validOrder()
	order.LocationID = 42
	err := v.ValidateCreate(context.Background(), order)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	order = validOrder()
	order.LocationID = 2
	err = v.ValidateCreate(context.Background(), order)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestOrderValidatorCreateUserChecks(t *testing.T) {
	v, _, _, _, _, _ := newOrderValidatorFixture()

	order := validOrder()
	order.UserID = 42
	err := v.ValidateCreate(context.Background(), order)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	order = validOrder()
	order.UserID = 2
	err = v.ValidateCreate(context.Background(), order)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestOrderValidatorCreateDiscountWindow(t *testing.T) {
	v, _, _, _, discounts, _ := newOrderValidatorFixture()

	expired := testNow.AddDate(0, -1, 0)
	locationID := int64(1)
	discounts.byID[5] = &entity.Discount{ID: 5, DiscountCode: "SPRING", Percentage: 10, IsActive: true, EndDate: &expired, LocationID: &locationID}
	discounts.byID[6] = &entity.Discount{ID: 6, DiscountCode: "SUMMER", Percentage: 10, IsActive: true, LocationID: &locationID}

	order := validOrder()
	expiredID := int64(5)
	order.DiscountID = &expiredID
	err := v.ValidateCreate(context.Background(), order)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	order = validOrder()
	openID := int64(6)
	order.DiscountID = &openID
	assert.NoError(t, v.ValidateCreate(context.Background(), order))

	order = validOrder()
	missing := int64(404)
	order.DiscountID = &missing
	err = v.ValidateCreate(context.Background(), order)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestOrderValidatorCreateFutureDate(t *testing.T) {
	v, _, _, _, _, _ := newOrderValidatorFixture()
	order := validOrder()
	order.OrderDate = testNow.Add(48 * time.Hour)

	err := v.ValidateCreate(context.Background(), order)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestOrderValidatorAmounts(t *testing.T) {
	v, _, _, _, _, _ := newOrderValidatorFixture()

	tests := []struct {
		name     string
		mutate   func(*entity.Order)
		wantPass bool
	}{
		{"discount exceeds subtotal", func(o *entity.Order) {
			o.DiscountAmount = 150
			o.Total = -50
		}, false},
		{"total not subtotal minus discount", func(o *entity.Order) {
			o.Total = 95
		}, false},
		{"negative subtotal", func(o *entity.Order) {
			o.SubTotal = -10
		}, false},
		{"negative discount", func(o *entity.Order) {
			o.DiscountAmount = -5
		}, false},
		{"rounding slack inside tolerance", func(o *entity.Order) {
			o.Total = 90.005
		}, true},
		{"rounding slack at tolerance boundary", func(o *entity.Order) {
			o.Total = 90.01
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := validOrder()
			tt.mutate(order)
			err := v.ValidateCreate(context.Background(), order)
			if tt.wantPass {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, apperror.IsValidation(err))
			}
		})
	}
}

func TestOrderValidatorUpdateTransition(t *testing.T) {
	v, _, _, _, _, _ := newOrderValidatorFixture()

	current := validOrder()
	updated := validOrder()
	updated.Status = enum.OrderStatusCompleted
	assert.NoError(t, v.ValidateUpdate(context.Background(), current, updated))

	current = validOrder()
	current.Status = enum.OrderStatusCompleted
	updated = validOrder()
	updated.Status = enum.OrderStatusPending
	err := v.ValidateUpdate(context.Background(), current, updated)
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestOrderValidatorUpdateSameStatusIsNoOp(t *testing.T) {
	v, _, _, _, _, _ := newOrderValidatorFixture()

	current := validOrder()
	current.Status = enum.OrderStatusCompleted
	updated := validOrder()
	updated.Status = enum.OrderStatusCompleted
	assert.NoError(t, v.ValidateUpdate(context.Background(), current, updated))
}

func TestOrderValidatorUpdateNumberUniqueExcludesSelf(t *testing.T) {
	v, orders, _, _, _, _ := newOrderValidatorFixture()

	// The order's own row under its own number does not count as a clash.
	orders.byNumber["ORD-AB12CD34"] = &entity.Order{ID: 1, OrderNumber: "ORD-AB12CD34"}
	assert.NoError(t, v.ValidateUpdate(context.Background(), validOrder(), validOrder()))

	orders.byNumber["ORD-TAKEN"] = &entity.Order{ID: 7, OrderNumber: "ORD-TAKEN"}
	updated := validOrder()
	updated.OrderNumber = "ORD-TAKEN"
	err := v.ValidateUpdate(context.Background(), validOrder(), updated)
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestOrderValidatorDelete(t *testing.T) {
	v, _, _, _, _, payments := newOrderValidatorFixture()

	order := validOrder()
	assert.NoError(t, v.ValidateDelete(context.Background(), order))

	order.Status = enum.OrderStatusCancelled
	assert.NoError(t, v.ValidateDelete(context.Background(), order))

	order.Status = enum.OrderStatusCompleted
	err := v.ValidateDelete(context.Background(), order)
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))

	order = validOrder()
	payments.countByOrder[order.ID] = 2
	err = v.ValidateDelete(context.Background(), order)
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}
