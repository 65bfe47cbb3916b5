package service

import (
	"context"

	"github.com/collinsdev/marketplace-api/internal/domain/entity"
	"github.com/collinsdev/marketplace-api/internal/domain/enum"
	"github.com/collinsdev/marketplace-api/internal/domain/repository"
)

// In-memory repository fakes shared by the service tests. The transaction
// manager is a passthrough; rollback behavior belongs to the gorm layer.

type passthroughTx struct{}

func (passthroughTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeOrderRepo struct {
	orders      map[int64]*entity.Order
	nextID      int64
	totalsDelta map[int64]float64
	updated     []*entity.Order
	detailRepo  *fakeOrderDetailRepo
}

func newFakeOrderRepo(detailRepo *fakeOrderDetailRepo) *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:      map[int64]*entity.Order{},
		nextID:      1,
		totalsDelta: map[int64]float64{},
		detailRepo:  detailRepo,
	}
}

func (f *fakeOrderRepo) Create(_ context.Context, order *entity.Order) error {
	order.ID = f.nextID
	f.nextID++
	f.orders[order.ID] = order
	return nil
}

func (f *fakeOrderRepo) GetByID(_ context.Context, id int64) (*entity.Order, error) {
	return f.orders[id], nil
}

func (f *fakeOrderRepo) GetByOrderNumber(_ context.Context, orderNumber string) (*entity.Order, error) {
	for _, o := range f.orders {
		if o.OrderNumber == orderNumber {
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderRepo) GetWithDetails(ctx context.Context, id int64) (*entity.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	if f.detailRepo != nil {
		details, _ := f.detailRepo.GetByOrderID(ctx, id)
		order.Details = details
	}
	return order, nil
}

func (f *fakeOrderRepo) Update(_ context.Context, order *entity.Order) error {
	f.orders[order.ID] = order
	f.updated = append(f.updated, order)
	return nil
}

func (f *fakeOrderRepo) Delete(_ context.Context, id int64) error {
	delete(f.orders, id)
	return nil
}

func (f *fakeOrderRepo) ApplyTotalsDelta(_ context.Context, id int64, delta float64) error {
	f.totalsDelta[id] += delta
	if o, ok := f.orders[id]; ok {
		o.SubTotal += delta
		o.Total += delta
	}
	return nil
}

func (f *fakeOrderRepo) List(_ context.Context, _ *repository.OrderFilterParams) ([]entity.Order, int64, error) {
	out := make([]entity.Order, 0, len(f.orders))
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (f *fakeOrderRepo) ListWithCursor(_ context.Context, _ *repository.OrderCursorFilterParams) ([]entity.Order, error) {
	out := make([]entity.Order, 0, len(f.orders))
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, nil
}

type fakeOrderDetailRepo struct {
	details map[int64]*entity.OrderDetail
	nextID  int64
}

func newFakeOrderDetailRepo() *fakeOrderDetailRepo {
	return &fakeOrderDetailRepo{details: map[int64]*entity.OrderDetail{}, nextID: 1}
}

func (f *fakeOrderDetailRepo) Create(_ context.Context, detail *entity.OrderDetail) error {
	detail.ID = f.nextID
	f.nextID++
	f.details[detail.ID] = detail
	return nil
}

func (f *fakeOrderDetailRepo) GetByID(_ context.Context, id int64) (*entity.OrderDetail, error) {
	return f.details[id], nil
}

func (f *fakeOrderDetailRepo) GetByOrderID(_ context.Context, orderID int64) ([]entity.OrderDetail, error) {
	var out []entity.OrderDetail
	for _, d := range f.details {
		if d.OrderID == orderID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (f *fakeOrderDetailRepo) GetByOrderAndProduct(_ context.Context, orderID, productID int64) (*entity.OrderDetail, error) {
	for _, d := range f.details {
		if d.OrderID == orderID && d.ProductID == productID {
			return d, nil
		}
	}
	return nil, nil
}

func (f *fakeOrderDetailRepo) Update(_ context.Context, detail *entity.OrderDetail) error {
	f.details[detail.ID] = detail
	return nil
}

func (f *fakeOrderDetailRepo) Delete(_ context.Context, id int64) error {
	delete(f.details, id)
	return nil
}

type fakeProductRepo struct {
	products map[int64]*entity.Product
	nextID   int64
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	f := &fakeProductRepo{products: map[int64]*entity.Product{}, nextID: 1}
	for _, p := range products {
		f.products[p.ID] = p
		if p.ID >= f.nextID {
			f.nextID = p.ID + 1
		}
	}
	return f
}

func (f *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	if product.ID == 0 {
		product.ID = f.nextID
		f.nextID++
	}
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	return f.products[id], nil
}

func (f *fakeProductRepo) GetByIDs(_ context.Context, ids []int64) ([]entity.Product, error) {
	out := make([]entity.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	f.products[product.ID] = product
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id int64) error {
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) DecrementStock(_ context.Context, id int64, quantity int) (bool, error) {
	p, ok := f.products[id]
	if !ok || p.InStock < quantity {
		return false, nil
	}
	p.InStock -= quantity
	return true, nil
}

func (f *fakeProductRepo) IncrementStock(_ context.Context, id int64, quantity int) error {
	if p, ok := f.products[id]; ok {
		p.InStock += quantity
	}
	return nil
}

func (f *fakeProductRepo) GetLowStock(_ context.Context) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range f.products {
		if p.InStock <= p.StockAlert && p.IsAvailable {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) List(_ context.Context, _ *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	out := make([]entity.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

type fakePaymentRepo struct {
	payments map[int64]*entity.Payment
	nextID   int64
}

func newFakePaymentRepo(payments ...*entity.Payment) *fakePaymentRepo {
	f := &fakePaymentRepo{payments: map[int64]*entity.Payment{}, nextID: 1}
	for _, p := range payments {
		f.payments[p.ID] = p
		if p.ID >= f.nextID {
			f.nextID = p.ID + 1
		}
	}
	return f
}

func (f *fakePaymentRepo) Create(_ context.Context, payment *entity.Payment) error {
	payment.ID = f.nextID
	f.nextID++
	f.payments[payment.ID] = payment
	return nil
}

func (f *fakePaymentRepo) GetByID(_ context.Context, id int64) (*entity.Payment, error) {
	return f.payments[id], nil
}

func (f *fakePaymentRepo) GetByOrderID(_ context.Context, orderID int64) ([]entity.Payment, error) {
	var out []entity.Payment
	for _, p := range f.payments {
		if p.OrderID == orderID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) SumCompletedByOrder(_ context.Context, orderID, excludeID int64) (float64, error) {
	var sum float64
	for _, p := range f.payments {
		if p.OrderID == orderID && p.Status == enum.PaymentStatusCompleted && p.ID != excludeID {
			sum += p.Amount
		}
	}
	return sum, nil
}

func (f *fakePaymentRepo) CountByOrderID(_ context.Context, orderID int64) (int64, error) {
	var count int64
	for _, p := range f.payments {
		if p.OrderID == orderID {
			count++
		}
	}
	return count, nil
}

func (f *fakePaymentRepo) Update(_ context.Context, payment *entity.Payment) error {
	f.payments[payment.ID] = payment
	return nil
}

func (f *fakePaymentRepo) Delete(_ context.Context, id int64) error {
	delete(f.payments, id)
	return nil
}

func (f *fakePaymentRepo) List(_ context.Context, _ *repository.PaymentFilterParams) ([]entity.Payment, int64, error) {
	out := make([]entity.Payment, 0, len(f.payments))
	for _, p := range f.payments {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

// Narrow lookup fakes for wiring validators in service tests.

type stubLocationLookup struct{ locations map[int64]*entity.Location }

func (s stubLocationLookup) GetByID(_ context.Context, id int64) (*entity.Location, error) {
	return s.locations[id], nil
}

type stubUserLookup struct{ users map[int64]*entity.User }

func (s stubUserLookup) GetByID(_ context.Context, id int64) (*entity.User, error) {
	return s.users[id], nil
}

type stubDiscountLookup struct{ discounts map[int64]*entity.Discount }

func (s stubDiscountLookup) GetByID(_ context.Context, id int64) (*entity.Discount, error) {
	return s.discounts[id], nil
}
