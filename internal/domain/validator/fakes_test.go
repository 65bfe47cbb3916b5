package validator

import (
	"context"

	"github.com/collinsdev/marketplace-api/internal/domain/entity"
)

// In-memory lookup fakes shared by the validator tests.

type fakeOrderLookup struct {
	byNumber map[string]*entity.Order
}

func (f *fakeOrderLookup) GetByOrderNumber(_ context.Context, orderNumber string) (*entity.Order, error) {
	return f.byNumber[orderNumber], nil
}

type fakeLocationLookup struct {
	byID map[int64]*entity.Location
}

func (f *fakeLocationLookup) GetByID(_ context.Context, id int64) (*entity.Location, error) {
	return f.byID[id], nil
}

type fakeVendorLookup struct {
	byID map[int64]*entity.Vendor
}

func (f *fakeVendorLookup) GetByID(_ context.Context, id int64) (*entity.Vendor, error) {
	return f.byID[id], nil
}

type fakeUserLookup struct {
	byID map[int64]*entity.User
}

func (f *fakeUserLookup) GetByID(_ context.Context, id int64) (*entity.User, error) {
	return f.byID[id], nil
}

type fakeDiscountLookup struct {
	byID   map[int64]*entity.Discount
	byCode map[string]*entity.Discount
}

func (f *fakeDiscountLookup) GetByID(_ context.Context, id int64) (*entity.Discount, error) {
	return f.byID[id], nil
}

func (f *fakeDiscountLookup) GetByCode(_ context.Context, code string) (*entity.Discount, error) {
	return f.byCode[code], nil
}

type fakePaymentLookup struct {
	countByOrder map[int64]int64
	sumByOrder   map[int64]float64
	excludedSum  map[int64]float64 // sum to report when an exclude id is passed
}

func (f *fakePaymentLookup) CountByOrderID(_ context.Context, orderID int64) (int64, error) {
	return f.countByOrder[orderID], nil
}

func (f *fakePaymentLookup) SumCompletedByOrder(_ context.Context, orderID, excludeID int64) (float64, error) {
	if excludeID != 0 {
		return f.excludedSum[orderID], nil
	}
	return f.sumByOrder[orderID], nil
}

type fakeOrderDetailLookup struct {
	lines map[[2]int64]*entity.OrderDetail
}

func (f *fakeOrderDetailLookup) GetByOrderAndProduct(_ context.Context, orderID, productID int64) (*entity.OrderDetail, error) {
	return f.lines[[2]int64{orderID, productID}], nil
}

type fakeProcurementLookup struct {
	byReferenceNo map[string]*entity.Procurement
}

func (f *fakeProcurementLookup) GetByReferenceNo(_ context.Context, referenceNo string) (*entity.Procurement, error) {
	return f.byReferenceNo[referenceNo], nil
}

type fakeProcurementDetailLookup struct {
	lines       map[[2]int64]*entity.ProcurementDetail
	countByProc map[int64]int64
}

func (f *fakeProcurementDetailLookup) GetByProcurementAndProduct(_ context.Context, procurementID, productID int64) (*entity.ProcurementDetail, error) {
	return f.lines[[2]int64{procurementID, productID}], nil
}

func (f *fakeProcurementDetailLookup) CountByProcurementID(_ context.Context, procurementID int64) (int64, error) {
	return f.countByProc[procurementID], nil
}
