package validator

import (
	"context"
	"testing"
	"time"

	"github.com/collinsdev/marketplace-api/internal/domain/entity"
	"github.com/collinsdev/marketplace-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProcurementValidatorFixture() (*ProcurementValidator, *fakeProcurementLookup, *fakeProcurementDetailLookup) {
	procurements := &fakeProcurementLookup{byReferenceNo: map[string]*entity.Procurement{}}
	vendors := &fakeVendorLookup{byID: map[int64]*entity.Vendor{
		1: {ID: 1, Name: "Acme Supplies"},
	}}
	locations := &fakeLocationLookup{byID: map[int64]*entity.Location{
		1: {ID: 1, Name: "Warehouse", IsActive: true},
		2: {ID: 2, Name: "Closed", IsActive: false},
	}}
	details := &fakeProcurementDetailLookup{
		lines:       map[[2]int64]*entity.ProcurementDetail{},
		countByProc: map[int64]int64{},
	}

	v := NewProcurementValidator(procurements, vendors, locations, details)
	v.now = func() time.Time { return testNow }
	return v, procurements, details
}

func validProcurement() *entity.Procurement {
	return &entity.Procurement{
		ID:              1,
		ReferenceNo:     "PR-123456",
		VendorID:        1,
		LocationID:      1,
		ProcurementDate: testNow,
		TotalAmount:     500,
	}
}

func TestProcurementValidatorCreateValid(t *testing.T) {
	v, _, _ := newProcurementValidatorFixture()
	assert.NoError(t, v.ValidateCreate(context.Background(), validProcurement()))
}

func TestProcurementValidatorReferenceNoFormat(t *testing.T) {
	v, _, _ := newProcurementValidatorFixture()

	valid := []string{"PR-1234", "ABC-123456", "XY-99999"}
	for _, ref := range valid {
		p := validProcurement()
		p.ReferenceNo = ref
		assert.NoError(t, v.ValidateCreate(context.Background(), p), "reference %q", ref)
	}

	invalid := []string{"", "pr-1234", "P-1234", "ABCD-1234", "PR1234", "PR-123", "PR-1234567", "PR-12A4"}
	for _, ref := range invalid {
		p := validProcurement()
		p.ReferenceNo = ref
		err := v.ValidateCreate(context.Background(), p)
		require.Error(t, err, "reference %q", ref)
		assert.True(t, apperror.IsValidation(err), "reference %q", ref)
	}
}

func TestProcurementValidatorReferenceNoUnique(t *testing.T) {
	v, procurements, _ := newProcurementValidatorFixture()
	procurements.byReferenceNo["PR-123456"] = &entity.Procurement{ID: 9, ReferenceNo: "PR-123456"}

	err := v.ValidateCreate(context.Background(), validProcurement())
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))

	// An update keeping the procurement's own reference is fine.
	procurements.byReferenceNo["PR-123456"].ID = 1
	assert.NoError(t, v.ValidateUpdate(context.Background(), validProcurement(), validProcurement()))
}

func TestProcurementValidatorCreateVendorAndLocation(t *testing.T) {
	v, _, _ := newProcurementValidatorFixture()

	p := validProcurement()
	p.VendorID = 42
	err := v.ValidateCreate(context.Background(), p)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	p = validProcurement()
	p.LocationID = 42
	err = v.ValidateCreate(context.Background(), p)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	p = validProcurement()
	p.LocationID = 2
	err = v.ValidateCreate(context.Background(), p)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestProcurementValidatorDateWindow(t *testing.T) {
	v, _, _ := newProcurementValidatorFixture()

	p := validProcurement()
	p.ProcurementDate = testNow.Add(48 * time.Hour)
	err := v.ValidateCreate(context.Background(), p)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	p = validProcurement()
	p.ProcurementDate = testNow.AddDate(-6, 0, 0)
	err = v.ValidateCreate(context.Background(), p)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestProcurementValidatorAmountBounds(t *testing.T) {
	v, _, _ := newProcurementValidatorFixture()

	p := validProcurement()
	p.TotalAmount = -1
	err := v.ValidateCreate(context.Background(), p)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	p = validProcurement()
	p.TotalAmount = 10_000_001
	err = v.ValidateCreate(context.Background(), p)
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestProcurementValidatorDeleteBlockedByLines(t *testing.T) {
	v, _, details := newProcurementValidatorFixture()

	p := validProcurement()
	assert.NoError(t, v.ValidateDelete(context.Background(), p))

	details.countByProc[p.ID] = 3
	err := v.ValidateDelete(context.Background(), p)
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func validProcurementDetail() *entity.ProcurementDetail {
	return &entity.ProcurementDetail{
		ID:            1,
		ProcurementID: 1,
		ProductID:     1,
		Quantity:      10,
		PurchasePrice: 5,
		LineTotal:     50,
	}
}

func availableProduct() *entity.Product {
	return &entity.Product{ID: 1, Name: "Widget", InStock: 100, IsAvailable: true}
}

func TestProcurementDetailValidatorAdd(t *testing.T) {
	details := &fakeProcurementDetailLookup{
		lines:       map[[2]int64]*entity.ProcurementDetail{},
		countByProc: map[int64]int64{},
	}
	v := NewProcurementDetailValidator(details)

	assert.NoError(t, v.ValidateAdd(context.Background(), validProcurement(), availableProduct(), validProcurementDetail()))

	err := v.ValidateAdd(context.Background(), nil, availableProduct(), validProcurementDetail())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	err = v.ValidateAdd(context.Background(), validProcurement(), nil, validProcurementDetail())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))

	unavailable := availableProduct()
	unavailable.IsAvailable = false
	err = v.ValidateAdd(context.Background(), validProcurement(), unavailable, validProcurementDetail())
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	details.lines[[2]int64{1, 1}] = validProcurementDetail()
	err = v.ValidateAdd(context.Background(), validProcurement(), availableProduct(), validProcurementDetail())
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestProcurementDetailValidatorTotalDelta(t *testing.T) {
	v := NewProcurementDetailValidator(&fakeProcurementDetailLookup{
		lines:       map[[2]int64]*entity.ProcurementDetail{},
		countByProc: map[int64]int64{},
	})

	procurement := validProcurement()
	procurement.TotalAmount = 9_500_000

	// Landing exactly on the cap is allowed.
	assert.NoError(t, v.ValidateTotalDelta(procurement, 500_000))

	// A per-line-valid amount can still push the parent past the cap.
	err := v.ValidateTotalDelta(procurement, 500_001)
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
	assert.Contains(t, err.Error(), "10,000,000")

	err = v.ValidateTotalDelta(procurement, -9_500_001)
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestProcurementDetailValidatorAmounts(t *testing.T) {
	v := NewProcurementDetailValidator(&fakeProcurementDetailLookup{
		lines:       map[[2]int64]*entity.ProcurementDetail{},
		countByProc: map[int64]int64{},
	})

	tests := []struct {
		name   string
		mutate func(*entity.ProcurementDetail)
	}{
		{"zero purchase price", func(d *entity.ProcurementDetail) { d.PurchasePrice = 0 }},
		{"purchase price above cap", func(d *entity.ProcurementDetail) { d.PurchasePrice = 100_001 }},
		{"zero quantity", func(d *entity.ProcurementDetail) { d.Quantity = 0 }},
		{"quantity at cap", func(d *entity.ProcurementDetail) { d.Quantity = 100_000 }},
		{"line total mismatch", func(d *entity.ProcurementDetail) { d.LineTotal = 49 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detail := validProcurementDetail()
			tt.mutate(detail)
			err := v.ValidateUpdate(context.Background(), validProcurement(), availableProduct(), detail)
			require.Error(t, err)
			assert.True(t, apperror.IsValidation(err))
		})
	}
}
