package validator

import (
	"context"

	"github.com/collinsdev/marketplace-api/internal/domain/entity"
)

// amountTolerance is the rounding slack allowed when comparing derived money
// amounts (line totals, profits, order totals).
const amountTolerance = 0.01

// Validators perform their cross-entity existence checks through these narrow
// lookup interfaces. The gorm repositories satisfy them; tests use fakes.

// LocationLookup resolves locations by id
type LocationLookup interface {
	GetByID(ctx context.Context, id int64) (*entity.Location, error)
}

// VendorLookup resolves vendors by id
type VendorLookup interface {
	GetByID(ctx context.Context, id int64) (*entity.Vendor, error)
}

// UserLookup resolves users by id
type UserLookup interface {
	GetByID(ctx context.Context, id int64) (*entity.User, error)
}

// DiscountLookup resolves discounts by id
type DiscountLookup interface {
	GetByID(ctx context.Context, id int64) (*entity.Discount, error)
}

// DiscountCodeLookup resolves discounts by code
type DiscountCodeLookup interface {
	GetByCode(ctx context.Context, code string) (*entity.Discount, error)
}

// OrderNumberLookup resolves orders by order number
type OrderNumberLookup interface {
	GetByOrderNumber(ctx context.Context, orderNumber string) (*entity.Order, error)
}

// OrderDetailLookup resolves order detail lines
type OrderDetailLookup interface {
	GetByOrderAndProduct(ctx context.Context, orderID, productID int64) (*entity.OrderDetail, error)
}

// PaymentCounter counts payment rows attached to an order
type PaymentCounter interface {
	CountByOrderID(ctx context.Context, orderID int64) (int64, error)
}

// PaymentSummer sums completed payment amounts for an order
type PaymentSummer interface {
	SumCompletedByOrder(ctx context.Context, orderID, excludeID int64) (float64, error)
}

// ReferenceNoLookup resolves procurements by reference number
type ReferenceNoLookup interface {
	GetByReferenceNo(ctx context.Context, referenceNo string) (*entity.Procurement, error)
}

// ProcurementDetailLookup resolves procurement detail lines
type ProcurementDetailLookup interface {
	GetByProcurementAndProduct(ctx context.Context, procurementID, productID int64) (*entity.ProcurementDetail, error)
	CountByProcurementID(ctx context.Context, procurementID int64) (int64, error)
}
