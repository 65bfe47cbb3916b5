package repository

import (
	"context"
	"errors"

	"github.com/collinsdev/marketplace-api/internal/domain/entity"
	domainRepo "github.com/collinsdev/marketplace-api/internal/domain/repository"
	"gorm.io/gorm"
)

type procurementRepository struct {
	db *gorm.DB
}

// NewProcurementRepository creates a new procurement repository
func NewProcurementRepository(db *gorm.DB) domainRepo.ProcurementRepository {
	return &procurementRepository{db: db}
}

func (r *procurementRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

func (r *procurementRepository) Create(ctx context.Context, procurement *entity.Procurement) error {
	return r.conn(ctx).Create(procurement).Error
}

func (r *procurementRepository) GetByID(ctx context.Context, id int64) (*entity.Procurement, error) {
	var procurement entity.Procurement
	err := r.conn(ctx).First(&procurement, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &procurement, nil
}

func (r *procurementRepository) GetByReferenceNo(ctx context.Context, referenceNo string) (*entity.Procurement, error) {
	var procurement entity.Procurement
	err := r.conn(ctx).First(&procurement, "reference_no = ?", referenceNo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &procurement, nil
}

func (r *procurementRepository) GetWithDetails(ctx context.Context, id int64) (*entity.Procurement, error) {
	var procurement entity.Procurement
	err := r.conn(ctx).
		Preload("Vendor").
		Preload("Location").
		Preload("Details.Product").
		First(&procurement, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &procurement, nil
}

func (r *procurementRepository) Update(ctx context.Context, procurement *entity.Procurement) error {
	return r.conn(ctx).Save(procurement).Error
}

func (r *procurementRepository) Delete(ctx context.Context, id int64) error {
	return r.conn(ctx).Delete(&entity.Procurement{}, "id = ?", id).Error
}

func (r *procurementRepository) ApplyTotalDelta(ctx context.Context, id int64, delta float64) error {
	return r.conn(ctx).Model(&entity.Procurement{}).
		Where("id = ?", id).
		Update("total_amount", gorm.Expr("total_amount + ?", delta)).Error
}

func (r *procurementRepository) List(ctx context.Context, params *domainRepo.ProcurementFilterParams) ([]entity.Procurement, int64, error) {
	var procurements []entity.Procurement
	var total int64

	query := r.conn(ctx).Model(&entity.Procurement{})

	if params.Search != "" {
		query = query.Where("reference_no ILIKE ?", "%"+params.Search+"%")
	}
	if params.VendorID != nil {
		query = query.Where("vendor_id = ?", *params.VendorID)
	}
	if params.LocationID != nil {
		query = query.Where("location_id = ?", *params.LocationID)
	}
	if params.StartDate != nil {
		query = query.Where("procurement_date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("procurement_date <= ?", *params.EndDate)
	}
	if params.MinAmount != nil {
		query = query.Where("total_amount >= ?", *params.MinAmount)
	}
	if params.MaxAmount != nil {
		query = query.Where("total_amount <= ?", *params.MaxAmount)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Vendor").
		Preload("Location").
		Order(resolveSort(procurementSortColumns, params.SortBy, params.SortDirection, "created_at DESC")).
		Find(&procurements).Error

	return procurements, total, err
}

type procurementDetailRepository struct {
	db *gorm.DB
}

// NewProcurementDetailRepository creates a new procurement detail repository
func NewProcurementDetailRepository(db *gorm.DB) domainRepo.ProcurementDetailRepository {
	return &procurementDetailRepository{db: db}
}

func (r *procurementDetailRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

func (r *procurementDetailRepository) Create(ctx context.Context, detail *entity.ProcurementDetail) error {
	return r.conn(ctx).Create(detail).Error
}

func (r *procurementDetailRepository) GetByID(ctx context.Context, id int64) (*entity.ProcurementDetail, error) {
	var detail entity.ProcurementDetail
	err := r.conn(ctx).First(&detail, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *procurementDetailRepository) GetByProcurementID(ctx context.Context, procurementID int64) ([]entity.ProcurementDetail, error) {
	var details []entity.ProcurementDetail
	err := r.conn(ctx).
		Preload("Product").
		Where("procurement_id = ?", procurementID).
		Find(&details).Error
	return details, err
}

func (r *procurementDetailRepository) GetByProcurementAndProduct(ctx context.Context, procurementID, productID int64) (*entity.ProcurementDetail, error) {
	var detail entity.ProcurementDetail
	err := r.conn(ctx).First(&detail, "procurement_id = ? AND product_id = ?", procurementID, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *procurementDetailRepository) CountByProcurementID(ctx context.Context, procurementID int64) (int64, error) {
	var count int64
	err := r.conn(ctx).Model(&entity.ProcurementDetail{}).
		Where("procurement_id = ?", procurementID).
		Count(&count).Error
	return count, err
}

func (r *procurementDetailRepository) Update(ctx context.Context, detail *entity.ProcurementDetail) error {
	return r.conn(ctx).Save(detail).Error
}

func (r *procurementDetailRepository) Delete(ctx context.Context, id int64) error {
	return r.conn(ctx).Delete(&entity.ProcurementDetail{}, "id = ?", id).Error
}
