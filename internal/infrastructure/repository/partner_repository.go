package repository

import (
	"context"
	"errors"

	"github.com/collinsdev/marketplace-api/internal/domain/entity"
	domainRepo "github.com/collinsdev/marketplace-api/internal/domain/repository"
	"gorm.io/gorm"
)

type vendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository creates a new vendor repository
func NewVendorRepository(db *gorm.DB) domainRepo.VendorRepository {
	return &vendorRepository{db: db}
}

func (r *vendorRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

func (r *vendorRepository) Create(ctx context.Context, vendor *entity.Vendor) error {
	return r.conn(ctx).Create(vendor).Error
}

func (r *vendorRepository) GetByID(ctx context.Context, id int64) (*entity.Vendor, error) {
	var vendor entity.Vendor
	err := r.conn(ctx).First(&vendor, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *vendorRepository) Update(ctx context.Context, vendor *entity.Vendor) error {
	return r.conn(ctx).Save(vendor).Error
}

func (r *vendorRepository) Delete(ctx context.Context, id int64) error {
	return r.conn(ctx).Delete(&entity.Vendor{}, "id = ?", id).Error
}

func (r *vendorRepository) CountProcurements(ctx context.Context, vendorID int64) (int64, error) {
	var count int64
	err := r.conn(ctx).Model(&entity.Procurement{}).
		Where("vendor_id = ?", vendorID).
		Count(&count).Error
	return count, err
}

func (r *vendorRepository) List(ctx context.Context, params *domainRepo.PartnerFilterParams) ([]entity.Vendor, int64, error) {
	var vendors []entity.Vendor
	var total int64

	query := r.conn(ctx).Model(&entity.Vendor{})
	query = applyPartnerFilters(query, params)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(resolveSort(partnerSortColumns, params.SortBy, params.SortDirection, "name ASC")).
		Find(&vendors).Error

	return vendors, total, err
}

type locationRepository struct {
	db *gorm.DB
}

// NewLocationRepository creates a new location repository
func NewLocationRepository(db *gorm.DB) domainRepo.LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

func (r *locationRepository) Create(ctx context.Context, location *entity.Location) error {
	return r.conn(ctx).Create(location).Error
}

func (r *locationRepository) GetByID(ctx context.Context, id int64) (*entity.Location, error) {
	var location entity.Location
	err := r.conn(ctx).First(&location, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func (r *locationRepository) Update(ctx context.Context, location *entity.Location) error {
	return r.conn(ctx).Save(location).Error
}

func (r *locationRepository) Delete(ctx context.Context, id int64) error {
	return r.conn(ctx).Delete(&entity.Location{}, "id = ?", id).Error
}

func (r *locationRepository) List(ctx context.Context, params *domainRepo.PartnerFilterParams) ([]entity.Location, int64, error) {
	var locations []entity.Location
	var total int64

	query := r.conn(ctx).Model(&entity.Location{})
	query = applyPartnerFilters(query, params)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(resolveSort(partnerSortColumns, params.SortBy, params.SortDirection, "name ASC")).
		Find(&locations).Error

	return locations, total, err
}

func applyPartnerFilters(query *gorm.DB, params *domainRepo.PartnerFilterParams) *gorm.DB {
	if params.Search != "" {
		query = query.Where("name ILIKE ?", "%"+params.Search+"%")
	}
	if params.IsActive != nil {
		query = query.Where("is_active = ?", *params.IsActive)
	}
	return query
}

type discountRepository struct {
	db *gorm.DB
}

// NewDiscountRepository creates a new discount repository
func NewDiscountRepository(db *gorm.DB) domainRepo.DiscountRepository {
	return &discountRepository{db: db}
}

func (r *discountRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

func (r *discountRepository) Create(ctx context.Context, discount *entity.Discount) error {
	return r.conn(ctx).Create(discount).Error
}

func (r *discountRepository) GetByID(ctx context.Context, id int64) (*entity.Discount, error) {
	var discount entity.Discount
	err := r.conn(ctx).First(&discount, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &discount, nil
}

func (r *discountRepository) GetByCode(ctx context.Context, code string) (*entity.Discount, error) {
	var discount entity.Discount
	err := r.conn(ctx).First(&discount, "discount_code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &discount, nil
}

func (r *discountRepository) Update(ctx context.Context, discount *entity.Discount) error {
	return r.conn(ctx).Save(discount).Error
}

func (r *discountRepository) Delete(ctx context.Context, id int64) error {
	return r.conn(ctx).Delete(&entity.Discount{}, "id = ?", id).Error
}

func (r *discountRepository) List(ctx context.Context, params *domainRepo.PartnerFilterParams) ([]entity.Discount, int64, error) {
	var discounts []entity.Discount
	var total int64

	query := r.conn(ctx).Model(&entity.Discount{})
	if params.Search != "" {
		query = query.Where("discount_code ILIKE ?", "%"+params.Search+"%")
	}
	if params.IsActive != nil {
		query = query.Where("is_active = ?", *params.IsActive)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(resolveSort(discountSortColumns, params.SortBy, params.SortDirection, "created_at DESC")).
		Find(&discounts).Error

	return discounts, total, err
}
