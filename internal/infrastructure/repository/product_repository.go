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

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.conn(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	var product entity.Product
	err := r.conn(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []int64) ([]entity.Product, error) {
	var products []entity.Product
	if len(ids) == 0 {
		return products, nil
	}
	err := r.conn(ctx).Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (r *productRepository) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	var product entity.Product
	err := r.conn(ctx).First(&product, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Update performs a compare-and-swap on the product's version column
func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	expected := product.Version
	product.Version++

	result := r.conn(ctx).Model(&entity.Product{}).
		Where("id = ? AND version = ?", product.ID, expected).
		Updates(map[string]interface{}{
			"category_id":  product.CategoryID,
			"name":         product.Name,
			"code":         product.Code,
			"unit_price":   product.UnitPrice,
			"cost_price":   product.CostPrice,
			"in_stock":     product.InStock,
			"stock_alert":  product.StockAlert,
			"is_available": product.IsAvailable,
			"notes":        product.Notes,
			"version":      product.Version,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperror.NewConflictError("Product was modified by another request. Please retry.")
	}
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	return r.conn(ctx).Delete(&entity.Product{}, "id = ?", id).Error
}

// DecrementStock subtracts quantity only when enough stock remains, in a
// single guarded UPDATE so concurrent orders cannot oversell.
func (r *productRepository) DecrementStock(ctx context.Context, id int64, quantity int) (bool, error) {
	result := r.conn(ctx).Model(&entity.Product{}).
		Where("id = ? AND in_stock >= ?", id, quantity).
		Update("in_stock", gorm.Expr("in_stock - ?", quantity))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *productRepository) IncrementStock(ctx context.Context, id int64, quantity int) error {
	return r.conn(ctx).Model(&entity.Product{}).
		Where("id = ?", id).
		Update("in_stock", gorm.Expr("in_stock + ?", quantity)).Error
}

func (r *productRepository) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := r.conn(ctx).
		Where("in_stock <= stock_alert AND is_available = ?", true).
		Order("in_stock ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := r.conn(ctx).Model(&entity.Product{})

	if params.Search != "" {
		query = query.Where("name ILIKE ? OR code ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}
	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}
	if params.Available != nil {
		query = query.Where("is_available = ?", *params.Available)
	}
	if params.LowStock {
		query = query.Where("in_stock <= stock_alert")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Category").
		Order(resolveSort(productSortColumns, params.SortBy, params.SortDirection, "created_at DESC")).
		Find(&products).Error

	return products, total, err
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) domainRepo.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) conn(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db).WithContext(ctx)
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return r.conn(ctx).Create(category).Error
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	var category entity.Category
	err := r.conn(ctx).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	var category entity.Category
	err := r.conn(ctx).First(&category, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.Category) error {
	return r.conn(ctx).Save(category).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	return r.conn(ctx).Delete(&entity.Category{}, "id = ?", id).Error
}

func (r *categoryRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Category, int64, error) {
	var categories []entity.Category
	var total int64

	query := r.conn(ctx).Model(&entity.Category{})
	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&categories).Error

	return categories, total, err
}
