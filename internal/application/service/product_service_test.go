package service

import (
	"context"
	"testing"

	"github.com/collinsdev/marketplace-api/internal/domain/entity"
	"github.com/collinsdev/marketplace-api/pkg/apperror"
	"github.com/collinsdev/marketplace-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCategoryRepo struct {
	categories map[int64]*entity.Category
	nextID     int64
}

func newFakeCategoryRepo(categories ...*entity.Category) *fakeCategoryRepo {
	f := &fakeCategoryRepo{categories: map[int64]*entity.Category{}, nextID: 1}
	for _, c := range categories {
		f.categories[c.ID] = c
		if c.ID >= f.nextID {
			f.nextID = c.ID + 1
		}
	}
	return f
}

func (f *fakeCategoryRepo) Create(_ context.Context, category *entity.Category) error {
	category.ID = f.nextID
	f.nextID++
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryRepo) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	return f.categories[id], nil
}

func (f *fakeCategoryRepo) GetBySlug(_ context.Context, slug string) (*entity.Category, error) {
	for _, c := range f.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) Update(_ context.Context, category *entity.Category) error {
	f.categories[category.ID] = category
	return nil
}

func (f *fakeCategoryRepo) Delete(_ context.Context, id int64) error {
	delete(f.categories, id)
	return nil
}

func (f *fakeCategoryRepo) List(_ context.Context, _ *pagination.PaginationParams, _ string) ([]entity.Category, int64, error) {
	out := make([]entity.Category, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func newProductServiceFixture() (*ProductService, *fakeProductRepo) {
	productRepo := newFakeProductRepo(
		&entity.Product{ID: 1, Name: "Widget", Code: "PROD-WIDGET01", UnitPrice: 25, CostPrice: 15, InStock: 10, StockAlert: 3, IsAvailable: true},
	)
	categoryRepo := newFakeCategoryRepo(
		&entity.Category{ID: 1, Name: "Hardware", Slug: "hardware"},
	)
	return NewProductService(productRepo, categoryRepo), productRepo
}

func TestCreateProduct(t *testing.T) {
	svc, _ := newProductServiceFixture()

	categoryID := int64(1)
	product, err := svc.CreateProduct(context.Background(), &CreateProductInput{
		CategoryID:  &categoryID,
		Name:        "Gadget",
		UnitPrice:   40,
		CostPrice:   30,
		InStock:     5,
		IsAvailable: true,
	})
	require.NoError(t, err)
	assert.NotZero(t, product.ID)
	assert.Regexp(t, `^PROD-`, product.Code)
}

func TestCreateProductValidation(t *testing.T) {
	svc, _ := newProductServiceFixture()

	_, err := svc.CreateProduct(context.Background(), &CreateProductInput{})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.CreateProduct(context.Background(), &CreateProductInput{Name: "Bad", UnitPrice: -1})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestCreateProductDuplicateCode(t *testing.T) {
	svc, _ := newProductServiceFixture()

	_, err := svc.CreateProduct(context.Background(), &CreateProductInput{
		Name: "Copy",
		Code: "PROD-WIDGET01",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestCreateProductUnknownCategory(t *testing.T) {
	svc, _ := newProductServiceFixture()

	categoryID := int64(42)
	_, err := svc.CreateProduct(context.Background(), &CreateProductInput{
		Name:       "Orphan",
		CategoryID: &categoryID,
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestUpdateProductCodeUniqueness(t *testing.T) {
	svc, _ := newProductServiceFixture()

	other, err := svc.CreateProduct(context.Background(), &CreateProductInput{Name: "Gadget", Code: "PROD-GADGET01"})
	require.NoError(t, err)

	taken := "PROD-WIDGET01"
	_, err = svc.UpdateProduct(context.Background(), other.ID, &UpdateProductInput{Code: &taken})
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))

	// Re-submitting a product's own code is not a clash.
	own := "PROD-GADGET01"
	_, err = svc.UpdateProduct(context.Background(), other.ID, &UpdateProductInput{Code: &own})
	assert.NoError(t, err)
}

func TestAdjustStock(t *testing.T) {
	svc, productRepo := newProductServiceFixture()

	product, err := svc.AdjustStock(context.Background(), 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 15, product.InStock)

	product, err = svc.AdjustStock(context.Background(), 1, -10)
	require.NoError(t, err)
	assert.Equal(t, 5, product.InStock)

	_, err = svc.AdjustStock(context.Background(), 1, -6)
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
	assert.Equal(t, 5, productRepo.products[1].InStock)

	_, err = svc.AdjustStock(context.Background(), 404, 1)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestGetLowStockProducts(t *testing.T) {
	svc, productRepo := newProductServiceFixture()
	productRepo.products[1].InStock = 2 // at or below alert level 3

	low, err := svc.GetLowStockProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, int64(1), low[0].ID)
}
