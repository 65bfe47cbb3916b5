package service

import (
	"context"
	"testing"

	"github.com/collinsdev/marketplace-api/internal/domain/entity"
	"github.com/collinsdev/marketplace-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategorySlugsName(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryRepo())

	category, err := svc.CreateCategory(context.Background(), "Home & Garden")
	require.NoError(t, err)
	assert.Equal(t, "home-garden", category.Slug)

	_, err = svc.CreateCategory(context.Background(), "")
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	svc := NewCategoryService(newFakeCategoryRepo(
		&entity.Category{ID: 1, Name: "Hardware", Slug: "hardware"},
	))

	// Different casing collapses to the same slug.
	_, err := svc.CreateCategory(context.Background(), "HARDWARE")
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))
}

func TestUpdateCategoryRefreshesSlug(t *testing.T) {
	repo := newFakeCategoryRepo(
		&entity.Category{ID: 1, Name: "Hardware", Slug: "hardware"},
		&entity.Category{ID: 2, Name: "Software", Slug: "software"},
	)
	svc := NewCategoryService(repo)

	category, err := svc.UpdateCategory(context.Background(), 1, "Power Tools")
	require.NoError(t, err)
	assert.Equal(t, "power-tools", category.Slug)

	// Renaming onto another category's name clashes; keeping its own does not.
	_, err = svc.UpdateCategory(context.Background(), 1, "Software")
	require.Error(t, err)
	assert.True(t, apperror.IsConflict(err))

	_, err = svc.UpdateCategory(context.Background(), 1, "Power Tools")
	assert.NoError(t, err)
}
