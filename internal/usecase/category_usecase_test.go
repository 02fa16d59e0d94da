package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vendeya/internal/domain/entity"
)

func nestedCategories() []entity.Category {
	return []entity.Category{
		{ID: 1, Name: "Electrónica"},
		{ID: 2, Name: "Ordenadores", ParentID: 1},
		{ID: 3, Name: "Portátiles", ParentID: 2},
		{ID: 4, Name: "Hogar"},
		{ID: 5, Name: "Teléfonos", ParentID: 1},
	}
}

func TestLoadBuildsTreeAtArbitraryDepth(t *testing.T) {
	categories := NewCategoryUseCase(&fakeCategoryRepo{categories: nestedCategories()})

	require.NoError(t, categories.Load(context.Background()))

	roots := categories.Roots()
	require.Len(t, roots, 2)
	assert.Equal(t, "Electrónica", roots[0].Name)
	require.Len(t, roots[0].Children, 2)
	require.Len(t, roots[0].Children[0].Children, 1)
	assert.Equal(t, "Portátiles", roots[0].Children[0].Children[0].Name)
}

func TestFlattenIsDepthFirstWithDepths(t *testing.T) {
	categories := NewCategoryUseCase(&fakeCategoryRepo{categories: nestedCategories()})
	require.NoError(t, categories.Load(context.Background()))

	flat := categories.Flatten()

	require.Len(t, flat, 5)
	assert.Equal(t, []int{1, 2, 3, 5, 4}, []int{flat[0].ID, flat[1].ID, flat[2].ID, flat[3].ID, flat[4].ID})
	assert.Equal(t, []int{0, 1, 2, 1, 0}, []int{flat[0].Depth, flat[1].Depth, flat[2].Depth, flat[3].Depth, flat[4].Depth})
}

func TestFindWalksTheWholeTree(t *testing.T) {
	categories := NewCategoryUseCase(&fakeCategoryRepo{categories: nestedCategories()})
	require.NoError(t, categories.Load(context.Background()))

	found := categories.Find(3)
	require.NotNil(t, found)
	assert.Equal(t, "Portátiles", found.Name)

	assert.Nil(t, categories.Find(99))
}

func TestCreateReloadsTree(t *testing.T) {
	repo := &fakeCategoryRepo{categories: nestedCategories()}
	categories := NewCategoryUseCase(repo)
	require.NoError(t, categories.Load(context.Background()))

	created, err := categories.Create(context.Background(), "Tablets", 1)
	require.NoError(t, err)

	assert.NotNil(t, categories.Find(created.ID))
}

func TestCreateRejectsBlankName(t *testing.T) {
	categories := NewCategoryUseCase(&fakeCategoryRepo{})

	_, err := categories.Create(context.Background(), "   ", 0)
	assert.Error(t, err)
}
