package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCategory(t *testing.T) {
	t.Run("creates category with valid inputs", func(t *testing.T) {
		category, err := NewCategory("Smartphones", "Phones and accessories")
		require.NoError(t, err)
		require.NotNil(t, category)

		assert.Equal(t, "Smartphones", category.Name)
		assert.Equal(t, "Phones and accessories", category.Description)
		assert.NotEmpty(t, category.ID)
		assert.Equal(t, 1, category.Version)
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		category, err := NewCategory("  Tablets  ", "")
		require.NoError(t, err)
		assert.Equal(t, "Tablets", category.Name)
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewCategory("", "desc")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name is required")
	})
}

func TestCategoryUpdate(t *testing.T) {
	category, err := NewCategory("Laptops", "")
	require.NoError(t, err)

	require.NoError(t, category.Update("Notebooks", "Portable computers"))
	assert.Equal(t, "Notebooks", category.Name)
	assert.Equal(t, "Portable computers", category.Description)
	assert.Equal(t, 2, category.Version)

	err = category.Update("", "")
	require.Error(t, err)
}
