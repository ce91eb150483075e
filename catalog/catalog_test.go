package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogIntegrity(t *testing.T) {
	items := Items()
	require.NotEmpty(t, items)
	assert.Equal(t, Len(), len(items))

	seen := make(map[int]bool)
	for _, item := range items {
		assert.False(t, seen[item.ID], "duplicate id %d", item.ID)
		seen[item.ID] = true
		assert.NotEmpty(t, item.Name)
		assert.NotEmpty(t, item.Description)
		assert.Greater(t, item.Price, 0)
	}
}

func TestItemByID(t *testing.T) {
	first := Items()[0]
	got, ok := ItemByID(first.ID)
	require.True(t, ok)
	assert.Equal(t, first.Name, got.Name)

	_, ok = ItemByID(-1)
	assert.False(t, ok)
}
