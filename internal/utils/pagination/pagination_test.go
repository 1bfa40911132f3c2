package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := make([]int, 100)
	for i := range items {
		items[i] = i + 1
	}

	t.Run("middle page", func(t *testing.T) {
		page, totalPages := Paginate(items, 3, 10)
		assert.Equal(t, 10, totalPages)
		assert.Len(t, page, 10)
		assert.Equal(t, 21, page[0])
		assert.Equal(t, 30, page[9])
	})

	t.Run("page zero clamps to one", func(t *testing.T) {
		page, totalPages := Paginate(items, 0, 10)
		assert.Equal(t, 10, totalPages)
		assert.Equal(t, 1, page[0])
	})

	t.Run("negative page clamps to one", func(t *testing.T) {
		page, _ := Paginate(items, -5, 10)
		assert.Equal(t, 1, page[0])
	})

	t.Run("page past the end is empty not an error", func(t *testing.T) {
		page, totalPages := Paginate(items[:5], 2, 10)
		assert.Equal(t, 1, totalPages)
		assert.Empty(t, page)
	})

	t.Run("last partial page", func(t *testing.T) {
		page, totalPages := Paginate(items[:95], 10, 10)
		assert.Equal(t, 10, totalPages)
		assert.Len(t, page, 5)
		assert.Equal(t, 91, page[0])
	})
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 1, TotalPages(1, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 10, TotalPages(100, 10))
}
