package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginateSplitsThirteenItems(t *testing.T) {
	first := Paginate(PostsPerPage, 1, 13)
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, 2, first.Count)
	assert.Equal(t, 0, first.Offset())
	assert.True(t, first.HasNext())
	assert.False(t, first.HasPrevious())

	second := Paginate(PostsPerPage, 2, 13)
	assert.Equal(t, 2, second.Number)
	assert.Equal(t, 10, second.Offset())
	assert.False(t, second.HasNext())
	assert.True(t, second.HasPrevious())
}

func TestPaginateClampsLowPageNumbers(t *testing.T) {
	for _, page := range []int{0, -1, -100} {
		got := Paginate(PostsPerPage, page, 25)
		assert.Equal(t, 1, got.Number, "page %d should clamp to the first page", page)
	}
}

func TestPaginateClampsHighPageNumbers(t *testing.T) {
	got := Paginate(PostsPerPage, 99, 25)
	assert.Equal(t, 3, got.Number)
	assert.Equal(t, 20, got.Offset())
}

func TestPaginateEmptyListing(t *testing.T) {
	got := Paginate(PostsPerPage, 5, 0)
	assert.Equal(t, 1, got.Number)
	assert.Equal(t, 1, got.Count)
	assert.Equal(t, 0, got.Offset())
	assert.False(t, got.HasNext())
}

func TestPaginateExactMultiple(t *testing.T) {
	got := Paginate(PostsPerPage, 2, 20)
	assert.Equal(t, 2, got.Number)
	assert.Equal(t, 2, got.Count)
	assert.False(t, got.HasNext())
}

func TestPaginateDefaultsBadPageSize(t *testing.T) {
	got := Paginate(0, 1, 13)
	assert.Equal(t, PostsPerPage, got.Size)
}
