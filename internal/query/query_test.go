package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pressroom/internal/model"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name        string
		page, limit int
		total       int64
		totalPages  int
		hasNext     bool
		hasPrev     bool
	}{
		{"last page of three", 3, 10, 25, 3, false, true},
		{"first of many", 1, 10, 25, 3, true, false},
		{"middle page", 2, 10, 25, 3, true, true},
		{"exact fit", 2, 10, 20, 2, false, true},
		{"empty result", 1, 10, 0, 0, false, false},
		{"single partial page", 1, 10, 7, 1, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.limit, p.Limit)
			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, tt.totalPages, p.TotalPages)
			assert.Equal(t, tt.hasNext, p.HasNextPage)
			assert.Equal(t, tt.hasPrev, p.HasPrevPage)
		})
	}
}

func TestPaginate_Idempotent(t *testing.T) {
	first := Paginate(2, 10, 45)
	second := Paginate(2, 10, 45)
	assert.Equal(t, first, second)
}

func TestPaginate_HasNextIffBeforeLastPage(t *testing.T) {
	for page := 1; page <= 6; page++ {
		p := Paginate(page, 10, 50)
		assert.Equal(t, page < p.TotalPages, p.HasNextPage, "page %d", page)
	}
}

func TestListFilters_Normalize(t *testing.T) {
	f := ListFilters{Page: 0, Limit: -3}.Normalize()
	assert.Equal(t, DefaultPage, f.Page)
	assert.Equal(t, DefaultLimit, f.Limit)

	f = ListFilters{Page: 4, Limit: 500}.Normalize()
	assert.Equal(t, 4, f.Page)
	assert.Equal(t, MaxLimit, f.Limit)
}

func TestListFilters_KeyDeterministic(t *testing.T) {
	a := ListFilters{Page: 2, Limit: 10, Status: model.StatusPublished, Search: "Foo"}
	b := ListFilters{Page: 2, Limit: 10, Status: model.StatusPublished, Search: "foo"}

	// Search is case-insensitive, so keys match regardless of term casing.
	assert.Equal(t, a.Key("articles:public"), b.Key("articles:public"))

	c := ListFilters{Page: 3, Limit: 10, Status: model.StatusPublished, Search: "foo"}
	assert.NotEqual(t, a.Key("articles:public"), c.Key("articles:public"))
}
