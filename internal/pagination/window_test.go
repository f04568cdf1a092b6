package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func pages(ns ...int) []Entry {
	entries := make([]Entry, 0, len(ns))
	for _, n := range ns {
		if n == 0 {
			entries = append(entries, Entry{Ellipsis: true})
		} else {
			entries = append(entries, Entry{Page: n})
		}
	}
	return entries
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name        string
		currentPage int
		totalPages  int
		want        []Entry
	}{
		{
			name:        "first page of ten",
			currentPage: 1,
			totalPages:  10,
			want:        pages(1, 2, 3, 4, 0, 10),
		},
		{
			name:        "second page of ten keeps forced window",
			currentPage: 2,
			totalPages:  10,
			want:        pages(1, 2, 3, 4, 0, 10),
		},
		{
			name:        "middle page of ten",
			currentPage: 5,
			totalPages:  10,
			want:        pages(1, 0, 4, 5, 6, 0, 10),
		},
		{
			name:        "next to last page of ten",
			currentPage: 9,
			totalPages:  10,
			want:        pages(1, 0, 7, 8, 9, 10),
		},
		{
			name:        "last page of ten",
			currentPage: 10,
			totalPages:  10,
			want:        pages(1, 0, 7, 8, 9, 10),
		},
		{
			name:        "few pages listed verbatim",
			currentPage: 2,
			totalPages:  3,
			want:        pages(1, 2, 3),
		},
		{
			name:        "five pages has no ellipsis",
			currentPage: 3,
			totalPages:  5,
			want:        pages(1, 2, 3, 4, 5),
		},
		{
			name:        "single page",
			currentPage: 1,
			totalPages:  1,
			want:        pages(1),
		},
		{
			name:        "zero pages",
			currentPage: 1,
			totalPages:  0,
			want:        []Entry{},
		},
		{
			name:        "current page clamped into range",
			currentPage: 42,
			totalPages:  10,
			want:        pages(1, 0, 7, 8, 9, 10),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Window(tt.currentPage, tt.totalPages)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWindow_BoundedWidth(t *testing.T) {
	// Whatever the inputs, the row never grows past seven entries:
	// 1, ellipsis, three middle pages, ellipsis, totalPages.
	for total := 1; total <= 200; total++ {
		for current := 1; current <= total; current++ {
			got := Window(current, total)
			assert.LessOrEqual(t, len(got), 7, "total=%d current=%d", total, current)

			// First and last entries are always real pages
			assert.Equal(t, 1, got[0].Page)
			assert.Equal(t, total, got[len(got)-1].Page)
		}
	}
}
