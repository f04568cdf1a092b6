// Package pagination computes the bounded page-index window used to browse
// large paginated lists: always the first and last page, a short run around
// the current page, and ellipsis markers for the gaps.
package pagination

// Entry is one slot in the page-button row: either a page number or an
// ellipsis marker.
type Entry struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

func page(n int) Entry  { return Entry{Page: n} }
func ellipsis() Entry   { return Entry{Ellipsis: true} }

// Window returns the ordered entries for a pager at currentPage out of
// totalPages (both 1-based). Up to five pages are listed verbatim; beyond
// that the row is always page 1, an optional leading ellipsis, at most
// three middle pages, an optional trailing ellipsis, and the last page,
// so the control keeps a bounded width however large totalPages grows.
func Window(currentPage, totalPages int) []Entry {
	if totalPages <= 0 {
		return []Entry{}
	}

	if currentPage < 1 {
		currentPage = 1
	}
	if currentPage > totalPages {
		currentPage = totalPages
	}

	if totalPages <= 5 {
		entries := make([]Entry, 0, totalPages)
		for i := 1; i <= totalPages; i++ {
			entries = append(entries, page(i))
		}
		return entries
	}

	entries := []Entry{page(1)}

	start := max(2, currentPage-1)
	end := min(totalPages-1, currentPage+1)

	if currentPage <= 2 {
		end = 4
	} else if currentPage >= totalPages-1 {
		start = totalPages - 3
	}

	if start > 2 {
		entries = append(entries, ellipsis())
	}

	for i := start; i <= end; i++ {
		entries = append(entries, page(i))
	}

	if end < totalPages-1 {
		entries = append(entries, ellipsis())
	}

	if totalPages > 1 {
		entries = append(entries, page(totalPages))
	}

	return entries
}
