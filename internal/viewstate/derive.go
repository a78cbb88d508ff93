package viewstate

import (
	"slices"
	"strings"
)

// FilterAll is the conventional name of the pass-through filter.
const FilterAll = "All"

// Filter is a named predicate; a nil Match keeps every item.
type Filter[T any] struct {
	Name  string
	Match func(T) bool
}

// Criteria are the inputs of a derived view besides the items themselves.
type Criteria[T any] struct {
	Match    func(T) bool
	Search   func(item T, needle string) bool
	Needle   string
	Less     func(a, b T) bool
	Page     int
	PageSize int
}

// PageInfo describes the visible window of a paged view. Start and End are
// 1-based and inclusive; both are 0 for an empty view.
type PageInfo struct {
	Page       int
	PageSize   int
	TotalItems int
	TotalPages int
	Start      int
	End        int
}

// Derive filters, searches, sorts and pages items. It never modifies items
// and returns the same sequence for the same inputs. The requested page is
// clamped into range; PageSize <= 0 disables paging.
func Derive[T any](items []T, c Criteria[T]) ([]T, PageInfo) {
	needle := normalizeNeedle(c.Needle)

	out := make([]T, 0, len(items))
	for _, item := range items {
		if c.Match != nil && !c.Match(item) {
			continue
		}
		if needle != "" && c.Search != nil && !c.Search(item, needle) {
			continue
		}
		out = append(out, item)
	}

	if c.Less != nil {
		slices.SortStableFunc(out, func(a, b T) int {
			switch {
			case c.Less(a, b):
				return -1
			case c.Less(b, a):
				return 1
			}
			return 0
		})
	}

	info := PageInfo{TotalItems: len(out)}
	if c.PageSize <= 0 {
		info.Page, info.TotalPages = 1, 1
		if len(out) > 0 {
			info.Start, info.End = 1, len(out)
		}
		return out, info
	}

	info.PageSize = c.PageSize
	info.TotalPages = (len(out) + c.PageSize - 1) / c.PageSize
	info.Page = c.Page
	if info.Page > info.TotalPages {
		info.Page = info.TotalPages
	}
	if info.Page < 1 {
		info.Page = 1
	}
	if len(out) == 0 {
		return out, info
	}

	start := (info.Page - 1) * c.PageSize
	end := min(start+c.PageSize, len(out))
	info.Start, info.End = start+1, end
	return out[start:end], info
}

// VisiblePages returns up to window consecutive page numbers around page.
func VisiblePages(page, totalPages, window int) []int {
	if totalPages <= 0 || window <= 0 {
		return []int{}
	}
	start := max(1, page-window/2)
	end := min(totalPages, start+window-1)
	if end-start < window-1 {
		start = max(1, end-window+1)
	}

	pages := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}

// ContainsFold reports whether any field contains the lowercase needle.
func ContainsFold(needle string, fields ...string) bool {
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func normalizeNeedle(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func matchNone[T any](T) bool { return false }
