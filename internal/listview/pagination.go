package listview

import "prison-admin/internal/view"

// neighbours is how many pages either side of the current one are shown.
const neighbours = 2

// Pagination is the offset/limit window over a result set of Total rows.
type Pagination struct {
	Total  int
	Limit  int
	Offset int
}

// PageCount is ceil(Total / Limit).
func (p Pagination) PageCount() int {
	if p.Limit <= 0 || p.Total <= 0 {
		return 0
	}
	return (p.Total + p.Limit - 1) / p.Limit
}

// CurrentPage is the 1-based page containing Offset.
func (p Pagination) CurrentPage() int {
	if p.Limit <= 0 {
		return 1
	}
	return p.Offset/p.Limit + 1
}

// OffsetFor returns the offset of a 1-based page.
func OffsetFor(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}

// Controls lays out the page-number bar: previous, the first and last
// pages, the current page with two neighbours each side, an ellipsis for
// each gap, and next. A single page needs no controls.
func (p Pagination) Controls() []view.PagerItem {
	total := p.PageCount()
	if total <= 1 {
		return []view.PagerItem{}
	}
	cur := p.CurrentPage()

	items := []view.PagerItem{{Kind: view.PagerPrev, Page: cur - 1, Disabled: cur <= 1}}
	for i := 1; i <= total; i++ {
		switch {
		case i == 1 || i == total || (i >= cur-neighbours && i <= cur+neighbours):
			items = append(items, view.PagerItem{Kind: view.PagerPage, Page: i, Active: i == cur})
		case i == cur-neighbours-1 || i == cur+neighbours+1:
			items = append(items, view.PagerItem{Kind: view.PagerEllipsis})
		}
	}
	items = append(items, view.PagerItem{Kind: view.PagerNext, Page: cur + 1, Disabled: cur >= total})
	return items
}
