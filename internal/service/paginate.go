package service

import "inkwell/internal/model"

// PageSize is the fixed number of posts per listing page.
const PageSize = 10

// Page is one bounded, ordered slice of a listing plus the metadata the
// templates need to navigate to adjacent slices.
type Page struct {
	Posts      []model.Post
	Number     int
	TotalItems int64
	TotalPages int
}

func (p *Page) HasPrev() bool { return p.Number > 1 }
func (p *Page) HasNext() bool { return p.Number < p.TotalPages }
func (p *Page) PrevNumber() int {
	if p.HasPrev() {
		return p.Number - 1
	}
	return p.Number
}
func (p *Page) NextNumber() int {
	if p.HasNext() {
		return p.Number + 1
	}
	return p.Number
}

func pageCount(total int64) int {
	n := int((total + PageSize - 1) / PageSize)
	if n < 1 {
		n = 1
	}
	return n
}

// clampPage maps any requested number onto a valid page instead of
// erroring: below range goes to the first page, above range to the last.
func clampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}
