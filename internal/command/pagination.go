package command

import "github.com/smileynet/rolodex/internal/contact"

// PaginationState tracks the current page of the contact listing.
// Page is 1-based.
type PaginationState struct {
	Page     int
	PageSize int
}

// Pages returns how many pages total records fill. An empty listing has
// one (empty) page.
func (p PaginationState) Pages(total int) int {
	if total <= 0 || p.PageSize <= 0 {
		return 1
	}
	return (total + p.PageSize - 1) / p.PageSize
}

// Bounds returns the half-open index range of the current page, clamping
// the page into range first.
func (p *PaginationState) Bounds(total int) (start, end int) {
	p.clamp(total)
	start = (p.Page - 1) * p.PageSize
	end = min(start+p.PageSize, total)
	return start, end
}

// Reset returns to the first page.
func (p *PaginationState) Reset() {
	p.Page = 1
}

// Next advances one page.
func (p *PaginationState) Next(total int) error {
	p.clamp(total)
	if p.Page >= p.Pages(total) {
		return contact.InvalidArgument("You are on the last page. Use 'prev' to go back.")
	}
	p.Page++
	return nil
}

// Prev goes back one page.
func (p *PaginationState) Prev(total int) error {
	p.clamp(total)
	if p.Page <= 1 {
		return contact.InvalidArgument("You are on the first page. Use 'next' to go forward.")
	}
	p.Page--
	return nil
}

func (p *PaginationState) clamp(total int) {
	if p.Page < 1 {
		p.Page = 1
	}
	if pages := p.Pages(total); p.Page > pages {
		p.Page = pages
	}
}
