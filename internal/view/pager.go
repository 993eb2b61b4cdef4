// internal/view/pager.go

// Package view applies the search predicate and page slicing to report lists.
package view

import (
	"strings"

	"fillrate/internal/domain"
)

// Pager tracks the search term and current page for one list view. Changing
// the term always snaps back to page 1; the current page is clamped whenever
// the filtered count shrinks beneath it.
type Pager struct {
	pageSize int
	page     int
	term     string
}

const defaultPageSize = 10

func NewPager(pageSize int) *Pager {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Pager{pageSize: pageSize, page: 1}
}

// SetTerm updates the search term, resetting to the first page when it
// actually changes.
func (p *Pager) SetTerm(term string) {
	if term != p.term {
		p.page = 1
	}
	p.term = term
}

func (p *Pager) Term() string { return p.term }

// SetPage moves to the requested page; out-of-range values are clamped on the
// next Slice call.
func (p *Pager) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	p.page = page
}

func (p *Pager) Page() int     { return p.page }
func (p *Pager) PageSize() int { return p.pageSize }

// TotalPages is never zero, even for an empty list.
func (p *Pager) TotalPages(filteredCount int) int {
	pages := (filteredCount + p.pageSize - 1) / p.pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

// Slice clamps the current page against the filtered count and returns the
// half-open index range of the visible page.
func (p *Pager) Slice(filteredCount int) (start, end int) {
	total := p.TotalPages(filteredCount)
	if p.page > total {
		p.page = total
	}

	start = (p.page - 1) * p.pageSize
	end = start + p.pageSize
	if end > filteredCount {
		end = filteredCount
	}
	if start > filteredCount {
		start = filteredCount
	}
	return start, end
}

// FilterItems keeps the report items matching the term with a case-insensitive
// substring match on sku, description and type.
func FilterItems(items []domain.ReportItem, term string) []domain.ReportItem {
	if strings.TrimSpace(term) == "" {
		return items
	}

	needle := strings.ToLower(term)
	filtered := make([]domain.ReportItem, 0, len(items))
	for _, item := range items {
		if matchesAny(needle, item.SKU, item.Description, string(item.Type)) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// FilterRollups matches like FilterItems but additionally against any
// contributing store name.
func FilterRollups(rollups []domain.AggregatedItem, term string) []domain.AggregatedItem {
	if strings.TrimSpace(term) == "" {
		return rollups
	}

	needle := strings.ToLower(term)
	filtered := make([]domain.AggregatedItem, 0, len(rollups))
	for _, rollup := range rollups {
		if matchesAny(needle, rollup.SKU, rollup.Description, string(rollup.Type)) ||
			matchesAny(needle, rollup.Stores...) {
			filtered = append(filtered, rollup)
		}
	}
	return filtered
}

func matchesAny(needle string, fields ...string) bool {
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
