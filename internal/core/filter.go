package core

import (
	"strconv"
	"strings"
)

// Filter decides whether a transaction belongs in a listing. It is a pure
// predicate: stores hand back the month's records and the filter is applied
// in process, so every backend shares the same matching semantics.
type Filter struct {
	Window MonthWindow
	Search string

	searchLower string
	searchPrice *float64
}

// NewFilter builds a filter for the window with an optional free-text
// search term. A term that parses entirely as a number additionally matches
// on exact price; a non-numeric term never matches on price.
func NewFilter(window MonthWindow, search string) Filter {
	f := Filter{
		Window:      window,
		Search:      search,
		searchLower: strings.ToLower(search),
	}
	if search != "" {
		if price, err := strconv.ParseFloat(search, 64); err == nil {
			f.searchPrice = &price
		}
	}
	return f
}

// Matches reports whether t falls in the window and satisfies the search
// term. An empty term matches every record in the window.
func (f Filter) Matches(t Transaction) bool {
	if !f.Window.Contains(t.DateOfSale) {
		return false
	}
	if f.Search == "" {
		return true
	}
	if strings.Contains(strings.ToLower(t.Title), f.searchLower) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Description), f.searchLower) {
		return true
	}
	return f.searchPrice != nil && t.Price == *f.searchPrice
}
