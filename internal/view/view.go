// Package view derives the filtered, paginated slice of the roster that
// the presentation layer renders.
//
// State owns only the search term, the current page, and the page size.
// The filtered list is recomputed from the live source; it is never
// persisted and never mutated in place.
package view

import (
	"strings"

	"github.com/aanand-mishra/student-records/internal/types"
)

// DefaultPageSize is used when New is given a size below 1.
const DefaultPageSize = 5

// Source is the live roster a State filters.
type Source interface {
	List() []types.Student
}

// State is the view state. It is not safe for concurrent use.
type State struct {
	source   Source
	pageSize int

	searchTerm  string
	currentPage int
	filtered    []types.Student
}

// New returns a State on page 1 with an empty search term, already
// computed against source.
func New(source Source, pageSize int) *State {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	v := &State{
		source:      source,
		pageSize:    pageSize,
		currentPage: 1,
	}
	v.Recompute()
	return v
}

// SetSearchTerm stores term as given, returns to page 1, and recomputes.
func (v *State) SetSearchTerm(term string) {
	v.searchTerm = term
	v.ResetToFirst()
	v.Recompute()
}

// Recompute re-derives the filtered list. A record matches when name,
// email, or course contains the term ignoring case, or phone contains it
// exactly. The empty term matches everything.
func (v *State) Recompute() {
	records := v.source.List()
	lower := strings.ToLower(v.searchTerm)

	filtered := make([]types.Student, 0, len(records))
	for _, r := range records {
		if matches(r, v.searchTerm, lower) {
			filtered = append(filtered, r)
		}
	}
	v.filtered = filtered
}

func matches(r types.Student, term, lower string) bool {
	return strings.Contains(strings.ToLower(r.Name), lower) ||
		strings.Contains(strings.ToLower(r.Email), lower) ||
		strings.Contains(strings.ToLower(r.Course), lower) ||
		strings.Contains(r.Phone, term)
}

// CurrentPageRecords returns the records on the current page, or an empty
// slice when the page is past the end.
func (v *State) CurrentPageRecords() []types.Student {
	start := (v.currentPage - 1) * v.pageSize
	if start >= len(v.filtered) {
		return []types.Student{}
	}
	end := min(start+v.pageSize, len(v.filtered))

	out := make([]types.Student, end-start)
	copy(out, v.filtered[start:end])
	return out
}

// TotalPages is ceil(len(filtered)/pageSize); 0 when nothing matches.
func (v *State) TotalPages() int {
	return (len(v.filtered) + v.pageSize - 1) / v.pageSize
}

// GoToPage moves by delta pages, clamped to [1, max(TotalPages, 1)].
// It returns false, changing nothing, when the move would not change the
// page.
func (v *State) GoToPage(delta int) bool {
	target := v.currentPage + delta
	target = max(target, 1)
	target = min(target, max(v.TotalPages(), 1))

	if target == v.currentPage {
		return false
	}
	v.currentPage = target
	return true
}

// Next moves forward one page. It is a no-op on the last page.
func (v *State) Next() bool { return v.GoToPage(1) }

// Previous moves back one page. It is a no-op on page 1.
func (v *State) Previous() bool { return v.GoToPage(-1) }

// ResetToFirst returns to page 1.
func (v *State) ResetToFirst() { v.currentPage = 1 }

// ClampToLast pulls the current page back to the last page when
// deletions left it pointing past the end. With no pages at all the page
// stays where it is.
func (v *State) ClampToLast() {
	if total := v.TotalPages(); total > 0 && v.currentPage > total {
		v.currentPage = total
	}
}

// CanNext reports whether Next would move.
func (v *State) CanNext() bool { return v.currentPage < v.TotalPages() }

// CanPrevious reports whether Previous would move.
func (v *State) CanPrevious() bool { return v.currentPage > 1 }

func (v *State) CurrentPage() int { return v.currentPage }

func (v *State) PageSize() int { return v.pageSize }

func (v *State) SearchTerm() string { return v.searchTerm }

// Filtered returns a copy of the filtered list.
func (v *State) Filtered() []types.Student {
	out := make([]types.Student, len(v.filtered))
	copy(out, v.filtered)
	return out
}
