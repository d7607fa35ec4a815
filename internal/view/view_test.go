package view

import (
	"fmt"
	"testing"

	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceSource struct {
	records []types.Student
}

func (s *sliceSource) List() []types.Student { return s.records }

func (s *sliceSource) removeLast() { s.records = s.records[:len(s.records)-1] }

func roster(n int) *sliceSource {
	src := &sliceSource{}
	for i := 0; i < n; i++ {
		src.records = append(src.records, types.Student{
			ID:     fmt.Sprintf("id-%d", i),
			Name:   fmt.Sprintf("Student %d", i),
			Email:  fmt.Sprintf("s%d@test.com", i),
			Course: "Computer Science",
			Phone:  fmt.Sprintf("555-%04d", i),
		})
	}
	return src
}

func TestPagination(t *testing.T) {
	v := New(roster(12), 5)

	assert.Equal(t, 3, v.TotalPages())
	assert.Equal(t, 1, v.CurrentPage())
	assert.Len(t, v.CurrentPageRecords(), 5)

	// previous from page 1 is a no-op
	assert.False(t, v.Previous())
	assert.Equal(t, 1, v.CurrentPage())

	assert.True(t, v.Next())
	assert.True(t, v.Next())
	assert.Equal(t, 3, v.CurrentPage())

	page := v.CurrentPageRecords()
	require.Len(t, page, 2)
	assert.Equal(t, "id-10", page[0].ID)
	assert.Equal(t, "id-11", page[1].ID)

	// next from page 3 is a no-op
	assert.False(t, v.Next())
	assert.Equal(t, 3, v.CurrentPage())
}

func TestGoToPage_Clamps(t *testing.T) {
	v := New(roster(12), 5)

	assert.True(t, v.GoToPage(10))
	assert.Equal(t, 3, v.CurrentPage())

	assert.True(t, v.GoToPage(-10))
	assert.Equal(t, 1, v.CurrentPage())

	empty := New(roster(0), 5)
	assert.Equal(t, 0, empty.TotalPages())
	assert.False(t, empty.Next())
	assert.False(t, empty.Previous())
	assert.Equal(t, 1, empty.CurrentPage())
	assert.Empty(t, empty.CurrentPageRecords())
}

func TestClampToLast_AfterDeletingLastPageRecord(t *testing.T) {
	src := roster(11)
	v := New(src, 5)
	v.GoToPage(2)
	require.Equal(t, 3, v.CurrentPage())
	require.Len(t, v.CurrentPageRecords(), 1)

	src.removeLast()
	v.Recompute()
	// Before clamping the page points past the end.
	assert.Empty(t, v.CurrentPageRecords())

	v.ClampToLast()
	assert.Equal(t, 2, v.CurrentPage())
	assert.Equal(t, 2, v.TotalPages())
	assert.Len(t, v.CurrentPageRecords(), 5)
}

func TestClampToLast_KeepsPageWhenNothingLeft(t *testing.T) {
	src := roster(1)
	v := New(src, 5)

	src.removeLast()
	v.Recompute()
	v.ClampToLast()

	assert.Equal(t, 1, v.CurrentPage())
	assert.Equal(t, 0, v.TotalPages())
}

func TestSearch(t *testing.T) {
	src := &sliceSource{records: []types.Student{
		{ID: "1", Name: "Alice Smith", Email: "alice@uni.edu", Course: "Data Science", Phone: "0711"},
		{ID: "2", Name: "Bob Jones", Email: "BOB@Mail.com", Course: "Cyber Security", Phone: "0822"},
		{ID: "3", Name: "Carol", Email: "carol@uni.edu", Course: "Computer Science", Phone: "ext-X9"},
	}}
	v := New(src, 5)

	ids := func() []string {
		var out []string
		for _, r := range v.Filtered() {
			out = append(out, r.ID)
		}
		return out
	}

	tests := []struct {
		term string
		want []string
	}{
		{term: "", want: []string{"1", "2", "3"}},
		{term: "ALICE", want: []string{"1"}},
		{term: "mail.COM", want: []string{"2"}},
		{term: "science", want: []string{"1", "3"}},
		{term: "082", want: []string{"2"}},
		{term: "X9", want: []string{"3"}},
		{term: "nobody", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			v.SetSearchTerm(tt.term)
			assert.Equal(t, tt.want, ids())
			assert.Equal(t, tt.term, v.SearchTerm())
		})
	}
}

func TestSetSearchTerm_ResetsPage(t *testing.T) {
	v := New(roster(12), 5)
	v.Next()
	v.Next()
	require.Equal(t, 3, v.CurrentPage())

	v.SetSearchTerm("student")
	assert.Equal(t, 1, v.CurrentPage())
	assert.Equal(t, 3, v.TotalPages())
}

func TestNew_DefaultsPageSize(t *testing.T) {
	v := New(roster(6), 0)
	assert.Equal(t, DefaultPageSize, v.PageSize())
	assert.Equal(t, 2, v.TotalPages())
}
