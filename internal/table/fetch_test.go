package table

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBeginLoadClearsPriorError(t *testing.T) {
	s := populated(t)
	s.ApplyError(&FetchError{Message: "stale", Status: 500, Timestamp: time.Now()})

	s.BeginLoad()
	assert.True(t, s.Loading)
	assert.Nil(t, s.Err)
}

func TestApplyPageAtomicAndClampsCursor(t *testing.T) {
	s := populated(t)
	s.CurrentPage = 4

	s.ApplyPage(Page{Items: []Record{{"id": float64(2)}}, TotalPages: 2, TotalElements: 11})
	assert.Len(t, s.Items, 1)
	assert.Equal(t, 2, s.TotalPages)
	assert.Equal(t, 11, s.TotalElements)
	assert.Equal(t, 1, s.CurrentPage, "cursor clamped into the new page range")
	assert.False(t, s.Loading)
}

func TestFailedRefreshKeepsStaleItems(t *testing.T) {
	s := populated(t)
	items := s.Items

	s.BeginLoad()
	s.ApplyError(&FetchError{Message: "boom", Status: 503, Timestamp: time.Now()})

	assert.Equal(t, items, s.Items, "stale rows survive a failed refresh")
	assert.NotNil(t, s.Err)
	assert.False(t, s.Loading, "loading always cleared")
	assert.Equal(t, DisplayErrorWithData, s.Display())
}

func TestDeleteErrorDoesNotTouchListError(t *testing.T) {
	s := populated(t)
	listErr := &FetchError{Message: "load failed", Status: 500, Timestamp: time.Now()}
	s.ApplyError(listErr)

	s.ApplyDeleteError(&FetchError{Message: "delete failed", Status: 500, Timestamp: time.Now()})
	assert.Same(t, listErr, s.Err)
	assert.Equal(t, "delete failed", s.DeleteErr.Message)

	s.DismissDeleteError()
	assert.Nil(t, s.DeleteErr)
	assert.Same(t, listErr, s.Err)
}

func TestQuerySnapshotsSearchAndPagination(t *testing.T) {
	s := NewState("email", []string{"id"}, 25)
	s.TotalPages = 10
	s.SetPage(3)
	s.SearchTerm = "ann@"

	q := s.Query()
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 25, q.Size)
	assert.Equal(t, map[string]string{"email": "ann@"}, q.Filters)

	s.SetSearch("")
	assert.Empty(t, s.Query().Filters)
}

func TestCycleFencesStaleCompletions(t *testing.T) {
	var c Cycle

	first := c.Next()
	second := c.Next()

	assert.False(t, c.IsCurrent(first), "superseded fetch must be discarded")
	assert.True(t, c.IsCurrent(second))

	third := c.Next()
	assert.False(t, c.IsCurrent(second))
	assert.True(t, c.IsCurrent(third))
}

func TestFetchErrorTransient(t *testing.T) {
	assert.True(t, (&FetchError{Status: 0}).Transient())
	assert.True(t, (&FetchError{Status: 503}).Transient())
	assert.False(t, (&FetchError{Status: 404}).Transient())
	assert.False(t, (&FetchError{Status: 422}).Transient())
}
