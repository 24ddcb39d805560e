package fetch

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/todo/pkg/entry"
	"tableflip.dev/todo/pkg/store/storetest"
)

type recorder struct {
	events []string
}

func (r *recorder) WillChangeContent() { r.events = append(r.events, "will") }

func (r *recorder) DidChangeSection(info SectionInfo, index int, kind ChangeKind) {
	r.events = append(r.events, fmt.Sprintf("section %s %s@%d", kind, info.Name, index))
}

func (r *recorder) DidChangeObject(item *entry.Entry, oldPath *IndexPath, kind ChangeKind, newPath *IndexPath) {
	r.events = append(r.events, fmt.Sprintf("object %s %s %v->%v", kind, item.Message, oldPath, newPath))
}

func (r *recorder) DidChangeContent() { r.events = append(r.events, "did") }

func todo(id, msg, sec string, order int) *entry.Entry {
	return &entry.Entry{ID: id, Message: msg, Section: sec, Order: order}
}

func names(sections []SectionInfo) []string {
	out := make([]string, len(sections))
	for i, s := range sections {
		out[i] = s.Name
	}
	return out
}

func messages(sec SectionInfo) []string {
	out := make([]string, len(sec.Items))
	for i, e := range sec.Items {
		out[i] = e.Message
	}
	return out
}

func fetched(t *testing.T, req Request, entries ...*entry.Entry) (*ResultsController, *storetest.Memory, *recorder) {
	t.Helper()
	mem := storetest.NewMemory(entries...)
	rc := NewResultsController(mem, req)
	require.NoError(t, rc.PerformFetch(context.Background()))
	rec := &recorder{}
	rc.SetDelegate(rec)
	return rc, mem, rec
}

func TestPerformFetchGroupsAndSorts(t *testing.T) {
	rc, _, rec := fetched(t, Request{},
		todo("a", "call mom", "today", 1),
		todo("b", "file taxes", "overdue", 1),
		todo("c", "pay rent", "today", 3),
		todo("d", "read book", "done", 2),
	)

	require.Equal(t, []string{"overdue", "today", "done"}, names(rc.Sections()))
	assert.Equal(t, []string{"pay rent", "call mom"}, messages(rc.Sections()[1]))
	assert.Equal(t, 2, rc.Sections()[1].Count())
	assert.Len(t, rc.FetchedObjects(), 4)
	assert.Empty(t, rec.events)
}

func TestSortKeys(t *testing.T) {
	entries := []*entry.Entry{
		todo("a", "beta", "today", 1),
		todo("b", "Alpha", "today", 2),
	}
	rc, _, _ := fetched(t, Request{SortBy: SortMessage, Ascending: true}, entries...)
	assert.Equal(t, []string{"Alpha", "beta"}, messages(rc.Sections()[0]))

	rc, _, _ = fetched(t, Request{Ascending: true}, entries...)
	assert.Equal(t, []string{"beta", "Alpha"}, messages(rc.Sections()[0]))
}

func TestInvalidRequest(t *testing.T) {
	tests := []Request{
		{SortBy: "priority"},
		{Sections: []string{"today", "later"}},
		{Match: "a\nb"},
	}
	for _, req := range tests {
		rc := NewResultsController(storetest.NewMemory(), req)
		err := rc.PerformFetch(context.Background())
		assert.True(t, errors.Is(err, ErrInvalidRequest), "request %+v: %v", req, err)
	}
}

func TestRequestFilters(t *testing.T) {
	rc, _, _ := fetched(t, Request{Sections: []string{"today"}, Match: "rnt"},
		todo("a", "pay rent", "today", 1),
		todo("b", "buy bread", "today", 2),
		todo("c", "rent movie", "someday", 1),
	)
	require.Len(t, rc.Sections(), 1)
	assert.Equal(t, []string{"pay rent"}, messages(rc.Sections()[0]))
}

func TestRefreshInsertIntoNewSection(t *testing.T) {
	ctx := context.Background()
	rc, mem, rec := fetched(t, Request{},
		todo("a", "call mom", "today", 1),
		todo("b", "read book", "done", 1),
	)

	require.NoError(t, mem.Store(todo("c", "plan trip", "tomorrow", 1)))
	require.NoError(t, rc.Refresh(ctx))

	assert.Equal(t, []string{
		"will",
		"section insert tomorrow@1",
		"object insert plan trip <nil>->[1,0]",
		"did",
	}, rec.events)
	assert.Equal(t, []string{"today", "tomorrow", "done"}, names(rc.Sections()))
}

func TestRefreshRemovesEmptiedSection(t *testing.T) {
	ctx := context.Background()
	rc, mem, rec := fetched(t, Request{},
		todo("a", "call mom", "overdue", 1),
		todo("b", "read book", "today", 1),
	)

	require.NoError(t, mem.Delete(todo("a", "", "", 0)))
	require.NoError(t, rc.Refresh(ctx))

	assert.Equal(t, []string{
		"will",
		"section delete overdue@0",
		"object delete call mom [0,0]-><nil>",
		"did",
	}, rec.events)
}

func TestRefreshMoveBetweenSections(t *testing.T) {
	ctx := context.Background()
	rc, mem, rec := fetched(t, Request{},
		todo("a", "call mom", "overdue", 1),
		todo("b", "read book", "today", 2),
		todo("c", "pay rent", "today", 1),
	)

	moved := todo("c", "pay rent", "overdue", 5)
	require.NoError(t, mem.Store(moved))
	require.NoError(t, rc.Refresh(ctx))

	assert.Equal(t, []string{
		"will",
		"object move pay rent [1,1]->[0,0]",
		"did",
	}, rec.events)
}

func TestRefreshReorderReportsMinimalMoves(t *testing.T) {
	ctx := context.Background()
	rc, mem, rec := fetched(t, Request{},
		todo("a", "one", "today", 3),
		todo("b", "two", "today", 2),
		todo("c", "three", "today", 1),
	)

	require.NoError(t, mem.Store(todo("c", "three", "today", 4)))
	require.NoError(t, rc.Refresh(ctx))

	assert.Equal(t, []string{
		"will",
		"object move three [0,2]->[0,0]",
		"did",
	}, rec.events)
}

func TestRefreshUpdateAndNoop(t *testing.T) {
	ctx := context.Background()
	rc, mem, rec := fetched(t, Request{},
		todo("a", "call mom", "today", 1),
	)

	require.NoError(t, rc.Refresh(ctx))
	assert.Empty(t, rec.events)

	require.NoError(t, mem.Store(todo("a", "call dad", "today", 1)))
	require.NoError(t, rc.Refresh(ctx))
	assert.Equal(t, []string{
		"will",
		"object update call dad [0,0]->[0,0]",
		"did",
	}, rec.events)
}

func TestItemAt(t *testing.T) {
	rc, mem, _ := fetched(t, Request{},
		todo("a", "call mom", "today", 1),
	)

	got, err := rc.ItemAt(IndexPath{Section: 0, Row: 0})
	require.NoError(t, err)
	assert.Equal(t, "call mom", got.Message)

	// Without prefetching, reads go back to the store.
	require.NoError(t, mem.Store(todo("a", "call dad", "today", 1)))
	got, err = rc.ItemAt(IndexPath{Section: 0, Row: 0})
	require.NoError(t, err)
	assert.Equal(t, "call dad", got.Message)

	_, err = rc.ItemAt(IndexPath{Section: 1, Row: 0})
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	_, err = rc.ItemAt(IndexPath{Section: 0, Row: 1})
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
}

func TestItemAtPrefetched(t *testing.T) {
	rc, mem, _ := fetched(t, Request{Prefetch: true},
		todo("a", "call mom", "today", 1),
	)
	require.NoError(t, mem.Store(todo("a", "call dad", "today", 1)))
	got, err := rc.ItemAt(IndexPath{})
	require.NoError(t, err)
	assert.Equal(t, "call mom", got.Message)
}

func TestLongestIncreasing(t *testing.T) {
	tests := []struct {
		seq  []int
		want []bool
	}{
		{seq: nil, want: []bool{}},
		{seq: []int{0, 1, 2}, want: []bool{true, true, true}},
		{seq: []int{1, 2, 0}, want: []bool{true, true, false}},
		{seq: []int{2, 0, 1}, want: []bool{false, true, true}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, longestIncreasing(tt.seq), "seq %v", tt.seq)
	}
}
