package list

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/todo/pkg/entry"
	"tableflip.dev/todo/pkg/fetch"
	"tableflip.dev/todo/pkg/section"
	"tableflip.dev/todo/pkg/store/storetest"
)

func init() {
	color.NoColor = true
}

func seeded() *storetest.Memory {
	return storetest.NewMemory(
		&entry.Entry{ID: "call", Message: "call mom", Section: "today", Order: 1},
		&entry.Entry{ID: "milk", Message: "buy milk", Section: "today", Order: 2},
		&entry.Entry{ID: "read", Message: "read book", Section: "someday", Order: 1},
	)
}

func TestListHidesEmptySections(t *testing.T) {
	var out bytes.Buffer
	l := &List{Persistence: seeded(), Out: &out}
	require.NoError(t, l.Do(context.Background()))

	got := out.String()
	assert.Contains(t, got, "Today - 2 entries")
	assert.Contains(t, got, "Someday - 1 entry")
	assert.NotContains(t, got, "Overdue")
	assert.Less(t, bytes.Index(out.Bytes(), []byte("buy milk")), bytes.Index(out.Bytes(), []byte("call mom")))
}

func TestListShowEmpty(t *testing.T) {
	var out bytes.Buffer
	l := &List{Persistence: seeded(), ShowEmpty: true, Out: &out}
	require.NoError(t, l.Do(context.Background()))

	got := out.String()
	assert.Contains(t, got, "Overdue - 0 entries")
	assert.Contains(t, got, "Done - 0 entries")
	assert.Contains(t, got, "none")
}

func TestListMatch(t *testing.T) {
	var out bytes.Buffer
	l := &List{Persistence: seeded(), Match: "milk", ShowID: true, Out: &out}
	require.NoError(t, l.Do(context.Background()))

	got := out.String()
	assert.Contains(t, got, "buy milk")
	assert.Contains(t, got, "milk")
	assert.NotContains(t, got, "call mom")
	assert.NotContains(t, got, "Someday")
}

func TestListInvalidSort(t *testing.T) {
	l := &List{Persistence: seeded(), SortBy: fetch.SortKey("priority"), Out: &bytes.Buffer{}}
	err := l.Do(context.Background())
	require.ErrorIs(t, err, fetch.ErrInvalidRequest)
}

func TestSectionPrintsEmptySection(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Section(context.Background(), seeded(), section.Tomorrow, false, &out))
	assert.Contains(t, out.String(), "Tomorrow - 0 entries")
	assert.NotContains(t, out.String(), "Today")
}

func TestListConfiguredSubset(t *testing.T) {
	var out bytes.Buffer
	l := &List{Persistence: seeded(), Sections: section.Static{section.Today}, Out: &out}
	require.NoError(t, l.Do(context.Background()))

	got := out.String()
	assert.Contains(t, got, "Today - 2 entries")
	assert.NotContains(t, got, "Someday")
	assert.NotContains(t, got, "read book")
}

func TestListFilterOutsideConfiguration(t *testing.T) {
	l := &List{
		Persistence: seeded(),
		Sections:    section.Static{section.Today},
		Filter:      []string{"someday"},
		Out:         &bytes.Buffer{},
	}
	assert.ErrorIs(t, l.Do(context.Background()), section.ErrNoSections)
}

func TestListNoPersistence(t *testing.T) {
	l := &List{}
	assert.Error(t, l.Do(context.Background()))
}
