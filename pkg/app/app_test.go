package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/todo/pkg/entry"
	"tableflip.dev/todo/pkg/section"
	"tableflip.dev/todo/pkg/store"
	"tableflip.dev/todo/pkg/store/storetest"
)

var fixedNow = time.Date(2026, time.October, 15, 10, 0, 0, 0, time.Local)

func newService(entries ...*entry.Entry) (*Service, *storetest.Memory) {
	mem := storetest.NewMemory(entries...)
	return &Service{Persistence: mem, Now: func() time.Time { return fixedNow }}, mem
}

func TestAddClassifiesAndOrders(t *testing.T) {
	ctx := context.Background()
	svc, mem := newService()

	tomorrow := fixedNow.AddDate(0, 0, 1)
	first, err := svc.Add(ctx, "buy milk", AddOptions{Due: &tomorrow})
	require.NoError(t, err)
	assert.Equal(t, "tomorrow", first.Section)
	assert.Equal(t, 1, first.Order)

	second, err := svc.Add(ctx, "buy bread", AddOptions{Due: &tomorrow})
	require.NoError(t, err)
	assert.Equal(t, 2, second.Order)

	later, err := svc.Add(ctx, "learn piano", AddOptions{})
	require.NoError(t, err)
	assert.Equal(t, "someday", later.Section)

	assert.Len(t, mem.ListAll(ctx), 3)

	_, err = svc.Add(ctx, "   ", AddOptions{})
	assert.True(t, errors.Is(err, ErrEmptyMessage))
}

func TestCompleteAndRemove(t *testing.T) {
	ctx := context.Background()
	svc, mem := newService(&entry.Entry{ID: "a", Message: "call mom", Section: "today", Due: entry.At(fixedNow)})

	done, err := svc.Complete(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "done", done.Section)
	assert.True(t, done.IsComplete())

	stored, err := mem.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, section.Done, stored.Classify(fixedNow))

	_, err = svc.Remove(ctx, "a")
	require.NoError(t, err)
	_, err = svc.Remove(ctx, "a")
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestMove(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(&entry.Entry{ID: "a", Message: "call mom", Section: "done", Completed: entry.At(fixedNow)})

	for _, target := range []section.Section{section.Today, section.Tomorrow, section.Upcoming, section.Someday, section.Done} {
		e, err := svc.Move(ctx, "a", target)
		require.NoError(t, err)
		assert.Equal(t, target.Name(), e.Section)
		assert.Equal(t, target, e.Classify(fixedNow), "moved to %s", target)
	}

	_, err := svc.Move(ctx, "a", section.Overdue)
	assert.True(t, errors.Is(err, ErrNotMovable))
}

func TestMoveTodayKeepsDueTime(t *testing.T) {
	ctx := context.Background()
	evening := fixedNow.Add(8 * time.Hour)
	svc, _ := newService(&entry.Entry{ID: "a", Message: "call mom", Section: "tomorrow", Due: entry.At(evening)})

	e, err := svc.Move(ctx, "a", section.Today)
	require.NoError(t, err)
	require.NotNil(t, e.Due)
	assert.True(t, e.Due.Equal(evening))
	assert.Equal(t, "today", e.Section)

	_, err = svc.Move(ctx, "a", section.Someday)
	require.NoError(t, err)
	e, err = svc.Move(ctx, "a", section.Today)
	require.NoError(t, err)
	assert.True(t, e.Due.Equal(fixedNow))
}

func TestRefile(t *testing.T) {
	ctx := context.Background()
	svc, mem := newService(
		&entry.Entry{ID: "a", Message: "pay rent", Section: "today", Due: entry.At(fixedNow.AddDate(0, 0, -1))},
		&entry.Entry{ID: "b", Message: "call mom", Section: "today", Due: entry.At(fixedNow)},
		&entry.Entry{ID: "c", Message: "plan trip", Section: "upcoming", Due: entry.At(fixedNow.AddDate(0, 0, 1))},
	)

	moved, err := svc.Refile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, moved)

	a, _ := mem.Get(ctx, "a")
	c, _ := mem.Get(ctx, "c")
	assert.Equal(t, "overdue", a.Section)
	assert.Equal(t, "tomorrow", c.Section)

	moved, err = svc.Refile(ctx)
	require.NoError(t, err)
	assert.Zero(t, moved)
}

func TestNoPersistence(t *testing.T) {
	svc := &Service{}
	_, err := svc.Add(context.Background(), "x", AddOptions{})
	assert.Error(t, err)
	_, err = svc.Refile(context.Background())
	assert.Error(t, err)
}
