package remove

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/todo/pkg/entry"
	"tableflip.dev/todo/pkg/store"
	"tableflip.dev/todo/pkg/store/storetest"
)

func TestRemove(t *testing.T) {
	color.NoColor = true
	ctx := context.Background()
	mem := storetest.NewMemory(&entry.Entry{ID: "call", Message: "call mom", Section: "today"})

	var out bytes.Buffer
	require.NoError(t, (&Remove{ID: "call", Out: &out, Persistence: mem}).Do(ctx))
	assert.Equal(t, "removed call call mom\n", out.String())
	assert.Empty(t, mem.ListAll(ctx))

	err := (&Remove{ID: "call", Out: &out, Persistence: mem}).Do(ctx)
	assert.ErrorIs(t, err, store.ErrNotFound)
}
