// Package complete provides the runner logic for marking entries complete.
package complete

import (
	"context"
	"io"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/runner/list"
	"tableflip.dev/todo/pkg/section"
	"tableflip.dev/todo/pkg/store"
)

// Complete marks an entry as completed.
type Complete struct {
	ID          string
	Out         io.Writer
	Persistence store.Persistence
}

// Do completes the entry and prints the Done section.
func (n *Complete) Do(ctx context.Context) error {
	svc := &app.Service{Persistence: n.Persistence}
	if _, err := svc.Complete(ctx, n.ID); err != nil {
		return err
	}
	return list.Section(ctx, n.Persistence, section.Done, true, n.Out)
}
