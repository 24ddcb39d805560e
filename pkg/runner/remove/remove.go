// Package remove provides the runner for deleting entries.
package remove

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/store"
)

// Remove deletes an entry by id.
type Remove struct {
	ID          string
	Out         io.Writer
	Persistence store.Persistence
}

func (r *Remove) Do(ctx context.Context) error {
	svc := &app.Service{Persistence: r.Persistence}
	e, err := svc.Remove(ctx, r.ID)
	if err != nil {
		return err
	}
	out := r.Out
	if out == nil {
		out = color.Output
	}
	_, err = fmt.Fprintf(out, "removed %s %s\n", color.New(color.FgHiYellow).Sprint(e.ID), e.Message)
	return err
}
