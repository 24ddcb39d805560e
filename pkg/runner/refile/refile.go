// Package refile provides the runner that reclassifies stale entries.
package refile

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/store"
)

// Refile moves entries whose due date has rolled them into another section.
type Refile struct {
	Out         io.Writer
	Persistence store.Persistence
}

func (r *Refile) Do(ctx context.Context) error {
	svc := &app.Service{Persistence: r.Persistence}
	n, err := svc.Refile(ctx)
	if err != nil {
		return err
	}
	out := r.Out
	if out == nil {
		out = color.Output
	}
	switch n {
	case 0:
		_, err = fmt.Fprintln(out, "nothing to refile")
	case 1:
		_, err = fmt.Fprintln(out, "refiled 1 entry")
	default:
		_, err = fmt.Fprintf(out, "refiled %d entries\n", n)
	}
	return err
}
