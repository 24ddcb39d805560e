// Package add provides the runner for adding to-do entries.
package add

import (
	"context"
	"io"
	"time"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/runner/list"
	"tableflip.dev/todo/pkg/section"
	"tableflip.dev/todo/pkg/store"
)

// Add stores a new entry and prints the section it was filed into.
type Add struct {
	Message string
	Due     *time.Time
	Someday bool
	ShowID  bool
	Out     io.Writer

	Persistence store.Persistence
}

func (n *Add) Do(ctx context.Context) error {
	svc := &app.Service{Persistence: n.Persistence}
	e, err := svc.Add(ctx, n.Message, app.AddOptions{Due: n.Due, Someday: n.Someday})
	if err != nil {
		return err
	}
	return list.Section(ctx, n.Persistence, section.MustParse(e.Section), n.ShowID, n.Out)
}
