// Package move provides the runner for rescheduling an entry into a section.
package move

import (
	"context"
	"io"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/runner/list"
	"tableflip.dev/todo/pkg/section"
	"tableflip.dev/todo/pkg/store"
)

// Move files an entry into Section.
type Move struct {
	ID          string
	Section     string
	Out         io.Writer
	Persistence store.Persistence
}

func (m *Move) Do(ctx context.Context) error {
	target, err := section.Parse(m.Section)
	if err != nil {
		return err
	}
	svc := &app.Service{Persistence: m.Persistence}
	if _, err := svc.Move(ctx, m.ID, target); err != nil {
		return err
	}
	return list.Section(ctx, m.Persistence, target, true, m.Out)
}
