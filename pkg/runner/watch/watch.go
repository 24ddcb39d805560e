// Package watch provides the runner that follows the list as the store
// changes, either interactively or as a notification stream.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/golang/glog"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/fetch"
	"tableflip.dev/todo/pkg/printers"
	"tableflip.dev/todo/pkg/section"
	"tableflip.dev/todo/pkg/store"
	"tableflip.dev/todo/pkg/todolist"
	"tableflip.dev/todo/pkg/tui/sectionlist"
)

// Watch keeps a list controller current from store events.
type Watch struct {
	Sections  section.Configuration
	ShowEmpty bool
	// Interactive runs the Bubble Tea view instead of printing notifications.
	Interactive bool
	Out         io.Writer

	Persistence store.Persistence
}

func (w *Watch) Do(ctx context.Context) error {
	if w.Persistence == nil {
		return errors.New("can not watch, no persistence")
	}
	events, err := w.Persistence.Watch(ctx)
	if err != nil {
		return err
	}
	names, err := section.Names(w.Sections)
	if err != nil {
		return err
	}
	results := fetch.NewResultsController(w.Persistence, fetch.Request{Sections: names, Prefetch: true})
	list, err := todolist.New(ctx, results, w.Sections, todolist.WithShowsEmptySections(w.ShowEmpty))
	if err != nil {
		return err
	}

	if w.Interactive {
		svc := &app.Service{Persistence: w.Persistence}
		m := sectionlist.New(ctx, list, results, svc, events)
		_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return w.stream(ctx, list, results, events)
}

// stream prints the list once, then one notification batch per store change
// until ctx is done or events closes.
func (w *Watch) stream(ctx context.Context, list *todolist.Controller, results *fetch.ResultsController, events <-chan store.Event) error {
	out := w.Out
	if out == nil {
		out = color.Output
	}
	pp := printers.PrettyPrint{Out: out}
	if err := pp.List(list); err != nil {
		return err
	}
	list.SetDelegate(&printers.Notifications{Out: out})

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			glog.V(1).Infof("watch: %s %s", ev.Type, ev.Day)
			if err := results.Refresh(ctx); err != nil {
				return fmt.Errorf("watch: refresh: %w", err)
			}
		}
	}
}
