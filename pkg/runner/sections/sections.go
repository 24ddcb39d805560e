// Package sections provides the runner that prints the configured canonical
// sections with their entry counts.
package sections

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/todo/pkg/fetch"
	"tableflip.dev/todo/pkg/section"
	"tableflip.dev/todo/pkg/store"
	"tableflip.dev/todo/pkg/todolist"
)

// Sections lists the canonical order, one row per section.
type Sections struct {
	Sections    section.Configuration
	Out         io.Writer
	Persistence store.Persistence
}

func (s *Sections) Do(ctx context.Context) error {
	if s.Persistence == nil {
		return errors.New("can not list sections, no persistence")
	}
	names, err := section.Names(s.Sections)
	if err != nil {
		return err
	}
	results := fetch.NewResultsController(s.Persistence, fetch.Request{Sections: names})
	c, err := todolist.New(ctx, results, s.Sections, todolist.WithShowsEmptySections(true))
	if err != nil {
		return err
	}

	out := s.Out
	if out == nil {
		out = color.Output
	}
	faint := color.New(color.Faint)
	tbl := uitable.New()
	tbl.AddRow("INDEX", "NAME", "TITLE", "ENTRIES")
	for i, ds := range c.DisplaySections() {
		count := fmt.Sprint(ds.Count)
		if !ds.HasFetched() {
			count = faint.Sprint(count)
		}
		tbl.AddRow(i, ds.Section.Name(), ds.Title(), count)
	}
	_, err = fmt.Fprintln(out, tbl)
	return err
}
