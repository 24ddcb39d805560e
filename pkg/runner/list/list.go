// Package list provides the runner that prints the sectioned to-do list.
package list

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/todo/pkg/fetch"
	"tableflip.dev/todo/pkg/printers"
	"tableflip.dev/todo/pkg/section"
	"tableflip.dev/todo/pkg/store"
	"tableflip.dev/todo/pkg/todolist"
)

// List prints entries grouped by section.
type List struct {
	Persistence store.Persistence
	// Sections gives the canonical order. Nil means every section.
	Sections section.Configuration
	// Filter further restricts the fetch to the named sections.
	Filter    []string
	Match     string
	SortBy    fetch.SortKey
	ShowEmpty bool
	ShowID    bool
	Out       io.Writer
}

// Do fetches and prints the list.
func (l *List) Do(ctx context.Context) error {
	if l.Persistence == nil {
		return errors.New("can not list, no persistence")
	}
	names, err := section.Names(l.Sections, l.Filter...)
	if err != nil {
		return err
	}
	results := fetch.NewResultsController(l.Persistence, fetch.Request{
		Sections: names,
		Match:    l.Match,
		SortBy:   l.SortBy,
		Prefetch: true,
	})
	c, err := todolist.New(ctx, results, l.Sections, todolist.WithShowsEmptySections(l.ShowEmpty))
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: l.ShowID, Out: l.Out}
	return pp.List(c)
}

// Section prints a single section, even when it is empty.
func Section(ctx context.Context, p store.Persistence, sec section.Section, showID bool, out io.Writer) error {
	l := &List{
		Persistence: p,
		Sections:    section.Static{sec},
		Filter:      []string{sec.Name()},
		ShowEmpty:   true,
		ShowID:      showID,
		Out:         out,
	}
	return l.Do(ctx)
}
