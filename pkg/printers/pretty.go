package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/todo/pkg/entry"
	"tableflip.dev/todo/pkg/todolist"
)

// PrettyPrint renders a sectioned list.
type PrettyPrint struct {
	ShowID bool
	Out    io.Writer
}

var (
	spacing = strings.Repeat(" ", len("01k7kq3m5v0000000000000000  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

// TitleWithCount prints a section header.
func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)
	w := pp.out()

	if pp.ShowID {
		_, _ = t.Fprint(w, spacing)
	}
	_, _ = t.Fprint(w, title)
	_, _ = c.Fprintf(w, " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(w, " entry")
	default:
		_, _ = c.Fprintln(w, " entries")
	}
}

// Entries prints rows, or a faint "none" for an empty section.
func (pp *PrettyPrint) Entries(entries ...*entry.Entry) {
	w := pp.out()
	if len(entries) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Fprint(w, spacing)
		}
		_, _ = f.Fprint(w, " none\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	tbl := uitable.New()
	tbl.Separator = " "
	for _, e := range entries {
		due := ""
		if e.Due != nil && !e.IsComplete() {
			due = e.Due.Local().Format("Mon Jan 2")
		}
		if pp.ShowID {
			tbl.AddRow(y.Sprint(e.ID), e.Mark(), e.Message, due)
		} else {
			tbl.AddRow(e.Mark(), e.Message, due)
		}
	}
	_, _ = fmt.Fprintln(w, tbl)
	_, _ = fmt.Fprintln(w)
}

// List prints every display section of c with its entries.
func (pp *PrettyPrint) List(c *todolist.Controller) error {
	for i, sec := range c.DisplaySections() {
		pp.TitleWithCount(sec.Title(), sec.Count)
		items := make([]*entry.Entry, 0, sec.Count)
		for row := 0; row < sec.Count; row++ {
			e, err := c.ItemAt(todolist.IndexPath{Section: i, Row: row})
			if err != nil {
				return err
			}
			items = append(items, e)
		}
		pp.Entries(items...)
	}
	return nil
}
