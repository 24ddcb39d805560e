package printers

import (
	"io"

	"github.com/fatih/color"

	"tableflip.dev/todo/pkg/entry"
	"tableflip.dev/todo/pkg/fetch"
	"tableflip.dev/todo/pkg/section"
	"tableflip.dev/todo/pkg/todolist"
)

// Notifications writes one line per display-space change notification.
type Notifications struct {
	Out io.Writer
}

var _ todolist.Delegate = (*Notifications)(nil)

func (n *Notifications) out() io.Writer {
	if n.Out != nil {
		return n.Out
	}
	return color.Output
}

func kindColor(kind fetch.ChangeKind) *color.Color {
	switch kind {
	case fetch.Insert:
		return color.New(color.FgGreen)
	case fetch.Delete:
		return color.New(color.FgRed)
	case fetch.Move:
		return color.New(color.FgCyan)
	default:
		return color.New(color.FgYellow)
	}
}

func (n *Notifications) WillChangeContent() {
	_, _ = color.New(color.Faint).Fprintln(n.out(), "begin")
}

func (n *Notifications) DidChangeSection(sec section.Section, index int, kind fetch.ChangeKind) {
	_, _ = kindColor(kind).Fprintf(n.out(), "  section %-6s %d %s\n", kind, index, sec.Title())
}

func (n *Notifications) DidChangeObject(item *entry.Entry, oldPath *todolist.IndexPath, kind fetch.ChangeKind, newPath *todolist.IndexPath) {
	_, _ = kindColor(kind).Fprintf(n.out(), "  object  %-6s %s -> %s %s\n", kind, pathString(oldPath), pathString(newPath), item.Message)
}

func (n *Notifications) DidChangeContent() {
	_, _ = color.New(color.Faint).Fprintln(n.out(), "end")
}

func pathString(p *todolist.IndexPath) string {
	if p == nil {
		return "-"
	}
	return p.String()
}
