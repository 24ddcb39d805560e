// Package sectionlist renders a todolist.Controller as a Bubble Tea program
// and keeps it current from store change events.
package sectionlist

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/golang/glog"

	"tableflip.dev/todo/pkg/app"
	"tableflip.dev/todo/pkg/entry"
	"tableflip.dev/todo/pkg/fetch"
	"tableflip.dev/todo/pkg/section"
	"tableflip.dev/todo/pkg/store"
	"tableflip.dev/todo/pkg/todolist"
	"tableflip.dev/todo/pkg/tui/theme"
)

const defaultFeedSize = 8

// Refresher re-runs the fetch behind the list and emits change
// notifications. fetch.ResultsController satisfies it.
type Refresher interface {
	Refresh(ctx context.Context) error
}

type storeEventMsg store.Event

// Model is the Bubble Tea model for the watch view. It registers itself as
// the list's delegate and records every notification batch in a feed.
type Model struct {
	ctx     context.Context
	list    *todolist.Controller
	results Refresher
	service *app.Service
	events  <-chan store.Event
	theme   theme.Theme

	// body holds the sections once the terminal size is known.
	body   viewport.Model
	ready  bool
	height int

	cursor   int
	feed     []string
	pending  []string
	feedSize int
	status   string
	err      error
}

var _ todolist.Delegate = (*Model)(nil)

// New builds a model over list. results, service and events are optional;
// without them the matching keys only report a status line.
func New(ctx context.Context, list *todolist.Controller, results Refresher, service *app.Service, events <-chan store.Event) *Model {
	m := &Model{
		ctx:      ctx,
		list:     list,
		results:  results,
		service:  service,
		events:   events,
		theme:    theme.Default(),
		feedSize: defaultFeedSize,
	}
	list.SetDelegate(m)
	return m
}

// Feed returns the most recent notification lines, oldest first.
func (m *Model) Feed() []string {
	out := make([]string, len(m.feed))
	copy(out, m.feed)
	return out
}

// Init starts listening for store events.
func (m *Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func waitForEvent(ch <-chan store.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return storeEventMsg(ev)
	}
}

// Update handles key presses, resizes and store events.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	case storeEventMsg:
		glog.V(1).Infof("sectionlist: store event %s %s", msg.Type, msg.Day)
		m.refresh()
		cmd = waitForEvent(m.events)
	}
	m.syncBody()
	return m, cmd
}

func (m *Model) resize(width, height int) {
	if !m.ready {
		m.body = viewport.New(width, height)
		m.ready = true
	}
	m.body.Width = width
	m.height = height
}

// syncBody refreshes the viewport content and scrolls the cursor row into
// view.
func (m *Model) syncBody() {
	if !m.ready {
		return
	}
	m.body.Height = max(1, m.height-lipgloss.Height(m.footer()))
	content, top, line := m.renderBody()
	m.body.SetContent(content)
	if line < 0 {
		return
	}
	switch {
	case top < m.body.YOffset:
		m.body.SetYOffset(top)
	case line >= m.body.YOffset+m.body.Height:
		m.body.SetYOffset(line - m.body.Height + 1)
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.err = nil
	switch msg.String() {
	case "q", "ctrl+c":
		return tea.Quit
	case "e":
		show := !m.list.ShowsEmptySections()
		if err := m.list.SetShowsEmptySections(show); err != nil {
			m.err = err
			return nil
		}
		if show {
			m.status = "showing empty sections"
		} else {
			m.status = "hiding empty sections"
		}
	case "r":
		if err := m.list.Reload(m.ctx); err != nil {
			m.err = err
			return nil
		}
		m.status = "reloaded"
	case "j", "down":
		if m.cursor < len(m.rows())-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "x":
		m.completeSelected()
	}
	m.clampCursor()
	return nil
}

func (m *Model) completeSelected() {
	item := m.Selected()
	if item == nil {
		m.status = "nothing selected"
		return
	}
	if m.service == nil {
		m.status = "read only"
		return
	}
	if _, err := m.service.Complete(m.ctx, item.ID); err != nil {
		m.err = err
		return
	}
	m.status = fmt.Sprintf("completed %q", item.Message)
	m.refresh()
}

func (m *Model) refresh() {
	if m.results == nil {
		return
	}
	if err := m.results.Refresh(m.ctx); err != nil {
		m.err = err
	}
	m.clampCursor()
}

// rows flattens every backed row of the display list.
func (m *Model) rows() []todolist.IndexPath {
	var rows []todolist.IndexPath
	for i, ds := range m.list.DisplaySections() {
		for r := 0; r < ds.Count; r++ {
			rows = append(rows, todolist.IndexPath{Section: i, Row: r})
		}
	}
	return rows
}

func (m *Model) clampCursor() {
	n := len(m.rows())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Selected returns the entry under the cursor, or nil when the list is empty.
func (m *Model) Selected() *entry.Entry {
	rows := m.rows()
	if m.cursor >= len(rows) {
		return nil
	}
	item, err := m.list.ItemAt(rows[m.cursor])
	if err != nil {
		return nil
	}
	return item
}

// View renders the sections, the notification feed and the help line.
func (m *Model) View() string {
	if m.ready {
		return m.body.View() + "\n" + m.footer()
	}
	body, _, _ := m.renderBody()
	return body + "\n" + m.footer()
}

// renderBody draws every display section. Along with the text it returns the
// first line to keep visible with the cursor row and the cursor row's own
// line, both -1 when nothing is selected. A section's first row keeps its
// title in view.
func (m *Model) renderBody() (string, int, int) {
	rows := m.rows()
	selected := todolist.IndexPath{Section: -1}
	if m.cursor < len(rows) {
		selected = rows[m.cursor]
	}

	var lines []string
	cursorLine, cursorTop := -1, -1
	st := m.theme.Section
	for i, ds := range m.list.DisplaySections() {
		lines = append(lines, st.Title.Render(ds.Title())+" "+st.Count.Render(fmt.Sprintf("(%d)", ds.Count)))
		if !ds.HasFetched() {
			lines = append(lines, st.Placeholder.Render("  nothing here"))
			continue
		}
		for r := 0; r < ds.Count; r++ {
			path := todolist.IndexPath{Section: i, Row: r}
			item, err := m.list.ItemAt(path)
			if err != nil {
				lines = append(lines, m.theme.Footer.Error.Render("  "+err.Error()))
				continue
			}
			line := fmt.Sprintf("%s %s", item.Mark(), item.Message)
			style := st.Row
			if item.IsComplete() {
				style = st.Done
			}
			if path == selected {
				cursorLine = len(lines)
				cursorTop = cursorLine
				if r == 0 {
					cursorTop--
				}
				lines = append(lines, "> "+st.Selected.Render(line))
			} else {
				lines = append(lines, "  "+style.Render(line))
			}
		}
	}
	return strings.Join(lines, "\n"), cursorTop, cursorLine
}

// footer is the feed, status and help shown below the sections.
func (m *Model) footer() string {
	var b strings.Builder
	if len(m.feed) > 0 {
		lines := make([]string, 0, len(m.feed))
		for _, l := range m.feed {
			lines = append(lines, m.theme.Feed.Line.Render(l))
		}
		b.WriteString(m.theme.Feed.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)))
		b.WriteString("\n")
	}

	switch {
	case m.err != nil:
		b.WriteString(m.theme.Footer.Error.Render(m.err.Error()))
		b.WriteString("\n")
	case m.status != "":
		b.WriteString(m.theme.Footer.Status.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.theme.Footer.Help.Render("j/k move • x complete • e empty sections • r reload • q quit"))
	return b.String()
}

// WillChangeContent starts a new feed batch.
func (m *Model) WillChangeContent() {
	m.pending = m.pending[:0]
}

// DidChangeSection records a section insert or delete.
func (m *Model) DidChangeSection(sec section.Section, index int, kind fetch.ChangeKind) {
	m.pending = append(m.pending, fmt.Sprintf("%s section %s@%d", kind, sec, index))
}

// DidChangeObject records a row change.
func (m *Model) DidChangeObject(item *entry.Entry, oldPath *todolist.IndexPath, kind fetch.ChangeKind, newPath *todolist.IndexPath) {
	m.pending = append(m.pending, fmt.Sprintf("%s %q %s->%s", kind, item.Message, pathString(oldPath), pathString(newPath)))
}

// DidChangeContent commits the batch to the feed.
func (m *Model) DidChangeContent() {
	m.feed = append(m.feed, m.pending...)
	if over := len(m.feed) - m.feedSize; over > 0 {
		m.feed = m.feed[over:]
	}
	m.pending = m.pending[:0]
}

func pathString(p *todolist.IndexPath) string {
	if p == nil {
		return "-"
	}
	return p.String()
}
