// Package todolist presents fetched to-do sections to a consumer as a fixed
// list of canonical sections, optionally including empty placeholders, and
// translates store change notifications into that display index space.
package todolist

import (
	"fmt"

	"tableflip.dev/todo/pkg/fetch"
	"tableflip.dev/todo/pkg/section"
)

// NoFetchedIndex marks a placeholder display section.
const NoFetchedIndex = -1

// DisplaySection is one section as the consumer sees it.
type DisplaySection struct {
	Section section.Section
	// FetchedIndex is the position of the backing fetched section, or
	// NoFetchedIndex for a placeholder.
	FetchedIndex int
	// Count is the number of rows, resolved when the list was built.
	Count int
}

// HasFetched reports whether the section is backed by fetched data.
func (d DisplaySection) HasFetched() bool {
	return d.FetchedIndex != NoFetchedIndex
}

// Title is the section header.
func (d DisplaySection) Title() string {
	return d.Section.Title()
}

func (d DisplaySection) String() string {
	if !d.HasFetched() {
		return fmt.Sprintf("%s(empty)", d.Section)
	}
	return fmt.Sprintf("%s(%d:%d)", d.Section, d.FetchedIndex, d.Count)
}

// IndexPath addresses a row in display space. Rows are the same as in the
// fetched space; only sections are remapped.
type IndexPath struct {
	Section int
	Row     int
}

func (p IndexPath) String() string {
	return fmt.Sprintf("[%d,%d]", p.Section, p.Row)
}

// fetchedPath converts p using the display section's fetched index.
func (p IndexPath) fetchedPath(sec DisplaySection) fetch.IndexPath {
	return fetch.IndexPath{Section: sec.FetchedIndex, Row: p.Row}
}
