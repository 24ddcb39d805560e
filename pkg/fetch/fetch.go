// Package fetch implements a sorted, sectioned view over stored entries that
// reports changes as begin/section/object/end notifications in its own
// (sparse) index space. Only sections holding at least one entry are listed.
package fetch

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/todo/pkg/entry"
)

// ChangeKind enumerates the kinds of section and object changes.
type ChangeKind int

const (
	// Insert reports a new section or object.
	Insert ChangeKind = iota + 1
	// Delete reports a removed section or object.
	Delete
	// Update reports an object whose content changed in place.
	Update
	// Move reports an object whose position changed.
	Move
)

func (k ChangeKind) String() string {
	switch k {
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Update:
		return "update"
	case Move:
		return "move"
	default:
		return fmt.Sprintf("change(%d)", int(k))
	}
}

// IndexPath addresses a row within a fetched section.
type IndexPath struct {
	Section int
	Row     int
}

func (p IndexPath) String() string {
	return fmt.Sprintf("[%d,%d]", p.Section, p.Row)
}

// SectionInfo is one non-empty fetched section.
type SectionInfo struct {
	// Name is the raw section identifier shared by every item.
	Name  string
	Items []*entry.Entry
}

// Count is the number of items in the section.
func (s SectionInfo) Count() int {
	return len(s.Items)
}

// ErrIndexOutOfRange is returned for index paths outside the fetched results.
var ErrIndexOutOfRange = errors.New("fetch: index path out of range")

// Delegate receives change notifications in fetched-index space. Within one
// WillChangeContent/DidChangeContent batch, old paths and deleted section
// indices refer to the state before the batch and new paths and inserted
// section indices to the state after it. Sections() already returns the
// post-batch state while the notifications are delivered.
type Delegate interface {
	WillChangeContent()
	DidChangeSection(info SectionInfo, index int, kind ChangeKind)
	DidChangeObject(item *entry.Entry, oldPath *IndexPath, kind ChangeKind, newPath *IndexPath)
	DidChangeContent()
}

// Results is the observed-store contract consumed by list controllers.
type Results interface {
	PerformFetch(ctx context.Context) error
	Sections() []SectionInfo
	ItemAt(path IndexPath) (*entry.Entry, error)
	SetDelegate(d Delegate)
}
