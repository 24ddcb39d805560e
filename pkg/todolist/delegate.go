package todolist

import (
	"tableflip.dev/todo/pkg/entry"
	"tableflip.dev/todo/pkg/fetch"
	"tableflip.dev/todo/pkg/section"
)

// Delegate receives changes in display-index space. Deleted sections and old
// paths refer to the display list before the batch; inserted sections and new
// paths refer to it after the batch.
type Delegate interface {
	WillChangeContent()
	DidChangeSection(sec section.Section, index int, kind fetch.ChangeKind)
	DidChangeObject(item *entry.Entry, oldPath *IndexPath, kind fetch.ChangeKind, newPath *IndexPath)
	DidChangeContent()
}

// DelegateFuncs adapts optional callbacks to Delegate. A nil field means the
// caller is not interested in that notification.
type DelegateFuncs struct {
	WillChange     func()
	SectionChanged func(sec section.Section, index int, kind fetch.ChangeKind)
	ObjectChanged  func(item *entry.Entry, oldPath *IndexPath, kind fetch.ChangeKind, newPath *IndexPath)
	DidChange      func()
}

var _ Delegate = DelegateFuncs{}

func (f DelegateFuncs) WillChangeContent() {
	if f.WillChange != nil {
		f.WillChange()
	}
}

func (f DelegateFuncs) DidChangeSection(sec section.Section, index int, kind fetch.ChangeKind) {
	if f.SectionChanged != nil {
		f.SectionChanged(sec, index, kind)
	}
}

func (f DelegateFuncs) DidChangeObject(item *entry.Entry, oldPath *IndexPath, kind fetch.ChangeKind, newPath *IndexPath) {
	if f.ObjectChanged != nil {
		f.ObjectChanged(item, oldPath, kind, newPath)
	}
}

func (f DelegateFuncs) DidChangeContent() {
	if f.DidChange != nil {
		f.DidChange()
	}
}
