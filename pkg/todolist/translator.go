package todolist

import (
	"github.com/golang/glog"

	"tableflip.dev/todo/pkg/entry"
	"tableflip.dev/todo/pkg/fetch"
	"tableflip.dev/todo/pkg/section"
)

// storeDelegate receives fetched-space notifications and forwards them to the
// controller's delegate in display space.
type storeDelegate struct {
	c *Controller
}

var _ fetch.Delegate = (*storeDelegate)(nil)

func (d *storeDelegate) WillChangeContent() {
	c := d.c
	c.oldSections = c.sections
	glog.V(2).Infof("todolist: batch begin, %d display sections", len(c.sections))
	if c.delegate != nil {
		c.delegate.WillChangeContent()
	}
}

func (d *storeDelegate) DidChangeSection(info fetch.SectionInfo, index int, kind fetch.ChangeKind) {
	c := d.c
	c.sections = c.mustRegenerate()

	// With placeholders shown the set of display sections does not depend on
	// which sections are fetched.
	if c.showEmpty {
		glog.V(2).Infof("todolist: swallowed section %s %q@%d", kind, info.Name, index)
		return
	}
	sec, err := section.Parse(info.Name)
	if err != nil {
		invariant("section change for unparseable section %q: %v", info.Name, err)
	}
	if c.delegate != nil {
		c.delegate.DidChangeSection(sec, index, kind)
	}
}

func (d *storeDelegate) DidChangeObject(item *entry.Entry, oldPath *fetch.IndexPath, kind fetch.ChangeKind, newPath *fetch.IndexPath) {
	c := d.c
	oldDisplay := translate(oldPath, c.oldSections, "old")
	newDisplay := translate(newPath, c.sections, "new")
	glog.V(2).Infof("todolist: object %s %v->%v as %v->%v", kind, oldPath, newPath, oldDisplay, newDisplay)
	if c.delegate != nil {
		c.delegate.DidChangeObject(item, oldDisplay, kind, newDisplay)
	}
}

func (d *storeDelegate) DidChangeContent() {
	c := d.c
	// Refresh counts for batches that changed rows but no sections.
	c.sections = c.mustRegenerate()
	c.oldSections = c.sections
	glog.V(2).Infof("todolist: batch end, %d display sections", len(c.sections))
	if c.delegate != nil {
		c.delegate.DidChangeContent()
	}
}

func translate(path *fetch.IndexPath, sections []DisplaySection, which string) *IndexPath {
	if path == nil {
		return nil
	}
	idx, ok := MapFetchedSection(path.Section, sections)
	if !ok {
		invariant("%s fetched path %s has no display section in %v", which, path, sections)
	}
	return &IndexPath{Section: idx, Row: path.Row}
}

// toggle publishes next as the display list under the new visibility, with
// one section notification per section whose membership differs: deletes at
// their index before the change, then inserts at their index after it.
func (c *Controller) toggle(show bool, next []DisplaySection) {
	removed, added := membershipChanges(c.sections, next)
	glog.V(1).Infof("todolist: show empty sections %t, %d removed, %d added", show, len(removed), len(added))

	c.oldSections = c.sections
	if c.delegate != nil {
		c.delegate.WillChangeContent()
		for _, idx := range removed {
			c.delegate.DidChangeSection(c.sections[idx].Section, idx, fetch.Delete)
		}
		for _, idx := range added {
			c.delegate.DidChangeSection(next[idx].Section, idx, fetch.Insert)
		}
	}

	c.showEmpty = show
	c.sections = next
	c.oldSections = next

	if c.delegate != nil {
		c.delegate.DidChangeContent()
	}
}
