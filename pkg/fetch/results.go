package fetch

import (
	"context"
	"fmt"

	"github.com/golang/glog"

	"tableflip.dev/todo/pkg/entry"
	"tableflip.dev/todo/pkg/store"
)

// ResultsController lists the entries of a Persistence matching a Request,
// grouped into sections. Call Refresh after the store changes to re-query and
// notify the delegate of the differences. It is not safe for concurrent use.
type ResultsController struct {
	persistence store.Persistence
	request     Request

	sections []SectionInfo
	delegate Delegate
}

var _ Results = (*ResultsController)(nil)

// NewResultsController creates a controller. Nothing is read until
// PerformFetch.
func NewResultsController(p store.Persistence, req Request) *ResultsController {
	return &ResultsController{persistence: p, request: req}
}

// Request returns the request the controller was created with.
func (c *ResultsController) Request() Request {
	return c.request
}

// SetDelegate registers the single change observer. Pass nil to detach.
func (c *ResultsController) SetDelegate(d Delegate) {
	c.delegate = d
}

// PerformFetch runs the query and replaces the current results without
// notifying the delegate.
func (c *ResultsController) PerformFetch(ctx context.Context) error {
	sections, err := c.query(ctx)
	if err != nil {
		return err
	}
	c.sections = sections
	glog.V(1).Infof("fetch: performed fetch, %d sections", len(sections))
	return nil
}

func (c *ResultsController) query(ctx context.Context) ([]SectionInfo, error) {
	if c.persistence == nil {
		return nil, fmt.Errorf("fetch: no persistence configured")
	}
	if err := c.request.validate(); err != nil {
		return nil, err
	}
	return c.request.group(c.persistence.ListAll(ctx)), nil
}

// Sections returns the current non-empty sections. The slice must not be
// modified.
func (c *ResultsController) Sections() []SectionInfo {
	return c.sections
}

// FetchedObjects returns every fetched entry in section then row order.
func (c *ResultsController) FetchedObjects() []*entry.Entry {
	var out []*entry.Entry
	for _, sec := range c.sections {
		out = append(out, sec.Items...)
	}
	return out
}

// ItemAt returns the entry at path.
func (c *ResultsController) ItemAt(path IndexPath) (*entry.Entry, error) {
	if path.Section < 0 || path.Section >= len(c.sections) {
		return nil, fmt.Errorf("%w: %s", ErrIndexOutOfRange, path)
	}
	items := c.sections[path.Section].Items
	if path.Row < 0 || path.Row >= len(items) {
		return nil, fmt.Errorf("%w: %s", ErrIndexOutOfRange, path)
	}
	e := items[path.Row]
	if c.request.Prefetch {
		return e, nil
	}
	return c.persistence.Get(context.Background(), e.ID)
}

// Refresh re-runs the query and reports every difference to the delegate in
// a single batch. Nothing is reported when the results are unchanged.
func (c *ResultsController) Refresh(ctx context.Context) error {
	next, err := c.query(ctx)
	if err != nil {
		return err
	}
	prev := c.sections
	cs := diff(prev, next)
	c.sections = next
	glog.V(1).Infof("fetch: refresh, %d sections, %d section changes, %d object changes",
		len(next), len(cs.sections), len(cs.objects))
	if cs.empty() || c.delegate == nil {
		return nil
	}

	c.delegate.WillChangeContent()
	for _, sc := range cs.sections {
		c.delegate.DidChangeSection(sc.info, sc.index, sc.kind)
	}
	for _, oc := range cs.objects {
		c.delegate.DidChangeObject(oc.item, oc.oldPath, oc.kind, oc.newPath)
	}
	c.delegate.DidChangeContent()
	return nil
}
