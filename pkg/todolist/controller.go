package todolist

import (
	"context"
	"fmt"

	"github.com/golang/glog"

	"tableflip.dev/todo/pkg/entry"
	"tableflip.dev/todo/pkg/fetch"
	"tableflip.dev/todo/pkg/section"
)

// Controller owns the subscription to a fetch.Results, the current display
// list and the placeholder visibility flag. All methods, and the store's
// notifications, must be called from one goroutine.
type Controller struct {
	results  fetch.Results
	config   section.Configuration
	delegate Delegate

	showEmpty   bool
	sections    []DisplaySection
	oldSections []DisplaySection
}

// Option configures a Controller.
type Option func(*Controller)

// WithDelegate sets the consumer receiving display-space notifications.
func WithDelegate(d Delegate) Option {
	return func(c *Controller) {
		c.delegate = d
	}
}

// WithShowsEmptySections sets the initial placeholder visibility.
func WithShowsEmptySections(show bool) Option {
	return func(c *Controller) {
		c.showEmpty = show
	}
}

// New fetches results, builds the display list and subscribes to changes.
// A failed fetch or a fetched section outside the canonical order is
// returned as an error.
func New(ctx context.Context, results fetch.Results, cfg section.Configuration, opts ...Option) (*Controller, error) {
	if results == nil {
		return nil, fmt.Errorf("todolist: no results configured")
	}
	if cfg == nil {
		cfg = section.Static(section.All())
	}
	c := &Controller{results: results, config: cfg}
	for _, opt := range opts {
		opt(c)
	}
	if err := results.PerformFetch(ctx); err != nil {
		return nil, fmt.Errorf("todolist: fetch: %w", err)
	}
	sections, err := c.regenerate(c.showEmpty)
	if err != nil {
		return nil, err
	}
	c.sections = sections
	c.oldSections = sections
	results.SetDelegate(&storeDelegate{c: c})
	return c, nil
}

// SetDelegate replaces the consumer. Nil detaches it.
func (c *Controller) SetDelegate(d Delegate) {
	c.delegate = d
}

// ShowsEmptySections reports whether placeholders are shown.
func (c *Controller) ShowsEmptySections() bool {
	return c.showEmpty
}

// DisplaySections returns a copy of the current display list.
func (c *Controller) DisplaySections() []DisplaySection {
	out := make([]DisplaySection, len(c.sections))
	copy(out, c.sections)
	return out
}

// NumberOfSections is the length of the display list.
func (c *Controller) NumberOfSections() int {
	return len(c.sections)
}

// NumberOfRows is the row count of a display section, 0 for placeholders and
// out-of-range indices.
func (c *Controller) NumberOfRows(sectionIndex int) int {
	if sectionIndex < 0 || sectionIndex >= len(c.sections) {
		return 0
	}
	return c.sections[sectionIndex].Count
}

// AllItems returns every fetched entry in section order, then row order.
func (c *Controller) AllItems() []*entry.Entry {
	var out []*entry.Entry
	for _, sec := range c.results.Sections() {
		out = append(out, sec.Items...)
	}
	return out
}

// FetchedIndexPath converts a display path to the fetched space. Placeholder
// sections return *NoBackingItemError.
func (c *Controller) FetchedIndexPath(path IndexPath) (fetch.IndexPath, error) {
	if path.Section < 0 || path.Section >= len(c.sections) {
		return fetch.IndexPath{}, fmt.Errorf("%w: %s", ErrIndexOutOfRange, path)
	}
	sec := c.sections[path.Section]
	if !sec.HasFetched() {
		return fetch.IndexPath{}, &NoBackingItemError{Section: sec.Section, DisplayIndex: path.Section}
	}
	return path.fetchedPath(sec), nil
}

// DisplayIndexPath converts a fetched path to the display space.
func (c *Controller) DisplayIndexPath(path fetch.IndexPath) (IndexPath, bool) {
	idx, ok := MapFetchedSection(path.Section, c.sections)
	if !ok {
		return IndexPath{}, false
	}
	return IndexPath{Section: idx, Row: path.Row}, true
}

// ItemAt returns the entry at a display path. Calling it for a placeholder
// section returns *NoBackingItemError (matching ErrNoBackingItem).
func (c *Controller) ItemAt(path IndexPath) (*entry.Entry, error) {
	fp, err := c.FetchedIndexPath(path)
	if err != nil {
		return nil, err
	}
	return c.results.ItemAt(fp)
}

// Reload re-runs the store query and rebuilds the display list. No change
// notifications are sent; consumers should redraw everything.
func (c *Controller) Reload(ctx context.Context) error {
	if err := c.results.PerformFetch(ctx); err != nil {
		return fmt.Errorf("todolist: fetch: %w", err)
	}
	sections, err := c.regenerate(c.showEmpty)
	if err != nil {
		return err
	}
	c.sections = sections
	c.oldSections = sections
	glog.V(1).Infof("todolist: reloaded, %d display sections", len(sections))
	return nil
}

// SetShowsEmptySections toggles placeholder visibility, notifying the
// delegate of the inserted or deleted placeholder sections in one batch.
// Setting the current value is a no-op. On error nothing changes and no
// notification is sent.
func (c *Controller) SetShowsEmptySections(show bool) error {
	if show == c.showEmpty {
		return nil
	}
	next, err := c.regenerate(show)
	if err != nil {
		return err
	}
	c.toggle(show, next)
	return nil
}

func (c *Controller) regenerate(showEmpty bool) ([]DisplaySection, error) {
	order, err := c.config.CanonicalOrder()
	if err != nil {
		return nil, fmt.Errorf("todolist: canonical order: %w", err)
	}
	return Regenerate(showEmpty, c.results.Sections(), order)
}

// mustRegenerate is used from store callbacks, which have no way to report
// errors back.
func (c *Controller) mustRegenerate() []DisplaySection {
	sections, err := c.regenerate(c.showEmpty)
	if err != nil {
		panic(err)
	}
	return sections
}
