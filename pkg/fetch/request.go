package fetch

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"tableflip.dev/todo/pkg/entry"
	"tableflip.dev/todo/pkg/section"
)

// SortKey selects the intra-section ordering. Sections themselves are always
// ordered by section.CompareNames.
type SortKey string

const (
	// SortOrder orders by Entry.Order.
	SortOrder SortKey = "order"
	// SortCreated orders by creation time.
	SortCreated SortKey = "created"
	// SortMessage orders by message text, case-insensitively.
	SortMessage SortKey = "message"
)

// ErrInvalidRequest wraps every request validation failure.
var ErrInvalidRequest = errors.New("fetch: invalid request")

// Request describes what a ResultsController lists.
type Request struct {
	// Sections limits results to these raw identifiers. Empty means all.
	Sections []string
	// Match keeps entries whose message fuzzy-matches the query.
	Match string
	// SortBy defaults to SortOrder.
	SortBy SortKey
	// Ascending flips the intra-section order; the default is descending,
	// so the most recently ordered entry comes first.
	Ascending bool
	// Prefetch keeps fetched entries in memory so ItemAt never goes back to
	// the store. It has no effect on results.
	Prefetch bool
}

func (r Request) validate() error {
	switch r.SortBy {
	case "", SortOrder, SortCreated, SortMessage:
	default:
		return fmt.Errorf("%w: unknown sort key %q", ErrInvalidRequest, r.SortBy)
	}
	for _, name := range r.Sections {
		if _, err := section.Parse(name); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
	}
	if strings.ContainsAny(r.Match, "\n\r") {
		return fmt.Errorf("%w: match query spans lines", ErrInvalidRequest)
	}
	return nil
}

func (r Request) includes(e *entry.Entry) bool {
	if len(r.Sections) > 0 {
		found := false
		for _, name := range r.Sections {
			if strings.EqualFold(strings.TrimSpace(name), e.Section) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q := strings.TrimSpace(r.Match); q != "" {
		return fuzzy.MatchNormalizedFold(q, e.Message)
	}
	return true
}

func (r Request) less(a, b *entry.Entry) bool {
	var c int
	switch r.SortBy {
	case SortCreated:
		c = a.Created.Compare(b.Created.Time)
	case SortMessage:
		c = strings.Compare(strings.ToLower(a.Message), strings.ToLower(b.Message))
	default:
		c = a.Order - b.Order
	}
	if c == 0 {
		return a.ID < b.ID
	}
	if r.Ascending {
		return c < 0
	}
	return c > 0
}

// group filters entries and splits them into sorted, non-empty sections.
func (r Request) group(all []*entry.Entry) []SectionInfo {
	byName := make(map[string][]*entry.Entry)
	var names []string
	for _, e := range all {
		if !r.includes(e) {
			continue
		}
		if _, ok := byName[e.Section]; !ok {
			names = append(names, e.Section)
		}
		byName[e.Section] = append(byName[e.Section], e)
	}
	sort.Slice(names, func(i, j int) bool {
		return section.CompareNames(names[i], names[j]) < 0
	})
	out := make([]SectionInfo, 0, len(names))
	for _, name := range names {
		items := byName[name]
		sort.SliceStable(items, func(i, j int) bool { return r.less(items[i], items[j]) })
		out = append(out, SectionInfo{Name: name, Items: items})
	}
	return out
}
