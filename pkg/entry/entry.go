// Package entry defines the to-do items listed in sections.
package entry

import (
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"tableflip.dev/todo/pkg/section"
	"tableflip.dev/todo/pkg/timeutil"
)

// CurrentSchema is written to every stored entry.
const CurrentSchema = "todo.v1"

// Entry is a single to-do. Section holds the raw section identifier the entry
// is filed under; Order is the intra-section ordering key (higher first).
type Entry struct {
	Schema    string     `json:"schema,omitempty"`
	ID        string     `json:"id"`
	Message   string     `json:"message"`
	Section   string     `json:"section"`
	Order     int        `json:"order"`
	Someday   bool       `json:"someday,omitempty"`
	Created   Timestamp  `json:"created"`
	Due       *Timestamp `json:"due,omitempty"`
	Completed *Timestamp `json:"completed,omitempty"`
}

// New creates an open entry with a fresh ID and creation time. The section is
// left empty; callers classify or assign it before storing.
func New(message string, now time.Time) *Entry {
	return &Entry{
		Schema:  CurrentSchema,
		ID:      NewID(now),
		Message: strings.TrimSpace(message),
		Created: Timestamp{Time: now},
	}
}

// NewID returns a sortable identifier for an entry created at now.
func NewID(now time.Time) string {
	return strings.ToLower(ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()).String())
}

// IsComplete reports whether the entry has been completed.
func (e *Entry) IsComplete() bool {
	return e.Completed != nil && !e.Completed.IsZero()
}

// Classify derives the section an entry belongs in at the given time.
func (e *Entry) Classify(now time.Time) section.Section {
	switch {
	case e.IsComplete():
		return section.Done
	case e.Someday || e.Due == nil || e.Due.IsZero():
		return section.Someday
	}
	days := timeutil.DaysBetween(now, e.Due.Time)
	switch {
	case days < 0:
		return section.Overdue
	case days == 0:
		return section.Today
	case days == 1:
		return section.Tomorrow
	default:
		return section.Upcoming
	}
}

// Clone returns a deep copy.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	cp := *e
	if e.Due != nil {
		d := *e.Due
		cp.Due = &d
	}
	if e.Completed != nil {
		c := *e.Completed
		cp.Completed = &c
	}
	return &cp
}

// Mark is the checkbox rendered in front of the message.
func (e *Entry) Mark() string {
	if e.IsComplete() {
		return "[x]"
	}
	return "[ ]"
}

func (e *Entry) String() string {
	if e.Due != nil && !e.IsComplete() {
		return fmt.Sprintf("%s %s (due %s)", e.Mark(), e.Message, e.Due.Local().Format(layoutDay))
	}
	return fmt.Sprintf("%s %s", e.Mark(), e.Message)
}
