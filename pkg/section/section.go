// Package section defines the canonical sections a to-do list is grouped into.
package section

import (
	"fmt"
	"strings"
)

// Section identifies one canonical list section. The zero value is Overdue;
// ordinals are stable and define the canonical ascending order.
type Section int

const (
	// Overdue holds open entries whose due date has passed.
	Overdue Section = iota
	// Today holds open entries due today.
	Today
	// Tomorrow holds open entries due tomorrow.
	Tomorrow
	// Upcoming holds open entries due after tomorrow.
	Upcoming
	// Someday holds open entries without a due date.
	Someday
	// Done holds completed entries.
	Done
)

var (
	names  = [...]string{"overdue", "today", "tomorrow", "upcoming", "someday", "done"}
	titles = [...]string{"Overdue", "Today", "Tomorrow", "Upcoming", "Someday", "Done"}
)

// All returns every canonical section in ascending order.
func All() []Section {
	return []Section{Overdue, Today, Tomorrow, Upcoming, Someday, Done}
}

// Valid reports whether s is one of the known sections.
func (s Section) Valid() bool {
	return s >= Overdue && s <= Done
}

// Name is the raw identifier used when persisting entries.
func (s Section) Name() string {
	if !s.Valid() {
		return fmt.Sprintf("section(%d)", int(s))
	}
	return names[s]
}

// Title is the human readable header for the section.
func (s Section) Title() string {
	if !s.Valid() {
		return s.Name()
	}
	return titles[s]
}

func (s Section) String() string {
	return s.Name()
}

// ParseError reports a raw identifier that does not name a section.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("section: unknown section %q", e.Raw)
}

// Parse converts a raw identifier (or title, case-insensitively) to a Section.
func Parse(raw string) (Section, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	for i, name := range names {
		if name == key {
			return Section(i), nil
		}
	}
	return Overdue, &ParseError{Raw: raw}
}

// MustParse parses the input and panics on error. Intended for tests/config.
func MustParse(raw string) Section {
	s, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// CompareNames orders raw identifiers the way a sorted store lists them:
// known sections by ordinal, unknown names after every known one, by name.
func CompareNames(a, b string) int {
	sa, errA := Parse(a)
	sb, errB := Parse(b)
	switch {
	case errA == nil && errB == nil:
		return int(sa) - int(sb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}
