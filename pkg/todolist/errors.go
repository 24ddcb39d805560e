package todolist

import (
	"errors"
	"fmt"

	"tableflip.dev/todo/pkg/section"
)

var (
	// ErrUnknownSection matches *UnknownSectionError.
	ErrUnknownSection = errors.New("todolist: fetched section not in canonical order")
	// ErrNoBackingItem matches *NoBackingItemError.
	ErrNoBackingItem = errors.New("todolist: placeholder section has no items")
	// ErrIndexOutOfRange is returned for display sections that do not exist.
	ErrIndexOutOfRange = errors.New("todolist: index path out of range")
)

// UnknownSectionError reports a fetched section whose identifier is not part
// of the canonical order. The store and the configuration disagree; this is
// not recoverable by retrying.
type UnknownSectionError struct {
	Name         string
	FetchedIndex int
	// Err is the parse failure, if the name is not a section at all.
	Err error
}

func (e *UnknownSectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("todolist: fetched section %d: %v", e.FetchedIndex, e.Err)
	}
	return fmt.Sprintf("todolist: fetched section %d %q is not in the canonical section order", e.FetchedIndex, e.Name)
}

func (e *UnknownSectionError) Is(target error) bool {
	return target == ErrUnknownSection
}

func (e *UnknownSectionError) Unwrap() error {
	return e.Err
}

// NoBackingItemError is returned when rows of a placeholder section are
// requested.
type NoBackingItemError struct {
	Section      section.Section
	DisplayIndex int
}

func (e *NoBackingItemError) Error() string {
	return fmt.Sprintf("todolist: display section %d (%s) is an empty placeholder", e.DisplayIndex, e.Section)
}

func (e *NoBackingItemError) Is(target error) bool {
	return target == ErrNoBackingItem
}

// InvariantError is the panic value used when the display list and the
// fetched results are out of sync.
type InvariantError struct {
	Msg string
}

func (e *InvariantError) Error() string {
	return "todolist: invariant violated: " + e.Msg
}

func invariant(format string, args ...any) {
	panic(&InvariantError{Msg: fmt.Sprintf(format, args...)})
}
