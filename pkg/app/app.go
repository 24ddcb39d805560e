// Package app provides the to-do operations shared by the CLI and the
// interactive view.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang/glog"

	"tableflip.dev/todo/pkg/entry"
	"tableflip.dev/todo/pkg/section"
	"tableflip.dev/todo/pkg/store"
)

var (
	// ErrEmptyMessage is returned when adding an entry without text.
	ErrEmptyMessage = errors.New("app: message required")
	// ErrNotMovable is returned for sections entries cannot be moved into.
	ErrNotMovable = errors.New("app: cannot move entries into section")
)

// Service wraps persistence so UIs and CLIs share entry transformations.
type Service struct {
	Persistence store.Persistence
	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) check() error {
	if s.Persistence == nil {
		return errors.New("app: no persistence configured")
	}
	return nil
}

// AddOptions are the optional attributes of a new entry.
type AddOptions struct {
	Due     *time.Time
	Someday bool
}

// Add creates, classifies and stores a new entry. It is placed first in its
// section.
func (s *Service) Add(ctx context.Context, message string, opts AddOptions) (*entry.Entry, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}
	now := s.now()
	e := entry.New(message, now)
	if opts.Due != nil {
		e.Due = entry.At(*opts.Due)
	}
	e.Someday = opts.Someday
	s.file(ctx, e, e.Classify(now))
	if err := s.Persistence.Store(e); err != nil {
		return nil, err
	}
	return e, nil
}

// Complete marks the entry done.
func (s *Service) Complete(ctx context.Context, id string) (*entry.Entry, error) {
	return s.Move(ctx, id, section.Done)
}

// Remove deletes the entry.
func (s *Service) Remove(ctx context.Context, id string) (*entry.Entry, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	e, err := s.Persistence.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Persistence.Delete(e); err != nil {
		return nil, err
	}
	return e, nil
}

// Move reschedules the entry so it classifies into target: Today and Tomorrow
// set the due date (Today keeps a due time already set for today), Upcoming
// sets it a week out, Someday clears it and Done completes the entry. Entries
// cannot be moved into Overdue.
func (s *Service) Move(ctx context.Context, id string, target section.Section) (*entry.Entry, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	e, err := s.Persistence.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	switch target {
	case section.Today:
		if e.Due == nil || !e.Due.SameDay(now) {
			e.Due = entry.At(now)
		}
		e.Someday, e.Completed = false, nil
	case section.Tomorrow:
		e.Due, e.Someday, e.Completed = entry.At(now.AddDate(0, 0, 1)), false, nil
	case section.Upcoming:
		e.Due, e.Someday, e.Completed = entry.At(now.AddDate(0, 0, 7)), false, nil
	case section.Someday:
		e.Due, e.Someday, e.Completed = nil, true, nil
	case section.Done:
		if !e.IsComplete() {
			e.Completed = entry.At(now)
		}
	default:
		return nil, fmt.Errorf("%w %s", ErrNotMovable, target)
	}
	if e.Section != target.Name() {
		s.file(ctx, e, target)
	}
	if err := s.Persistence.Store(e); err != nil {
		return nil, err
	}
	return e, nil
}

// Refile reclassifies every entry as of now, storing those whose section
// changed (for example because their due date passed). It returns the number
// of entries moved.
func (s *Service) Refile(ctx context.Context) (int, error) {
	if err := s.check(); err != nil {
		return 0, err
	}
	now := s.now()
	moved := 0
	for _, e := range s.Persistence.ListAll(ctx) {
		target := e.Classify(now)
		if e.Section == target.Name() {
			continue
		}
		glog.V(1).Infof("app: refile %s %s -> %s", e.ID, e.Section, target)
		s.file(ctx, e, target)
		if err := s.Persistence.Store(e); err != nil {
			return moved, err
		}
		moved++
	}
	return moved, nil
}

// file assigns target and puts the entry at the top of that section.
func (s *Service) file(ctx context.Context, e *entry.Entry, target section.Section) {
	top := 0
	for _, other := range s.Persistence.ListAll(ctx) {
		if other.ID != e.ID && other.Section == target.Name() && other.Order > top {
			top = other.Order
		}
	}
	e.Section = target.Name()
	e.Order = top + 1
}
