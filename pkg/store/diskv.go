package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/golang/glog"
	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/todo/pkg/entry"
)

// ErrNotFound is returned by Get when no entry has the requested id.
var ErrNotFound = errors.New("store: entry not found")

// Persistence defines the persistence contract for to-do entries.
type Persistence interface {
	ListAll(ctx context.Context) []*entry.Entry
	Get(ctx context.Context, id string) (*entry.Entry, error)
	Store(e *entry.Entry) error
	Delete(e *entry.Entry) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func (p *persistence) read(key string) (*entry.Entry, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	e := &entry.Entry{}
	if err := json.Unmarshal(val, e); err != nil {
		return nil, err
	}
	if e.Schema == "" {
		e.Schema = entry.CurrentSchema
	}
	e.ID = keyToPathTransform(key).FileName
	return e, nil
}

func (p *persistence) ListAll(ctx context.Context) []*entry.Entry {
	all := make([]*entry.Entry, 0)
	for key := range p.d.Keys(ctx.Done()) {
		e, err := p.read(key)
		if err != nil {
			glog.Warningf("store: skipping %s: %v", key, err)
			continue
		}
		all = append(all, e)
	}
	sortEntries(all)
	return all
}

func (p *persistence) Get(ctx context.Context, id string) (*entry.Entry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("store: entry id required")
	}
	key, ok := p.keyForID(ctx, id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p.read(key)
}

func (p *persistence) keyForID(ctx context.Context, id string) (string, bool) {
	for key := range p.d.Keys(ctx.Done()) {
		if keyToPathTransform(key).FileName == id {
			return key, true
		}
	}
	return "", false
}

func (p *persistence) Store(e *entry.Entry) error {
	if e == nil {
		return errors.New("store: nil entry")
	}
	if e.Schema == "" {
		e.Schema = entry.CurrentSchema
	}
	key := toKey(e)
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if err := p.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (p *persistence) Delete(e *entry.Entry) error {
	if e == nil {
		return errors.New("store: nil entry")
	}
	key := toKey(e)
	if !p.d.Has(key) {
		return fmt.Errorf("%w: %s", ErrNotFound, e.ID)
	}
	return p.d.Erase(key)
}

const layoutISO = "2006-01-02"

func sortEntries(entries []*entry.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		left := entries[i]
		right := entries[j]
		lt := left.Created.Time
		rt := right.Created.Time
		switch {
		case lt.IsZero() && rt.IsZero():
			return left.ID < right.ID
		case lt.IsZero():
			return false
		case rt.IsZero():
			return true
		default:
			if lt.Equal(rt) {
				return left.ID < right.ID
			}
			return lt.Before(rt)
		}
	})
}

// keys look like `2026-10-15-<id>` and land in 2026/10/15/<id> on disk.
func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `created-date-id`, assigning an id if the entry has none.
func toKey(e *entry.Entry) string {
	if e.Created.IsZero() {
		e.Created = entry.Timestamp{Time: nowFunc()}
	}
	if e.ID == "" {
		e.ID = entry.NewID(e.Created.Time)
	}
	return fmt.Sprintf("%s-%s", e.Created.UTC().Format(layoutISO), e.ID)
}
