package section

import (
	"errors"
	"fmt"
	"sort"

	"github.com/spf13/viper"
)

// Configuration supplies the canonical section order for the current list
// configuration. Implementations may return a different list on each call.
type Configuration interface {
	CanonicalOrder() ([]Section, error)
}

// Static is a fixed Configuration.
type Static []Section

// CanonicalOrder implements Configuration.
func (s Static) CanonicalOrder() ([]Section, error) {
	out := make([]Section, len(s))
	copy(out, s)
	return out, nil
}

// ErrNoSections is returned by Names when a filter leaves nothing to show.
var ErrNoSections = errors.New("section: no configured section selected")

// Names returns the raw identifiers of the canonical order, restricted to
// filter when it is non-empty. A nil cfg selects every section. The result is
// what a fetch should be limited to so it never yields a section outside the
// configuration.
func Names(cfg Configuration, filter ...string) ([]string, error) {
	order := All()
	if cfg != nil {
		var err error
		if order, err = cfg.CanonicalOrder(); err != nil {
			return nil, err
		}
	}
	wanted := make(map[Section]bool, len(filter))
	for _, raw := range filter {
		s, err := Parse(raw)
		if err != nil {
			return nil, err
		}
		wanted[s] = true
	}
	names := make([]string, 0, len(order))
	for _, s := range order {
		if len(filter) == 0 || wanted[s] {
			names = append(names, s.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrNoSections, filter)
	}
	return names, nil
}

// ConfigKey is the viper key listing the sections a list shows.
const ConfigKey = "sections"

// ViperConfiguration reads the section list from viper on every call, so edits
// to the config file or environment take effect on the next regeneration.
type ViperConfiguration struct {
	V *viper.Viper
}

// CanonicalOrder implements Configuration. An empty or unset key selects all
// sections. Unknown names are reported as *ParseError.
func (c ViperConfiguration) CanonicalOrder() ([]Section, error) {
	v := c.V
	if v == nil {
		v = viper.GetViper()
	}
	raw := v.GetStringSlice(ConfigKey)
	if len(raw) == 0 {
		return All(), nil
	}
	return Normalize(raw)
}

// Normalize parses raw identifiers and returns them deduplicated in canonical
// ascending order.
func Normalize(raw []string) ([]Section, error) {
	seen := make(map[Section]struct{}, len(raw))
	out := make([]Section, 0, len(raw))
	for _, r := range raw {
		s, err := Parse(r)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}
