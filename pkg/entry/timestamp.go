package entry

import (
	"encoding/json"
	"fmt"
	"time"

	"tableflip.dev/todo/pkg/timeutil"
)

const layoutDay = "Mon Jan 2"

// ParseTime parses an RFC3339 timestamp.
func ParseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// Timestamp serialises as an RFC3339 string; the zero time is "".
type Timestamp struct {
	time.Time
}

// At wraps t.
func At(t time.Time) *Timestamp {
	return &Timestamp{Time: t}
}

// SameDay reports whether then falls on the same local calendar day.
func (t Timestamp) SameDay(then time.Time) bool {
	return timeutil.DaysBetween(t.Time, then) == 0
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(fmt.Sprintf("%q", FormatTime(t.Time))), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var timestamp string
	if err := json.Unmarshal(b, &timestamp); err != nil {
		return err
	}
	if timestamp == "" {
		t.Time = time.Time{}
		return nil
	}
	var err error
	t.Time, err = ParseTime(timestamp)
	return err
}

func (t Timestamp) String() string {
	return t.UTC().Format(time.RFC3339)
}

func FormatTime(v time.Time) string {
	return v.UTC().Format(time.RFC3339Nano)
}
