package options

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/timeutil"
)

// AddOptions
type AddOptions struct {
	Message   string
	DueString string
	Someday   bool
}

func AddAddArgs(cmd *cobra.Command, o *AddOptions) {
	cmd.Flags().StringVar(&o.DueString, "due", "",
		`Specify a due date: today, tomorrow, a date like 2026-10-20 or an offset like 3d or 1w.`)
	cmd.Flags().BoolVar(&o.Someday, "someday", false,
		"File the entry under Someday.")
}

// GetDue resolves --due relative to now.
func (o *AddOptions) GetDue(now time.Time) (*time.Time, error) {
	if o.DueString == "" {
		return nil, nil
	}
	t, err := timeutil.ParseDue(o.DueString, now)
	if err != nil {
		return nil, fmt.Errorf("--due: %w", err)
	}
	return &t, nil
}

// Validate rejects flag combinations that cannot both hold.
func (o *AddOptions) Validate() error {
	if o.Someday && o.DueString != "" {
		return fmt.Errorf("--someday and --due are mutually exclusive")
	}
	return nil
}
