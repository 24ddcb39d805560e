package commands

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	ao := &options.AddOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "add <message>",
		Short: "Add a to-do",
		Example: `
todo add call mom
todo add --due 2026-10-20 renew passport
todo add --someday learn the cello
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a message")
			}
			ao.Message = strings.Join(args, " ")
			return ao.Validate()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			due, err := ao.GetDue(time.Now())
			if err != nil {
				return output.HandleError(err)
			}
			p, _, err := load()
			if err != nil {
				return output.HandleError(err)
			}
			s := add.Add{
				Message:     ao.Message,
				Due:         due,
				Someday:     ao.Someday,
				ShowID:      io.ShowID,
				Out:         cmd.OutOrStdout(),
				Persistence: p,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddAddArgs(cmd, ao)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
