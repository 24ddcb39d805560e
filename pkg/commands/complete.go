package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/runner/complete"
	"tableflip.dev/todo/pkg/runner/remove"
)

func idArg(io *options.IDOptions) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) < 1 {
			return errors.New("requires an entry id")
		}
		io.ID = strings.Join(args, " ")
		return nil
	}
}

func addComplete(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "complete <entry id>",
		Aliases: []string{"completed", "done"},
		Short:   "Mark a to-do done",
		Example: `
todo complete <entry id>
`,
		Args: idArg(io),
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, _, err := load()
			if err != nil {
				return output.HandleError(err)
			}
			s := complete.Complete{
				ID:          io.ID,
				Out:         cmd.OutOrStdout(),
				Persistence: p,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}

func addRemove(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "remove <entry id>",
		Aliases: []string{"rm", "delete"},
		Short:   "Delete a to-do",
		Example: `
todo remove <entry id>
`,
		Args: idArg(io),
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, _, err := load()
			if err != nil {
				return output.HandleError(err)
			}
			s := remove.Remove{
				ID:          io.ID,
				Out:         cmd.OutOrStdout(),
				Persistence: p,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
