package commands

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/fetch"
	"tableflip.dev/todo/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	lo := &options.ListOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "get"},
		Short:   "List to-dos by section",
		Example: `
todo list
todo list --empty
todo list --match milk --show-id
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, sections, err := load()
			if err != nil {
				return output.HandleError(err)
			}
			l := list.List{
				Persistence: p,
				Sections:    sections,
				Match:       lo.Match,
				SortBy:      fetch.SortKey(lo.SortBy),
				ShowEmpty:   lo.ResolveShowEmpty(cmd, viper.GetViper()),
				ShowID:      io.ShowID,
				Out:         cmd.OutOrStdout(),
			}
			return output.HandleError(l.Do(cmd.Context()))
		},
	}

	options.AddListArgs(cmd, lo)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}
