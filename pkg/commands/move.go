package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/runner/move"
	"tableflip.dev/todo/pkg/runner/refile"
	"tableflip.dev/todo/pkg/section"
)

func addMove(topLevel *cobra.Command) {
	var id, target string

	cmd := &cobra.Command{
		Use:   "move <entry id> <section>",
		Short: "Reschedule a to-do into a section",
		Example: `
todo move <entry id> tomorrow
todo move <entry id> someday
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("requires an entry id and a section")
			}
			id, target = args[0], args[1]
			return nil
		},
		ValidArgsFunction: func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) != 1 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return sectionCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, _, err := load()
			if err != nil {
				return output.HandleError(err)
			}
			s := move.Move{
				ID:          id,
				Section:     target,
				Out:         cmd.OutOrStdout(),
				Persistence: p,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}

func sectionCompletions(toComplete string) []string {
	var names []string
	for _, s := range section.All() {
		if s == section.Overdue {
			continue
		}
		if strings.HasPrefix(s.Name(), strings.ToLower(toComplete)) {
			names = append(names, s.Name())
		}
	}
	return names
}

func addRefile(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "refile",
		Short: "Reclassify to-dos whose due date has passed",
		Example: `
todo refile
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, _, err := load()
			if err != nil {
				return output.HandleError(err)
			}
			s := refile.Refile{
				Out:         cmd.OutOrStdout(),
				Persistence: p,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
