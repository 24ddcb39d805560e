package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/todo/pkg/runner/sections"
)

func addSections(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "sections",
		Short: "Show the configured sections and their counts",
		Example: `
todo sections
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, order, err := load()
			if err != nil {
				return output.HandleError(err)
			}
			s := sections.Sections{
				Sections:    order,
				Out:         cmd.OutOrStdout(),
				Persistence: p,
			}
			return output.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
