package commands

import (
	"os"
	"os/signal"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/runner/watch"
)

func addWatch(topLevel *cobra.Command) {
	lo := &options.ListOptions{}
	var plain bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow the list as it changes",
		Long: `Follow the list as entries are added, completed or moved.

On a terminal this opens an interactive view: j/k move, x completes the
selected entry, e toggles empty sections, r reloads and q quits. Otherwise
every change is printed as a batch of section and row notifications.`,
		Example: `
todo watch
todo watch --empty
todo watch --plain | tee changes.log
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, sections, err := load()
			if err != nil {
				return output.HandleError(err)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			w := watch.Watch{
				Sections:    sections,
				ShowEmpty:   lo.ResolveShowEmpty(cmd, viper.GetViper()),
				Interactive: !plain && isTerminal(os.Stdout),
				Out:         cmd.OutOrStdout(),
				Persistence: p,
			}
			return output.HandleError(w.Do(ctx))
		},
	}

	options.AddEmptyArgs(cmd, lo)
	cmd.Flags().BoolVar(&plain, "plain", false,
		"Print notifications even on a terminal.")

	topLevel.AddCommand(cmd)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
