package commands

import (
	"flag"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"tableflip.dev/todo/pkg/commands/options"
	"tableflip.dev/todo/pkg/section"
	"tableflip.dev/todo/pkg/store"
)

var (
	output = &options.OutputOptions{}
)

func init() {
	// glog registers -v, -logtostderr and friends on the go flag set.
	pflag.CommandLine.AddGoFlagSet(flag.CommandLine)
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: base.Wrap80("A to-do list grouped into Overdue, Today, Tomorrow, Upcoming, Someday and Done."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().AddFlagSet(pflag.CommandLine)
	options.AddOutputArg(cmd, output)

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addAdd(topLevel)
	addList(topLevel)
	addComplete(topLevel)
	addRemove(topLevel)
	addMove(topLevel)
	addRefile(topLevel)
	addSections(topLevel)
	addWatch(topLevel)
	addCompletions(topLevel)
	addVersion(topLevel)
}

// load reads configuration and opens the store.
func load() (store.Persistence, section.Configuration, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, nil, err
	}
	return p, section.ViperConfiguration{V: viper.GetViper()}, nil
}
