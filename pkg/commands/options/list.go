package options

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tableflip.dev/todo/pkg/fetch"
)

// ShowEmptyKey is the config key behind --empty.
const ShowEmptyKey = "show_empty"

// ListOptions
type ListOptions struct {
	ShowEmpty bool
	Match     string
	SortBy    string
}

func AddListArgs(cmd *cobra.Command, o *ListOptions) {
	AddEmptyArgs(cmd, o)
	cmd.Flags().StringVarP(&o.Match, "match", "m", "",
		"Only list entries whose message fuzzy-matches the query.")
	cmd.Flags().StringVar(&o.SortBy, "sort", string(fetch.SortOrder),
		"Order within a section. One of 'order', 'created' or 'message'.")
}

func AddEmptyArgs(cmd *cobra.Command, o *ListOptions) {
	cmd.Flags().BoolVarP(&o.ShowEmpty, "empty", "e", false,
		"Show empty sections as placeholders. Defaults to the show_empty config value.")
}

// ResolveShowEmpty applies the show_empty config value unless --empty was
// given explicitly.
func (o *ListOptions) ResolveShowEmpty(cmd *cobra.Command, v *viper.Viper) bool {
	if f := cmd.Flags().Lookup("empty"); f != nil && f.Changed {
		return o.ShowEmpty
	}
	return v.GetBool(ShowEmptyKey)
}
