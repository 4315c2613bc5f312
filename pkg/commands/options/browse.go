package options

import (
	"github.com/spf13/cobra"
)

// BrowseOptions
type BrowseOptions struct {
	Path []string
}

func AddBrowseArgs(cmd *cobra.Command, o *BrowseOptions) {
	cmd.Flags().StringSliceVarP(&o.Path, "browse", "b", nil,
		"Task ids to browse into, outermost first.")
}
