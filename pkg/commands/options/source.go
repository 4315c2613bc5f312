package options

import (
	"github.com/spf13/cobra"
)

// SourceOptions select the todo.txt file a board is built from.
type SourceOptions struct {
	File string
	Demo bool
}

func AddSourceArgs(cmd *cobra.Command, o *SourceOptions) {
	cmd.Flags().StringVarP(&o.File, "file", "f", "",
		`todo.txt file to load, defaults to the "file" config value.`)
	cmd.Flags().BoolVar(&o.Demo, "demo", false,
		"Show the built-in sample board instead of a file.")
}
