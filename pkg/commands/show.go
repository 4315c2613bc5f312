package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/whiteboard/pkg/commands/options"
	"tableflip.dev/whiteboard/pkg/config"
	"tableflip.dev/whiteboard/pkg/runner/show"
)

func addShow(topLevel *cobra.Command) {
	so := &options.SourceOptions{}
	bo := &options.BrowseOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "show",
		Short: "print the board as a table",
		Example: `
whiteboard show --demo
whiteboard show --file todo.txt --browse 1234
whiteboard show --file todo.txt --json
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			file := so.File
			if file == "" && !so.Demo {
				cfg, err := config.Load()
				if err != nil {
					return oo.HandleError(cmd, err)
				}
				file = cfg.File
			}
			s := show.Show{
				File:   file,
				Demo:   so.Demo,
				Browse: bo.Path,
				JSON:   oo.JSON,
				Output: cmd.OutOrStdout(),
			}
			return oo.HandleError(cmd, s.Do(cmd.Context()))
		},
	}

	options.AddSourceArgs(cmd, so)
	options.AddBrowseArgs(cmd, bo)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
