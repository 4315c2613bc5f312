package commands

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/whiteboard/pkg/commands/options"
	"tableflip.dev/whiteboard/pkg/config"
	boardui "tableflip.dev/whiteboard/pkg/runner/board"
)

var errNotTerminal = errors.New("ui: stdout is not a terminal, try `whiteboard show`")

func addUI(topLevel *cobra.Command) {
	so := &options.SourceOptions{}
	to := &options.TransportOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive board",
		Example: `
whiteboard ui --demo
whiteboard ui --file todo.txt --transport journal --journal ~/Dropbox/board
whiteboard ui --file todo.txt --transport redis --redis localhost:6379
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				return errNotTerminal
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := to.Apply(cfg); err != nil {
				return err
			}
			b := boardui.Board{Config: cfg, File: so.File, Demo: so.Demo}
			return b.Do(cmd.Context())
		},
	}

	options.AddSourceArgs(cmd, so)
	options.AddTransportArgs(cmd, to)

	topLevel.AddCommand(cmd)
}
