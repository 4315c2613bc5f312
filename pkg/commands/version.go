package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	goversion "go.hein.dev/go-version"
)

// Set at build time with -ldflags "-X tableflip.dev/whiteboard/pkg/commands.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func addVersion(topLevel *cobra.Command) {
	shortened := false
	output := "json"
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Get whiteboard version.",
		Example: `
whiteboard version
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch output {
			case goversion.JSON, goversion.YAML:
			default:
				return fmt.Errorf("version: unknown output %q, want json or yaml", output)
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), goversion.FuncWithOutput(shortened, version, commit, date, output))
			return err
		},
	}

	cmd.Flags().BoolVarP(&shortened, "short", "s", false, "Print just the version number.")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format. One of 'yaml' or 'json'.")

	topLevel.AddCommand(cmd)
}
