package options

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"
)

// OutputOptions switch command output to JSON.
type OutputOptions struct {
	JSON bool
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
}

// HandleError reports err as a JSON object on the command's output when JSON
// was asked for. The error is still returned so the process exits non-zero;
// cobra's own error and usage print is silenced to keep stdout parseable.
func (o *OutputOptions) HandleError(cmd *cobra.Command, err error) error {
	if !o.JSON || err == nil {
		return err
	}
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	b, merr := sonic.Marshal(map[string]string{
		"error": err.Error(),
	})
	if merr != nil {
		return fmt.Errorf("%w (encode: %v)", err, merr)
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return err
}
