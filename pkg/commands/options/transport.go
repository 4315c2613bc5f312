package options

import (
	"fmt"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"tableflip.dev/whiteboard/pkg/config"
)

// TransportOptions override the relay settings from the config file.
type TransportOptions struct {
	Transport string
	Journal   string
	RedisAddr string
	Log       string
	Debug     bool
}

func AddTransportArgs(cmd *cobra.Command, o *TransportOptions) {
	cmd.Flags().StringVarP(&o.Transport, "transport", "t", "",
		"Relay for changes: none, journal or redis.")
	cmd.Flags().StringVar(&o.Journal, "journal", "",
		"Directory shared by journal peers.")
	cmd.Flags().StringVar(&o.RedisAddr, "redis", "",
		"Redis address for the redis transport.")
	cmd.Flags().StringVar(&o.Log, "log", "",
		"Write logs to this file.")
	cmd.Flags().BoolVar(&o.Debug, "debug", false,
		"Log at debug level.")
}

// Apply copies every flag that was set onto cfg, expanding ~ in paths.
func (o *TransportOptions) Apply(cfg *config.Config) error {
	journal, err := homedir.Expand(o.Journal)
	if err != nil {
		return fmt.Errorf("options: journal: %w", err)
	}
	logFile, err := homedir.Expand(o.Log)
	if err != nil {
		return fmt.Errorf("options: log: %w", err)
	}

	if o.Transport != "" {
		cfg.Transport = o.Transport
	}
	if journal != "" {
		cfg.Journal.Path = journal
	}
	if o.RedisAddr != "" {
		cfg.Redis.Addr = o.RedisAddr
	}
	if logFile != "" {
		cfg.Log = logFile
	}
	if o.Debug {
		cfg.Debug = true
	}
	return cfg.Validate()
}
