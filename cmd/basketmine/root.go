package main

import (
	"github.com/YuminosukeSato/basketmine/config"
	"github.com/YuminosukeSato/basketmine/pkg/log"
	"github.com/spf13/cobra"
)

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "basketmine",
		Short: "Mine co-purchase patterns from a transaction log",
		Long: `basketmine groups a CSV transaction log into baskets, mines the frequent
itemsets with Apriori, derives the maximal and closed itemsets, and suggests
companion items for a product.

Settings come from built-in defaults, an optional --config YAML file and
BASKETMINE_* environment variables; flags override all of them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format: console or json")

	cmd.AddCommand(newMineCmd(opts), newSuggestCmd(opts), newVersionCmd())
	return cmd
}

// loadConfig reads the layered configuration, applies the logging flags and
// sets up the process logger on the command's stderr.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Log.Format = o.logFormat
	}
	if err := log.SetupLogger(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr()); err != nil {
		return nil, err
	}
	return cfg, nil
}
