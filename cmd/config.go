package cmd

import (
	"github.com/spf13/cobra"

	"firestige.xyz/nubble/internal/config"
)

func newConfigCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration nubble would run with, after merging the config
file, NUBBLE_* environment variables and defaults, as YAML.

Examples:
  nubble config
  nubble config -c /etc/nubble/config.yml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			data, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
