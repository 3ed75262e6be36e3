package main

import (
	"github.com/spf13/cobra"

	"tickport/config"
	"tickport/host/logger"
)

var (
	configPath string

	rootCmd = &cobra.Command{
		Use:           "tickgen",
		Short:         "XMEGA scheduler tick source tool",
		Long:          "Resolve a tick configuration to timer/counter registers, generate the firmware constants and measure the tick rate of a running device.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			quiet, _ := cmd.Flags().GetBool("quiet")
			logger.Quiet = quiet
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Tick configuration YAML (defaults when empty)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress informational output")

	rootCmd.AddCommand(resolveCmd, generateCmd, devicesCmd, monitorCmd)
}

// loadConfig returns the file named by --config, or the defaults.
func loadConfig() (*config.File, error) {
	if configPath == "" {
		logger.Info("no config given, using defaults")
		return config.Default(), nil
	}
	return config.Load(configPath)
}
