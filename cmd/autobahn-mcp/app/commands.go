// Package app provides the entry point for the autobahn-mcp command-line
// application.
package app

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stacklok/autobahn-mcp/pkg/logger"
)

// NewRootCmd creates the root command for the autobahn MCP server.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "autobahn-mcp",
		DisableAutoGenTag: true,
		Short:             "MCP server for German autobahn traffic data",
		Long: `autobahn-mcp is an MCP (Model Context Protocol) server exposing live German
federal highway (Autobahn) traffic data from the public verkehr.autobahn.de
API: traffic warnings, road closures, electric charging stations, and a
composed per-highway overview.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logger.Initialize()
		},
		Run: func(cmd *cobra.Command, _ []string) {
			// If no subcommand is provided, print help
			if err := cmd.Help(); err != nil {
				logger.Errorf("Error displaying help: %v", err)
			}
		},
	}

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
