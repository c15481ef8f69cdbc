package app

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stacklok/autobahn-mcp/pkg/versions"
)

var versionFormat string

// newVersionCommand creates the 'version' subcommand.
func newVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show the server version",
		RunE:  versionCmdFunc,
	}
	cmd.Flags().StringVar(&versionFormat, "format", "text", "Output format (text or json)")
	return cmd
}

func versionCmdFunc(cmd *cobra.Command, _ []string) error {
	info := versions.GetVersionInfo()

	if versionFormat == "json" {
		out, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal version info: %w", err)
		}
		cmd.Println(string(out))
		return nil
	}

	cmd.Printf("Version:    %s\n", info.Version)
	cmd.Printf("Commit:     %s\n", info.Commit)
	cmd.Printf("Build date: %s\n", info.BuildDate)
	cmd.Printf("Go version: %s\n", info.GoVersion)
	cmd.Printf("Platform:   %s\n", info.Platform)
	return nil
}
