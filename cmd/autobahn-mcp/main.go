// Package main is the entry point for the autobahn MCP server.
package main

import (
	"os"

	"github.com/stacklok/autobahn-mcp/cmd/autobahn-mcp/app"
)

func main() {
	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
