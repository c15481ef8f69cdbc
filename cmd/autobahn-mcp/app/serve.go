package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/stacklok/autobahn-mcp/pkg/autobahn"
	"github.com/stacklok/autobahn-mcp/pkg/config"
	"github.com/stacklok/autobahn-mcp/pkg/logger"
	"github.com/stacklok/autobahn-mcp/pkg/telemetry"
	"github.com/stacklok/autobahn-mcp/pkg/versions"
)

const (
	// DefaultPort is the default port for the streamable HTTP transport.
	DefaultPort = "9041"

	transportStdio          = "stdio"
	transportStreamableHTTP = "streamable-http"
)

var (
	serveTransport string
	serveHost      string
	servePort      string
)

// newServeCommand creates the 'serve' subcommand.
func newServeCommand() *cobra.Command {
	// The port can come from the MCP_PORT environment variable as well
	// as the --port flag.
	defaultPort := DefaultPort
	if envPort := os.Getenv("MCP_PORT"); envPort != "" {
		defaultPort = envPort
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the autobahn MCP server",
		Long: `Start an MCP server exposing German autobahn traffic data.

The server offers five tools: list_autobahns, get_traffic_warnings,
get_road_closures, get_charging_stations, and get_autobahn_overview.
By default it speaks MCP over stdio; pass --transport streamable-http
to serve over HTTP instead (a prometheus /metrics endpoint is exposed
on the same listener).`,
		RunE: serveCmdFunc,
	}

	cmd.Flags().StringVar(&serveTransport, "transport", transportStdio,
		fmt.Sprintf("MCP transport (%s or %s)", transportStdio, transportStreamableHTTP))
	cmd.Flags().StringVar(&serveHost, "host", "localhost", "Host to listen on (HTTP transport only)")
	cmd.Flags().StringVar(&servePort, "port", defaultPort,
		"Port to listen on (HTTP transport only, can also be set via MCP_PORT)")

	return cmd
}

// serveCmdFunc is the main function for the serve command.
func serveCmdFunc(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	handler := newAutobahnHandler(autobahn.NewService(cfg))

	versionInfo := versions.GetVersionInfo()
	mcpServer := server.NewMCPServer(
		"autobahn-mcp",
		versionInfo.Version,
		server.WithToolCapabilities(false),
		server.WithLogging(),
	)
	registerTools(mcpServer, handler)

	switch serveTransport {
	case transportStdio:
		logger.Info("Starting autobahn MCP server on stdio")
		return server.ServeStdio(mcpServer)
	case transportStreamableHTTP:
		return serveStreamableHTTP(ctx, cancel, mcpServer)
	default:
		return fmt.Errorf("unknown transport %q", serveTransport)
	}
}

// serveStreamableHTTP serves MCP over HTTP with a /metrics endpoint and
// graceful shutdown on SIGINT/SIGTERM.
func serveStreamableHTTP(ctx context.Context, cancel context.CancelFunc, mcpServer *server.MCPServer) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	streamableServer := server.NewStreamableHTTPServer(
		mcpServer,
		server.WithEndpointPath("/mcp"),
		server.WithHTTPContextFunc(func(_ context.Context, _ *http.Request) context.Context {
			return ctx
		}),
	)

	mux := http.NewServeMux()
	mux.Handle("/mcp", streamableServer)
	mux.Handle("/metrics", telemetry.Handler())

	addr := fmt.Sprintf("%s:%s", serveHost, servePort)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
	}

	go func() {
		logger.Infof("Starting autobahn MCP server on http://%s/mcp", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("MCP server error: %v", err)
			cancel()
		}
	}()

	select {
	case <-sigChan:
	case <-ctx.Done():
	}
	logger.Info("Shutting down MCP server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return httpServer.Shutdown(shutdownCtx)
}

// registerTools declares the five public tools on the MCP server.
func registerTools(mcpServer *server.MCPServer, handler *autobahnHandler) {
	highwayIDSchema := map[string]interface{}{
		"type":        "string",
		"description": "The autobahn identifier (e.g. 'A1', 'A7', 'A99'). Case-insensitive.",
	}

	mcpServer.AddTool(mcp.Tool{
		Name:        "list_autobahns",
		Description: "List all available German autobahns (highways)",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handler.listAutobahns)

	mcpServer.AddTool(mcp.Tool{
		Name:        "get_traffic_warnings",
		Description: "Get current traffic warnings for a specific autobahn",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"highwayId": highwayIDSchema,
			},
			Required: []string{"highwayId"},
		},
	}, handler.getTrafficWarnings)

	mcpServer.AddTool(mcp.Tool{
		Name:        "get_road_closures",
		Description: "Get current road closures for a specific autobahn",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"highwayId": highwayIDSchema,
			},
			Required: []string{"highwayId"},
		},
	}, handler.getRoadClosures)

	mcpServer.AddTool(mcp.Tool{
		Name:        "get_charging_stations",
		Description: "Get electric vehicle charging stations along a specific autobahn",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"highwayId": highwayIDSchema,
			},
			Required: []string{"highwayId"},
		},
	}, handler.getChargingStations)

	mcpServer.AddTool(mcp.Tool{
		Name: "get_autobahn_overview",
		Description: "Get a complete overview of an autobahn including warnings, " +
			"closures, and charging stations",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"highwayId": highwayIDSchema,
			},
			Required: []string{"highwayId"},
		},
	}, handler.getAutobahnOverview)
}
