package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/stacklok/autobahn-mcp/pkg/autobahn"
	"github.com/stacklok/autobahn-mcp/pkg/telemetry"
)

// trafficService is the façade the tool handlers delegate to. Satisfied by
// *autobahn.Service; tests substitute a fake.
type trafficService interface {
	ListAutobahns(ctx context.Context) ([]string, error)
	TrafficWarnings(ctx context.Context, id string) (*autobahn.WarningsReport, error)
	RoadClosures(ctx context.Context, id string) (*autobahn.ClosuresReport, error)
	ChargingStations(ctx context.Context, id string) (*autobahn.StationsReport, error)
	Overview(ctx context.Context, id string) (*autobahn.OverviewReport, error)
}

// autobahnHandler handles MCP tool requests for autobahn traffic data.
type autobahnHandler struct {
	svc trafficService
}

// newAutobahnHandler creates a new handler over the traffic service.
func newAutobahnHandler(svc trafficService) *autobahnHandler {
	return &autobahnHandler{svc: svc}
}

// highwayArgs is the argument shape shared by the four per-highway tools.
type highwayArgs struct {
	HighwayID string `json:"highwayId"`
}

// listAutobahns lists all available autobahn identifiers.
func (h *autobahnHandler) listAutobahns(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	roads, err := h.svc.ListAutobahns(ctx)
	if err != nil {
		return toolError("list_autobahns", err), nil
	}

	telemetry.RecordToolInvocation("list_autobahns", telemetry.OutcomeSuccess)
	return mcp.NewToolResultStructuredOnly(roads), nil
}

// getTrafficWarnings returns the current traffic warnings for one autobahn.
func (h *autobahnHandler) getTrafficWarnings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := highwayArgs{}
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to parse arguments: %v", err)), nil
	}

	report, err := h.svc.TrafficWarnings(ctx, args.HighwayID)
	if err != nil {
		return toolError("get_traffic_warnings", err), nil
	}

	telemetry.RecordToolInvocation("get_traffic_warnings", telemetry.OutcomeSuccess)
	return mcp.NewToolResultStructuredOnly(report), nil
}

// getRoadClosures returns the current road closures for one autobahn.
func (h *autobahnHandler) getRoadClosures(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := highwayArgs{}
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to parse arguments: %v", err)), nil
	}

	report, err := h.svc.RoadClosures(ctx, args.HighwayID)
	if err != nil {
		return toolError("get_road_closures", err), nil
	}

	telemetry.RecordToolInvocation("get_road_closures", telemetry.OutcomeSuccess)
	return mcp.NewToolResultStructuredOnly(report), nil
}

// getChargingStations returns the charging stations along one autobahn.
func (h *autobahnHandler) getChargingStations(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := highwayArgs{}
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to parse arguments: %v", err)), nil
	}

	report, err := h.svc.ChargingStations(ctx, args.HighwayID)
	if err != nil {
		return toolError("get_charging_stations", err), nil
	}

	telemetry.RecordToolInvocation("get_charging_stations", telemetry.OutcomeSuccess)
	return mcp.NewToolResultStructuredOnly(report), nil
}

// getAutobahnOverview returns the composed overview for one autobahn.
func (h *autobahnHandler) getAutobahnOverview(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := highwayArgs{}
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to parse arguments: %v", err)), nil
	}

	report, err := h.svc.Overview(ctx, args.HighwayID)
	if err != nil {
		return toolError("get_autobahn_overview", err), nil
	}

	telemetry.RecordToolInvocation("get_autobahn_overview", telemetry.OutcomeSuccess)
	return mcp.NewToolResultStructuredOnly(report), nil
}

// toolError shapes a service failure into a structured tool error result
// (kind + message). Failures never propagate as handler errors, so a bad
// upstream response cannot take the server process down with it.
func toolError(tool string, err error) *mcp.CallToolResult {
	var typed *autobahn.Error
	if errors.As(err, &typed) {
		telemetry.RecordToolInvocation(tool, typed.Type)
		return mcp.NewToolResultError(fmt.Sprintf("%s: %s", typed.Type, typed.Message))
	}

	telemetry.RecordToolInvocation(tool, "error")
	return mcp.NewToolResultError(err.Error())
}
