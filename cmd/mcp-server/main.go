package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/xyaoaf/flight-route-map/airports"
	"github.com/xyaoaf/flight-route-map/pkg/buildinfo"
	"github.com/xyaoaf/flight-route-map/pkg/geo"
	"github.com/xyaoaf/flight-route-map/routes"
	"github.com/xyaoaf/flight-route-map/stats"
)

func main() {
	s := server.NewMCPServer(
		"flight-route-map-mcp",
		buildinfo.Version,
		server.WithLogging(),
	)

	tools := &toolset{table: airports.Default()}
	tools.register(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

type toolset struct {
	table *airports.Table
}

func (t *toolset) register(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("great_circle_distance",
		mcp.WithDescription("Geodesic distance in kilometres between two airports on the WGS84 ellipsoid"),
		mcp.WithString("origin",
			mcp.Required(),
			mcp.Description("Origin airport code (e.g., HGH)"),
		),
		mcp.WithString("destination",
			mcp.Required(),
			mcp.Description("Destination airport code (e.g., SFO)"),
		),
	), t.distanceTool)

	s.AddTool(mcp.NewTool("flight_stats",
		mcp.WithDescription("Summary statistics for a flight log given as CSV with origin and destination columns"),
		mcp.WithString("csv",
			mcp.Required(),
			mcp.Description("Flight log CSV including the header row"),
		),
		mcp.WithNumber("top",
			mcp.Description("Number of most visited airports to list (default 10)"),
		),
	), t.statsTool)

	s.AddTool(mcp.NewTool("search_airports",
		mcp.WithDescription("Find airports in the built-in table by code or name"),
		mcp.WithString("query",
			mcp.Description("Airport code or part of its name; empty lists every airport"),
		),
	), t.searchTool)
}

func arguments(request mcp.CallToolRequest) (map[string]interface{}, bool) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	return args, ok
}

type distanceResult struct {
	Origin      airports.Airport `json:"origin"`
	Destination airports.Airport `json:"destination"`
	Km          float64          `json:"km"`
	Formatted   string           `json:"formatted"`
}

func (t *toolset) distanceTool(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := arguments(request)
	if !ok {
		return mcp.NewToolResultError("Invalid arguments format"), nil
	}
	origin, _ := args["origin"].(string)
	destination, _ := args["destination"].(string)
	origin = strings.ToUpper(strings.TrimSpace(origin))
	destination = strings.ToUpper(strings.TrimSpace(destination))
	if origin == "" || destination == "" {
		return mcp.NewToolResultError("origin and destination are required"), nil
	}

	a, ok := t.table.Lookup(origin)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("Unknown airport: %s", origin)), nil
	}
	b, ok := t.table.Lookup(destination)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("Unknown airport: %s", destination)), nil
	}

	km := geo.DistanceBetween(a.Coordinates(), b.Coordinates())
	return jsonResult(distanceResult{Origin: a, Destination: b, Km: km, Formatted: stats.FormatKm(km)})
}

type statsResult struct {
	Stats       stats.Stats           `json:"stats"`
	Milestones  stats.Milestones      `json:"milestones"`
	Formatted   stats.Formatted       `json:"formatted"`
	TopAirports []stats.RankedAirport `json:"top_airports"`
}

func (t *toolset) statsTool(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := arguments(request)
	if !ok {
		return mcp.NewToolResultError("Invalid arguments format"), nil
	}
	csv, _ := args["csv"].(string)
	if strings.TrimSpace(csv) == "" {
		return mcp.NewToolResultError("csv is required"), nil
	}
	top := 10
	if v, ok := args["top"].(float64); ok && v > 0 {
		top = int(v)
	}

	rs, err := routes.ParseCSV(bytes.NewBufferString(csv))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid flight log: %v", err)), nil
	}
	s := stats.Compute(rs, t.table)
	return jsonResult(statsResult{
		Stats:       s,
		Milestones:  stats.MilestonesFor(s.TotalKm),
		Formatted:   stats.Format(s),
		TopAirports: s.TopAirports(t.table, top),
	})
}

func (t *toolset) searchTool(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := arguments(request)
	query, _ := args["query"].(string)
	return jsonResult(map[string]interface{}{"airports": t.table.Search(query)})
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error marshaling response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}
