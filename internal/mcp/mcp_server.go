// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/costwatch/costwatch/internal/contract"
)

// NewMCPServer initializes and configures the costwatch MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"Costwatch Anomaly Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{baseCfg: baseCfg}

	// --- 1. Tool: detect_cost_anomalies ---
	s.AddTool(mcp.NewTool("detect_cost_anomalies",
		mcp.WithDescription("Detect material cost changes per service against a historical baseline."),
		mcp.WithString("data_dir", mcp.Description("Directory holding the cost CSV exports (defaults to the configured directory).")),
		mcp.WithString("sensitivity", mcp.Description("Detection sensitivity preset. Defaults to 'medium'."), mcp.Enum("low", "medium", "high")),
		mcp.WithNumber("window", mcp.Description("Baseline window length in days.")),
		mcp.WithBoolean("weekday", mcp.Description("Compare against the same weekday only.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of findings returned.")),
	), h.handleDetectAnomalies)

	// --- 2. Tool: analyze_cost_trends ---
	s.AddTool(mcp.NewTool("analyze_cost_trends",
		mcp.WithDescription("Analyze the direction and volatility of aggregate daily spend."),
		mcp.WithString("data_dir", mcp.Description("Directory holding the cost CSV exports.")),
	), h.handleAnalyzeTrends)

	// --- 3. Tool: get_cost_report ---
	s.AddTool(mcp.NewTool("get_cost_report",
		mcp.WithDescription("Build a combined report: spend totals, anomalous days and trend analysis."),
		mcp.WithString("data_dir", mcp.Description("Directory holding the cost CSV exports.")),
		mcp.WithString("sensitivity", mcp.Description("Detection sensitivity preset."), mcp.Enum("low", "medium", "high")),
	), h.handleGetReport)

	return s
}

// StartMCPServer starts the costwatch MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config) error {
	s := NewMCPServer(baseCfg)
	return server.ServeStdio(s)
}
