// Package server adapts the tool catalog to the MCP protocol surface:
// stdio for the standard transport and SSE over HTTP for the gateway mode.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"notesmcp/internal/audit"
	"notesmcp/internal/catalog"
	"notesmcp/internal/domain"
	"notesmcp/internal/metrics"
)

// Gateway dispatches tool invocations and owns the protocol adapters.
type Gateway struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
	audit   *audit.Store // nil when auditing is disabled
}

// Config wires the gateway's collaborators.
type Config struct {
	Catalog *catalog.Catalog
	Logger  *slog.Logger
	Audit   *audit.Store
}

func New(cfg Config) *Gateway {
	return &Gateway{
		catalog: cfg.Catalog,
		logger:  cfg.Logger,
		audit:   cfg.Audit,
	}
}

// Definitions returns the advertised tool descriptors.
func (g *Gateway) Definitions() []domain.ToolDefinition {
	return g.catalog.Definitions()
}

// Call runs one tool invocation and returns its text content. Failures
// (unknown tool, missing argument, script error) come back as ordinary
// text so the protocol call itself still succeeds.
func (g *Gateway) Call(ctx context.Context, name string, args map[string]any) string {
	start := time.Now()

	t := g.catalog.Get(name)
	if t == nil {
		g.logger.Warn("unknown tool requested", "name", name)
		g.observe(ctx, name, false, "unknown tool", time.Since(start))
		return fmt.Sprintf("Unknown tool: %s", name)
	}

	out, err := t.Execute(ctx, args)
	elapsed := time.Since(start)
	if err != nil {
		g.logger.Warn("tool invocation failed", "tool", name, "err", err, "duration", elapsed)
		g.observe(ctx, name, false, err.Error(), elapsed)
		return fmt.Sprintf("Error: %s", err)
	}

	g.logger.Info("tool invoked", "tool", name, "duration", elapsed)
	g.observe(ctx, name, true, "", elapsed)
	return out
}

func (g *Gateway) observe(ctx context.Context, tool string, ok bool, errText string, elapsed time.Duration) {
	labels := fmt.Sprintf("tool=%q", tool)
	metrics.Collector.Counter("notesmcp_tool_invocations_total", "Total tool invocations", labels).Inc()
	if !ok {
		metrics.Collector.Counter("notesmcp_tool_errors_total", "Total failed tool invocations", labels).Inc()
	}
	metrics.Collector.Histogram("notesmcp_tool_latency_seconds", "Tool invocation latency in seconds", labels,
		[]float64{0.1, 0.5, 1, 5, 10, 30, 60}).Observe(elapsed.Seconds())

	if g.audit != nil {
		// The record should survive request cancellation.
		_ = g.audit.Record(context.WithoutCancel(ctx), tool, ok, errText, elapsed)
	}
}
