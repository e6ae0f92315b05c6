package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"notesmcp/internal/metrics"
)

// Router returns the HTTP handler for gateway mode: the SSE transport
// endpoints plus health and metrics. No request timeout middleware: the
// SSE stream is long-lived.
func (g *Gateway) Router(baseURL string, mcpSrv *mcpserver.MCPServer) http.Handler {
	sse := mcpserver.NewSSEServer(
		mcpSrv,
		mcpserver.WithBaseURL(baseURL),
		mcpserver.WithSSEEndpoint("/sse"),
		mcpserver.WithMessageEndpoint("/message"),
		mcpserver.WithKeepAlive(true),
	)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", handleHealth)
	r.Get("/metrics", metrics.Collector.Handler())
	r.Get("/tools", g.handleListTools)
	r.Handle("/sse", sse.SSEHandler())
	r.Handle("/message", sse.MessageHandler())

	return r
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// handleListTools exposes the catalog verbatim for quick inspection
// outside an MCP client.
func (g *Gateway) handleListTools(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"tools": g.Definitions()})
}
