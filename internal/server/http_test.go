package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	gw := testGateway(&stubRunner{})
	return gw.Router("http://127.0.0.1:8765", gw.MCPServer("notesmcp-test", "0.0.0"))
}

func TestRouter_Health(t *testing.T) {
	r := testRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestRouter_ToolsListing(t *testing.T) {
	r := testRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/tools", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, name := range []string{"list_notes", "search_notes", "read_note", "create_note", "edit_note"} {
		if !strings.Contains(body, name) {
			t.Fatalf("expected %s in listing, got: %s", name, body)
		}
	}
}

func TestRouter_Metrics(t *testing.T) {
	r := testRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "notesmcp_uptime_seconds") {
		t.Fatalf("expected uptime metric, got: %s", rec.Body.String())
	}
}
