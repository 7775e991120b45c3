package api

import (
	"net/http"

	"github.com/okian/echochamber/internal/domain/types"
)

// APIVersion is reported by GET /api/documentation.
const APIVersion = "2.0.0"

// DocsHandler serves the endpoint catalogue.
type DocsHandler struct {
	doc types.Documentation
}

// NewDocsHandler creates a new documentation handler.
func NewDocsHandler() *DocsHandler {
	return &DocsHandler{doc: types.Documentation{
		Title:   "Echo Chamber API",
		Version: APIVersion,
		Endpoints: []types.Endpoint{
			{
				Path:        "POST /api/analyze",
				Description: "Analyze a sequence",
				Body:        map[string]any{"sequence": []int{1, 2, 3, 4}},
				Response:    map[string]any{"pattern": "arithmetic", "predicted": 5},
			},
			{
				Path:        "POST /api/analyze-batch",
				Description: "Analyze multiple sequences",
				Body:        map[string]any{"sequences": [][]int{{1, 2, 3}, {2, 4, 6}}},
				Response:    map[string]any{"results": []any{}},
			},
			{Path: "GET /api/statistics", Description: "Get analysis statistics"},
			{Path: "POST /api/clear-history", Description: "Clear analysis history"},
			{Path: "GET /api/health", Description: "Check server health"},
			{Path: "GET /api/logs/statistics", Description: "Get log entry counts by level"},
			{Path: "GET /api/stats", Description: "Get service runtime state"},
			{Path: "GET /metrics", Description: "Prometheus metrics"},
		},
	}}
}

// HandleDocumentation handles GET /api/documentation requests.
func (h *DocsHandler) HandleDocumentation(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, r, http.StatusOK, h.doc)
}
