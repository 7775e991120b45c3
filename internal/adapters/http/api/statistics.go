package api

import (
	"net/http"

	"github.com/okian/echochamber/internal/domain/types"
	"github.com/okian/echochamber/pkg/logger"
)

// StatisticsHandler serves the analysis history.
type StatisticsHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewStatisticsHandler creates a new statistics handler.
func NewStatisticsHandler(deps Dependencies, log logger.Logger) *StatisticsHandler {
	return &StatisticsHandler{deps: deps, logger: log}
}

// HandleStatistics handles GET /api/statistics requests.
func (h *StatisticsHandler) HandleStatistics(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, r, http.StatusOK, h.deps.Statistics(r.Context()))
}

// HandleClearHistory handles POST /api/clear-history requests.
func (h *StatisticsHandler) HandleClearHistory(w http.ResponseWriter, r *http.Request) {
	h.deps.ClearHistory(r.Context())
	writeResponse(w, r, http.StatusOK, types.MessageResponse{Message: "History cleared successfully"})
}

// HandleLogStatistics handles GET /api/logs/statistics requests.
func HandleLogStatistics(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, r, http.StatusOK, logger.Stats())
}
