package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/okian/echochamber/internal/domain/sequence"
	"github.com/okian/echochamber/internal/domain/types"
	"github.com/okian/echochamber/pkg/logger"
	"github.com/okian/echochamber/pkg/metrics"
)

// Client-facing messages for malformed requests.
const (
	msgSequenceNotArray  = "Invalid input: sequence must be an array"
	msgSequencesNotArray = "Invalid input: sequences must be an array"
	msgInvalidBody       = "Invalid input: request body must be a JSON object"
	msgInternal          = "Internal server error"
)

// AnalyzeHandler serves single and batch analyses.
type AnalyzeHandler struct {
	deps         Dependencies
	maxBatchSize int
	logger       logger.Logger
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(deps Dependencies, maxBatchSize int, log logger.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{deps: deps, maxBatchSize: maxBatchSize, logger: log}
}

// HandleAnalyze handles POST /api/analyze requests.
func (h *AnalyzeHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	const op = "api.analyze"
	ctx := r.Context()

	var req types.AnalyzeRequest
	if err := decodeBody(r, &req); err != nil {
		h.reject(w, r, WrapKind(op, ErrBadRequest, err), msgInvalidBody)
		return
	}
	if _, ok := req.Sequence.([]any); !ok {
		h.reject(w, r, NewKind(op, ErrBadRequest), msgSequenceNotArray)
		return
	}

	a, err := h.deps.Analyze(ctx, req.Sequence)
	switch {
	case err == nil:
		h.logger.Info(ctx, "analysis successful", logger.String("pattern", string(a.Pattern.Type)))
		writeResponse(w, r, http.StatusOK, types.FromAnalysis(a))
	case errors.Is(err, sequence.ErrInvalidInput), errors.Is(err, sequence.ErrNoPatternDetected):
		h.logger.Warn(ctx, "analysis failed", logger.String("reason", err.Error()))
		writeResponse(w, r, http.StatusBadRequest, types.FromError(err))
	default:
		h.logger.Error(ctx, "analysis error", logger.Error(WrapKind(op, sequence.ErrInternal, err)))
		metrics.RecordErrorByComponent("api", "internal")
		writeError(w, r, http.StatusInternalServerError, msgInternal)
	}
}

// HandleAnalyzeBatch handles POST /api/analyze-batch requests. Each element
// is classified independently; a failing element never fails the request.
func (h *AnalyzeHandler) HandleAnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	const op = "api.analyze_batch"
	ctx := r.Context()

	var req types.BatchRequest
	if err := decodeBody(r, &req); err != nil {
		h.rejectTransport(w, r, WrapKind(op, ErrBadRequest, err), msgInvalidBody)
		return
	}
	values, ok := req.Sequences.([]any)
	if !ok {
		h.rejectTransport(w, r, NewKind(op, ErrBadRequest), msgSequencesNotArray)
		return
	}
	if len(values) > h.maxBatchSize {
		msg := fmt.Sprintf("Invalid input: at most %d sequences per batch, got %d", h.maxBatchSize, len(values))
		h.rejectTransport(w, r, NewKind(op, ErrBatchTooLarge), msg)
		return
	}

	results, err := h.deps.AnalyzeBatch(ctx, values)
	if err != nil {
		h.logger.Warn(ctx, "batch analysis abandoned", logger.Error(WrapKind(op, ErrUnavailable, err)))
		writeError(w, r, http.StatusServiceUnavailable, "Service unavailable")
		return
	}

	resp := types.BatchResponse{Results: make([]types.AnalysisResult, len(results))}
	for i, res := range results {
		if res.OK() {
			resp.Results[i] = types.FromAnalysis(res.Analysis)
			continue
		}
		resp.Results[i] = types.FromError(res.Err)
	}
	h.logger.Info(ctx, "batch analysis processed", logger.Int("sequences", len(values)))
	writeResponse(w, r, http.StatusOK, resp)
}

// reject answers a malformed single-analysis request in the analysis shape.
func (h *AnalyzeHandler) reject(w http.ResponseWriter, r *http.Request, err error, msg string) {
	h.logger.Warn(r.Context(), "rejected request", logger.Error(err))
	writeResponse(w, r, http.StatusBadRequest, types.AnalysisResult{Error: msg})
}

func (h *AnalyzeHandler) rejectTransport(w http.ResponseWriter, r *http.Request, err error, msg string) {
	h.logger.Warn(r.Context(), "rejected request", logger.Error(err))
	writeError(w, r, http.StatusBadRequest, msg)
}
