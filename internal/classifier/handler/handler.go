package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"riskengine/internal/assessment"
	"riskengine/internal/classifier"
	id "riskengine/pkg/domain"
	dErrors "riskengine/pkg/domain-errors"
	"riskengine/pkg/platform/httputil"
	"riskengine/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks

// Service defines the interface for classification operations.
type Service interface {
	Evaluate(ctx context.Context, rs *assessment.ResponseSet) (*classifier.ClassificationDecision, error)
	EvaluateBatch(ctx context.Context, sets []*assessment.ResponseSet) []classifier.BatchResult
	Latest(ctx context.Context, systemID id.SystemID) (*classifier.ClassificationDecision, error)
	History(ctx context.Context, systemID id.SystemID) ([]*classifier.ClassificationDecision, error)
}

// Handler wires classification endpoints to the classifier service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a classifier handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts classification endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/assessments/evaluate", h.HandleEvaluate)
	r.Post("/assessments/evaluate-batch", h.HandleEvaluateBatch)
	r.Get("/decisions/{systemID}", h.HandleLatest)
	r.Get("/decisions/{systemID}/history", h.HandleHistory)
}

// HandleEvaluate handles POST /assessments/evaluate requests.
func (h *Handler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	if requestcontext.UserID(ctx) == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[EvaluateRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	decision, err := h.service.Evaluate(ctx, req.ResponseSet())
	if err != nil {
		h.logger.ErrorContext(ctx, "evaluation failed",
			"request_id", requestID,
			"system_id", req.SystemID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "assessment evaluated",
		"request_id", requestID,
		"system_id", req.SystemID,
		"tier", decision.Tier,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, FromDecision(decision))
}

// HandleEvaluateBatch handles POST /assessments/evaluate-batch requests.
func (h *Handler) HandleEvaluateBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	if requestcontext.UserID(ctx) == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[EvaluateBatchRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	results := h.service.EvaluateBatch(ctx, req.ResponseSets())
	entries := make([]BatchEntryResponse, len(results))
	for i, res := range results {
		if res.Err != nil {
			entries[i] = BatchEntryResponse{Error: string(dErrors.CodeOf(res.Err))}
			continue
		}
		entries[i] = BatchEntryResponse{Decision: FromDecision(res.Decision)}
	}

	h.logger.InfoContext(ctx, "assessment batch evaluated",
		"request_id", requestID,
		"count", len(entries),
	)
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"results": entries})
}

// HandleLatest handles GET /decisions/{systemID} requests.
func (h *Handler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	systemID, err := id.ParseSystemID(chi.URLParam(r, "systemID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	decision, err := h.service.Latest(ctx, systemID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, FromDecision(decision))
}

// HandleHistory handles GET /decisions/{systemID}/history requests.
func (h *Handler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	systemID, err := id.ParseSystemID(chi.URLParam(r, "systemID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	history, err := h.service.History(ctx, systemID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	resp := HistoryResponse{SystemID: systemID.String(), Decisions: make([]*DecisionResponse, len(history))}
	for i, decision := range history {
		resp.Decisions[i] = FromDecision(decision)
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}
