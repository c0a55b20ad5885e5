package analysis

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/vigil/pkg/handlers"
	"github.com/JaimeStill/vigil/pkg/routes"
)

// Handler provides HTTP endpoints for the analysis pipeline.
type Handler struct {
	sys            System
	logger         *slog.Logger
	maxRequestSize int64
}

// ClassifyRequest carries the text for a classification preview.
type ClassifyRequest struct {
	Text string `json:"text"`
}

// NewHandler creates a Handler with the given system, logger, and request
// body limit.
func NewHandler(sys System, logger *slog.Logger, maxRequestSize int64) *Handler {
	return &Handler{
		sys:            sys,
		logger:         logger.With("handler", "analysis"),
		maxRequestSize: maxRequestSize,
	}
}

// Routes returns the route group definition for analysis endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/analysis",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Analyze},
			{Method: "POST", Pattern: "/{id}/cancel", Handler: h.Cancel},
			{Method: "POST", Pattern: "/classify", Handler: h.Classify},
			{Method: "GET", Pattern: "/use-cases", Handler: h.UseCases},
			{Method: "GET", Pattern: "/use-cases/{id}", Handler: h.UseCase},
		},
	}
}

// Analyze runs the full pipeline for a submitted request. The report body is
// returned for every finished execution; failed and cancelled runs carry an
// error status code so callers can branch without parsing.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	rep, err := h.sys.Analyze(r.Context(), req)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, statusHTTPCode(rep.Status), rep)
}

// Cancel requests cooperative cancellation of an in-flight execution.
// Returns 202: the execution finishes on its own schedule and reports its
// final state through the originating request.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sys.Cancel(id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}

// Classify returns the classification for a text without executing a workflow.
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)

	var req ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Classify(req.Text)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// UseCases lists the registered use-case definitions.
func (h *Handler) UseCases(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.sys.UseCases())
}

// UseCase returns the full definition of one use case.
func (h *Handler) UseCase(w http.ResponseWriter, r *http.Request) {
	def, err := h.sys.UseCase(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, def)
}
