package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/vigil/internal/report"
	"github.com/JaimeStill/vigil/pkg/handlers"
	"github.com/JaimeStill/vigil/pkg/routes"
	"github.com/JaimeStill/vigil/pkg/storage"
)

// reportsHandler serves archived analysis reports out of blob storage.
// Registered only when storage is configured.
type reportsHandler struct {
	store  storage.System
	logger *slog.Logger
}

func newReportsHandler(store storage.System, logger *slog.Logger) *reportsHandler {
	return &reportsHandler{
		store:  store,
		logger: logger.With("handler", "reports"),
	}
}

func (h *reportsHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/reports",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{id}", Handler: h.download},
		},
	}
}

func (h *reportsHandler) download(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, storage.ErrNotFound)
		return
	}

	body, err := h.store.Download(r.Context(), report.Key(id))
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	io.Copy(w, body)
}
