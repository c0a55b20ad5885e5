package api

import (
	"net/http"

	"github.com/JaimeStill/vigil/internal/config"
	"github.com/JaimeStill/vigil/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	routes.Register(
		mux,
		domain.Analysis.Handler(cfg.API.MaxRequestSizeBytes()).Routes(),
	)
	routes.Register(
		mux,
		domain.Audit.Handler().Routes(),
	)

	if runtime.Storage != nil {
		reports := newReportsHandler(runtime.Storage, runtime.Logger)
		routes.Register(mux, reports.routes())
	}
}
