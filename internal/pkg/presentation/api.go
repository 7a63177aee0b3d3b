package presentation

import (
	"compress/flate"
	"context"
	"net/http"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/gdcc/exporter-dcatap/internal/pkg/application"
	"github.com/gdcc/exporter-dcatap/internal/pkg/infrastructure/dataverse"
	"github.com/gdcc/exporter-dcatap/internal/pkg/presentation/handlers"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/riandyrn/otelchi"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

type API interface {
	Router() chi.Router
}

type exporterAPI struct {
	router chi.Router
	log    zerolog.Logger
}

func NewAPI(ctx context.Context, r chi.Router, exporters *application.ExporterSet, dv dataverse.Client, gatherer prometheus.Gatherer) API {
	return newExporterAPI(ctx, r, exporters, dv, gatherer)
}

func newExporterAPI(ctx context.Context, r chi.Router, exporters *application.ExporterSet, dv dataverse.Client, gatherer prometheus.Gatherer) *exporterAPI {
	log := logging.GetFromContext(ctx)

	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowCredentials: true,
		Debug:            false,
	}).Handler)

	// Enable gzip compression for our responses
	compressor := middleware.NewCompressor(
		flate.DefaultCompression,
		"text/plain", "application/json", "application/xml", "application/n-quads",
	)
	r.Use(compressor.Handler)
	r.Use(otelchi.Middleware("exporter-dcatap", otelchi.WithChiRoutes(r)))

	a := &exporterAPI{
		router: r,
		log:    log,
	}

	a.addProbeHandlers(r, gatherer)
	a.addExportHandlers(r, exporters, dv)

	return a
}

func (a *exporterAPI) Router() chi.Router {
	return a.router
}

func (a *exporterAPI) addExportHandlers(r chi.Router, exporters *application.ExporterSet, dv dataverse.Client) {
	r.Get(
		"/api/formats",
		handlers.NewRetrieveFormatsHandler(a.log, exporters),
	)
	r.Get(
		"/api/datasets/export",
		handlers.NewExportDatasetHandler(a.log, exporters, dv),
	)
	r.Post(
		"/api/export",
		handlers.NewExportDocumentHandler(a.log, exporters),
	)
}

func (a *exporterAPI) addProbeHandlers(r chi.Router, gatherer prometheus.Gatherer) {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{DisableCompression: true}))
	}
}
