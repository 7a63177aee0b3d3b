package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/gdcc/exporter-dcatap/internal/pkg/application"
	"github.com/gdcc/exporter-dcatap/internal/pkg/infrastructure/dataverse"
	"github.com/gdcc/exporter-dcatap/internal/pkg/infrastructure/serializers"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("exporter-dcatap/api")

const MaxDatasetSize int64 = 10 << 20

type formatsResponse struct {
	Default serializers.Format       `json:"default"`
	Formats []serializers.FormatInfo `json:"formats"`
}

func NewRetrieveFormatsHandler(logger zerolog.Logger, exporters *application.ExporterSet) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		responseBody, err := json.MarshalIndent(formatsResponse{
			Default: exporters.DefaultFormat(),
			Formats: serializers.Formats(),
		}, "", "  ")
		if err != nil {
			logger.Error().Err(err).Msg("failed to marshal formats to json")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Add("Content-Type", "application/json")
		w.Write(responseBody)
	})
}

// NewExportDatasetHandler exports a dataset that is fetched from Dataverse by its
// persistent identifier.
func NewExportDatasetHandler(logger zerolog.Logger, exporters *application.ExporterSet, dv dataverse.Client) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		ctx, span := tracer.Start(r.Context(), "export-dataset")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, ctx)

		persistentID := r.URL.Query().Get("persistentId")
		if persistentID == "" {
			err = fmt.Errorf("no persistent id supplied in query")
			log.Error().Err(err).Msg("bad request")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		exporter, err := exporters.For(r.URL.Query().Get("format"))
		if err != nil {
			log.Error().Err(err).Msg("bad request")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		w.Header().Add("Content-Type", exporter.MediaType())

		err = exporter.ExportDataset(ctx, dataverse.NewDatasetProvider(dv, persistentID), w)
		if err != nil {
			w.Header().Del("Content-Type")

			if errors.Is(err, dataverse.ErrNoSuchDataset) {
				w.WriteHeader(http.StatusNotFound)
				return
			}

			log.Error().Err(err).Str("persistentId", persistentID).Msg("internal error")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	})
}

// NewExportDocumentHandler exports the dataset json that is posted in the request body.
func NewExportDocumentHandler(logger zerolog.Logger, exporters *application.ExporterSet) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error
		ctx, span := tracer.Start(r.Context(), "export-document")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logger, ctx)

		exporter, err := exporters.For(r.URL.Query().Get("format"))
		if err != nil {
			log.Error().Err(err).Msg("bad request")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxDatasetSize))
		if err != nil {
			log.Error().Err(err).Msg("failed to read request body")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		if len(body) == 0 {
			err = fmt.Errorf("request body is empty")
			log.Error().Err(err).Msg("bad request")
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		w.Header().Add("Content-Type", exporter.MediaType())

		err = exporter.ExportDataset(ctx, application.DatasetJSON(body), w)
		if err != nil {
			w.Header().Del("Content-Type")
			log.Error().Err(err).Msg("internal error")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	})
}
