package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/gdcc/exporter-dcatap/internal/pkg/application/dcatap"
	"github.com/gdcc/exporter-dcatap/internal/pkg/domain"
	"github.com/gdcc/exporter-dcatap/internal/pkg/infrastructure/serializers"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("exporter-dcatap/application")

const (
	FormatName  string = "dcatap"
	DisplayName string = "DCAT-AP"
)

// ErrExportFailed is returned, wrapping the actual cause, whenever a dataset could not
// be exported. Nothing has been written to the output when it is returned.
var ErrExportFailed = errors.New("export failed")

// ExportDataProvider hands the exporter the metadata of the dataset to export.
type ExportDataProvider interface {
	DatasetJSON(ctx context.Context) ([]byte, error)
}

// DatasetJSON is a provider for dataset metadata that is already at hand.
type DatasetJSON []byte

func (p DatasetJSON) DatasetJSON(context.Context) ([]byte, error) {
	return p, nil
}

type Exporter interface {
	FormatName() string
	DisplayName(locale string) string
	IsHarvestable() bool
	IsAvailableToUsers() bool
	MediaType() string
	OutputFormat() serializers.Format

	ExportDataset(ctx context.Context, provider ExportDataProvider, w io.Writer) error
}

func NewExporter(mapper *dcatap.Mapper, format serializers.Format, metrics *Metrics) (Exporter, error) {
	s, err := serializers.For(format)
	if err != nil {
		return nil, err
	}

	return &dcatapExporter{
		mapper:     mapper,
		serializer: s,
		metrics:    metrics,
	}, nil
}

type dcatapExporter struct {
	mapper     *dcatap.Mapper
	serializer serializers.Serializer
	metrics    *Metrics
}

func (e *dcatapExporter) FormatName() string {
	return FormatName
}

func (e *dcatapExporter) DisplayName(string) string {
	return DisplayName
}

func (e *dcatapExporter) IsHarvestable() bool {
	return true
}

func (e *dcatapExporter) IsAvailableToUsers() bool {
	return true
}

func (e *dcatapExporter) MediaType() string {
	return e.serializer.Format().MediaType()
}

func (e *dcatapExporter) OutputFormat() serializers.Format {
	return e.serializer.Format()
}

// ExportDataset writes the catalog record of the provided dataset. The record is
// rendered in full before anything is written, so a failed export leaves w untouched.
// w is flushed, if it can be, but never closed.
func (e *dcatapExporter) ExportDataset(ctx context.Context, provider ExportDataProvider, w io.Writer) (err error) {
	ctx, span := tracer.Start(ctx, "export-dataset")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	_, ctx, log := o11y.AddTraceIDToLoggerAndStoreInContext(span, logging.GetFromContext(ctx), ctx)

	start := time.Now()
	defer func() { e.metrics.observe(e.OutputFormat(), start, err) }()

	record, err := e.render(ctx, provider)
	if err != nil {
		log.Error().Err(err).Msg("failed to export dataset")
		return fmt.Errorf("%w: %w", ErrExportFailed, err)
	}

	if _, err = w.Write(record); err != nil {
		return fmt.Errorf("%w: failed to write record: %w", ErrExportFailed, err)
	}

	if err = flush(w); err != nil {
		return fmt.Errorf("%w: failed to flush output: %w", ErrExportFailed, err)
	}

	return nil
}

func (e *dcatapExporter) render(ctx context.Context, provider ExportDataProvider) (record []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()

	b, err := provider.DatasetJSON(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve dataset json: %w", err)
	}

	ds, err := domain.ParseDataset(b)
	if err != nil {
		return nil, err
	}

	g := e.mapper.Map(ctx, ds)

	buf := &bytes.Buffer{}
	if err = e.serializer.Serialize(buf, g); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func flush(w io.Writer) error {
	switch f := w.(type) {
	case interface{ Flush() error }:
		return f.Flush()
	case http.Flusher:
		f.Flush()
	}
	return nil
}
