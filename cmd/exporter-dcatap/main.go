package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/gdcc/exporter-dcatap/internal/pkg/application"
	"github.com/gdcc/exporter-dcatap/internal/pkg/application/dcatap"
	"github.com/gdcc/exporter-dcatap/internal/pkg/infrastructure/dataverse"
	"github.com/gdcc/exporter-dcatap/internal/pkg/infrastructure/serializers"
	"github.com/gdcc/exporter-dcatap/internal/pkg/presentation"
	"github.com/go-chi/chi/v5"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var profileFileName string

func loadVocabulary(ctx context.Context, path string) (dcatap.Vocabulary, error) {
	log := logging.GetFromContext(ctx)

	if path == "" {
		return dcatap.DefaultVocabulary(), nil
	}

	profile, err := os.Open(path)
	if err != nil {
		return dcatap.Vocabulary{}, fmt.Errorf("failed to open profile %s: %w", path, err)
	}
	defer profile.Close()

	v, err := dcatap.LoadVocabulary(profile)
	if err != nil {
		return dcatap.Vocabulary{}, fmt.Errorf("failed to load profile %s: %w", path, err)
	}

	log.Info().Msgf("loaded vocabulary profile from %s", path)

	return v, nil
}

func main() {
	serviceName := "exporter-dcatap"
	serviceVersion := buildinfo.SourceVersion()

	ctx, log, cleanup := o11y.Init(context.Background(), serviceName, serviceVersion)
	defer cleanup()

	log.Info().Msgf("Starting up %s ...", serviceName)

	flag.StringVar(&profileFileName, "profile", "", "A yaml profile with vocabulary settings for the dcat-ap mapping")
	flag.Parse()

	port := env.GetVariableOrDefault(log, "SERVICE_PORT", "8080")
	dataverseURL := env.GetVariableOrDefault(log, "DATAVERSE_URL", "http://localhost:8080")
	outputFormat := env.GetVariableOrDefault(log, "DCATAP_OUTPUT_FORMAT", string(serializers.RDFXML))
	fileAccessBaseURL := env.GetVariableOrDefault(log, "DCATAP_FILE_ACCESS_BASE_URL", dataverseURL)
	apiToken := os.Getenv("DATAVERSE_API_TOKEN")

	format, err := serializers.ParseFormat(outputFormat)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid output format")
	}

	vocabulary, err := loadVocabulary(ctx, profileFileName)
	if err != nil {
		log.Fatal().Err(err).Msg("unable to load vocabulary")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	mapper := dcatap.NewMapper(vocabulary.WithFileAccessBaseURL(fileAccessBaseURL))

	exporters, err := application.NewExporterSet(mapper, format, application.NewMetrics(reg))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create exporters")
	}

	api := presentation.NewAPI(ctx, chi.NewRouter(), exporters, dataverse.NewClient(dataverseURL, apiToken), reg)

	var g run.Group
	{
		ln, err := net.Listen("tcp", ":"+port)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to listen")
		}

		log.Info().Str("addr", ln.Addr().String()).Str("format", format.String()).Msg("HTTP server listening")

		g.Add(func() error {
			return http.Serve(ln, api.Router())
		}, func(error) {
			ln.Close()
		})
	}
	{
		cancel := make(chan struct{})

		g.Add(func() error {
			err := interrupt(cancel)
			log.Warn().Msg("shutting down...")
			return err
		}, func(error) {
			close(cancel)
		})
	}

	if err := g.Run(); err != nil {
		log.Info().Msgf("%s stopped: %s", serviceName, err.Error())
	}
}

func interrupt(cancel <-chan struct{}) error {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-c:
		return fmt.Errorf("received signal %s", sig)
	case <-cancel:
		return fmt.Errorf("canceled")
	}
}
