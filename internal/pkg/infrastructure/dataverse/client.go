package dataverse

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("exporter-dcatap/dataverse")

var ErrNoSuchDataset = fmt.Errorf("no such dataset")

const apiKeyHeader string = "X-Dataverse-key"

// Client retrieves dataset metadata from a Dataverse installation, in the dataverse_json
// export format that the catalog mapping reads.
//
//go:generate moq -rm -out client_mock.go . Client
type Client interface {
	DatasetJSON(ctx context.Context, persistentID string) ([]byte, error)
}

func NewClient(baseURL, apiToken string) Client {
	return &client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		apiToken: apiToken,
		httpClient: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type client struct {
	baseURL    string
	apiToken   string
	httpClient http.Client
}

func (c *client) DatasetJSON(ctx context.Context, persistentID string) (body []byte, err error) {
	ctx, span := tracer.Start(ctx, "get-dataset-json")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	params := url.Values{}
	params.Set("exporter", "dataverse_json")
	params.Set("persistentId", persistentID)

	requestURL := c.baseURL + "/api/datasets/export?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		err = fmt.Errorf("failed to create request: %w", err)
		return nil, err
	}

	req.Header.Add("Accept", "application/json")
	if c.apiToken != "" {
		req.Header.Add(apiKeyHeader, c.apiToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed to send request: %w", err)
		return nil, err
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("failed to read response body: %w", err)
		return nil, err
	}

	if resp.StatusCode == http.StatusNotFound {
		err = fmt.Errorf("%w: %s", ErrNoSuchDataset, persistentID)
		return nil, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		respbytes, _ := httputil.DumpResponse(resp, false)

		log := logging.GetFromContext(ctx)
		log.Error().Str("url", requestURL).Str("response", string(respbytes)).Msg("request failed")

		err = fmt.Errorf("request failed with status %d", resp.StatusCode)
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		contentType := resp.Header.Get("Content-Type")
		err = fmt.Errorf("dataverse returned status code %d (content-type: %s, body: %s)", resp.StatusCode, contentType, string(body))
		return nil, err
	}

	return body, nil
}

// DatasetProvider defers retrieval of a dataset's metadata until an exporter asks for it.
type DatasetProvider struct {
	client       Client
	persistentID string
}

func NewDatasetProvider(c Client, persistentID string) DatasetProvider {
	return DatasetProvider{client: c, persistentID: persistentID}
}

func (p DatasetProvider) DatasetJSON(ctx context.Context) ([]byte, error) {
	return p.client.DatasetJSON(ctx, p.persistentID)
}
