package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/draftea/feature-showcase/shared/telemetry"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ErrRequestFailed is returned for any transport error or non-2xx response
var ErrRequestFailed = errors.New("request failed")

const DefaultDelayBaseURL = "http://httpbin.org"

// DelayResponse is the decoded reply of an httpbin style /delay endpoint
type DelayResponse struct {
	StatusCode int               `json:"-"`
	Status     string            `json:"-"`
	URL        string            `json:"url"`
	Origin     string            `json:"origin"`
	Headers    map[string]string `json:"headers"`
}

// DelayClient calls GET {baseURL}/delay/{seconds}. It never retries.
type DelayClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewDelayClient creates a client; a nil httpClient means http.DefaultClient
func NewDelayClient(baseURL string, httpClient *http.Client) *DelayClient {
	if baseURL == "" {
		baseURL = DefaultDelayBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &DelayClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Delay performs a single request that the server answers after the given number of seconds
func (c *DelayClient) Delay(ctx context.Context, seconds int) (*DelayResponse, error) {
	url := fmt.Sprintf("%s/delay/%d", c.baseURL, seconds)

	ctx, span := telemetry.StartSpan(ctx, "delay_request",
		trace.WithAttributes(
			attribute.String("http.url", url),
			attribute.Int("delay_seconds", seconds),
		),
	)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrapf(ErrRequestFailed, "build request: %v", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		return nil, errors.Wrapf(ErrRequestFailed, "GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Wrapf(ErrRequestFailed, "GET %s: %s", url, resp.Status)
	}

	response := &DelayResponse{}
	// httpbin echoes request details; other servers may not, which is fine
	_ = json.NewDecoder(resp.Body).Decode(response)
	response.StatusCode = resp.StatusCode
	response.Status = resp.Status

	return response, nil
}
