package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/multicloud-ai/inference-gateway/internal/provider"
)

const maxErrorBodyBytes = 4 << 10

type predictRequest struct {
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

type predictResponse struct {
	Text    string  `json:"text"`
	Model   string  `json:"model"`
	Latency float64 `json:"latency"`
}

// Client forwards inference requests to provider predict endpoints.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a predict client whose calls are bounded by timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Predict sends one request to the provider's predict endpoint. Network
// failures come back as *UnavailableError, non-2xx answers as *BackendError
// carrying the provider's status and detail.
func (c *Client) Predict(ctx context.Context, p *provider.Provider, req Request) (*Response, error) {
	body, err := json.Marshal(predictRequest{
		Prompt:      req.Prompt,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.PredictURL(), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &UnavailableError{Provider: p.Name(), Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return nil, &BackendError{
			Provider:   p.Name(),
			StatusCode: res.StatusCode,
			Detail:     readDetail(res.Body),
		}
	}

	var pr predictResponse
	if err := json.NewDecoder(res.Body).Decode(&pr); err != nil {
		return nil, &UnavailableError{
			Provider: p.Name(),
			Err:      fmt.Errorf("decoding predict response: %w", err),
		}
	}

	return &Response{
		Text:          pr.Text,
		CloudProvider: p.Name(),
		Model:         pr.Model,
		Latency:       pr.Latency,
	}, nil
}

// readDetail extracts a human-readable error from a failed predict response.
// Backends answer with {"detail": "..."}; anything else falls back to the
// raw body.
func readDetail(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBodyBytes))
	if err != nil || len(raw) == 0 {
		return "model service error"
	}

	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}

	detail := strings.TrimSpace(string(raw))
	if detail == "" {
		return "model service error"
	}
	return detail
}
