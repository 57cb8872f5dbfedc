package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/nordlys-ai/assistant-platform/pkg/logging"
)

// HTTPRetriever is a client for the external knowledge search service.
type HTTPRetriever struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *logging.Logger
}

// HTTPRetrieverOption is a functional option for configuring the client.
type HTTPRetrieverOption func(*HTTPRetriever)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) HTTPRetrieverOption {
	return func(r *HTTPRetriever) {
		r.httpClient = client
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *logging.Logger) HTTPRetrieverOption {
	return func(r *HTTPRetriever) {
		r.logger = logger
	}
}

// NewHTTPRetriever creates a client for the knowledge service at baseURL.
func NewHTTPRetriever(baseURL, token string, opts ...HTTPRetrieverOption) *HTTPRetriever {
	r := &HTTPRetriever{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type searchResponse struct {
	Results []Snippet `json:"results"`
}

// Search queries the knowledge service and returns matching snippets.
func (r *HTTPRetriever) Search(ctx context.Context, query string, limit int) ([]Snippet, error) {
	u, err := url.Parse(r.baseURL + "/api/search")
	if err != nil {
		return nil, fmt.Errorf("knowledge: parse search URL: %w", err)
	}
	q := u.Query()
	q.Set("query", query)
	q.Set("limit", strconv.Itoa(limit))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("knowledge: create search request: %w", err)
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("knowledge: search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("knowledge: search failed with status %d: %s", resp.StatusCode, string(body))
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("knowledge: decode search response: %w", err)
	}
	return out.Results, nil
}
