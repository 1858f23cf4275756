package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"salesdash/internal/core"
)

// DefaultSeedURL is the public product-transaction dataset.
const DefaultSeedURL = "https://s3.amazonaws.com/roxiler.com/product_transaction.json"

// HTTPSource fetches the seed dataset as a JSON array over HTTP.
type HTTPSource struct {
	client *http.Client
	url    string
}

var _ Source = (*HTTPSource)(nil)

func NewHTTPSource(client *http.Client, url string) *HTTPSource {
	if client == nil {
		client = http.DefaultClient
	}
	if url == "" {
		url = DefaultSeedURL
	}
	return &HTTPSource{client: client, url: url}
}

func (s *HTTPSource) Name() string {
	return "http"
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]RawRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", core.ErrUpstreamFetch, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", core.ErrUpstreamFetch, s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: get %s: unexpected status %d", core.ErrUpstreamFetch, s.url, resp.StatusCode)
	}

	var raws []RawRecord
	if err := json.NewDecoder(resp.Body).Decode(&raws); err != nil {
		return nil, fmt.Errorf("%w: decode seed payload: %v", core.ErrUpstreamFetch, err)
	}

	return raws, nil
}
