package geodata

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// HTTPProvider fetches province GeoJSON from the boundary-data service at
// GET {base}/api/province/{name}.
type HTTPProvider struct {
	base   string
	client *http.Client
}

func NewHTTPProvider(base string) *HTTPProvider {
	return &HTTPProvider{
		base:   base,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (p *HTTPProvider) AreaNames(ctx context.Context, province string) ([]string, error) {
	u := p.base + "/api/province/" + url.PathEscape(province)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %q: %w", province, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %q: unexpected status %d", province, resp.StatusCode)
	}

	doc, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return areaNames(doc)
}
