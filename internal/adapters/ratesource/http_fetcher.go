package ratesource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jdvillegas/condo_mgmt_app/internal/apperrors"
	portssvc "github.com/jdvillegas/condo_mgmt_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// fetchTimeout bounds the outbound rate fetch. The sync caller recovers via
// its fallback constant, so a slow upstream must never hold a request open.
const fetchTimeout = 10 * time.Second

// HTTPFetcher retrieves the current dollar rate from a JSON endpoint shaped
// like {"dollar": 140.25}.
type HTTPFetcher struct {
	url    string
	client *http.Client
}

// NewHTTPFetcher creates a fetcher against the given endpoint.
func NewHTTPFetcher(url string) *HTTPFetcher {
	return &HTTPFetcher{
		url: url,
		client: &http.Client{
			Timeout: fetchTimeout,
		},
	}
}

var _ portssvc.RateFetcher = (*HTTPFetcher)(nil)

type dollarPayload struct {
	Dollar decimal.Decimal `json:"dollar"`
}

// FetchDollarRate performs the fetch. All failure modes (network, status,
// malformed body, non-positive value) map to ErrUpstreamUnavailable so the
// caller has a single recovery path.
func (f *HTTPFetcher) FetchDollarRate(ctx context.Context) (decimal.Decimal, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", apperrors.ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", apperrors.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("%w: unexpected status %d", apperrors.ErrUpstreamUnavailable, resp.StatusCode)
	}

	var payload dollarPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return decimal.Zero, fmt.Errorf("%w: malformed body: %v", apperrors.ErrUpstreamUnavailable, err)
	}
	if payload.Dollar.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: non-positive rate %s", apperrors.ErrUpstreamUnavailable, payload.Dollar)
	}
	return payload.Dollar, nil
}
