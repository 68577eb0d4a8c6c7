package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// HTTPFXProvider fetches exchange rates from an exchangerate-api style
// endpoint: GET {baseURL}/{base} returns {"rates": {"SGD": 0.0161, ...}} with
// each value quoted as units of target per 1 unit of base. Rates are inverted
// so callers receive base-currency units per 1 unit of quote.
type HTTPFXProvider struct {
	baseURL    string
	httpClient *http.Client
	retries    int
	backoff    time.Duration
}

// NewHTTPFXProvider creates an HTTP FX provider with a bounded request
// timeout and a small fixed retry budget for transient failures.
func NewHTTPFXProvider(baseURL string, timeout time.Duration, retries int, backoff time.Duration) FXProvider {
	return &HTTPFXProvider{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		retries:    retries,
		backoff:    backoff,
	}
}

// FetchRates retrieves rates for the quote currencies. A currency missing
// from the upstream response is simply absent from the result map.
func (p *HTTPFXProvider) FetchRates(ctx context.Context, base string, quotes []string) (map[string]decimal.Decimal, error) {
	var lastErr error
	for attempt := 0; attempt <= p.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(p.backoff * time.Duration(1<<(attempt-1))):
			}
		}
		rates, err := p.fetchOnce(ctx, base, quotes)
		if err == nil {
			return rates, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("fx fetch failed after %d attempts: %w", p.retries+1, lastErr)
}

func (p *HTTPFXProvider) fetchOnce(ctx context.Context, base string, quotes []string) (map[string]decimal.Decimal, error) {
	url := fmt.Sprintf("%s/%s", p.baseURL, strings.ToUpper(base))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %d", resp.StatusCode)
	}

	var raw struct {
		Rates map[string]decimal.Decimal `json:"rates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(raw.Rates) == 0 {
		return nil, fmt.Errorf("API response missing rates")
	}

	// Upstream quotes target-per-base; invert to base-per-target.
	result := make(map[string]decimal.Decimal, len(quotes))
	for _, quote := range quotes {
		q := strings.ToUpper(quote)
		v, ok := raw.Rates[q]
		if !ok || !v.IsPositive() {
			continue
		}
		result[q] = decimal.NewFromInt(1).Div(v)
	}
	return result, nil
}
