package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	portsprov "github.com/famvault/famvault-backend/internal/core/ports/providers"

	"github.com/famvault/famvault-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// httpProvider fetches a rate table from a JSON rates API. The expected
// response shape is the common one exposed by public exchange-rate feeds:
//
//	{"base": "GHS", "rates": {"USD": 0.085, "EUR": 0.078}}
type httpProvider struct {
	endpoint string
	client   *http.Client
}

// NewHTTPProvider creates a provider that GETs endpoint with a ?base= query
// parameter. The timeout bounds the whole request.
func NewHTTPProvider(endpoint string, timeout time.Duration) portsprov.RateProvider {
	return &httpProvider{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// Ensure httpProvider implements the RateProvider interface
var _ portsprov.RateProvider = (*httpProvider)(nil)

func (p *httpProvider) Name() string {
	return "http"
}

type ratesPayload struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// FetchRates requests a full table against baseCurrency.
func (p *httpProvider) FetchRates(ctx context.Context, baseCurrency string) (domain.RateTable, error) {
	reqURL, err := url.Parse(p.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid rates endpoint: %w", err)
	}
	query := reqURL.Query()
	query.Set("base", baseCurrency)
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build rates request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rates request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rates endpoint returned status %d", resp.StatusCode)
	}

	var payload ratesPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode rates response: %w", err)
	}
	if len(payload.Rates) == 0 {
		return nil, fmt.Errorf("rates endpoint returned an empty table")
	}

	table := make(domain.RateTable, len(payload.Rates))
	for code, rate := range payload.Rates {
		table[code] = decimal.NewFromFloat(rate)
	}
	return table, nil
}
