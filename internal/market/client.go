// Package market is a CoinGecko API client. Failed calls never propagate to
// callers: prices degrade to a fixed fallback value and market listings to an
// empty result, so the chat flow stays usable when the API is down.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/Alias1177/Advisor/models"
)

const (
	defaultBaseURL        = "https://api.coingecko.com/api/v3"
	defaultRequestTimeout = 10 * time.Second
	defaultRequestsPerSec = 5

	// CoinGecko caps per_page well above this, but the assistant never needs
	// more than the top 20 in a single reply.
	maxPerPage = 20
)

// fallbackPrice substitutes for a live quote when the fetch fails.
var fallbackPrice = decimal.NewFromInt(100)

// coinIDs maps symbols and common names to CoinGecko identifiers. Unknown
// symbols pass through lowercased.
var coinIDs = map[string]string{
	"bitcoin":  "bitcoin",
	"btc":      "bitcoin",
	"ethereum": "ethereum",
	"eth":      "ethereum",
	"solana":   "solana",
	"sol":      "solana",
	"cardano":  "cardano",
	"ada":      "cardano",
	"ripple":   "ripple",
	"xrp":      "ripple",
}

// Client is a rate-limited CoinGecko API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new Client.
type ClientOptions struct {
	BaseURL        string
	RequestTimeout time.Duration
	RequestsPerSec int
}

// NewClient creates a new CoinGecko API client.
func NewClient(options ClientOptions) *Client {
	if options.BaseURL == "" {
		options.BaseURL = defaultBaseURL
	}
	if options.RequestTimeout == 0 {
		options.RequestTimeout = defaultRequestTimeout
	}
	if options.RequestsPerSec == 0 {
		options.RequestsPerSec = defaultRequestsPerSec
	}

	return &Client{
		baseURL: options.BaseURL,
		httpClient: &http.Client{
			Timeout: options.RequestTimeout,
		},
		limiter: rate.NewLimiter(rate.Every(time.Second), options.RequestsPerSec),
		logger:  log.With().Str("component", "market_client").Logger(),
	}
}

// CoinID resolves a user-facing symbol or name to its CoinGecko identifier.
func CoinID(symbol string) string {
	s := strings.ToLower(symbol)
	if id, ok := coinIDs[s]; ok {
		return id
	}
	return s
}

// GetPrice returns the current USD price for a symbol. Any failure is logged
// and degraded to the fallback price.
func (c *Client) GetPrice(ctx context.Context, symbol string) decimal.Decimal {
	coinID := CoinID(symbol)

	price, err := c.fetchPrice(ctx, coinID)
	if err != nil {
		c.logger.Warn().Err(err).Str("symbol", symbol).Str("coin_id", coinID).
			Msg("Price fetch failed, using fallback")
		return fallbackPrice
	}

	return price
}

func (c *Client) fetchPrice(ctx context.Context, coinID string) (decimal.Decimal, error) {
	url := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd", c.baseURL, coinID)

	body, err := c.get(ctx, url)
	if err != nil {
		return decimal.Decimal{}, err
	}

	var quotes map[string]map[string]decimal.Decimal
	if err := json.Unmarshal(body, &quotes); err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing JSON: %w", err)
	}

	quote, ok := quotes[coinID]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("no quote for %q in response", coinID)
	}
	price, ok := quote["usd"]
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("no usd price for %q in response", coinID)
	}

	return price, nil
}

// marketRow mirrors one entry of the /coins/markets response.
type marketRow struct {
	Symbol             string              `json:"symbol"`
	CurrentPrice       decimal.NullDecimal `json:"current_price"`
	PriceChangePercent decimal.NullDecimal `json:"price_change_percentage_24h"`
}

// GetTopMarketItems returns up to limit coins ranked by market capitalization,
// highest first. At most 20 are requested from the API per call; entries
// without a symbol are skipped and missing numeric fields default to zero.
// Any failure is logged and degraded to an empty result.
func (c *Client) GetTopMarketItems(ctx context.Context, limit int) []models.MarketItem {
	items, err := c.fetchTopMarkets(ctx, limit)
	if err != nil {
		c.logger.Warn().Err(err).Int("limit", limit).Msg("Markets fetch failed")
		return nil
	}

	return items
}

func (c *Client) fetchTopMarkets(ctx context.Context, limit int) ([]models.MarketItem, error) {
	perPage := limit
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	url := fmt.Sprintf("%s/coins/markets?vs_currency=usd&order=market_cap_desc&per_page=%d&page=1",
		c.baseURL, perPage)

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var rows []marketRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	items := make([]models.MarketItem, 0, len(rows))
	for _, row := range rows {
		if len(items) >= limit {
			break
		}
		if row.Symbol == "" {
			continue
		}

		item := models.MarketItem{Symbol: strings.ToUpper(row.Symbol)}
		if row.CurrentPrice.Valid {
			item.CurrentPrice = row.CurrentPrice.Decimal
		}
		if row.PriceChangePercent.Valid {
			item.PriceChangePercent24h = row.PriceChangePercent.Decimal
		}
		items = append(items, item)
	}

	return items, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	// Wait for rate limiter
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("non-200 status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return body, nil
}
