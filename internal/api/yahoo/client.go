// Package yahoo reads index, futures and commodity bars from the Yahoo Finance
// v8 chart API.
package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/nifty-predictor/internal/market"
	httpClient "github.com/Alias1177/nifty-predictor/internal/platform/http"
	"github.com/Alias1177/nifty-predictor/models"
)

// ErrNoData is returned when a chart carries no usable bars
var ErrNoData = errors.New("yahoo: no data returned")

const defaultBaseURL = "https://query1.finance.yahoo.com"

// Client is the Yahoo Finance chart client
type Client struct {
	baseURL     string
	symbol      string
	giftSymbols []string
	httpClient  *httpClient.Client
	logger      zerolog.Logger
	now         func() time.Time
}

// ClientOptions holds options for creating a new Yahoo client
type ClientOptions struct {
	BaseURL          string
	Symbol           string
	GiftNiftySymbols []string
	RequestTimeout   time.Duration
	RequestsPerSec   int
	MaxRetries       int
	MaxRetryTimeout  time.Duration
}

// NewClient creates a new Yahoo Finance client
func NewClient(options ClientOptions) *Client {
	httpOpts := httpClient.ClientOptions{
		Timeout:         options.RequestTimeout,
		RequestsPerSec:  options.RequestsPerSec,
		MaxRetries:      options.MaxRetries,
		MaxRetryTimeout: options.MaxRetryTimeout,
	}

	// Apply defaults if not set
	if httpOpts.Timeout == 0 {
		httpOpts.Timeout = 4 * time.Second
	}
	if httpOpts.MaxRetryTimeout == 0 {
		httpOpts.MaxRetryTimeout = 10 * time.Second
	}
	if options.BaseURL == "" {
		options.BaseURL = defaultBaseURL
	}
	if options.Symbol == "" {
		options.Symbol = "^NSEI"
	}
	if len(options.GiftNiftySymbols) == 0 {
		options.GiftNiftySymbols = []string{"^NSEI", "NIFTY.SI", "NIFTY.SG"}
	}

	return &Client{
		baseURL:     options.BaseURL,
		symbol:      options.Symbol,
		giftSymbols: options.GiftNiftySymbols,
		httpClient:  httpClient.NewClient(httpOpts),
		logger:      log.With().Str("component", "yahoo_client").Logger(),
		now:         time.Now,
	}
}

// chartResponse is the subset of the v8 chart payload we read. Missing
// bars arrive as JSON nulls, hence the pointers.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				PreviousClose      float64 `json:"previousClose"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*float64 `json:"volume"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// Chart fetches raw bars for symbol. Bars with a missing or non-positive open
// or close are skipped; the result is sorted by time.
func (c *Client) Chart(ctx context.Context, symbol, interval, rng string) (*models.Series, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?interval=%s&range=%s",
		c.baseURL, url.PathEscape(symbol), url.QueryEscape(interval), url.QueryEscape(rng))

	c.logger.Debug().Str("url", u).Msg("Fetching chart")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.DoRequest(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	var chart chartResponse
	if err := json.Unmarshal(body, &chart); err != nil {
		c.logger.Error().Err(err).Str("symbol", symbol).Msg("Error parsing chart JSON")
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, ErrNoData
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	candles := make([]models.Candle, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		o, cl := at(quote.Open, i), at(quote.Close, i)
		if o <= 0 || cl <= 0 {
			continue
		}
		candles = append(candles, models.Candle{
			Time:   ts,
			Open:   o,
			High:   at(quote.High, i),
			Low:    at(quote.Low, i),
			Close:  cl,
			Volume: int64(at(quote.Volume, i)),
		})
	}
	if len(candles) == 0 {
		return nil, ErrNoData
	}

	// Sort candles by time (oldest first for proper calculations)
	sort.Slice(candles, func(i, j int) bool {
		return candles[i].Time < candles[j].Time
	})

	series := &models.Series{
		Symbol:        symbol,
		Price:         result.Meta.RegularMarketPrice,
		PreviousClose: result.Meta.PreviousClose,
		Candles:       candles,
	}
	if series.PreviousClose == 0 {
		series.PreviousClose = result.Meta.ChartPreviousClose
	}

	c.logger.Debug().Str("symbol", symbol).Int("count", len(candles)).Msg("Fetched chart")
	return series, nil
}

// IndexBars fetches the configured index and normalizes its bars. Five minute
// bars are aligned to their boundary before duplicates are merged.
func (c *Client) IndexBars(ctx context.Context, interval, rng string) ([]models.Candle, error) {
	series, err := c.Chart(ctx, c.symbol, interval, rng)
	if err != nil {
		return nil, err
	}

	var align int64
	if interval == "5m" {
		align = models.IntervalSeconds(interval)
	}
	candles := market.Normalize(series.Candles, align)
	if len(candles) == 0 {
		return nil, ErrNoData
	}
	return candles, nil
}

// GiftNifty tries each configured Gift Nifty symbol in order; the first one
// with data wins.
func (c *Client) GiftNifty(ctx context.Context, interval, rng string) (*models.Series, error) {
	var lastErr error
	for _, symbol := range c.giftSymbols {
		series, err := c.Chart(ctx, symbol, interval, rng)
		if err != nil {
			c.logger.Debug().Err(err).Str("symbol", symbol).Msg("Gift Nifty symbol unavailable")
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}
		return series, nil
	}
	if lastErr == nil {
		lastErr = ErrNoData
	}
	return nil, fmt.Errorf("no Gift Nifty data available: %w", lastErr)
}

// Commodity quotes the latest daily close against the previous close
func (c *Client) Commodity(ctx context.Context, name, symbol string) (*models.Commodity, error) {
	series, err := c.Chart(ctx, symbol, "1d", "1d")
	if err != nil {
		return nil, err
	}

	price := series.Candles[len(series.Candles)-1].Close
	previous := series.PreviousClose
	if previous == 0 {
		previous = price
	}

	change := price - previous
	var changePercent float64
	if previous > 0 {
		changePercent = change / previous * 100
	}

	return &models.Commodity{
		Name:          name,
		Symbol:        symbol,
		Price:         price,
		Change:        change,
		ChangePercent: changePercent,
		Timestamp:     c.now(),
	}, nil
}

func at(values []*float64, i int) float64 {
	if i >= len(values) || values[i] == nil {
		return 0
	}
	return *values[i]
}
