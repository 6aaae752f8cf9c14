package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpClient "github.com/Alias1177/nifty-predictor/internal/platform/http"
)

const chartJSON = `{"chart":{"result":[{
  "meta":{"symbol":"%s","regularMarketPrice":22050,"previousClose":%s},
  "timestamp":[1736912400,1736912100,1736912160,1736912220],
  "indicators":{"quote":[{
    "open":  [22040, 22000, null, 22010],
    "high":  [22060, 22020, 22030, 22025],
    "low":   [22030, 21990, 22000, 22005],
    "close": [22050, 22010, 22020, 22015],
    "volume":[100, 10, 20, 30]
  }]}
}],"error":null}}`

func newTestServer(t *testing.T, charts map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		symbol := strings.TrimPrefix(r.URL.Path, "/v8/finance/chart/")
		body, ok := charts[symbol]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(srv *httptest.Server, gift ...string) *Client {
	c := NewClient(ClientOptions{
		BaseURL:          srv.URL,
		Symbol:           "^NSEI",
		GiftNiftySymbols: gift,
		RequestTimeout:   time.Second,
		RequestsPerSec:   100,
		MaxRetries:       1,
		MaxRetryTimeout:  time.Second,
	})
	c.now = func() time.Time { return time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC) }
	return c
}

func TestChart(t *testing.T) {
	srv := newTestServer(t, map[string]string{"^NSEI": fmt.Sprintf(chartJSON, "^NSEI", "21900")})

	series, err := newTestClient(srv).Chart(context.Background(), "^NSEI", "1m", "1d")
	require.NoError(t, err)

	// the null open is skipped and bars come back oldest first
	require.Len(t, series.Candles, 3)
	assert.Equal(t, int64(1736912100), series.Candles[0].Time)
	assert.Equal(t, int64(1736912220), series.Candles[1].Time)
	assert.Equal(t, int64(1736912400), series.Candles[2].Time)
	assert.Equal(t, int64(10), series.Candles[0].Volume)
	assert.Equal(t, 21900.0, series.PreviousClose)
	assert.Equal(t, "^NSEI", series.Symbol)
}

func TestChartErrors(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"EMPTY":  `{"chart":{"result":[],"error":null}}`,
		"BROKEN": `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`,
		"NULLS":  `{"chart":{"result":[{"timestamp":[1],"indicators":{"quote":[{"open":[null],"close":[null]}]}}]}}`,
	})
	c := newTestClient(srv)

	_, err := c.Chart(context.Background(), "EMPTY", "1d", "1d")
	assert.ErrorIs(t, err, ErrNoData)

	_, err = c.Chart(context.Background(), "NULLS", "1d", "1d")
	assert.ErrorIs(t, err, ErrNoData)

	_, err = c.Chart(context.Background(), "BROKEN", "1d", "1d")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delisted")

	_, err = c.Chart(context.Background(), "MISSING", "1d", "1d")
	var statusErr *httpClient.HTTPStatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestIndexBarsAlignsFiveMinuteBars(t *testing.T) {
	srv := newTestServer(t, map[string]string{"^NSEI": fmt.Sprintf(chartJSON, "^NSEI", "21900")})

	candles, err := newTestClient(srv).IndexBars(context.Background(), "5m", "1d")
	require.NoError(t, err)

	// 03:35 and 03:37 fall in the same window, 03:40 stands alone
	require.Len(t, candles, 2)
	assert.Equal(t, int64(1736912100), candles[0].Time)
	assert.Equal(t, 22000.0, candles[0].Open)
	assert.Equal(t, 22015.0, candles[0].Close)
	assert.Equal(t, 22025.0, candles[0].High)
	assert.Equal(t, 21990.0, candles[0].Low)
	assert.Equal(t, int64(40), candles[0].Volume)
	assert.Equal(t, int64(1736912400), candles[1].Time)
}

func TestGiftNiftyFallsBackThroughSymbols(t *testing.T) {
	srv := newTestServer(t, map[string]string{"NIFTY.SI": fmt.Sprintf(chartJSON, "NIFTY.SI", "21900")})

	series, err := newTestClient(srv, "GIFT.X", "NIFTY.SI").GiftNifty(context.Background(), "15m", "1d")
	require.NoError(t, err)
	assert.Equal(t, "NIFTY.SI", series.Symbol)
	assert.NotEmpty(t, series.Candles)

	_, err = newTestClient(srv, "GIFT.X", "GIFT.Y").GiftNifty(context.Background(), "15m", "1d")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no Gift Nifty data available")
}

func TestCommodity(t *testing.T) {
	tests := []struct {
		name          string
		previous      string
		change        float64
		changePercent float64
	}{
		{name: "with previous close", previous: "22000", change: 50, changePercent: 50.0 / 22000 * 100},
		{name: "missing previous close", previous: "0", change: 0, changePercent: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, map[string]string{"GC=F": fmt.Sprintf(chartJSON, "GC=F", tt.previous)})

			quote, err := newTestClient(srv).Commodity(context.Background(), "Gold", "GC=F")
			require.NoError(t, err)
			assert.Equal(t, "Gold", quote.Name)
			assert.Equal(t, "GC=F", quote.Symbol)
			assert.Equal(t, 22050.0, quote.Price)
			assert.InDelta(t, tt.change, quote.Change, 1e-9)
			assert.InDelta(t, tt.changePercent, quote.ChangePercent, 1e-9)
			assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), quote.Timestamp)
		})
	}
}
