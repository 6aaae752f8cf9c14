package market

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/nifty-predictor/models"
)

func TestNormalize(t *testing.T) {
	base := int64(1736912100) // 03:35:00 UTC, on a 5 minute boundary

	raw := []models.Candle{
		{Time: base + 420, Open: 22010, High: 22020, Low: 22000, Close: 22015, Volume: 10},
		{Time: base + 61, Open: 22000, High: 22005, Low: 21990, Close: 22002.333, Volume: 5},
		{Time: base + 200, Open: 22002, High: 22012, Low: 21995, Close: 22008, Volume: 7},
		{Time: base + 500, Open: 0, High: 22020, Low: 22000, Close: 22015},
		{Time: base + 900, Open: 22000, High: 21990, Low: 22010, Close: 22005, Volume: 1},
	}

	got := Normalize(raw, 300)
	require.Len(t, got, 3)

	// two bars inside the first window merge
	assert.Equal(t, models.Candle{Time: base, Open: 22000, High: 22012, Low: 21990, Close: 22008, Volume: 12}, got[0])
	assert.Equal(t, base+300, got[1].Time)
	// envelope repaired from the body
	assert.Equal(t, models.Candle{Time: base + 900, Open: 22000, High: 22005, Low: 22000, Close: 22005, Volume: 1}, got[2])
}

func TestNormalizeRounds(t *testing.T) {
	got := Normalize([]models.Candle{{Time: 100, Open: 100.005, High: 100.2345, Low: 99.9951, Close: 100.1}}, 0)
	require.Len(t, got, 1)
	assert.Equal(t, 100.01, got[0].Open)
	assert.Equal(t, 100.23, got[0].High)
	assert.Equal(t, 100.0, got[0].Low)
	assert.Equal(t, int64(100), got[0].Time)
}

func TestNormalizeRanges(t *testing.T) {
	tests := []struct {
		name string
		in   models.Candle
		keep bool
		high float64
		low  float64
	}{
		{name: "normal range", in: models.Candle{Time: 1, Open: 100, High: 102, Low: 99, Close: 101}, keep: true, high: 102, low: 99},
		{name: "wide wicks capped", in: models.Candle{Time: 1, Open: 100, High: 108, Low: 98, Close: 100}, keep: true, high: 105.5, low: 100},
		{name: "huge body dropped", in: models.Candle{Time: 1, Open: 100, High: 112, Low: 100, Close: 112}, keep: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize([]models.Candle{tt.in}, 0)
			if !tt.keep {
				assert.Empty(t, got)
				return
			}
			require.Len(t, got, 1)
			assert.InDelta(t, tt.high, got[0].High, 1e-9)
			assert.InDelta(t, tt.low, got[0].Low, 1e-9)
		})
	}
}

func TestNormalizeSorts(t *testing.T) {
	got := Normalize([]models.Candle{
		{Time: 3, Open: 1, High: 1, Low: 1, Close: 1},
		{Time: 1, Open: 1, High: 1, Low: 1, Close: 1},
		{Time: 2, Open: 1, High: 1, Low: 1, Close: 1},
	}, 0)
	require.Len(t, got, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{got[0].Time, got[1].Time, got[2].Time})
	assert.Empty(t, Normalize(nil, 300))
}

func TestGenerateCandles(t *testing.T) {
	now := time.Date(2025, 1, 15, 9, 47, 31, 0, time.UTC)

	tests := []struct {
		name     string
		interval int
		last     time.Time
	}{
		{name: "5 minute", interval: 5, last: time.Date(2025, 1, 15, 9, 45, 0, 0, time.UTC)},
		{name: "15 minute", interval: 15, last: time.Date(2025, 1, 15, 9, 45, 0, 0, time.UTC)},
		{name: "hourly", interval: 60, last: time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)},
		{name: "4 hour", interval: 240, last: time.Date(2025, 1, 15, 8, 0, 0, 0, time.UTC)},
		{name: "daily", interval: 1440, last: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candles := GenerateCandles(rand.New(rand.NewSource(1)), 120, tt.interval, now)
			require.Len(t, candles, 120)
			assert.Equal(t, tt.last.Unix(), candles[len(candles)-1].Time)

			step := int64(tt.interval * 60)
			for i, c := range candles {
				if i > 0 {
					assert.Equal(t, step, c.Time-candles[i-1].Time)
				}
				assert.GreaterOrEqual(t, c.High, c.Open)
				assert.GreaterOrEqual(t, c.High, c.Close)
				assert.LessOrEqual(t, c.Low, c.Open)
				assert.LessOrEqual(t, c.Low, c.Close)
				assert.Greater(t, c.Low, 19000.0)
				assert.Less(t, c.High, 26000.0)
				assert.GreaterOrEqual(t, c.Volume, int64(10000000))
			}
		})
	}
}

func TestGenerateCandlesDeterministic(t *testing.T) {
	now := time.Date(2025, 1, 15, 9, 47, 0, 0, time.UTC)
	a := GenerateCandles(rand.New(rand.NewSource(99)), 50, 15, now)
	b := GenerateCandles(rand.New(rand.NewSource(99)), 50, 15, now)
	assert.Equal(t, a, b)
	assert.Empty(t, GenerateCandles(rand.New(rand.NewSource(99)), 0, 15, now))
}

func TestIntervalMinutes(t *testing.T) {
	assert.Equal(t, 5, IntervalMinutes("5m"))
	assert.Equal(t, 15, IntervalMinutes("15m"))
	assert.Equal(t, 60, IntervalMinutes("1h"))
	assert.Equal(t, 240, IntervalMinutes("4h"))
	assert.Equal(t, 1440, IntervalMinutes("1d"))
	assert.Equal(t, 1, IntervalMinutes("weird"))
}

func TestMockFIIDII(t *testing.T) {
	// 20:10 UTC is already the next day in IST
	now := time.Date(2025, 1, 15, 20, 10, 0, 0, time.UTC)
	flows := MockFIIDII(now)

	assert.Equal(t, "2025-01-16", flows.Date)
	assert.Equal(t, flows.FII.Equity-flows.DII.Equity, flows.NetFII)
	assert.GreaterOrEqual(t, flows.FII.Equity, -2000.0)
	assert.LessOrEqual(t, flows.FII.Equity, 3000.0)

	switch {
	case flows.FII.Equity > 1000:
		assert.LessOrEqual(t, flows.DII.Equity, -200.0)
	case flows.FII.Equity < -1000:
		assert.GreaterOrEqual(t, flows.DII.Equity, 200.0)
	default:
		assert.GreaterOrEqual(t, flows.DII.Equity, -1500.0)
		assert.LessOrEqual(t, flows.DII.Equity, 2500.0)
	}

	// stable within the hour
	assert.Equal(t, flows, MockFIIDII(now.Add(10*time.Minute)))
}

func TestSeededRandomRange(t *testing.T) {
	for seed := 0.0; seed < 200; seed += 0.7 {
		v := seededRandom(seed)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestFallbackCommodities(t *testing.T) {
	now := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	c := FallbackCommodities(now)

	require.NotNil(t, c.Gold)
	require.NotNil(t, c.CrudeOil)
	assert.Equal(t, 2650.50, c.Gold.Price)
	assert.Equal(t, -0.20, c.Gold.ChangePercent)
	assert.Equal(t, 78.45, c.CrudeOil.Price)
	assert.Equal(t, 1.10, c.CrudeOil.ChangePercent)
	assert.Equal(t, now, c.Gold.Timestamp)
}
