package calculate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alias1177/nifty-predictor/models"
)

func lowsToCandles(lows []float64, spread float64) []models.Candle {
	return generateTestCandles(len(lows), func(i int) models.Candle {
		l := lows[i]
		return models.Candle{Open: l + spread/2, High: l + spread, Low: l, Close: l + spread/2, Volume: 1000}
	})
}

func sineCandles(n int) []models.Candle {
	return generateTestCandles(n, func(i int) models.Candle {
		mid := 20000 + 300*math.Sin(float64(i)/4) + float64(i)
		return models.Candle{Open: mid - 5, High: mid + 20, Low: mid - 20, Close: mid + 5, Volume: 1000}
	})
}

func TestDetectLevelsTooFewBars(t *testing.T) {
	levels := DetectLevels(sineCandles(9), 5)
	require.NotNil(t, levels)
	assert.Empty(t, levels)
}

func TestDetectLevelsClustering(t *testing.T) {
	lows := []float64{105, 104, 103, 100, 103, 104, 105, 104, 103, 100.5, 103, 104, 105, 104, 103}
	levels := DetectLevels(lowsToCandles(lows, 2), 2)

	expected := []models.Level{
		{Price: 107, Type: models.LevelResistance, Strength: 2.0 / 3.0, Touches: 2},
		{Price: 100.25, Type: models.LevelSupport, Strength: 2.0 / 3.0, Touches: 2},
	}
	assert.Equal(t, expected, levels)
}

func TestDetectLevelsTiesAreNotPivots(t *testing.T) {
	// two equal lows inside one window disqualify each other
	lows := []float64{105, 104, 100, 100, 104, 105, 106, 107, 108, 109, 110, 111}
	levels := DetectLevels(lowsToCandles(lows, 2), 2)

	for _, l := range levels {
		if l.Type == models.LevelSupport {
			// only the synthesized fallback may be present
			assert.Equal(t, 100.0, l.Price)
			assert.Equal(t, 2, l.Touches)
			assert.InDelta(t, 0.5, l.Strength, 1e-9)
		}
	}
}

func TestDetectLevelsFallbackOnUptrend(t *testing.T) {
	candles := generateTestCandles(30, func(i int) models.Candle {
		l := 100 + float64(i)
		return models.Candle{Open: l + 1, High: l + 2, Low: l, Close: l + 1.5, Volume: 1000}
	})

	levels := DetectLevels(candles, 5)
	require.Len(t, levels, 1)
	assert.Equal(t, models.Level{Price: 110, Type: models.LevelSupport, Strength: 0.4, Touches: 1}, levels[0])
}

func TestDetectLevelsCapWithFallback(t *testing.T) {
	candles := generateTestCandles(30, func(i int) models.Candle {
		l := 100 + 5*float64(i)
		h := l + 1
		if i%2 == 1 {
			h = l + 10
		}
		return models.Candle{Open: l + 0.5, High: h, Low: l, Close: l + 0.5, Volume: 1000}
	})

	levels := DetectLevels(candles, 1)
	require.Len(t, levels, MaxLevels)
	assert.Equal(t, models.LevelSupport, levels[0].Type)
	assert.Equal(t, 150.0, levels[0].Price)
	for _, l := range levels[1:] {
		assert.Equal(t, models.LevelResistance, l.Type)
	}
}

func TestDetectLevelsInvariants(t *testing.T) {
	inputs := map[string][]models.Candle{
		"sine":      sineCandles(200),
		"short":     sineCandles(10),
		"uptrend":   lowsToCandles([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, 1),
		"downtrend": lowsToCandles([]float64{12, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1}, 1),
	}

	for name, candles := range inputs {
		t.Run(name, func(t *testing.T) {
			first := DetectLevels(candles, 5)
			second := DetectLevels(candles, 5)
			assert.Equal(t, first, second)

			assert.LessOrEqual(t, len(first), MaxLevels)
			supports := 0
			for i, l := range first {
				assert.GreaterOrEqual(t, l.Strength, 0.0)
				assert.LessOrEqual(t, l.Strength, 1.0)
				assert.GreaterOrEqual(t, l.Touches, 1)
				if i > 0 {
					assert.LessOrEqual(t, l.Strength, first[i-1].Strength)
				}
				if l.Type == models.LevelSupport {
					supports++
				}
			}
			assert.Positive(t, supports)
		})
	}
}

func TestFindNearestLevel(t *testing.T) {
	levels := []models.Level{
		{Price: 100, Type: models.LevelSupport, Strength: 0.5, Touches: 1},
		{Price: 110, Type: models.LevelResistance, Strength: 1, Touches: 3},
		{Price: 95, Type: models.LevelSupport, Strength: 0.3, Touches: 1},
	}

	l, ok := FindNearestLevel(107, levels, "")
	require.True(t, ok)
	assert.Equal(t, 110.0, l.Price)

	l, ok = FindNearestLevel(107, levels, models.LevelSupport)
	require.True(t, ok)
	assert.Equal(t, 100.0, l.Price)

	_, ok = FindNearestLevel(107, levels[2:], models.LevelResistance)
	assert.False(t, ok)
}

func TestIsNearLevel(t *testing.T) {
	level := models.Level{Price: 100}
	assert.True(t, IsNearLevel(102, level, DefaultNearThreshold))
	assert.True(t, IsNearLevel(98, level, DefaultNearThreshold))
	assert.False(t, IsNearLevel(102.5, level, DefaultNearThreshold))
	assert.False(t, IsNearLevel(1, models.Level{}, DefaultNearThreshold))
}

func TestTradingSignals(t *testing.T) {
	candles := closesOnly(100, 101, 101.5)
	levels := []models.Level{
		{Price: 100, Type: models.LevelSupport, Strength: 2.0 / 3.0, Touches: 2},
		{Price: 120, Type: models.LevelResistance, Strength: 1, Touches: 3},
	}

	signals := TradingSignals(candles, levels, 0)
	require.Len(t, signals, 1)
	assert.Equal(t, models.BuyCall, signals[0].Type)
	assert.Equal(t, 101.5, signals[0].Price)
	assert.InDelta(t, 66.67, signals[0].Confidence, 0.01)
	assert.Equal(t, candles[2].Time, signals[0].Timestamp)

	assert.Nil(t, TradingSignals(nil, levels, 0))

	wide := TradingSignals(candles, levels, 0.2)
	require.Len(t, wide, 2)
	assert.Equal(t, models.BuyPut, wide[1].Type)
	assert.Equal(t, 100.0, wide[1].Confidence)
}
