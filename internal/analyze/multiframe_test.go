package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Alias1177/nifty-predictor/models"
)

func fakeSetup(trend models.Trend, strength, confidence int) models.TrendSetup {
	s := models.Wait
	if trend == models.Uptrend && strength > 50 {
		s = models.BuyCall
	} else if trend == models.Downtrend && strength > 50 {
		s = models.BuyPut
	}
	return models.TrendSetup{
		Trend:         trend,
		TrendStrength: strength,
		Suggestion:    s,
		Confidence:    confidence,
		KeyLevels:     models.KeyLevels{Support: 90, Resistance: 110, Pivot: 100},
		Analysis:      models.SetupAnalysis{EMASignal: "bullish", RSISignal: "neutral", VolumeSignal: "normal", PriceAction: "bullish"},
		Close:         100,
	}
}

func TestCombineTimeframes(t *testing.T) {
	tests := []struct {
		name       string
		short      models.TrendSetup
		medium     models.TrendSetup
		long       models.TrendSetup
		trend      models.Trend
		strength   int
		confidence int
		suggestion models.Suggestion
		risk       models.RiskLevel
	}{
		{
			name:       "all timeframes aligned up",
			short:      fakeSetup(models.Uptrend, 75, 85),
			medium:     fakeSetup(models.Uptrend, 75, 85),
			long:       fakeSetup(models.Uptrend, 75, 85),
			trend:      models.Uptrend,
			strength:   75,
			confidence: 85,
			suggestion: models.BuyCall,
			risk:       models.RiskLow,
		},
		{
			name:       "all timeframes aligned down",
			short:      fakeSetup(models.Downtrend, 80, 90),
			medium:     fakeSetup(models.Downtrend, 60, 70),
			long:       fakeSetup(models.Downtrend, 70, 80),
			trend:      models.Downtrend,
			strength:   69,
			confidence: 79,
			suggestion: models.BuyPut,
			risk:       models.RiskLow,
		},
		{
			name:       "daily and hourly disagree",
			short:      fakeSetup(models.Sideways, 0, 30),
			medium:     fakeSetup(models.Downtrend, 75, 85),
			long:       fakeSetup(models.Uptrend, 75, 85),
			trend:      models.Uptrend,
			strength:   30,
			confidence: 71,
			suggestion: models.BuyCall,
			risk:       models.RiskMedium,
		},
		{
			name:       "tie falls back to sideways",
			short:      fakeSetup(models.Sideways, 0, 30),
			medium:     fakeSetup(models.Sideways, 0, 30),
			long:       fakeSetup(models.Sideways, 0, 30),
			trend:      models.Sideways,
			strength:   0,
			confidence: 30,
			suggestion: models.Wait,
			risk:       models.RiskHigh,
		},
		{
			name:       "aligned but not confident enough",
			short:      fakeSetup(models.Uptrend, 40, 40),
			medium:     fakeSetup(models.Uptrend, 40, 40),
			long:       fakeSetup(models.Uptrend, 40, 40),
			trend:      models.Uptrend,
			strength:   40,
			confidence: 40,
			suggestion: models.Wait,
			risk:       models.RiskLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CombineTimeframes(tt.short, tt.medium, tt.long)
			assert.Equal(t, tt.trend, got.Trend)
			assert.Equal(t, tt.strength, got.TrendStrength)
			assert.Equal(t, tt.confidence, got.Confidence)
			assert.Equal(t, tt.suggestion, got.Suggestion)
			assert.Equal(t, tt.risk, got.RiskLevel)
			assert.Equal(t, tt.long.KeyLevels, got.KeyLevels)
		})
	}
}

func TestCombineTimeframesWeightConservation(t *testing.T) {
	for _, c := range []int{0, 17, 30, 37, 50, 64, 85, 90, 100} {
		got := CombineTimeframes(
			fakeSetup(models.Uptrend, 10, c),
			fakeSetup(models.Downtrend, 20, c),
			fakeSetup(models.Sideways, 30, c),
		)
		assert.Equal(t, c, got.Confidence, "confidence %d", c)
	}
}

func TestCombineTimeframesReasoning(t *testing.T) {
	long := fakeSetup(models.Uptrend, 75, 85)
	long.Reasoning = []string{"daily note", "daily note", "1 Day Trend: UPTREND (75% strength) - BUY CALL", "another"}

	got := CombineTimeframes(fakeSetup(models.Uptrend, 75, 85), fakeSetup(models.Uptrend, 75, 85), long)

	assert.Equal(t, []string{
		"1 Day Trend: UPTREND (75% strength) - BUY CALL",
		"1 Hour Trend: UPTREND (75% strength) - BUY CALL",
		"15 Min Trend: UPTREND (75% strength) - BUY CALL",
		"STRONG BUY CALL: all timeframes aligned in UPTREND",
		"High probability setup, all timeframes confirm bullish momentum",
		"daily note",
		"another",
	}, got.Reasoning)

	assert.Equal(t, "15m:neutral | 1h:neutral | 1d:neutral", got.Analysis.RSISignal)
	assert.Equal(t, "Multi-Timeframe: bullish", got.Analysis.EMASignal)
	assert.Equal(t, models.TimeframeSignal{Trend: models.Uptrend, Strength: 75, Signal: "BUY CALL"}, got.TimeframeAnalysis[models.Timeframe1h])
	assert.Len(t, got.TimeframeAnalysis, 3)
}

func TestCombineTimeframesBearishFraming(t *testing.T) {
	down := fakeSetup(models.Downtrend, 75, 85)
	strong := CombineTimeframes(down, down, down)
	assert.Equal(t, models.BuyPut, strong.Suggestion)
	assert.Contains(t, strong.Reasoning, "STRONG BUY PUT: all timeframes aligned in DOWNTREND")
	assert.Contains(t, strong.Reasoning, "High probability setup, all timeframes confirm bearish momentum")

	standard := CombineTimeframes(fakeSetup(models.Sideways, 40, 50), fakeSetup(models.Downtrend, 70, 70), fakeSetup(models.Downtrend, 70, 70))
	assert.Equal(t, models.Downtrend, standard.Trend)
	assert.Equal(t, models.BuyPut, standard.Suggestion)
	assert.Equal(t, models.RiskMedium, standard.RiskLevel)
	assert.Contains(t, standard.Reasoning, "BUY PUT: overall trend is DOWNTREND across multiple timeframes")
}

func TestAnalyzeMultiTimeframe(t *testing.T) {
	got := AnalyzeMultiTimeframe(risingCandles(30), risingCandles(40), risingCandles(30), models.DefaultSessionBars)

	assert.Equal(t, models.Uptrend, got.Trend)
	assert.Equal(t, models.BuyCall, got.Suggestion)
	assert.Equal(t, models.RiskLow, got.RiskLevel)
	assert.InDelta(t, 130*0.985, got.TradingStrategy.StopLoss, 1e-9)
	assert.InDelta(t, 120, got.KeyLevels.Pivot, 1e-9)
}

func TestAnalyzeMultiTimeframeInsufficientData(t *testing.T) {
	got := AnalyzeMultiTimeframe(nil, nil, nil, models.DefaultSessionBars)

	assert.Equal(t, models.Sideways, got.Trend)
	assert.Equal(t, models.Wait, got.Suggestion)
	assert.Equal(t, 0, got.Confidence)
	assert.Equal(t, models.RiskHigh, got.RiskLevel)
	assert.Contains(t, got.Reasoning, "Insufficient data")
}
