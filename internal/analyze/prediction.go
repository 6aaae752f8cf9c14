package analyze

import (
	"math"

	"github.com/Alias1177/nifty-predictor/models"
)

const (
	predictionWindow = 20

	minConfidence = 5
	maxConfidence = 95
)

// PredictNextDay derives a direction, confidence and price target from the last 20 bars.
// It keeps its own EMA (seeded with the window's first close) and RSI so the
// numbers stay independent of the setup analyzer.
func PredictNextDay(candles []models.Candle) models.Prediction {
	if len(candles) == 0 {
		return models.Prediction{
			Confidence: minConfidence,
			Direction:  models.Neutral,
			Reasoning:  []string{"Insufficient data"},
			Indicators: models.IndicatorSnapshot{RSI: 50, VolumeTrend: models.VolumeNeutral},
		}
	}

	recent := candles
	if len(recent) > predictionWindow {
		recent = recent[len(recent)-predictionWindow:]
	}
	first := recent[0].Close
	current := recent[len(recent)-1].Close

	indicators := models.IndicatorSnapshot{
		EMA9:  windowEMA(recent, 9),
		EMA21: windowEMA(recent, 21),
		EMA50: windowEMA(recent, 50),
		RSI:   windowRSI(recent, 14),
	}
	indicators.VolumeStrength, indicators.VolumeTrend = lastBarVolume(recent)

	direction := models.Neutral
	confidence := 50
	var reasoning []string

	// EMA alignment
	if indicators.EMA9 > indicators.EMA21 && indicators.EMA21 > indicators.EMA50 {
		direction = models.Bullish
		confidence += 20
		reasoning = append(reasoning, "Bullish EMA alignment (9 > 21 > 50)")
	} else if indicators.EMA9 < indicators.EMA21 && indicators.EMA21 < indicators.EMA50 {
		direction = models.Bearish
		confidence += 20
		reasoning = append(reasoning, "Bearish EMA alignment (9 < 21 < 50)")
	}

	// RSI extremes override the EMA direction
	if indicators.RSI < 30 {
		direction = models.Bullish
		confidence += 15
		reasoning = append(reasoning, "RSI indicates oversold condition")
	} else if indicators.RSI > 70 {
		direction = models.Bearish
		confidence += 15
		reasoning = append(reasoning, "RSI indicates overbought condition")
	}

	// Momentum
	changePercent := 0.0
	if first != 0 {
		changePercent = (current - first) / first * 100
	}
	if changePercent > 1 {
		direction = models.Bullish
		confidence += 10
		reasoning = append(reasoning, "Strong upward momentum")
	} else if changePercent < -1 {
		direction = models.Bearish
		confidence += 10
		reasoning = append(reasoning, "Strong downward momentum")
	}

	if indicators.VolumeTrend == models.VolumeIncreasing && direction != models.Neutral {
		confidence += 10
		reasoning = append(reasoning, "Volume confirms trend")
	}

	if len(reasoning) == 0 {
		reasoning = []string{"Neutral market conditions"}
	}

	support, resistance := recent[0].Low, recent[0].High
	for _, c := range recent[1:] {
		support = math.Min(support, c.Low)
		resistance = math.Max(resistance, c.High)
	}

	return models.Prediction{
		NextDayPrice:    current * (1 + changePercent/100*0.5),
		Confidence:      clampInt(confidence, minConfidence, maxConfidence),
		Direction:       direction,
		SupportLevel:    support,
		ResistanceLevel: resistance,
		Reasoning:       reasoning,
		Indicators:      indicators,
	}
}

func windowEMA(candles []models.Candle, period int) float64 {
	k := 2.0 / float64(period+1)
	ema := candles[0].Close
	for _, c := range candles[1:] {
		ema = c.Close*k + ema*(1-k)
	}
	return ema
}

func windowRSI(candles []models.Candle, period int) float64 {
	if len(candles) < period+1 {
		return 50
	}
	var gains, losses float64
	for i := len(candles) - period; i < len(candles); i++ {
		change := candles[i].Close - candles[i-1].Close
		if change > 0 {
			gains += change
		} else {
			losses -= change
		}
	}
	avgLoss := losses / float64(period)
	if avgLoss == 0 {
		return 100
	}
	rs := (gains / float64(period)) / avgLoss
	return 100 - 100/(1+rs)
}

// lastBarVolume compares the latest bar's volume with the window average (0-100)
func lastBarVolume(candles []models.Candle) (float64, models.VolumeTrend) {
	var total float64
	for _, c := range candles {
		total += float64(c.Volume)
	}
	avg := total / float64(len(candles))
	last := float64(candles[len(candles)-1].Volume)

	strength := 0.0
	if avg > 0 {
		strength = math.Min(100, last/avg*100)
	}

	switch {
	case last > avg*1.2:
		return strength, models.VolumeIncreasing
	case last < avg*0.8:
		return strength, models.VolumeDecreasing
	}
	return strength, models.VolumeNeutral
}
