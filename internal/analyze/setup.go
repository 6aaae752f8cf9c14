package analyze

import (
	"fmt"
	"math"

	"github.com/Alias1177/nifty-predictor/internal/calculate"
	"github.com/Alias1177/nifty-predictor/models"
)

const (
	minSetupBars = 20

	stopLossPercent = 1.5
	target1Percent  = 2.5
	target2Percent  = 4.0

	gapThresholdPercent = 0.1
)

// SetupOption customizes AnalyzeSession
type SetupOption func(*setupOptions)

type setupOptions struct {
	preMarketPrice float64
}

// WithPreMarketPrice compares a pre-market quote against the session close
func WithPreMarketPrice(price float64) SetupOption {
	return func(o *setupOptions) {
		o.preMarketPrice = price
	}
}

// AnalyzeSession scores the trailing sessionBars candles into a trend setup.
// Fewer than 20 usable bars yield the default wait setup.
func AnalyzeSession(candles []models.Candle, sessionBars int, opts ...SetupOption) models.TrendSetup {
	var o setupOptions
	for _, opt := range opts {
		opt(&o)
	}

	if sessionBars <= 0 {
		sessionBars = models.DefaultSessionBars
	}
	session := candles
	if len(session) > sessionBars {
		session = session[len(session)-sessionBars:]
	}
	if len(session) < minSetupBars {
		return defaultSetup()
	}

	dayOpen := session[0].Open
	dayClose := session[len(session)-1].Close
	dayHigh, dayLow := session[0].High, session[0].Low
	for _, c := range session[1:] {
		dayHigh = math.Max(dayHigh, c.High)
		dayLow = math.Min(dayLow, c.Low)
	}

	pivot := (dayHigh + dayLow + dayClose) / 3
	levels := models.KeyLevels{
		Pivot:      pivot,
		Resistance: 2*pivot - dayLow,
		Support:    2*pivot - dayHigh,
	}

	indicators := calculate.Snapshot(session)
	ema9, ema21, ema50, rsi := indicators.EMA9, indicators.EMA21, indicators.EMA50, indicators.RSI

	trend := models.Sideways
	strength := 0
	var reasoning []string
	analysis := models.SetupAnalysis{}

	// EMA alignment
	switch {
	case ema9 > ema21 && ema21 > ema50 && dayClose > ema9:
		trend = models.Uptrend
		strength += 40
		analysis.EMASignal = "bullish"
		reasoning = append(reasoning,
			"Strong EMA bullish alignment (EMA9 > EMA21 > EMA50)",
			"Price closed above EMA9, bullish momentum")
	case ema9 < ema21 && ema21 < ema50 && dayClose < ema9:
		trend = models.Downtrend
		strength += 40
		analysis.EMASignal = "bearish"
		reasoning = append(reasoning,
			"Strong EMA bearish alignment (EMA9 < EMA21 < EMA50)",
			"Price closed below EMA9, bearish momentum")
	default:
		analysis.EMASignal = "mixed"
		reasoning = append(reasoning, "Mixed EMA signals, sideways trend")
	}

	// Price action
	dayChangePercent := 0.0
	if dayOpen != 0 {
		dayChangePercent = (dayClose - dayOpen) / dayOpen * 100
	}
	switch {
	case dayChangePercent > 0.5:
		strength += 20
		analysis.PriceAction = "bullish"
		reasoning = append(reasoning, fmt.Sprintf("Strong bullish day: +%.2f%%", dayChangePercent))
		if trend == models.Sideways {
			trend = models.Uptrend
		}
	case dayChangePercent < -0.5:
		strength += 20
		analysis.PriceAction = "bearish"
		reasoning = append(reasoning, fmt.Sprintf("Strong bearish day: %.2f%%", dayChangePercent))
		if trend == models.Sideways {
			trend = models.Downtrend
		}
	default:
		analysis.PriceAction = "neutral"
		reasoning = append(reasoning, fmt.Sprintf("Neutral day: %+.2f%%", dayChangePercent))
	}

	// RSI, first matching rule only
	analysis.RSISignal = rsiLabel(rsi)
	switch {
	case rsi > 60 && trend == models.Uptrend:
		strength += 15
		reasoning = append(reasoning, fmt.Sprintf("RSI (%.1f) confirms bullish trend", rsi))
	case rsi < 40 && trend == models.Downtrend:
		strength += 15
		reasoning = append(reasoning, fmt.Sprintf("RSI (%.1f) confirms bearish trend", rsi))
	case rsi > 70:
		strength -= 10
		reasoning = append(reasoning, fmt.Sprintf("RSI (%.1f) overbought, potential pullback", rsi))
	case rsi < 30:
		strength -= 10
		reasoning = append(reasoning, fmt.Sprintf("RSI (%.1f) oversold, potential bounce", rsi))
	}

	// Volume
	switch {
	case indicators.VolumeStrength > 70 && indicators.VolumeTrend == models.VolumeIncreasing:
		strength += 15
		analysis.VolumeSignal = "high"
		reasoning = append(reasoning, fmt.Sprintf("High volume (%.0f%%) confirms trend", indicators.VolumeStrength))
	case indicators.VolumeStrength < 30:
		strength -= 10
		analysis.VolumeSignal = "low"
		reasoning = append(reasoning, fmt.Sprintf("Low volume (%.0f%%), weak trend", indicators.VolumeStrength))
	default:
		analysis.VolumeSignal = "normal"
	}

	strength = clampInt(strength, 0, 100)

	suggestion := models.Wait
	if strength > 50 {
		suggestion = models.DirectionOf(trend).Suggestion()
	}
	confidence := max(30, strength)
	switch suggestion {
	case models.BuyCall:
		confidence = min(90, strength+10)
		reasoning = append(reasoning, "Uptrend detected, buy call options recommended")
	case models.BuyPut:
		confidence = min(90, strength+10)
		reasoning = append(reasoning, "Downtrend detected, buy put options recommended")
	default:
		reasoning = append(reasoning, "Sideways or unclear, wait for a clearer signal")
	}

	return models.TrendSetup{
		Trend:           trend,
		TrendStrength:   strength,
		Suggestion:      suggestion,
		Confidence:      confidence,
		KeyLevels:       levels,
		Reasoning:       reasoning,
		Analysis:        analysis,
		Indicators:      indicators,
		PreMarket:       preMarketGap(o.preMarketPrice, dayClose),
		TradingStrategy: buildStrategy(suggestion, dayClose, levels),
		Close:           dayClose,
	}
}

func defaultSetup() models.TrendSetup {
	return models.TrendSetup{
		Trend:      models.Sideways,
		Suggestion: models.Wait,
		Reasoning:  []string{"Insufficient data"},
		Analysis: models.SetupAnalysis{
			EMASignal:    "mixed",
			RSISignal:    "neutral",
			VolumeSignal: "normal",
			PriceAction:  "neutral",
		},
		Indicators:      models.IndicatorSnapshot{RSI: 50, VolumeStrength: 50, VolumeTrend: models.VolumeNeutral},
		PreMarket:       models.PreMarketAnalysis{GapDirection: "neutral"},
		TradingStrategy: models.TradingStrategy{EntryStrategy: "Wait for more data"},
	}
}

// buildStrategy prices stop and targets off the session close
func buildStrategy(s models.Suggestion, last float64, levels models.KeyLevels) models.TradingStrategy {
	switch s {
	case models.BuyCall:
		return models.TradingStrategy{
			EntryStrategy: fmt.Sprintf("Buy Call at support level %.2f or on breakout above %.2f", levels.Support, levels.Resistance),
			StopLoss:      last * (1 - stopLossPercent/100),
			Target1:       last * (1 + target1Percent/100),
			Target2:       last * (1 + target2Percent/100),
		}
	case models.BuyPut:
		return models.TradingStrategy{
			EntryStrategy: fmt.Sprintf("Buy Put at resistance level %.2f or on breakdown below %.2f", levels.Resistance, levels.Support),
			StopLoss:      last * (1 + stopLossPercent/100),
			Target1:       last * (1 - target1Percent/100),
			Target2:       last * (1 - target2Percent/100),
		}
	}
	return models.TradingStrategy{EntryStrategy: "Wait for clear trend confirmation before entering"}
}

func preMarketGap(preMarket, last float64) models.PreMarketAnalysis {
	pm := models.PreMarketAnalysis{GapDirection: "neutral"}
	if preMarket <= 0 || last <= 0 {
		return pm
	}
	pm.OvernightGap = preMarket - last
	pm.GapPercent = pm.OvernightGap / last * 100
	if pm.GapPercent > gapThresholdPercent {
		pm.GapDirection = "up"
	} else if pm.GapPercent < -gapThresholdPercent {
		pm.GapDirection = "down"
	}
	return pm
}

func rsiLabel(rsi float64) string {
	switch {
	case rsi > 70:
		return "overbought"
	case rsi < 30:
		return "oversold"
	case rsi > 60:
		return "bullish"
	case rsi < 40:
		return "bearish"
	}
	return "neutral"
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
