package analyze

import (
	"fmt"
	"math"
	"strings"

	"github.com/Alias1177/nifty-predictor/models"
)

// Timeframe weights, long timeframes count the most
var timeframeWeights = map[models.Timeframe]float64{
	models.Timeframe1d:  0.40,
	models.Timeframe1h:  0.35,
	models.Timeframe15m: 0.25,
}

var timeframeNames = map[models.Timeframe]string{
	models.Timeframe1d:  "1 Day",
	models.Timeframe1h:  "1 Hour",
	models.Timeframe15m: "15 Min",
}

// Long timeframe first, it drives reasoning order and key levels
var timeframeOrder = []models.Timeframe{models.Timeframe1d, models.Timeframe1h, models.Timeframe15m}

// AnalyzeMultiTimeframe runs AnalyzeSession on each timeframe and fuses the results
// with fixed weights. Key levels come from the daily setup.
func AnalyzeMultiTimeframe(short, medium, long []models.Candle, sessionBars int, opts ...SetupOption) models.MultiTimeframeSetup {
	return CombineTimeframes(
		AnalyzeSession(short, sessionBars, opts...),
		AnalyzeSession(medium, sessionBars, opts...),
		AnalyzeSession(long, sessionBars, opts...),
	)
}

// CombineTimeframes fuses three already computed setups
func CombineTimeframes(short, medium, long models.TrendSetup) models.MultiTimeframeSetup {
	setups := map[models.Timeframe]models.TrendSetup{
		models.Timeframe15m: short,
		models.Timeframe1h:  medium,
		models.Timeframe1d:  long,
	}

	scores := map[models.Trend]float64{}
	confidence := 0.0
	breakdown := make(map[models.Timeframe]models.TimeframeSignal, len(setups))
	var reasoning []string

	for _, tf := range timeframeOrder {
		s := setups[tf]
		w := timeframeWeights[tf]
		scores[s.Trend] += float64(s.TrendStrength) * w
		confidence += float64(s.Confidence) * w

		breakdown[tf] = models.TimeframeSignal{
			Trend:    s.Trend,
			Strength: s.TrendStrength,
			Signal:   timeframeSignal(s.Suggestion),
		}
		reasoning = append(reasoning, fmt.Sprintf("%s Trend: %s (%d%% strength) - %s",
			timeframeNames[tf], strings.ToUpper(string(s.Trend)), s.TrendStrength, timeframeSignal(s.Suggestion)))
	}

	trend := models.Sideways
	up, down, side := scores[models.Uptrend], scores[models.Downtrend], scores[models.Sideways]
	switch {
	case up > down && up > side:
		trend = models.Uptrend
	case down > up && down > side:
		trend = models.Downtrend
	}
	strength := int(math.Round(math.Min(100, math.Max(0, scores[trend]))))
	confidence = math.Min(100, math.Max(0, confidence))

	aligned := short.Trend == medium.Trend && medium.Trend == long.Trend
	allUp := aligned && long.Trend == models.Uptrend
	allDown := aligned && long.Trend == models.Downtrend

	suggestion := models.Wait
	switch {
	case (allUp || allDown) && confidence > 65:
		direction := models.DirectionOf(long.Trend)
		suggestion = direction.Suggestion()
		reasoning = append(reasoning,
			fmt.Sprintf("STRONG %s: all timeframes aligned in %s", timeframeSignal(suggestion), strings.ToUpper(string(long.Trend))),
			fmt.Sprintf("High probability setup, all timeframes confirm %s momentum", strings.ToLower(string(direction))))
	case trend != models.Sideways && confidence > 60:
		suggestion = models.DirectionOf(trend).Suggestion()
		reasoning = append(reasoning, fmt.Sprintf("%s: overall trend is %s across multiple timeframes",
			timeframeSignal(suggestion), strings.ToUpper(string(trend))))
	default:
		reasoning = append(reasoning,
			"WAIT: mixed signals across timeframes, wait for clearer direction",
			"Monitor for alignment, trade when 2+ timeframes align")
	}

	seen := make(map[string]bool, len(reasoning))
	for _, r := range reasoning {
		seen[r] = true
	}
	for _, r := range long.Reasoning {
		if !seen[r] {
			seen[r] = true
			reasoning = append(reasoning, r)
		}
	}

	risk := models.RiskMedium
	switch {
	case allUp || allDown:
		risk = models.RiskLow
	case confidence < 50:
		risk = models.RiskHigh
	}

	return models.MultiTimeframeSetup{
		TrendSetup: models.TrendSetup{
			Trend:         trend,
			TrendStrength: strength,
			Suggestion:    suggestion,
			Confidence:    int(math.Round(confidence)),
			KeyLevels:     long.KeyLevels,
			Reasoning:     reasoning,
			Analysis: models.SetupAnalysis{
				EMASignal:    "Multi-Timeframe: " + long.Analysis.EMASignal,
				RSISignal:    fmt.Sprintf("15m:%s | 1h:%s | 1d:%s", short.Analysis.RSISignal, medium.Analysis.RSISignal, long.Analysis.RSISignal),
				VolumeSignal: long.Analysis.VolumeSignal,
				PriceAction:  long.Analysis.PriceAction,
			},
			Indicators:      long.Indicators,
			PreMarket:       short.PreMarket,
			TradingStrategy: buildStrategy(suggestion, long.Close, long.KeyLevels),
			Close:           long.Close,
		},
		TimeframeAnalysis: breakdown,
		RiskLevel:         risk,
	}
}

func timeframeSignal(s models.Suggestion) string {
	switch s {
	case models.BuyCall:
		return "BUY CALL"
	case models.BuyPut:
		return "BUY PUT"
	}
	return "WAIT"
}
