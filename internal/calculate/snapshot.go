package calculate

import "github.com/Alias1177/nifty-predictor/models"

// Snapshot bundles EMA 9/21/50, RSI 14 and volume analysis for a window.
// Volume strength is reported on a 0-100 scale.
func Snapshot(candles []models.Candle) models.IndicatorSnapshot {
	vol := AnalyzeVolume(candles)
	return models.IndicatorSnapshot{
		EMA9:           EMA(candles, 9),
		EMA21:          EMA(candles, 21),
		EMA50:          EMA(candles, 50),
		RSI:            RSI(candles, DefaultRSIPeriod),
		VolumeStrength: vol.Strength * 100,
		VolumeTrend:    vol.Trend,
	}
}
