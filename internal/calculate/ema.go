package calculate

import (
	"github.com/markcheno/go-talib"

	"github.com/Alias1177/nifty-predictor/models"
)

// Closes extracts the close prices of a candle series
func Closes(candles []models.Candle) []float64 {
	closes := make([]float64, len(candles))
	for i, c := range candles {
		closes[i] = c.Close
	}
	return closes
}

// EMASeries returns the EMA of every bar. Once period bars exist the series is
// SMA-seeded (index period-1 equals the average of the first period closes).
// Shorter series are seeded with the first close instead.
func EMASeries(candles []models.Candle, period int) []float64 {
	if len(candles) == 0 || period < 1 {
		return nil
	}

	closes := Closes(candles)
	if len(closes) >= period {
		series := talib.Ema(closes, period)
		// talib leaves the warm-up bars at zero, carry the seed back instead
		for i := 0; i < period-1; i++ {
			series[i] = series[period-1]
		}
		return series
	}

	multiplier := 2.0 / float64(period+1)
	series := make([]float64, len(closes))
	series[0] = closes[0]
	for i := 1; i < len(closes); i++ {
		series[i] = (closes[i]-series[i-1])*multiplier + series[i-1]
	}
	return series
}

// EMA returns the latest EMA value, or 0 for an empty series
func EMA(candles []models.Candle, period int) float64 {
	series := EMASeries(candles, period)
	if len(series) == 0 {
		return 0
	}
	return series[len(series)-1]
}
