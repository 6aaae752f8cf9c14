package calculate

import "github.com/Alias1177/nifty-predictor/models"

// DefaultRSIPeriod is the RSI period used across the dashboard
const DefaultRSIPeriod = 14

// RSI computes the relative strength index over the trailing period deltas only.
// It returns 50 when fewer than period+1 bars exist and 100 when there are no losses.
func RSI(candles []models.Candle, period int) float64 {
	if period < 1 || len(candles) < period+1 {
		return 50.0 // Default value if not enough data
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

	avgGain := gains / float64(period)
	avgLoss := losses / float64(period)

	if avgLoss == 0 {
		return 100.0
	}

	rs := avgGain / avgLoss
	return 100.0 - (100.0 / (1.0 + rs))
}
