package market

import (
	"math"
	"math/rand"
	"time"

	"github.com/Alias1177/nifty-predictor/models"
)

const (
	minMockPrice = 19500
	maxMockPrice = 25500
)

// GenerateCandles synthesizes Nifty-like bars whose last bar sits on the most
// recently completed interval boundary (UTC) before now.
func GenerateCandles(rng *rand.Rand, periods, intervalMinutes int, now time.Time) []models.Candle {
	if periods <= 0 {
		return []models.Candle{}
	}
	if intervalMinutes <= 0 {
		intervalMinutes = 1
	}

	interval := time.Duration(intervalMinutes) * time.Minute
	start := alignInterval(now.UTC(), intervalMinutes).Add(-time.Duration(periods-1) * interval)
	price := 22000 + rng.Float64()*2000 - 1000

	candles := make([]models.Candle, 0, periods)
	for i := 0; i < periods; i++ {
		volatility := 0.3 + rng.Float64()*0.5
		trend := math.Sin(float64(i)/15) * 0.2
		walk := (rng.Float64() - 0.5) * volatility

		price *= 1 + trend*0.005 + walk*0.005
		price = math.Max(minMockPrice, math.Min(maxMockPrice, price))

		open := price
		cl := open * (1 + (rng.Float64()-0.5)*0.015)
		high := math.Max(open, cl) * (1 + rng.Float64()*0.008)
		low := math.Min(open, cl) * (1 - rng.Float64()*0.008)
		volume := int64(rng.Intn(50000000) + 10000000)

		candles = append(candles, models.Candle{
			Time:   start.Add(time.Duration(i) * interval).Unix(),
			Open:   round2(open),
			High:   round2(high),
			Low:    round2(low),
			Close:  round2(cl),
			Volume: volume,
		})
	}
	return candles
}

// IntervalMinutes maps the interval strings used by the API onto minutes
func IntervalMinutes(interval string) int {
	secs := models.IntervalSeconds(interval)
	if secs == 0 {
		return 1
	}
	return int(secs / 60)
}

func alignInterval(now time.Time, intervalMinutes int) time.Time {
	y, m, d := now.Date()
	switch {
	case intervalMinutes >= 24*60:
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	case intervalMinutes >= 60:
		hours := intervalMinutes / 60
		return time.Date(y, m, d, now.Hour()/hours*hours, 0, 0, 0, time.UTC)
	default:
		return time.Date(y, m, d, now.Hour(), now.Minute()/intervalMinutes*intervalMinutes, 0, 0, time.UTC)
	}
}
