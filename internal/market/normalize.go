// Package market holds the data plumbing around the analysis core: bar
// normalization, synthetic candles and the macro fallbacks used when live
// sources are unavailable.
package market

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Alias1177/nifty-predictor/models"
)

const (
	maxRangePercent  = 5.0
	dropRangePercent = 10.0
)

// Normalize cleans raw bars before analysis. It drops non-positive prices, repairs
// the high/low envelope, aligns timestamps down to alignSeconds (0 disables),
// merges bars sharing a timestamp, caps ranges wider than 5% of the mid price,
// drops bars still wider than 10% and sorts by time.
func Normalize(candles []models.Candle, alignSeconds int64) []models.Candle {
	merged := make(map[int64]*models.Candle, len(candles))
	order := make([]int64, 0, len(candles))

	for _, c := range candles {
		if c.Open <= 0 || c.High <= 0 || c.Low <= 0 || c.Close <= 0 {
			continue
		}
		if alignSeconds > 0 {
			c.Time -= c.Time % alignSeconds
		}
		c.High = math.Max(c.High, math.Max(c.Open, c.Close))
		c.Low = math.Min(c.Low, math.Min(c.Open, c.Close))
		c.Open, c.High, c.Low, c.Close = round2(c.Open), round2(c.High), round2(c.Low), round2(c.Close)

		existing, ok := merged[c.Time]
		if !ok {
			bar := c
			merged[c.Time] = &bar
			order = append(order, c.Time)
			continue
		}
		// first open, last close, widest range, summed volume
		existing.High = math.Max(existing.High, c.High)
		existing.Low = math.Min(existing.Low, c.Low)
		existing.Close = c.Close
		existing.Volume += c.Volume
	}

	out := make([]models.Candle, 0, len(order))
	for _, t := range order {
		c := *merged[t]
		capRange(&c)
		if !valid(c) {
			continue
		}
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Time < out[j].Time
	})
	return out
}

func capRange(c *models.Candle) {
	maxBody := math.Max(c.Open, c.Close)
	minBody := math.Min(c.Open, c.Close)
	c.High = math.Max(c.High, maxBody)
	c.Low = math.Min(c.Low, minBody)

	mid := (c.Open + c.Close) / 2
	if rangePercent(c.High, c.Low, mid) <= maxRangePercent {
		return
	}
	half := mid * maxRangePercent / 100 / 2
	center := (c.High + c.Low) / 2
	c.High = math.Max(center+half, maxBody)
	c.Low = math.Min(center-half, minBody)
}

func valid(c models.Candle) bool {
	if c.Time <= 0 || c.Open <= 0 || c.Close <= 0 || c.High <= 0 || c.Low <= 0 {
		return false
	}
	if c.High < c.Low || c.High < math.Max(c.Open, c.Close) || c.Low > math.Min(c.Open, c.Close) {
		return false
	}
	return rangePercent(c.High, c.Low, (c.Open+c.Close)/2) <= dropRangePercent
}

func rangePercent(high, low, mid float64) float64 {
	return (high - low) / mid * 100
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
