package calculate

import (
	"math"
	"sort"

	"github.com/Alias1177/nifty-predictor/models"
)

const (
	// DefaultLookback is the pivot window on each side of a bar
	DefaultLookback = 5
	// MaxLevels caps how many levels DetectLevels returns
	MaxLevels = 10

	clusterTolerance  = 0.01
	fallbackTolerance = 0.002
)

type cluster struct {
	price   float64
	touches int
	typ     models.LevelType
}

// DetectLevels finds pivot highs and lows, clusters them within 1% of a cluster's
// running average and returns at most MaxLevels levels ordered by strength.
// If no support survives, one is synthesized from the recent minimum low,
// displacing the weakest level when the list is full.
func DetectLevels(candles []models.Candle, lookback int) []models.Level {
	if lookback < 1 {
		lookback = DefaultLookback
	}
	if len(candles) < lookback*2 {
		return []models.Level{}
	}

	highs, lows := findPivots(candles, lookback)

	var clusters []*cluster
	add := func(price float64, typ models.LevelType) {
		for _, c := range clusters {
			if math.Abs(price-c.price)/c.price <= clusterTolerance {
				c.touches++
				c.price = (c.price*float64(c.touches-1) + price) / float64(c.touches)
				return
			}
		}
		clusters = append(clusters, &cluster{price: price, touches: 1, typ: typ})
	}

	// Highs cluster first; a later low within tolerance joins that resistance
	for _, p := range highs {
		add(p, models.LevelResistance)
	}
	for _, p := range lows {
		add(p, models.LevelSupport)
	}

	levels := make([]models.Level, 0, len(clusters)+1)
	for _, c := range clusters {
		levels = append(levels, models.Level{
			Price:    c.price,
			Type:     c.typ,
			Strength: math.Min(float64(c.touches)/3, 1),
			Touches:  c.touches,
		})
	}

	sort.SliceStable(levels, func(i, j int) bool {
		return levels[i].Strength > levels[j].Strength
	})
	if len(levels) > MaxLevels {
		levels = levels[:MaxLevels]
	}

	if !hasSupport(levels) {
		if len(levels) == MaxLevels {
			levels = levels[:MaxLevels-1]
		}
		levels = append(levels, fallbackSupport(candles, lookback))
		sort.SliceStable(levels, func(i, j int) bool {
			return levels[i].Strength > levels[j].Strength
		})
	}

	return levels
}

// findPivots returns pivot highs and lows in discovery order. A pivot must be the
// strict extreme of the window, so ties disqualify every tied bar.
func findPivots(candles []models.Candle, lookback int) (highs, lows []float64) {
	for i := lookback; i < len(candles)-lookback; i++ {
		isHigh, isLow := true, true
		for j := i - lookback; j <= i+lookback; j++ {
			if j == i {
				continue
			}
			if candles[j].High >= candles[i].High {
				isHigh = false
			}
			if candles[j].Low <= candles[i].Low {
				isLow = false
			}
			if !isHigh && !isLow {
				break
			}
		}
		if isHigh {
			highs = append(highs, candles[i].High)
		}
		if isLow {
			lows = append(lows, candles[i].Low)
		}
	}
	return highs, lows
}

func hasSupport(levels []models.Level) bool {
	for _, l := range levels {
		if l.Type == models.LevelSupport {
			return true
		}
	}
	return false
}

func fallbackSupport(candles []models.Candle, lookback int) models.Level {
	window := lookback * 4
	if window < 20 {
		window = 20
	}
	recent := candles
	if len(recent) > window {
		recent = recent[len(recent)-window:]
	}

	minLow := recent[0].Low
	for _, c := range recent[1:] {
		if c.Low < minLow {
			minLow = c.Low
		}
	}

	touches := 0
	if minLow > 0 {
		for _, c := range recent {
			if math.Abs(c.Low-minLow)/minLow < fallbackTolerance {
				touches++
			}
		}
	}
	if touches == 0 {
		touches = 1
	}

	return models.Level{
		Price:    minLow,
		Type:     models.LevelSupport,
		Strength: math.Min(0.3+float64(touches)*0.1, 0.9),
		Touches:  touches,
	}
}
