package calculate

import (
	"math"

	"github.com/Alias1177/nifty-predictor/models"
)

// DefaultNearThreshold is the relative distance at which price counts as touching a level
const DefaultNearThreshold = 0.02

// FindNearestLevel returns the level closest to price. An empty typ matches both kinds.
func FindNearestLevel(price float64, levels []models.Level, typ models.LevelType) (models.Level, bool) {
	var (
		nearest models.Level
		found   bool
		minDist float64
	)
	for _, l := range levels {
		if typ != "" && l.Type != typ {
			continue
		}
		dist := math.Abs(price - l.Price)
		if !found || dist < minDist {
			nearest, minDist, found = l, dist, true
		}
	}
	return nearest, found
}

// IsNearLevel reports whether price is within threshold (relative) of the level
func IsNearLevel(price float64, level models.Level, threshold float64) bool {
	if level.Price == 0 {
		return false
	}
	return math.Abs(price-level.Price)/level.Price <= threshold
}

// TradingSignals flags the nearest support and resistance the last close is trading at.
// A touched support suggests a call, a touched resistance a put. A non-positive
// threshold uses DefaultNearThreshold.
func TradingSignals(candles []models.Candle, levels []models.Level, threshold float64) []models.TradingSignal {
	if len(candles) == 0 {
		return nil
	}
	if threshold <= 0 {
		threshold = DefaultNearThreshold
	}
	last := candles[len(candles)-1]

	var signals []models.TradingSignal
	if l, ok := FindNearestLevel(last.Close, levels, models.LevelSupport); ok && IsNearLevel(last.Close, l, threshold) {
		signals = append(signals, models.TradingSignal{
			Type:       models.BuyCall,
			Price:      last.Close,
			Level:      l,
			Timestamp:  last.Time,
			Confidence: l.Strength * 100,
		})
	}
	if l, ok := FindNearestLevel(last.Close, levels, models.LevelResistance); ok && IsNearLevel(last.Close, l, threshold) {
		signals = append(signals, models.TradingSignal{
			Type:       models.BuyPut,
			Price:      last.Close,
			Level:      l,
			Timestamp:  last.Time,
			Confidence: l.Strength * 100,
		})
	}
	return signals
}
