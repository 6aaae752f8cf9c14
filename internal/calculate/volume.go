package calculate

import "github.com/Alias1177/nifty-predictor/models"

const minVolumeBars = 10

// AnalyzeVolume compares the last five bars' average volume to the window average.
// Strength is clamped to [0,1]; trend compares the second half of the window to the first.
func AnalyzeVolume(candles []models.Candle) models.VolumeAnalysis {
	neutral := models.VolumeAnalysis{Strength: 0.5, Trend: models.VolumeNeutral}
	if len(candles) < minVolumeBars || candles[0].Volume <= 0 {
		return neutral
	}

	volumes := make([]float64, 0, len(candles))
	for _, c := range candles {
		if c.Volume > 0 {
			volumes = append(volumes, float64(c.Volume))
		}
	}

	avgVolume := average(volumes)
	recent := volumes
	if len(recent) > 5 {
		recent = recent[len(recent)-5:]
	}
	ratio := average(recent) / avgVolume
	strength := clamp((ratio-0.5)*2, 0, 1)

	half := len(volumes) / 2
	trend := models.VolumeNeutral
	if half > 0 {
		trendRatio := average(volumes[half:]) / average(volumes[:half])
		if trendRatio > 1.1 {
			trend = models.VolumeIncreasing
		} else if trendRatio < 0.9 {
			trend = models.VolumeDecreasing
		}
	}

	return models.VolumeAnalysis{Strength: strength, Trend: trend}
}

// average calculates simple average
func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, value := range values {
		sum += value
	}

	return sum / float64(len(values))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
