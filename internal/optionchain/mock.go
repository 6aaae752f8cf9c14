package optionchain

import (
	"math"
	"math/rand"
	"time"

	"github.com/Alias1177/nifty-predictor/models"
)

const strikeStep = 50

// Mock builds a synthetic chain of 21 strikes around spot. A non-positive spot
// is drawn between 21000 and 23000.
func Mock(rng *rand.Rand, spot float64, now time.Time) *models.OptionChainSummary {
	if spot <= 0 {
		spot = 22000 + rng.Float64()*2000 - 1000
	}

	base := math.Round(spot/strikeStep) * strikeStep
	strikes := make([]float64, 0, 21)
	for i := -10; i <= 10; i++ {
		strikes = append(strikes, base+float64(i*strikeStep))
	}

	var above, below []float64
	for _, s := range strikes {
		if s > spot {
			above = append(above, s)
		} else if s < spot {
			below = append(below, s)
		}
	}
	if len(above) > topLegs {
		above = above[:topLegs]
	}
	if len(below) > topLegs {
		below = below[len(below)-topLegs:]
	}

	calls := make([]models.OptionLeg, 0, len(above))
	for _, s := range above {
		leg := mockLeg(rng, s)
		leg.LTP = math.Max(0, spot-s+rng.Float64()*100)
		calls = append(calls, leg)
	}
	puts := make([]models.OptionLeg, 0, len(below))
	for _, s := range below {
		leg := mockLeg(rng, s)
		leg.LTP = math.Max(0, s-spot+rng.Float64()*100)
		puts = append(puts, leg)
	}

	summary := SummarizeLegs(calls, puts, now)
	// generated legs keep strike order
	summary.TopCalls, summary.TopPuts = calls, puts
	return summary
}

func mockLeg(rng *rand.Rand, strike float64) models.OptionLeg {
	return models.OptionLeg{
		StrikePrice:          strike,
		OpenInterest:         float64(rng.Intn(1000000) + 100000),
		ChangeInOpenInterest: float64(rng.Intn(100000) - 50000),
		Volume:               float64(rng.Intn(500000) + 50000),
	}
}
