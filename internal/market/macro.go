package market

import (
	"math"
	"time"

	"github.com/Alias1177/nifty-predictor/models"
)

var ist = time.FixedZone("IST", 5*60*60+30*60)

// MockFIIDII derives institutional flows (in crores) from the IST date and hour,
// so values stay stable within an hour. DII leans against heavy FII flows.
func MockFIIDII(now time.Time) models.FIIDII {
	local := now.In(ist)
	date := local.Format("2006-01-02")

	seed := float64(local.Hour())
	for _, ch := range date {
		if ch >= '0' && ch <= '9' {
			seed += float64(ch - '0')
		}
	}

	fiiEquity := round2Half(seededRandom(seed*1.1)*5000 - 2000)

	var diiEquity float64
	switch {
	case fiiEquity > 1000:
		diiEquity = -seededRandom(seed*1.2)*1000 - 200
	case fiiEquity < -1000:
		diiEquity = seededRandom(seed*1.3)*1000 + 200
	default:
		diiEquity = seededRandom(seed*1.4)*4000 - 1500
	}
	diiEquity = round2Half(diiEquity)

	next := seed * 1.5
	draw := func() float64 {
		v := seededRandom(next)
		next++
		return v
	}

	flows := models.FIIDII{Date: date}
	flows.FII.Equity = fiiEquity
	flows.FII.Debt = round2Half(draw()*500 - 200)
	flows.FII.Total = round2Half(fiiEquity + draw()*500 - 200)
	flows.DII.Equity = diiEquity
	flows.DII.Debt = round2Half(draw()*300 - 100)
	flows.DII.Total = round2Half(diiEquity + draw()*300 - 100)
	flows.NetFII = flows.FII.Equity - flows.DII.Equity
	return flows
}

// FallbackCommodities are the fixed quotes served when the commodity feed fails
func FallbackCommodities(now time.Time) models.Commodities {
	return models.Commodities{
		Gold:     FallbackGold(now),
		CrudeOil: FallbackCrude(now),
	}
}

// FallbackGold is the static gold quote
func FallbackGold(now time.Time) *models.Commodity {
	return &models.Commodity{Name: "Gold", Symbol: "GC=F", Price: 2650.50, Change: -5.20, ChangePercent: -0.20, Timestamp: now}
}

// FallbackCrude is the static crude oil quote
func FallbackCrude(now time.Time) *models.Commodity {
	return &models.Commodity{Name: "Crude Oil", Symbol: "CL=F", Price: 78.45, Change: 0.85, ChangePercent: 1.10, Timestamp: now}
}

// seededRandom returns a pseudo random fraction in [0,1) from a small seed
func seededRandom(seed float64) float64 {
	hash := int32(int64(seed)) << 5
	x := math.Sin(float64(hash)) * 10000
	return math.Abs(x - math.Floor(x))
}

// round2Half rounds to cents with halves going up
func round2Half(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
