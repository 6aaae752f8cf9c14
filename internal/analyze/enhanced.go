package analyze

import (
	"github.com/shopspring/decimal"

	"github.com/Alias1177/nifty-predictor/models"
)

const (
	orderStopPercent   = 2.0
	orderTargetPercent = 2.0
	strikeOffset       = 0.01

	pcrHigh = 1.2
	pcrLow  = 0.8

	goldThreshold = 1.0
	oilThreshold  = 2.0
	fiiThreshold  = 500.0
)

// PredictWithMarkets enriches the basic prediction with option chain sentiment and
// macro flows. Both summary and markets may be nil. Commodity moves only tag the
// analysis, institutional flows also move confidence.
func PredictWithMarkets(candles []models.Candle, summary *models.OptionChainSummary, markets *models.GlobalMarkets) models.NextDayPrediction {
	base := PredictNextDay(candles)
	current := 0.0
	if len(candles) > 0 {
		current = candles[len(candles)-1].Close
	}

	confidence := base.Confidence
	reasoning := append([]string(nil), base.Reasoning...)

	if summary != nil {
		switch summary.Sentiment {
		case models.SentimentBullish:
			confidence += 5
			reasoning = append(reasoning, "Option chain shows bullish sentiment")
		case models.SentimentBearish:
			confidence += 5
			reasoning = append(reasoning, "Option chain shows bearish sentiment")
		}

		if summary.PCROI > pcrHigh {
			confidence += 3
			reasoning = append(reasoning, "High Put-Call Ratio (OI) indicates support")
		} else if summary.PCROI < pcrLow {
			confidence += 3
			reasoning = append(reasoning, "Low Put-Call Ratio (OI) indicates resistance")
		}
	}

	analysis := &models.PredictionAnalysis{}
	if markets != nil {
		if gold := markets.Commodities.Gold; gold != nil {
			impact := commodityImpact(gold.ChangePercent, goldThreshold)
			switch impact {
			case models.SentimentBearish:
				reasoning = append(reasoning, "Gold rising indicates risk-off sentiment")
			case models.SentimentBullish:
				reasoning = append(reasoning, "Gold falling indicates risk-on sentiment")
			}
			commodities(analysis).Gold = &models.ImpactTag{Impact: impact}
		}

		if oil := markets.Commodities.CrudeOil; oil != nil {
			impact := commodityImpact(oil.ChangePercent, oilThreshold)
			switch impact {
			case models.SentimentBearish:
				reasoning = append(reasoning, "Crude oil rising is negative for Indian markets")
			case models.SentimentBullish:
				reasoning = append(reasoning, "Crude oil falling is positive for Indian markets")
			}
			commodities(analysis).CrudeOil = &models.ImpactTag{Impact: impact}
		}

		if flows := markets.FIIDII; flows != nil {
			impact := models.SentimentNeutral
			switch {
			case flows.NetFII > fiiThreshold:
				impact = models.SentimentBullish
				confidence += 5
				reasoning = append(reasoning, "Strong FII buying activity")
			case flows.NetFII < -fiiThreshold:
				impact = models.SentimentBearish
				confidence += 5
				reasoning = append(reasoning, "Strong FII selling activity")
			}
			analysis.GlobalMarkets.FIIDII = &models.ImpactTag{Impact: impact}
		}
	}

	return models.NextDayPrediction{
		Direction:            base.Direction,
		Confidence:           clampInt(confidence, minConfidence, maxConfidence),
		CurrentPrice:         current,
		PredictedPrice:       base.NextDayPrice,
		SupportLevel:         base.SupportLevel,
		ResistanceLevel:      base.ResistanceLevel,
		OrderRecommendations: recommendOrder(base.Direction, current),
		Analysis:             analysis,
		Reasoning:            reasoning,
	}
}

// recommendOrder buys an out-of-the-money option on the side the direction
// implies; neutral calls resolve to puts.
func recommendOrder(direction models.Direction, current float64) *models.OrderRecommendation {
	optionType := direction.OptionType()
	sign := -1.0
	if optionType == models.Call {
		sign = 1
	}
	return &models.OrderRecommendation{
		Type:       optionType,
		Strike:     roundStrike(current * (1 + sign*strikeOffset)),
		EntryLevel: current,
		StopLoss:   current * (1 - sign*orderStopPercent/100),
		Target:     current * (1 + sign*orderTargetPercent/100),
	}
}

func roundStrike(price float64) float64 {
	return decimal.NewFromFloat(price).Round(0).InexactFloat64()
}

func commodityImpact(changePercent, threshold float64) models.Sentiment {
	switch {
	case changePercent > threshold:
		return models.SentimentBearish
	case changePercent < -threshold:
		return models.SentimentBullish
	}
	return models.SentimentNeutral
}

func commodities(a *models.PredictionAnalysis) *models.CommodityImpacts {
	if a.GlobalMarkets.Commodities == nil {
		a.GlobalMarkets.Commodities = &models.CommodityImpacts{}
	}
	return a.GlobalMarkets.Commodities
}
