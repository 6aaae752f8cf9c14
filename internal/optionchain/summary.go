// Package optionchain reduces raw option chain entries into put-call ratios,
// a sentiment label and the legs carrying the most open interest.
package optionchain

import (
	"encoding/json"
	"sort"
	"strconv"
	"time"

	"github.com/Alias1177/nifty-predictor/models"
)

const (
	topLegs = 5

	bearishPCR = 1.2
	bullishPCR = 0.8
)

// Accepted key spellings, first non-zero match wins
var (
	callKeys   = []string{"call", "CE", "callOption"}
	putKeys    = []string{"put", "PE", "putOption"}
	strikeKeys = []string{"strikePrice", "strike"}
	oiKeys     = []string{"openInterest", "OI", "oi"}
	chgOIKeys  = []string{"changeInOpenInterest", "changeInOI", "changeInOi"}
	volumeKeys = []string{"volume", "vol"}
	ltpKeys    = []string{"ltp", "lastPrice", "price"}
)

// Summarize parses decoded JSON entries and aggregates them.
// It returns nil for empty input so callers can fall back to mock data.
func Summarize(entries []map[string]any, now time.Time) *models.OptionChainSummary {
	if len(entries) == 0 {
		return nil
	}

	var calls, puts []models.OptionLeg
	for _, entry := range entries {
		if entry == nil {
			continue
		}
		if side := lookupObject(entry, callKeys); side != nil {
			calls = append(calls, parseLeg(side, entry))
		}
		if side := lookupObject(entry, putKeys); side != nil {
			puts = append(puts, parseLeg(side, entry))
		}
	}

	return SummarizeLegs(calls, puts, now)
}

// SummarizeLegs aggregates already typed call and put legs
func SummarizeLegs(calls, puts []models.OptionLeg, now time.Time) *models.OptionChainSummary {
	var callOI, putOI, callVol, putVol float64
	for _, c := range calls {
		callOI += c.OpenInterest
		callVol += c.Volume
	}
	for _, p := range puts {
		putOI += p.OpenInterest
		putVol += p.Volume
	}

	pcrOI := ratio(putOI, callOI)
	pcrVolume := ratio(putVol, callVol)

	sentiment := models.SentimentNeutral
	if pcrOI > bearishPCR {
		sentiment = models.SentimentBearish
	} else if pcrOI < bullishPCR {
		sentiment = models.SentimentBullish
	}

	return &models.OptionChainSummary{
		Timestamp:       now,
		PCROI:           pcrOI,
		PCRVolume:       pcrVolume,
		BullishStrength: BullishStrength(pcrOI),
		Sentiment:       sentiment,
		TopCalls:        topByOpenInterest(calls),
		TopPuts:         topByOpenInterest(puts),
	}
}

// BullishStrength maps a put-call ratio onto [0,1], 1 being most bullish
func BullishStrength(pcrOI float64) float64 {
	var s float64
	if pcrOI < 1 {
		s = 1 - pcrOI*0.5
	} else {
		s = 1 - (pcrOI-1)*0.5
	}
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

func ratio(put, call float64) float64 {
	if call > 0 {
		return put / call
	}
	return 1
}

func topByOpenInterest(legs []models.OptionLeg) []models.OptionLeg {
	out := make([]models.OptionLeg, 0, topLegs)
	for _, l := range legs {
		if l.StrikePrice > 0 {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OpenInterest > out[j].OpenInterest
	})
	if len(out) > topLegs {
		out = out[:topLegs]
	}
	return out
}

func parseLeg(side, entry map[string]any) models.OptionLeg {
	strike := lookupNumber(side, strikeKeys)
	if strike == 0 {
		strike = toFloat(entry["strikePrice"])
	}
	return models.OptionLeg{
		StrikePrice:          strike,
		OpenInterest:         lookupNumber(side, oiKeys),
		ChangeInOpenInterest: lookupNumber(side, chgOIKeys),
		Volume:               lookupNumber(side, volumeKeys),
		LTP:                  lookupNumber(side, ltpKeys),
	}
}

func lookupObject(m map[string]any, keys []string) map[string]any {
	for _, k := range keys {
		if obj, ok := m[k].(map[string]any); ok && obj != nil {
			return obj
		}
	}
	return nil
}

func lookupNumber(m map[string]any, keys []string) float64 {
	for _, k := range keys {
		if v := toFloat(m[k]); v != 0 {
			return v
		}
	}
	return 0
}

// toFloat converts the numeric shapes JSON decoding can produce, anything else is 0
func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case json.Number:
		f, _ := n.Float64()
		return f
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	}
	return 0
}
