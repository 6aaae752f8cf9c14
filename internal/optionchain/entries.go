package optionchain

import "github.com/Alias1177/nifty-predictor/models"

// Entry is the raw per-strike shape served by the option chain endpoint
type Entry struct {
	StrikePrice float64           `json:"strikePrice"`
	Call        *models.OptionLeg `json:"call"`
	Put         *models.OptionLeg `json:"put"`
}

// Entries flattens a summary back into raw entries, calls first
func Entries(summary *models.OptionChainSummary) []Entry {
	if summary == nil {
		return []Entry{}
	}
	out := make([]Entry, 0, len(summary.TopCalls)+len(summary.TopPuts))
	for i := range summary.TopCalls {
		leg := summary.TopCalls[i]
		out = append(out, Entry{StrikePrice: leg.StrikePrice, Call: &leg})
	}
	for i := range summary.TopPuts {
		leg := summary.TopPuts[i]
		out = append(out, Entry{StrikePrice: leg.StrikePrice, Put: &leg})
	}
	return out
}
