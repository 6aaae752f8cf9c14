package models

// Direction is the single directional vocabulary shared by every predictor
type Direction string

const (
	Bullish Direction = "BULLISH"
	Bearish Direction = "BEARISH"
	Neutral Direction = "NEUTRAL"
)

// OptionType is the option side of an order recommendation
type OptionType string

const (
	Call OptionType = "CALL"
	Put  OptionType = "PUT"
)

// Suggestion maps a direction onto the options trade it implies
func (d Direction) Suggestion() Suggestion {
	switch d {
	case Bullish:
		return BuyCall
	case Bearish:
		return BuyPut
	default:
		return Wait
	}
}

// OptionType returns CALL for bullish calls and PUT otherwise, neutral included
func (d Direction) OptionType() OptionType {
	if d == Bullish {
		return Call
	}
	return Put
}

// DirectionOf maps a trend label onto the shared direction vocabulary
func DirectionOf(t Trend) Direction {
	switch t {
	case Uptrend:
		return Bullish
	case Downtrend:
		return Bearish
	default:
		return Neutral
	}
}
