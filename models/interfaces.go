package models

import "context"

// Series is a symbol's bars together with its quote metadata
type Series struct {
	Symbol        string   `json:"symbol"`
	Price         float64  `json:"price"`
	PreviousClose float64  `json:"previousClose"`
	Candles       []Candle `json:"data"`
}

// BarSource fetches index bars for an interval and a lookback range (e.g. "15m", "5d")
type BarSource interface {
	IndexBars(ctx context.Context, interval, rng string) ([]Candle, error)
}

// QuoteSource fetches pre-market futures bars and commodity quotes
type QuoteSource interface {
	GiftNifty(ctx context.Context, interval, rng string) (*Series, error)
	Commodity(ctx context.Context, name, symbol string) (*Commodity, error)
}
