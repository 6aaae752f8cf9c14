package models

import "time"

// Candle represents a single OHLCV bar. Time is in epoch seconds.
type Candle struct {
	Time   int64   `json:"time"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume,omitempty"`
}

// LevelType tells whether a price level acts as support or resistance
type LevelType string

const (
	LevelSupport    LevelType = "support"
	LevelResistance LevelType = "resistance"
)

// Level is a clustered support/resistance price
type Level struct {
	Price    float64   `json:"price"`
	Type     LevelType `json:"type"`
	Strength float64   `json:"strength"` // 0-1, higher is stronger
	Touches  int       `json:"touches"`
}

// VolumeTrend classifies how volume evolved over a window
type VolumeTrend string

const (
	VolumeIncreasing VolumeTrend = "increasing"
	VolumeDecreasing VolumeTrend = "decreasing"
	VolumeNeutral    VolumeTrend = "neutral"
)

// VolumeAnalysis holds volume strength (0-1) and its trend
type VolumeAnalysis struct {
	Strength float64     `json:"strength"`
	Trend    VolumeTrend `json:"trend"`
}

// IndicatorSnapshot holds the technical indicators computed for one window
type IndicatorSnapshot struct {
	EMA9           float64     `json:"ema9"`
	EMA21          float64     `json:"ema21"`
	EMA50          float64     `json:"ema50"`
	RSI            float64     `json:"rsi"`
	VolumeStrength float64     `json:"volumeStrength"` // 0-100
	VolumeTrend    VolumeTrend `json:"volumeTrend"`
}

// Trend is the trend label of a timeframe
type Trend string

const (
	Uptrend   Trend = "uptrend"
	Downtrend Trend = "downtrend"
	Sideways  Trend = "sideways"
)

// Suggestion is the options trade suggested by a setup
type Suggestion string

const (
	BuyCall Suggestion = "buy_call"
	BuyPut  Suggestion = "buy_put"
	Wait    Suggestion = "wait"
)

// KeyLevels are the floor-trader pivot levels of a session
type KeyLevels struct {
	Support    float64 `json:"support"`
	Resistance float64 `json:"resistance"`
	Pivot      float64 `json:"pivot"`
}

// TradingStrategy is only populated when the suggestion is not wait
type TradingStrategy struct {
	EntryStrategy string  `json:"entryStrategy"`
	StopLoss      float64 `json:"stopLoss"`
	Target1       float64 `json:"target1"`
	Target2       float64 `json:"target2"`
}

// SetupAnalysis holds short labels describing each scoring input
type SetupAnalysis struct {
	EMASignal    string `json:"emaSignal"`
	RSISignal    string `json:"rsiSignal"`
	VolumeSignal string `json:"volumeSignal"`
	PriceAction  string `json:"priceAction"`
}

// PreMarketAnalysis compares a pre-market quote with the session close
type PreMarketAnalysis struct {
	OvernightGap float64 `json:"overnightGap"`
	GapPercent   float64 `json:"gapPercent"`
	GapDirection string  `json:"gapDirection"` // up, down, neutral
}

// TrendSetup is the single-timeframe pre-market setup
type TrendSetup struct {
	Trend           Trend             `json:"trend"`
	TrendStrength   int               `json:"trendStrength"` // 0-100
	Suggestion      Suggestion        `json:"suggestion"`
	Confidence      int               `json:"confidence"` // 0-100
	KeyLevels       KeyLevels         `json:"keyLevels"`
	Reasoning       []string          `json:"reasoning"`
	Analysis        SetupAnalysis     `json:"analysis"`
	Indicators      IndicatorSnapshot `json:"indicators"`
	PreMarket       PreMarketAnalysis `json:"preMarketAnalysis"`
	TradingStrategy TradingStrategy   `json:"tradingStrategy"`
	Close           float64           `json:"close"` // session close the strategy is priced from
}

// Timeframe identifies one of the three aggregated granularities
type Timeframe string

const (
	Timeframe15m Timeframe = "15m"
	Timeframe1h  Timeframe = "1h"
	Timeframe1d  Timeframe = "1d"
)

// TimeframeSignal is the per-timeframe breakdown of a multi-timeframe setup
type TimeframeSignal struct {
	Trend    Trend  `json:"trend"`
	Strength int    `json:"strength"`
	Signal   string `json:"signal"`
}

// RiskLevel grades how risky acting on a setup is
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// MultiTimeframeSetup combines three TrendSetups into one call
type MultiTimeframeSetup struct {
	TrendSetup
	TimeframeAnalysis map[Timeframe]TimeframeSignal `json:"timeframeAnalysis"`
	RiskLevel         RiskLevel                     `json:"riskLevel"`
}

// Sentiment is a bullish/bearish/neutral tag used by option chain and macro impacts
type Sentiment string

const (
	SentimentBullish Sentiment = "bullish"
	SentimentBearish Sentiment = "bearish"
	SentimentNeutral Sentiment = "neutral"
)

// OptionLeg is one call or put at a strike
type OptionLeg struct {
	StrikePrice          float64 `json:"strikePrice"`
	OpenInterest         float64 `json:"openInterest"`
	ChangeInOpenInterest float64 `json:"changeInOpenInterest"`
	Volume               float64 `json:"volume"`
	LTP                  float64 `json:"ltp"`
}

// OptionChainSummary aggregates a raw option chain
type OptionChainSummary struct {
	Timestamp       time.Time   `json:"timestamp"`
	PCROI           float64     `json:"pcrOI"`
	PCRVolume       float64     `json:"pcrVolume"`
	BullishStrength float64     `json:"bullishStrength"` // 0-1
	Sentiment       Sentiment   `json:"sentiment"`
	TopCalls        []OptionLeg `json:"topCalls"`
	TopPuts         []OptionLeg `json:"topPuts"`
}

// Commodity is a macro quote with its daily change
type Commodity struct {
	Name          string    `json:"name"`
	Symbol        string    `json:"symbol"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"changePercent"`
	Timestamp     time.Time `json:"timestamp"`
}

// Commodities groups the commodity quotes used as macro signals
type Commodities struct {
	Gold     *Commodity `json:"gold,omitempty"`
	CrudeOil *Commodity `json:"crudeOil,omitempty"`
}

// FlowSide is one institution class's net flows in crores
type FlowSide struct {
	Equity float64 `json:"equity"`
	Debt   float64 `json:"debt"`
	Total  float64 `json:"total"`
}

// FIIDII holds institutional flow data for a trading date
type FIIDII struct {
	Date   string   `json:"date"`
	FII    FlowSide `json:"fii"`
	DII    FlowSide `json:"dii"`
	NetFII float64  `json:"netFII"`
}

// GlobalMarkets is the macro snapshot fed into the enhanced prediction
type GlobalMarkets struct {
	Commodities Commodities `json:"commodities"`
	FIIDII      *FIIDII     `json:"fiiDii,omitempty"`
}

// Prediction is the basic next-day technical prediction
type Prediction struct {
	NextDayPrice    float64           `json:"nextDayPrice"`
	Confidence      int               `json:"confidence"`
	Direction       Direction         `json:"direction"`
	SupportLevel    float64           `json:"supportLevel"`
	ResistanceLevel float64           `json:"resistanceLevel"`
	Reasoning       []string          `json:"reasoning"`
	Indicators      IndicatorSnapshot `json:"indicators"`
}

// OrderRecommendation is the concrete option order derived from a prediction
type OrderRecommendation struct {
	Type       OptionType `json:"type"`
	Strike     float64    `json:"strike"`
	EntryLevel float64    `json:"entryLevel"`
	StopLoss   float64    `json:"stopLoss"`
	Target     float64    `json:"target"`
}

// ImpactTag wraps the impact a macro input has on the index
type ImpactTag struct {
	Impact Sentiment `json:"impact"`
}

// CommodityImpacts tags each commodity that was supplied
type CommodityImpacts struct {
	Gold     *ImpactTag `json:"gold,omitempty"`
	CrudeOil *ImpactTag `json:"crudeOil,omitempty"`
}

// GlobalMarketsImpact is empty-shaped when no macro snapshot is supplied
type GlobalMarketsImpact struct {
	Commodities *CommodityImpacts `json:"commodities,omitempty"`
	FIIDII      *ImpactTag        `json:"fiiDii,omitempty"`
}

// PredictionAnalysis holds the macro tags of an enhanced prediction
type PredictionAnalysis struct {
	GlobalMarkets GlobalMarketsImpact `json:"globalMarkets"`
}

// NextDayPrediction is the prediction enriched with option chain and macro signals
type NextDayPrediction struct {
	Direction            Direction            `json:"direction"`
	Confidence           int                  `json:"confidence"`
	CurrentPrice         float64              `json:"currentPrice"`
	PredictedPrice       float64              `json:"predictedPrice"`
	SupportLevel         float64              `json:"supportLevel"`
	ResistanceLevel      float64              `json:"resistanceLevel"`
	OrderRecommendations *OrderRecommendation `json:"orderRecommendations,omitempty"`
	Analysis             *PredictionAnalysis  `json:"analysis,omitempty"`
	Reasoning            []string             `json:"reasoning"`
}

// TradingSignal is raised when price trades close to a detected level
type TradingSignal struct {
	Type       Suggestion `json:"type"`
	Price      float64    `json:"price"`
	Level      Level      `json:"level"`
	Timestamp  int64      `json:"timestamp"`
	Confidence float64    `json:"confidence"`
}
