// Package service assembles the dashboard: it pulls bars and quotes from the
// live sources, falls back to generated data when they fail and runs the
// analysis core over the result.
package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/nifty-predictor/internal/analyze"
	"github.com/Alias1177/nifty-predictor/internal/api/yahoo"
	"github.com/Alias1177/nifty-predictor/internal/calculate"
	"github.com/Alias1177/nifty-predictor/internal/config"
	"github.com/Alias1177/nifty-predictor/internal/market"
	"github.com/Alias1177/nifty-predictor/internal/optionchain"
	"github.com/Alias1177/nifty-predictor/models"
)

// Where a payload came from
const (
	SourceReal = "real"
	SourceMock = "mock"
)

// Lookback ranges per timeframe for the analysis endpoints
var analysisRanges = map[models.Timeframe]string{
	models.Timeframe15m: "10d",
	models.Timeframe1h:  "1mo",
	models.Timeframe1d:  "6mo",
}

// Bars generated per interval when the live feed is unavailable
var mockPeriods = map[string]int{
	"1m":  1440,
	"5m":  288,
	"15m": 960,
	"30m": 480,
	"1h":  240,
	"4h":  60,
	"1d":  120,
}

var fallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "nifty_source_fallbacks_total",
	Help: "Number of times a live source failed and generated data was served instead",
}, []string{"resource"})

// Bars is a bar series tagged with its origin
type Bars struct {
	Interval string          `json:"interval"`
	Source   string          `json:"source"`
	Candles  []models.Candle `json:"data"`
}

// LastClose returns the close of the newest bar, or 0 when empty
func (b Bars) LastClose() float64 {
	if len(b.Candles) == 0 {
		return 0
	}
	return b.Candles[len(b.Candles)-1].Close
}

// LevelsReport holds detected levels and the signals they trigger
type LevelsReport struct {
	Interval     string                 `json:"interval"`
	Source       string                 `json:"source"`
	CurrentPrice float64                `json:"currentPrice"`
	Levels       []models.Level         `json:"levels"`
	Signals      []models.TradingSignal `json:"signals"`
}

// PredictionReport carries both predictor variants over the same bars
type PredictionReport struct {
	Interval string                   `json:"interval"`
	Source   string                   `json:"source"`
	Basic    models.Prediction        `json:"basic"`
	NextDay  models.NextDayPrediction `json:"nextDay"`
}

// Options tunes the Dashboard
type Options struct {
	UseMock          bool
	LevelLookback    int
	NearThreshold    float64
	GoldSymbol       string
	CrudeSymbol      string
	MockSeed         int64
	PreMarketEnabled bool
}

// OptionsFromConfig maps application configuration onto dashboard options
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		UseMock:          cfg.UseMock(),
		LevelLookback:    cfg.LevelLookback,
		NearThreshold:    cfg.NearThreshold,
		GoldSymbol:       cfg.GoldSymbol,
		CrudeSymbol:      cfg.CrudeSymbol,
		MockSeed:         cfg.MockSeed,
		PreMarketEnabled: true,
	}
}

// Dashboard is safe for concurrent use
type Dashboard struct {
	bars   models.BarSource
	quotes models.QuoteSource
	opts   Options
	logger zerolog.Logger
	now    func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

// NewDashboard wires the live sources. Nil sources force generated data.
func NewDashboard(bars models.BarSource, quotes models.QuoteSource, opts Options) *Dashboard {
	if opts.LevelLookback < 1 {
		opts.LevelLookback = calculate.DefaultLookback
	}
	if opts.GoldSymbol == "" {
		opts.GoldSymbol = "GC=F"
	}
	if opts.CrudeSymbol == "" {
		opts.CrudeSymbol = "CL=F"
	}
	seed := opts.MockSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Dashboard{
		bars:   bars,
		quotes: quotes,
		opts:   opts,
		logger: log.With().Str("component", "dashboard").Logger(),
		now:    time.Now,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Bars returns index bars for interval, generating them when the live source
// is disabled or fails.
func (d *Dashboard) Bars(ctx context.Context, interval, rng string) Bars {
	if !d.opts.UseMock && d.bars != nil {
		candles, err := d.bars.IndexBars(ctx, interval, rng)
		if err == nil && len(candles) > 0 {
			return Bars{Interval: interval, Source: SourceReal, Candles: candles}
		}
		d.fallback("bars", err).Str("interval", interval).Msg("Index bars unavailable, using generated data")
	}
	return Bars{Interval: interval, Source: SourceMock, Candles: d.mockBars(interval)}
}

// GiftNifty returns pre-market futures bars. Unlike index bars there is no
// generated fallback; callers decide what to do without them.
func (d *Dashboard) GiftNifty(ctx context.Context, interval, rng string) (*models.Series, error) {
	if d.opts.UseMock || d.quotes == nil {
		return nil, ErrSourceDisabled
	}
	return d.quotes.GiftNifty(ctx, interval, rng)
}

// Commodities quotes gold and crude concurrently; each one falls back to a
// static quote independently.
func (d *Dashboard) Commodities(ctx context.Context) (models.Commodities, string) {
	now := d.now()
	if d.opts.UseMock || d.quotes == nil {
		return market.FallbackCommodities(now), SourceMock
	}

	var (
		wg          sync.WaitGroup
		gold, crude *models.Commodity
		goldErr     error
		crudeErr    error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		gold, goldErr = d.quotes.Commodity(ctx, "Gold", d.opts.GoldSymbol)
	}()
	go func() {
		defer wg.Done()
		crude, crudeErr = d.quotes.Commodity(ctx, "Crude Oil", d.opts.CrudeSymbol)
	}()
	wg.Wait()

	source := SourceReal
	if goldErr != nil || gold == nil {
		d.fallback("gold", goldErr).Msg("Gold quote unavailable, using static quote")
		gold, source = market.FallbackGold(now), SourceMock
	}
	if crudeErr != nil || crude == nil {
		d.fallback("crude_oil", crudeErr).Msg("Crude oil quote unavailable, using static quote")
		crude, source = market.FallbackCrude(now), SourceMock
	}
	return models.Commodities{Gold: gold, CrudeOil: crude}, source
}

// FIIDII returns institutional flows for the current IST hour
func (d *Dashboard) FIIDII() models.FIIDII {
	return market.MockFIIDII(d.now())
}

// GlobalMarkets bundles commodities and institutional flows
func (d *Dashboard) GlobalMarkets(ctx context.Context) models.GlobalMarkets {
	commodities, _ := d.Commodities(ctx)
	flows := d.FIIDII()
	return models.GlobalMarkets{Commodities: commodities, FIIDII: &flows}
}

// OptionChain builds a chain around spot. A non-positive spot is drawn at random.
func (d *Dashboard) OptionChain(spot float64) *models.OptionChainSummary {
	d.mu.Lock()
	defer d.mu.Unlock()
	return optionchain.Mock(d.rng, spot, d.now())
}

// Levels detects support and resistance on the interval and flags the ones
// the last close is trading at.
func (d *Dashboard) Levels(ctx context.Context, interval string) LevelsReport {
	bars := d.Bars(ctx, interval, rangeFor(interval))
	levels := calculate.DetectLevels(bars.Candles, d.opts.LevelLookback)
	signals := calculate.TradingSignals(bars.Candles, levels, d.opts.NearThreshold)
	if signals == nil {
		signals = []models.TradingSignal{}
	}
	return LevelsReport{
		Interval:     interval,
		Source:       bars.Source,
		CurrentPrice: bars.LastClose(),
		Levels:       levels,
		Signals:      signals,
	}
}

// MorningSetup fetches the three timeframes concurrently and fuses their
// setups. The latest Gift Nifty close, when available, feeds the gap analysis.
func (d *Dashboard) MorningSetup(ctx context.Context) models.MultiTimeframeSetup {
	timeframes := []models.Timeframe{models.Timeframe15m, models.Timeframe1h, models.Timeframe1d}
	results := make(map[models.Timeframe]Bars, len(timeframes))

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		preMarket float64
	)
	for _, tf := range timeframes {
		wg.Add(1)
		go func(tf models.Timeframe) {
			defer wg.Done()
			bars := d.Bars(ctx, string(tf), analysisRanges[tf])
			mu.Lock()
			results[tf] = bars
			mu.Unlock()
		}(tf)
	}
	if d.opts.PreMarketEnabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			series, err := d.GiftNifty(ctx, "15m", "1d")
			if err != nil || series == nil || len(series.Candles) == 0 {
				return
			}
			mu.Lock()
			preMarket = series.Candles[len(series.Candles)-1].Close
			mu.Unlock()
		}()
	}
	wg.Wait()

	var opts []analyze.SetupOption
	if preMarket > 0 {
		opts = append(opts, analyze.WithPreMarketPrice(preMarket))
	}

	setup := analyze.AnalyzeMultiTimeframe(
		results[models.Timeframe15m].Candles,
		results[models.Timeframe1h].Candles,
		results[models.Timeframe1d].Candles,
		models.DefaultSessionBars,
		opts...,
	)

	d.logger.Info().
		Str("trend", string(setup.Trend)).
		Str("suggestion", string(setup.Suggestion)).
		Int("confidence", setup.Confidence).
		Str("risk", string(setup.RiskLevel)).
		Msg("Morning setup computed")
	return setup
}

// NextDay runs both predictors over the interval's bars. The enhanced one is
// fed with an option chain around the last close and the macro snapshot.
func (d *Dashboard) NextDay(ctx context.Context, interval string) PredictionReport {
	var (
		wg      sync.WaitGroup
		bars    Bars
		globals models.GlobalMarkets
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		bars = d.Bars(ctx, interval, rangeFor(interval))
	}()
	go func() {
		defer wg.Done()
		globals = d.GlobalMarkets(ctx)
	}()
	wg.Wait()

	summary := d.OptionChain(bars.LastClose())

	return PredictionReport{
		Interval: interval,
		Source:   bars.Source,
		Basic:    analyze.PredictNextDay(bars.Candles),
		NextDay:  analyze.PredictWithMarkets(bars.Candles, summary, &globals),
	}
}

func (d *Dashboard) mockBars(interval string) []models.Candle {
	periods, ok := mockPeriods[interval]
	if !ok {
		periods = 100
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	return market.GenerateCandles(d.rng, periods, market.IntervalMinutes(interval), d.now())
}

func (d *Dashboard) fallback(resource string, err error) *zerolog.Event {
	fallbacks.WithLabelValues(resource).Inc()
	if err == nil {
		err = ErrNoData
	}
	return d.logger.Warn().Err(err).Str("resource", resource)
}

func rangeFor(interval string) string {
	if r, ok := analysisRanges[models.Timeframe(interval)]; ok {
		return r
	}
	switch interval {
	case "1m", "5m":
		return "1d"
	}
	return "10d"
}

// NewFromConfig builds the Yahoo backed dashboard described by cfg
func NewFromConfig(cfg *config.Config) *Dashboard {
	client := yahoo.NewClient(yahoo.ClientOptions{
		BaseURL:          cfg.YahooBaseURL,
		Symbol:           cfg.Symbol,
		GiftNiftySymbols: cfg.GiftNiftySymbols,
		RequestTimeout:   cfg.RequestTimeout,
		RequestsPerSec:   cfg.RequestsPerSec,
	})
	return NewDashboard(client, client, OptionsFromConfig(cfg))
}
