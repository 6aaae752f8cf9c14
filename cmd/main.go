package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Alias1177/nifty-predictor/internal/config"
	"github.com/Alias1177/nifty-predictor/internal/platform/logging"
	"github.com/Alias1177/nifty-predictor/internal/service"
	"github.com/Alias1177/nifty-predictor/models"
)

func main() {
	interval := flag.String("interval", "15m", "bar interval for levels and prediction (1m, 5m, 15m, 30m, 1h, 4h, 1d)")
	mode := flag.String("mode", "all", "what to print: levels, setup, prediction, macro or all")
	mock := flag.Bool("mock", false, "use generated data instead of Yahoo Finance")
	asJSON := flag.Bool("json", false, "print JSON instead of text")
	flag.Parse()

	// 1) Configuration and logging
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if *mock {
		cfg.DataSource = config.SourceMock
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if models.BarsPerDay(*interval) == 0 {
		log.Fatal().Str("interval", *interval).Msg("Unsupported interval")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	dashboard := service.NewFromConfig(cfg)
	out := map[string]interface{}{}

	// 2) Run the requested analyses
	if *mode == "levels" || *mode == "all" {
		report := dashboard.Levels(ctx, *interval)
		out["levels"] = report
		if !*asJSON {
			printLevels(report)
		}
	}
	if *mode == "setup" || *mode == "all" {
		setup := dashboard.MorningSetup(ctx)
		out["setup"] = setup
		if !*asJSON {
			printSetup(setup)
		}
	}
	if *mode == "prediction" || *mode == "all" {
		report := dashboard.NextDay(ctx, *interval)
		out["prediction"] = report
		if !*asJSON {
			printPrediction(report)
		}
	}
	if *mode == "macro" || *mode == "all" {
		markets := dashboard.GlobalMarkets(ctx)
		out["globalMarkets"] = markets
		if !*asJSON {
			printMacro(markets)
		}
	}
	if len(out) == 0 {
		log.Fatal().Str("mode", *mode).Msg("Unknown mode")
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			log.Fatal().Err(err).Msg("Failed to encode output")
		}
	}
}

func printLevels(report service.LevelsReport) {
	fmt.Printf("\n===== LEVELS (%s, %s) =====\n", report.Interval, report.Source)
	fmt.Printf("Current price: %.2f\n", report.CurrentPrice)
	for _, l := range report.Levels {
		fmt.Printf("- %-10s %.2f  strength %.2f  touches %d\n", l.Type, l.Price, l.Strength, l.Touches)
	}
	for _, s := range report.Signals {
		fmt.Printf("Signal: %s at %.2f (level %.2f, confidence %.0f%%)\n", s.Type, s.Price, s.Level.Price, s.Confidence)
	}
}

func printSetup(setup models.MultiTimeframeSetup) {
	fmt.Printf("\n===== MORNING SETUP =====\n")
	fmt.Printf("Trend: %s (%d%%), suggestion %s, confidence %d%%, risk %s\n",
		strings.ToUpper(string(setup.Trend)), setup.TrendStrength, setup.Suggestion, setup.Confidence, setup.RiskLevel)
	fmt.Printf("Support %.2f | Pivot %.2f | Resistance %.2f\n",
		setup.KeyLevels.Support, setup.KeyLevels.Pivot, setup.KeyLevels.Resistance)
	fmt.Printf("Entry: %s\n", setup.TradingStrategy.EntryStrategy)
	for _, r := range setup.Reasoning {
		fmt.Printf("- %s\n", r)
	}
}

func printPrediction(report service.PredictionReport) {
	p := report.NextDay
	fmt.Printf("\n===== NEXT DAY (%s, %s) =====\n", report.Interval, report.Source)
	fmt.Printf("Direction: %s (conf=%d) %.2f -> %.2f\n", p.Direction, p.Confidence, p.CurrentPrice, p.PredictedPrice)
	fmt.Printf("Support %.2f | Resistance %.2f\n", p.SupportLevel, p.ResistanceLevel)
	if rec := p.OrderRecommendations; rec != nil {
		fmt.Printf("Order: %s %.0f entry %.2f SL %.2f target %.2f\n", rec.Type, rec.Strike, rec.EntryLevel, rec.StopLoss, rec.Target)
	}
	for _, r := range p.Reasoning {
		fmt.Printf("- %s\n", r)
	}
}

func printMacro(markets models.GlobalMarkets) {
	fmt.Printf("\n===== GLOBAL MARKETS =====\n")
	for _, c := range []*models.Commodity{markets.Commodities.Gold, markets.Commodities.CrudeOil} {
		if c != nil {
			fmt.Printf("%s: %.2f (%+.2f%%)\n", c.Name, c.Price, c.ChangePercent)
		}
	}
	if f := markets.FIIDII; f != nil {
		fmt.Printf("FII %.2f | DII %.2f | Net %.2f cr (%s)\n", f.FII.Equity, f.DII.Equity, f.NetFII, f.Date)
	}
}
