package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Alias1177/nifty-predictor/models"
)

var suggestionLabels = map[models.Suggestion]string{
	models.BuyCall: "BUY CALL",
	models.BuyPut:  "BUY PUT",
	models.Wait:    "WAIT",
}

var timeframeOrder = []models.Timeframe{models.Timeframe15m, models.Timeframe1h, models.Timeframe1d}

// FormatMorningBroadcast renders the pre-market message: the fused setup, the
// next day outlook and institutional flows.
func FormatMorningBroadcast(setup models.MultiTimeframeSetup, prediction models.NextDayPrediction, flows *models.FIIDII, now time.Time) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 *NIFTY Morning Setup* | %s\n\n", now.Format("02 Jan 2006 15:04")))

	b.WriteString(fmt.Sprintf("Trend: *%s* (%d%% strength)\n", strings.ToUpper(string(setup.Trend)), setup.TrendStrength))
	b.WriteString(fmt.Sprintf("Suggestion: *%s* | Confidence %d%% | Risk %s\n",
		suggestionLabels[setup.Suggestion], setup.Confidence, strings.ToUpper(string(setup.RiskLevel))))
	if setup.PreMarket.GapDirection != "" && setup.PreMarket.GapDirection != "neutral" {
		b.WriteString(fmt.Sprintf("Gap: %s %+.2f%%\n", setup.PreMarket.GapDirection, setup.PreMarket.GapPercent))
	}

	b.WriteString("\n🕒 *Timeframes*\n")
	for _, tf := range timeframeOrder {
		sig, ok := setup.TimeframeAnalysis[tf]
		if !ok {
			continue
		}
		b.WriteString(fmt.Sprintf("  %s: %s (%d%%) %s\n", tf, sig.Trend, sig.Strength, sig.Signal))
	}

	b.WriteString("\n🎯 *Levels*\n")
	b.WriteString(fmt.Sprintf("  Support %s | Pivot %s | Resistance %s\n",
		price(setup.KeyLevels.Support), price(setup.KeyLevels.Pivot), price(setup.KeyLevels.Resistance)))
	if setup.Suggestion != models.Wait {
		b.WriteString(fmt.Sprintf("  SL %s | T1 %s | T2 %s\n",
			price(setup.TradingStrategy.StopLoss), price(setup.TradingStrategy.Target1), price(setup.TradingStrategy.Target2)))
	}
	b.WriteString("  " + escape(setup.TradingStrategy.EntryStrategy) + "\n")

	b.WriteString("\n🔮 *Next Day*\n")
	b.WriteString(fmt.Sprintf("  %s %d%% | %s → %s\n",
		prediction.Direction, prediction.Confidence, price(prediction.CurrentPrice), price(prediction.PredictedPrice)))
	if rec := prediction.OrderRecommendations; rec != nil {
		b.WriteString(fmt.Sprintf("  %s %s | entry %s | SL %s | target %s\n",
			rec.Type, price(rec.Strike), price(rec.EntryLevel), price(rec.StopLoss), price(rec.Target)))
	}

	if flows != nil {
		b.WriteString("\n🏦 *FII/DII* (₹ cr)\n")
		b.WriteString(fmt.Sprintf("  FII %s | DII %s | Net %s\n",
			crores(flows.FII.Equity), crores(flows.DII.Equity), crores(flows.NetFII)))
	}

	if len(setup.Reasoning) > 0 {
		b.WriteString("\n📝 *Reasoning*\n")
		for _, r := range setup.Reasoning {
			b.WriteString("  • " + escape(r) + "\n")
		}
	}

	return b.String()
}

func price(v float64) string {
	return humanize.CommafWithDigits(v, 2)
}

func crores(v float64) string {
	s := humanize.CommafWithDigits(v, 2)
	if v > 0 {
		return "+" + s
	}
	return s
}

func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}
