package server

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Alias1177/nifty-predictor/internal/optionchain"
	"github.com/Alias1177/nifty-predictor/models"
)

func queryDefault(r *http.Request, key, def string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return def
}

// handleNifty50 handles GET /api/nifty50
func (s *Server) handleNifty50(w http.ResponseWriter, r *http.Request) {
	interval := queryDefault(r, "interval", "1m")
	rng := queryDefault(r, "range", "1d")
	if models.BarsPerDay(interval) == 0 {
		respondWithError(w, r, http.StatusBadRequest, "Unsupported interval: "+interval)
		return
	}

	bars := s.dashboard.Bars(r.Context(), interval, rng)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"data":         bars.Candles,
		"currentPrice": bars.LastClose(),
		"source":       bars.Source,
	})
}

// handleGiftNifty handles GET /api/giftnifty. Failures answer 200 so the
// client can fall back to the index.
func (s *Server) handleGiftNifty(w http.ResponseWriter, r *http.Request) {
	interval := queryDefault(r, "interval", "15m")
	rng := queryDefault(r, "range", "1d")

	series, err := s.dashboard.GiftNifty(r.Context(), interval, rng)
	if err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("Gift Nifty unavailable")
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"success":      false,
			"error":        err.Error(),
			"data":         []models.Candle{},
			"currentPrice": 0,
			"source":       "Fallback to Nifty 50",
		})
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"data":         series.Candles,
		"currentPrice": series.Candles[len(series.Candles)-1].Close,
		"symbol":       series.Symbol,
		"source":       "Gift Nifty (SGX)",
	})
}

// handleOptionChain handles GET /api/optionchain
func (s *Server) handleOptionChain(w http.ResponseWriter, r *http.Request) {
	spot := s.dashboard.Bars(r.Context(), "5m", "1d").LastClose()
	summary := s.dashboard.OptionChain(spot)

	noStore(w)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    optionchain.Entries(summary),
		"summary": map[string]interface{}{
			"pcrOI":     summary.PCROI,
			"pcrVolume": summary.PCRVolume,
			"sentiment": summary.Sentiment,
			"timestamp": summary.Timestamp,
		},
		"source": "mock",
	})
}

// handleCommodities handles GET /api/commodities
func (s *Server) handleCommodities(w http.ResponseWriter, r *http.Request) {
	commodities, source := s.dashboard.Commodities(r.Context())
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    commodities,
		"source":  source,
	})
}

// handleFIIDII handles GET /api/fiidii
func (s *Server) handleFIIDII(w http.ResponseWriter, r *http.Request) {
	noStore(w)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    s.dashboard.FIIDII(),
		"source":  "mock",
	})
}

// handleLevels handles GET /api/levels
func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	interval := queryDefault(r, "interval", "15m")
	if models.BarsPerDay(interval) == 0 {
		respondWithError(w, r, http.StatusBadRequest, "Unsupported interval: "+interval)
		return
	}
	analysisRuns.WithLabelValues("levels").Inc()
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    s.dashboard.Levels(r.Context(), interval),
	})
}

// handleSetup handles GET /api/setup
func (s *Server) handleSetup(w http.ResponseWriter, r *http.Request) {
	analysisRuns.WithLabelValues("setup").Inc()
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    s.dashboard.MorningSetup(r.Context()),
	})
}

// handlePrediction handles GET /api/prediction
func (s *Server) handlePrediction(w http.ResponseWriter, r *http.Request) {
	interval := queryDefault(r, "interval", "15m")
	if models.BarsPerDay(interval) == 0 {
		respondWithError(w, r, http.StatusBadRequest, "Unsupported interval: "+interval)
		return
	}
	analysisRuns.WithLabelValues("prediction").Inc()
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    s.dashboard.NextDay(r.Context(), interval),
	})
}
