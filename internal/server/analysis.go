package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Alias1177/nifty-predictor/internal/analyze"
	"github.com/Alias1177/nifty-predictor/internal/calculate"
	"github.com/Alias1177/nifty-predictor/internal/optionchain"
	"github.com/Alias1177/nifty-predictor/models"
)

var errNoCandles = errors.New("candles are required")

type levelsRequest struct {
	Candles  []models.Candle `json:"candles"`
	Lookback int             `json:"lookback"`
}

type setupRequest struct {
	Candles        []models.Candle `json:"candles"`
	Short          []models.Candle `json:"short"`
	Medium         []models.Candle `json:"medium"`
	Long           []models.Candle `json:"long"`
	SessionBars    int             `json:"sessionBars"`
	PreMarketPrice float64         `json:"preMarketPrice"`
}

type predictionRequest struct {
	Candles       []models.Candle       `json:"candles"`
	OptionChain   []map[string]any      `json:"optionChain"`
	GlobalMarkets *models.GlobalMarkets `json:"globalMarkets"`
}

// decodeBody reads a JSON body into dst, rejecting unknown trailing data
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	body := http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if dec.More() {
		return errors.New("invalid request body: trailing data")
	}
	return nil
}

// handleAnalyzeLevels handles POST /api/analyze/levels
func (s *Server) handleAnalyzeLevels(w http.ResponseWriter, r *http.Request) {
	var req levelsRequest
	if err := s.decodeBody(w, r, &req); err != nil {
		respondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Candles) == 0 {
		respondWithError(w, r, http.StatusBadRequest, errNoCandles.Error())
		return
	}

	lookback := req.Lookback
	if lookback <= 0 {
		lookback = s.opts.LevelLookback
	}
	if lookback <= 0 {
		lookback = calculate.DefaultLookback
	}

	analysisRuns.WithLabelValues("levels").Inc()
	levels := calculate.DetectLevels(req.Candles, lookback)
	signals := calculate.TradingSignals(req.Candles, levels, s.opts.NearThreshold)
	if signals == nil {
		signals = []models.TradingSignal{}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"levels":  levels,
			"signals": signals,
		},
	})
}

// handleAnalyzeSetup handles POST /api/analyze/setup. Supplying short, medium
// and long runs the multi-timeframe analysis, candles alone a single one.
func (s *Server) handleAnalyzeSetup(w http.ResponseWriter, r *http.Request) {
	var req setupRequest
	if err := s.decodeBody(w, r, &req); err != nil {
		respondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	sessionBars := req.SessionBars
	if sessionBars <= 0 {
		sessionBars = models.DefaultSessionBars
	}
	var opts []analyze.SetupOption
	if req.PreMarketPrice > 0 {
		opts = append(opts, analyze.WithPreMarketPrice(req.PreMarketPrice))
	}

	multi := len(req.Short) > 0 || len(req.Medium) > 0 || len(req.Long) > 0
	switch {
	case multi:
		if len(req.Short) == 0 || len(req.Medium) == 0 || len(req.Long) == 0 {
			respondWithError(w, r, http.StatusBadRequest, "short, medium and long candles are all required")
			return
		}
		analysisRuns.WithLabelValues("setup_multi").Inc()
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    analyze.AnalyzeMultiTimeframe(req.Short, req.Medium, req.Long, sessionBars, opts...),
		})
	case len(req.Candles) > 0:
		analysisRuns.WithLabelValues("setup").Inc()
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"data":    analyze.AnalyzeSession(req.Candles, sessionBars, opts...),
		})
	default:
		respondWithError(w, r, http.StatusBadRequest, errNoCandles.Error())
	}
}

// handleAnalyzePrediction handles POST /api/analyze/prediction
func (s *Server) handleAnalyzePrediction(w http.ResponseWriter, r *http.Request) {
	var req predictionRequest
	if err := s.decodeBody(w, r, &req); err != nil {
		respondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Candles) == 0 {
		respondWithError(w, r, http.StatusBadRequest, errNoCandles.Error())
		return
	}

	analysisRuns.WithLabelValues("prediction").Inc()
	summary := optionchain.Summarize(req.OptionChain, time.Now())
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"basic":   analyze.PredictNextDay(req.Candles),
			"nextDay": analyze.PredictWithMarkets(req.Candles, summary, req.GlobalMarkets),
		},
	})
}

// handleAnalyzeOptionChain handles POST /api/analyze/optionchain. The body is
// either a bare entry array or the GET endpoint's {"data": [...]} envelope.
func (s *Server) handleAnalyzeOptionChain(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes))
	if err != nil {
		respondWithError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	var entries []map[string]any
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '{' {
		var envelope struct {
			Data []map[string]any `json:"data"`
		}
		err = json.Unmarshal(trimmed, &envelope)
		entries = envelope.Data
	} else {
		err = json.Unmarshal(raw, &entries)
	}
	if err != nil {
		respondWithError(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	analysisRuns.WithLabelValues("optionchain").Inc()
	summary := optionchain.Summarize(entries, time.Now())
	if summary == nil {
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"success": false,
			"error":   "no option chain entries",
			"data":    nil,
		})
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    summary,
	})
}
