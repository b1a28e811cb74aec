package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/zappabad/investly/internal/game"
	"github.com/zappabad/investly/internal/news"
	"github.com/zappabad/investly/internal/portfolio"
)

// TradeRequest is the body of POST /api/v1/trades.
type TradeRequest struct {
	Symbol   string `json:"symbol"`
	Quantity int64  `json:"quantity"`
	Side     string `json:"side"`
}

// TierRequest is the body of PUT /api/v1/tier.
type TierRequest struct {
	Tier string `json:"tier"`
}

// PortfolioResponse is a portfolio with its valuation.
type PortfolioResponse struct {
	portfolio.Portfolio
	HoldingsValue decimal.Decimal `json:"holdingsValue"`
	NetWorth      decimal.Decimal `json:"netWorth"`
}

// ScenarioTurnResponse reports a scenario turn.
type ScenarioTurnResponse struct {
	Day   int        `json:"day"`
	Event news.Event `json:"event"`
}

func (s *Server) portfolioResponse() PortfolioResponse {
	snap := s.game.Snapshot()
	return PortfolioResponse{
		Portfolio:     snap.Portfolio,
		HoldingsValue: snap.HoldingsValue,
		NetWorth:      snap.NetWorth,
	}
}

func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.game.Snapshot())
}

func (s *Server) getUniverse(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.game.Universe())
}

func (s *Server) getInstrument(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	inst, ok := s.game.Universe().Get(symbol)
	if !ok {
		writeError(w, "unknown symbol "+symbol, http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, inst)
}

func (s *Server) getPortfolio(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.portfolioResponse())
}

func (s *Server) postTrade(w http.ResponseWriter, r *http.Request) {
	var req TradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	side, ok := portfolio.ParseSide(req.Side)
	if !ok {
		writeError(w, "side must be buy or sell", http.StatusBadRequest)
		return
	}

	if err := s.game.Trade(req.Symbol, req.Quantity, side); err != nil {
		writeError(w, err.Error(), tradeStatus(err))
		return
	}
	writeJSON(w, http.StatusOK, s.portfolioResponse())
}

func tradeStatus(err error) int {
	switch {
	case errors.Is(err, game.ErrInvalidQuantity), errors.Is(err, game.ErrInvalidSide):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrUnknownSymbol):
		return http.StatusNotFound
	case errors.Is(err, game.ErrInsufficientFunds), errors.Is(err, game.ErrInsufficientShares):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) postScenarioTurn(w http.ResponseWriter, r *http.Request) {
	ev, day := s.game.PlayScenario()
	writeJSON(w, http.StatusOK, ScenarioTurnResponse{Day: day, Event: ev})
}

func (s *Server) postEndDay(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.game.AdvanceWithHotshotResult())
}

func (s *Server) getHotshot(w http.ResponseWriter, r *http.Request) {
	h, ok := s.game.TodayHotshot()
	if !ok {
		writeError(w, "no hotshot available", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, h)
}

func (s *Server) getHeadlines(w http.ResponseWriter, r *http.Request) {
	n := 10
	if raw := r.URL.Query().Get("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			writeError(w, "n must be a positive integer", http.StatusBadRequest)
			return
		}
		n = v
	}
	heads := s.game.Headlines(n)
	if heads == nil {
		writeJSON(w, http.StatusOK, []any{})
		return
	}
	writeJSON(w, http.StatusOK, heads)
}

func (s *Server) putTier(w http.ResponseWriter, r *http.Request) {
	var req TierRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := s.game.SetTier(news.AgeTier(req.Tier)); err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, TierRequest{Tier: string(s.game.Tier())})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}
