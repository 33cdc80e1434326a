package api

import (
	"net/http"

	"github.com/athscan/athscan-backend/internal/lookup"
	"github.com/athscan/athscan-backend/internal/models"
)

type returnResponse struct {
	Token         *models.TokenRecord     `json:"token"`
	Historical    *models.HistoricalQuote `json:"historical"`
	ReturnPercent float64                 `json:"returnPercent"`
}

func (s *Server) handleTokenATH(w http.ResponseWriter, r *http.Request) {
	address := r.PathValue("address")

	token, err := s.svc.FetchToken(r.Context(), address)
	if err != nil {
		s.log.Warn().Err(err).Str("address", address).Msg("ath lookup failed")
		writeLookupError(w, err)
		return
	}

	s.recordLookup(r, token, nil, nil)
	writeJSON(w, http.StatusOK, token)
}

func (s *Server) handleTokenReturn(w http.ResponseWriter, r *http.Request) {
	address := r.PathValue("address")
	date := r.URL.Query().Get("date")
	if date == "" {
		writeError(w, http.StatusBadRequest, "date query parameter is required (YYYY-MM-DD)")
		return
	}

	ctx := r.Context()

	token, err := s.svc.FetchToken(ctx, address)
	if err != nil {
		s.log.Warn().Err(err).Str("address", address).Msg("ath lookup failed")
		writeLookupError(w, err)
		return
	}

	quote, err := s.svc.FetchHistoricalPrice(ctx, token.CoinID, date)
	if err != nil {
		s.log.Warn().Err(err).Str("coin", token.CoinID).Msg("history lookup failed")
		writeLookupError(w, err)
		return
	}

	returnPct, err := lookup.ComputeReturn(token.ATHPriceUSD, quote.PriceUSD)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	s.recordLookup(r, token, quote, &returnPct)
	writeJSON(w, http.StatusOK, returnResponse{
		Token:         token,
		Historical:    quote,
		ReturnPercent: returnPct,
	})
}

// recordLookup persists the lookup when history is enabled. Best effort.
func (s *Server) recordLookup(r *http.Request, token *models.TokenRecord, quote *models.HistoricalQuote, returnPct *float64) {
	if s.repo == nil {
		return
	}

	l := &models.Lookup{
		ContractAddress: token.ContractAddress,
		CoinID:          token.CoinID,
		Name:            token.Name,
		Symbol:          token.Symbol,
		ATHPriceUSD:     token.ATHPriceUSD,
		ATHDate:         token.ATHDate,
		ReturnPercent:   returnPct,
	}
	if quote != nil {
		l.HistoricalPriceUSD = &quote.PriceUSD
		l.HistoricalDate = &quote.QueryDate
	}

	if _, err := s.repo.Record(r.Context(), l); err != nil {
		s.log.Warn().Err(err).Msg("failed to persist lookup")
	}
}
