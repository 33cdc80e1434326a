package api

import (
	"net/http"

	"github.com/athscan/athscan-backend/internal/models"
)

func (s *Server) handleRecentLookups(w http.ResponseWriter, r *http.Request) {
	if s.repo == nil {
		writeError(w, http.StatusServiceUnavailable, "lookup history is disabled")
		return
	}

	limit := parseLimit(r, 20)
	lookups, err := s.repo.GetRecent(r.Context(), limit)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to fetch recent lookups")
		writeError(w, http.StatusInternalServerError, "failed to fetch lookups")
		return
	}
	if lookups == nil {
		lookups = []models.Lookup{}
	}
	writeJSON(w, http.StatusOK, lookups)
}
