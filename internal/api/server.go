package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/athscan/athscan-backend/internal/coingecko"
	"github.com/athscan/athscan-backend/internal/httputil"
	"github.com/athscan/athscan-backend/internal/logger"
	"github.com/athscan/athscan-backend/internal/lookup"
	"github.com/athscan/athscan-backend/internal/repository"
)

const maxQueryLimit = 100

type Server struct {
	svc        *lookup.Service
	repo       *repository.LookupRepo // nil when lookup history is disabled
	pool       *pgxpool.Pool          // nil when lookup history is disabled
	handler    http.Handler
	httpServer *http.Server
	log        zerolog.Logger
}

func NewServer(svc *lookup.Service, pool *pgxpool.Pool, port int, corsOrigin string) *Server {
	s := &Server{
		svc:  svc,
		pool: pool,
		log:  logger.ForComponent("api"),
	}
	if pool != nil {
		s.repo = repository.NewLookupRepo(pool)
	}

	mux := http.NewServeMux()

	// Token routes
	mux.HandleFunc("GET /v1/tokens/{address}/ath", s.handleTokenATH)
	mux.HandleFunc("GET /v1/tokens/{address}/return", s.handleTokenReturn)

	// Lookup history routes
	mux.HandleFunc("GET /v1/lookups/recent", s.handleRecentLookups)

	// Health check
	mux.HandleFunc("GET /health", s.handleHealth)

	s.handler = corsMiddleware(mux, corsOrigin)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s
}

func (s *Server) Start() error {
	s.log.Info().Str("addr", s.httpServer.Addr).Msg("REST API server started")
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// --- middleware ---

func corsMiddleware(next http.Handler, allowOrigin string) http.Handler {
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", allowOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// --- helpers ---

func parseLimit(r *http.Request, defaultLimit int) int {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return defaultLimit
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return defaultLimit
	}
	if n > maxQueryLimit {
		return maxQueryLimit
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeLookupError maps lookup/provider failures onto HTTP statuses.
func writeLookupError(w http.ResponseWriter, err error) {
	var te *httputil.TransportError
	switch {
	case errors.Is(err, lookup.ErrInvalidAddress), errors.Is(err, lookup.ErrInvalidDate):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, coingecko.ErrNotFound):
		writeError(w, http.StatusNotFound, "coin not found")
	case errors.Is(err, lookup.ErrZeroPrice):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, coingecko.ErrMissingData), errors.As(err, &te):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		writeError(w, http.StatusBadGateway, err.Error())
	}
}
