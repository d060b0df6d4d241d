package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"lotto-picker/internal/constants"
	"lotto-picker/internal/domain"
	"lotto-picker/internal/draw"
	"lotto-picker/internal/stats"

	"github.com/rs/zerolog"
)

// SnapshotLister reads back the refresh audit log. Implemented by
// repository.SnapshotRepository.
type SnapshotLister interface {
	Recent(ctx context.Context, limit int) ([]domain.FetchSnapshot, error)
}

// LottoServer exposes the two core read operations to the web frontend:
// the current dataset (with its live/fallback status) and on-demand
// draw batches. The frontend owns all rendering; this layer only ships
// data.
type LottoServer struct {
	stats  *stats.Provider
	engine *draw.Engine
	snaps  SnapshotLister
	logger zerolog.Logger
}

func NewLottoServer(statsProvider *stats.Provider, engine *draw.Engine, snaps SnapshotLister, logger zerolog.Logger) *LottoServer {
	return &LottoServer{
		stats:  statsProvider,
		engine: engine,
		snaps:  snaps,
		logger: logger,
	}
}

func (s *LottoServer) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/stats", s.handleStats)
	mux.HandleFunc("POST /api/v1/draw", s.handleDraw)
	mux.HandleFunc("POST /api/v1/refresh", s.handleRefresh)
	mux.HandleFunc("GET /api/v1/fetches", s.handleFetches)
	mux.HandleFunc("GET /healthz", s.handleHealth)
}

type statsResponse struct {
	Records   domain.FrequencyTable `json:"records"`
	Status    domain.SourceStatus   `json:"status"`
	TopNumber int                   `json:"top_number"`
	TopCount  int                   `json:"top_count"`
}

func (s *LottoServer) handleStats(w http.ResponseWriter, r *http.Request) {
	table, status := s.stats.Current(r.Context())
	top := table.TopRecord()

	writeJSON(w, http.StatusOK, statsResponse{
		Records:   table,
		Status:    status,
		TopNumber: top.Number,
		TopCount:  top.Count,
	})
}

type drawRequest struct {
	Sets     int `json:"sets"`
	PickSize int `json:"pick_size"`
}

type drawResponse struct {
	Games  domain.DrawBatch    `json:"games"`
	Status domain.SourceStatus `json:"status"`
}

func (s *LottoServer) handleDraw(w http.ResponseWriter, r *http.Request) {
	opts := draw.DefaultOptions()

	var req drawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Sets != 0 {
		opts.Sets = req.Sets
	}
	if req.PickSize != 0 {
		opts.PickSize = req.PickSize
	}

	table, status := s.stats.Current(r.Context())

	batch, err := s.engine.Generate(table, opts)
	if err != nil {
		switch {
		case errors.Is(err, draw.ErrInvalidSetCount), errors.Is(err, draw.ErrInvalidPickSize):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			// a bad dataset out of the provider is a contract bug,
			// not a user condition
			s.logger.Error().Err(err).Msg("draw generation failed")
			writeError(w, http.StatusInternalServerError, "draw generation failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, drawResponse{Games: batch, Status: status})
}

func (s *LottoServer) handleRefresh(w http.ResponseWriter, r *http.Request) {
	table, status := s.stats.Refresh(r.Context())
	top := table.TopRecord()

	writeJSON(w, http.StatusOK, statsResponse{
		Records:   table,
		Status:    status,
		TopNumber: top.Number,
		TopCount:  top.Count,
	})
}

type fetchesResponse struct {
	Fetches []domain.FetchSnapshot `json:"fetches"`
}

func (s *LottoServer) handleFetches(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), constants.DatabaseTimeout)
	defer cancel()

	snaps, err := s.snaps.Recent(ctx, constants.RecentFetchLimit)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list fetch snapshots")
		writeError(w, http.StatusInternalServerError, "failed to list fetches")
		return
	}
	if snaps == nil {
		snaps = []domain.FetchSnapshot{}
	}

	writeJSON(w, http.StatusOK, fetchesResponse{Fetches: snaps})
}

func (s *LottoServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
