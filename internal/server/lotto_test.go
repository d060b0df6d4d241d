package server_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lotto-picker/internal/config"
	"lotto-picker/internal/domain"
	"lotto-picker/internal/draw"
	"lotto-picker/internal/rng"
	"lotto-picker/internal/server"
	"lotto-picker/internal/stats"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingFetcher struct{}

func (failingFetcher) FetchStatistics(context.Context) (domain.FrequencyTable, error) {
	return nil, errors.New("unreachable")
}

type fakeLister struct {
	snaps []domain.FetchSnapshot
	err   error
}

func (l *fakeLister) Recent(context.Context, int) ([]domain.FetchSnapshot, error) {
	return l.snaps, l.err
}

func newTestMux(t *testing.T, lister server.SnapshotLister) *http.ServeMux {
	t.Helper()

	cfg := &config.Config{CacheTTL: time.Hour, FetchTimeout: time.Second}
	provider := stats.NewProvider(failingFetcher{}, nil, cfg, zerolog.Nop())
	engine := draw.NewEngine(rng.NewSeeded(17))

	mux := http.NewServeMux()
	server.NewLottoServer(provider, engine, lister, zerolog.Nop()).Register(mux)
	return mux
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path, body string, out any) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if out != nil && rec.Code == http.StatusOK {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
	}
	return rec
}

func TestHandleStats(t *testing.T) {
	mux := newTestMux(t, &fakeLister{})

	var resp struct {
		Records   domain.FrequencyTable `json:"records"`
		Status    domain.SourceStatus   `json:"status"`
		TopNumber int                   `json:"top_number"`
		TopCount  int                   `json:"top_count"`
	}
	rec := doJSON(t, mux, http.MethodGet, "/api/v1/stats", "", &resp)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, resp.Records, domain.TableSize)
	assert.Equal(t, domain.SourceFallback, resp.Status)
	assert.Equal(t, 34, resp.TopNumber)
	assert.Equal(t, 190, resp.TopCount)
}

func TestHandleDrawDefaults(t *testing.T) {
	mux := newTestMux(t, &fakeLister{})

	var resp struct {
		Games  domain.DrawBatch    `json:"games"`
		Status domain.SourceStatus `json:"status"`
	}
	rec := doJSON(t, mux, http.MethodPost, "/api/v1/draw", "", &resp)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp.Games, 5)
	assert.Equal(t, domain.SourceFallback, resp.Status)

	for _, game := range resp.Games {
		require.Len(t, game.MainNumbers, 6)
		for i, n := range game.MainNumbers {
			assert.GreaterOrEqual(t, n, domain.MinNumber)
			assert.LessOrEqual(t, n, domain.MaxNumber)
			if i > 0 {
				assert.Greater(t, n, game.MainNumbers[i-1])
			}
			assert.NotEqual(t, game.BonusNumber, n)
		}
	}
}

func TestHandleDrawCustomParams(t *testing.T) {
	mux := newTestMux(t, &fakeLister{})

	var resp struct {
		Games domain.DrawBatch `json:"games"`
	}
	rec := doJSON(t, mux, http.MethodPost, "/api/v1/draw", `{"sets":2,"pick_size":10}`, &resp)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp.Games, 2)
	for _, game := range resp.Games {
		assert.Len(t, game.MainNumbers, 9)
	}
}

func TestHandleDrawRejectsBadParams(t *testing.T) {
	mux := newTestMux(t, &fakeLister{})

	tests := []struct {
		name string
		body string
	}{
		{"too many sets", `{"sets":99}`},
		{"pick size too small", `{"pick_size":1}`},
		{"pick size too large", `{"pick_size":46}`},
		{"malformed json", `{"sets":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, mux, http.MethodPost, "/api/v1/draw", tt.body, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleFetches(t *testing.T) {
	lister := &fakeLister{snaps: []domain.FetchSnapshot{
		{ID: "a", Status: domain.SourceLive, RecordCount: 45, FetchedAt: time.Now()},
		{ID: "b", Status: domain.SourceFallback, RecordCount: 45, FetchedAt: time.Now().Add(-time.Hour)},
	}}
	mux := newTestMux(t, lister)

	var resp struct {
		Fetches []domain.FetchSnapshot `json:"fetches"`
	}
	rec := doJSON(t, mux, http.MethodGet, "/api/v1/fetches", "", &resp)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, resp.Fetches, 2)
	assert.Equal(t, "a", resp.Fetches[0].ID)
}

func TestHandleFetchesStoreError(t *testing.T) {
	mux := newTestMux(t, &fakeLister{err: errors.New("db closed")})

	rec := doJSON(t, mux, http.MethodGet, "/api/v1/fetches", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleHealth(t *testing.T) {
	mux := newTestMux(t, &fakeLister{})

	rec := doJSON(t, mux, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
