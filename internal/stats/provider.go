package stats

import (
	"context"
	"time"

	"lotto-picker/internal/config"
	"lotto-picker/internal/domain"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const cacheKey = "frequency-table"

// Fetcher retrieves the live frequency table. Implemented by
// api.LottoClient.
type Fetcher interface {
	FetchStatistics(ctx context.Context) (domain.FrequencyTable, error)
}

// SnapshotStore records refresh audit entries. Implemented by
// repository.SnapshotRepository.
type SnapshotStore interface {
	Insert(ctx context.Context, snap domain.FetchSnapshot) error
}

type result struct {
	table  domain.FrequencyTable
	status domain.SourceStatus
}

// Provider hands out the current frequency table. It never fails: any
// fetch or parse problem resolves to the embedded fallback table with
// SourceFallback status, and that result is cached like a live one so
// failures are retried only after the TTL, never treated as permanent.
type Provider struct {
	fetcher Fetcher
	store   SnapshotStore
	cache   *gocache.Cache
	group   singleflight.Group
	timeout time.Duration
	logger  zerolog.Logger
}

func NewProvider(fetcher Fetcher, store SnapshotStore, cfg *config.Config, logger zerolog.Logger) *Provider {
	return &Provider{
		fetcher: fetcher,
		store:   store,
		cache:   gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		timeout: cfg.FetchTimeout,
		logger:  logger,
	}
}

// Current returns the cached table, refreshing at most once per TTL
// window. Concurrent callers on a cold cache share one in-flight
// fetch; nobody triggers a second outbound request.
func (p *Provider) Current(ctx context.Context) (domain.FrequencyTable, domain.SourceStatus) {
	if v, ok := p.cache.Get(cacheKey); ok {
		res := v.(result)
		return res.table.Clone(), res.status
	}

	v, _, _ := p.group.Do(cacheKey, func() (any, error) {
		// a caller queued behind the winning flight may land here
		// after the cache was already filled
		if cached, ok := p.cache.Get(cacheKey); ok {
			return cached.(result), nil
		}

		res := p.refresh()
		p.cache.Set(cacheKey, res, gocache.DefaultExpiration)
		return res, nil
	})

	res := v.(result)
	return res.table.Clone(), res.status
}

// Refresh drops the cached table and fetches anew.
func (p *Provider) Refresh(ctx context.Context) (domain.FrequencyTable, domain.SourceStatus) {
	p.cache.Delete(cacheKey)
	return p.Current(ctx)
}

// refresh runs on a detached context: the result is shared by every
// caller in the window, so one cancelled request must not abort it.
func (p *Provider) refresh() result {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	table, err := p.fetcher.FetchStatistics(ctx)
	status := domain.SourceLive
	if err != nil {
		p.logger.Warn().Err(err).Msg("live statistics fetch failed, using embedded fallback")
		table = FallbackTable()
		status = domain.SourceFallback
	} else if err := table.Validate(); err != nil {
		p.logger.Warn().Err(err).Msg("fetched statistics violate the table invariant, using embedded fallback")
		table = FallbackTable()
		status = domain.SourceFallback
	} else {
		p.logger.Info().Int("records", len(table)).Msg("live statistics fetched")
	}

	p.recordSnapshot(table, status)
	return result{table: table, status: status}
}

func (p *Provider) recordSnapshot(table domain.FrequencyTable, status domain.SourceStatus) {
	if p.store == nil {
		return
	}

	top := table.TopRecord()
	snap := domain.FetchSnapshot{
		Status:      status,
		RecordCount: len(table),
		TopNumber:   top.Number,
		TopCount:    top.Count,
		FetchedAt:   time.Now(),
	}

	g := new(errgroup.Group)
	g.Go(func() error {
		return p.store.Insert(context.Background(), snap)
	})
	go func() {
		if err := g.Wait(); err != nil {
			p.logger.Warn().Err(err).Msg("failed to record fetch snapshot")
		}
	}()
}
