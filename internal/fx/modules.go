package fx

import (
	"lotto-picker/internal/api"
	"lotto-picker/internal/config"
	"lotto-picker/internal/database"
	"lotto-picker/internal/draw"
	"lotto-picker/internal/logger"
	"lotto-picker/internal/repository"
	"lotto-picker/internal/rng"
	"lotto-picker/internal/server"
	"lotto-picker/internal/stats"

	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideStatsProvider(client *api.LottoClient, repo *repository.SnapshotRepository, cfg *config.Config, log zerolog.Logger) *stats.Provider {
	return stats.NewProvider(client, repo, cfg, log)
}

func ProvideEngine() *draw.Engine {
	return draw.NewEngine(rng.Default())
}

func ProvideLottoServer(statsProvider *stats.Provider, engine *draw.Engine, repo *repository.SnapshotRepository, log zerolog.Logger) *server.LottoServer {
	return server.NewLottoServer(statsProvider, engine, repo, log)
}

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	fx.Provide(repository.NewSnapshotRepository),
	// stats source
	fx.Provide(api.NewLottoClient),
	fx.Provide(ProvideStatsProvider),
	// draw engine
	fx.Provide(ProvideEngine),
	// server
	fx.Provide(ProvideLottoServer),
)
