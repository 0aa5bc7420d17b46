package main

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/zoracast/zoracast/internal/coin"
	"github.com/zoracast/zoracast/internal/config"
	"github.com/zoracast/zoracast/internal/data/cache"
	"github.com/zoracast/zoracast/internal/engagement"
	"github.com/zoracast/zoracast/internal/persistence"
	"github.com/zoracast/zoracast/internal/persistence/postgres"
	"github.com/zoracast/zoracast/internal/predictor"
	"github.com/zoracast/zoracast/internal/provider"
	"github.com/zoracast/zoracast/internal/sentiment"
)

// app bundles the wired components shared by the CLI commands.
type app struct {
	cfg         *config.Config
	provider    provider.Provider
	predictor   *predictor.Predictor
	predictions persistence.PredictionsRepo
	trades      persistence.TradesRepo
	db          *sqlx.DB
}

func buildApp() (*app, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, err
	}

	prov, err := provider.New(cfg.Provider.Mode, cfg.Provider.Zora)
	if err != nil {
		return nil, err
	}
	log.Info().Str("mode", cfg.Provider.Mode).Msg("Coin data provider configured")

	a := &app{
		cfg:      cfg,
		provider: prov,
		predictor: predictor.New(
			prov,
			cache.NewAuto(cfg.Cache.RedisAddr, cfg.Cache.TTL),
			engagement.NewScorer(sentiment.NewLexicon()),
			cfg.Model,
		),
	}

	if cfg.Postgres.DSN != "" {
		db, err := sqlx.Connect("postgres", cfg.Postgres.DSN)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.db = db
		a.predictions = postgres.NewPredictionsRepo(db, cfg.Postgres.Timeout)
		a.trades = postgres.NewTradesRepo(db, cfg.Postgres.Timeout)
		log.Info().Msg("Result sink connected")
	} else {
		log.Warn().Msg("No postgres DSN configured, predictions will not be recorded")
	}

	return a, nil
}

func (a *app) close() {
	if a.db != nil {
		a.db.Close()
	}
}

// trainFromSink pulls recorded samples from the result sink and
// publishes a freshly trained model.
func (a *app) trainFromSink(ctx context.Context, limit int) error {
	if a.predictions == nil {
		return fmt.Errorf("training requires a configured database: %w", coin.ErrInsufficientData)
	}
	samples, err := a.predictions.ListSamples(ctx, limit)
	if err != nil {
		return fmt.Errorf("load training samples: %w", err)
	}
	return a.predictor.Train(ctx, samples)
}
