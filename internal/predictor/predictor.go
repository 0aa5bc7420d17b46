// Package predictor composes the feature normalizer, engagement
// scorer, time factor, best-time estimator and regression model into a
// single predict call, and owns the model lifecycle.
package predictor

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zoracast/zoracast/internal/coin"
	"github.com/zoracast/zoracast/internal/data/cache"
	"github.com/zoracast/zoracast/internal/engagement"
	"github.com/zoracast/zoracast/internal/features"
	"github.com/zoracast/zoracast/internal/model"
	"github.com/zoracast/zoracast/internal/provider"
	"github.com/zoracast/zoracast/internal/telemetry"
	"github.com/zoracast/zoracast/internal/timing"
)

// Prediction is a served result plus the feature vector it was computed
// from, which the caller may hand to the result sink for later
// training-sample assembly.
type Prediction struct {
	coin.PredictionResult
	Features coin.FeatureVector
}

// Predictor is the prediction orchestrator. The active model is held in
// an atomic pointer: Train publishes a freshly trained network by swap,
// so in-flight Predict calls keep the instance they loaded and never
// observe a partially trained model.
type Predictor struct {
	provider provider.Provider
	cache    cache.Cache
	scorer   *engagement.Scorer
	modelCfg model.Config

	net atomic.Pointer[model.Network]
	now func() time.Time
}

// Option configures a Predictor.
type Option func(*Predictor)

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(p *Predictor) { p.now = now }
}

func New(prov provider.Provider, c cache.Cache, scorer *engagement.Scorer, modelCfg model.Config, opts ...Option) *Predictor {
	p := &Predictor{
		provider: prov,
		cache:    c,
		scorer:   scorer,
		modelCfg: modelCfg,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ready reports whether a trained model has been published.
func (p *Predictor) Ready() bool {
	return p.net.Load() != nil
}

// Train fits a new model on the samples and atomically publishes it.
// The previous model, if any, keeps serving until the swap. Fails with
// coin.ErrInsufficientData on an empty sample set, leaving any
// published model untouched.
func (p *Predictor) Train(_ context.Context, samples []coin.TrainingSample) error {
	net, err := model.Train(samples, p.modelCfg)
	if err != nil {
		return err
	}
	p.net.Store(net)
	telemetry.ModelTrainings.Inc()
	log.Info().Int("samples", len(samples)).Msg("Published newly trained model")
	return nil
}

// Predict runs the full pipeline for one coin. All-or-nothing: any
// failure surfaces as a tagged error with no partial result.
func (p *Predictor) Predict(ctx context.Context, address string, planned *time.Time) (Prediction, error) {
	start := p.now()
	pred, err := p.predict(ctx, address, planned)
	telemetry.PredictDuration.Observe(p.now().Sub(start).Seconds())
	if err != nil {
		telemetry.PredictionsTotal.WithLabelValues(outcome(err)).Inc()
		return Prediction{}, err
	}
	telemetry.PredictionsTotal.WithLabelValues("ok").Inc()
	return pred, nil
}

func (p *Predictor) predict(ctx context.Context, address string, planned *time.Time) (Prediction, error) {
	if !coin.ValidAddress(address) {
		return Prediction{}, fmt.Errorf("address %q: %w", address, coin.ErrValidation)
	}

	snap, comments, err := p.coinData(ctx, address)
	if err != nil {
		return Prediction{}, err
	}

	marketCapEth, volumeEth, deltaPct := features.Normalize(snap)
	fv := coin.FeatureVector{
		MarketCapEth:      marketCapEth,
		Volume24hEth:      volumeEth,
		MarketCapDeltaPct: deltaPct,
		EngagementScore:   p.scorer.Score(ctx, comments),
	}

	net := p.net.Load()
	if net == nil {
		return Prediction{}, fmt.Errorf("predict %s: %w", address, coin.ErrModelNotReady)
	}

	value := net.Predict(fv) * timing.Factor(planned)
	if value < 0 {
		value = 0
	}

	result := coin.PredictionResult{
		Address:        coin.NormalizeAddress(address),
		PredictedValue: value,
		BestPostHour:   timing.BestHour(comments, p.now),
		PlannedTime:    planned,
		GeneratedAt:    p.now().UTC(),
	}
	log.Debug().Str("address", result.Address).
		Float64("predicted_value", value).
		Int("best_post_hour", result.BestPostHour).
		Msg("Prediction computed")
	return Prediction{PredictionResult: result, Features: fv}, nil
}

// coinData serves the snapshot and comments from cache when fresh,
// otherwise fetches from the provider and upserts (last write wins).
func (p *Predictor) coinData(ctx context.Context, address string) (coin.Snapshot, []coin.Comment, error) {
	if e, ok := p.cache.Get(ctx, address); ok {
		telemetry.CacheHits.Inc()
		return e.Snapshot, e.Comments, nil
	}
	telemetry.CacheMisses.Inc()

	snap, comments, err := p.provider.Fetch(ctx, address)
	if err != nil {
		telemetry.ProviderFetches.WithLabelValues("error").Inc()
		return coin.Snapshot{}, nil, err
	}
	telemetry.ProviderFetches.WithLabelValues("ok").Inc()
	p.cache.Set(ctx, address, cache.Entry{Snapshot: snap, Comments: comments})
	return snap, comments, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	default:
		return coin.ErrorKind(err)
	}
}
