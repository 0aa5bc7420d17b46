// Package postgres implements the persistence repositories on
// PostgreSQL via sqlx.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/zoracast/zoracast/internal/coin"
	"github.com/zoracast/zoracast/internal/persistence"
)

type predictionsRepo struct {
	db      *sqlx.DB
	timeout time.Duration
}

// NewPredictionsRepo creates a PostgreSQL predictions repository.
func NewPredictionsRepo(db *sqlx.DB, timeout time.Duration) persistence.PredictionsRepo {
	return &predictionsRepo{db: db, timeout: timeout}
}

func (r *predictionsRepo) Insert(ctx context.Context, rec persistence.PredictionRecord) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.ObservedAt.IsZero() {
		rec.ObservedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO predictions
			(id, address, predicted_value, planned_time,
			 market_cap_eth, volume_24h_eth, market_cap_delta_pct, engagement_score,
			 observed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.Address, rec.PredictedValue, rec.PlannedTime,
		rec.Features.MarketCapEth, rec.Features.Volume24hEth,
		rec.Features.MarketCapDeltaPct, rec.Features.EngagementScore,
		rec.ObservedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return fmt.Errorf("duplicate prediction %s: %w", rec.ID, err)
		}
		return fmt.Errorf("failed to insert prediction: %w", err)
	}
	return nil
}

func (r *predictionsRepo) RecordObserved(ctx context.Context, id string, observed float64) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`UPDATE predictions SET observed_value = $2 WHERE id = $1`, id, observed)
	if err != nil {
		return fmt.Errorf("failed to record observed value: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("prediction %s: %w", id, sql.ErrNoRows)
	}
	return nil
}

func (r *predictionsRepo) ListSamples(ctx context.Context, limit int) ([]coin.TrainingSample, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		SELECT market_cap_eth, volume_24h_eth, market_cap_delta_pct,
		       engagement_score, observed_value
		FROM predictions
		WHERE observed_value IS NOT NULL
		ORDER BY observed_at DESC
		LIMIT $1`

	rows, err := r.db.QueryxContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query training samples: %w", err)
	}
	defer rows.Close()

	var samples []coin.TrainingSample
	for rows.Next() {
		var s coin.TrainingSample
		if err := rows.Scan(
			&s.Features.MarketCapEth, &s.Features.Volume24hEth,
			&s.Features.MarketCapDeltaPct, &s.Features.EngagementScore,
			&s.Observed); err != nil {
			return nil, fmt.Errorf("failed to scan training sample: %w", err)
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}
