// Package persistence defines the result sink contracts. The pipeline
// only writes prediction and trade records here; training samples are
// read back by the offline train command once observed values have
// been recorded by a separate collaborator.
package persistence

import (
	"context"
	"time"

	"github.com/zoracast/zoracast/internal/coin"
)

// PredictionRecord is one served prediction plus the feature vector it
// was computed from, so observed outcomes can later be joined into
// training samples without re-deriving features from stale data.
type PredictionRecord struct {
	ID             string             `json:"id" db:"id"`
	Address        string             `json:"address" db:"address"`
	PredictedValue float64            `json:"predicted_value" db:"predicted_value"`
	PlannedTime    *time.Time         `json:"planned_time,omitempty" db:"planned_time"`
	Features       coin.FeatureVector `json:"features"`
	ObservedValue  *float64           `json:"observed_value,omitempty" db:"observed_value"`
	ObservedAt     time.Time          `json:"observed_at" db:"observed_at"`
}

// TradeRecord is a user trade intent stored for history. No on-chain
// execution happens here.
type TradeRecord struct {
	ID        string    `json:"id" db:"id"`
	User      string    `json:"user" db:"user_addr"`
	Address   string    `json:"address" db:"coin_addr"`
	AmountEth float64   `json:"amount_eth" db:"amount_eth"`
	IsBuy     bool      `json:"is_buy" db:"is_buy"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PredictionsRepo persists served predictions and assembles training
// samples from those with observed values.
type PredictionsRepo interface {
	Insert(ctx context.Context, rec PredictionRecord) error

	// RecordObserved attaches the realized post value to a prediction.
	RecordObserved(ctx context.Context, id string, observed float64) error

	// ListSamples returns up to limit (feature vector, observed value)
	// pairs for model training, newest first.
	ListSamples(ctx context.Context, limit int) ([]coin.TrainingSample, error)
}

// TradesRepo persists trade records.
type TradesRepo interface {
	Insert(ctx context.Context, rec TradeRecord) error
}
