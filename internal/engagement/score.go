// Package engagement aggregates per-comment sentiment into a single
// engagement multiplier for the feature vector.
package engagement

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/zoracast/zoracast/internal/coin"
	"github.com/zoracast/zoracast/internal/sentiment"
)

const (
	// Baseline engagement for a coin with zero comments. The feature
	// floor is 1.0, never less.
	baseline = 1.0

	// Each comment contributes perComment + perComment*sentiment,
	// i.e. between 0.0 and 0.2 with 0.1 for neutral text.
	perComment = 0.1
)

// Scorer computes engagement scores using a sentiment analyzer.
type Scorer struct {
	analyzer sentiment.Analyzer
}

func NewScorer(analyzer sentiment.Analyzer) *Scorer {
	return &Scorer{analyzer: analyzer}
}

// Score returns the engagement multiplier for a comment set. An empty
// set scores exactly 1.0. A per-comment analyzer failure is absorbed as
// a neutral contribution rather than aborting the whole score.
func (s *Scorer) Score(ctx context.Context, comments []coin.Comment) float64 {
	score := baseline
	for _, c := range comments {
		sent, err := s.analyzer.Analyze(ctx, c.Text)
		if err != nil {
			log.Warn().Err(err).Msg("Sentiment analysis failed, treating comment as neutral")
			sent = 0
		}
		score += perComment + perComment*sentiment.Clamp(sent)
	}
	return score
}
