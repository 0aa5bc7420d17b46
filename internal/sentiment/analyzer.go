// Package sentiment scores free-text community comments on a signed
// [-1, 1] scale.
package sentiment

import "context"

// Analyzer produces a signed sentiment score in [-1, 1] for a piece of
// text. Implementations may call out to external services; failures are
// tolerated per-comment by callers, so an error here never aborts a
// whole scoring pass.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (float64, error)
}

// Clamp bounds a raw score to the [-1, 1] contract.
func Clamp(score float64) float64 {
	switch {
	case score > 1:
		return 1
	case score < -1:
		return -1
	default:
		return score
	}
}
