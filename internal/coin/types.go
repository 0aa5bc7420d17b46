package coin

import (
	"regexp"
	"strings"
	"time"
)

// Snapshot is a point-in-time capture of a creator coin's market metrics
// as reported by the data provider. Amount fields are base-unit integer
// strings with 18 implicit decimals (wei-style). A snapshot is immutable
// once fetched; a newer fetch for the same address supersedes it.
type Snapshot struct {
	Address          string    `json:"address" db:"address"`
	Name             string    `json:"name,omitempty" db:"name"`
	Symbol           string    `json:"symbol,omitempty" db:"symbol"`
	MarketCap        string    `json:"market_cap" db:"market_cap"`
	Volume24h        string    `json:"volume_24h" db:"volume_24h"`
	MarketCapDelta24 string    `json:"market_cap_delta_24h" db:"market_cap_delta_24h"`
	FetchedAt        time.Time `json:"fetched_at" db:"fetched_at"`
}

// Comment is a single community comment on a coin. Order of arrival is
// provider order and carries no chronological guarantee.
type Comment struct {
	Text     string    `json:"text"`
	PostedAt time.Time `json:"posted_at"`
}

// FeatureVector is the fixed 4-dimensional numeric input to the
// prediction model, in the order the model was trained with.
type FeatureVector struct {
	MarketCapEth      float64 `json:"market_cap_eth"`
	Volume24hEth      float64 `json:"volume_24h_eth"`
	MarketCapDeltaPct float64 `json:"market_cap_delta_pct"`
	EngagementScore   float64 `json:"engagement_score"`
}

// Values returns the vector as an ordered slice for model input.
func (fv FeatureVector) Values() []float64 {
	return []float64{fv.MarketCapEth, fv.Volume24hEth, fv.MarketCapDeltaPct, fv.EngagementScore}
}

// PredictionResult is the output of one prediction request. Produced
// fresh per request, never cached.
type PredictionResult struct {
	Address        string     `json:"address"`
	PredictedValue float64    `json:"predicted_value"`
	BestPostHour   int        `json:"best_post_hour"`
	PlannedTime    *time.Time `json:"planned_time,omitempty"`
	GeneratedAt    time.Time  `json:"generated_at"`
}

// TrainingSample pairs a feature vector with the value the post
// actually realized, for offline model training.
type TrainingSample struct {
	Features FeatureVector `json:"features"`
	Observed float64       `json:"observed"`
}

var addressRe = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// ValidAddress reports whether s is a syntactically valid 0x-prefixed
// 40-hex-character coin address.
func ValidAddress(s string) bool {
	return addressRe.MatchString(s)
}

// NormalizeAddress lowercases an address for use as a cache or storage
// key. Callers must validate first.
func NormalizeAddress(s string) string {
	return strings.ToLower(s)
}
