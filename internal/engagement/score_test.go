package engagement

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zoracast/zoracast/internal/coin"
)

// stubAnalyzer returns a fixed score, or an error when failing is set.
type stubAnalyzer struct {
	score   float64
	failing bool
}

func (s *stubAnalyzer) Analyze(context.Context, string) (float64, error) {
	if s.failing {
		return 0, errors.New("analyzer unavailable")
	}
	return s.score, nil
}

func comments(n int) []coin.Comment {
	out := make([]coin.Comment, n)
	for i := range out {
		out[i] = coin.Comment{Text: "something", PostedAt: time.Now()}
	}
	return out
}

func TestScoreEmptyIsExactlyBaseline(t *testing.T) {
	s := NewScorer(&stubAnalyzer{})
	assert.Equal(t, 1.0, s.Score(context.Background(), nil))
	assert.Equal(t, 1.0, s.Score(context.Background(), []coin.Comment{}))
}

func TestScorePerCommentContribution(t *testing.T) {
	tests := []struct {
		name      string
		sentiment float64
		count     int
		want      float64
	}{
		{name: "two_neutral", sentiment: 0, count: 2, want: 1.2},
		{name: "one_fully_positive", sentiment: 1, count: 1, want: 1.2},
		{name: "one_fully_negative", sentiment: -1, count: 1, want: 1.0},
		{name: "five_half_positive", sentiment: 0.5, count: 5, want: 1.75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScorer(&stubAnalyzer{score: tt.sentiment})
			got := s.Score(context.Background(), comments(tt.count))
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestScoreToleratesAnalyzerFailure(t *testing.T) {
	// A failing analyzer degrades each comment to a neutral 0.1
	// contribution instead of aborting.
	s := NewScorer(&stubAnalyzer{failing: true})
	got := s.Score(context.Background(), comments(3))
	assert.InDelta(t, 1.3, got, 1e-9)
}

func TestScoreMonotoneForNonNegativeSentiment(t *testing.T) {
	s := NewScorer(&stubAnalyzer{score: 0.2})
	prev := s.Score(context.Background(), nil)
	for n := 1; n <= 10; n++ {
		got := s.Score(context.Background(), comments(n))
		assert.Greater(t, got, prev)
		prev = got
	}
}

func TestScoreClampsOutOfRangeSentiment(t *testing.T) {
	s := NewScorer(&stubAnalyzer{score: 5.0})
	// Clamped to 1.0 per comment: contribution capped at 0.2.
	assert.InDelta(t, 1.2, s.Score(context.Background(), comments(1)), 1e-9)
}
