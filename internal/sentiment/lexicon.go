package sentiment

import (
	"context"
	"strings"
)

// Lexicon is a keyword-count sentiment analyzer tuned for crypto
// community chatter. Score is (positive - negative) / tokens matched,
// clamped to [-1, 1]; text with no lexicon hits is neutral (0).
type Lexicon struct {
	positive map[string]struct{}
	negative map[string]struct{}
}

var positiveWords = []string{
	"good", "great", "love", "amazing", "awesome", "bullish", "moon",
	"mooning", "pump", "gem", "win", "winning", "hodl", "hold", "buy",
	"up", "gain", "gains", "profit", "strong", "solid", "best", "nice",
	"lfg", "fire", "rocket", "huge", "early", "undervalued",
}

var negativeWords = []string{
	"bad", "terrible", "hate", "awful", "bearish", "dump", "dumping",
	"rug", "rugged", "scam", "sell", "down", "loss", "losses", "weak",
	"dead", "worst", "crash", "drop", "exit", "overvalued", "fear",
	"rekt", "avoid",
}

// NewLexicon builds the analyzer with the built-in word lists.
func NewLexicon() *Lexicon {
	l := &Lexicon{
		positive: make(map[string]struct{}, len(positiveWords)),
		negative: make(map[string]struct{}, len(negativeWords)),
	}
	for _, w := range positiveWords {
		l.positive[w] = struct{}{}
	}
	for _, w := range negativeWords {
		l.negative[w] = struct{}{}
	}
	return l
}

// Analyze implements Analyzer. It never fails; the error return exists
// to satisfy the interface shared with remote analyzers.
func (l *Lexicon) Analyze(_ context.Context, text string) (float64, error) {
	var pos, neg int
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		tok = strings.Trim(tok, ".,!?:;\"'()[]#@")
		if tok == "" {
			continue
		}
		if _, ok := l.positive[tok]; ok {
			pos++
			continue
		}
		if _, ok := l.negative[tok]; ok {
			neg++
		}
	}
	hits := pos + neg
	if hits == 0 {
		return 0, nil
	}
	return Clamp(float64(pos-neg) / float64(hits)), nil
}
