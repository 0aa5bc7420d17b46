package coin

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidAddress(t *testing.T) {
	tests := []struct {
		name    string
		address string
		valid   bool
	}{
		{name: "lowercase", address: "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd", valid: true},
		{name: "mixed_case", address: "0xABCdef1234567890abcdef1234567890ABCDEF12", valid: true},
		{name: "not_an_address", address: "not-an-address", valid: false},
		{name: "missing_prefix", address: "abcdefabcdefabcdefabcdefabcdefabcdefabcd", valid: false},
		{name: "too_short", address: "0xabc", valid: false},
		{name: "too_long", address: "0xabcdefabcdefabcdefabcdefabcdefabcdefabcdef", valid: false},
		{name: "non_hex", address: "0xzzcdefabcdefabcdefabcdefabcdefabcdefabcd", valid: false},
		{name: "empty", address: "", valid: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidAddress(tt.address))
		})
	}
}

func TestNormalizeAddress(t *testing.T) {
	assert.Equal(t,
		"0xabcdef1234567890abcdef1234567890abcdef12",
		NormalizeAddress("0xABCdef1234567890abcdef1234567890ABCDEF12"))
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		kind string
	}{
		{fmt.Errorf("wrap: %w", ErrValidation), "validation"},
		{fmt.Errorf("wrap: %w", ErrCoinNotFound), "coin_not_found"},
		{ErrModelNotReady, "model_not_ready"},
		{ErrUpstreamTimeout, "upstream_timeout"},
		{ErrUpstream, "upstream_error"},
		{ErrInsufficientData, "insufficient_data"},
		{errors.New("something else"), "internal"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.kind, ErrorKind(tt.err))
	}
}

func TestFeatureVectorValues(t *testing.T) {
	fv := FeatureVector{MarketCapEth: 1, Volume24hEth: 0.5, MarketCapDeltaPct: 5, EngagementScore: 1.2}
	assert.Equal(t, []float64{1, 0.5, 5, 1.2}, fv.Values())
}
