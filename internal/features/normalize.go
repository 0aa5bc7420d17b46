// Package features turns raw coin market metrics into the normalized
// numeric inputs the prediction model consumes.
package features

import (
	"math/big"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/zoracast/zoracast/internal/coin"
)

// weiPerEth is the implicit 18-decimal scaling of base-unit amount strings.
var weiPerEth = new(big.Float).SetFloat64(1e18)

// defaultMarketCapWei is the fallback when a snapshot carries no market
// cap: the base-unit equivalent of 1.0 ETH. Never zero, so downstream
// multiplication does not collapse just because data is absent.
const defaultMarketCapWei = "1000000000000000000"

// Normalize converts a snapshot's wei-style amount strings into
// ETH-denominated floats plus the 24h delta percentage. Missing or
// unparseable fields fall back to defaults (market cap 1.0 ETH,
// volume 0, delta 0); it never fails for a well-formed snapshot.
func Normalize(snap coin.Snapshot) (marketCapEth, volume24hEth, marketCapDeltaPct float64) {
	marketCapEth = ethFromWei(snap.MarketCap, defaultMarketCapWei, "market_cap")
	volume24hEth = ethFromWei(snap.Volume24h, "0", "volume_24h")
	marketCapDeltaPct = deltaPct(snap.MarketCapDelta24)
	return marketCapEth, volume24hEth, marketCapDeltaPct
}

func ethFromWei(raw, fallback, field string) float64 {
	s := raw
	if s == "" {
		s = fallback
	}
	wei, ok := new(big.Int).SetString(s, 10)
	if !ok {
		log.Warn().Str("field", field).Str("value", raw).Msg("Unparseable amount, using default")
		wei, _ = new(big.Int).SetString(fallback, 10)
	}
	eth, _ := new(big.Float).Quo(new(big.Float).SetInt(wei), weiPerEth).Float64()
	if eth < 0 {
		// Provider amounts are unsigned by contract; a negative value
		// here means corrupt upstream data.
		log.Warn().Str("field", field).Float64("eth", eth).Msg("Negative amount clamped to zero")
		return 0
	}
	return eth
}

func deltaPct(raw string) float64 {
	if raw == "" {
		return 0
	}
	pct, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Warn().Str("value", raw).Msg("Unparseable market cap delta, using zero")
		return 0
	}
	return pct
}
