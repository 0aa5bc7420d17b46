// Package provider defines the coin data provider boundary and its
// implementations. The orchestrator consumes this interface; which
// implementation backs it (live Zora API or the mock) is a
// configuration choice, never a branch inside the pipeline.
package provider

import (
	"context"

	"github.com/zoracast/zoracast/internal/coin"
)

// Provider supplies coin market snapshots and community comments.
//
// Fetch fails with coin.ErrCoinNotFound when the provider has no
// market-cap data for the address, coin.ErrUpstreamTimeout when the
// bounded fetch deadline is exceeded, and coin.ErrUpstream for any
// other provider failure.
type Provider interface {
	Fetch(ctx context.Context, address string) (coin.Snapshot, []coin.Comment, error)
	TopGainers(ctx context.Context, count int) ([]coin.Snapshot, error)
}
