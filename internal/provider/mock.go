package provider

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/zoracast/zoracast/internal/coin"
)

// Mock is a development provider serving canned coin data, selected by
// configuration when no Zora API access is available.
type Mock struct {
	coins map[string]coin.Snapshot
	// comments served for every known coin
	comments []coin.Comment
}

func NewMock() *Mock {
	now := time.Now().UTC()
	m := &Mock{
		coins:    make(map[string]coin.Snapshot),
		comments: []coin.Comment{
			{Text: "Great coin!", PostedAt: now.Add(-2 * time.Hour)},
			{Text: "HODL!", PostedAt: now.Add(-1 * time.Hour)},
		},
	}
	fixtures := []coin.Snapshot{
		{
			Address:          "0x1111111111111111111111111111111111111111",
			Name:             "Mock Coin 1",
			Symbol:           "MCK1",
			MarketCap:        "1000000000000000000", // 1 ETH
			Volume24h:        "500000000000000000",  // 0.5 ETH
			MarketCapDelta24: "5",
		},
		{
			Address:          "0x2222222222222222222222222222222222222222",
			Name:             "Mock Coin 2",
			Symbol:           "MCK2",
			MarketCap:        "2000000000000000000", // 2 ETH
			Volume24h:        "750000000000000000",  // 0.75 ETH
			MarketCapDelta24: "3",
		},
	}
	for _, s := range fixtures {
		s.FetchedAt = now
		m.coins[s.Address] = s
	}
	return m
}

// Fetch implements Provider. Unknown addresses get the first fixture's
// metrics so any valid address resolves during development.
func (m *Mock) Fetch(_ context.Context, address string) (coin.Snapshot, []coin.Comment, error) {
	key := coin.NormalizeAddress(address)
	snap, ok := m.coins[key]
	if !ok {
		snap = m.coins["0x1111111111111111111111111111111111111111"]
		snap.Address = key
		snap.Name = "Mock Coin"
		snap.Symbol = "MCK"
	}
	snap.FetchedAt = time.Now().UTC()
	return snap, append([]coin.Comment(nil), m.comments...), nil
}

// TopGainers implements Provider, sorting fixtures by 24h delta.
func (m *Mock) TopGainers(_ context.Context, count int) ([]coin.Snapshot, error) {
	snaps := make([]coin.Snapshot, 0, len(m.coins))
	for _, s := range m.coins {
		snaps = append(snaps, s)
	}
	sort.Slice(snaps, func(i, j int) bool {
		di, _ := strconv.ParseFloat(snaps[i].MarketCapDelta24, 64)
		dj, _ := strconv.ParseFloat(snaps[j].MarketCapDelta24, 64)
		return di > dj
	})
	if count > 0 && count < len(snaps) {
		snaps = snaps[:count]
	}
	return snaps, nil
}

// New selects a provider implementation by configured mode.
func New(mode string, zora ZoraConfig) (Provider, error) {
	switch mode {
	case "zora", "":
		return NewZora(zora), nil
	case "mock":
		return NewMock(), nil
	default:
		return nil, fmt.Errorf("unknown provider mode %q", mode)
	}
}
