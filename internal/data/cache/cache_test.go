package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zoracast/zoracast/internal/coin"
)

func entryFor(cap string) Entry {
	return Entry{
		Snapshot: coin.Snapshot{
			Address:   "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd",
			MarketCap: cap,
			FetchedAt: time.Now().UTC(),
		},
	}
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemory(time.Minute)
	ctx := context.Background()

	_, ok := c.Get(ctx, "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd")
	assert.False(t, ok)

	c.Set(ctx, "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd", entryFor("100"))
	got, ok := c.Get(ctx, "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd")
	assert.True(t, ok)
	assert.Equal(t, "100", got.Snapshot.MarketCap)
}

func TestMemoryCacheKeysAreCaseInsensitive(t *testing.T) {
	c := NewMemory(time.Minute)
	ctx := context.Background()

	c.Set(ctx, "0xABCDEFabcdefabcdefabcdefabcdefabcdefABCD", entryFor("1"))
	_, ok := c.Get(ctx, "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd")
	assert.True(t, ok)
}

func TestMemoryCacheLastWriteWins(t *testing.T) {
	c := NewMemory(time.Minute)
	ctx := context.Background()
	addr := "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd"

	c.Set(ctx, addr, entryFor("1"))
	c.Set(ctx, addr, entryFor("2"))
	got, ok := c.Get(ctx, addr)
	assert.True(t, ok)
	assert.Equal(t, "2", got.Snapshot.MarketCap)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemory(10 * time.Millisecond)
	ctx := context.Background()
	addr := "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd"

	c.Set(ctx, addr, entryFor("1"))
	time.Sleep(25 * time.Millisecond)
	_, ok := c.Get(ctx, addr)
	assert.False(t, ok, "entry must expire after its TTL")
}

func TestMemoryCacheZeroTTLNeverExpires(t *testing.T) {
	c := NewMemory(0)
	ctx := context.Background()
	addr := "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd"

	c.Set(ctx, addr, entryFor("1"))
	time.Sleep(5 * time.Millisecond)
	_, ok := c.Get(ctx, addr)
	assert.True(t, ok)
}

func TestMemoryCacheConcurrentAccess(t *testing.T) {
	c := NewMemory(time.Minute)
	ctx := context.Background()
	addr := "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd"

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.Set(ctx, addr, entryFor("9"))
		}()
		go func() {
			defer wg.Done()
			c.Get(ctx, addr)
		}()
	}
	wg.Wait()

	got, ok := c.Get(ctx, addr)
	assert.True(t, ok)
	assert.Equal(t, "9", got.Snapshot.MarketCap)
}

func TestNewAutoDefaultsToMemory(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	c := NewAuto("", time.Minute)
	_, isMem := c.(*memory)
	assert.True(t, isMem)
}
