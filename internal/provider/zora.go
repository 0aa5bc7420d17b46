package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/zoracast/zoracast/internal/coin"
)

// ZoraConfig configures the live Zora coins API client.
type ZoraConfig struct {
	BaseURL      string        `yaml:"base_url"`
	APIKey       string        `yaml:"api_key"`
	ChainID      int           `yaml:"chain_id"`
	CommentCount int           `yaml:"comment_count"`
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
	RPS          float64       `yaml:"rps"`
	Burst        int           `yaml:"burst"`
}

func DefaultZoraConfig() ZoraConfig {
	return ZoraConfig{
		BaseURL:      "https://api-sdk.zora.engineering",
		ChainID:      8453, // Base mainnet
		CommentCount: 100,
		FetchTimeout: 10 * time.Second,
		RPS:          5,
		Burst:        10,
	}
}

// Zora fetches coin data from the Zora coins API. Requests are rate
// limited and routed through a circuit breaker so a degraded upstream
// sheds load fast instead of tying up request handlers.
type Zora struct {
	cfg     ZoraConfig
	client  *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

func NewZora(cfg ZoraConfig) *Zora {
	st := gobreaker.Settings{Name: "zora"}
	st.Interval = 60 * time.Second
	st.Timeout = 60 * time.Second
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		if counts.ConsecutiveFailures >= 3 {
			return true
		}
		if counts.Requests < 20 {
			return false
		}
		return float64(counts.TotalFailures)/float64(counts.Requests) > 0.05
	}
	return &Zora{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.FetchTimeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
		breaker: gobreaker.NewCircuitBreaker(st),
	}
}

// Wire shapes for the coins API responses.
type coinResponse struct {
	Zora20Token *struct {
		Name             string `json:"name"`
		Symbol           string `json:"symbol"`
		MarketCap        string `json:"marketCap"`
		Volume24h        string `json:"volume24h"`
		MarketCapDelta24 string `json:"marketCapDelta24h"`
	} `json:"zora20Token"`
}

type commentsResponse struct {
	Zora20Token *struct {
		ZoraComments struct {
			Edges []struct {
				Node struct {
					Comment   string    `json:"comment"`
					Timestamp time.Time `json:"timestamp"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"zoraComments"`
	} `json:"zora20Token"`
}

type exploreResponse struct {
	ExploreList struct {
		Edges []struct {
			Node struct {
				Address          string `json:"address"`
				Name             string `json:"name"`
				Symbol           string `json:"symbol"`
				MarketCap        string `json:"marketCap"`
				Volume24h        string `json:"volume24h"`
				MarketCapDelta24 string `json:"marketCapDelta24h"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"exploreList"`
}

// Fetch implements Provider.
func (z *Zora) Fetch(ctx context.Context, address string) (coin.Snapshot, []coin.Comment, error) {
	ctx, cancel := context.WithTimeout(ctx, z.cfg.FetchTimeout)
	defer cancel()

	var cr coinResponse
	params := url.Values{
		"address": {address},
		"chain":   {strconv.Itoa(z.cfg.ChainID)},
	}
	if err := z.getJSON(ctx, "/coin", params, &cr); err != nil {
		return coin.Snapshot{}, nil, err
	}
	if cr.Zora20Token == nil || cr.Zora20Token.MarketCap == "" {
		return coin.Snapshot{}, nil, fmt.Errorf("no market data for %s: %w", address, coin.ErrCoinNotFound)
	}

	snap := coin.Snapshot{
		Address:          coin.NormalizeAddress(address),
		Name:             cr.Zora20Token.Name,
		Symbol:           cr.Zora20Token.Symbol,
		MarketCap:        cr.Zora20Token.MarketCap,
		Volume24h:        cr.Zora20Token.Volume24h,
		MarketCapDelta24: cr.Zora20Token.MarketCapDelta24,
		FetchedAt:        time.Now().UTC(),
	}

	var mr commentsResponse
	params.Set("count", strconv.Itoa(z.cfg.CommentCount))
	if err := z.getJSON(ctx, "/coinComments", params, &mr); err != nil {
		// Comments are an enrichment; a coin with market data but an
		// unavailable comment feed still predicts at baseline engagement.
		log.Warn().Err(err).Str("address", address).Msg("Comment fetch failed, proceeding without comments")
		return snap, nil, nil
	}
	var comments []coin.Comment
	if mr.Zora20Token != nil {
		for _, e := range mr.Zora20Token.ZoraComments.Edges {
			comments = append(comments, coin.Comment{Text: e.Node.Comment, PostedAt: e.Node.Timestamp})
		}
	}
	return snap, comments, nil
}

// TopGainers implements Provider.
func (z *Zora) TopGainers(ctx context.Context, count int) ([]coin.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, z.cfg.FetchTimeout)
	defer cancel()

	var er exploreResponse
	params := url.Values{"count": {strconv.Itoa(count)}, "listType": {"TOP_GAINERS"}}
	if err := z.getJSON(ctx, "/explore", params, &er); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	snaps := make([]coin.Snapshot, 0, len(er.ExploreList.Edges))
	for _, e := range er.ExploreList.Edges {
		snaps = append(snaps, coin.Snapshot{
			Address:          coin.NormalizeAddress(e.Node.Address),
			Name:             e.Node.Name,
			Symbol:           e.Node.Symbol,
			MarketCap:        e.Node.MarketCap,
			Volume24h:        e.Node.Volume24h,
			MarketCapDelta24: e.Node.MarketCapDelta24,
			FetchedAt:        now,
		})
	}
	return snaps, nil
}

func (z *Zora) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	if err := z.limiter.Wait(ctx); err != nil {
		return mapFetchErr(err)
	}
	_, err := z.breaker.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, z.cfg.BaseURL+path+"?"+params.Encode(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		if z.cfg.APIKey != "" {
			req.Header.Set("api-key", z.cfg.APIKey)
		}
		resp, err := z.client.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		switch {
		case resp.StatusCode == http.StatusNotFound:
			return nil, coin.ErrCoinNotFound
		case resp.StatusCode != http.StatusOK:
			return nil, fmt.Errorf("status %d: %w", resp.StatusCode, coin.ErrUpstream)
		}
		return nil, json.NewDecoder(resp.Body).Decode(out)
	})
	return mapFetchErr(err)
}

// mapFetchErr folds transport errors into the pipeline taxonomy.
func mapFetchErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, coin.ErrCoinNotFound), errors.Is(err, coin.ErrUpstream):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("zora fetch: %w", coin.ErrUpstreamTimeout)
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return fmt.Errorf("zora circuit open: %w", coin.ErrUpstream)
	default:
		return fmt.Errorf("zora fetch: %v: %w", err, coin.ErrUpstream)
	}
}
