package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoracast/zoracast/internal/coin"
	"github.com/zoracast/zoracast/internal/config"
	"github.com/zoracast/zoracast/internal/data/cache"
	"github.com/zoracast/zoracast/internal/engagement"
	"github.com/zoracast/zoracast/internal/model"
	"github.com/zoracast/zoracast/internal/persistence"
	"github.com/zoracast/zoracast/internal/predictor"
	"github.com/zoracast/zoracast/internal/provider"
	"github.com/zoracast/zoracast/internal/sentiment"

	httpserver "github.com/zoracast/zoracast/internal/interfaces/http"
	"github.com/zoracast/zoracast/internal/interfaces/http/handlers"
)

const testAddress = "0x1111111111111111111111111111111111111111"

// memTrades records trades in memory.
type memTrades struct {
	records []persistence.TradeRecord
}

func (m *memTrades) Insert(_ context.Context, rec persistence.TradeRecord) error {
	m.records = append(m.records, rec)
	return nil
}

func newTestRouter(t *testing.T, trained bool, trades persistence.TradesRepo) http.Handler {
	t.Helper()
	prov := provider.NewMock()
	p := predictor.New(
		prov,
		cache.NewMemory(time.Minute),
		engagement.NewScorer(sentiment.NewLexicon()),
		model.DefaultConfig(),
	)
	if trained {
		samples := make([]coin.TrainingSample, 32)
		for i := range samples {
			samples[i] = coin.TrainingSample{
				Features: coin.FeatureVector{MarketCapEth: 1, Volume24hEth: 0.5, MarketCapDeltaPct: 5, EngagementScore: 1.2},
				Observed: 2.0,
			}
		}
		require.NoError(t, p.Train(context.Background(), samples))
	}

	h := handlers.NewHandlers(p, prov, nil, trades)
	srv := httpserver.NewServer(config.ServerConfig{Host: "127.0.0.1", Port: 0}, h)
	return srv.Router()
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestPredictEndpoint(t *testing.T) {
	router := newTestRouter(t, true, nil)

	rr := doRequest(t, router, http.MethodGet, "/api/predict/"+testAddress, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var result coin.PredictionResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, testAddress, result.Address)
	assert.GreaterOrEqual(t, result.PredictedValue, 0.0)
	assert.GreaterOrEqual(t, result.BestPostHour, 0)
	assert.LessOrEqual(t, result.BestPostHour, 23)
}

func TestPredictEndpointWithPlannedTime(t *testing.T) {
	router := newTestRouter(t, true, nil)

	rr := doRequest(t, router, http.MethodGet,
		"/api/predict/"+testAddress+"?planned_time=2025-07-05T18:00:00Z", "")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doRequest(t, router, http.MethodGet,
		"/api/predict/"+testAddress+"?planned_time=yesterday", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestPredictEndpointMalformedAddress(t *testing.T) {
	router := newTestRouter(t, true, nil)
	rr := doRequest(t, router, http.MethodGet, "/api/predict/not-an-address", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var er handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &er))
	assert.Equal(t, "validation", er.Code)
}

func TestPredictEndpointModelNotReady(t *testing.T) {
	router := newTestRouter(t, false, nil)
	rr := doRequest(t, router, http.MethodGet, "/api/predict/"+testAddress, "")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)

	var er handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &er))
	assert.Equal(t, "model_not_ready", er.Code)
}

func TestCoinEndpoint(t *testing.T) {
	router := newTestRouter(t, false, nil)
	rr := doRequest(t, router, http.MethodGet, "/api/coins/"+testAddress, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Coin     coin.Snapshot  `json:"coin"`
		Comments []coin.Comment `json:"comments"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "MCK1", body.Coin.Symbol)
	assert.Len(t, body.Comments, 2)
}

func TestTopGainersEndpoint(t *testing.T) {
	router := newTestRouter(t, false, nil)
	rr := doRequest(t, router, http.MethodGet, "/api/top-gainers?count=1", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Coins []coin.Snapshot `json:"coins"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Len(t, body.Coins, 1)

	rr = doRequest(t, router, http.MethodGet, "/api/top-gainers?count=0", "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestTradeEndpoint(t *testing.T) {
	trades := &memTrades{}
	router := newTestRouter(t, false, trades)

	body := `{"user":"0xabcdefabcdefabcdefabcdefabcdefabcdefabcd","address":"` + testAddress + `","amount_eth":0.5,"is_buy":true}`
	rr := doRequest(t, router, http.MethodPost, "/api/trades", body)
	require.Equal(t, http.StatusCreated, rr.Code)
	require.Len(t, trades.records, 1)
	assert.Equal(t, testAddress, trades.records[0].Address)
	assert.True(t, trades.records[0].IsBuy)
}

func TestTradeEndpointValidation(t *testing.T) {
	router := newTestRouter(t, false, &memTrades{})

	tests := []struct {
		name string
		body string
	}{
		{name: "missing_user", body: `{"address":"` + testAddress + `","amount_eth":1,"is_buy":true}`},
		{name: "bad_address", body: `{"user":"u","address":"nope","amount_eth":1,"is_buy":true}`},
		{name: "non_positive_amount", body: `{"user":"u","address":"` + testAddress + `","amount_eth":0,"is_buy":true}`},
		{name: "missing_is_buy", body: `{"user":"u","address":"` + testAddress + `","amount_eth":1}`},
		{name: "invalid_json", body: `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(t, router, http.MethodPost, "/api/trades", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestTradeEndpointWithoutPersistence(t *testing.T) {
	router := newTestRouter(t, false, nil)
	rr := doRequest(t, router, http.MethodPost, "/api/trades", `{}`)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, false, nil)
	rr := doRequest(t, router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "training", body["status"])
	assert.Equal(t, false, body["model_ready"])
}

func TestUnknownRoute(t *testing.T) {
	router := newTestRouter(t, false, nil)
	rr := doRequest(t, router, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
