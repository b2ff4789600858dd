package feeds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radieske/bet-settlement-engine/internal/settlement-service/feedcache"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	c := New(Config{
		ScoresBaseURL: srv.URL,
		ScoresAPIKey:  "scores-key",
		StatsBaseURL:  srv.URL,
		StatsAPIKey:   "stats-key",
		Timeout:       2 * time.Second,
		ScoresTTL:     time.Minute,
		StatsTTL:      time.Hour,
	}, feedcache.NewMemory(), zap.NewNop())
	return c, &calls
}

func TestFetchScoresUsesCache(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v4/sports/basketball_nba/scores/", r.URL.Path)
		assert.Equal(t, "scores-key", r.URL.Query().Get("apiKey"))
		assert.Equal(t, "3", r.URL.Query().Get("daysFrom"))
		_, _ = w.Write([]byte(`[{"id":"evt-1","completed":false}]`))
	})

	ctx := context.Background()
	b, err := c.FetchScores(ctx, "basketball_nba", 3)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"evt-1","completed":false}]`, string(b))

	_, err = c.FetchScores(ctx, "basketball_nba", 3)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestStatsEndpoints(t *testing.T) {
	var paths []string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "stats-key", r.Header.Get("Ocp-Apim-Subscription-Key"))
		paths = append(paths, r.URL.Path)
		_, _ = w.Write([]byte(`[]`))
	})

	ctx := context.Background()
	_, err := c.FetchPlayerStatsByWeek(ctx, "nfl", 2025, "REG", 3, "4314")
	require.NoError(t, err)
	_, err = c.FetchPlayerStatsByDate(ctx, "nba", "2025-11-02", "")
	require.NoError(t, err)
	_, err = c.FetchPlayerStatsByDate(ctx, "nba", "2025-11-02", "20000441")
	require.NoError(t, err)
	_, err = c.FetchGradedPropsByDate(ctx, "mlb", "2025-07-04", "10001")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/v3/nfl/stats/json/PlayerGameStatsByPlayerID/2025REG/3/4314",
		"/v3/nba/stats/json/PlayerGameStatsByDate/2025-11-02",
		"/v3/nba/stats/json/PlayerGameStatsByPlayer/2025-11-02/20000441",
		"/v3/mlb/odds/json/PlayerPropsByPlayerID/2025-07-04/10001",
	}, paths)
}

func TestNon2xxIsError(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.FetchScores(context.Background(), "basketball_nba", 3)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusTooManyRequests, se.Status)

	// erros não entram no cache
	_, _ = c.FetchScores(context.Background(), "basketball_nba", 3)
	assert.Equal(t, int32(2), atomic.LoadInt32(calls))
}

func TestMalformedJSON(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":`))
	})

	_, err := c.FetchPlayerStatsByDate(context.Background(), "nba", "2025-11-02", "1")
	assert.ErrorIs(t, err, ErrMalformed)
}
