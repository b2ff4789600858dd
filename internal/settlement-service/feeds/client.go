// Package feeds implementa os clientes HTTP dos dois provedores externos
// (placar e estatísticas de jogador). Cada método devolve o JSON bruto do
// provedor; o parsing fica nos resolvers.
package feeds

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/radieske/bet-settlement-engine/internal/settlement-service/feedcache"
)

var ErrMalformed = errors.New("malformed provider payload")

// StatusError representa uma resposta não-2xx do provedor
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("provider http %d", e.Status)
}

// Config agrupa endpoints, credenciais, TTLs e limites de taxa dos feeds
type Config struct {
	ScoresBaseURL string
	ScoresAPIKey  string
	StatsBaseURL  string
	StatsAPIKey   string

	Timeout   time.Duration
	ScoresTTL time.Duration // ~60s
	StatsTTL  time.Duration // ~1h

	RatePerSec float64
	Burst      int
}

// Client é o cliente compartilhado dos dois feeds
// Cache e Limiter são injetados para que testes rodem sem rede nem estado global
type Client struct {
	cfg     Config
	HTTP    *http.Client
	Cache   feedcache.Cache
	Limiter *rate.Limiter
	log     *zap.Logger
}

// New cria o cliente; cache nil desliga o cache, RatePerSec <= 0 desliga o limite
func New(cfg Config, cache feedcache.Cache, log *zap.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	lim := rate.NewLimiter(rate.Inf, 1)
	if cfg.RatePerSec > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		lim = rate.NewLimiter(rate.Limit(cfg.RatePerSec), burst)
	}
	return &Client{
		cfg:     cfg,
		HTTP:    &http.Client{Timeout: cfg.Timeout},
		Cache:   cache,
		Limiter: lim,
		log:     log,
	}
}

// get busca no cache e, em caso de miss, chama o provedor e grava a resposta válida
func (c *Client) get(ctx context.Context, cacheKey, url string, ttl time.Duration, header http.Header) ([]byte, error) {
	if c.Cache != nil {
		b, ok, err := c.Cache.Get(ctx, cacheKey)
		if err != nil {
			c.log.Warn("feed cache get failed", zap.String("key", cacheKey), zap.Error(err))
		} else if ok {
			return b, nil
		}
	}

	if err := c.Limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{URL: cacheKey, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	if !json.Valid(body) {
		return nil, ErrMalformed
	}

	c.log.Debug("feed fetched",
		zap.String("key", cacheKey),
		zap.Int("bytes", len(body)),
		zap.Duration("latency", time.Since(start)),
	)

	if c.Cache != nil && ttl > 0 {
		if err := c.Cache.Set(ctx, cacheKey, body, ttl); err != nil {
			c.log.Warn("feed cache set failed", zap.String("key", cacheKey), zap.Error(err))
		}
	}
	return body, nil
}
