package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"

	"github.com/perfectpick/giftrank/pkg/giftrank/metrics"
)

// Resolver maps a caller's network address to an ISO country code.
// An empty string means the country could not be determined; resolution
// failures never bubble up as request failures.
type Resolver interface {
	Country(ctx context.Context, ip string) string
}

// IPAPIResolver resolves countries through the ip-api.com JSON endpoint.
// Lookups run under a short timeout and a circuit breaker; results are
// cached in redis when a client is configured.
type IPAPIResolver struct {
	endpoint string
	client   *http.Client
	rdb      *redis.Client
	cacheTTL time.Duration
	breaker  *gobreaker.CircuitBreaker[string]
	logger   *slog.Logger
}

// Options configures an IPAPIResolver.
type Options struct {
	Endpoint string        // base URL, e.g. "http://ip-api.com"
	Timeout  time.Duration // per-lookup budget, defaults to 2s
	CacheTTL time.Duration // redis entry lifetime, defaults to 24h
	Redis    *redis.Client // nil disables caching
	Logger   *slog.Logger
}

// NewIPAPIResolver creates a resolver against the configured upstream.
func NewIPAPIResolver(opts Options) *IPAPIResolver {
	if opts.Endpoint == "" {
		opts.Endpoint = "http://ip-api.com"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 2 * time.Second
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 24 * time.Hour
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	breaker := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        "geo-lookup",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})

	return &IPAPIResolver{
		endpoint: opts.Endpoint,
		client:   &http.Client{Timeout: opts.Timeout},
		rdb:      opts.Redis,
		cacheTTL: opts.CacheTTL,
		breaker:  breaker,
		logger:   opts.Logger,
	}
}

type ipAPIResponse struct {
	CountryCode string `json:"countryCode"`
}

// Country resolves ip to a country code. Any failure (empty address,
// timeout, upstream error, open breaker) collapses to "".
func (r *IPAPIResolver) Country(ctx context.Context, ip string) string {
	if ip == "" {
		return ""
	}

	cacheKey := "geo:country:" + ip
	if r.rdb != nil {
		if cached, err := r.rdb.Get(ctx, cacheKey).Result(); err == nil {
			return cached
		}
	}

	country, err := r.breaker.Execute(func() (string, error) {
		return r.lookup(ctx, ip)
	})
	if err != nil {
		metrics.GeoFailuresTotal.Inc()
		r.logger.Warn("geo lookup failed", "ip", ip, "error", err)
		return ""
	}

	if r.rdb != nil && country != "" {
		if err := r.rdb.Set(ctx, cacheKey, country, r.cacheTTL).Err(); err != nil {
			r.logger.Warn("geo cache write failed", "error", err)
		}
	}

	return country
}

func (r *IPAPIResolver) lookup(ctx context.Context, ip string) (string, error) {
	url := fmt.Sprintf("%s/json/%s?fields=countryCode", r.endpoint, ip)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geo upstream returned status %d", resp.StatusCode)
	}

	var body ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	return body.CountryCode, nil
}
