package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stripe/stripe-go/v83"

	"github.com/dmitrymomot/payflow/internal/api"
	"github.com/dmitrymomot/payflow/pkg/billing"
	"github.com/dmitrymomot/payflow/pkg/cache"
	"github.com/dmitrymomot/payflow/pkg/config"
	"github.com/dmitrymomot/payflow/pkg/httpserver"
	"github.com/dmitrymomot/payflow/pkg/logger"
	"github.com/dmitrymomot/payflow/pkg/requestid"
)

type appConfig struct {
	Env       string `env:"APP_ENV" envDefault:"development"`
	Name      string `env:"APP_NAME" envDefault:"payflow"`
	LogLevel  string `env:"LOG_LEVEL"`
	LogFormat string `env:"LOG_FORMAT"`

	Stripe       billing.StripeConfig
	TrialPriceID string `env:"TRIAL_PRODUCT_PRICE_ID"`
	TrialDays    string `env:"TRIAL_PERIOD_DAYS"`

	HTTP  httpserver.Config
	Redis cache.RedisConfig

	PlansCacheTTL  time.Duration `env:"PLANS_CACHE_TTL" envDefault:"0s"`
	PlansCacheSize int           `env:"PLANS_CACHE_SIZE" envDefault:"64"`
}

type app struct {
	cfg        appConfig
	logger     *slog.Logger
	service    *billing.Service
	plansCache *billing.CachedCatalog
	redis      *redis.Client
}

func loadConfig(envFiles []string, opts ...config.Option) (appConfig, error) {
	if len(envFiles) > 0 {
		opts = append(opts, config.WithEnvFiles(envFiles...))
	}
	cfg, err := config.Load[appConfig](opts...)
	if err != nil {
		return appConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newLogger applies the APP_ENV preset, then LOG_LEVEL and LOG_FORMAT overrides.
func newLogger(cfg appConfig) (*slog.Logger, error) {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithOutput(os.Stderr),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	}

	if cfg.LogLevel != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
		}
		opts = append(opts, logger.WithLevel(level))
	}

	switch format := logger.Format(cfg.LogFormat); format {
	case "":
	case logger.FormatJSON, logger.FormatText:
		opts = append(opts, logger.WithFormat(format))
	default:
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: must be %q or %q", cfg.LogFormat, logger.FormatJSON, logger.FormatText)
	}

	return logger.New(opts...), nil
}

func wireApp(ctx context.Context, cfg appConfig, log *slog.Logger, stripeOpts ...stripe.ClientOption) (*app, error) {
	provider, err := billing.NewStripeProvider(cfg.Stripe, stripeOpts...)
	if err != nil {
		return nil, fmt.Errorf("wire stripe provider: %w", err)
	}

	a := &app{cfg: cfg, logger: log}

	var catalog billing.Catalog = provider
	if cfg.PlansCacheTTL > 0 {
		store, err := a.cacheStore(ctx)
		if err != nil {
			return nil, err
		}
		a.plansCache = billing.NewCachedCatalog(provider, store, cfg.PlansCacheTTL, billing.WithCacheLogger(log))
		catalog = a.plansCache
	}

	trial := billing.NewTrialPolicy(cfg.TrialPriceID, cfg.TrialDays)
	a.service = billing.NewService(catalog, provider, trial, billing.WithLogger(log))

	if policy := a.service.TrialPolicy(); cfg.TrialPriceID != "" && !policy.Enabled() {
		log.WarnContext(ctx, "trial disabled: TRIAL_PERIOD_DAYS has no positive leading integer",
			logger.PriceID(cfg.TrialPriceID),
			slog.String("trial_period_days", cfg.TrialDays),
		)
	}
	return a, nil
}

// refreshPlans drops the cached plan listing. It is a no-op without a cache.
func (a *app) refreshPlans(ctx context.Context) error {
	if a.plansCache == nil {
		return nil
	}
	if err := a.plansCache.Invalidate(ctx); err != nil {
		return fmt.Errorf("invalidate plans cache: %w", err)
	}
	return nil
}

// cacheStore connects Redis when configured and falls back to process memory.
func (a *app) cacheStore(ctx context.Context) (cache.Store, error) {
	if a.cfg.Redis.ConnectionURL == "" {
		size := a.cfg.PlansCacheSize
		if size <= 0 {
			size = 1
		}
		return cache.NewMemoryStore(size), nil
	}

	client, err := cache.Connect(ctx, a.cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("wire redis: %w", err)
	}
	a.redis = client
	return cache.NewRedisStore(client, a.cfg.Redis.KeyPrefix), nil
}

func (a *app) router() http.Handler {
	opts := []api.Option{api.WithLogger(a.logger)}
	if a.redis != nil {
		opts = append(opts, api.WithReadinessCheck("redis", cache.Healthcheck(a.redis)))
	}
	return api.NewRouter(a.service, opts...)
}

func (a *app) close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
}
