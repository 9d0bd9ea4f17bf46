package main

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v83"

	"github.com/dmitrymomot/payflow/pkg/billing"
	"github.com/dmitrymomot/payflow/pkg/config"
)

func testEnv(vars map[string]string) config.Option {
	return config.WithEnvironment(vars)
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := loadConfig(nil, testEnv(map[string]string{"STRIPE_SECRET_KEY": "sk_test"}), config.WithEnvFiles())
		require.NoError(t, err)
		assert.Equal(t, "development", cfg.Env)
		assert.Equal(t, "payflow", cfg.Name)
		assert.Equal(t, "sk_test", cfg.Stripe.SecretKey)
		assert.Equal(t, ":8080", cfg.HTTP.Addr)
		assert.Zero(t, cfg.PlansCacheTTL)
		assert.Empty(t, cfg.Redis.ConnectionURL)
	})

	t.Run("trial settings", func(t *testing.T) {
		t.Parallel()
		cfg, err := loadConfig(nil, testEnv(map[string]string{
			"STRIPE_SECRET_KEY":      "sk_test",
			"TRIAL_PRODUCT_PRICE_ID": "price_trial",
			"TRIAL_PERIOD_DAYS":      "14",
			"PLANS_CACHE_TTL":        "30s",
		}), config.WithEnvFiles())
		require.NoError(t, err)
		assert.Equal(t, "price_trial", cfg.TrialPriceID)
		assert.Equal(t, "14", cfg.TrialDays)
		assert.Equal(t, 30*time.Second, cfg.PlansCacheTTL)
	})

	t.Run("log overrides", func(t *testing.T) {
		t.Parallel()
		cfg, err := loadConfig(nil, testEnv(map[string]string{
			"STRIPE_SECRET_KEY": "sk_test",
			"LOG_LEVEL":         "warn",
			"LOG_FORMAT":        "text",
		}), config.WithEnvFiles())
		require.NoError(t, err)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
	})

	t.Run("missing stripe key", func(t *testing.T) {
		t.Parallel()
		_, err := loadConfig(nil, testEnv(map[string]string{}), config.WithEnvFiles())
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})
}

func TestServePlansThroughFakeStripe(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	stripeAPI := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"object": "list", "url": "/v1/prices", "has_more": false,
			"data": [
				{"id": "price_trial", "object": "price", "active": true, "unit_amount": 1050, "currency": "usd",
				 "product": {"id": "prod_1", "object": "product", "active": true},
				 "recurring": {"interval": "month", "interval_count": 1}},
				{"id": "price_gone", "object": "price", "active": true, "unit_amount": 900, "currency": "usd",
				 "product": {"id": "prod_2", "object": "product", "active": false}}
			]
		}`))
	}))
	t.Cleanup(stripeAPI.Close)

	cfg := appConfig{
		Stripe:         billing.StripeConfig{SecretKey: "sk_test"},
		TrialPriceID:   "price_trial",
		TrialDays:      "7",
		PlansCacheTTL:  time.Minute,
		PlansCacheSize: 4,
	}
	backends := stripe.NewBackendsWithConfig(&stripe.BackendConfig{
		URL:               stripe.String(stripeAPI.URL),
		MaxNetworkRetries: stripe.Int64(0),
	})
	a, err := wireApp(context.Background(), cfg, slog.New(slog.DiscardHandler), stripe.WithBackends(backends))
	require.NoError(t, err)
	t.Cleanup(a.close)

	h := a.router()
	for range 2 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/plans", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"id":"price_trial","cost":"10.50","currency":"usd","duration":"month","has_free_trial":true,"trial_days":7}]`, rec.Body.String())
	}
	assert.Equal(t, int32(1), calls.Load(), "second listing served from cache")

	require.NoError(t, a.refreshPlans(context.Background()))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/plans", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int32(2), calls.Load(), "refresh forces a new listing")
}

func TestRefreshPlansWithoutCache(t *testing.T) {
	t.Parallel()
	a, err := wireApp(context.Background(), appConfig{Stripe: billing.StripeConfig{SecretKey: "sk_test"}}, slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(a.close)

	assert.Nil(t, a.plansCache)
	assert.NoError(t, a.refreshPlans(context.Background()))
}

func TestWireAppWarnsOnDisabledTrial(t *testing.T) {
	t.Parallel()

	t.Run("non numeric days", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := slog.New(slog.NewTextHandler(buf, nil))
		a, err := wireApp(context.Background(), appConfig{
			Stripe:       billing.StripeConfig{SecretKey: "sk_test"},
			TrialPriceID: "price_trial",
			TrialDays:    "abc",
		}, log)
		require.NoError(t, err)
		t.Cleanup(a.close)

		assert.False(t, a.service.TrialPolicy().Enabled())
		assert.Contains(t, buf.String(), "trial disabled")
		assert.Contains(t, buf.String(), "price_trial")
	})

	t.Run("days with suffix", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := slog.New(slog.NewTextHandler(buf, nil))
		a, err := wireApp(context.Background(), appConfig{
			Stripe:       billing.StripeConfig{SecretKey: "sk_test"},
			TrialPriceID: "price_trial",
			TrialDays:    "14days",
		}, log)
		require.NoError(t, err)
		t.Cleanup(a.close)

		assert.Equal(t, 14, a.service.TrialPolicy().Days)
		assert.NotContains(t, buf.String(), "trial disabled")
	})
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	t.Run("environment preset", func(t *testing.T) {
		t.Parallel()
		log, err := newLogger(appConfig{Env: "production"})
		require.NoError(t, err)
		assert.False(t, log.Enabled(context.Background(), slog.LevelDebug))
		assert.True(t, log.Enabled(context.Background(), slog.LevelInfo))
	})

	t.Run("level override", func(t *testing.T) {
		t.Parallel()
		log, err := newLogger(appConfig{Env: "production", LogLevel: "debug"})
		require.NoError(t, err)
		assert.True(t, log.Enabled(context.Background(), slog.LevelDebug))
	})

	t.Run("format override", func(t *testing.T) {
		t.Parallel()
		_, err := newLogger(appConfig{Env: "development", LogFormat: "json"})
		assert.NoError(t, err)
	})

	t.Run("invalid level", func(t *testing.T) {
		t.Parallel()
		_, err := newLogger(appConfig{LogLevel: "loud"})
		assert.Error(t, err)
	})

	t.Run("invalid format", func(t *testing.T) {
		t.Parallel()
		_, err := newLogger(appConfig{LogFormat: "xml"})
		assert.Error(t, err)
	})
}

func TestWireAppRequiresStripeKey(t *testing.T) {
	t.Parallel()
	_, err := wireApp(context.Background(), appConfig{}, slog.New(slog.DiscardHandler))
	assert.ErrorIs(t, err, billing.ErrMissingAPIKey)
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()
	root := newRootCmd()
	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "serve")
	assert.Contains(t, names, "plans")
}
