package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/payflow/pkg/config"
)

type testConfig struct {
	Key     string        `env:"KEY,required"`
	Days    int           `env:"DAYS" envDefault:"7"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"5s"`
}

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("parses values and defaults", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.Load[testConfig](
			config.WithEnvironment(map[string]string{"KEY": "sk_test", "TIMEOUT": "1m"}),
			config.WithEnvFiles(),
		)
		require.NoError(t, err)
		assert.Equal(t, "sk_test", cfg.Key)
		assert.Equal(t, 7, cfg.Days)
		assert.Equal(t, time.Minute, cfg.Timeout)
	})

	t.Run("missing required variable", func(t *testing.T) {
		t.Parallel()
		_, err := config.Load[testConfig](
			config.WithEnvironment(map[string]string{}),
			config.WithEnvFiles(),
		)
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})

	t.Run("env file fills gaps", func(t *testing.T) {
		t.Parallel()
		path := writeEnvFile(t, "KEY=from_file\nDAYS=14\n")
		cfg, err := config.Load[testConfig](
			config.WithEnvironment(map[string]string{"DAYS": "30"}),
			config.WithEnvFiles(path),
		)
		require.NoError(t, err)
		assert.Equal(t, "from_file", cfg.Key)
		assert.Equal(t, 30, cfg.Days, "environment overrides file")
	})

	t.Run("missing env file", func(t *testing.T) {
		t.Parallel()
		_, err := config.Load[testConfig](
			config.WithEnvironment(map[string]string{"KEY": "x"}),
			config.WithEnvFiles(filepath.Join(t.TempDir(), "absent.env")),
		)
		assert.ErrorIs(t, err, config.ErrReadingEnvFile)
	})

	t.Run("prefix", func(t *testing.T) {
		t.Parallel()
		cfg, err := config.Load[testConfig](
			config.WithEnvironment(map[string]string{"APP_KEY": "prefixed"}),
			config.WithEnvFiles(),
			config.WithPrefix("APP_"),
		)
		require.NoError(t, err)
		assert.Equal(t, "prefixed", cfg.Key)
	})
}

func TestMustLoad(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		config.MustLoad[testConfig](config.WithEnvironment(map[string]string{}), config.WithEnvFiles())
	})
}
