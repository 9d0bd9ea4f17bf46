package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

type loader struct {
	files    []string
	explicit bool
	environ  map[string]string
	prefix   string
}

// Option configures Load.
type Option func(*loader)

// WithEnvFiles reads the given dotenv files. Missing files are an error.
func WithEnvFiles(paths ...string) Option {
	return func(l *loader) {
		l.files = append(l.files, paths...)
		l.explicit = true
	}
}

// WithEnvironment replaces the process environment as the value source.
func WithEnvironment(vars map[string]string) Option {
	return func(l *loader) {
		l.environ = vars
	}
}

// WithPrefix requires every variable name to start with prefix.
func WithPrefix(prefix string) Option {
	return func(l *loader) {
		l.prefix = prefix
	}
}

// Load parses configuration of type T.
func Load[T any](opts ...Option) (T, error) {
	var cfg T

	l := &loader{}
	for _, opt := range opts {
		opt(l)
	}

	vars, err := l.environment()
	if err != nil {
		return cfg, err
	}

	if err := env.ParseWithOptions(&cfg, env.Options{
		Environment: vars,
		Prefix:      l.prefix,
	}); err != nil {
		return cfg, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// MustLoad works like Load but panics on failure.
func MustLoad[T any](opts ...Option) T {
	cfg, err := Load[T](opts...)
	if err != nil {
		panic(err)
	}
	return cfg
}

func (l *loader) environment() (map[string]string, error) {
	vars := l.environ
	if vars == nil {
		vars = processEnv()
	}

	files := l.files
	if !l.explicit {
		if _, err := os.Stat(defaultEnvFile); errors.Is(err, fs.ErrNotExist) {
			return vars, nil
		}
		files = []string{defaultEnvFile}
	}
	if len(files) == 0 {
		return vars, nil
	}

	fromFiles, err := godotenv.Read(files...)
	if err != nil {
		return nil, errors.Join(ErrReadingEnvFile, err)
	}

	merged := make(map[string]string, len(vars)+len(fromFiles))
	for k, v := range fromFiles {
		merged[k] = v
	}
	for k, v := range vars {
		merged[k] = v
	}
	return merged, nil
}

func processEnv() map[string]string {
	out := make(map[string]string)
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok {
			out[k] = v
		}
	}
	return out
}
