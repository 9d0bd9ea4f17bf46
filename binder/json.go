package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
)

// DefaultMaxBodySize caps JSON request bodies at 1 MiB.
const DefaultMaxBodySize int64 = 1 << 20

type jsonConfig struct {
	maxBodySize    int64
	disallowFields bool
}

// JSONOption configures BindJSON.
type JSONOption func(*jsonConfig)

// WithMaxBodySize limits the number of bytes read from the body.
func WithMaxBodySize(n int64) JSONOption {
	return func(c *jsonConfig) {
		if n > 0 {
			c.maxBodySize = n
		}
	}
}

// WithStrictFields rejects objects carrying fields unknown to the target.
func WithStrictFields() JSONOption {
	return func(c *jsonConfig) { c.disallowFields = true }
}

// BindJSON creates a JSON binder function.
//
// An empty body leaves v untouched so required-field checks report the
// missing value instead of a decode failure. A non-empty body must be sent
// as application/json and hold exactly one JSON value.
//
//	http.HandleFunc("/subscription", handler.Wrap(create,
//		handler.WithBinder[CreateSubscriptionRequest](binder.BindJSON()),
//	))
func BindJSON(opts ...JSONOption) func(r *http.Request, v any) error {
	cfg := jsonConfig{maxBodySize: DefaultMaxBodySize}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(r *http.Request, v any) error {
		if r.Body == nil || r.Body == http.NoBody || r.ContentLength == 0 {
			return nil
		}

		if ct := r.Header.Get("Content-Type"); ct != "" {
			mediaType, _, err := mime.ParseMediaType(ct)
			if err != nil || mediaType != "application/json" {
				return fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, ct)
			}
		}

		decoder := json.NewDecoder(io.LimitReader(r.Body, cfg.maxBodySize+1))
		if cfg.disallowFields {
			decoder.DisallowUnknownFields()
		}

		if err := decoder.Decode(v); err != nil {
			switch {
			case errors.Is(err, io.EOF):
				return nil
			case decoder.InputOffset() > cfg.maxBodySize:
				return ErrBodyTooLarge
			default:
				return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
			}
		}

		var extra json.RawMessage
		if err := decoder.Decode(&extra); !errors.Is(err, io.EOF) {
			if decoder.InputOffset() > cfg.maxBodySize {
				return ErrBodyTooLarge
			}
			return fmt.Errorf("%w: unexpected data after JSON value", ErrInvalidJSON)
		}
		return nil
	}
}
