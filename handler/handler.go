package handler

import (
	"net/http"
)

// HandlerFunc handles a request whose body was bound into R.
type HandlerFunc[R any] func(ctx Context, req R) Response

// Bind parses an HTTP request into v.
type Bind func(r *http.Request, v any) error

// ErrorHandler handles errors from binding or rendering.
type ErrorHandler func(ctx Context, err error)

// Decorator wraps a HandlerFunc. The first decorator passed to
// WithDecorators is the outermost.
type Decorator[R any] func(HandlerFunc[R]) HandlerFunc[R]

// WrapOption configures Wrap.
type WrapOption[R any] func(*wrapConfig[R])

type wrapConfig[R any] struct {
	binders      []Bind
	errorHandler ErrorHandler
	decorators   []Decorator[R]
}

// WithBinder appends request binders, applied in order.
func WithBinder[R any](binders ...Bind) WrapOption[R] {
	return func(c *wrapConfig[R]) {
		for _, b := range binders {
			if b != nil {
				c.binders = append(c.binders, b)
			}
		}
	}
}

// WithErrorHandler replaces the default error handler.
func WithErrorHandler[R any](h ErrorHandler) WrapOption[R] {
	return func(c *wrapConfig[R]) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

// WithDecorators adds decorators around the handler.
func WithDecorators[R any](decorators ...Decorator[R]) WrapOption[R] {
	return func(c *wrapConfig[R]) {
		c.decorators = append(c.decorators, decorators...)
	}
}

// Wrap converts a typed HandlerFunc to http.HandlerFunc.
func Wrap[R any](h HandlerFunc[R], opts ...WrapOption[R]) http.HandlerFunc {
	cfg := &wrapConfig[R]{errorHandler: NewErrorHandler(nil)}
	for _, opt := range opts {
		opt(cfg)
	}

	final := h
	for i := len(cfg.decorators) - 1; i >= 0; i-- {
		final = cfg.decorators[i](final)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		ctx := NewContext(w, r)

		var req R
		for _, bind := range cfg.binders {
			if err := bind(r, &req); err != nil {
				cfg.errorHandler(ctx, err)
				return
			}
		}

		resp := final(ctx, req)
		if resp == nil {
			cfg.errorHandler(ctx, ErrNilResponse)
			return
		}
		if err := resp.Render(w, r); err != nil {
			cfg.errorHandler(ctx, err)
		}
	}
}
