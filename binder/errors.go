package binder

import "errors"

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrInvalidJSON          = errors.New("invalid JSON")
	ErrBodyTooLarge         = errors.New("request body too large")
)
