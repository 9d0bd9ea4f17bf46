package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// RequestID records the request identifier under the key "request_id".
func RequestID(id string) slog.Attr {
	return optionalString("request_id", id)
}

// SubscriptionID records the processor subscription identifier.
func SubscriptionID(id string) slog.Attr {
	return optionalString("subscription_id", id)
}

// PriceID records the requested plan (price) identifier.
func PriceID(id string) slog.Attr {
	return optionalString("price_id", id)
}

// PayerID records the processor payer (customer) identifier.
func PayerID(id string) slog.Attr {
	return optionalString("payer_id", id)
}

// Branch records the client secret resolver branch that matched.
// An empty branch is logged as "none".
func Branch(name string) slog.Attr {
	if name == "" {
		name = "none"
	}
	return slog.String("branch", name)
}

// State records a subscription attempt state.
func State(name string) slog.Attr {
	return slog.String("state", name)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

func optionalString(key, value string) slog.Attr {
	if value == "" {
		return slog.Attr{}
	}
	return slog.String(key, value)
}
