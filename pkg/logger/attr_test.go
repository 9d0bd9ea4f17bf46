package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/payflow/pkg/logger"
)

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestIdentifierAttrs(t *testing.T) {
	assert.True(t, logger.SubscriptionID("sub_1").Equal(slog.String("subscription_id", "sub_1")))
	assert.True(t, logger.PriceID("price_1").Equal(slog.String("price_id", "price_1")))
	assert.True(t, logger.PayerID("cus_1").Equal(slog.String("payer_id", "cus_1")))
	assert.True(t, logger.RequestID("r1").Equal(slog.String("request_id", "r1")))

	assert.True(t, logger.SubscriptionID("").Equal(slog.Attr{}))
	assert.True(t, logger.RequestID("").Equal(slog.Attr{}))
}

func TestBranch(t *testing.T) {
	assert.Equal(t, "pending_setup_intent", logger.Branch("pending_setup_intent").Value.String())
	assert.Equal(t, "none", logger.Branch("").Value.String())
}
