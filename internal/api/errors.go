package api

import (
	"errors"
	"net/http"

	"github.com/dmitrymomot/payflow/handler"
	"github.com/dmitrymomot/payflow/pkg/billing"
)

// Client-facing messages.
const (
	MsgMissingPriceID     = "Missing priceId"
	MsgInvalidPriceID     = "Invalid priceId"
	MsgInactivePrice      = "Inactive price"
	MsgInvalidBody        = "Invalid request body"
	MsgSubscriptionFailed = "Subscription creation failed"
	MsgPlansFailed        = "Failed to retrieve plans"
	MsgNoClientSecret     = "No client secret available"
)

// subscriptionError maps a CreateSubscription failure to its HTTP form.
func subscriptionError(err error) handler.HTTPError {
	var httpErr handler.HTTPError
	switch {
	case errors.As(err, &httpErr):
		return httpErr
	case errors.Is(err, billing.ErrMissingPlanID):
		return handler.NewHTTPError(http.StatusBadRequest, MsgMissingPriceID).Wrap(err)
	case errors.Is(err, billing.ErrInactivePlan):
		return handler.NewHTTPError(http.StatusBadRequest, MsgInactivePrice).Wrap(err)
	case errors.Is(err, billing.ErrInvalidPlan):
		return handler.NewHTTPError(http.StatusBadRequest, MsgInvalidPriceID).Wrap(err)
	default:
		return handler.NewHTTPError(http.StatusInternalServerError, MsgSubscriptionFailed).Wrap(err)
	}
}
