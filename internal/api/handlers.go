package api

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrymomot/payflow/binder"
	"github.com/dmitrymomot/payflow/handler"
	"github.com/dmitrymomot/payflow/pkg/billing"
)

// CreateSubscriptionRequest is the POST /subscription body.
type CreateSubscriptionRequest struct {
	PriceID string `json:"priceId" validate:"required,max=255"`
}

// SubscriptionResponse is returned when a client secret was resolved.
type SubscriptionResponse struct {
	ClientSecret   string `json:"clientSecret"`
	SubscriptionID string `json:"subscriptionId"`
}

// NoSecretResponse is returned when the subscription needs no client-side
// confirmation.
type NoSecretResponse struct {
	SubscriptionID string `json:"subscriptionId"`
	Status         string `json:"status"`
	Error          string `json:"error"`
}

type emptyRequest struct{}

func (rt *router) plansHandler() http.HandlerFunc {
	return handler.Wrap(
		handler.HandlerFunc[emptyRequest](func(ctx handler.Context, _ emptyRequest) handler.Response {
			plans, err := rt.svc.ListPlans(ctx)
			if err != nil {
				return handler.Fail(handler.NewHTTPError(http.StatusInternalServerError, MsgPlansFailed).Wrap(err))
			}
			if plans == nil {
				plans = []billing.PlanView{}
			}
			return handler.JSON(http.StatusOK, plans)
		}),
		handler.WithErrorHandler[emptyRequest](handler.NewErrorHandler(rt.logger)),
	)
}

func (rt *router) subscriptionHandler() http.HandlerFunc {
	return handler.Wrap(
		handler.HandlerFunc[CreateSubscriptionRequest](rt.createSubscription),
		handler.WithBinder[CreateSubscriptionRequest](bindBody(binder.BindJSON())),
		handler.WithErrorHandler[CreateSubscriptionRequest](handler.NewErrorHandler(rt.logger)),
	)
}

func (rt *router) createSubscription(ctx handler.Context, req CreateSubscriptionRequest) handler.Response {
	if err := rt.validate.Struct(req); err != nil {
		return handler.Fail(requestError(err))
	}

	res, err := rt.svc.CreateSubscription(ctx, req.PriceID)
	if err != nil {
		return handler.Fail(subscriptionError(err))
	}

	if res.Authorization == nil || res.Authorization.Secret == "" {
		return handler.JSON(http.StatusOK, NoSecretResponse{
			SubscriptionID: res.SubscriptionID,
			Status:         string(res.Status),
			Error:          MsgNoClientSecret,
		})
	}
	return handler.JSON(http.StatusOK, SubscriptionResponse{
		ClientSecret:   res.Authorization.Secret,
		SubscriptionID: res.SubscriptionID,
	})
}

// bindBody turns any decode failure into a 400.
func bindBody(bind handler.Bind) handler.Bind {
	return func(r *http.Request, v any) error {
		if err := bind(r, v); err != nil {
			return handler.NewHTTPError(http.StatusBadRequest, MsgInvalidBody).Wrap(err)
		}
		return nil
	}
}

// requestError maps struct validation failures on the request body.
func requestError(err error) handler.HTTPError {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Field() == "PriceID" && fe.Tag() == "required" {
				return handler.NewHTTPError(http.StatusBadRequest, MsgMissingPriceID).Wrap(err)
			}
		}
	}
	return handler.NewHTTPError(http.StatusBadRequest, MsgInvalidPriceID).Wrap(err)
}
