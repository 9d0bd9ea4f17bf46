package billing

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dmitrymomot/payflow/pkg/logger"
)

// DurationOneTime is reported for prices without a recurring interval.
const DurationOneTime = "one-time"

// PlanView is the client-facing representation of a plan.
type PlanView struct {
	ID           string `json:"id"`
	Cost         string `json:"cost"`
	Currency     string `json:"currency"`
	Duration     string `json:"duration"`
	HasFreeTrial bool   `json:"has_free_trial"`
	TrialDays    *int   `json:"trial_days"`
}

var costPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatCost renders minor currency units as a two-decimal string with en-US grouping,
// e.g. 1050 -> "10.50", 123456 -> "1,234.56".
func FormatCost(unitAmount int64) string {
	return costPrinter.Sprintf("%.2f", float64(unitAmount)/100)
}

// FormatDuration describes a recurrence: "month", "every 3 months" or "one-time".
func FormatDuration(r *Recurrence) string {
	if r == nil {
		return DurationOneTime
	}
	if r.IntervalCount == 1 {
		return r.Interval
	}
	return fmt.Sprintf("every %d %ss", r.IntervalCount, r.Interval)
}

// ListPlans returns active prices of active products in catalog order.
func (s *Service) ListPlans(ctx context.Context) ([]PlanView, error) {
	prices, err := s.catalog.ListActivePrices(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list prices", logger.Component("billing"), logger.Error(err))
		return nil, errors.Join(ErrListPlansFailed, err)
	}

	views := make([]PlanView, 0, len(prices))
	for _, p := range prices {
		if !p.Active || !p.ProductActive {
			continue
		}
		views = append(views, s.planView(p))
	}
	return views, nil
}

func (s *Service) planView(p PlanOffering) PlanView {
	currency := p.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	view := PlanView{
		ID:       p.ID,
		Cost:     FormatCost(p.UnitAmount),
		Currency: currency,
		Duration: FormatDuration(p.Recurring),
	}
	if ok, days := s.trial.Evaluate(p.ID); ok {
		view.HasFreeTrial = true
		view.TrialDays = &days
	}
	return view
}
