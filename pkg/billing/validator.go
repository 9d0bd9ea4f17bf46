package billing

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/payflow/pkg/logger"
)

// ValidatePlan confirms that planID resolves to an active price.
// Unknown IDs and failed lookups both yield ErrInvalidPlan.
func (s *Service) ValidatePlan(ctx context.Context, planID string) (*PlanOffering, error) {
	if planID == "" {
		return nil, ErrMissingPlanID
	}

	plan, err := s.catalog.GetPrice(ctx, planID)
	if err != nil {
		s.logger.WarnContext(ctx, "plan lookup failed",
			logger.PriceID(planID),
			logger.Error(err),
		)
		return nil, errors.Join(ErrInvalidPlan, err)
	}
	if plan == nil {
		return nil, errors.Join(ErrInvalidPlan, ErrPlanNotFound)
	}

	if !plan.Active {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "inactive plan requested", logger.PriceID(planID))
		return nil, ErrInactivePlan
	}

	return plan, nil
}
