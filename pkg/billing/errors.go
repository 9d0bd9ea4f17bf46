package billing

import "errors"

var (
	ErrMissingPlanID = errors.New("plan ID is required")
	ErrInvalidPlan   = errors.New("invalid plan ID")
	ErrInactivePlan  = errors.New("plan is inactive")
	ErrPlanNotFound  = errors.New("plan not found")

	ErrCreatePayerFailed        = errors.New("failed to create payer")
	ErrCreateSubscriptionFailed = errors.New("failed to create subscription")
	ErrResolveSecretFailed      = errors.New("failed to resolve client secret")
	ErrListPlansFailed          = errors.New("failed to list plans")

	// Provider-specific errors
	ErrMissingAPIKey = errors.New("payment processor API key is required")
)

// IsValidationError reports whether err is caused by a user-correctable plan problem.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingPlanID) ||
		errors.Is(err, ErrInvalidPlan) ||
		errors.Is(err, ErrInactivePlan)
}
