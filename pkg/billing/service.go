package billing

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmitrymomot/payflow/pkg/logger"
)

// State is a step of a subscription attempt.
type State string

const (
	StatePlanValidated       State = "PLAN_VALIDATED"
	StatePayerCreated        State = "PAYER_CREATED"
	StateSubscriptionCreated State = "SUBSCRIPTION_CREATED"
	StateSecretResolved      State = "SECRET_RESOLVED"
	StateDone                State = "DONE"
)

// Service validates plans, creates subscriptions and lists purchasable plans.
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	catalog   Catalog
	processor Processor
	trial     TrialPolicy
	resolver  *secretResolver
	logger    *slog.Logger
}

// NewService creates a new Service.
// Panics if catalog or processor is nil to fail fast during initialization.
func NewService(catalog Catalog, processor Processor, trial TrialPolicy, opts ...ServiceOption) *Service {
	if catalog == nil {
		panic("billing: Catalog is required")
	}
	if processor == nil {
		panic("billing: Processor is required")
	}

	s := &Service{
		catalog:   catalog,
		processor: processor,
		trial:     trial,
		resolver:  newSecretResolver(processor),
		logger:    slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// TrialPolicy returns the policy the service was built with.
func (s *Service) TrialPolicy() TrialPolicy {
	return s.trial
}

// CreateSubscription runs the subscription flow for planID.
// Steps are never retried. Validation failures are returned as-is (see IsValidationError);
// processor failures are joined with the sentinel of the failed step.
func (s *Service) CreateSubscription(ctx context.Context, planID string) (*SubscriptionResult, error) {
	if _, err := s.ValidatePlan(ctx, planID); err != nil {
		return nil, err
	}
	s.transition(ctx, StatePlanValidated, logger.PriceID(planID))

	_, trialDays := s.trial.Evaluate(planID)

	payer, err := s.processor.CreatePayer(ctx)
	if err != nil {
		return nil, s.fail(ctx, StatePlanValidated, errors.Join(ErrCreatePayerFailed, err))
	}
	s.transition(ctx, StatePayerCreated, logger.PayerID(payer.ID))

	sub, err := s.processor.CreateSubscription(ctx, CreateSubscriptionParams{
		PayerID:   payer.ID,
		PlanID:    planID,
		TrialDays: trialDays,
	})
	if err != nil {
		return nil, s.fail(ctx, StatePayerCreated, errors.Join(ErrCreateSubscriptionFailed, err))
	}
	if sub.PayerID == "" {
		sub.PayerID = payer.ID
	}
	s.transition(ctx, StateSubscriptionCreated,
		logger.SubscriptionID(sub.ID),
		slog.String("status", string(sub.Status)),
		slog.Int("trial_days", trialDays),
	)

	// The subscription already exists processor-side; a failure here leaves it in place.
	auth, branch, err := s.resolver.Resolve(ctx, sub)
	if err != nil {
		return nil, s.fail(ctx, StateSubscriptionCreated,
			errors.Join(ErrResolveSecretFailed, err),
			logger.SubscriptionID(sub.ID),
			logger.Branch(branch),
		)
	}
	s.transition(ctx, StateSecretResolved,
		logger.SubscriptionID(sub.ID),
		logger.Branch(branch),
		slog.Bool("has_secret", auth != nil),
	)

	res := &SubscriptionResult{
		SubscriptionID: sub.ID,
		Status:         sub.Status,
		Authorization:  auth,
	}

	s.logger.InfoContext(ctx, "subscription created",
		logger.Component("billing"),
		logger.SubscriptionID(sub.ID),
		logger.PriceID(planID),
		logger.Branch(branch),
		slog.String("status", string(sub.Status)),
	)
	s.transition(ctx, StateDone, logger.SubscriptionID(sub.ID))

	return res, nil
}

func (s *Service) transition(ctx context.Context, to State, attrs ...slog.Attr) {
	attrs = append(attrs, logger.State(string(to)), logger.Component("billing"))
	s.logger.LogAttrs(ctx, slog.LevelDebug, "subscription attempt transition", attrs...)
}

func (s *Service) fail(ctx context.Context, at State, err error, attrs ...slog.Attr) error {
	attrs = append(attrs, logger.State(string(at)), logger.Component("billing"), logger.Error(err))
	s.logger.LogAttrs(ctx, slog.LevelError, "subscription attempt failed", attrs...)
	return err
}
