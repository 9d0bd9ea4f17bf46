// Package billing orchestrates subscription creation against an external payment
// processor and exposes a normalized, currency-formatted view of purchasable plans.
//
// The package is built around two small ports:
//
//   - Catalog: read-only access to processor prices (plans)
//   - Processor: payer, subscription, invoice and payment intent operations
//
// StripeProvider implements both ports on top of the official Stripe SDK. Tests and
// alternative processors provide their own implementations.
//
// # Subscription flow
//
// Service.CreateSubscription runs a strictly sequential pipeline:
//
//	PLAN_VALIDATED -> PAYER_CREATED -> SUBSCRIPTION_CREATED -> SECRET_RESOLVED -> DONE
//
// A fresh anonymous payer is created for every attempt. The subscription is created with
// payment behavior "default_incomplete" and the trial length from TrialPolicy when the
// requested plan is trial-eligible. The client secret is then resolved by the first
// matching branch of an ordered chain:
//
//  1. pending setup intent carrying a client secret (trial subscriptions)
//  2. payment intent already referenced by the latest invoice
//  3. a new payment intent for the invoice amount, when the subscription is incomplete
//
// When no branch matches the result carries no PaymentAuthorization. This is a valid
// outcome, not an error.
//
// There is no rollback: if secret resolution fails after the subscription was created,
// the subscription remains on the processor side.
//
// # Quick Start
//
//	provider, err := billing.NewStripeProvider(billing.StripeConfig{SecretKey: key})
//	if err != nil {
//		return err
//	}
//
//	svc := billing.NewService(provider, provider,
//		billing.NewTrialPolicy(os.Getenv("TRIAL_PRODUCT_PRICE_ID"), os.Getenv("TRIAL_PERIOD_DAYS")),
//		billing.WithLogger(log),
//	)
//
//	res, err := svc.CreateSubscription(ctx, "price_123")
//	switch {
//	case billing.IsValidationError(err):
//		// 400: ErrMissingPlanID, ErrInvalidPlan or ErrInactivePlan
//	case err != nil:
//		// 500: processor failure
//	case res.Authorization == nil:
//		// subscription created, nothing for the client to confirm
//	default:
//		// hand res.Authorization.Secret to the client
//	}
//
// # Trial policy
//
// One plan may be designated as trial-eligible. A trial length that does not parse to a
// positive integer disables the trial silently; it never fails a request.
//
// # Idempotency
//
// No idempotency keys are sent when creating payers or subscriptions. A client that
// resubmits a request creates a second payer and subscription on the processor side.
package billing
