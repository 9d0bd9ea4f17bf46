package billing

import "context"

// Catalog provides read-only access to purchasable prices.
type Catalog interface {
	// ListActivePrices returns active prices with their parent product's active flag populated.
	ListActivePrices(ctx context.Context) ([]PlanOffering, error)

	// GetPrice returns a single price. Returns ErrPlanNotFound if the ID is unknown.
	GetPrice(ctx context.Context, id string) (*PlanOffering, error)
}

// Processor defines the payment processor operations used by the subscription flow.
// Implementations must not retry; a failed call fails the whole attempt.
type Processor interface {
	// CreatePayer creates a new anonymous payer. No deduplication is performed.
	CreatePayer(ctx context.Context) (*Payer, error)

	// CreateSubscription creates a subscription in "default_incomplete" payment mode.
	// The returned attempt must carry the latest invoice and pending setup intent
	// expanded in the same call.
	CreateSubscription(ctx context.Context, params CreateSubscriptionParams) (*SubscriptionAttempt, error)

	GetPaymentIntent(ctx context.Context, id string) (*PaymentAuthorization, error)
	CreatePaymentIntent(ctx context.Context, params CreatePaymentIntentParams) (*PaymentAuthorization, error)
	GetInvoice(ctx context.Context, id string) (*Invoice, error)
}

// CreateSubscriptionParams contains data needed to create a subscription.
type CreateSubscriptionParams struct {
	PayerID   string
	PlanID    string
	TrialDays int // omitted when 0
}

// CreatePaymentIntentParams contains data needed to create a payment intent.
// Automatic payment method selection is always enabled.
type CreatePaymentIntentParams struct {
	Amount      int64
	Currency    string
	PayerID     string
	Description string
	Metadata    map[string]string
}
