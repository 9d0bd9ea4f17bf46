package billing

import (
	"context"
	"fmt"
)

// Resolver branch names, in evaluation order.
const (
	BranchPendingSetup          = "pending_setup_intent"
	BranchExistingPaymentIntent = "existing_payment_intent"
	BranchNewPaymentIntent      = "new_payment_intent"
)

// secretBranch is one guarded step of the client secret chain.
// match must be free of side effects; resolve may call the processor.
type secretBranch struct {
	name    string
	match   func(sub *SubscriptionAttempt) bool
	resolve func(ctx context.Context, sub *SubscriptionAttempt) (*PaymentAuthorization, error)
}

// secretResolver evaluates branches in order; the first matching branch is the only
// one executed, whatever its result.
type secretResolver struct {
	branches []secretBranch
}

func newSecretResolver(p Processor) *secretResolver {
	return &secretResolver{
		branches: []secretBranch{
			{
				name:    BranchPendingSetup,
				match:   hasPendingSetupSecret,
				resolve: fromPendingSetup,
			},
			{
				name:  BranchExistingPaymentIntent,
				match: hasInvoicePaymentIntent,
				resolve: func(ctx context.Context, sub *SubscriptionAttempt) (*PaymentAuthorization, error) {
					return fromInvoicePaymentIntent(ctx, p, sub)
				},
			},
			{
				name:  BranchNewPaymentIntent,
				match: needsNewPaymentIntent,
				resolve: func(ctx context.Context, sub *SubscriptionAttempt) (*PaymentAuthorization, error) {
					return createPaymentIntent(ctx, p, sub)
				},
			},
		},
	}
}

// Resolve returns the authorization and the name of the branch that produced it.
// A nil authorization with a nil error means no branch could provide a secret.
func (r *secretResolver) Resolve(ctx context.Context, sub *SubscriptionAttempt) (*PaymentAuthorization, string, error) {
	for _, b := range r.branches {
		if !b.match(sub) {
			continue
		}
		auth, err := b.resolve(ctx, sub)
		if err != nil {
			return nil, b.name, fmt.Errorf("%s: %w", b.name, err)
		}
		if auth == nil || auth.Secret == "" {
			return nil, b.name, nil
		}
		return auth, b.name, nil
	}
	return nil, "", nil
}

func hasPendingSetupSecret(sub *SubscriptionAttempt) bool {
	return sub.PendingSetup != nil && sub.PendingSetup.ClientSecret != ""
}

func fromPendingSetup(_ context.Context, sub *SubscriptionAttempt) (*PaymentAuthorization, error) {
	return &PaymentAuthorization{
		ID:     sub.PendingSetup.ID,
		Secret: sub.PendingSetup.ClientSecret,
		Source: SourceSetupIntent,
	}, nil
}

func hasInvoicePaymentIntent(sub *SubscriptionAttempt) bool {
	inv := sub.LatestInvoice
	if inv == nil || inv.PaymentIntent == nil {
		return false
	}
	return inv.PaymentIntent.ID != "" || inv.PaymentIntent.ClientSecret != ""
}

func fromInvoicePaymentIntent(ctx context.Context, p Processor, sub *SubscriptionAttempt) (*PaymentAuthorization, error) {
	ref := sub.LatestInvoice.PaymentIntent
	if ref.ClientSecret != "" {
		return &PaymentAuthorization{ID: ref.ID, Secret: ref.ClientSecret, Source: SourcePaymentIntent}, nil
	}
	return p.GetPaymentIntent(ctx, ref.ID)
}

func needsNewPaymentIntent(sub *SubscriptionAttempt) bool {
	return sub.Status == StatusIncomplete && sub.LatestInvoice != nil && sub.LatestInvoice.ID != ""
}

// createPaymentIntent re-fetches the invoice because the expanded copy on the
// subscription may be partial.
func createPaymentIntent(ctx context.Context, p Processor, sub *SubscriptionAttempt) (*PaymentAuthorization, error) {
	inv, err := p.GetInvoice(ctx, sub.LatestInvoice.ID)
	if err != nil {
		return nil, err
	}

	var amount int64
	currency := DefaultCurrency
	if inv != nil {
		amount = inv.AmountDue
		if inv.Currency != "" {
			currency = inv.Currency
		}
	}

	return p.CreatePaymentIntent(ctx, CreatePaymentIntentParams{
		Amount:      amount,
		Currency:    currency,
		PayerID:     sub.PayerID,
		Description: "Payment for " + sub.ID,
		Metadata:    map[string]string{"subscription_id": sub.ID},
	})
}
