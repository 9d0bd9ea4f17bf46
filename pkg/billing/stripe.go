package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v83"
)

// paymentBehaviorDefaultIncomplete leaves the first invoice open so the client can
// confirm payment with the returned client secret.
const paymentBehaviorDefaultIncomplete = "default_incomplete"

// StripeConfig holds configuration for the Stripe processor.
type StripeConfig struct {
	SecretKey string `env:"STRIPE_SECRET_KEY,required"`
}

// StripeProvider implements Catalog and Processor for Stripe.
type StripeProvider struct {
	client *stripe.Client
}

// NewStripeProvider creates a new Stripe processor.
// Each provider owns its client; the SDK's global key is never touched.
func NewStripeProvider(config StripeConfig, opts ...stripe.ClientOption) (*StripeProvider, error) {
	if strings.TrimSpace(config.SecretKey) == "" {
		return nil, ErrMissingAPIKey
	}
	return &StripeProvider{client: stripe.NewClient(config.SecretKey, opts...)}, nil
}

// ListActivePrices lists active prices with the parent product expanded.
func (p *StripeProvider) ListActivePrices(ctx context.Context) ([]PlanOffering, error) {
	params := &stripe.PriceListParams{Active: stripe.Bool(true)}
	params.AddExpand("data.product")

	var plans []PlanOffering
	for price, err := range p.client.V1Prices.List(ctx, params) {
		if err != nil {
			return nil, fmt.Errorf("failed to list stripe prices: %w", wrapStripeError(err))
		}
		plans = append(plans, mapStripePrice(price))
	}
	return plans, nil
}

// GetPrice retrieves a price by ID. Returns ErrPlanNotFound for unknown IDs.
func (p *StripeProvider) GetPrice(ctx context.Context, id string) (*PlanOffering, error) {
	price, err := p.client.V1Prices.Retrieve(ctx, id, &stripe.PriceRetrieveParams{})
	if err != nil {
		if isResourceMissing(err) {
			return nil, errors.Join(ErrPlanNotFound, wrapStripeError(err))
		}
		return nil, fmt.Errorf("failed to retrieve stripe price: %w", wrapStripeError(err))
	}
	plan := mapStripePrice(price)
	return &plan, nil
}

// CreatePayer creates an empty Stripe customer.
func (p *StripeProvider) CreatePayer(ctx context.Context) (*Payer, error) {
	c, err := p.client.V1Customers.Create(ctx, &stripe.CustomerCreateParams{})
	if err != nil {
		return nil, fmt.Errorf("failed to create stripe customer: %w", wrapStripeError(err))
	}
	return &Payer{ID: c.ID}, nil
}

// CreateSubscription creates a single-item subscription and expands the objects
// needed to resolve a client secret without a second round trip.
func (p *StripeProvider) CreateSubscription(ctx context.Context, req CreateSubscriptionParams) (*SubscriptionAttempt, error) {
	params := &stripe.SubscriptionCreateParams{
		Customer: stripe.String(req.PayerID),
		Items: []*stripe.SubscriptionCreateItemParams{
			{Price: stripe.String(req.PlanID)},
		},
		PaymentBehavior: stripe.String(paymentBehaviorDefaultIncomplete),
	}
	if req.TrialDays > 0 {
		params.TrialPeriodDays = stripe.Int64(int64(req.TrialDays))
	}
	params.AddExpand("latest_invoice.payments")
	params.AddExpand("pending_setup_intent")

	sub, err := p.client.V1Subscriptions.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create stripe subscription: %w", wrapStripeError(err))
	}

	attempt := mapStripeSubscription(sub)
	attempt.PlanID = req.PlanID
	attempt.TrialDays = req.TrialDays
	if attempt.PayerID == "" {
		attempt.PayerID = req.PayerID
	}
	return attempt, nil
}

// GetPaymentIntent retrieves a payment intent by ID.
func (p *StripeProvider) GetPaymentIntent(ctx context.Context, id string) (*PaymentAuthorization, error) {
	pi, err := p.client.V1PaymentIntents.Retrieve(ctx, id, &stripe.PaymentIntentRetrieveParams{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve stripe payment intent: %w", wrapStripeError(err))
	}
	return &PaymentAuthorization{ID: pi.ID, Secret: pi.ClientSecret, Source: SourcePaymentIntent}, nil
}

// CreatePaymentIntent creates a payment intent with automatic payment methods enabled.
func (p *StripeProvider) CreatePaymentIntent(ctx context.Context, req CreatePaymentIntentParams) (*PaymentAuthorization, error) {
	params := &stripe.PaymentIntentCreateParams{
		Amount:   stripe.Int64(req.Amount),
		Currency: stripe.String(strings.ToLower(req.Currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentCreateAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	if req.PayerID != "" {
		params.Customer = stripe.String(req.PayerID)
	}
	if req.Description != "" {
		params.Description = stripe.String(req.Description)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}

	pi, err := p.client.V1PaymentIntents.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create stripe payment intent: %w", wrapStripeError(err))
	}
	return &PaymentAuthorization{ID: pi.ID, Secret: pi.ClientSecret, Source: SourcePaymentIntent}, nil
}

// GetInvoice retrieves an invoice by ID.
func (p *StripeProvider) GetInvoice(ctx context.Context, id string) (*Invoice, error) {
	inv, err := p.client.V1Invoices.Retrieve(ctx, id, &stripe.InvoiceRetrieveParams{})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve stripe invoice: %w", wrapStripeError(err))
	}
	return mapStripeInvoice(inv), nil
}

// mapStripePrice maps a Stripe price to PlanOffering.
// An unexpanded product leaves ProductActive false.
func mapStripePrice(price *stripe.Price) PlanOffering {
	plan := PlanOffering{
		ID:         price.ID,
		Active:     price.Active,
		UnitAmount: price.UnitAmount,
		Currency:   string(price.Currency),
	}
	if plan.Currency == "" {
		plan.Currency = DefaultCurrency
	}
	if price.Product != nil {
		plan.ProductActive = price.Product.Active
	}
	if price.Recurring != nil {
		plan.Recurring = &Recurrence{
			Interval:      string(price.Recurring.Interval),
			IntervalCount: price.Recurring.IntervalCount,
		}
	}
	return plan
}

func mapStripeSubscription(sub *stripe.Subscription) *SubscriptionAttempt {
	attempt := &SubscriptionAttempt{
		ID:     sub.ID,
		Status: SubscriptionStatus(sub.Status),
	}
	if sub.Customer != nil {
		attempt.PayerID = sub.Customer.ID
	}
	if si := sub.PendingSetupIntent; si != nil {
		attempt.PendingSetup = &SetupAction{ID: si.ID, ClientSecret: si.ClientSecret}
	}
	if sub.LatestInvoice != nil {
		attempt.LatestInvoice = mapStripeInvoice(sub.LatestInvoice)
	}
	return attempt
}

// mapStripeInvoice maps an invoice and picks the payment intent of its first
// invoice payment. An unexpanded payment intent yields a reference with only the ID.
func mapStripeInvoice(inv *stripe.Invoice) *Invoice {
	out := &Invoice{
		ID:        inv.ID,
		AmountDue: inv.AmountDue,
		Currency:  string(inv.Currency),
	}
	if inv.Payments == nil {
		return out
	}
	for _, payment := range inv.Payments.Data {
		if payment == nil || payment.Payment == nil || payment.Payment.PaymentIntent == nil {
			continue
		}
		pi := payment.Payment.PaymentIntent
		out.PaymentIntent = &PaymentIntentRef{ID: pi.ID, ClientSecret: pi.ClientSecret}
		break
	}
	return out
}

func isResourceMissing(err error) bool {
	var stripeErr *stripe.Error
	return errors.As(err, &stripeErr) && stripeErr.Code == stripe.ErrorCodeResourceMissing
}

// wrapStripeError annotates an SDK error with status, code and request ID.
func wrapStripeError(err error) error {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return err
	}
	return fmt.Errorf("stripe error (status %d, code %q, request %s): %s: %w",
		stripeErr.HTTPStatusCode, stripeErr.Code, stripeErr.RequestID, stripeErr.Msg, err)
}
