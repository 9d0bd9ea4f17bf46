package billing_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/payflow/pkg/billing"
)

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) ListActivePrices(ctx context.Context) ([]billing.PlanOffering, error) {
	args := m.Called(ctx)
	plans, _ := args.Get(0).([]billing.PlanOffering)
	return plans, args.Error(1)
}

func (m *mockCatalog) GetPrice(ctx context.Context, id string) (*billing.PlanOffering, error) {
	args := m.Called(ctx, id)
	plan, _ := args.Get(0).(*billing.PlanOffering)
	return plan, args.Error(1)
}

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) CreatePayer(ctx context.Context) (*billing.Payer, error) {
	args := m.Called(ctx)
	payer, _ := args.Get(0).(*billing.Payer)
	return payer, args.Error(1)
}

func (m *mockProcessor) CreateSubscription(ctx context.Context, params billing.CreateSubscriptionParams) (*billing.SubscriptionAttempt, error) {
	args := m.Called(ctx, params)
	sub, _ := args.Get(0).(*billing.SubscriptionAttempt)
	return sub, args.Error(1)
}

func (m *mockProcessor) GetPaymentIntent(ctx context.Context, id string) (*billing.PaymentAuthorization, error) {
	args := m.Called(ctx, id)
	auth, _ := args.Get(0).(*billing.PaymentAuthorization)
	return auth, args.Error(1)
}

func (m *mockProcessor) CreatePaymentIntent(ctx context.Context, params billing.CreatePaymentIntentParams) (*billing.PaymentAuthorization, error) {
	args := m.Called(ctx, params)
	auth, _ := args.Get(0).(*billing.PaymentAuthorization)
	return auth, args.Error(1)
}

func (m *mockProcessor) GetInvoice(ctx context.Context, id string) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	inv, _ := args.Get(0).(*billing.Invoice)
	return inv, args.Error(1)
}

// activePlan returns a catalog entry that passes validation.
func activePlan(id string) *billing.PlanOffering {
	return &billing.PlanOffering{
		ID:            id,
		Active:        true,
		ProductActive: true,
		UnitAmount:    1000,
		Currency:      "usd",
		Recurring:     &billing.Recurrence{Interval: "month", IntervalCount: 1},
	}
}
