package billing

// DefaultCurrency is used whenever upstream data carries no currency code.
const DefaultCurrency = "usd"

// Recurrence describes a recurring price interval, e.g. {month, 3} for quarterly billing.
type Recurrence struct {
	Interval      string // day, week, month, year
	IntervalCount int64
}

// PlanOffering is a purchasable price as reported by the catalog.
type PlanOffering struct {
	ID            string
	Active        bool
	ProductActive bool  // active flag of the parent product
	UnitAmount    int64 // minor currency units
	Currency      string
	Recurring     *Recurrence // nil for one-time prices
}

// Payer is an anonymous billing identity created for a single subscription attempt.
type Payer struct {
	ID string
}

// SubscriptionStatus is the processor-reported subscription state.
type SubscriptionStatus string

const (
	StatusIncomplete SubscriptionStatus = "incomplete"
	StatusTrialing   SubscriptionStatus = "trialing"
	StatusActive     SubscriptionStatus = "active"
)

// SetupAction is a pending request to register a payment method without charging.
type SetupAction struct {
	ID           string
	ClientSecret string
}

// PaymentIntentRef references a payment intent from an invoice.
// ClientSecret is empty when the processor returned only the identifier.
type PaymentIntentRef struct {
	ID           string
	ClientSecret string
}

// Invoice is the subset of an invoice needed to resolve a client secret.
type Invoice struct {
	ID            string
	AmountDue     int64
	Currency      string
	PaymentIntent *PaymentIntentRef
}

// SubscriptionAttempt is the subscription as returned by the processor on creation.
// It is never mutated after creation.
type SubscriptionAttempt struct {
	ID            string
	PlanID        string
	PayerID       string
	TrialDays     int // 0 when no trial was requested
	Status        SubscriptionStatus
	PendingSetup  *SetupAction
	LatestInvoice *Invoice
}

// AuthorizationSource tells which processor object issued a client secret.
type AuthorizationSource string

const (
	SourceSetupIntent   AuthorizationSource = "setup_intent"
	SourcePaymentIntent AuthorizationSource = "payment_intent"
)

// PaymentAuthorization is the artifact the client needs to complete payment.
type PaymentAuthorization struct {
	ID     string
	Secret string
	Source AuthorizationSource
}

// SubscriptionResult is the outcome of a successful subscription attempt.
// Authorization is nil when no client secret was available.
type SubscriptionResult struct {
	SubscriptionID string
	Status         SubscriptionStatus
	Authorization  *PaymentAuthorization
}
