package payment

import "context"

type ChargeStatus string

const (
	ChargeStatusSuccess  ChargeStatus = "success"
	ChargeStatusPending  ChargeStatus = "pending"
	ChargeStatusDeclined ChargeStatus = "declined"
)

// ChargeRequest describes a single payment attempt for an order. Amounts are
// in the smallest currency unit handled by the gateway.
type ChargeRequest struct {
	OrderId       string
	GrossAmount   int64
	PaymentType   string
	CustomerName  string
	CustomerPhone string
	ItemName      string
}

type ChargeResult struct {
	PaymentRef    string
	Status        ChargeStatus
	FailureReason string
}

// Gateway abstracts the payment provider. A charge may settle synchronously
// or come back pending, in which case the provider notifies the webhook
// endpoint later.
type Gateway interface {
	Charge(ctx context.Context, req *ChargeRequest) (*ChargeResult, error)
}
