package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// SimulatedGateway settles charges locally. It is used in development when
// no provider server key is configured, so the full order flow stays
// exercisable without network access.
//
// A charge with PaymentType "test_decline" is declined and one with
// "test_pending" stays pending, which lets the failure paths be driven
// end to end from a client.
type SimulatedGateway struct{}

func NewSimulatedGateway() *SimulatedGateway {
	return &SimulatedGateway{}
}

func (g *SimulatedGateway) Charge(ctx context.Context, req *ChargeRequest) (*ChargeResult, error) {
	if req.GrossAmount <= 0 {
		return nil, fmt.Errorf("invalid gross amount: %d", req.GrossAmount)
	}

	ref := "sim-" + uuid.New().String()

	switch req.PaymentType {
	case "test_decline":
		return &ChargeResult{
			PaymentRef:    ref,
			Status:        ChargeStatusDeclined,
			FailureReason: "declined by simulator",
		}, nil
	case "test_pending":
		return &ChargeResult{PaymentRef: ref, Status: ChargeStatusPending}, nil
	default:
		return &ChargeResult{PaymentRef: ref, Status: ChargeStatusSuccess}, nil
	}
}
