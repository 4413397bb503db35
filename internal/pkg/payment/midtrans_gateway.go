package payment

import (
	"context"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
)

// MidtransGateway charges through the Midtrans Core API.
type MidtransGateway struct {
	client coreapi.Client
}

func NewMidtransGateway(serverKey string, isProduction bool) *MidtransGateway {
	env := midtrans.Sandbox
	if isProduction {
		env = midtrans.Production
	}

	var client coreapi.Client
	client.New(serverKey, env)

	return &MidtransGateway{client: client}
}

func (g *MidtransGateway) Charge(ctx context.Context, req *ChargeRequest) (*ChargeResult, error) {
	paymentType := coreapi.CoreapiPaymentType(req.PaymentType)
	if paymentType == "" {
		paymentType = coreapi.PaymentTypeQris
	}

	chargeReq := &coreapi.ChargeReq{
		PaymentType: paymentType,
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderId,
			GrossAmt: req.GrossAmount,
		},
		CustomerDetails: &midtrans.CustomerDetails{
			FName: req.CustomerName,
			Phone: req.CustomerPhone,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    req.OrderId,
				Price: req.GrossAmount,
				Qty:   1,
				Name:  req.ItemName,
			},
		},
	}

	resp, midErr := g.client.ChargeTransaction(chargeReq)
	if midErr != nil {
		return nil, midErr
	}

	result := &ChargeResult{PaymentRef: resp.TransactionID}

	switch resp.TransactionStatus {
	case "capture", "settlement":
		result.Status = ChargeStatusSuccess
	case "pending":
		result.Status = ChargeStatusPending
	default:
		result.Status = ChargeStatusDeclined
		result.FailureReason = resp.StatusMessage
	}

	return result, nil
}
