// api/models/payment_models.go
package models

import (
	"github.com/shopspring/decimal"

	"github.com/AbdulAhad210904/Pro-connect/internal/payments"
)

// CheckoutRequest starts paying for a plan. Period accepts the pricing page
// labels ("per maand", "per jaar") as well as "monthly" and "yearly".
type CheckoutRequest struct {
	Plan          string `json:"plan" binding:"required"`
	Period        string `json:"period"`
	PaymentMethod string `json:"paymentMethod" binding:"required"`
}

// RetryRequest optionally switches the payment method of a retried payment.
type RetryRequest struct {
	PaymentMethod string `json:"paymentMethod"`
}

// CheckoutResponse tells the client where to pay.
type CheckoutResponse struct {
	PaymentID   string `json:"paymentId"`
	CheckoutURL string `json:"checkoutUrl"`
}

// PlanResponse is one card of the pricing page.
type PlanResponse struct {
	Name         string          `json:"name"`
	Monthly      decimal.Decimal `json:"monthly"`
	Yearly       decimal.Decimal `json:"yearly"`
	YearlySaving decimal.Decimal `json:"yearlySaving"`
	Advantages   []string        `json:"advantages"`
}

func NewPlanResponses(plans []payments.Plan) []PlanResponse {
	out := make([]PlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, PlanResponse{
			Name:         p.Name,
			Monthly:      p.Monthly,
			Yearly:       p.Yearly,
			YearlySaving: p.YearlySaving(),
			Advantages:   p.Advantages,
		})
	}
	return out
}
