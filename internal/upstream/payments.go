// internal/upstream/payments.go
package upstream

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/AbdulAhad210904/Pro-connect/internal/domain"
)

// CreatePaymentRequest starts a checkout with the payment provider.
type CreatePaymentRequest struct {
	Amount        float64 `json:"amount"`
	Description   string  `json:"description"`
	RedirectURL   string  `json:"redirectUrl"`
	PaymentMethod string  `json:"paymentMethod"`
	UserID        string  `json:"userId"`
	PlanName      string  `json:"planName"`
	BillingCycle  string  `json:"billingCycle"`
}

// CreatePaymentResponse carries where to send the user to pay.
type CreatePaymentResponse struct {
	PaymentID   string `json:"paymentId"`
	CheckoutURL string `json:"checkoutUrl"`
}

func (c *Client) CreatePayment(ctx context.Context, token string, r *CreatePaymentRequest) (*CreatePaymentResponse, error) {
	var resp CreatePaymentResponse
	if err := c.doJSON(ctx, http.MethodPost, paymentsPath+"/create-payment", token, r, &resp); err != nil {
		return nil, err
	}
	if resp.PaymentID == "" || resp.CheckoutURL == "" {
		return nil, fmt.Errorf("%w: payment response lacks paymentId or checkoutUrl", ErrMalformedResponse)
	}
	return &resp, nil
}

// GetPayment fetches a payment by its id (or customId).
func (c *Client) GetPayment(ctx context.Context, token, paymentID string) (*domain.Payment, error) {
	var p domain.Payment
	path := paymentsPath + "/payments/" + url.PathEscape(paymentID)
	if err := c.doJSON(ctx, http.MethodGet, path, token, nil, &p); err != nil {
		return nil, err
	}
	if p.ID == "" {
		p.ID = paymentID
	}
	return &p, nil
}

// ListUserPayments returns the user's payments, newest first.
func (c *Client) ListUserPayments(ctx context.Context, token, userID string) ([]domain.Payment, error) {
	var resp struct {
		Payments []domain.Payment `json:"payments"`
	}
	path := paymentsPath + "/payments/user/" + url.PathEscape(userID)
	if err := c.doJSON(ctx, http.MethodGet, path, token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Payments, nil
}
