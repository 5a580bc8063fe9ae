// internal/service/payment_service.go
package service

import (
	"context"
	"time"

	"github.com/AbdulAhad210904/Pro-connect/internal/auth"
	"github.com/AbdulAhad210904/Pro-connect/internal/domain"
	"github.com/AbdulAhad210904/Pro-connect/internal/payments"
	"github.com/AbdulAhad210904/Pro-connect/internal/upstream"
)

// PaymentAPI is the part of the remote API that talks to the payment provider.
type PaymentAPI interface {
	CreatePayment(ctx context.Context, token string, r *upstream.CreatePaymentRequest) (*upstream.CreatePaymentResponse, error)
	GetPayment(ctx context.Context, token, paymentID string) (*domain.Payment, error)
	ListUserPayments(ctx context.Context, token, userID string) ([]domain.Payment, error)
}

type PaymentService struct {
	api         PaymentAPI
	catalog     payments.Catalog
	redirectURL string
	guard       *SubmitGuard
	now         func() time.Time
}

func NewPaymentService(api PaymentAPI, catalog payments.Catalog, redirectURL string) *PaymentService {
	return &PaymentService{
		api:         api,
		catalog:     catalog,
		redirectURL: redirectURL,
		guard:       NewSubmitGuard(),
		now:         time.Now,
	}
}

// Plans lists the plans on sale.
func (s *PaymentService) Plans() []payments.Plan {
	return s.catalog.List()
}

// Checkout prices plan for the billing period and creates a payment. The
// caller is sent to the returned checkout URL.
func (s *PaymentService) Checkout(ctx context.Context, p *auth.Principal, plan, period, method string) (*upstream.CreatePaymentResponse, error) {
	quote, err := s.catalog.Quote(payments.Checkout{
		UserID:        p.Claims.UserID,
		Plan:          plan,
		Cycle:         payments.ParseCycle(period),
		PaymentMethod: method,
		RedirectURL:   s.redirectURL,
	})
	if err != nil {
		return nil, err
	}

	release, err := s.guard.Begin(guardKey("checkout", p.SessionID, p.Claims.UserID))
	if err != nil {
		return nil, err
	}
	defer release()

	customLog.Printf("PaymentService: checkout %s for user %s (%s)", quote.Description, p.Claims.UserID, quote.Amount.StringFixed(2))
	return s.api.CreatePayment(ctx, p.Token, &upstream.CreatePaymentRequest{
		Amount:        quote.Amount.InexactFloat64(),
		Description:   quote.Description,
		RedirectURL:   s.redirectURL,
		PaymentMethod: method,
		UserID:        p.Claims.UserID,
		PlanName:      quote.Plan.Name,
		BillingCycle:  string(quote.Cycle),
	})
}

// Status returns a payment as reported by the provider.
func (s *PaymentService) Status(ctx context.Context, p *auth.Principal, paymentID string) (*domain.Payment, error) {
	return s.api.GetPayment(ctx, p.Token, paymentID)
}

// Retry starts a new checkout for the plan of a failed or cancelled payment.
// An empty method reuses the original payment method.
func (s *PaymentService) Retry(ctx context.Context, p *auth.Principal, paymentID, method string) (*upstream.CreatePaymentResponse, error) {
	prev, err := s.api.GetPayment(ctx, p.Token, paymentID)
	if err != nil {
		return nil, err
	}
	if method == "" {
		method = prev.PaymentMethod
	}
	return s.Checkout(ctx, p, prev.PlanDetails.Name, prev.PlanDetails.BillingCycle, method)
}

// ActiveSubscription returns the caller's latest payment when its
// subscription has not ended, or nil.
func (s *PaymentService) ActiveSubscription(ctx context.Context, p *auth.Principal) (*domain.Payment, error) {
	list, err := s.api.ListUserPayments(ctx, p.Token, p.Claims.UserID)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	latest := list[0]
	id := latest.CustomID
	if id == "" {
		id = latest.ID
	}
	payment, err := s.api.GetPayment(ctx, p.Token, id)
	if err != nil {
		return nil, err
	}
	if !payment.Subscription.Active(s.now()) {
		return nil, nil
	}
	return payment, nil
}
