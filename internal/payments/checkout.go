// internal/payments/checkout.go
package payments

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Checkout is a validated request to start paying for a plan.
type Checkout struct {
	UserID        string       `validate:"required"`
	Plan          string       `validate:"required"`
	Cycle         BillingCycle `validate:"required,oneof=monthly yearly"`
	PaymentMethod string       `validate:"required,oneof=ideal creditcard bancontact paypal"`
	RedirectURL   string       `validate:"required,url"`
}

// Quote is the priced form of a Checkout.
type Quote struct {
	Plan        Plan
	Cycle       BillingCycle
	Amount      decimal.Decimal
	Description string
}

// Quote validates the checkout and prices it against the catalog. Who may
// subscribe is decided by the remote API.
func (c Catalog) Quote(co Checkout) (*Quote, error) {
	if err := validate.Struct(co); err != nil {
		return nil, err
	}
	plan, err := c.Lookup(co.Plan)
	if err != nil {
		return nil, err
	}
	amount := plan.Price(co.Cycle)
	if !amount.IsPositive() {
		return nil, fmt.Errorf("plan %s has no price for %s billing", plan.Name, co.Cycle)
	}
	return &Quote{
		Plan:        plan,
		Cycle:       co.Cycle,
		Amount:      amount,
		Description: Description(plan.Name, co.Cycle),
	}, nil
}
