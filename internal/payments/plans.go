// internal/payments/plans.go
package payments

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// BillingCycle of a subscription.
type BillingCycle string

const (
	Monthly BillingCycle = "monthly"
	Yearly  BillingCycle = "yearly"
)

var (
	ErrUnknownPlan   = errors.New("unknown subscription plan")
	validate         = validator.New()
	defaultPlanOrder = []string{"PRO", "PREMIUM"}
)

// Plan is a subscription tier with its prices and selling points.
type Plan struct {
	Name       string          `json:"name"`
	Monthly    decimal.Decimal `json:"monthly"`
	Yearly     decimal.Decimal `json:"yearly"`
	Advantages []string        `json:"advantages"`
}

// Price returns the amount charged for one billing cycle.
func (p Plan) Price(cycle BillingCycle) decimal.Decimal {
	if cycle == Yearly {
		return p.Yearly
	}
	return p.Monthly
}

// YearlySaving is what a yearly subscription saves over twelve months.
func (p Plan) YearlySaving() decimal.Decimal {
	return p.Monthly.Mul(decimal.NewFromInt(12)).Sub(p.Yearly)
}

// Catalog maps plan names to plans.
type Catalog map[string]Plan

// DefaultCatalog holds the plans currently sold.
var DefaultCatalog = Catalog{
	"PRO": {
		Name:    "PRO",
		Monthly: decimal.RequireFromString("19.99"),
		Yearly:  decimal.RequireFromString("191.90"),
		Advantages: []string{
			"Verhoogde zichtbaarheid voor meer exposure",
			"15 privé contacten per maand voor meer kansen",
			"Uitgebreid profiel met portfolio showcase",
		},
	},
	"PREMIUM": {
		Name:    "PREMIUM",
		Monthly: decimal.RequireFromString("49.99"),
		Yearly:  decimal.RequireFromString("479.90"),
		Advantages: []string{
			"Maximale zichtbaarheid voor optimaal bereik",
			"Onbeperkt contact voor grenzeloze mogelijkheden",
			"Prioriteit in zoekresultaten voor maximale exposure",
		},
	},
}

// Lookup finds a plan by name, case-insensitively.
func (c Catalog) Lookup(name string) (Plan, error) {
	p, ok := c[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return Plan{}, fmt.Errorf("%w: '%s'", ErrUnknownPlan, name)
	}
	return p, nil
}

// List returns the plans in display order.
func (c Catalog) List() []Plan {
	out := make([]Plan, 0, len(c))
	seen := map[string]bool{}
	for _, name := range defaultPlanOrder {
		if p, ok := c[name]; ok {
			out = append(out, p)
			seen[name] = true
		}
	}
	var rest []string
	for name := range c {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		out = append(out, c[name])
	}
	return out
}

// ParseCycle reads the period parameter of the pricing page ("per maand",
// "per jaar", "monthly", "yearly"). Anything mentioning "jaar" or "year" is
// yearly; everything else is monthly.
func ParseCycle(period string) BillingCycle {
	p := strings.ToLower(period)
	if strings.Contains(p, "jaar") || strings.Contains(p, "year") {
		return Yearly
	}
	return Monthly
}

// Label is the Dutch name of the cycle.
func (c BillingCycle) Label() string {
	if c == Yearly {
		return "Jaarlijks"
	}
	return "Maandelijks"
}

// Description is the payment description shown on the provider's page.
func Description(plan string, cycle BillingCycle) string {
	return fmt.Sprintf("Abonnement: %s (%s)", plan, cycle.Label())
}
