// internal/domain/models.go
package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// User types known to the marketplace.
const (
	UserTypeCraftsman  = "craftsman"
	UserTypeIndividual = "individual"
)

// Budget is the price range an individual is willing to pay for a project.
type Budget struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Currency string  `json:"currency,omitempty"`
}

// Location of the work site.
type Location struct {
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	Country string `json:"country"`
}

// UserRef points at the user who posted a project. The remote API sends
// either a bare id or a populated user object.
type UserRef struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

// UnmarshalJSON accepts both `"abc123"` and `{"_id":"abc123",...}`.
func (u *UserRef) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		*u = UserRef{ID: id}
		return nil
	}
	type plain UserRef
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*u = UserRef(p)
	return nil
}

// Project as listed for craftsmen. Ids are assigned by the remote API.
type Project struct {
	ID          string    `json:"_id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	SubCategory string    `json:"subCategory,omitempty"`
	Budget      Budget    `json:"budget"`
	Location    Location  `json:"location"`
	Deadline    time.Time `json:"deadline"`
	Status      string    `json:"status,omitempty"`
	Images      []string  `json:"images,omitempty"`
	PostedBy    UserRef   `json:"postedBy"`

	// Per-craftsman counters computed upstream, passed through untouched.
	AlreadyApplied    bool `json:"alreadyApplied"`
	ContactsRemaining *int `json:"contactsRemaining,omitempty"`
}

// Session is a device/browser connected to an account.
type Session struct {
	ID         string `json:"_id"`
	DeviceName string `json:"deviceName"`
	Browser    string `json:"browser"`
}

// Subscription attached to a payment.
type Subscription struct {
	PlanName  string    `json:"planName,omitempty"`
	StartDate time.Time `json:"startDate,omitempty"`
	EndDate   time.Time `json:"endDate,omitempty"`
}

// Active reports whether the subscription has not ended yet.
func (s *Subscription) Active(now time.Time) bool {
	if s == nil || s.EndDate.IsZero() {
		return false
	}
	return !s.EndDate.Before(now)
}

// PlanDetails as stored on a payment.
type PlanDetails struct {
	Name         string `json:"name"`
	BillingCycle string `json:"billingCycle"`
}

// PaymentUser is the subset of the paying user returned with a payment.
type PaymentUser struct {
	ID        string `json:"_id"`
	FirstName string `json:"firstName,omitempty"`
	Email     string `json:"email,omitempty"`
}

// Payment is a checkout created with the payment provider.
type Payment struct {
	ID            string          `json:"paymentId,omitempty"`
	CustomID      string          `json:"customId,omitempty"`
	PaymentStatus string          `json:"paymentStatus,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description,omitempty"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
	CheckoutURL   string          `json:"checkoutUrl,omitempty"`
	PlanDetails   PlanDetails     `json:"planDetails"`
	Subscription  *Subscription   `json:"subscription,omitempty"`
	User          PaymentUser     `json:"user"`
}

// Proposal is what a craftsman sends when applying to a project.
type Proposal struct {
	Message       string  `json:"message"`
	ProposedPrice float64 `json:"proposedPrice,omitempty"`
	Availability  string  `json:"availability,omitempty"`
}
