// internal/auth/auth.go
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AbdulAhad210904/Pro-connect/internal/domain"
	"github.com/AbdulAhad210904/Pro-connect/internal/logger"
)

var (
	ErrTokenMissing       = errors.New("authentication required")
	ErrTokenMalformed     = errors.New("malformed token")
	ErrTokenExpired       = errors.New("token is expired")
	ErrTokenClaimsInvalid = errors.New("invalid token claims")
	ErrUnauthorized       = errors.New("unauthorized")
	customLog             = logger.NewLogger()
)

const (
	SubscriptionNone    = "none"
	SubscriptionActive  = "active"
	SubscriptionExpired = "expired"
)

// SubscriptionClaim is the plan summary embedded in the upstream token.
type SubscriptionClaim struct {
	PlanName string     `json:"planName,omitempty"`
	EndDate  *time.Time `json:"endDate,omitempty"`
}

// Claims are the display claims carried by the upstream bearer token.
// They are decoded without signature verification and must never be used
// to authorize anything; the remote API does that.
type Claims struct {
	UserID         string             `json:"userId"`
	FirstName      string             `json:"firstName,omitempty"`
	ProfilePicture string             `json:"profilePicture,omitempty"`
	UserType       string             `json:"userType,omitempty"`
	Subscription   *SubscriptionClaim `json:"subscription,omitempty"`
	jwt.RegisteredClaims
}

// DecodeClaims reads the claims of a token without verifying its signature.
func DecodeClaims(tokenString string) (*Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrTokenMissing
	}
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		customLog.Debugf("DecodeClaims: token parsing error: %v", err)
		return nil, ErrTokenMalformed
	}
	if claims.UserID == "" {
		return nil, ErrTokenClaimsInvalid
	}
	return claims, nil
}

// Expiry returns the exp claim, or the zero time when absent.
func (c *Claims) Expiry() time.Time {
	if c.RegisteredClaims.ExpiresAt == nil {
		return time.Time{}
	}
	return c.RegisteredClaims.ExpiresAt.Time
}

// Expired reports whether exp lies at or before now. A token without exp
// never expires on the client side.
func (c *Claims) Expired(now time.Time) bool {
	exp := c.Expiry()
	return !exp.IsZero() && !now.Before(exp)
}

func (c *Claims) IsCraftsman() bool {
	return c.UserType == domain.UserTypeCraftsman
}

// SubscriptionStatus is only meaningful for craftsmen; individuals always
// report none.
func (c *Claims) SubscriptionStatus(now time.Time) string {
	if !c.IsCraftsman() || c.Subscription == nil || c.Subscription.EndDate == nil {
		return SubscriptionNone
	}
	if now.After(*c.Subscription.EndDate) {
		return SubscriptionExpired
	}
	return SubscriptionActive
}

func (c *Claims) PlanName() string {
	if c.Subscription == nil || c.Subscription.PlanName == "" {
		return "Individual"
	}
	return c.Subscription.PlanName
}

func (c *Claims) DisplayName() string {
	if c.FirstName == "" {
		return "User"
	}
	return c.FirstName
}

// Principal is the caller of a gateway request: its gateway session (empty
// for bearer callers), the upstream token to forward, and display claims.
type Principal struct {
	SessionID string
	Token     string
	Claims    *Claims
}
