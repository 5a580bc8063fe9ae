// api/models/auth_models.go
package models

import (
	"time"

	"github.com/AbdulAhad210904/Pro-connect/internal/auth"
	"github.com/AbdulAhad210904/Pro-connect/internal/core"
)

// --- Auth Request/Response Structs ---
// Form requests carry no binding tags: the form validation engine owns their
// rules and messages.

// LoginRequest defines the structure for the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Form() core.FormState {
	return core.FormState{core.FieldEmail: r.Email, core.FieldPassword: r.Password}
}

// LoginResponse defines the structure for the login response body
type LoginResponse struct {
	Message   string      `json:"message"`
	SessionID string      `json:"sessionId,omitempty"`
	User      UserSummary `json:"user"`
}

// UserSummary is what the navigation bar shows about the signed-in user.
// It is derived from unverified token claims and is display-only.
type UserSummary struct {
	UserID             string `json:"userId"`
	DisplayName        string `json:"displayName"`
	ProfilePicture     string `json:"profilePicture,omitempty"`
	UserType           string `json:"userType,omitempty"`
	Craftsman          bool   `json:"craftsman"`
	PlanName           string `json:"planName"`
	SubscriptionStatus string `json:"subscriptionStatus"`
	ExpiresAt          *int64 `json:"expiresAt,omitempty"`
}

func NewUserSummary(c *auth.Claims, now time.Time) UserSummary {
	s := UserSummary{
		UserID:             c.UserID,
		DisplayName:        c.DisplayName(),
		ProfilePicture:     c.ProfilePicture,
		UserType:           c.UserType,
		Craftsman:          c.IsCraftsman(),
		PlanName:           c.PlanName(),
		SubscriptionStatus: c.SubscriptionStatus(now),
	}
	if exp := c.Expiry(); !exp.IsZero() {
		unix := exp.Unix()
		s.ExpiresAt = &unix
	}
	return s
}

// PasswordResetCodeRequest asks for a reset code by email.
type PasswordResetCodeRequest struct {
	Email string `json:"email"`
}

func (r PasswordResetCodeRequest) Form() core.FormState {
	return core.FormState{core.FieldEmail: r.Email}
}

// PasswordResetRequest sets a new password with a mailed code.
type PasswordResetRequest struct {
	Email            string `json:"email"`
	VerificationCode string `json:"verificationCode"`
	NewPassword      string `json:"newPassword"`
	ConfirmPassword  string `json:"confirmPassword"`
}

func (r PasswordResetRequest) Form() core.FormState {
	return core.FormState{
		core.FieldEmail:            r.Email,
		core.FieldVerificationCode: r.VerificationCode,
		core.FieldNewPassword:      r.NewPassword,
		core.FieldConfirmPassword:  r.ConfirmPassword,
	}
}

// MessageResponse is the generic acknowledgement of a remote action.
type MessageResponse struct {
	Message string `json:"message"`
}
