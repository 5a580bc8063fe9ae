// internal/upstream/users.go
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/AbdulAhad210904/Pro-connect/internal/core"
	"github.com/AbdulAhad210904/Pro-connect/internal/domain"
)

// Address is sent to the register endpoint as a JSON string field.
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
	Country string `json:"country"`
}

// RegisterRequest is the multipart sign-up payload.
type RegisterRequest struct {
	FirstName      string
	LastName       string
	Email          string
	Password       string
	PhoneNumber    string
	DateOfBirth    string
	Address        Address
	UserType       string
	CompanyName    string
	VatOrKvKNumber string

	// Individuals only.
	ProjectInterest      []string
	OtherProjectInterest string

	ProfilePicture         *core.Attachment
	IdentificationDocument *core.Attachment
	// Craftsmen only.
	ProfessionalCertificates []*core.Attachment
}

type tokenResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp tokenResponse
	in := map[string]string{"email": email, "password": password}
	if err := c.doJSON(ctx, http.MethodPost, usersPath+"/login", "", in, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("%w: login response has no token", ErrMalformedResponse)
	}
	return resp.Token, nil
}

// RefreshToken silently exchanges a still-valid token for a fresh one.
func (c *Client) RefreshToken(ctx context.Context, token string) (string, error) {
	var resp tokenResponse
	if err := c.doJSON(ctx, http.MethodPost, usersPath+"/getnewtoken", token, nil, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("%w: refresh response has no token", ErrMalformedResponse)
	}
	return resp.Token, nil
}

// Register submits the sign-up form as multipart/form-data.
func (c *Client) Register(ctx context.Context, r *RegisterRequest) error {
	address, err := json.Marshal(r.Address)
	if err != nil {
		return fmt.Errorf("encode address: %w", err)
	}

	b := newFormBuilder()
	b.field("firstName", r.FirstName)
	b.field("lastName", r.LastName)
	b.field("email", r.Email)
	b.field("password", r.Password)
	b.optional("phoneNumber", r.PhoneNumber)
	b.optional("dateOfBirth", r.DateOfBirth)
	b.field("address", string(address))
	b.field("userType", r.UserType)

	switch r.UserType {
	case domain.UserTypeCraftsman:
		b.optional("companyName", r.CompanyName)
		b.optional("vatOrKvKNumber", r.VatOrKvKNumber)
	case domain.UserTypeIndividual:
		interests := r.ProjectInterest
		if interests == nil {
			interests = []string{}
		}
		encoded, err := json.Marshal(interests)
		if err != nil {
			return fmt.Errorf("encode project interest: %w", err)
		}
		b.field("projectInterest", string(encoded))
		if containsString(interests, core.OthersSentinel) {
			b.field("otherProjectInterest", r.OtherProjectInterest)
		}
	}

	b.file("profilePicture", r.ProfilePicture)
	b.file("identificationDocument", r.IdentificationDocument)
	if r.UserType == domain.UserTypeCraftsman {
		for _, cert := range r.ProfessionalCertificates {
			b.file("professionalCertificates", cert)
		}
	}

	body, contentType, err := b.finish()
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPost, usersPath+"/register", "", body, contentType)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// ChangePassword updates the password of the logged-in user.
func (c *Client) ChangePassword(ctx context.Context, token, currentPassword, newPassword string) (string, error) {
	in := map[string]string{"currentPassword": currentPassword, "newPassword": newPassword}
	return c.status(ctx, http.MethodPut, usersPath+"/update-password", token, in)
}

// SendPasswordResetCode mails a reset code to email.
func (c *Client) SendPasswordResetCode(ctx context.Context, email string) (string, error) {
	return c.status(ctx, http.MethodPost, usersPath+"/send-password-update-code", "", map[string]string{"email": email})
}

// ResetPasswordWithCode sets a new password using a mailed code.
func (c *Client) ResetPasswordWithCode(ctx context.Context, email, code, newPassword string) (string, error) {
	in := map[string]string{"email": email, "code": code, "newPassword": newPassword}
	return c.status(ctx, http.MethodPost, usersPath+"/update-password-with-code", "", in)
}

// DisableAccount deactivates the account until the next login.
func (c *Client) DisableAccount(ctx context.Context, token string) error {
	return c.doJSON(ctx, http.MethodPut, usersPath+"/disable", token, map[string]bool{"isDisabled": true}, nil)
}

// DeleteAccount permanently removes the account.
func (c *Client) DeleteAccount(ctx context.Context, token string) error {
	return c.doJSON(ctx, http.MethodDelete, usersPath+"/delete", token, map[string]bool{"isDeleted": true}, nil)
}

func containsString(items []string, want string) bool {
	for _, s := range items {
		if s == want {
			return true
		}
	}
	return false
}
