// internal/upstream/verification.go
package upstream

import (
	"context"
	"net/http"
)

func (c *Client) status(ctx context.Context, method, path, token string, in any) (string, error) {
	var resp statusText
	if err := c.doJSON(ctx, method, path, token, in, &resp); err != nil {
		return "", err
	}
	return string(resp), nil
}

func (c *Client) SendEmailCode(ctx context.Context, token string) (string, error) {
	return c.status(ctx, http.MethodPost, usersPath+"/send-verification-code", token, nil)
}

func (c *Client) VerifyEmailCode(ctx context.Context, token, code string) (string, error) {
	return c.status(ctx, http.MethodPost, usersPath+"/verify-code", token, map[string]string{"code": code})
}

func (c *Client) SendPhoneOTP(ctx context.Context, token, phoneNumber string) (string, error) {
	return c.status(ctx, http.MethodPost, usersPath+"/send-otp", token, map[string]string{"phoneNumber": phoneNumber})
}

func (c *Client) VerifyPhoneOTP(ctx context.Context, token, phoneNumber, otp string) (string, error) {
	in := map[string]string{"phoneNumber": phoneNumber, "otp": otp}
	return c.status(ctx, http.MethodPost, usersPath+"/verify-otp", token, in)
}

func (c *Client) EmailVerificationStatus(ctx context.Context, token string) (string, error) {
	return c.status(ctx, http.MethodGet, usersPath+"/email-verification-status", token, nil)
}

func (c *Client) PhoneVerificationStatus(ctx context.Context, token string) (string, error) {
	return c.status(ctx, http.MethodGet, usersPath+"/phone-verification-status", token, nil)
}
