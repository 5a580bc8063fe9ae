// internal/service/mocks_test.go
package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/AbdulAhad210904/Pro-connect/internal/auth"
	"github.com/AbdulAhad210904/Pro-connect/internal/core"
	"github.com/AbdulAhad210904/Pro-connect/internal/domain"
	"github.com/AbdulAhad210904/Pro-connect/internal/upstream"
)

// MockAPI stands in for the remote API. Unset functions answer with zero values.
type MockAPI struct {
	LoginFunc                 func(ctx context.Context, email, password string) (string, error)
	RefreshTokenFunc          func(ctx context.Context, token string) (string, error)
	RegisterFunc              func(ctx context.Context, r *upstream.RegisterRequest) error
	SendPasswordResetCodeFunc func(ctx context.Context, email string) (string, error)
	ResetPasswordWithCodeFunc func(ctx context.Context, email, code, newPassword string) (string, error)

	CreateProjectFunc  func(ctx context.Context, token string, r *upstream.CreateProjectRequest) (*domain.Project, error)
	ListProjectsFunc   func(ctx context.Context, token string, c core.FilterCriteria) ([]domain.Project, error)
	CheckCanApplyFunc  func(ctx context.Context, token, craftsmanID string) (int, error)
	ApplyToProjectFunc func(ctx context.Context, token, projectID string, p domain.Proposal) error

	ChangePasswordFunc          func(ctx context.Context, token, current, next string) (string, error)
	SendEmailCodeFunc           func(ctx context.Context, token string) (string, error)
	VerifyEmailCodeFunc         func(ctx context.Context, token, code string) (string, error)
	SendPhoneOTPFunc            func(ctx context.Context, token, phone string) (string, error)
	VerifyPhoneOTPFunc          func(ctx context.Context, token, phone, otp string) (string, error)
	EmailVerificationStatusFunc func(ctx context.Context, token string) (string, error)
	PhoneVerificationStatusFunc func(ctx context.Context, token string) (string, error)
	ListSessionsFunc            func(ctx context.Context, token string) ([]domain.Session, error)
	DeleteSessionFunc           func(ctx context.Context, token, id string) (string, error)
	DisableAccountFunc          func(ctx context.Context, token string) error
	DeleteAccountFunc           func(ctx context.Context, token string) error

	CreatePaymentFunc    func(ctx context.Context, token string, r *upstream.CreatePaymentRequest) (*upstream.CreatePaymentResponse, error)
	GetPaymentFunc       func(ctx context.Context, token, id string) (*domain.Payment, error)
	ListUserPaymentsFunc func(ctx context.Context, token, userID string) ([]domain.Payment, error)
}

func (m *MockAPI) Login(ctx context.Context, email, password string) (string, error) {
	if m.LoginFunc == nil {
		return "", nil
	}
	return m.LoginFunc(ctx, email, password)
}

func (m *MockAPI) RefreshToken(ctx context.Context, token string) (string, error) {
	if m.RefreshTokenFunc == nil {
		return "", nil
	}
	return m.RefreshTokenFunc(ctx, token)
}

func (m *MockAPI) Register(ctx context.Context, r *upstream.RegisterRequest) error {
	if m.RegisterFunc == nil {
		return nil
	}
	return m.RegisterFunc(ctx, r)
}

func (m *MockAPI) SendPasswordResetCode(ctx context.Context, email string) (string, error) {
	if m.SendPasswordResetCodeFunc == nil {
		return "", nil
	}
	return m.SendPasswordResetCodeFunc(ctx, email)
}

func (m *MockAPI) ResetPasswordWithCode(ctx context.Context, email, code, newPassword string) (string, error) {
	if m.ResetPasswordWithCodeFunc == nil {
		return "", nil
	}
	return m.ResetPasswordWithCodeFunc(ctx, email, code, newPassword)
}

func (m *MockAPI) CreateProject(ctx context.Context, token string, r *upstream.CreateProjectRequest) (*domain.Project, error) {
	if m.CreateProjectFunc == nil {
		return nil, nil
	}
	return m.CreateProjectFunc(ctx, token, r)
}

func (m *MockAPI) ListProjects(ctx context.Context, token string, c core.FilterCriteria) ([]domain.Project, error) {
	if m.ListProjectsFunc == nil {
		return nil, nil
	}
	return m.ListProjectsFunc(ctx, token, c)
}

func (m *MockAPI) CheckCanApply(ctx context.Context, token, craftsmanID string) (int, error) {
	if m.CheckCanApplyFunc == nil {
		return 0, nil
	}
	return m.CheckCanApplyFunc(ctx, token, craftsmanID)
}

func (m *MockAPI) ApplyToProject(ctx context.Context, token, projectID string, p domain.Proposal) error {
	if m.ApplyToProjectFunc == nil {
		return nil
	}
	return m.ApplyToProjectFunc(ctx, token, projectID, p)
}

func (m *MockAPI) ChangePassword(ctx context.Context, token, current, next string) (string, error) {
	if m.ChangePasswordFunc == nil {
		return "", nil
	}
	return m.ChangePasswordFunc(ctx, token, current, next)
}

func (m *MockAPI) SendEmailCode(ctx context.Context, token string) (string, error) {
	if m.SendEmailCodeFunc == nil {
		return "", nil
	}
	return m.SendEmailCodeFunc(ctx, token)
}

func (m *MockAPI) VerifyEmailCode(ctx context.Context, token, code string) (string, error) {
	if m.VerifyEmailCodeFunc == nil {
		return "", nil
	}
	return m.VerifyEmailCodeFunc(ctx, token, code)
}

func (m *MockAPI) SendPhoneOTP(ctx context.Context, token, phone string) (string, error) {
	if m.SendPhoneOTPFunc == nil {
		return "", nil
	}
	return m.SendPhoneOTPFunc(ctx, token, phone)
}

func (m *MockAPI) VerifyPhoneOTP(ctx context.Context, token, phone, otp string) (string, error) {
	if m.VerifyPhoneOTPFunc == nil {
		return "", nil
	}
	return m.VerifyPhoneOTPFunc(ctx, token, phone, otp)
}

func (m *MockAPI) EmailVerificationStatus(ctx context.Context, token string) (string, error) {
	if m.EmailVerificationStatusFunc == nil {
		return "", nil
	}
	return m.EmailVerificationStatusFunc(ctx, token)
}

func (m *MockAPI) PhoneVerificationStatus(ctx context.Context, token string) (string, error) {
	if m.PhoneVerificationStatusFunc == nil {
		return "", nil
	}
	return m.PhoneVerificationStatusFunc(ctx, token)
}

func (m *MockAPI) ListSessions(ctx context.Context, token string) ([]domain.Session, error) {
	if m.ListSessionsFunc == nil {
		return nil, nil
	}
	return m.ListSessionsFunc(ctx, token)
}

func (m *MockAPI) DeleteSession(ctx context.Context, token, id string) (string, error) {
	if m.DeleteSessionFunc == nil {
		return "", nil
	}
	return m.DeleteSessionFunc(ctx, token, id)
}

func (m *MockAPI) DisableAccount(ctx context.Context, token string) error {
	if m.DisableAccountFunc == nil {
		return nil
	}
	return m.DisableAccountFunc(ctx, token)
}

func (m *MockAPI) DeleteAccount(ctx context.Context, token string) error {
	if m.DeleteAccountFunc == nil {
		return nil
	}
	return m.DeleteAccountFunc(ctx, token)
}

func (m *MockAPI) CreatePayment(ctx context.Context, token string, r *upstream.CreatePaymentRequest) (*upstream.CreatePaymentResponse, error) {
	if m.CreatePaymentFunc == nil {
		return nil, nil
	}
	return m.CreatePaymentFunc(ctx, token, r)
}

func (m *MockAPI) GetPayment(ctx context.Context, token, id string) (*domain.Payment, error) {
	if m.GetPaymentFunc == nil {
		return nil, nil
	}
	return m.GetPaymentFunc(ctx, token, id)
}

func (m *MockAPI) ListUserPayments(ctx context.Context, token, userID string) ([]domain.Payment, error) {
	if m.ListUserPaymentsFunc == nil {
		return nil, nil
	}
	return m.ListUserPaymentsFunc(ctx, token, userID)
}

// The real client satisfies every API interface.
var (
	_ UserAPI     = (*upstream.Client)(nil)
	_ ProjectAPI  = (*upstream.Client)(nil)
	_ SettingsAPI = (*upstream.Client)(nil)
	_ PaymentAPI  = (*upstream.Client)(nil)
)

func makeToken(t *testing.T, userID, userType string, exp time.Time) string {
	t.Helper()
	claims := auth.Claims{
		UserID:           userID,
		FirstName:        "Test",
		UserType:         userType,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(exp)},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("k"))
	require.NoError(t, err)
	return token
}

func principal(userID, userType string) *auth.Principal {
	return &auth.Principal{
		SessionID: "sess-" + userID,
		Token:     "tok-" + userID,
		Claims:    &auth.Claims{UserID: userID, UserType: userType},
	}
}
