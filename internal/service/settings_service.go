// internal/service/settings_service.go
package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/AbdulAhad210904/Pro-connect/internal/auth"
	"github.com/AbdulAhad210904/Pro-connect/internal/core"
	"github.com/AbdulAhad210904/Pro-connect/internal/domain"
)

// SettingsAPI is the part of the remote API behind the account settings page.
type SettingsAPI interface {
	ChangePassword(ctx context.Context, token, currentPassword, newPassword string) (string, error)
	SendEmailCode(ctx context.Context, token string) (string, error)
	VerifyEmailCode(ctx context.Context, token, code string) (string, error)
	SendPhoneOTP(ctx context.Context, token, phoneNumber string) (string, error)
	VerifyPhoneOTP(ctx context.Context, token, phoneNumber, otp string) (string, error)
	EmailVerificationStatus(ctx context.Context, token string) (string, error)
	PhoneVerificationStatus(ctx context.Context, token string) (string, error)
	ListSessions(ctx context.Context, token string) ([]domain.Session, error)
	DeleteSession(ctx context.Context, token, sessionID string) (string, error)
	DisableAccount(ctx context.Context, token string) error
	DeleteAccount(ctx context.Context, token string) error
}

// CredentialClearer ends the caller's gateway session.
type CredentialClearer interface {
	Logout(ctx context.Context, p *auth.Principal) error
}

// Overview is the settings page: connected devices and verification state.
type Overview struct {
	Sessions        []domain.Session `json:"sessions"`
	TotalSessions   int              `json:"totalSessions"`
	HasMoreSessions bool             `json:"hasMoreSessions"`
	ShowAll         bool             `json:"showAll"`
	EmailStatus     string           `json:"emailStatus,omitempty"`
	PhoneStatus     string           `json:"phoneStatus,omitempty"`
}

type SettingsService struct {
	api      SettingsAPI
	sessions CredentialClearer
	guard    *SubmitGuard
}

func NewSettingsService(api SettingsAPI, sessions CredentialClearer) *SettingsService {
	return &SettingsService{api: api, sessions: sessions, guard: NewSubmitGuard()}
}

// Overview loads the device list and both verification statuses in
// parallel. Only the device list can fail the call; the statuses are
// best-effort and merely logged when unavailable.
func (s *SettingsService) Overview(ctx context.Context, p *auth.Principal, showAll bool) (*Overview, error) {
	var (
		sessions    []domain.Session
		emailStatus string
		phoneStatus string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sessions, err = s.api.ListSessions(gctx, p.Token)
		return err
	})
	g.Go(func() error {
		status, err := s.api.EmailVerificationStatus(gctx, p.Token)
		if err != nil {
			customLog.Warnf("SettingsService: email verification status unavailable: %v", err)
			return nil
		}
		emailStatus = status
		return nil
	})
	g.Go(func() error {
		status, err := s.api.PhoneVerificationStatus(gctx, p.Token)
		if err != nil {
			customLog.Warnf("SettingsService: phone verification status unavailable: %v", err)
			return nil
		}
		phoneStatus = status
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Overview{
		Sessions:        core.Visible(sessions, core.SessionPageSize, showAll),
		TotalSessions:   len(sessions),
		HasMoreSessions: core.HasMore(len(sessions), core.SessionPageSize, showAll),
		ShowAll:         showAll,
		EmailStatus:     emailStatus,
		PhoneStatus:     phoneStatus,
	}, nil
}

// ChangePassword validates and submits the password change form.
func (s *SettingsService) ChangePassword(ctx context.Context, p *auth.Principal, form core.FormState) (string, error) {
	if errs := core.PasswordChangeRules.Validate(form, core.Flags{}); !errs.Valid() {
		return "", errs
	}
	release, err := s.guard.Begin(guardKey("password", p.SessionID, p.Claims.UserID))
	if err != nil {
		return "", err
	}
	defer release()
	return s.api.ChangePassword(ctx, p.Token, form.Raw(core.FieldCurrentPassword), form.Raw(core.FieldNewPassword))
}

func (s *SettingsService) SendEmailCode(ctx context.Context, p *auth.Principal) (string, error) {
	release, err := s.guard.Begin(guardKey("email-code", p.SessionID, p.Claims.UserID))
	if err != nil {
		return "", err
	}
	defer release()
	return s.api.SendEmailCode(ctx, p.Token)
}

func (s *SettingsService) VerifyEmailCode(ctx context.Context, p *auth.Principal, form core.FormState) (string, error) {
	if errs := core.VerificationCodeRules.Validate(form, core.Flags{}); !errs.Valid() {
		return "", errs
	}
	return s.api.VerifyEmailCode(ctx, p.Token, form.String(core.FieldVerificationCode))
}

func (s *SettingsService) SendPhoneOTP(ctx context.Context, p *auth.Principal, form core.FormState) (string, error) {
	if errs := core.PhoneRules.Validate(form, core.Flags{}); !errs.Valid() {
		return "", errs
	}
	release, err := s.guard.Begin(guardKey("phone-otp", p.SessionID, p.Claims.UserID))
	if err != nil {
		return "", err
	}
	defer release()
	return s.api.SendPhoneOTP(ctx, p.Token, form.String(core.FieldPhoneNumber))
}

func (s *SettingsService) VerifyPhoneOTP(ctx context.Context, p *auth.Principal, form core.FormState) (string, error) {
	errs := core.PhoneRules.Validate(form, core.Flags{})
	for field, msg := range core.VerificationCodeRules.Validate(form, core.Flags{}) {
		errs[field] = msg
	}
	if !errs.Valid() {
		return "", errs
	}
	return s.api.VerifyPhoneOTP(ctx, p.Token, form.String(core.FieldPhoneNumber), form.String(core.FieldVerificationCode))
}

// DisconnectSession signs one of the account's devices out.
func (s *SettingsService) DisconnectSession(ctx context.Context, p *auth.Principal, sessionID string) (string, error) {
	return s.api.DeleteSession(ctx, p.Token, sessionID)
}

// DisableAccount deactivates the account and ends the caller's session.
func (s *SettingsService) DisableAccount(ctx context.Context, p *auth.Principal) error {
	if err := s.api.DisableAccount(ctx, p.Token); err != nil {
		return err
	}
	return s.sessions.Logout(ctx, p)
}

// DeleteAccount removes the account and ends the caller's session.
func (s *SettingsService) DeleteAccount(ctx context.Context, p *auth.Principal) error {
	if err := s.api.DeleteAccount(ctx, p.Token); err != nil {
		return err
	}
	return s.sessions.Logout(ctx, p)
}
