// internal/service/auth_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AbdulAhad210904/Pro-connect/internal/auth"
	"github.com/AbdulAhad210904/Pro-connect/internal/core"
	"github.com/AbdulAhad210904/Pro-connect/internal/domain"
	"github.com/AbdulAhad210904/Pro-connect/internal/logger"
	"github.com/AbdulAhad210904/Pro-connect/internal/storage"
	"github.com/AbdulAhad210904/Pro-connect/internal/upstream"
)

var customLog = logger.NewLogger()

// UserAPI is the part of the remote API that deals with accounts.
type UserAPI interface {
	Login(ctx context.Context, email, password string) (string, error)
	RefreshToken(ctx context.Context, token string) (string, error)
	Register(ctx context.Context, r *upstream.RegisterRequest) error
	SendPasswordResetCode(ctx context.Context, email string) (string, error)
	ResetPasswordWithCode(ctx context.Context, email, code, newPassword string) (string, error)
}

// AuthService owns gateway sessions: it logs users in against the remote
// API, stores their token and keeps auth.State in sync.
type AuthService struct {
	api   UserAPI
	state *auth.State
	store storage.TokenStore
	guard *SubmitGuard
	now   func() time.Time
}

func NewAuthService(api UserAPI, state *auth.State, store storage.TokenStore) *AuthService {
	return &AuthService{api: api, state: state, store: store, guard: NewSubmitGuard(), now: time.Now}
}

// Login validates the form, obtains a token and opens a gateway session.
func (s *AuthService) Login(ctx context.Context, form core.FormState) (*auth.Principal, error) {
	if errs := core.LoginRules.Validate(form, core.Flags{}); !errs.Valid() {
		return nil, errs
	}
	email := strings.ToLower(form.String(core.FieldEmail))
	release, err := s.guard.Begin("login:" + email)
	if err != nil {
		return nil, err
	}
	defer release()

	token, err := s.api.Login(ctx, email, form.Raw(core.FieldPassword))
	if err != nil {
		return nil, err
	}
	return s.open(ctx, token)
}

// open stores token under a fresh session id and marks it logged in.
func (s *AuthService) open(ctx context.Context, token string) (*auth.Principal, error) {
	claims, err := auth.DecodeClaims(token)
	if err != nil {
		return nil, fmt.Errorf("login returned an unusable token: %w", err)
	}
	if claims.Expired(s.now()) {
		return nil, auth.ErrTokenExpired
	}
	sessionID := uuid.NewString()
	if err := s.store.Save(ctx, sessionID, token, claims.Expiry()); err != nil {
		return nil, fmt.Errorf("failed to store credentials: %w", err)
	}
	s.state.Login(sessionID, claims)
	customLog.Printf("AuthService: session %s opened for user %s", sessionID, claims.UserID)
	return &auth.Principal{SessionID: sessionID, Token: token, Claims: claims}, nil
}

// Resolve loads the principal behind a gateway session cookie. Expired or
// unreadable credentials are cleared.
func (s *AuthService) Resolve(ctx context.Context, sessionID string) (*auth.Principal, error) {
	token, err := s.store.Load(ctx, sessionID)
	if errors.Is(err, storage.ErrTokenNotFound) {
		s.state.Logout(sessionID)
		return nil, auth.ErrTokenMissing
	}
	if err != nil {
		return nil, err
	}

	claims, err := auth.DecodeClaims(token)
	if err != nil {
		s.clear(ctx, sessionID, auth.ReasonLogout)
		return nil, err
	}
	if claims.Expired(s.now()) {
		s.clear(ctx, sessionID, auth.ReasonExpired)
		return nil, auth.ErrTokenExpired
	}
	if !s.state.Get(sessionID).LoggedIn {
		// Credentials survived a restart in the mirror store.
		s.state.Login(sessionID, claims)
	}
	return &auth.Principal{SessionID: sessionID, Token: token, Claims: claims}, nil
}

// ResolveBearer builds a stateless principal from a bearer token.
func (s *AuthService) ResolveBearer(token string) (*auth.Principal, error) {
	claims, err := auth.DecodeClaims(token)
	if err != nil {
		return nil, err
	}
	if claims.Expired(s.now()) {
		return nil, auth.ErrTokenExpired
	}
	return &auth.Principal{Token: token, Claims: claims}, nil
}

// Logout clears the caller's credentials. Bearer callers have nothing to clear.
func (s *AuthService) Logout(ctx context.Context, p *auth.Principal) error {
	if p == nil || p.SessionID == "" {
		return nil
	}
	s.clear(ctx, p.SessionID, auth.ReasonLogout)
	return nil
}

func (s *AuthService) clear(ctx context.Context, sessionID string, reason auth.Reason) {
	if err := s.store.Delete(ctx, sessionID); err != nil {
		customLog.Warnf("AuthService: failed to delete credentials of session %s: %v", sessionID, err)
	}
	if reason == auth.ReasonExpired {
		s.state.Expire(sessionID)
	} else {
		s.state.Logout(sessionID)
	}
}

// Refresh silently swaps the caller's token for a new one. When the remote
// API refuses, the stored credentials are cleared; transport failures leave
// them in place.
func (s *AuthService) Refresh(ctx context.Context, p *auth.Principal) (*auth.Principal, error) {
	token, err := s.api.RefreshToken(ctx, p.Token)
	if err != nil {
		if !errors.Is(err, upstream.ErrUnavailable) && p.SessionID != "" {
			customLog.Warnf("AuthService: refresh refused for session %s: %v", p.SessionID, err)
			s.clear(ctx, p.SessionID, auth.ReasonLogout)
		}
		return nil, err
	}

	claims, err := auth.DecodeClaims(token)
	if err != nil {
		return nil, fmt.Errorf("refresh returned an unusable token: %w", err)
	}
	if p.SessionID != "" {
		if err := s.store.Save(ctx, p.SessionID, token, claims.Expiry()); err != nil {
			return nil, fmt.Errorf("failed to store credentials: %w", err)
		}
		s.state.Refresh(p.SessionID, claims)
	}
	return &auth.Principal{SessionID: p.SessionID, Token: token, Claims: claims}, nil
}

// Register validates the sign-up form and its uploads, then creates the
// account upstream. userType selects the craftsman or individual rules.
func (s *AuthService) Register(ctx context.Context, form core.FormState, userType string) error {
	errs := core.RegistrationRules.Validate(form, core.Flags{UserType: userType})
	checkRegistrationUploads(form, userType, errs)
	if !errs.Valid() {
		return errs
	}

	release, err := s.guard.Begin("register:" + strings.ToLower(form.String(core.FieldEmail)))
	if err != nil {
		return err
	}
	defer release()

	return s.api.Register(ctx, buildRegisterRequest(form, userType))
}

func checkRegistrationUploads(form core.FormState, userType string, errs core.ValidationErrors) {
	if pic := form.Attachment(core.FieldProfilePicture); pic != nil {
		if err := core.CheckUpload(core.UploadProfilePicture, pic.ContentType); err != nil {
			errs[core.FieldProfilePicture] = err.Error()
		}
	}
	if doc := form.Attachment(core.FieldIdentificationDocument); doc != nil {
		if err := core.CheckUpload(core.UploadDocument, doc.ContentType); err != nil {
			errs[core.FieldIdentificationDocument] = err.Error()
		}
	}
	if userType == domain.UserTypeCraftsman {
		if _, rejected := core.StageUploads(core.UploadCertificate, form.Attachments(core.FieldCertificates)); rejected > 0 {
			errs[core.FieldCertificates] = core.ErrDocumentType.Error()
		}
	}
}

func buildRegisterRequest(form core.FormState, userType string) *upstream.RegisterRequest {
	return &upstream.RegisterRequest{
		FirstName:   form.String(core.FieldFirstName),
		LastName:    form.String(core.FieldLastName),
		Email:       form.String(core.FieldEmail),
		Password:    form.Raw(core.FieldPassword),
		PhoneNumber: form.String(core.FieldPhoneNumber),
		DateOfBirth: form.String(core.FieldDateOfBirth),
		Address: upstream.Address{
			Street:  form.String(core.FieldAddressStreet),
			City:    form.String(core.FieldAddressCity),
			State:   form.String(core.FieldAddressState),
			ZipCode: form.String(core.FieldAddressZipCode),
			Country: form.String(core.FieldAddressCountry),
		},
		UserType:                 userType,
		CompanyName:              form.String(core.FieldCompanyName),
		VatOrKvKNumber:           form.String(core.FieldVatOrKvKNumber),
		ProjectInterest:          form.Strings(core.FieldProjectInterest),
		OtherProjectInterest:     form.String(core.FieldOtherProjectInterest),
		ProfilePicture:           form.Attachment(core.FieldProfilePicture),
		IdentificationDocument:   form.Attachment(core.FieldIdentificationDocument),
		ProfessionalCertificates: form.Attachments(core.FieldCertificates),
	}
}

// RequestPasswordReset mails a reset code.
func (s *AuthService) RequestPasswordReset(ctx context.Context, form core.FormState) (string, error) {
	if errs := core.PasswordResetRequestRules.Validate(form, core.Flags{}); !errs.Valid() {
		return "", errs
	}
	return s.api.SendPasswordResetCode(ctx, form.String(core.FieldEmail))
}

// ResetPassword sets a new password with the mailed code.
func (s *AuthService) ResetPassword(ctx context.Context, form core.FormState) (string, error) {
	if errs := core.PasswordResetRules.Validate(form, core.Flags{}); !errs.Valid() {
		return "", errs
	}
	email := form.String(core.FieldEmail)
	release, err := s.guard.Begin("reset:" + strings.ToLower(email))
	if err != nil {
		return "", err
	}
	defer release()
	return s.api.ResetPasswordWithCode(ctx, email, form.String(core.FieldVerificationCode), form.Raw(core.FieldNewPassword))
}
