// api/handlers/auth_handler.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AbdulAhad210904/Pro-connect/api/middleware"
	"github.com/AbdulAhad210904/Pro-connect/api/models"
	"github.com/AbdulAhad210904/Pro-connect/config"
	"github.com/AbdulAhad210904/Pro-connect/internal/domain"
	"github.com/AbdulAhad210904/Pro-connect/internal/logger"
	"github.com/AbdulAhad210904/Pro-connect/internal/service"
	"github.com/AbdulAhad210904/Pro-connect/internal/upstream"
)

var (
	customLog = logger.NewLogger()
)

// AuthHandler holds dependencies for authentication handlers.
type AuthHandler struct {
	Auth *service.AuthService
	Cfg  *config.Config
}

// NewAuthHandler creates a new AuthHandler with dependencies.
func NewAuthHandler(authService *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		Auth: authService,
		Cfg:  cfg,
	}
}

// Login handles user login requests and opens a gateway session on success.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		customLog.Warnf("Login binding error: %v", err)
		_ = c.Error(fmt.Errorf("%w: %v", models.ErrBadRequest, err))
		return
	}

	principal, err := h.Auth.Login(c.Request.Context(), req.Form())
	if err != nil {
		customLog.Warnf("Login failed for email %s: %v", req.Email, err)
		_ = c.Error(err) // Let middleware handle
		return
	}

	middleware.SetSessionCookie(c, principal.SessionID, principal.Claims.Expiry(), h.Cfg.CookieSecure)
	c.JSON(http.StatusOK, models.LoginResponse{
		Message:   "Logged in successfully",
		SessionID: principal.SessionID,
		User:      models.NewUserSummary(principal.Claims, time.Now()),
	})
}

// Register handles multipart sign-up requests for both account types.
func (h *AuthHandler) Register(c *gin.Context) {
	form, err := bindForm(c)
	if err != nil {
		customLog.Warnf("Register binding error: %v", err)
		_ = c.Error(err)
		return
	}

	userType := form.String("userType")
	if userType != domain.UserTypeCraftsman && userType != domain.UserTypeIndividual {
		_ = c.Error(fmt.Errorf("%w: userType must be '%s' or '%s'", models.ErrBadRequest, domain.UserTypeCraftsman, domain.UserTypeIndividual))
		return
	}

	if err := h.Auth.Register(c.Request.Context(), form, userType); err != nil {
		customLog.Warnf("Failed to register %s: %v", form.String("email"), err)
		_ = c.Error(err)
		return
	}

	customLog.Printf("Successfully registered %s user with email %s", userType, form.String("email"))
	c.JSON(http.StatusCreated, models.MessageResponse{Message: "Registration successful"})
}

// Logout ends the caller's gateway session.
func (h *AuthHandler) Logout(c *gin.Context) {
	p, err := middleware.CurrentPrincipal(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := h.Auth.Logout(c.Request.Context(), p); err != nil {
		_ = c.Error(err)
		return
	}
	middleware.ClearSessionCookie(c)
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Logged out successfully"})
}

// Refresh swaps the caller's token for a fresh one.
func (h *AuthHandler) Refresh(c *gin.Context) {
	p, err := middleware.CurrentPrincipal(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	refreshed, err := h.Auth.Refresh(c.Request.Context(), p)
	if err != nil {
		if p.SessionID != "" && !errors.Is(err, upstream.ErrUnavailable) {
			middleware.ClearSessionCookie(c)
		}
		_ = c.Error(err)
		return
	}

	resp := models.LoginResponse{
		Message: "Token refreshed",
		User:    models.NewUserSummary(refreshed.Claims, time.Now()),
	}
	if refreshed.SessionID != "" {
		middleware.SetSessionCookie(c, refreshed.SessionID, refreshed.Claims.Expiry(), h.Cfg.CookieSecure)
		resp.SessionID = refreshed.SessionID
	}
	c.JSON(http.StatusOK, resp)
}

// Me returns the display claims of the caller.
func (h *AuthHandler) Me(c *gin.Context) {
	p, err := middleware.CurrentPrincipal(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.NewUserSummary(p.Claims, time.Now()))
}

// RequestPasswordReset mails a reset code.
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req models.PasswordResetCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(fmt.Errorf("%w: %v", models.ErrBadRequest, err))
		return
	}
	msg, err := h.Auth.RequestPasswordReset(c.Request.Context(), req.Form())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: messageOr(msg, "Verification code sent")})
}

// ResetPassword sets a new password with the mailed code.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(fmt.Errorf("%w: %v", models.ErrBadRequest, err))
		return
	}
	msg, err := h.Auth.ResetPassword(c.Request.Context(), req.Form())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: messageOr(msg, "Password updated successfully")})
}

func messageOr(msg, fallback string) string {
	if msg == "" {
		return fallback
	}
	return msg
}
