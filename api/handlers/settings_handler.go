// api/handlers/settings_handler.go
package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/AbdulAhad210904/Pro-connect/api/middleware"
	"github.com/AbdulAhad210904/Pro-connect/api/models"
	"github.com/AbdulAhad210904/Pro-connect/internal/auth"
	"github.com/AbdulAhad210904/Pro-connect/internal/service"
)

// SettingsHandler serves the account settings page.
type SettingsHandler struct {
	Settings *service.SettingsService
}

func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{Settings: settings}
}

// Overview handles GET /settings?showAll=
func (h *SettingsHandler) Overview(c *gin.Context) {
	p, err := middleware.CurrentPrincipal(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	showAll := false
	if raw := c.Query("showAll"); raw != "" {
		if showAll, err = strconv.ParseBool(raw); err != nil {
			_ = c.Error(fmt.Errorf("%w: invalid 'showAll' parameter", models.ErrBadRequest))
			return
		}
	}
	ov, err := h.Settings.Overview(c.Request.Context(), p, showAll)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ov)
}

func (h *SettingsHandler) ChangePassword(c *gin.Context) {
	var req models.ChangePasswordRequest
	h.handleForm(c, &req, func(c *gin.Context) (string, error) {
		p, _ := middleware.CurrentPrincipal(c)
		return h.Settings.ChangePassword(c.Request.Context(), p, req.Form())
	}, "Password updated successfully")
}

func (h *SettingsHandler) SendEmailCode(c *gin.Context) {
	p, err := middleware.CurrentPrincipal(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	msg, err := h.Settings.SendEmailCode(c.Request.Context(), p)
	respond(c, msg, err, "Verification code sent")
}

func (h *SettingsHandler) VerifyEmailCode(c *gin.Context) {
	var req models.VerifyCodeRequest
	h.handleForm(c, &req, func(c *gin.Context) (string, error) {
		p, _ := middleware.CurrentPrincipal(c)
		return h.Settings.VerifyEmailCode(c.Request.Context(), p, req.Form())
	}, "Email verified")
}

func (h *SettingsHandler) SendPhoneOTP(c *gin.Context) {
	var req models.PhoneOTPRequest
	h.handleForm(c, &req, func(c *gin.Context) (string, error) {
		p, _ := middleware.CurrentPrincipal(c)
		return h.Settings.SendPhoneOTP(c.Request.Context(), p, req.Form())
	}, "OTP sent")
}

func (h *SettingsHandler) VerifyPhoneOTP(c *gin.Context) {
	var req models.PhoneOTPRequest
	h.handleForm(c, &req, func(c *gin.Context) (string, error) {
		p, _ := middleware.CurrentPrincipal(c)
		return h.Settings.VerifyPhoneOTP(c.Request.Context(), p, req.Form())
	}, "Phone number verified")
}

// DisconnectSession signs out one of the account's devices.
func (h *SettingsHandler) DisconnectSession(c *gin.Context) {
	p, err := middleware.CurrentPrincipal(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	msg, err := h.Settings.DisconnectSession(c.Request.Context(), p, c.Param("id"))
	respond(c, msg, err, "Session disconnected")
}

func (h *SettingsHandler) DisableAccount(c *gin.Context) {
	h.endAccount(c, h.Settings.DisableAccount, "Account disabled")
}

func (h *SettingsHandler) DeleteAccount(c *gin.Context) {
	h.endAccount(c, h.Settings.DeleteAccount, "Account deleted")
}

func (h *SettingsHandler) endAccount(c *gin.Context, action func(context.Context, *auth.Principal) error, done string) {
	p, err := middleware.CurrentPrincipal(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if err := action(c.Request.Context(), p); err != nil {
		_ = c.Error(err)
		return
	}
	customLog.Printf("SettingsHandler: %s for user %s", done, p.Claims.UserID)
	middleware.ClearSessionCookie(c)
	c.JSON(http.StatusOK, models.MessageResponse{Message: done})
}

// handleForm binds a JSON form, checks the caller and runs submit.
func (h *SettingsHandler) handleForm(c *gin.Context, req any, submit func(*gin.Context) (string, error), fallback string) {
	if _, err := middleware.CurrentPrincipal(c); err != nil {
		_ = c.Error(err)
		return
	}
	if err := c.ShouldBindJSON(req); err != nil {
		_ = c.Error(fmt.Errorf("%w: %v", models.ErrBadRequest, err))
		return
	}
	msg, err := submit(c)
	respond(c, msg, err, fallback)
}

func respond(c *gin.Context, msg string, err error, fallback string) {
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: messageOr(msg, fallback)})
}
