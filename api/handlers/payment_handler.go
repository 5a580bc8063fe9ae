// api/handlers/payment_handler.go
package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/AbdulAhad210904/Pro-connect/api/middleware"
	"github.com/AbdulAhad210904/Pro-connect/api/models"
	"github.com/AbdulAhad210904/Pro-connect/internal/service"
)

// PaymentHandler serves the pricing and checkout pages.
type PaymentHandler struct {
	Payments *service.PaymentService
}

func NewPaymentHandler(payments *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{Payments: payments}
}

// Plans lists the pricing cards. canSubscribe only drives the buttons; the
// remote API rejects checkouts it does not allow.
func (h *PaymentHandler) Plans(c *gin.Context) {
	p, err := middleware.CurrentPrincipal(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"plans":        models.NewPlanResponses(h.Payments.Plans()),
		"canSubscribe": p.Claims.IsCraftsman(),
	})
}

// Checkout starts a payment and answers with the provider checkout URL.
func (h *PaymentHandler) Checkout(c *gin.Context) {
	p, err := middleware.CurrentPrincipal(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		customLog.Warnf("Checkout binding error: %v", err)
		var validationErrs validator.ValidationErrors
		if !errors.As(err, &validationErrs) {
			err = fmt.Errorf("%w: %v", models.ErrBadRequest, err)
		}
		_ = c.Error(err)
		return
	}

	resp, err := h.Payments.Checkout(c.Request.Context(), p, req.Plan, req.Period, req.PaymentMethod)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, models.CheckoutResponse{PaymentID: resp.PaymentID, CheckoutURL: resp.CheckoutURL})
}

// Status returns a payment for the return page of the provider.
func (h *PaymentHandler) Status(c *gin.Context) {
	p, err := middleware.CurrentPrincipal(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	payment, err := h.Payments.Status(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

// Retry starts a new checkout for a failed payment. The body is optional.
func (h *PaymentHandler) Retry(c *gin.Context) {
	p, err := middleware.CurrentPrincipal(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	var req models.RetryRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		_ = c.Error(fmt.Errorf("%w: %v", models.ErrBadRequest, err))
		return
	}

	resp, err := h.Payments.Retry(c.Request.Context(), p, c.Param("id"), req.PaymentMethod)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, models.CheckoutResponse{PaymentID: resp.PaymentID, CheckoutURL: resp.CheckoutURL})
}

// Active returns the caller's running subscription, or null.
func (h *PaymentHandler) Active(c *gin.Context) {
	p, err := middleware.CurrentPrincipal(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	payment, err := h.Payments.ActiveSubscription(c.Request.Context(), p)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": payment != nil, "payment": payment})
}
