// api/middleware/error_handler.go
package middleware

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10" // Import validator for binding errors
	"github.com/sirupsen/logrus"

	"github.com/AbdulAhad210904/Pro-connect/api/models"
	"github.com/AbdulAhad210904/Pro-connect/internal/auth"
	"github.com/AbdulAhad210904/Pro-connect/internal/core"
	"github.com/AbdulAhad210904/Pro-connect/internal/payments"
	"github.com/AbdulAhad210904/Pro-connect/internal/service"
	"github.com/AbdulAhad210904/Pro-connect/internal/storage"
	"github.com/AbdulAhad210904/Pro-connect/internal/upstream"
)

// ErrorHandler creates a Gin middleware for centralized error handling.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Process request using subsequent handlers
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		// We only handle the last error for the response.
		err := c.Errors.Last().Err
		statusCode, body := mapError(err)

		entry := customLog.WithFields(logrus.Fields{
			"request_id": c.GetString(RequestIDKey),
			"path":       c.FullPath(),
			"status":     statusCode,
		})
		if statusCode >= http.StatusInternalServerError {
			entry.Errorf("[ErrorHandler] %v (%T)", err, err)
		} else {
			entry.Infof("[ErrorHandler] %v", err)
		}

		if !c.Writer.Written() {
			c.AbortWithStatusJSON(statusCode, body)
		} else {
			entry.Warn("[ErrorHandler] Response already written before handling error.")
		}
	}
}

// mapError turns an error attached by a handler into a status and body.
func mapError(err error) (int, gin.H) {
	var (
		formErrs       core.ValidationErrors
		validationErrs validator.ValidationErrors
		apiErr         *upstream.APIError
	)

	switch {
	case errors.As(err, &formErrs):
		return http.StatusBadRequest, gin.H{"error": "Validation failed. Please check your input.", "fields": formErrs}

	case errors.As(err, &validationErrs):
		fields := make(map[string]string, len(validationErrs))
		for _, fe := range validationErrs {
			fields[fe.Field()] = fe.Tag()
		}
		return http.StatusBadRequest, gin.H{"error": "Validation failed. Please check your input.", "fields": fields}

	case errors.Is(err, models.ErrBadRequest),
		errors.Is(err, core.ErrInvalidBudgetToken),
		errors.Is(err, payments.ErrUnknownPlan):
		return http.StatusBadRequest, gin.H{"error": err.Error()}

	case errors.Is(err, auth.ErrTokenExpired):
		return http.StatusUnauthorized, gin.H{"error": "Authentication token has expired."}
	case errors.Is(err, auth.ErrTokenMalformed),
		errors.Is(err, auth.ErrTokenClaimsInvalid):
		return http.StatusUnauthorized, gin.H{"error": "Invalid or malformed authentication token."}
	case errors.Is(err, auth.ErrTokenMissing),
		errors.Is(err, auth.ErrUnauthorized),
		errors.Is(err, storage.ErrEmptySession):
		return http.StatusUnauthorized, gin.H{"error": "Authentication required."}

	case errors.Is(err, service.ErrSubmissionInFlight):
		return http.StatusConflict, gin.H{"error": err.Error()}

	case errors.As(err, &apiErr):
		// 4xx answers of the remote API are the caller's problem and keep
		// their status; anything else is a bad gateway.
		if apiErr.Status >= 400 && apiErr.Status < 500 {
			return apiErr.Status, gin.H{"error": apiErr.Message}
		}
		return http.StatusBadGateway, gin.H{"error": apiErr.Message}

	case errors.Is(err, context.DeadlineExceeded), isTimeout(err):
		return http.StatusGatewayTimeout, gin.H{"error": "The request timed out."}

	case errors.Is(err, upstream.ErrUnavailable),
		errors.Is(err, upstream.ErrMalformedResponse):
		return http.StatusBadGateway, gin.H{"error": "The service is temporarily unavailable. Please try again later."}

	default:
		return http.StatusInternalServerError, gin.H{"error": "An unexpected internal server error occurred."}
	}
}

// isTimeout reports a transport timeout, e.g. the upstream client's own
// deadline, which does not unwrap to context.DeadlineExceeded.
func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
