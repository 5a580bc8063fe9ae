package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/AbdulAhad210904/Pro-connect/internal/auth"
	"github.com/AbdulAhad210904/Pro-connect/internal/logger"
)

var (
	customLog = logger.NewLogger()
)

// PrincipalResolver turns request credentials into a caller.
type PrincipalResolver interface {
	Resolve(ctx context.Context, sessionID string) (*auth.Principal, error)
	ResolveBearer(token string) (*auth.Principal, error)
}

// CombinedAuthMiddleware accepts either the gateway session cookie or a
// bearer token issued by the remote API. The session cookie wins when both
// are present.
func CombinedAuthMiddleware(resolver PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		var (
			principal *auth.Principal
			authErr   error
			scheme    string
		)

		// --- Try Different Authentication Schemes ---
		if sessionID, err := c.Cookie(SessionCookie); err == nil && sessionID != "" {
			scheme = "session"
			principal, authErr = resolver.Resolve(c.Request.Context(), sessionID)
			if isCredentialError(authErr) {
				// The session is gone for good; stop the browser from sending it.
				ClearSessionCookie(c)
			}
		} else {
			scheme = "bearer"
			token, present, err := bearerToken(c)
			switch {
			case err != nil:
				authErr = err
			case !present:
				authErr = auth.ErrTokenMissing
			default:
				principal, authErr = resolver.ResolveBearer(token)
			}
		}

		// --- Handle Authentication Result ---
		if authErr != nil {
			customLog.Warnf("CombinedAuthMiddleware: Authentication failed (Scheme: %s): %v", scheme, authErr)
			_ = c.Error(authErr) // Let the main ErrorHandler middleware map this to the correct response
			c.Abort()
			return
		}

		customLog.Debugf("CombinedAuthMiddleware: Auth success. UserID: %s (Scheme: %s)", principal.Claims.UserID, scheme)
		c.Set(principalKey, principal)
		c.Set("userId", principal.Claims.UserID)

		c.Next()
	}
}

// isCredentialError reports whether err condemns the credentials themselves,
// as opposed to a storage outage.
func isCredentialError(err error) bool {
	return errors.Is(err, auth.ErrTokenMissing) ||
		errors.Is(err, auth.ErrTokenExpired) ||
		errors.Is(err, auth.ErrTokenMalformed) ||
		errors.Is(err, auth.ErrTokenClaimsInvalid)
}
