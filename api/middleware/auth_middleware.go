// api/middleware/auth_middleware.go
package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AbdulAhad210904/Pro-connect/internal/auth"
)

const (
	// SessionCookie carries the opaque gateway session id.
	SessionCookie = "session"
	principalKey  = "principal"
)

// bearerToken extracts the token of an "Authorization: Bearer" header.
// ok is false when the header is absent.
func bearerToken(c *gin.Context) (token string, ok bool, err error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false, nil
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", true, fmt.Errorf("%w: authorization header format must be Bearer {token}", auth.ErrTokenMalformed)
	}
	return strings.TrimSpace(parts[1]), true, nil
}

// SetSessionCookie hands the session id to the browser until the token
// expires. secure should be true behind TLS.
func SetSessionCookie(c *gin.Context, sessionID string, expiresAt time.Time, secure bool) {
	maxAge := 0
	if !expiresAt.IsZero() {
		maxAge = int(time.Until(expiresAt).Seconds())
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, sessionID, maxAge, "/", "", secure, true)
}

// ClearSessionCookie removes the session cookie from the browser.
func ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}

// CurrentPrincipal returns the caller set by CombinedAuthMiddleware.
func CurrentPrincipal(c *gin.Context) (*auth.Principal, error) {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil, auth.ErrUnauthorized
	}
	p, ok := v.(*auth.Principal)
	if !ok || p == nil || p.Claims == nil {
		return nil, auth.ErrUnauthorized
	}
	return p, nil
}
