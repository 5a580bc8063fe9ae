// internal/upstream/sessions.go
package upstream

import (
	"context"
	"net/http"
	"net/url"

	"github.com/AbdulAhad210904/Pro-connect/internal/domain"
)

// ListSessions returns the devices currently signed in to the account.
func (c *Client) ListSessions(ctx context.Context, token string) ([]domain.Session, error) {
	var resp struct {
		Sessions []domain.Session `json:"sessions"`
	}
	if err := c.doJSON(ctx, http.MethodGet, sessionsPath+"/connected-browsers", token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Sessions, nil
}

// DeleteSession signs a device out.
func (c *Client) DeleteSession(ctx context.Context, token, sessionID string) (string, error) {
	return c.status(ctx, http.MethodDelete, sessionsPath+"/"+url.PathEscape(sessionID), token, nil)
}
