// internal/upstream/projects.go
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/AbdulAhad210904/Pro-connect/internal/core"
	"github.com/AbdulAhad210904/Pro-connect/internal/domain"
)

// CreateProjectRequest is the multipart payload of a new project. The id is
// assigned upstream.
type CreateProjectRequest struct {
	Title         string
	Description   string
	Category      string
	SubCategory   string
	Budget        domain.Budget
	Location      domain.Location
	Deadline      string
	PostedBy      string
	ProjectImages []*core.Attachment
}

func formatAmount(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// CreateProject posts a project using bracket notation for nested keys.
func (c *Client) CreateProject(ctx context.Context, token string, r *CreateProjectRequest) (*domain.Project, error) {
	b := newFormBuilder()
	b.field("title", r.Title)
	b.field("description", r.Description)
	b.field("category", r.Category)
	b.optional("subCategory", r.SubCategory)
	b.field("budget[min]", formatAmount(r.Budget.Min))
	b.field("budget[max]", formatAmount(r.Budget.Max))
	b.optional("budget[currency]", r.Budget.Currency)
	b.field("location[city]", r.Location.City)
	b.optional("location[state]", r.Location.State)
	b.field("location[country]", r.Location.Country)
	b.field("deadline", r.Deadline)
	b.field("postedBy", r.PostedBy)
	for _, img := range r.ProjectImages {
		b.file("projectImages", img)
	}

	body, contentType, err := b.finish()
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPost, projectsPath+"/create", token, body, contentType)
	if err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := c.do(req, &raw); err != nil {
		return nil, err
	}
	return decodeProject(raw)
}

// decodeProject accepts {"project": {...}} or the bare project object. A
// body without a project id is malformed.
func decodeProject(raw json.RawMessage) (*domain.Project, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, fmt.Errorf("%w: create response has no project", ErrMalformedResponse)
	}
	var wrapped struct {
		Project *domain.Project `json:"project"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if wrapped.Project != nil && wrapped.Project.ID != "" {
		return wrapped.Project, nil
	}
	var project domain.Project
	if err := json.Unmarshal(raw, &project); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if project.ID == "" {
		return nil, fmt.Errorf("%w: create response has no project id", ErrMalformedResponse)
	}
	return &project, nil
}

// ListProjects fetches the craftsman view of open projects, filtered
// server-side by the given criteria.
func (c *Client) ListProjects(ctx context.Context, token string, criteria core.FilterCriteria) ([]domain.Project, error) {
	path := projectsPath + "/craftsman-view"
	if q := criteria.Values(); len(q) > 0 {
		path += "?" + q.Encode()
	}
	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, path, token, nil, &raw); err != nil {
		return nil, err
	}
	return decodeProjects(raw)
}

// decodeProjects accepts a bare array or {"projects": [...]}.
func decodeProjects(raw json.RawMessage) ([]domain.Project, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}
	var projects []domain.Project
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &projects); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		return projects, nil
	}
	var wrapped struct {
		Projects []domain.Project `json:"projects"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return wrapped.Projects, nil
}

// CheckCanApply returns the contacts left on the craftsman's plan. A 403
// answer is reported as ErrContactLimitReached.
func (c *Client) CheckCanApply(ctx context.Context, token, craftsmanID string) (int, error) {
	var resp struct {
		ContactsRemaining int `json:"contactsRemaining"`
	}
	err := c.doJSON(ctx, http.MethodPost, projectsPath+"/check-can-apply", token,
		map[string]string{"craftsmanId": craftsmanID}, &resp)
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusForbidden {
		apiErr.Err = ErrContactLimitReached
		return 0, apiErr
	}
	if err != nil {
		return 0, err
	}
	return resp.ContactsRemaining, nil
}

// ApplyToProject sends a proposal for the project.
func (c *Client) ApplyToProject(ctx context.Context, token, projectID string, p domain.Proposal) error {
	path := projectsPath + "/" + url.PathEscape(projectID) + "/apply"
	return c.doJSON(ctx, http.MethodPost, path, token, p, nil)
}
