// api/models/project_models.go
package models

import (
	"errors"

	"github.com/AbdulAhad210904/Pro-connect/internal/core"
	"github.com/AbdulAhad210904/Pro-connect/internal/domain"
)

// ErrBadRequest marks malformed request input that never reached a service.
var ErrBadRequest = errors.New("bad request")

// ApplyRequest is a craftsman's proposal for a project.
type ApplyRequest struct {
	Message       string  `json:"message"`
	ProposedPrice float64 `json:"proposedPrice"`
	Availability  string  `json:"availability"`
}

func (r ApplyRequest) Proposal() domain.Proposal {
	return domain.Proposal{Message: r.Message, ProposedPrice: r.ProposedPrice, Availability: r.Availability}
}

// ProjectListResponse is the browse page: the filtered projects plus the
// criteria and view toggles that produced them.
type ProjectListResponse struct {
	Projects []domain.Project  `json:"projects"`
	Total    int               `json:"total"`
	HasMore  bool              `json:"hasMore"`
	View     core.ViewMode     `json:"view"`
	ShowAll  bool              `json:"showAll"`
	Filters  map[string]string `json:"filters"`
}

func NewProjectListResponse(v core.BrowserView) ProjectListResponse {
	filters := map[string]string{}
	for key, values := range v.Criteria.Values() {
		if len(values) > 0 {
			filters[key] = values[0]
		}
	}
	projects := v.Projects
	if projects == nil {
		projects = []domain.Project{}
	}
	return ProjectListResponse{
		Projects: projects,
		Total:    v.Total,
		HasMore:  v.HasMore,
		View:     v.Mode,
		ShowAll:  v.ShowAll,
		Filters:  filters,
	}
}
