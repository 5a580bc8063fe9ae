// internal/service/project_service.go
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/AbdulAhad210904/Pro-connect/internal/auth"
	"github.com/AbdulAhad210904/Pro-connect/internal/core"
	"github.com/AbdulAhad210904/Pro-connect/internal/domain"
	"github.com/AbdulAhad210904/Pro-connect/internal/upstream"
)

// ProjectAPI is the part of the remote API that serves projects.
type ProjectAPI interface {
	CreateProject(ctx context.Context, token string, r *upstream.CreateProjectRequest) (*domain.Project, error)
	ListProjects(ctx context.Context, token string, criteria core.FilterCriteria) ([]domain.Project, error)
	CheckCanApply(ctx context.Context, token, craftsmanID string) (int, error)
	ApplyToProject(ctx context.Context, token, projectID string, p domain.Proposal) error
}

// CanApply is the apply-button state of a craftsman. A reached contact limit
// is a state, not an error.
type CanApply struct {
	CanApply          bool `json:"canApply"`
	ContactsRemaining *int `json:"contactsRemaining,omitempty"`
}

type ProjectService struct {
	api   ProjectAPI
	guard *SubmitGuard
}

func NewProjectService(api ProjectAPI) *ProjectService {
	return &ProjectService{api: api, guard: NewSubmitGuard()}
}

// Post validates the project form and its images and creates the project
// on behalf of the caller.
func (s *ProjectService) Post(ctx context.Context, p *auth.Principal, form core.FormState) (*domain.Project, error) {
	errs := core.ProjectRules.Validate(form, core.Flags{})
	images, rejected := core.StageUploads(core.UploadProjectImage, form.Attachments(core.FieldProjectImages))
	if rejected > 0 {
		errs[core.FieldProjectImages] = core.ErrProjectImage.Error()
	}
	if !errs.Valid() {
		return nil, errs
	}
	if p.Claims.UserID == "" {
		return nil, auth.ErrTokenClaimsInvalid
	}

	release, err := s.guard.Begin(guardKey("post-project", p.SessionID, p.Claims.UserID))
	if err != nil {
		return nil, err
	}
	defer release()

	min, _ := form.Float(core.FieldBudgetMin)
	max, _ := form.Float(core.FieldBudgetMax)
	currency := form.String(core.FieldBudgetCurrency)
	if currency == "" {
		currency = "EUR"
	}
	return s.api.CreateProject(ctx, p.Token, &upstream.CreateProjectRequest{
		Title:       form.String(core.FieldTitle),
		Description: form.String(core.FieldDescription),
		Category:    form.String(core.FieldCategory),
		SubCategory: form.String(core.FieldSubCategory),
		Budget:      domain.Budget{Min: min, Max: max, Currency: currency},
		Location: domain.Location{
			City:    form.String(core.FieldLocationCity),
			State:   form.String(core.FieldLocationState),
			Country: form.String(core.FieldLocationCountry),
		},
		Deadline:      form.String(core.FieldDeadline),
		PostedBy:      p.Claims.UserID,
		ProjectImages: images,
	})
}

// Browse fetches the craftsman view with criteria forwarded upstream, then
// applies the same criteria locally.
func (s *ProjectService) Browse(ctx context.Context, p *auth.Principal, criteria core.FilterCriteria, mode core.ViewMode, showAll bool) (core.BrowserView, error) {
	browser := core.NewBrowser(func(ctx context.Context, c core.FilterCriteria) ([]domain.Project, error) {
		return s.api.ListProjects(ctx, p.Token, c)
	}, 0)
	browser.SetViewMode(mode)
	browser.SetShowAll(showAll)
	err := browser.SetCriteria(ctx, criteria)
	return browser.View(), err
}

// CheckCanApply reports whether the caller may contact another project owner.
func (s *ProjectService) CheckCanApply(ctx context.Context, p *auth.Principal) (*CanApply, error) {
	remaining, err := s.api.CheckCanApply(ctx, p.Token, p.Claims.UserID)
	if errors.Is(err, upstream.ErrContactLimitReached) {
		return &CanApply{CanApply: false}, nil
	}
	if err != nil {
		return nil, err
	}
	return &CanApply{CanApply: true, ContactsRemaining: &remaining}, nil
}

// Apply sends a proposal for projectID.
func (s *ProjectService) Apply(ctx context.Context, p *auth.Principal, projectID string, proposal domain.Proposal) error {
	if strings.TrimSpace(proposal.Message) == "" {
		return core.ValidationErrors{"message": "Message is required"}
	}
	if proposal.ProposedPrice < 0 {
		return core.ValidationErrors{"proposedPrice": "Proposed price cannot be negative"}
	}
	release, err := s.guard.Begin(guardKey("apply:"+projectID, p.SessionID, p.Claims.UserID))
	if err != nil {
		return err
	}
	defer release()
	return s.api.ApplyToProject(ctx, p.Token, projectID, proposal)
}
