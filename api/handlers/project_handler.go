// api/handlers/project_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AbdulAhad210904/Pro-connect/api/middleware"
	"github.com/AbdulAhad210904/Pro-connect/api/models"
	"github.com/AbdulAhad210904/Pro-connect/internal/core"
	"github.com/AbdulAhad210904/Pro-connect/internal/service"
)

// ProjectHandler serves the project marketplace.
type ProjectHandler struct {
	Projects *service.ProjectService
}

func NewProjectHandler(projects *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{Projects: projects}
}

// ListProjects handles GET /projects?search=&category=&location=&budget=&date=&view=&showAll=
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	p, err := middleware.CurrentPrincipal(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	query := c.Request.URL.Query()
	criteria, err := core.ParseFilterCriteria(query)
	if err != nil {
		customLog.Warnf("ListProjects: invalid filter parameters: %v", err)
		_ = c.Error(fmt.Errorf("%w: %v", models.ErrBadRequest, err))
		return
	}
	mode, showAll, err := core.ParseViewOptions(query)
	if err != nil {
		_ = c.Error(fmt.Errorf("%w: %v", models.ErrBadRequest, err))
		return
	}

	view, err := h.Projects.Browse(c.Request.Context(), p, *criteria, mode, showAll)
	if err != nil {
		customLog.Warnf("ListProjects: failed to load projects for user %s: %v", p.Claims.UserID, err)
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.NewProjectListResponse(view))
}

// CreateProject handles the multipart post-a-project form.
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	p, err := middleware.CurrentPrincipal(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	form, err := bindForm(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	project, err := h.Projects.Post(c.Request.Context(), p, form)
	if err != nil {
		customLog.Warnf("CreateProject failed for user %s: %v", p.Claims.UserID, err)
		_ = c.Error(err)
		return
	}
	customLog.Printf("Project %s posted by user %s", project.ID, p.Claims.UserID)
	c.JSON(http.StatusCreated, gin.H{"message": "Project posted successfully", "project": project})
}

// CanApply reports the caller's apply-button state.
func (h *ProjectHandler) CanApply(c *gin.Context) {
	p, err := middleware.CurrentPrincipal(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	state, err := h.Projects.CheckCanApply(c.Request.Context(), p)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// Apply sends a proposal for the project in the path.
func (h *ProjectHandler) Apply(c *gin.Context) {
	p, err := middleware.CurrentPrincipal(c)
	if err != nil {
		_ = c.Error(err)
		return
	}
	projectID := strings.TrimSpace(c.Param("id"))
	if projectID == "" {
		_ = c.Error(fmt.Errorf("%w: project id is required", models.ErrBadRequest))
		return
	}

	var req models.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(fmt.Errorf("%w: %v", models.ErrBadRequest, err))
		return
	}
	if err := h.Projects.Apply(c.Request.Context(), p, projectID, req.Proposal()); err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Application sent successfully"})
}
