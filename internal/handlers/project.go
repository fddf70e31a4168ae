package handlers

import (
	"net/http"
	"strings"

	"bugbounty-tracker/internal/models"

	"github.com/gin-gonic/gin"
)

//
// WEB
//

func (h *Handler) ListProjects(c *gin.Context) {
	projects, err := h.store.Projects()
	if err != nil {
		h.webError(c, err, "Failed to load projects")
		return
	}

	h.render(c, http.StatusOK, "projects_list.html", gin.H{
		"projects": projects,
	})
}

func (h *Handler) ShowProject(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.String(http.StatusBadRequest, "Invalid project ID")
		return
	}

	project, err := h.store.Project(id)
	if err != nil {
		h.webError(c, err, "Project not found")
		return
	}
	targets, err := h.store.ProjectTargetsWithProgress(id)
	if err != nil {
		h.webError(c, err, "Failed to load targets")
		return
	}

	h.render(c, http.StatusOK, "project_detail.html", gin.H{
		"project": project,
		"targets": targets,
	})
}

func (h *Handler) CreateProject(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	description := strings.TrimSpace(c.PostForm("description"))
	status := models.ProjectStatus(c.DefaultPostForm("status", string(models.ProjectActive)))

	if name == "" {
		setFlash(c, flashError, "Project name is required")
		c.Redirect(http.StatusFound, "/projects")
		return
	}
	if !status.Valid() {
		setFlash(c, flashError, "Invalid project status")
		c.Redirect(http.StatusFound, "/projects")
		return
	}

	project := models.Project{Name: name, Description: description, Status: status}
	if err := h.store.CreateProject(&project); err != nil {
		h.webError(c, err, "Failed to save project")
		return
	}

	setFlash(c, flashMessage, "Project created successfully")
	c.Redirect(http.StatusFound, "/projects")
}

func (h *Handler) UpdateProject(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.String(http.StatusBadRequest, "Invalid project ID")
		return
	}

	project, err := h.store.ProjectRecord(id)
	if err != nil {
		h.webError(c, err, "Project not found")
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		setFlash(c, flashError, "Project name is required")
		c.Redirect(http.StatusFound, "/projects")
		return
	}
	status := models.ProjectStatus(c.DefaultPostForm("status", string(project.Status)))
	if !status.Valid() {
		setFlash(c, flashError, "Invalid project status")
		c.Redirect(http.StatusFound, "/projects")
		return
	}

	project.Name = name
	project.Description = strings.TrimSpace(c.PostForm("description"))
	project.Status = status

	if err := h.store.UpdateProject(project); err != nil {
		h.webError(c, err, "Failed to save project")
		return
	}

	setFlash(c, flashMessage, "Project updated successfully")
	c.Redirect(http.StatusFound, "/projects")
}

func (h *Handler) DeleteProject(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.String(http.StatusBadRequest, "Invalid project ID")
		return
	}

	if err := h.store.DeleteProject(id); err != nil {
		h.webError(c, err, "Project not found")
		return
	}

	setFlash(c, flashMessage, "Project deleted successfully")
	c.Redirect(http.StatusFound, "/projects")
}

//
// API
//

type projectRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func (h *Handler) APIListProjects(c *gin.Context) {
	projects, err := h.store.Projects()
	if err != nil {
		h.apiError(c, err, "Failed to load projects")
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *Handler) APIGetProject(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	project, err := h.store.Project(id)
	if err != nil {
		h.apiError(c, err, "Project not found")
		return
	}
	targets, err := h.store.ProjectTargetsWithProgress(id)
	if err != nil {
		h.apiError(c, err, "Failed to load targets")
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": project, "targets": targets})
}

func (h *Handler) APICreateProject(c *gin.Context) {
	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	status := models.ProjectStatus(req.Status)
	if req.Status == "" {
		status = models.ProjectActive
	}
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project status"})
		return
	}

	project := models.Project{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Status:      status,
	}
	if err := h.store.CreateProject(&project); err != nil {
		h.apiError(c, err, "Failed to save project")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "id": project.ID})
}

func (h *Handler) APIUpdateProject(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	var req projectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	project, err := h.store.ProjectRecord(id)
	if err != nil {
		h.apiError(c, err, "Project not found")
		return
	}

	project.Name = strings.TrimSpace(req.Name)
	project.Description = strings.TrimSpace(req.Description)
	if req.Status != "" {
		status := models.ProjectStatus(req.Status)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project status"})
			return
		}
		project.Status = status
	}

	if err := h.store.UpdateProject(project); err != nil {
		h.apiError(c, err, "Failed to save project")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) APIDeleteProject(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project ID"})
		return
	}

	if err := h.store.DeleteProject(id); err != nil {
		h.apiError(c, err, "Project not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
