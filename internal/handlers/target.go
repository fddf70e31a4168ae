package handlers

import (
	"net/http"
	"strings"

	"bugbounty-tracker/internal/models"
	"bugbounty-tracker/internal/notes"
	"bugbounty-tracker/internal/store"

	"github.com/gin-gonic/gin"
)

//
// WEB
//

func (h *Handler) ListTargets(c *gin.Context) {
	targets, err := h.store.TargetsWithProgress()
	if err != nil {
		h.webError(c, err, "Failed to load targets")
		return
	}
	projects, err := h.store.Projects()
	if err != nil {
		h.webError(c, err, "Failed to load projects")
		return
	}

	h.render(c, http.StatusOK, "targets_list.html", gin.H{
		"targets":  targets,
		"projects": projects,
	})
}

func (h *Handler) ShowTarget(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.String(http.StatusBadRequest, "Invalid target ID")
		return
	}

	target, err := h.store.TargetWithProgress(id)
	if err != nil {
		h.webError(c, err, "Target not found")
		return
	}
	rows, err := h.store.TargetChecklist(id)
	if err != nil {
		h.webError(c, err, "Failed to load checklist")
		return
	}

	h.render(c, http.StatusOK, "target_detail.html", gin.H{
		"target":    target,
		"checklist": groupChecklist(rows),
	})
}

// checklistGroup mirrors the by-category grouping of the target detail
// page: every entry, noted or not.
type checklistGroup struct {
	CategoryID   uint
	CategoryName string
	Items        []models.ChecklistRow
}

func groupChecklist(rows []models.ChecklistRow) []checklistGroup {
	var groups []checklistGroup
	index := map[uint]int{}
	for _, row := range rows {
		// surface legacy un-normalized notes consistently
		row.Notes = notes.Normalize(row.Notes)

		i, ok := index[row.CategoryID]
		if !ok {
			i = len(groups)
			index[row.CategoryID] = i
			groups = append(groups, checklistGroup{
				CategoryID:   row.CategoryID,
				CategoryName: row.CategoryName,
			})
		}
		groups[i].Items = append(groups[i].Items, row)
	}
	return groups
}

func (h *Handler) CreateTarget(c *gin.Context) {
	projectID, ok := postFormUint(c, "project_id")
	if !ok {
		setFlash(c, flashError, "Select a project")
		c.Redirect(http.StatusFound, "/targets")
		return
	}

	value := strings.TrimSpace(c.PostForm("target"))
	targetType := models.TargetType(c.DefaultPostForm("target_type", string(models.TargetURL)))

	if !targetType.Valid() || !models.ValidTargetValue(value, targetType) {
		setFlash(c, flashError, "Invalid target format for type: "+string(targetType))
		c.Redirect(http.StatusFound, "/targets")
		return
	}

	target := models.Target{
		ProjectID:   projectID,
		Name:        strings.TrimSpace(c.PostForm("name")),
		Target:      value,
		TargetType:  targetType,
		Description: strings.TrimSpace(c.PostForm("description")),
		Status:      models.TargetStatus(c.DefaultPostForm("status", string(models.TargetActive))),
	}
	if !target.Status.Valid() {
		setFlash(c, flashError, "Invalid target status")
		c.Redirect(http.StatusFound, "/targets")
		return
	}

	if err := h.store.CreateTargetWithChecklist(&target); err != nil {
		h.webError(c, err, "Failed to save target")
		return
	}

	setFlash(c, flashMessage, "Target created successfully with full checklist")
	c.Redirect(http.StatusFound, "/targets")
}

func (h *Handler) UpdateTarget(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.String(http.StatusBadRequest, "Invalid target ID")
		return
	}

	target, err := h.store.Target(id)
	if err != nil {
		h.webError(c, err, "Target not found")
		return
	}

	value := strings.TrimSpace(c.PostForm("target"))
	targetType := models.TargetType(c.DefaultPostForm("target_type", string(target.TargetType)))
	if !targetType.Valid() || !models.ValidTargetValue(value, targetType) {
		setFlash(c, flashError, "Invalid target format for type: "+string(targetType))
		c.Redirect(http.StatusFound, "/targets/"+c.Param("id"))
		return
	}

	status := models.TargetStatus(c.DefaultPostForm("status", string(target.Status)))
	if !status.Valid() {
		setFlash(c, flashError, "Invalid target status")
		c.Redirect(http.StatusFound, "/targets/"+c.Param("id"))
		return
	}

	target.Name = strings.TrimSpace(c.PostForm("name"))
	target.Target = value
	target.TargetType = targetType
	target.Description = strings.TrimSpace(c.PostForm("description"))
	target.Status = status

	if err := h.store.UpdateTarget(target); err != nil {
		h.webError(c, err, "Failed to save target")
		return
	}

	setFlash(c, flashMessage, "Target updated successfully")
	c.Redirect(http.StatusFound, "/targets")
}

func (h *Handler) DeleteTarget(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.String(http.StatusBadRequest, "Invalid target ID")
		return
	}

	if err := h.store.DeleteTarget(id); err != nil {
		h.webError(c, err, "Target not found")
		return
	}

	setFlash(c, flashMessage, "Target deleted successfully")
	c.Redirect(http.StatusFound, "/targets")
}

//
// API
//

type targetRequest struct {
	ProjectID   uint   `json:"project_id" binding:"required"`
	Name        string `json:"name"`
	Target      string `json:"target" binding:"required"`
	TargetType  string `json:"target_type"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func (h *Handler) APIListTargets(c *gin.Context) {
	targets, err := h.store.TargetsWithProgress()
	if err != nil {
		h.apiError(c, err, "Failed to load targets")
		return
	}
	c.JSON(http.StatusOK, targets)
}

func (h *Handler) APIGetTarget(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target ID"})
		return
	}

	target, err := h.store.TargetWithProgress(id)
	if err != nil {
		h.apiError(c, err, "Target not found")
		return
	}
	rows, err := h.store.TargetChecklist(id)
	if err != nil {
		h.apiError(c, err, "Failed to load checklist")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"target":    target,
		"checklist": groupChecklist(rows),
	})
}

func (h *Handler) APICreateTarget(c *gin.Context) {
	var req targetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	targetType := models.TargetType(req.TargetType)
	if req.TargetType == "" {
		targetType = models.TargetURL
	}
	value := strings.TrimSpace(req.Target)
	if !targetType.Valid() || !models.ValidTargetValue(value, targetType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target format for type: " + string(targetType)})
		return
	}

	status := models.TargetStatus(req.Status)
	if req.Status == "" {
		status = models.TargetActive
	}
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target status"})
		return
	}

	target := models.Target{
		ProjectID:   req.ProjectID,
		Name:        strings.TrimSpace(req.Name),
		Target:      value,
		TargetType:  targetType,
		Description: strings.TrimSpace(req.Description),
		Status:      status,
	}
	if err := h.store.CreateTargetWithChecklist(&target); err != nil {
		h.apiError(c, err, "Project not found")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"id":      target.ID,
		"message": "Target created successfully",
	})
}

func (h *Handler) APIUpdateTarget(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target ID"})
		return
	}

	var req targetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	target, err := h.store.Target(id)
	if err != nil {
		h.apiError(c, err, "Target not found")
		return
	}

	targetType := models.TargetType(req.TargetType)
	if req.TargetType == "" {
		targetType = target.TargetType
	}
	value := strings.TrimSpace(req.Target)
	if !targetType.Valid() || !models.ValidTargetValue(value, targetType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target format for type: " + string(targetType)})
		return
	}

	target.Name = strings.TrimSpace(req.Name)
	target.Target = value
	target.TargetType = targetType
	target.Description = strings.TrimSpace(req.Description)
	if req.Status != "" {
		status := models.TargetStatus(req.Status)
		if !status.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target status"})
			return
		}
		target.Status = status
	}

	if err := h.store.UpdateTarget(target); err != nil {
		h.apiError(c, err, "Failed to save target")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Target updated successfully"})
}

func (h *Handler) APIDeleteTarget(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target ID"})
		return
	}

	if err := h.store.DeleteTarget(id); err != nil {
		h.apiError(c, err, "Target not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Target deleted successfully"})
}

//
// CHECKLIST ENTRY MUTATIONS
//

func (h *Handler) APIToggleChecklistEntry(c *gin.Context) {
	targetID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target ID"})
		return
	}
	itemID, ok := idParam(c, "itemID")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	checked := c.PostForm("is_checked") == "1"
	err := h.store.UpdateChecklistEntry(targetID, itemID, store.EntryPatch{IsChecked: &checked})
	if err != nil {
		h.apiError(c, err, "Checklist entry not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) APIUpdateChecklistEntryNotes(c *gin.Context) {
	targetID, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target ID"})
		return
	}
	itemID, ok := idParam(c, "itemID")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	patch := store.EntryPatch{}
	notesText := c.PostForm("notes")
	patch.Notes = &notesText

	if sevStr, present := c.GetPostForm("severity"); present {
		severity := models.Severity(sevStr)
		if sevStr != "" && !severity.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid severity"})
			return
		}
		patch.Severity = &severity
	}

	if err := h.store.UpdateChecklistEntry(targetID, itemID, patch); err != nil {
		h.apiError(c, err, "Checklist entry not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
