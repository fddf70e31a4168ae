package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"bugbounty-tracker/internal/models"

	"github.com/gin-gonic/gin"
)

//
// WEB
//

func (h *Handler) ListChecklistItems(c *gin.Context) {
	var categoryID uint
	if v, err := strconv.Atoi(c.Query("category_id")); err == nil && v > 0 {
		categoryID = uint(v)
	}

	items, err := h.store.ChecklistItems(categoryID)
	if err != nil {
		h.webError(c, err, "Failed to load checklist items")
		return
	}
	categories, err := h.store.Categories()
	if err != nil {
		h.webError(c, err, "Failed to load categories")
		return
	}

	h.render(c, http.StatusOK, "checklist_list.html", gin.H{
		"items":            items,
		"categories":       categories,
		"selectedCategory": categoryID,
	})
}

func (h *Handler) CreateChecklistItem(c *gin.Context) {
	categoryID, ok := postFormUint(c, "category_id")
	if !ok {
		setFlash(c, flashError, "Select a category")
		c.Redirect(http.StatusFound, "/checklist")
		return
	}
	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		setFlash(c, flashError, "Item title is required")
		c.Redirect(http.StatusFound, "/checklist")
		return
	}

	orderNum, _ := strconv.Atoi(c.PostForm("order_num"))
	item := models.ChecklistItem{
		CategoryID:  categoryID,
		Title:       title,
		Description: strings.TrimSpace(c.PostForm("description")),
		OrderNum:    orderNum,
	}
	if err := h.store.CreateChecklistItem(&item); err != nil {
		h.webError(c, err, "Failed to save checklist item")
		return
	}

	setFlash(c, flashMessage, "Checklist item created successfully")
	c.Redirect(http.StatusFound, "/checklist")
}

func (h *Handler) UpdateChecklistItemTemplate(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.String(http.StatusBadRequest, "Invalid item ID")
		return
	}

	item, err := h.store.ChecklistItem(id)
	if err != nil {
		h.webError(c, err, "Checklist item not found")
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		setFlash(c, flashError, "Item title is required")
		c.Redirect(http.StatusFound, "/checklist")
		return
	}

	if categoryID, ok := postFormUint(c, "category_id"); ok {
		item.CategoryID = categoryID
	}
	item.Title = title
	item.Description = strings.TrimSpace(c.PostForm("description"))
	if orderStr := c.PostForm("order_num"); orderStr != "" {
		if orderNum, err := strconv.Atoi(orderStr); err == nil {
			item.OrderNum = orderNum
		}
	}

	if err := h.store.UpdateChecklistItem(item); err != nil {
		h.webError(c, err, "Failed to save checklist item")
		return
	}

	setFlash(c, flashMessage, "Checklist item updated successfully")
	c.Redirect(http.StatusFound, "/checklist")
}

func (h *Handler) DeleteChecklistItem(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.String(http.StatusBadRequest, "Invalid item ID")
		return
	}

	if err := h.store.DeleteChecklistItem(id); err != nil {
		h.webError(c, err, "Checklist item not found")
		return
	}

	setFlash(c, flashMessage, "Checklist item deleted successfully")
	c.Redirect(http.StatusFound, "/checklist")
}

func (h *Handler) MoveChecklistItem(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.String(http.StatusBadRequest, "Invalid item ID")
		return
	}

	var (
		moved bool
		err   error
	)
	if strings.HasSuffix(c.FullPath(), "/move-up") {
		moved, err = h.store.MoveChecklistItemUp(id)
	} else {
		moved, err = h.store.MoveChecklistItemDown(id)
	}
	if err != nil {
		h.webError(c, err, "Checklist item not found")
		return
	}

	if moved {
		setFlash(c, flashMessage, "Item moved")
	}
	c.Redirect(http.StatusFound, "/checklist")
}

//
// API
//

type checklistItemRequest struct {
	CategoryID  uint   `json:"category_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	OrderNum    int    `json:"order_num"`
}

func (h *Handler) APIListChecklistItems(c *gin.Context) {
	var categoryID uint
	if v, err := strconv.Atoi(c.Query("category_id")); err == nil && v > 0 {
		categoryID = uint(v)
	}

	items, err := h.store.ChecklistItems(categoryID)
	if err != nil {
		h.apiError(c, err, "Failed to load checklist items")
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) APICreateChecklistItem(c *gin.Context) {
	var req checklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	item := models.ChecklistItem{
		CategoryID:  req.CategoryID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		OrderNum:    req.OrderNum,
	}
	if err := h.store.CreateChecklistItem(&item); err != nil {
		h.apiError(c, err, "Failed to save checklist item")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "id": item.ID})
}

func (h *Handler) APIUpdateChecklistItem(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var req checklistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	item, err := h.store.ChecklistItem(id)
	if err != nil {
		h.apiError(c, err, "Checklist item not found")
		return
	}

	item.CategoryID = req.CategoryID
	item.Title = strings.TrimSpace(req.Title)
	item.Description = strings.TrimSpace(req.Description)
	if req.OrderNum != 0 {
		item.OrderNum = req.OrderNum
	}

	if err := h.store.UpdateChecklistItem(item); err != nil {
		h.apiError(c, err, "Failed to save checklist item")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) APIDeleteChecklistItem(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	if err := h.store.DeleteChecklistItem(id); err != nil {
		h.apiError(c, err, "Checklist item not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) APIMoveChecklistItemUp(c *gin.Context) {
	h.apiMoveChecklistItem(c, h.store.MoveChecklistItemUp)
}

func (h *Handler) APIMoveChecklistItemDown(c *gin.Context) {
	h.apiMoveChecklistItem(c, h.store.MoveChecklistItemDown)
}

func (h *Handler) apiMoveChecklistItem(c *gin.Context, move func(uint) (bool, error)) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	moved, err := move(id)
	if err != nil {
		h.apiError(c, err, "Checklist item not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": moved})
}
