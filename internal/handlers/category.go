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

func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.store.Categories()
	if err != nil {
		h.webError(c, err, "Failed to load categories")
		return
	}

	h.render(c, http.StatusOK, "categories_list.html", gin.H{
		"categories": categories,
	})
}

func (h *Handler) CreateCategory(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		setFlash(c, flashError, "Category name is required")
		c.Redirect(http.StatusFound, "/categories")
		return
	}

	orderNum, _ := strconv.Atoi(c.PostForm("order_num"))
	category := models.Category{
		Name:        name,
		Description: strings.TrimSpace(c.PostForm("description")),
		OrderNum:    orderNum,
	}
	if err := h.store.CreateCategory(&category); err != nil {
		h.webError(c, err, "Failed to save category")
		return
	}

	setFlash(c, flashMessage, "Category created successfully")
	c.Redirect(http.StatusFound, "/categories")
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.String(http.StatusBadRequest, "Invalid category ID")
		return
	}

	category, err := h.store.Category(id)
	if err != nil {
		h.webError(c, err, "Category not found")
		return
	}

	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		setFlash(c, flashError, "Category name is required")
		c.Redirect(http.StatusFound, "/categories")
		return
	}

	category.Name = name
	category.Description = strings.TrimSpace(c.PostForm("description"))
	if orderStr := c.PostForm("order_num"); orderStr != "" {
		if orderNum, err := strconv.Atoi(orderStr); err == nil {
			category.OrderNum = orderNum
		}
	}

	if err := h.store.UpdateCategory(category); err != nil {
		h.webError(c, err, "Failed to save category")
		return
	}

	setFlash(c, flashMessage, "Category updated successfully")
	c.Redirect(http.StatusFound, "/categories")
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.String(http.StatusBadRequest, "Invalid category ID")
		return
	}

	if err := h.store.DeleteCategory(id); err != nil {
		h.webError(c, err, "Category not found")
		return
	}

	setFlash(c, flashMessage, "Category deleted successfully")
	c.Redirect(http.StatusFound, "/categories")
}

func (h *Handler) MoveCategory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.String(http.StatusBadRequest, "Invalid category ID")
		return
	}

	var (
		moved bool
		err   error
	)
	if strings.HasSuffix(c.FullPath(), "/move-up") {
		moved, err = h.store.MoveCategoryUp(id)
	} else {
		moved, err = h.store.MoveCategoryDown(id)
	}
	if err != nil {
		h.webError(c, err, "Category not found")
		return
	}

	if moved {
		setFlash(c, flashMessage, "Category moved")
	}
	c.Redirect(http.StatusFound, "/categories")
}

//
// API
//

type categoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	OrderNum    int    `json:"order_num"`
}

func (h *Handler) APIListCategories(c *gin.Context) {
	categories, err := h.store.Categories()
	if err != nil {
		h.apiError(c, err, "Failed to load categories")
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *Handler) APICreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	category := models.Category{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		OrderNum:    req.OrderNum,
	}
	if err := h.store.CreateCategory(&category); err != nil {
		h.apiError(c, err, "Failed to save category")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "id": category.ID})
}

func (h *Handler) APIUpdateCategory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	category, err := h.store.Category(id)
	if err != nil {
		h.apiError(c, err, "Category not found")
		return
	}

	category.Name = strings.TrimSpace(req.Name)
	category.Description = strings.TrimSpace(req.Description)
	if req.OrderNum != 0 {
		category.OrderNum = req.OrderNum
	}

	if err := h.store.UpdateCategory(category); err != nil {
		h.apiError(c, err, "Failed to save category")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) APIDeleteCategory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	if err := h.store.DeleteCategory(id); err != nil {
		h.apiError(c, err, "Category not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) APIMoveCategoryUp(c *gin.Context) {
	h.apiMoveCategory(c, h.store.MoveCategoryUp)
}

func (h *Handler) APIMoveCategoryDown(c *gin.Context) {
	h.apiMoveCategory(c, h.store.MoveCategoryDown)
}

func (h *Handler) apiMoveCategory(c *gin.Context, move func(uint) (bool, error)) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
		return
	}

	moved, err := move(id)
	if err != nil {
		h.apiError(c, err, "Category not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": moved})
}
