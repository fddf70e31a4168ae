package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"bugbounty-tracker/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler carries the injected store and logger; no handler reaches for
// globals.
type Handler struct {
	store  *store.Store
	logger *zap.Logger
}

func New(s *store.Store, logger *zap.Logger) *Handler {
	return &Handler{store: s, logger: logger}
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func postFormUint(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.Atoi(c.PostForm(name))
	if err != nil || v <= 0 {
		return 0, false
	}
	return uint(v), true
}

func (h *Handler) webError(c *gin.Context, err error, msg string) {
	if errors.Is(err, store.ErrNotFound) {
		c.String(http.StatusNotFound, msg)
		return
	}
	h.logger.Error("request failed",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	c.String(http.StatusInternalServerError, msg)
}

// apiError maps store failures onto the JSON error contract: missing rows
// become 404, everything else a logged 500.
func (h *Handler) apiError(c *gin.Context, err error, notFoundMsg string) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
		return
	}
	h.logger.Error("request failed",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}
