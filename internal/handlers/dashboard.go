package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) Dashboard(c *gin.Context) {
	stats, err := h.store.Stats()
	if err != nil {
		h.webError(c, err, "Failed to load dashboard")
		return
	}
	recentProjects, err := h.store.RecentProjects(5)
	if err != nil {
		h.webError(c, err, "Failed to load dashboard")
		return
	}
	recentTargets, err := h.store.RecentTargets(5)
	if err != nil {
		h.webError(c, err, "Failed to load dashboard")
		return
	}

	h.render(c, http.StatusOK, "dashboard.html", gin.H{
		"stats":          stats,
		"recentProjects": recentProjects,
		"recentTargets":  recentTargets,
	})
}
