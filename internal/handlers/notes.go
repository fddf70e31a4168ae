package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"bugbounty-tracker/internal/notes"
	"bugbounty-tracker/internal/report"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ShowNotes renders the aggregated findings page for one target.
func (h *Handler) ShowNotes(c *gin.Context) {
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
	rows, err := h.store.NotedEntries(id)
	if err != nil {
		h.webError(c, err, "Failed to load notes")
		return
	}

	h.render(c, http.StatusOK, "notes_aggregated.html", gin.H{
		"target":          target,
		"notesByCategory": notes.GroupByCategory(rows),
	})
}

// APIGetNotes returns the aggregated findings blob.
func (h *Handler) APIGetNotes(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target ID"})
		return
	}

	if _, err := h.store.TargetWithProgress(id); err != nil {
		h.apiError(c, err, "Target not found")
		return
	}
	rows, err := h.store.NotedEntries(id)
	if err != nil {
		h.apiError(c, err, "Failed to load notes")
		return
	}

	blob := notes.BuildAggregatedText(notes.GroupByCategory(rows))
	c.JSON(http.StatusOK, gin.H{"notes": blob})
}

func (h *Handler) APINotesByCategory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target ID"})
		return
	}

	rows, err := h.store.NotedEntries(id)
	if err != nil {
		h.apiError(c, err, "Failed to load notes")
		return
	}
	c.JSON(http.StatusOK, notes.GroupByCategory(rows))
}

func (h *Handler) APINotesBySeverity(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target ID"})
		return
	}

	rows, err := h.store.NotedEntries(id)
	if err != nil {
		h.apiError(c, err, "Failed to load notes")
		return
	}
	c.JSON(http.StatusOK, notes.GroupBySeverity(rows))
}

func (h *Handler) APINotesHistory(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target ID"})
		return
	}

	limit := report.ViewHistoryLimit
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= report.ExportHistoryLimit {
		limit = v
	}

	history, err := h.store.NotesHistory(id, limit)
	if err != nil {
		h.apiError(c, err, "Failed to load history")
		return
	}
	c.JSON(http.StatusOK, history)
}

// ExportNotes streams the findings report in the requested format. JSON is
// the one format returned as a body instead of a download.
func (h *Handler) ExportNotes(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target ID"})
		return
	}

	format := report.ParseFormat(c.DefaultQuery("format", string(report.FormatText)))

	target, err := h.store.TargetWithProgress(id)
	if err != nil {
		h.apiError(c, err, "Target not found")
		return
	}

	rows, err := h.store.NotedEntries(id)
	if err != nil {
		h.apiError(c, err, "Failed to load notes")
		return
	}
	blob := notes.BuildAggregatedText(notes.GroupByCategory(rows))

	history, err := h.store.NotesHistory(id, report.ExportHistoryLimit)
	if err != nil {
		h.apiError(c, err, "Failed to load history")
		return
	}

	now := time.Now()
	if format == report.FormatJSON {
		c.JSON(http.StatusOK, report.JSON(target, blob, history, now))
		return
	}

	c.Header("Content-Type", format.ContentType())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.Filename(target.ID)))
	c.Status(http.StatusOK)
	if err := report.Render(c.Writer, format, target, blob, history, now); err != nil {
		h.logger.Error("export failed", zap.Error(err))
	}
}
