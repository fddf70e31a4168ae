// Package report serializes a target's aggregated findings and notes
// history into the downloadable export formats.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"bugbounty-tracker/internal/models"
)

type Format string

const (
	FormatText     Format = "txt"
	FormatMarkdown Format = "md"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatHTML     Format = "html"
)

// History row caps: exports carry more history than the interactive view.
const (
	ExportHistoryLimit = 1000
	ViewHistoryLimit   = 100
)

const timeLayout = "2006-01-02 15:04:05"

// ParseFormat maps the request parameter to a format; anything unknown
// falls back to plain text, matching the original behavior.
func ParseFormat(s string) Format {
	switch Format(s) {
	case FormatMarkdown, FormatJSON, FormatCSV, FormatHTML:
		return Format(s)
	}
	return FormatText
}

func (f Format) ContentType() string {
	switch f {
	case FormatMarkdown:
		return "text/markdown"
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv"
	case FormatHTML:
		return "text/html"
	}
	return "text/plain"
}

// Filename is the download name hint. CSV keeps the original's fixed name;
// the others derive from the target id.
func (f Format) Filename(targetID uint) string {
	if f == FormatCSV {
		return "findings-history.csv"
	}
	return fmt.Sprintf("target-%d-notes.%s", targetID, f)
}

// JSONReport is the one format returned as data rather than as a byte
// stream.
type JSONReport struct {
	Target          TargetMeta          `json:"target"`
	AggregatedNotes string              `json:"aggregatedNotes"`
	History         []models.HistoryRow `json:"history"`
}

type TargetMeta struct {
	ID         uint                `json:"id"`
	Target     string              `json:"target"`
	TargetType models.TargetType   `json:"target_type"`
	Project    string              `json:"project"`
	Status     models.TargetStatus `json:"status"`
	Progress   float64             `json:"progress"`
	ExportDate string              `json:"exportDate"`
}

func JSON(target *models.TargetWithProgress, notesBlob string, history []models.HistoryRow, now time.Time) JSONReport {
	return JSONReport{
		Target: TargetMeta{
			ID:         target.ID,
			Target:     target.Target,
			TargetType: target.TargetType,
			Project:    target.ProjectName,
			Status:     target.Status,
			Progress:   target.Progress,
			ExportDate: now.Format(timeLayout),
		},
		AggregatedNotes: notesBlob,
		History:         history,
	}
}

// Render writes the report body for every stream format. JSON is handled
// separately by the caller via JSON().
func Render(w io.Writer, f Format, target *models.TargetWithProgress, notesBlob string, history []models.HistoryRow, now time.Time) error {
	switch f {
	case FormatMarkdown:
		return renderMarkdown(w, target, notesBlob, history, now)
	case FormatCSV:
		return renderCSV(w, history)
	case FormatHTML:
		return renderHTML(w, target, notesBlob, history, now)
	default:
		return renderText(w, target, notesBlob, history, now)
	}
}

func renderText(w io.Writer, target *models.TargetWithProgress, notesBlob string, history []models.HistoryRow, now time.Time) error {
	var b strings.Builder
	rule := strings.Repeat("-", 60)

	b.WriteString("BUG BOUNTY TARGET REPORT\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	b.WriteString("TARGET INFORMATION\n")
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Target: %s\n", target.Target)
	fmt.Fprintf(&b, "Type: %s\n", strings.ToUpper(string(target.TargetType)))
	fmt.Fprintf(&b, "Project: %s\n", target.ProjectName)
	fmt.Fprintf(&b, "Status: %s\n", target.Status)
	fmt.Fprintf(&b, "Progress: %.2f%%\n", target.Progress)
	fmt.Fprintf(&b, "Generated: %s\n\n", now.Format(timeLayout))

	b.WriteString("AGGREGATED FINDINGS\n")
	b.WriteString(rule + "\n")
	if notesBlob != "" {
		b.WriteString(notesBlob)
	} else {
		b.WriteString("No findings recorded.\n\n")
	}

	b.WriteString("\n\nFINDINGS HISTORY\n")
	b.WriteString(rule + "\n")
	for _, entry := range history {
		fmt.Fprintf(&b, "\n[%s] %s\n", entry.CreatedAt.Format(timeLayout), entry.ChecklistTitle)
		fmt.Fprintf(&b, "Category: %s\n", entry.CategoryName)
		fmt.Fprintf(&b, "Severity: %s\n", strings.ToUpper(string(entry.Severity)))
		fmt.Fprintf(&b, "Type: %s\n", entry.ChangeType)
		if entry.NewNotes != "" {
			fmt.Fprintf(&b, "Notes: %s\n", entry.NewNotes)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func renderMarkdown(w io.Writer, target *models.TargetWithProgress, notesBlob string, history []models.HistoryRow, now time.Time) error {
	var b strings.Builder

	b.WriteString("# Bug Bounty Target Report\n\n")
	fmt.Fprintf(&b, "**Target:** %s\n", target.Target)
	fmt.Fprintf(&b, "**Target Type:** %s\n", strings.ToUpper(string(target.TargetType)))
	fmt.Fprintf(&b, "**Project:** %s\n", target.ProjectName)
	fmt.Fprintf(&b, "**Status:** %s\n", target.Status)
	fmt.Fprintf(&b, "**Progress:** %.2f%%\n", target.Progress)
	fmt.Fprintf(&b, "**Date:** %s\n\n", now.Format(timeLayout))

	b.WriteString("## Aggregated Findings\n\n")
	if notesBlob != "" {
		b.WriteString(notesBlob)
	} else {
		b.WriteString("No findings recorded.\n\n")
	}

	b.WriteString("## Findings History\n\n")
	for _, entry := range history {
		fmt.Fprintf(&b, "### %s\n", entry.ChecklistTitle)
		fmt.Fprintf(&b, "- **Category:** %s\n", entry.CategoryName)
		fmt.Fprintf(&b, "- **Severity:** %s\n", strings.ToUpper(string(entry.Severity)))
		fmt.Fprintf(&b, "- **Type:** %s\n", entry.ChangeType)
		fmt.Fprintf(&b, "- **Date:** %s\n", entry.CreatedAt.Format(timeLayout))
		if entry.NewNotes != "" {
			fmt.Fprintf(&b, "- **Notes:** %s\n\n", entry.NewNotes)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
