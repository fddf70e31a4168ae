package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"bugbounty-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exportTime = time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)

func sampleTarget() *models.TargetWithProgress {
	return &models.TargetWithProgress{
		ID:             7,
		ProjectName:    "Acme Program",
		Name:           "Main site",
		Target:         "https://example.com",
		TargetType:     models.TargetURL,
		Status:         models.TargetActive,
		TotalItems:     10,
		CompletedItems: 3,
		Progress:       30.0,
	}
}

func sampleHistory() []models.HistoryRow {
	return []models.HistoryRow{
		{
			ID:              1,
			TargetID:        7,
			ChecklistItemID: 3,
			ChecklistTitle:  "Check headers",
			CategoryName:    "Configuration",
			ChangeType:      models.ChangeNotesUpdated,
			NewNotes:        "missing CSP header",
			Severity:        models.SeverityMedium,
			CreatedAt:       exportTime,
		},
	}
}

func TestParseFormat(t *testing.T) {
	assert.Equal(t, FormatText, ParseFormat("txt"))
	assert.Equal(t, FormatText, ParseFormat(""))
	assert.Equal(t, FormatText, ParseFormat("docx"))
	assert.Equal(t, FormatMarkdown, ParseFormat("md"))
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatCSV, ParseFormat("csv"))
	assert.Equal(t, FormatHTML, ParseFormat("html"))
}

func TestFilenames(t *testing.T) {
	assert.Equal(t, "target-7-notes.txt", FormatText.Filename(7))
	assert.Equal(t, "target-7-notes.md", FormatMarkdown.Filename(7))
	assert.Equal(t, "target-7-notes.html", FormatHTML.Filename(7))
	assert.Equal(t, "findings-history.csv", FormatCSV.Filename(7))
}

func TestJSONReport(t *testing.T) {
	r := JSON(sampleTarget(), "some findings", sampleHistory(), exportTime)

	assert.Equal(t, uint(7), r.Target.ID)
	assert.Equal(t, "Acme Program", r.Target.Project)
	assert.Equal(t, 30.0, r.Target.Progress)
	assert.Equal(t, "2025-06-01 12:30:00", r.Target.ExportDate)
	assert.Equal(t, "some findings", r.AggregatedNotes)
	require.Len(t, r.History, 1)
	assert.Equal(t, "Check headers", r.History[0].ChecklistTitle)
}

func TestRenderCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatCSV, sampleTarget(), "", sampleHistory(), exportTime))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Date,Item Title,Category,Severity,Change Type,Notes", lines[0])
	assert.Contains(t, lines[1], "Check headers")
	assert.Contains(t, lines[1], "missing CSP header")
}

func TestRenderCSVOldNotesFallback(t *testing.T) {
	history := sampleHistory()
	history[0].NewNotes = ""
	history[0].OldNotes = "the earlier text"

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatCSV, sampleTarget(), "", history, exportTime))
	assert.Contains(t, buf.String(), "the earlier text")
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatText, sampleTarget(), "[Configuration]\n- [x] finding\n", sampleHistory(), exportTime))
	out := buf.String()

	assert.Contains(t, out, "BUG BOUNTY TARGET REPORT")
	assert.Contains(t, out, "Target: https://example.com")
	assert.Contains(t, out, "Type: URL")
	assert.Contains(t, out, "Progress: 30.00%")
	assert.Contains(t, out, "[Configuration]")
	assert.Contains(t, out, "Severity: MEDIUM")
	assert.Contains(t, out, "Type: notes_updated")
	assert.NotContains(t, out, "No findings recorded.")
}

func TestRenderTextNoFindings(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatText, sampleTarget(), "", nil, exportTime))
	assert.Contains(t, buf.String(), "No findings recorded.")
}

func TestRenderMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatMarkdown, sampleTarget(), "", sampleHistory(), exportTime))
	out := buf.String()

	assert.Contains(t, out, "# Bug Bounty Target Report")
	assert.Contains(t, out, "**Project:** Acme Program")
	assert.Contains(t, out, "### Check headers")
	assert.Contains(t, out, "- **Severity:** MEDIUM")
}

func TestRenderHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, FormatHTML, sampleTarget(), "findings text", sampleHistory(), exportTime))
	out := buf.String()

	assert.Contains(t, out, "<title>Bug Bounty Report - https://example.com</title>")
	assert.Contains(t, out, `<tr class="medium">`)
	assert.Contains(t, out, "<strong>MEDIUM</strong>")
	assert.Contains(t, out, "findings text")
}
