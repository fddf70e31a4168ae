package report

import (
	"encoding/csv"
	"io"

	"bugbounty-tracker/internal/models"
)

var csvHeader = []string{"Date", "Item Title", "Category", "Severity", "Change Type", "Notes"}

// renderCSV writes the fixed header row plus one row per history entry.
// The Notes column falls back to the old notes when the change carries no
// new text.
func renderCSV(w io.Writer, history []models.HistoryRow) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, entry := range history {
		notes := entry.NewNotes
		if notes == "" {
			notes = entry.OldNotes
		}
		record := []string{
			entry.CreatedAt.Format(timeLayout),
			entry.ChecklistTitle,
			entry.CategoryName,
			string(entry.Severity),
			entry.ChangeType,
			notes,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
