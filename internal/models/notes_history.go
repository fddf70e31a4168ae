package models

import "time"

const (
	ChangeNotesUpdated    = "notes_updated"
	ChangeSeverityUpdated = "severity_updated"
)

// NotesHistory is the append-only change log for checklist-entry notes.
// Rows are written in the same transaction as the entry mutation and are
// never updated or deleted individually.
type NotesHistory struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	TargetID        uint `gorm:"not null;index"`
	ChecklistItemID uint `gorm:"not null"`

	ChangeType string   `gorm:"size:50;not null"`
	OldNotes   string   `gorm:"type:text"`
	NewNotes   string   `gorm:"type:text"`
	Severity   Severity `gorm:"type:varchar(20)"`
}

func (NotesHistory) TableName() string {
	return "notes_history"
}
