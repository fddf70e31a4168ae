package store

import (
	"bugbounty-tracker/internal/models"
	"bugbounty-tracker/internal/notes"

	"gorm.io/gorm"
)

// EntryPatch is a partial update of one target checklist entry. Nil fields
// are left untouched.
type EntryPatch struct {
	IsChecked *bool
	Notes     *string
	Severity  *models.Severity
}

// UpdateChecklistEntry applies the patch to the (target, item) entry. Notes
// are normalized before they are stored. When the notes text or the
// severity changes, a notes_history row is appended in the same
// transaction, so the audit log can never drift from the entry.
func (s *Store) UpdateChecklistEntry(targetID, itemID uint, patch EntryPatch) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var entry models.TargetChecklistEntry
		err := lockForUpdate(tx).
			Where("target_id = ? AND checklist_item_id = ?", targetID, itemID).
			First(&entry).Error
		if err != nil {
			if notFound(err) {
				return ErrNotFound
			}
			return err
		}

		oldNotes := entry.Notes
		oldSeverity := entry.Severity

		if patch.IsChecked != nil {
			entry.IsChecked = *patch.IsChecked
		}
		if patch.Notes != nil {
			entry.Notes = notes.Normalize(*patch.Notes)
		}
		if patch.Severity != nil {
			entry.Severity = *patch.Severity
		}

		if err := tx.Save(&entry).Error; err != nil {
			return err
		}

		notesChanged := patch.Notes != nil && entry.Notes != oldNotes
		severityChanged := patch.Severity != nil && entry.Severity != oldSeverity
		if !notesChanged && !severityChanged {
			return nil
		}

		changeType := models.ChangeNotesUpdated
		if !notesChanged {
			changeType = models.ChangeSeverityUpdated
		}

		record := models.NotesHistory{
			TargetID:        targetID,
			ChecklistItemID: itemID,
			ChangeType:      changeType,
			OldNotes:        oldNotes,
			NewNotes:        entry.Notes,
			Severity:        entry.Severity,
		}
		return tx.Create(&record).Error
	})
}

// NotedEntries returns the target's checklist rows carrying non-empty
// notes, in category order then item order. Feed for the aggregation
// views.
func (s *Store) NotedEntries(targetID uint) ([]models.ChecklistRow, error) {
	var rows []models.ChecklistRow
	err := s.db.Table("target_checklist tc").
		Select(`tc.id AS entry_id, tc.checklist_item_id, ci.title, ci.description,
c.id AS category_id, c.name AS category_name, c.order_num AS category_order,
ci.order_num AS item_order, tc.is_checked, tc.notes, tc.severity, tc.updated_at`).
		Joins("JOIN checklist_items ci ON ci.id = tc.checklist_item_id").
		Joins("JOIN categories c ON c.id = ci.category_id").
		Where("tc.target_id = ? AND tc.notes IS NOT NULL AND TRIM(tc.notes) != ''", targetID).
		Order("c.order_num, ci.order_num, ci.id").
		Scan(&rows).Error
	return rows, err
}

// NotesHistory returns the most recent limit history rows for the target,
// newest first, joined with item title and category name.
func (s *Store) NotesHistory(targetID uint, limit int) ([]models.HistoryRow, error) {
	var rows []models.HistoryRow
	err := s.db.Table("notes_history nh").
		Select(`nh.id, nh.target_id, nh.checklist_item_id, ci.title AS checklist_title,
c.name AS category_name, nh.change_type, nh.old_notes, nh.new_notes, nh.severity, nh.created_at`).
		Joins("JOIN checklist_items ci ON ci.id = nh.checklist_item_id").
		Joins("JOIN categories c ON c.id = ci.category_id").
		Where("nh.target_id = ?", targetID).
		Order("nh.created_at DESC, nh.id DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
