package store

import (
	"bugbounty-tracker/internal/models"
	"bugbounty-tracker/internal/progress"

	"gorm.io/gorm"
)

const targetProgressSelect = `t.id, t.project_id, p.name AS project_name, t.name, t.target,
t.target_type, t.description, t.status, t.created_at, t.updated_at,
COUNT(tc.id) AS total_items,
COALESCE(SUM(CASE WHEN tc.is_checked THEN 1 ELSE 0 END), 0) AS completed_items`

const targetProgressGroup = `t.id, t.project_id, p.name, t.name, t.target,
t.target_type, t.description, t.status, t.created_at, t.updated_at`

func (s *Store) targetProgressQuery() *gorm.DB {
	return s.db.Table("targets t").
		Select(targetProgressSelect).
		Joins("LEFT JOIN projects p ON p.id = t.project_id AND p.deleted_at IS NULL").
		Joins("LEFT JOIN target_checklist tc ON tc.target_id = t.id").
		Where("t.deleted_at IS NULL").
		Group(targetProgressGroup)
}

// TargetsWithProgress lists every target with its completion counts, newest
// first. Percentages are computed here rather than in SQL so the rounding
// rule lives in one place.
func (s *Store) TargetsWithProgress() ([]models.TargetWithProgress, error) {
	var rows []models.TargetWithProgress
	if err := s.targetProgressQuery().Order("t.created_at DESC, t.id DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Progress = progress.Percent(rows[i].CompletedItems, rows[i].TotalItems)
	}
	return rows, nil
}

func (s *Store) ProjectTargetsWithProgress(projectID uint) ([]models.TargetWithProgress, error) {
	var rows []models.TargetWithProgress
	err := s.targetProgressQuery().
		Where("t.project_id = ?", projectID).
		Order("t.created_at DESC, t.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Progress = progress.Percent(rows[i].CompletedItems, rows[i].TotalItems)
	}
	return rows, nil
}

func (s *Store) TargetWithProgress(id uint) (*models.TargetWithProgress, error) {
	var row models.TargetWithProgress
	result := s.targetProgressQuery().Where("t.id = ?", id).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	row.Progress = progress.Percent(row.CompletedItems, row.TotalItems)
	return &row, nil
}

func (s *Store) Target(id uint) (*models.Target, error) {
	var target models.Target
	if err := s.db.First(&target, id).Error; err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &target, nil
}

// CreateTargetWithChecklist creates the target and clones every item in the
// current catalog into target_checklist rows. One transaction, so a failure
// partway never leaves a target with a partial checklist.
func (s *Store) CreateTargetWithChecklist(target *models.Target) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, target.ProjectID).Error; err != nil {
			if notFound(err) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Create(target).Error; err != nil {
			return err
		}

		var items []models.ChecklistItem
		if err := tx.Joins("JOIN categories ON categories.id = checklist_items.category_id AND categories.deleted_at IS NULL").
			Order("categories.order_num, checklist_items.order_num, checklist_items.id").
			Find(&items).Error; err != nil {
			return err
		}

		for _, item := range items {
			entry := models.TargetChecklistEntry{
				TargetID:        target.ID,
				ChecklistItemID: item.ID,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) UpdateTarget(target *models.Target) error {
	return s.db.Save(target).Error
}

// DeleteTarget removes the target with its checklist entries and history.
func (s *Store) DeleteTarget(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var target models.Target
		if err := tx.First(&target, id).Error; err != nil {
			if notFound(err) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("target_id = ?", id).Delete(&models.TargetChecklistEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("target_id = ?", id).Delete(&models.NotesHistory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&target).Error
	})
}

// TargetChecklist returns the target's full checklist joined with item and
// category data, in category order then item order.
func (s *Store) TargetChecklist(targetID uint) ([]models.ChecklistRow, error) {
	var rows []models.ChecklistRow
	err := s.db.Table("target_checklist tc").
		Select(`tc.id AS entry_id, tc.checklist_item_id, ci.title, ci.description,
c.id AS category_id, c.name AS category_name, c.order_num AS category_order,
ci.order_num AS item_order, tc.is_checked, tc.notes, tc.severity, tc.updated_at`).
		Joins("JOIN checklist_items ci ON ci.id = tc.checklist_item_id").
		Joins("JOIN categories c ON c.id = ci.category_id").
		Where("tc.target_id = ?", targetID).
		Order("c.order_num, ci.order_num, ci.id").
		Scan(&rows).Error
	return rows, err
}
