package store

import (
	"bugbounty-tracker/internal/models"

	"gorm.io/gorm"
)

// ChecklistItemRow is a template item joined with its category name.
type ChecklistItemRow struct {
	ID           uint   `json:"id"`
	CategoryID   uint   `json:"category_id"`
	CategoryName string `json:"category_name"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	OrderNum     int    `json:"order_num"`
}

// ChecklistItems lists the template catalog, optionally restricted to one
// category, in category order then item order.
func (s *Store) ChecklistItems(categoryID uint) ([]ChecklistItemRow, error) {
	q := s.db.Table("checklist_items ci").
		Select("ci.id, ci.category_id, c.name AS category_name, ci.title, ci.description, ci.order_num").
		Joins("JOIN categories c ON c.id = ci.category_id AND c.deleted_at IS NULL").
		Where("ci.deleted_at IS NULL").
		Order("c.order_num, ci.order_num, ci.id")

	if categoryID != 0 {
		q = q.Where("ci.category_id = ?", categoryID)
	}

	var rows []ChecklistItemRow
	err := q.Scan(&rows).Error
	return rows, err
}

func (s *Store) ChecklistItem(id uint) (*models.ChecklistItem, error) {
	var item models.ChecklistItem
	if err := s.db.First(&item, id).Error; err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (s *Store) CreateChecklistItem(item *models.ChecklistItem) error {
	return s.db.Create(item).Error
}

func (s *Store) UpdateChecklistItem(item *models.ChecklistItem) error {
	return s.db.Save(item).Error
}

// DeleteChecklistItem removes the template item and resequences its former
// siblings. Target entries referencing the item persist as snapshots.
func (s *Store) DeleteChecklistItem(id uint) error {
	var categoryID uint
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item models.ChecklistItem
		if err := tx.First(&item, id).Error; err != nil {
			if notFound(err) {
				return ErrNotFound
			}
			return err
		}
		categoryID = item.CategoryID
		return tx.Delete(&item).Error
	})
	if err != nil {
		return err
	}
	return s.ResequenceCategoryItems(categoryID)
}

// ResequenceCategoryItems rewrites a category's item order_nums to 1..n,
// keeping the current relative order.
func (s *Store) ResequenceCategoryItems(categoryID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var items []models.ChecklistItem
		if err := lockForUpdate(tx).
			Where("category_id = ?", categoryID).
			Order("order_num, id").
			Find(&items).Error; err != nil {
			return err
		}

		for i, item := range items {
			if item.OrderNum == i+1 {
				continue
			}
			if err := tx.Model(&models.ChecklistItem{}).Where("id = ?", item.ID).
				Update("order_num", i+1).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// MoveChecklistItemUp swaps the item's order_num with its closest sibling
// below it within the same category. Returns false when the item is already
// first in its category.
func (s *Store) MoveChecklistItemUp(id uint) (bool, error) {
	return s.moveChecklistItem(id, dirUp)
}

// MoveChecklistItemDown is the mirror of MoveChecklistItemUp.
func (s *Store) MoveChecklistItemDown(id uint) (bool, error) {
	return s.moveChecklistItem(id, dirDown)
}

func (s *Store) moveChecklistItem(id uint, dir moveDirection) (bool, error) {
	var moved bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var item models.ChecklistItem
		if err := lockForUpdate(tx).First(&item, id).Error; err != nil {
			if notFound(err) {
				return ErrNotFound
			}
			return err
		}

		sibling := lockForUpdate(tx).Where("category_id = ?", item.CategoryID)
		if dir == dirUp {
			sibling = sibling.Where("order_num < ?", item.OrderNum).Order("order_num DESC, id DESC")
		} else {
			sibling = sibling.Where("order_num > ?", item.OrderNum).Order("order_num ASC, id ASC")
		}

		var neighbor models.ChecklistItem
		if err := sibling.First(&neighbor).Error; err != nil {
			if notFound(err) {
				return nil
			}
			return err
		}

		if err := tx.Model(&models.ChecklistItem{}).Where("id = ?", item.ID).
			Update("order_num", neighbor.OrderNum).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.ChecklistItem{}).Where("id = ?", neighbor.ID).
			Update("order_num", item.OrderNum).Error; err != nil {
			return err
		}

		moved = true
		return nil
	})
	return moved, err
}
