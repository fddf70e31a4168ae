package store

import (
	"bugbounty-tracker/internal/models"

	"gorm.io/gorm"
)

func (s *Store) Categories() ([]models.CategoryWithCount, error) {
	var rows []models.CategoryWithCount
	err := s.db.Table("categories c").
		Select("c.id, c.name, c.description, c.order_num, COUNT(ci.id) AS item_count").
		Joins("LEFT JOIN checklist_items ci ON ci.category_id = c.id AND ci.deleted_at IS NULL").
		Where("c.deleted_at IS NULL").
		Group("c.id, c.name, c.description, c.order_num").
		Order("c.order_num, c.id").
		Scan(&rows).Error
	return rows, err
}

func (s *Store) Category(id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (s *Store) CreateCategory(category *models.Category) error {
	return s.db.Create(category).Error
}

func (s *Store) UpdateCategory(category *models.Category) error {
	return s.db.Save(category).Error
}

// DeleteCategory removes the category and its template items. Existing
// target checklist entries keep referencing the deleted items as a
// historical snapshot.
func (s *Store) DeleteCategory(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			if notFound(err) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Where("category_id = ?", id).Delete(&models.ChecklistItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
}

// MoveCategoryUp swaps the category's order_num with the closest category
// below it. Returns false without mutating anything when the category is
// already first.
func (s *Store) MoveCategoryUp(id uint) (bool, error) {
	return s.moveCategory(id, dirUp)
}

// MoveCategoryDown is the mirror of MoveCategoryUp.
func (s *Store) MoveCategoryDown(id uint) (bool, error) {
	return s.moveCategory(id, dirDown)
}

type moveDirection int

const (
	dirUp moveDirection = iota
	dirDown
)

func (s *Store) moveCategory(id uint, dir moveDirection) (bool, error) {
	var moved bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := lockForUpdate(tx).First(&category, id).Error; err != nil {
			if notFound(err) {
				return ErrNotFound
			}
			return err
		}

		// Sibling with the greatest order_num below ours (up) or the
		// smallest above it (down). Ties resolve by id so repeated calls
		// are deterministic.
		sibling := lockForUpdate(tx)
		if dir == dirUp {
			sibling = sibling.Where("order_num < ?", category.OrderNum).Order("order_num DESC, id DESC")
		} else {
			sibling = sibling.Where("order_num > ?", category.OrderNum).Order("order_num ASC, id ASC")
		}

		var neighbor models.Category
		if err := sibling.First(&neighbor).Error; err != nil {
			if notFound(err) {
				// already at the boundary
				return nil
			}
			return err
		}

		if err := tx.Model(&models.Category{}).Where("id = ?", category.ID).
			Update("order_num", neighbor.OrderNum).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Category{}).Where("id = ?", neighbor.ID).
			Update("order_num", category.OrderNum).Error; err != nil {
			return err
		}

		moved = true
		return nil
	})
	return moved, err
}
