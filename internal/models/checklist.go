package models

import (
	"time"

	"gorm.io/gorm"
)

// ChecklistItem is the template task definition shared across all targets.
// OrderNum orders items among siblings within the same category.
type ChecklistItem struct {
	gorm.Model
	CategoryID uint
	Category   Category

	Title       string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`
	OrderNum    int    `gorm:"not null;default:0"`
}

// TargetChecklistEntry is the per-target instantiation of a checklist item.
// One row per (target, item) pair, created when the target is created.
// The pair survives later edits to the item catalog as a snapshot.
type TargetChecklistEntry struct {
	ID              uint `gorm:"primaryKey"`
	TargetID        uint `gorm:"not null;uniqueIndex:idx_target_item"`
	ChecklistItemID uint `gorm:"not null;uniqueIndex:idx_target_item"`

	IsChecked bool     `gorm:"not null;default:false"`
	Notes     string   `gorm:"type:text"`
	Severity  Severity `gorm:"type:varchar(20)"` // empty = not rated

	UpdatedAt time.Time
}

func (TargetChecklistEntry) TableName() string {
	return "target_checklist"
}
