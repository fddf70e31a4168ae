package models

import "gorm.io/gorm"

// Category groups checklist items. OrderNum defines the display and
// processing order among categories; values are not guaranteed contiguous.
type Category struct {
	gorm.Model
	Name        string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`
	OrderNum    int    `gorm:"not null;default:0"`

	Items []ChecklistItem `gorm:"foreignKey:CategoryID"`
}
