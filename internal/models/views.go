package models

import "time"

// Read-side row types scanned from joined queries. They replace the loose
// column maps the store would otherwise hand to the presentation layer.

type TargetWithProgress struct {
	ID          uint         `json:"id"`
	ProjectID   uint         `json:"project_id"`
	ProjectName string       `json:"project_name"`
	Name        string       `json:"name"`
	Target      string       `json:"target"`
	TargetType  TargetType   `json:"target_type"`
	Description string       `json:"description"`
	Status      TargetStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	TotalItems     int     `json:"total_items"`
	CompletedItems int     `json:"completed_items"`
	Progress       float64 `json:"progress"`
}

// ChecklistRow is one target_checklist entry joined with its item and
// category, ordered by category order_num then item order_num.
type ChecklistRow struct {
	EntryID         uint      `json:"entry_id"`
	ChecklistItemID uint      `json:"checklist_item_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	CategoryID      uint      `json:"category_id"`
	CategoryName    string    `json:"category_name"`
	CategoryOrder   int       `json:"-"`
	ItemOrder       int       `json:"-"`
	IsChecked       bool      `json:"is_checked"`
	Notes           string    `json:"notes"`
	Severity        Severity  `json:"severity"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// HistoryRow is a notes_history row joined with its item title and
// category name, newest first.
type HistoryRow struct {
	ID              uint      `json:"id"`
	TargetID        uint      `json:"target_id"`
	ChecklistItemID uint      `json:"checklist_item_id"`
	ChecklistTitle  string    `json:"checklist_title"`
	CategoryName    string    `json:"category_name"`
	ChangeType      string    `json:"change_type"`
	OldNotes        string    `json:"old_notes"`
	NewNotes        string    `json:"new_notes"`
	Severity        Severity  `json:"severity"`
	CreatedAt       time.Time `json:"created_at"`
}

type CategoryWithCount struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	OrderNum    int    `json:"order_num"`
	ItemCount   int    `json:"item_count"`
}

type ProjectWithStats struct {
	ID          uint          `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Status      ProjectStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	TargetCount int     `json:"target_count"`
	AvgProgress float64 `json:"avg_progress"`
}
