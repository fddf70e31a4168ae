package store

import (
	"path/filepath"
	"testing"

	"bugbounty-tracker/internal/database"
	"bugbounty-tracker/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return New(db)
}

func createCategory(t *testing.T, s *Store, name string, order int) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, OrderNum: order}
	require.NoError(t, s.CreateCategory(category))
	return category
}

func createItem(t *testing.T, s *Store, categoryID uint, title string, order int) *models.ChecklistItem {
	t.Helper()
	item := &models.ChecklistItem{CategoryID: categoryID, Title: title, OrderNum: order}
	require.NoError(t, s.CreateChecklistItem(item))
	return item
}

func createProject(t *testing.T, s *Store, name string) *models.Project {
	t.Helper()
	project := &models.Project{Name: name, Status: models.ProjectActive}
	require.NoError(t, s.CreateProject(project))
	return project
}

func createTarget(t *testing.T, s *Store, projectID uint, value string) *models.Target {
	t.Helper()
	target := &models.Target{
		ProjectID:  projectID,
		Name:       value,
		Target:     value,
		TargetType: models.TargetURL,
		Status:     models.TargetActive,
	}
	require.NoError(t, s.CreateTargetWithChecklist(target))
	return target
}

func boolPtr(b bool) *bool                      { return &b }
func strPtr(s string) *string                   { return &s }
func sevPtr(s models.Severity) *models.Severity { return &s }

func TestMoveCategorySwapAndBoundary(t *testing.T) {
	s := newTestStore(t)
	a := createCategory(t, s, "A", 1)
	b := createCategory(t, s, "B", 2)

	moved, err := s.MoveCategoryUp(b.ID)
	require.NoError(t, err)
	assert.True(t, moved)

	rows, err := s.Categories()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "B", rows[0].Name)
	assert.Equal(t, 1, rows[0].OrderNum)
	assert.Equal(t, "A", rows[1].Name)
	assert.Equal(t, 2, rows[1].OrderNum)

	// B is now first: another move up is a no-op.
	moved, err = s.MoveCategoryUp(b.ID)
	require.NoError(t, err)
	assert.False(t, moved)

	// A is now last: move down is a no-op.
	moved, err = s.MoveCategoryDown(a.ID)
	require.NoError(t, err)
	assert.False(t, moved)

	rows, err = s.Categories()
	require.NoError(t, err)
	assert.Equal(t, "B", rows[0].Name)
	assert.Equal(t, "A", rows[1].Name)
}

func TestMoveCategoryNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.MoveCategoryUp(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMoveChecklistItemScopedToCategory(t *testing.T) {
	s := newTestStore(t)
	cat1 := createCategory(t, s, "Recon", 1)
	cat2 := createCategory(t, s, "Auth", 2)
	only := createItem(t, s, cat1.ID, "Enumerate subdomains", 1)
	createItem(t, s, cat2.ID, "Password reset", 1)
	second := createItem(t, s, cat2.ID, "Session fixation", 2)

	// The sole item of its category has no sibling to swap with, even
	// though another category has items with lower order_num.
	moved, err := s.MoveChecklistItemUp(only.ID)
	require.NoError(t, err)
	assert.False(t, moved)

	moved, err = s.MoveChecklistItemUp(second.ID)
	require.NoError(t, err)
	assert.True(t, moved)

	rows, err := s.ChecklistItems(cat2.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Session fixation", rows[0].Title)
	assert.Equal(t, "Password reset", rows[1].Title)
}

func TestMoveChecklistItemWalkToBottom(t *testing.T) {
	s := newTestStore(t)
	cat := createCategory(t, s, "Recon", 1)
	first := createItem(t, s, cat.ID, "one", 1)
	createItem(t, s, cat.ID, "two", 2)
	createItem(t, s, cat.ID, "three", 3)

	// Two successful swaps walk the first item to the bottom; the third
	// attempt hits the boundary.
	for i := 0; i < 2; i++ {
		moved, err := s.MoveChecklistItemDown(first.ID)
		require.NoError(t, err)
		assert.True(t, moved, "swap %d", i+1)
	}
	moved, err := s.MoveChecklistItemDown(first.ID)
	require.NoError(t, err)
	assert.False(t, moved)

	rows, err := s.ChecklistItems(cat.ID)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "two", rows[0].Title)
	assert.Equal(t, "three", rows[1].Title)
	assert.Equal(t, "one", rows[2].Title)
}

func TestDeleteChecklistItemResequences(t *testing.T) {
	s := newTestStore(t)
	cat := createCategory(t, s, "Recon", 1)
	createItem(t, s, cat.ID, "one", 1)
	middle := createItem(t, s, cat.ID, "two", 2)
	createItem(t, s, cat.ID, "three", 3)

	require.NoError(t, s.DeleteChecklistItem(middle.ID))

	rows, err := s.ChecklistItems(cat.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "one", rows[0].Title)
	assert.Equal(t, 1, rows[0].OrderNum)
	assert.Equal(t, "three", rows[1].Title)
	assert.Equal(t, 2, rows[1].OrderNum)
}

func TestCreateTargetClonesCatalog(t *testing.T) {
	s := newTestStore(t)
	recon := createCategory(t, s, "Recon", 1)
	auth := createCategory(t, s, "Auth", 2)
	createItem(t, s, auth.ID, "Password reset", 1)
	createItem(t, s, recon.ID, "Subdomains", 1)
	createItem(t, s, recon.ID, "Tech stack", 2)

	project := createProject(t, s, "Acme")
	target := createTarget(t, s, project.ID, "https://example.com")

	rows, err := s.TargetChecklist(target.ID)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Catalog order: category order_num first, then item order_num.
	assert.Equal(t, "Subdomains", rows[0].Title)
	assert.Equal(t, "Tech stack", rows[1].Title)
	assert.Equal(t, "Password reset", rows[2].Title)
	for _, row := range rows {
		assert.False(t, row.IsChecked)
		assert.Empty(t, row.Notes)
	}
}

func TestCreateTargetUnknownProject(t *testing.T) {
	s := newTestStore(t)
	target := &models.Target{
		ProjectID:  999,
		Name:       "x",
		Target:     "https://example.com",
		TargetType: models.TargetURL,
		Status:     models.TargetActive,
	}
	assert.ErrorIs(t, s.CreateTargetWithChecklist(target), ErrNotFound)
}

func TestTargetProgress(t *testing.T) {
	s := newTestStore(t)
	cat := createCategory(t, s, "Recon", 1)
	for i := 1; i <= 10; i++ {
		createItem(t, s, cat.ID, "item", i)
	}
	project := createProject(t, s, "Acme")
	target := createTarget(t, s, project.ID, "https://example.com")

	rows, err := s.TargetChecklist(target.ID)
	require.NoError(t, err)
	require.Len(t, rows, 10)
	for _, row := range rows[:3] {
		require.NoError(t, s.UpdateChecklistEntry(target.ID, row.ChecklistItemID, EntryPatch{IsChecked: boolPtr(true)}))
	}

	got, err := s.TargetWithProgress(target.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.TotalItems)
	assert.Equal(t, 3, got.CompletedItems)
	assert.Equal(t, 30.0, got.Progress)
}

func TestTargetWithProgressNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.TargetWithProgress(999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProjectAverageIsUnweighted(t *testing.T) {
	s := newTestStore(t)
	cat := createCategory(t, s, "Recon", 1)
	createItem(t, s, cat.ID, "one", 1)
	createItem(t, s, cat.ID, "two", 2)

	project := createProject(t, s, "Acme")
	createTarget(t, s, project.ID, "https://a.example.com")
	full := createTarget(t, s, project.ID, "https://b.example.com")

	rows, err := s.TargetChecklist(full.ID)
	require.NoError(t, err)
	for _, row := range rows {
		require.NoError(t, s.UpdateChecklistEntry(full.ID, row.ChecklistItemID, EntryPatch{IsChecked: boolPtr(true)}))
	}

	avg, err := s.ProjectAverageProgress(project.ID)
	require.NoError(t, err)
	assert.Equal(t, 50.0, avg)

	stats, err := s.Project(project.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TargetCount)
	assert.Equal(t, 50.0, stats.AvgProgress)
}

func TestProjectAverageNoTargets(t *testing.T) {
	s := newTestStore(t)
	project := createProject(t, s, "Acme")

	avg, err := s.ProjectAverageProgress(project.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, avg)
}

func TestUpdateChecklistEntryHistory(t *testing.T) {
	s := newTestStore(t)
	cat := createCategory(t, s, "Recon", 1)
	item := createItem(t, s, cat.ID, "Subdomains", 1)
	project := createProject(t, s, "Acme")
	target := createTarget(t, s, project.ID, "https://example.com")

	// A bare toggle leaves no trace in the history.
	require.NoError(t, s.UpdateChecklistEntry(target.ID, item.ID, EntryPatch{IsChecked: boolPtr(true)}))
	history, err := s.NotesHistory(target.ID, 100)
	require.NoError(t, err)
	assert.Empty(t, history)

	// A notes edit is normalized on write and recorded.
	require.NoError(t, s.UpdateChecklistEntry(target.ID, item.ID, EntryPatch{
		Notes: strPtr("  found   admin\n\npanel  "),
	}))
	history, err = s.NotesHistory(target.ID, 100)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.ChangeNotesUpdated, history[0].ChangeType)
	assert.Equal(t, "found admin panel", history[0].NewNotes)
	assert.Empty(t, history[0].OldNotes)

	// Re-submitting text that normalizes to the same value is not a change.
	require.NoError(t, s.UpdateChecklistEntry(target.ID, item.ID, EntryPatch{
		Notes: strPtr("found    admin panel"),
	}))
	history, err = s.NotesHistory(target.ID, 100)
	require.NoError(t, err)
	assert.Len(t, history, 1)

	// A severity-only change gets its own change type. Newest first.
	require.NoError(t, s.UpdateChecklistEntry(target.ID, item.ID, EntryPatch{
		Severity: sevPtr(models.SeverityHigh),
	}))
	history, err = s.NotesHistory(target.ID, 100)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, models.ChangeSeverityUpdated, history[0].ChangeType)
	assert.Equal(t, models.SeverityHigh, history[0].Severity)
	assert.Equal(t, models.ChangeNotesUpdated, history[1].ChangeType)
}

func TestUpdateChecklistEntryNotFound(t *testing.T) {
	s := newTestStore(t)
	err := s.UpdateChecklistEntry(1, 1, EntryPatch{IsChecked: boolPtr(true)})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNotesHistoryLimit(t *testing.T) {
	s := newTestStore(t)
	cat := createCategory(t, s, "Recon", 1)
	item := createItem(t, s, cat.ID, "Subdomains", 1)
	project := createProject(t, s, "Acme")
	target := createTarget(t, s, project.ID, "https://example.com")

	for i := 0; i < 5; i++ {
		require.NoError(t, s.UpdateChecklistEntry(target.ID, item.ID, EntryPatch{
			Notes: strPtr(string(rune('a' + i))),
		}))
	}

	history, err := s.NotesHistory(target.ID, 3)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "e", history[0].NewNotes)
	assert.Equal(t, "d", history[1].NewNotes)
	assert.Equal(t, "c", history[2].NewNotes)
}

func TestNotedEntriesFilterAndOrder(t *testing.T) {
	s := newTestStore(t)
	recon := createCategory(t, s, "Recon", 1)
	auth := createCategory(t, s, "Auth", 2)
	reconItem := createItem(t, s, recon.ID, "Subdomains", 1)
	authItem := createItem(t, s, auth.ID, "Password reset", 1)
	silent := createItem(t, s, auth.ID, "Rate limiting", 2)

	project := createProject(t, s, "Acme")
	target := createTarget(t, s, project.ID, "https://example.com")

	require.NoError(t, s.UpdateChecklistEntry(target.ID, authItem.ID, EntryPatch{Notes: strPtr("token reuse")}))
	require.NoError(t, s.UpdateChecklistEntry(target.ID, reconItem.ID, EntryPatch{Notes: strPtr("dev subdomain exposed")}))
	require.NoError(t, s.UpdateChecklistEntry(target.ID, silent.ID, EntryPatch{IsChecked: boolPtr(true)}))

	rows, err := s.NotedEntries(target.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Subdomains", rows[0].Title)
	assert.Equal(t, "dev subdomain exposed", rows[0].Notes)
	assert.Equal(t, "Password reset", rows[1].Title)
}

func TestTargetChecklistKeepsDeletedItems(t *testing.T) {
	s := newTestStore(t)
	cat := createCategory(t, s, "Recon", 1)
	item := createItem(t, s, cat.ID, "Subdomains", 1)
	project := createProject(t, s, "Acme")
	target := createTarget(t, s, project.ID, "https://example.com")

	require.NoError(t, s.DeleteChecklistItem(item.ID))

	// The target keeps its snapshot even though the template item is gone.
	rows, err := s.TargetChecklist(target.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Subdomains", rows[0].Title)

	// New targets no longer receive the deleted item.
	fresh := createTarget(t, s, project.ID, "https://fresh.example.com")
	rows, err = s.TargetChecklist(fresh.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDeleteTargetCascades(t *testing.T) {
	s := newTestStore(t)
	cat := createCategory(t, s, "Recon", 1)
	item := createItem(t, s, cat.ID, "Subdomains", 1)
	project := createProject(t, s, "Acme")
	target := createTarget(t, s, project.ID, "https://example.com")
	require.NoError(t, s.UpdateChecklistEntry(target.ID, item.ID, EntryPatch{Notes: strPtr("finding")}))

	require.NoError(t, s.DeleteTarget(target.ID))

	_, err := s.TargetWithProgress(target.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	rows, err := s.TargetChecklist(target.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)

	history, err := s.NotesHistory(target.ID, 100)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestDeleteProjectCascades(t *testing.T) {
	s := newTestStore(t)
	cat := createCategory(t, s, "Recon", 1)
	createItem(t, s, cat.ID, "Subdomains", 1)
	project := createProject(t, s, "Acme")
	target := createTarget(t, s, project.ID, "https://example.com")

	require.NoError(t, s.DeleteProject(project.ID))

	_, err := s.ProjectRecord(project.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Target(target.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	rows, err := s.TargetChecklist(target.ID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestCategoriesItemCount(t *testing.T) {
	s := newTestStore(t)
	recon := createCategory(t, s, "Recon", 1)
	createCategory(t, s, "Auth", 2)
	createItem(t, s, recon.ID, "one", 1)
	createItem(t, s, recon.ID, "two", 2)

	rows, err := s.Categories()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 2, rows[0].ItemCount)
	assert.Equal(t, 0, rows[1].ItemCount)
}
