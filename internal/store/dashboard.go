package store

import (
	"bugbounty-tracker/internal/models"
	"bugbounty-tracker/internal/progress"
)

type DashboardStats struct {
	Projects       int64 `json:"projects"`
	Targets        int64 `json:"targets"`
	Categories     int64 `json:"categories"`
	CompletedItems int64 `json:"completed_items"`
}

func (s *Store) Stats() (*DashboardStats, error) {
	var stats DashboardStats

	if err := s.db.Model(&models.Project{}).Count(&stats.Projects).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Target{}).Count(&stats.Targets).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.Category{}).Count(&stats.Categories).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.TargetChecklistEntry{}).
		Where("is_checked = ?", true).
		Count(&stats.CompletedItems).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

func (s *Store) RecentProjects(limit int) ([]models.ProjectWithStats, error) {
	projects, err := s.Projects()
	if err != nil {
		return nil, err
	}
	if len(projects) > limit {
		projects = projects[:limit]
	}
	return projects, nil
}

func (s *Store) RecentTargets(limit int) ([]models.TargetWithProgress, error) {
	var rows []models.TargetWithProgress
	err := s.targetProgressQuery().
		Order("t.updated_at DESC, t.id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Progress = progress.Percent(rows[i].CompletedItems, rows[i].TotalItems)
	}
	return rows, nil
}
