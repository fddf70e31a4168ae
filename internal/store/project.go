package store

import (
	"bugbounty-tracker/internal/models"
	"bugbounty-tracker/internal/progress"

	"gorm.io/gorm"
)

// Projects lists every project with its target count and average progress,
// newest first. The average is the unweighted mean of the targets'
// percentages: a two-item target and a two-hundred-item target count the
// same.
func (s *Store) Projects() ([]models.ProjectWithStats, error) {
	var projects []models.Project
	if err := s.db.Order("created_at DESC, id DESC").Find(&projects).Error; err != nil {
		return nil, err
	}

	targets, err := s.TargetsWithProgress()
	if err != nil {
		return nil, err
	}

	byProject := map[uint][]float64{}
	for _, t := range targets {
		byProject[t.ProjectID] = append(byProject[t.ProjectID], t.Progress)
	}

	rows := make([]models.ProjectWithStats, 0, len(projects))
	for _, p := range projects {
		percents := byProject[p.ID]
		rows = append(rows, models.ProjectWithStats{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			Status:      p.Status,
			CreatedAt:   p.CreatedAt,
			UpdatedAt:   p.UpdatedAt,
			TargetCount: len(percents),
			AvgProgress: progress.Mean(percents),
		})
	}
	return rows, nil
}

func (s *Store) Project(id uint) (*models.ProjectWithStats, error) {
	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	targets, err := s.ProjectTargetsWithProgress(id)
	if err != nil {
		return nil, err
	}
	percents := make([]float64, len(targets))
	for i, t := range targets {
		percents[i] = t.Progress
	}

	return &models.ProjectWithStats{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		Status:      project.Status,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
		TargetCount: len(targets),
		AvgProgress: progress.Mean(percents),
	}, nil
}

// ProjectAverageProgress returns the unweighted mean progress over the
// project's targets, 0 when the project has none.
func (s *Store) ProjectAverageProgress(projectID uint) (float64, error) {
	targets, err := s.ProjectTargetsWithProgress(projectID)
	if err != nil {
		return 0, err
	}
	percents := make([]float64, len(targets))
	for i, t := range targets {
		percents[i] = t.Progress
	}
	return progress.Mean(percents), nil
}

// ProjectRecord returns the bare project row, without stats.
func (s *Store) ProjectRecord(id uint) (*models.Project, error) {
	var project models.Project
	if err := s.db.First(&project, id).Error; err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

func (s *Store) CreateProject(project *models.Project) error {
	return s.db.Create(project).Error
}

func (s *Store) UpdateProject(project *models.Project) error {
	return s.db.Save(project).Error
}

// DeleteProject cascades over the project's targets, their checklist
// entries and history.
func (s *Store) DeleteProject(id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.First(&project, id).Error; err != nil {
			if notFound(err) {
				return ErrNotFound
			}
			return err
		}

		var targetIDs []uint
		if err := tx.Model(&models.Target{}).
			Where("project_id = ?", id).
			Pluck("id", &targetIDs).Error; err != nil {
			return err
		}

		if len(targetIDs) > 0 {
			if err := tx.Where("target_id IN ?", targetIDs).Delete(&models.TargetChecklistEntry{}).Error; err != nil {
				return err
			}
			if err := tx.Where("target_id IN ?", targetIDs).Delete(&models.NotesHistory{}).Error; err != nil {
				return err
			}
			if err := tx.Where("project_id = ?", id).Delete(&models.Target{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&project).Error
	})
}
