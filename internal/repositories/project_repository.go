package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taskboard/taskboard/internal/errs"
	model "github.com/taskboard/taskboard/internal/models"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts the project together with its seeded default columns
// in one transaction.
func (r *ProjectRepository) Create(ctx context.Context, workspaceID, title string) (*model.Project, error) {
	project := &model.Project{
		ID:          uuid.NewString(),
		WorkspaceID: workspaceID,
		Title:       title,
		CreatedAt:   time.Now().UTC(),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		for i, def := range model.DefaultColumns {
			col := &model.Column{
				ID:        uuid.NewString(),
				ProjectID: project.ID,
				Name:      def.Name,
				Order:     i,
				Color:     def.Color,
			}
			if err := tx.Create(col).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return project, nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).Preload("Workspace").First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) Columns(ctx context.Context, projectID string) ([]model.Column, error) {
	var columns []model.Column
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("position asc").
		Find(&columns).Error
	return columns, err
}

// FirstColumn returns the project's column with the smallest order,
// the default landing lane for new tasks.
func (r *ProjectRepository) FirstColumn(ctx context.Context, projectID string) (*model.Column, error) {
	var column model.Column
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("position asc").
		First(&column).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrColumnNotFound
	}
	if err != nil {
		return nil, err
	}
	return &column, nil
}

func (r *ProjectRepository) FindColumn(ctx context.Context, id string) (*model.Column, error) {
	var column model.Column
	err := r.db.WithContext(ctx).First(&column, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrColumnNotFound
	}
	if err != nil {
		return nil, err
	}
	return &column, nil
}

func (r *ProjectRepository) ColumnNameTaken(ctx context.Context, projectID, name, excludeID string) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&model.Column{}).
		Where("project_id = ? AND name = ?", projectID, name)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *ProjectRepository) CreateColumn(ctx context.Context, projectID, name, color string, order int) (*model.Column, error) {
	column := &model.Column{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Name:      name,
		Order:     order,
		Color:     color,
	}
	if err := r.db.WithContext(ctx).Create(column).Error; err != nil {
		return nil, err
	}
	return column, nil
}

func (r *ProjectRepository) UpdateColumn(ctx context.Context, id string, updates map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Column{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// DeleteColumn removes the column and every task (plus comments and
// association rows) inside it, transactionally.
func (r *ProjectRepository) DeleteColumn(ctx context.Context, columnID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taskIDs := "SELECT id FROM tasks WHERE column_id = ?"

		if err := tx.Exec("DELETE FROM comments WHERE task_id IN ("+taskIDs+")", columnID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM task_assignees WHERE task_id IN ("+taskIDs+")", columnID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM task_tags WHERE task_id IN ("+taskIDs+")", columnID).Error; err != nil {
			return err
		}
		if err := tx.Where("column_id = ?", columnID).Delete(&model.Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Column{}, "id = ?", columnID).Error
	})
}

// Delete removes the project and everything it contains in one
// transaction.
func (r *ProjectRepository) Delete(ctx context.Context, projectID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taskIDs := "SELECT id FROM tasks WHERE project_id = ?"

		if err := tx.Exec("DELETE FROM comments WHERE task_id IN ("+taskIDs+")", projectID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM task_assignees WHERE task_id IN ("+taskIDs+")", projectID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM task_tags WHERE task_id IN ("+taskIDs+")", projectID).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&model.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", projectID).Delete(&model.Column{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Project{}, "id = ?", projectID).Error
	})
}

func (r *ProjectRepository) CountTasks(ctx context.Context, projectID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count, err
}

// ClearTasks bulk-deletes every task under the project. Columns stay.
func (r *ProjectRepository) ClearTasks(ctx context.Context, projectID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taskIDs := "SELECT id FROM tasks WHERE project_id = ?"

		if err := tx.Exec("DELETE FROM comments WHERE task_id IN ("+taskIDs+")", projectID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM task_assignees WHERE task_id IN ("+taskIDs+")", projectID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM task_tags WHERE task_id IN ("+taskIDs+")", projectID).Error; err != nil {
			return err
		}
		return tx.Where("project_id = ?", projectID).Delete(&model.Task{}).Error
	})
}
