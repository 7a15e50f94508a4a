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

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// NewTask carries the fields accepted at task creation.
type NewTask struct {
	ProjectID   string
	ColumnID    string
	Title       string
	Description string
	Priority    model.Priority
	DueDate     *time.Time
	CreatorID   string
	Assignees   []model.User
	Tags        []model.Tag
}

func (r *TaskRepository) Create(ctx context.Context, in NewTask) (*model.Task, error) {
	task := &model.Task{
		ID:          uuid.NewString(),
		ProjectID:   in.ProjectID,
		ColumnID:    in.ColumnID,
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		CreatorID:   in.CreatorID,
		Assignees:   in.Assignees,
		Tags:        in.Tags,
	}

	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return nil, err
	}

	return task, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Preload("Assignees").
		Preload("Tags").
		First(&task, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// TaskUpdate is a partial update; nil fields are left untouched.
// Creator and project are deliberately absent, neither ever changes.
type TaskUpdate struct {
	Title       *string
	Description *string
	Priority    *model.Priority
	DueDate     **time.Time
	ColumnID    *string
	Assignees   *[]model.User
	Tags        *[]model.Tag
}

func (r *TaskRepository) Update(ctx context.Context, task *model.Task, in TaskUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{}
		if in.Title != nil {
			updates["title"] = *in.Title
		}
		if in.Description != nil {
			updates["description"] = *in.Description
		}
		if in.Priority != nil {
			updates["priority"] = *in.Priority
		}
		if in.DueDate != nil {
			updates["due_date"] = *in.DueDate
		}
		if in.ColumnID != nil {
			updates["column_id"] = *in.ColumnID
		}

		// An association-only edit is still a mutation of the task;
		// Replace alone never touches the tasks row.
		if len(updates) == 0 && (in.Assignees != nil || in.Tags != nil) {
			updates["updated_at"] = time.Now()
		}

		if len(updates) > 0 {
			if err := tx.Model(task).Updates(updates).Error; err != nil {
				return err
			}
		}
		if in.Assignees != nil {
			if err := tx.Model(task).Association("Assignees").Replace(*in.Assignees); err != nil {
				return err
			}
		}
		if in.Tags != nil {
			if err := tx.Model(task).Association("Tags").Replace(*in.Tags); err != nil {
				return err
			}
		}
		return nil
	})
}

// Move updates only the column reference. Called on every drag-and-drop,
// so it stays a single-field write; updated_at is refreshed by gorm.
func (r *TaskRepository) Move(ctx context.Context, taskID, columnID string) error {
	return r.db.WithContext(ctx).Model(&model.Task{ID: taskID}).
		Update("column_id", columnID).Error
}

func (r *TaskRepository) Archive(ctx context.Context, taskID string) error {
	return r.db.WithContext(ctx).Model(&model.Task{ID: taskID}).
		Update("archived", true).Error
}

// Filters narrow a column's task listing. All set filters apply
// together; archived tasks are excluded unconditionally.
type Filters struct {
	AssigneeID string
	TagID      string
	Priority   model.Priority
	Overdue    bool
	Today      time.Time
}

func (r *TaskRepository) ListByColumn(ctx context.Context, columnID string, f Filters) ([]model.Task, error) {
	q := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("tasks.column_id = ? AND tasks.archived = ?", columnID, false)

	if f.AssigneeID != "" {
		q = q.Joins("JOIN task_assignees ON task_assignees.task_id = tasks.id AND task_assignees.user_id = ?", f.AssigneeID)
	}
	if f.TagID != "" {
		q = q.Joins("JOIN task_tags ON task_tags.task_id = tasks.id AND task_tags.tag_id = ?", f.TagID)
	}
	if f.Priority != "" {
		q = q.Where("tasks.priority = ?", f.Priority)
	}
	if f.Overdue {
		q = q.Where("tasks.due_date IS NOT NULL AND tasks.due_date < ?", f.Today)
	}

	var tasks []model.Task
	err := q.Preload("Assignees").
		Preload("Tags").
		Order("tasks.created_at asc").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) CreateComment(ctx context.Context, taskID, authorID, body string) (*model.Comment, error) {
	comment := &model.Comment{
		ID:        uuid.NewString(),
		TaskID:    taskID,
		AuthorID:  authorID,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}

	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, err
	}

	return comment, nil
}

func (r *TaskRepository) Comments(ctx context.Context, taskID string) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("task_id = ?", taskID).
		Order("created_at asc").
		Find(&comments).Error
	return comments, err
}
