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

type WorkspaceRepository struct {
	db *gorm.DB
}

func NewWorkspaceRepository(db *gorm.DB) *WorkspaceRepository {
	return &WorkspaceRepository{db: db}
}

func (r *WorkspaceRepository) Create(ctx context.Context, name, ownerID string) (*model.Workspace, error) {
	ws := &model.Workspace{
		ID:        uuid.NewString(),
		Name:      name,
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
	}

	if err := r.db.WithContext(ctx).Create(ws).Error; err != nil {
		return nil, err
	}

	return ws, nil
}

func (r *WorkspaceRepository) FindByID(ctx context.Context, id string) (*model.Workspace, error) {
	var ws model.Workspace
	err := r.db.WithContext(ctx).First(&ws, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrWorkspaceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ws, nil
}

func (r *WorkspaceRepository) FindDetailed(ctx context.Context, id string) (*model.Workspace, error) {
	var ws model.Workspace
	err := r.db.WithContext(ctx).
		Preload("Projects", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at desc")
		}).
		Preload("Members.User").
		First(&ws, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrWorkspaceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ws, nil
}

func (r *WorkspaceRepository) ListOwned(ctx context.Context, userID string) ([]model.Workspace, error) {
	var workspaces []model.Workspace
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", userID).
		Order("name asc").
		Find(&workspaces).Error
	return workspaces, err
}

func (r *WorkspaceRepository) ListMemberOf(ctx context.Context, userID string) ([]model.Workspace, error) {
	var workspaces []model.Workspace
	err := r.db.WithContext(ctx).
		Where("id IN (SELECT workspace_id FROM workspace_members WHERE user_id = ?)", userID).
		Where("owner_id <> ?", userID).
		Order("name asc").
		Find(&workspaces).Error
	return workspaces, err
}

func (r *WorkspaceRepository) HasMember(ctx context.Context, workspaceID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.WorkspaceMember{}).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Count(&count).Error
	return count > 0, err
}

// MemberUserIDs returns the ids of everyone who may be assigned work
// in the workspace: the owner plus all member rows.
func (r *WorkspaceRepository) MemberUserIDs(ctx context.Context, workspaceID string) ([]string, error) {
	ws, err := r.FindByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	var ids []string
	err = r.db.WithContext(ctx).Model(&model.WorkspaceMember{}).
		Where("workspace_id = ?", workspaceID).
		Pluck("user_id", &ids).Error
	if err != nil {
		return nil, err
	}

	for _, id := range ids {
		if id == ws.OwnerID {
			return ids, nil
		}
	}
	return append(ids, ws.OwnerID), nil
}

func (r *WorkspaceRepository) AddMember(ctx context.Context, workspaceID, userID string, role model.Role) error {
	member := &model.WorkspaceMember{
		ID:          uuid.NewString(),
		WorkspaceID: workspaceID,
		UserID:      userID,
		Role:        role,
	}
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *WorkspaceRepository) RemoveMember(ctx context.Context, workspaceID, userID string) error {
	return r.db.WithContext(ctx).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Delete(&model.WorkspaceMember{}).Error
}

// DescendantCounts reports how many rows a cascade delete would remove,
// for the confirmation step before a workspace deletion.
type DescendantCounts struct {
	Projects int64 `json:"projects"`
	Columns  int64 `json:"columns"`
	Tasks    int64 `json:"tasks"`
	Comments int64 `json:"comments"`
}

func (r *WorkspaceRepository) CountDescendants(ctx context.Context, workspaceID string) (DescendantCounts, error) {
	var counts DescendantCounts
	db := r.db.WithContext(ctx)

	if err := db.Model(&model.Project{}).
		Where("workspace_id = ?", workspaceID).
		Count(&counts.Projects).Error; err != nil {
		return counts, err
	}
	if err := db.Model(&model.Column{}).
		Where("project_id IN (SELECT id FROM projects WHERE workspace_id = ?)", workspaceID).
		Count(&counts.Columns).Error; err != nil {
		return counts, err
	}
	if err := db.Model(&model.Task{}).
		Where("project_id IN (SELECT id FROM projects WHERE workspace_id = ?)", workspaceID).
		Count(&counts.Tasks).Error; err != nil {
		return counts, err
	}
	err := db.Model(&model.Comment{}).
		Where("task_id IN (SELECT id FROM tasks WHERE project_id IN (SELECT id FROM projects WHERE workspace_id = ?))", workspaceID).
		Count(&counts.Comments).Error
	return counts, err
}

// Delete removes the workspace and every descendant row in one
// transaction so a failure leaves nothing half-deleted.
func (r *WorkspaceRepository) Delete(ctx context.Context, workspaceID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		projectIDs := "SELECT id FROM projects WHERE workspace_id = ?"
		taskIDs := "SELECT id FROM tasks WHERE project_id IN (" + projectIDs + ")"

		if err := tx.Exec("DELETE FROM comments WHERE task_id IN ("+taskIDs+")", workspaceID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM task_assignees WHERE task_id IN ("+taskIDs+")", workspaceID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM task_tags WHERE task_id IN ("+taskIDs+")", workspaceID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM tasks WHERE project_id IN ("+projectIDs+")", workspaceID).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM columns WHERE project_id IN ("+projectIDs+")", workspaceID).Error; err != nil {
			return err
		}
		if err := tx.Where("workspace_id = ?", workspaceID).Delete(&model.Project{}).Error; err != nil {
			return err
		}
		if err := tx.Where("workspace_id = ?", workspaceID).Delete(&model.WorkspaceMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Workspace{}, "id = ?", workspaceID).Error
	})
}
