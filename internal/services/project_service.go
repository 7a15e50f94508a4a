package services

import (
	"context"
	"time"

	"github.com/taskboard/taskboard/internal/errs"
	model "github.com/taskboard/taskboard/internal/models"
	repository "github.com/taskboard/taskboard/internal/repositories"
	"github.com/taskboard/taskboard/internal/telemetry"
)

type ProjectService struct {
	projects   *repository.ProjectRepository
	workspaces *repository.WorkspaceRepository
	tasks      *repository.TaskRepository
	tags       *repository.TagRepository
	perms      *Permissions
	recorder   *telemetry.Recorder
}

func NewProjectService(
	projects *repository.ProjectRepository,
	workspaces *repository.WorkspaceRepository,
	tasks *repository.TaskRepository,
	tags *repository.TagRepository,
	perms *Permissions,
	recorder *telemetry.Recorder,
) *ProjectService {
	return &ProjectService{
		projects:   projects,
		workspaces: workspaces,
		tasks:      tasks,
		tags:       tags,
		perms:      perms,
		recorder:   recorder,
	}
}

// Create seeds the new board with the default columns in the same
// transaction as the project row.
func (s *ProjectService) Create(ctx context.Context, userID, workspaceID, title string, req telemetry.RequestInfo) (*model.Project, error) {
	ws, err := s.workspaces.FindByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	allowed, err := s.perms.CanAccessWorkspace(ctx, userID, ws)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, errs.ErrForbidden
	}

	project, err := s.projects.Create(ctx, workspaceID, title)
	if err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, userID, "project_created", req, map[string]interface{}{
		"workspace_id": workspaceID,
		"project_id":   project.ID,
	})

	return project, nil
}

// ColumnView is one lane of the board with its (filtered) tasks.
type ColumnView struct {
	Column model.Column `json:"column"`
	Tasks  []model.Task `json:"tasks"`
}

// BoardView is everything needed to render a project board: ordered
// columns with tasks matching the filters, plus the workspace members
// and global tags for the filter/assignment controls.
type BoardView struct {
	Project *model.Project          `json:"project"`
	Columns []ColumnView            `json:"columns"`
	Members []model.WorkspaceMember `json:"members"`
	Tags    []model.Tag             `json:"tags"`
}

// BoardFilters narrow the tasks shown per column. Zero values mean
// "no filter"; filters combine with AND. Archived tasks never appear.
type BoardFilters struct {
	AssigneeID string
	TagID      string
	Priority   model.Priority
	Overdue    bool
}

func (s *ProjectService) Board(ctx context.Context, userID, projectID string, filters BoardFilters) (*BoardView, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	allowed, err := s.perms.CanAccessProject(ctx, userID, project)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, errs.ErrForbidden
	}

	columns, err := s.projects.Columns(ctx, projectID)
	if err != nil {
		return nil, err
	}

	// Unknown priority values are ignored rather than matched
	// against nothing.
	if filters.Priority != "" && !model.ValidPriority(filters.Priority) {
		filters.Priority = ""
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	repoFilters := repository.Filters{
		AssigneeID: filters.AssigneeID,
		TagID:      filters.TagID,
		Priority:   filters.Priority,
		Overdue:    filters.Overdue,
		Today:      today,
	}

	views := make([]ColumnView, 0, len(columns))
	for _, col := range columns {
		tasks, err := s.tasks.ListByColumn(ctx, col.ID, repoFilters)
		if err != nil {
			return nil, err
		}
		views = append(views, ColumnView{Column: col, Tasks: tasks})
	}

	detailed, err := s.workspaces.FindDetailed(ctx, project.WorkspaceID)
	if err != nil {
		return nil, err
	}
	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, err
	}

	return &BoardView{
		Project: project,
		Columns: views,
		Members: detailed.Members,
		Tags:    tags,
	}, nil
}

func (s *ProjectService) Delete(ctx context.Context, userID, projectID string) error {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	ws, err := s.workspaces.FindByID(ctx, project.WorkspaceID)
	if err != nil {
		return err
	}
	if !s.perms.IsWorkspaceOwner(userID, ws) {
		return errs.ErrOwnerOnly
	}

	return s.projects.Delete(ctx, projectID)
}

// ClearSummary is the confirmation payload for the bulk task delete.
func (s *ProjectService) ClearSummary(ctx context.Context, userID, projectID string) (int64, error) {
	if err := s.requireOwner(ctx, userID, projectID); err != nil {
		return 0, err
	}
	return s.projects.CountTasks(ctx, projectID)
}

// ClearTasks bulk-deletes every task on the board. Owner only, and
// irreversible.
func (s *ProjectService) ClearTasks(ctx context.Context, userID, projectID string) error {
	if err := s.requireOwner(ctx, userID, projectID); err != nil {
		return err
	}
	return s.projects.ClearTasks(ctx, projectID)
}

func (s *ProjectService) requireOwner(ctx context.Context, userID, projectID string) error {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	ws, err := s.workspaces.FindByID(ctx, project.WorkspaceID)
	if err != nil {
		return err
	}
	if !s.perms.IsWorkspaceOwner(userID, ws) {
		return errs.ErrOwnerOnly
	}
	return nil
}

// ColumnInput carries the editable column fields.
type ColumnInput struct {
	Name  string
	Color string
	Order int
}

func (s *ProjectService) CreateColumn(ctx context.Context, userID, projectID string, in ColumnInput) (*model.Column, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	allowed, err := s.perms.CanAccessProject(ctx, userID, project)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, errs.ErrForbidden
	}

	taken, err := s.projects.ColumnNameTaken(ctx, projectID, in.Name, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errs.NewValidation("name", "a column with this name already exists on this board")
	}

	return s.projects.CreateColumn(ctx, projectID, in.Name, in.Color, in.Order)
}

func (s *ProjectService) UpdateColumn(ctx context.Context, userID, columnID string, in ColumnInput) (*model.Column, error) {
	column, err := s.projects.FindColumn(ctx, columnID)
	if err != nil {
		return nil, err
	}
	if err := s.requireProjectAccess(ctx, userID, column.ProjectID); err != nil {
		return nil, err
	}

	taken, err := s.projects.ColumnNameTaken(ctx, column.ProjectID, in.Name, columnID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errs.NewValidation("name", "a column with this name already exists on this board")
	}

	updates := map[string]interface{}{
		"name":     in.Name,
		"color":    in.Color,
		"position": in.Order,
	}
	if err := s.projects.UpdateColumn(ctx, columnID, updates); err != nil {
		return nil, err
	}
	return s.projects.FindColumn(ctx, columnID)
}

func (s *ProjectService) DeleteColumn(ctx context.Context, userID, columnID string) error {
	column, err := s.projects.FindColumn(ctx, columnID)
	if err != nil {
		return err
	}
	if err := s.requireProjectAccess(ctx, userID, column.ProjectID); err != nil {
		return err
	}

	return s.projects.DeleteColumn(ctx, columnID)
}

func (s *ProjectService) requireProjectAccess(ctx context.Context, userID, projectID string) error {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return err
	}
	allowed, err := s.perms.CanAccessProject(ctx, userID, project)
	if err != nil {
		return err
	}
	if !allowed {
		return errs.ErrForbidden
	}
	return nil
}
