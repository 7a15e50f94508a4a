package services

import (
	"context"
	"time"

	"github.com/taskboard/taskboard/internal/errs"
	model "github.com/taskboard/taskboard/internal/models"
	repository "github.com/taskboard/taskboard/internal/repositories"
	"github.com/taskboard/taskboard/internal/telemetry"
)

type TaskService struct {
	tasks      *repository.TaskRepository
	projects   *repository.ProjectRepository
	workspaces *repository.WorkspaceRepository
	tags       *repository.TagRepository
	users      *repository.UserRepository
	perms      *Permissions
	recorder   *telemetry.Recorder
}

func NewTaskService(
	tasks *repository.TaskRepository,
	projects *repository.ProjectRepository,
	workspaces *repository.WorkspaceRepository,
	tags *repository.TagRepository,
	users *repository.UserRepository,
	perms *Permissions,
	recorder *telemetry.Recorder,
) *TaskService {
	return &TaskService{
		tasks:      tasks,
		projects:   projects,
		workspaces: workspaces,
		tags:       tags,
		users:      users,
		perms:      perms,
		recorder:   recorder,
	}
}

// TaskInput carries the fields accepted when creating a task.
// ColumnID may be empty; the task then lands in the board's first
// column by order.
type TaskInput struct {
	Title       string
	Description string
	Priority    model.Priority
	DueDate     *time.Time
	ColumnID    string
	AssigneeIDs []string
	TagIDs      []string
}

func (s *TaskService) Create(ctx context.Context, userID, projectID string, in TaskInput, req telemetry.RequestInfo) (*model.Task, error) {
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

	var column *model.Column
	if in.ColumnID == "" {
		column, err = s.projects.FirstColumn(ctx, projectID)
		if err != nil {
			return nil, err
		}
	} else {
		column, err = s.projects.FindColumn(ctx, in.ColumnID)
		if err != nil {
			return nil, err
		}
		if column.ProjectID != projectID {
			return nil, errs.NewValidation("column_id", "column does not belong to this board")
		}
	}

	priority := in.Priority
	if priority == "" {
		priority = model.PriorityMedium
	}
	if !model.ValidPriority(priority) {
		return nil, errs.NewValidation("priority", "must be one of low, medium, high")
	}

	assignees, err := s.resolveAssignees(ctx, project.WorkspaceID, in.AssigneeIDs)
	if err != nil {
		return nil, err
	}
	tags, err := s.resolveTags(ctx, in.TagIDs)
	if err != nil {
		return nil, err
	}

	task, err := s.tasks.Create(ctx, repository.NewTask{
		ProjectID:   projectID,
		ColumnID:    column.ID,
		Title:       in.Title,
		Description: in.Description,
		Priority:    priority,
		DueDate:     in.DueDate,
		CreatorID:   userID,
		Assignees:   assignees,
		Tags:        tags,
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, userID, "task_created", req, map[string]interface{}{
		"project_id": projectID,
		"task_id":    task.ID,
	})

	return task, nil
}

// TaskEdit is a partial update; nil fields stay untouched. Creator and
// project are not editable.
type TaskEdit struct {
	Title        *string
	Description  *string
	Priority     *model.Priority
	DueDate      *time.Time
	ClearDueDate bool
	ColumnID     *string
	AssigneeIDs  *[]string
	TagIDs       *[]string
}

func (s *TaskService) Edit(ctx context.Context, userID, taskID string, in TaskEdit) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	project, err := s.projects.FindByID(ctx, task.ProjectID)
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

	update := repository.TaskUpdate{
		Title:       in.Title,
		Description: in.Description,
	}

	if in.Priority != nil {
		if !model.ValidPriority(*in.Priority) {
			return nil, errs.NewValidation("priority", "must be one of low, medium, high")
		}
		update.Priority = in.Priority
	}

	if in.ClearDueDate {
		var cleared *time.Time
		update.DueDate = &cleared
	} else if in.DueDate != nil {
		due := in.DueDate
		update.DueDate = &due
	}

	if in.ColumnID != nil {
		column, err := s.projects.FindColumn(ctx, *in.ColumnID)
		if err != nil {
			return nil, err
		}
		if column.ProjectID != task.ProjectID {
			return nil, errs.NewValidation("column_id", "column does not belong to this board")
		}
		update.ColumnID = in.ColumnID
	}

	if in.AssigneeIDs != nil {
		assignees, err := s.resolveAssignees(ctx, project.WorkspaceID, *in.AssigneeIDs)
		if err != nil {
			return nil, err
		}
		update.Assignees = &assignees
	}
	if in.TagIDs != nil {
		tags, err := s.resolveTags(ctx, *in.TagIDs)
		if err != nil {
			return nil, err
		}
		update.Tags = &tags
	}

	if err := s.tasks.Update(ctx, task, update); err != nil {
		return nil, err
	}
	return s.tasks.FindByID(ctx, taskID)
}

// Move reassigns the task's column. The target must belong to the same
// project; nothing changes on a mismatch.
func (s *TaskService) Move(ctx context.Context, userID, taskID, columnID string) (*model.Task, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	project, err := s.projects.FindByID(ctx, task.ProjectID)
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

	column, err := s.projects.FindColumn(ctx, columnID)
	if err != nil {
		return nil, err
	}
	if column.ProjectID != task.ProjectID {
		return nil, errs.ErrColumnNotFound
	}

	if err := s.tasks.Move(ctx, taskID, columnID); err != nil {
		return nil, err
	}
	return s.tasks.FindByID(ctx, taskID)
}

// Archive flips the task into its soft-terminal state. Only the
// workspace owner, the creator, or a current assignee may do it, and
// there is no way back.
func (s *TaskService) Archive(ctx context.Context, userID, taskID string) error {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return err
	}
	project, err := s.projects.FindByID(ctx, task.ProjectID)
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

	ws, err := s.workspaces.FindByID(ctx, project.WorkspaceID)
	if err != nil {
		return err
	}

	isOwner := ws.OwnerID == userID
	isCreator := task.CreatorID == userID
	isAssignee := false
	for _, a := range task.Assignees {
		if a.ID == userID {
			isAssignee = true
			break
		}
	}
	if !isOwner && !isCreator && !isAssignee {
		return errs.ErrArchiveNotPermitted
	}

	return s.tasks.Archive(ctx, taskID)
}

func (s *TaskService) AddComment(ctx context.Context, userID, taskID, body string) (*model.Comment, error) {
	task, err := s.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	project, err := s.projects.FindByID(ctx, task.ProjectID)
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

	return s.tasks.CreateComment(ctx, taskID, userID, body)
}

// resolveAssignees checks every id against the workspace's member set
// (owner included), matching the board UI which only offers members.
func (s *TaskService) resolveAssignees(ctx context.Context, workspaceID string, ids []string) ([]model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	memberIDs, err := s.workspaces.MemberUserIDs(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	members := make(map[string]bool, len(memberIDs))
	for _, id := range memberIDs {
		members[id] = true
	}

	assignees := make([]model.User, 0, len(ids))
	for _, id := range ids {
		if !members[id] {
			return nil, errs.NewValidation("assignees", "assignees must be members of the workspace")
		}
		user, err := s.users.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		assignees = append(assignees, *user)
	}
	return assignees, nil
}

func (s *TaskService) resolveTags(ctx context.Context, ids []string) ([]model.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	tags, err := s.tags.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, errs.NewValidation("tags", "unknown tag id")
	}
	return tags, nil
}
