package services

import (
	"context"
	"errors"

	"github.com/taskboard/taskboard/internal/errs"
	model "github.com/taskboard/taskboard/internal/models"
	repository "github.com/taskboard/taskboard/internal/repositories"
	"github.com/taskboard/taskboard/internal/telemetry"
)

type WorkspaceService struct {
	workspaces *repository.WorkspaceRepository
	users      *repository.UserRepository
	perms      *Permissions
	recorder   *telemetry.Recorder
}

func NewWorkspaceService(
	workspaces *repository.WorkspaceRepository,
	users *repository.UserRepository,
	perms *Permissions,
	recorder *telemetry.Recorder,
) *WorkspaceService {
	return &WorkspaceService{
		workspaces: workspaces,
		users:      users,
		perms:      perms,
		recorder:   recorder,
	}
}

// WorkspaceOverview groups the caller's workspaces by relationship.
type WorkspaceOverview struct {
	Owned  []model.Workspace `json:"owned"`
	Member []model.Workspace `json:"member"`
}

func (s *WorkspaceService) List(ctx context.Context, userID string) (*WorkspaceOverview, error) {
	owned, err := s.workspaces.ListOwned(ctx, userID)
	if err != nil {
		return nil, err
	}
	member, err := s.workspaces.ListMemberOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &WorkspaceOverview{Owned: owned, Member: member}, nil
}

func (s *WorkspaceService) Create(ctx context.Context, userID, name string, req telemetry.RequestInfo) (*model.Workspace, error) {
	ws, err := s.workspaces.Create(ctx, name, userID)
	if err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, userID, "workspace_created", req, map[string]interface{}{
		"workspace_id": ws.ID,
	})

	return ws, nil
}

func (s *WorkspaceService) Detail(ctx context.Context, userID, workspaceID string) (*model.Workspace, error) {
	ws, err := s.workspaces.FindDetailed(ctx, workspaceID)
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

	return ws, nil
}

// DeletionSummary is the confirmation payload shown before a workspace
// delete, so the destructive action always takes two steps.
func (s *WorkspaceService) DeletionSummary(ctx context.Context, userID, workspaceID string) (*repository.DescendantCounts, error) {
	ws, err := s.workspaces.FindByID(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	if !s.perms.IsWorkspaceOwner(userID, ws) {
		return nil, errs.ErrOwnerOnly
	}

	counts, err := s.workspaces.CountDescendants(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	return &counts, nil
}

func (s *WorkspaceService) Delete(ctx context.Context, userID, workspaceID string) error {
	ws, err := s.workspaces.FindByID(ctx, workspaceID)
	if err != nil {
		return err
	}
	if !s.perms.IsWorkspaceOwner(userID, ws) {
		return errs.ErrOwnerOnly
	}

	return s.workspaces.Delete(ctx, workspaceID)
}

// Invite adds an existing user, looked up by username or email, as a
// member. Inviting the owner or an existing member is a no-op; the
// returned bool reports whether a membership was actually created.
func (s *WorkspaceService) Invite(ctx context.Context, actorID, workspaceID, identifier string) (*model.User, bool, error) {
	ws, err := s.workspaces.FindByID(ctx, workspaceID)
	if err != nil {
		return nil, false, err
	}
	if !s.perms.IsWorkspaceOwner(actorID, ws) {
		return nil, false, errs.ErrOwnerOnly
	}

	user, err := s.users.FindByIdentifier(ctx, identifier)
	if errors.Is(err, errs.ErrUserNotFound) {
		return nil, false, errs.NewValidation("identifier", "no user with that username or email")
	}
	if err != nil {
		return nil, false, err
	}

	if user.ID == ws.OwnerID {
		return user, false, nil
	}

	already, err := s.workspaces.HasMember(ctx, workspaceID, user.ID)
	if err != nil {
		return nil, false, err
	}
	if already {
		return user, false, nil
	}

	if err := s.workspaces.AddMember(ctx, workspaceID, user.ID, model.RoleMember); err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (s *WorkspaceService) RemoveMember(ctx context.Context, actorID, workspaceID, userID string) error {
	ws, err := s.workspaces.FindByID(ctx, workspaceID)
	if err != nil {
		return err
	}
	if !s.perms.IsWorkspaceOwner(actorID, ws) {
		return errs.ErrOwnerOnly
	}

	return s.workspaces.RemoveMember(ctx, workspaceID, userID)
}
