package services

import (
	"context"

	model "github.com/taskboard/taskboard/internal/models"
	repository "github.com/taskboard/taskboard/internal/repositories"
)

// Permissions answers whether an acting user may see or mutate a
// workspace or project. Every request-path check funnels through here.
type Permissions struct {
	workspaces *repository.WorkspaceRepository
}

func NewPermissions(workspaces *repository.WorkspaceRepository) *Permissions {
	return &Permissions{workspaces: workspaces}
}

// CanAccessWorkspace is true iff the user owns the workspace or holds
// a membership row for it.
func (p *Permissions) CanAccessWorkspace(ctx context.Context, userID string, ws *model.Workspace) (bool, error) {
	if ws.OwnerID == userID {
		return true, nil
	}
	return p.workspaces.HasMember(ctx, ws.ID, userID)
}

// CanAccessProject delegates to the project's workspace.
func (p *Permissions) CanAccessProject(ctx context.Context, userID string, project *model.Project) (bool, error) {
	ws := project.Workspace
	if ws == nil {
		loaded, err := p.workspaces.FindByID(ctx, project.WorkspaceID)
		if err != nil {
			return false, err
		}
		ws = loaded
	}
	return p.CanAccessWorkspace(ctx, userID, ws)
}

// IsWorkspaceOwner is strict owner equality, used for owner-only
// operations: workspace deletion, invites, member removal, project
// deletion, clearing tasks.
func (p *Permissions) IsWorkspaceOwner(userID string, ws *model.Workspace) bool {
	return ws.OwnerID == userID
}
