package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "github.com/taskboard/taskboard/internal/data_models"
	"github.com/taskboard/taskboard/internal/http/validators"
)

func (h *Handler) ListWorkspaces(c echo.Context) error {
	overview, err := h.workspaces.List(c.Request().Context(), currentUser(c).ID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, overview)
}

func (h *Handler) CreateWorkspace(c echo.Context) error {
	var req dto.CreateWorkspaceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateCreateWorkspaceRequest(&req); err != nil {
		return respondError(c, err)
	}

	ws, err := h.workspaces.Create(c.Request().Context(), currentUser(c).ID, req.Name, requestInfo(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, ws)
}

func (h *Handler) WorkspaceDetail(c echo.Context) error {
	ws, err := h.workspaces.Detail(c.Request().Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ws)
}

// WorkspaceDeletionSummary is the confirmation step: it reports what a
// delete would destroy without changing anything.
func (h *Handler) WorkspaceDeletionSummary(c echo.Context) error {
	counts, err := h.workspaces.DeletionSummary(c.Request().Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"workspace_id": c.Param("id"),
		"will_delete":  counts,
	})
}

func (h *Handler) DeleteWorkspace(c echo.Context) error {
	if err := h.workspaces.Delete(c.Request().Context(), currentUser(c).ID, c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) InviteMember(c echo.Context) error {
	var req dto.InviteMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateInviteMemberRequest(&req); err != nil {
		return respondError(c, err)
	}

	user, added, err := h.workspaces.Invite(c.Request().Context(), currentUser(c).ID, c.Param("id"), req.Identifier)
	if err != nil {
		return respondError(c, err)
	}

	status := http.StatusCreated
	if !added {
		// Already the owner or a member; nothing changed.
		status = http.StatusOK
	}
	return c.JSON(status, echo.Map{
		"user":  user,
		"added": added,
	})
}

func (h *Handler) RemoveMember(c echo.Context) error {
	err := h.workspaces.RemoveMember(c.Request().Context(), currentUser(c).ID, c.Param("id"), c.Param("userID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
