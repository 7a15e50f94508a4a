package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "github.com/taskboard/taskboard/internal/data_models"
	"github.com/taskboard/taskboard/internal/http/validators"
	model "github.com/taskboard/taskboard/internal/models"
	"github.com/taskboard/taskboard/internal/services"
)

func (h *Handler) CreateProject(c echo.Context) error {
	var req dto.CreateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateCreateProjectRequest(&req); err != nil {
		return respondError(c, err)
	}

	project, err := h.projects.Create(c.Request().Context(), currentUser(c).ID, c.Param("id"), req.Title, requestInfo(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, project)
}

// ProjectBoard returns the board view. Query filters: assignee ("me"
// or a user id), tag, priority, and overdue=1; they combine with AND.
func (h *Handler) ProjectBoard(c echo.Context) error {
	filters := services.BoardFilters{
		TagID:    c.QueryParam("tag"),
		Priority: model.Priority(c.QueryParam("priority")),
		Overdue:  c.QueryParam("overdue") == "1",
	}
	if assignee := c.QueryParam("assignee"); assignee != "" {
		if assignee == "me" {
			filters.AssigneeID = currentUser(c).ID
		} else {
			filters.AssigneeID = assignee
		}
	}

	board, err := h.projects.Board(c.Request().Context(), currentUser(c).ID, c.Param("id"), filters)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, board)
}

func (h *Handler) DeleteProject(c echo.Context) error {
	if err := h.projects.Delete(c.Request().Context(), currentUser(c).ID, c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ProjectClearSummary is the confirmation step before a bulk delete.
func (h *Handler) ProjectClearSummary(c echo.Context) error {
	count, err := h.projects.ClearSummary(c.Request().Context(), currentUser(c).ID, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"project_id":      c.Param("id"),
		"tasks_to_delete": count,
	})
}

func (h *Handler) ClearProjectTasks(c echo.Context) error {
	if err := h.projects.ClearTasks(c.Request().Context(), currentUser(c).ID, c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) CreateColumn(c echo.Context) error {
	var req dto.ColumnRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateColumnRequest(&req); err != nil {
		return respondError(c, err)
	}

	column, err := h.projects.CreateColumn(c.Request().Context(), currentUser(c).ID, c.Param("id"), services.ColumnInput{
		Name:  req.Name,
		Color: req.Color,
		Order: req.Order,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, column)
}

func (h *Handler) UpdateColumn(c echo.Context) error {
	var req dto.ColumnRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateColumnRequest(&req); err != nil {
		return respondError(c, err)
	}

	column, err := h.projects.UpdateColumn(c.Request().Context(), currentUser(c).ID, c.Param("id"), services.ColumnInput{
		Name:  req.Name,
		Color: req.Color,
		Order: req.Order,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, column)
}

func (h *Handler) DeleteColumn(c echo.Context) error {
	if err := h.projects.DeleteColumn(c.Request().Context(), currentUser(c).ID, c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
