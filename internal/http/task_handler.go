package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	dto "github.com/taskboard/taskboard/internal/data_models"
	"github.com/taskboard/taskboard/internal/http/validators"
	model "github.com/taskboard/taskboard/internal/models"
	"github.com/taskboard/taskboard/internal/services"
)

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateCreateTaskRequest(&req); err != nil {
		return respondError(c, err)
	}

	input := services.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    model.Priority(req.Priority),
		ColumnID:    req.ColumnID,
		AssigneeIDs: req.AssigneeIDs,
		TagIDs:      req.TagIDs,
	}
	if req.DueDate != "" {
		due, err := parseDate(req.DueDate)
		if err != nil {
			return respondError(c, err)
		}
		input.DueDate = due
	}

	task, err := h.tasks.Create(c.Request().Context(), currentUser(c).ID, c.Param("id"), input, requestInfo(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) UpdateTask(c echo.Context) error {
	var req dto.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateUpdateTaskRequest(&req); err != nil {
		return respondError(c, err)
	}

	edit := services.TaskEdit{
		Title:       req.Title,
		Description: req.Description,
		ColumnID:    req.ColumnID,
		AssigneeIDs: req.AssigneeIDs,
		TagIDs:      req.TagIDs,
	}
	if req.Priority != nil {
		p := model.Priority(*req.Priority)
		edit.Priority = &p
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			edit.ClearDueDate = true
		} else {
			due, err := parseDate(*req.DueDate)
			if err != nil {
				return respondError(c, err)
			}
			edit.DueDate = due
		}
	}

	task, err := h.tasks.Edit(c.Request().Context(), currentUser(c).ID, c.Param("id"), edit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, task)
}

func (h *Handler) MoveTask(c echo.Context) error {
	task, err := h.tasks.Move(c.Request().Context(), currentUser(c).ID, c.Param("id"), c.Param("columnID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"ok":     true,
		"task":   task.ID,
		"column": task.ColumnID,
	})
}

func (h *Handler) ArchiveTask(c echo.Context) error {
	if err := h.tasks.Archive(c.Request().Context(), currentUser(c).ID, c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) CreateComment(c echo.Context) error {
	var req dto.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateCreateCommentRequest(&req); err != nil {
		return respondError(c, err)
	}

	comment, err := h.tasks.AddComment(c.Request().Context(), currentUser(c).ID, c.Param("id"), req.Body)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, comment)
}

func (h *Handler) ListTags(c echo.Context) error {
	tags, err := h.tags.List(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count": len(tags),
		"tags":  tags,
	})
}

func (h *Handler) CreateTag(c echo.Context) error {
	var req dto.CreateTagRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if err := validators.ValidateCreateTagRequest(&req); err != nil {
		return respondError(c, err)
	}

	tag, err := h.tags.Create(c.Request().Context(), req.Name, req.Color)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, tag)
}

// RecentActivity returns the newest activity entries, newest first.
func (h *Handler) RecentActivity(c echo.Context) error {
	limit := 50
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return echo.NewHTTPError(http.StatusBadRequest, "limit must be a positive integer")
		}
		limit = parsed
	}

	entries, err := h.recorder.Recent(c.Request().Context(), limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"count":   len(entries),
		"entries": entries,
	})
}
